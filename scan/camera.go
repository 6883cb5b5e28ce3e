// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scan

import (
	"context"
	"time"

	"github.com/danielhkuo/roomsync/models"
)

// DecodeFrame attempts to decode one camera frame. ok is false when the
// frame held no readable code.
type DecodeFrame func() (payload string, ok bool)

// CameraPoller drives a frame decoder at a fixed rate. The first frame
// that parses into a Person is dispatched once and polling stops;
// frames that decode but fail to parse report an error and polling
// continues, matching a camera pointed at the wrong code.
type CameraPoller struct {
	interval time.Duration
	decode   DecodeFrame
	onPerson func(models.Person)
	onError  func(error)
}

func NewCameraPoller(interval time.Duration, decode DecodeFrame, onPerson func(models.Person), onError func(error)) *CameraPoller {
	return &CameraPoller{
		interval: interval,
		decode:   decode,
		onPerson: onPerson,
		onError:  onError,
	}
}

// Run polls until a successful decode or ctx cancellation. It blocks;
// callers wanting background scanning run it in a goroutine and cancel
// the context to stop.
func (p *CameraPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			payload, ok := p.decode()
			if !ok {
				continue
			}

			person, err := Parse(payload)
			if err != nil {
				if p.onError != nil {
					p.onError(err)
				}
				continue
			}

			if p.onPerson != nil {
				p.onPerson(person)
			}
			return
		}
	}
}
