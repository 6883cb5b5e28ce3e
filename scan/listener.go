// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scan

import (
	"strings"

	"github.com/danielhkuo/roomsync/models"
)

// State of the hardware listener.
type State int

const (
	StateIdle State = iota
	StateListening
)

// Key is one keystroke as seen by the host UI. Rune is zero for
// non-printable keys. FromTextInput marks keys targeting a text-entry
// element, which the listener must leave alone.
type Key struct {
	Rune          rune
	Enter         bool
	FromTextInput bool
}

// Listener accumulates keystrokes from a keyboard-emulating scanner and
// dispatches the buffered payload on Enter. It holds no state beyond
// the accumulation buffer; callbacks receive every outcome.
type Listener struct {
	state    State
	buf      strings.Builder
	onPerson func(models.Person)
	onError  func(error)
}

func NewListener(onPerson func(models.Person), onError func(error)) *Listener {
	return &Listener{onPerson: onPerson, onError: onError}
}

func (l *Listener) State() State { return l.state }

// Start enters listening mode with a cleared buffer. Starting while
// already listening just clears the buffer.
func (l *Listener) Start() {
	l.buf.Reset()
	l.state = StateListening
}

// Stop cancels listening and discards any partial buffer.
func (l *Listener) Stop() {
	l.buf.Reset()
	l.state = StateIdle
}

// HandleKey feeds one keystroke. The return value tells the caller to
// suppress the key's default action; it is true exactly for the Enter
// that completes a scan, so a scanner's trailing Enter cannot submit a
// form or navigate.
func (l *Listener) HandleKey(k Key) (suppressDefault bool) {
	if l.state != StateListening || k.FromTextInput {
		return false
	}

	if k.Enter {
		payload := strings.TrimSpace(l.buf.String())
		l.buf.Reset()
		if payload == "" {
			// Stray Enter with nothing scanned; swallow it anyway.
			return true
		}

		person, err := Parse(payload)
		if err != nil {
			// Keep listening so the operator can rescan.
			if l.onError != nil {
				l.onError(err)
			}
			return true
		}

		l.state = StateIdle
		if l.onPerson != nil {
			l.onPerson(person)
		}
		return true
	}

	if k.Rune != 0 {
		l.buf.WriteRune(k.Rune)
	}
	return false
}
