// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scan

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/roomsync/models"
)

// Bare badge ids must be strictly longer than minBadgeLen and strictly
// shorter than maxBadgeLen to be accepted without JSON structure. The
// MI-xxx-nnnn format is 11 characters; the bounds leave slack for
// other badge generations.
const (
	minBadgeLen = 6
	maxBadgeLen = 32
)

// Sentinel identity for bare badge-id scans, where the payload carries
// no name or email.
const (
	SentinelName  = "Unknown"
	SentinelEmail = "unknown"
)

var validate = validator.New()

// Parse converts a decoded scan payload into a Person.
//
// A JSON object needs non-empty name, miNo, and email; any other valid
// JSON (scalars, arrays) is malformed. Payloads that are not JSON at
// all and have a plausible badge-id length are taken as a bare miNo
// with sentinel name and email. Everything else fails with
// *models.ScanFormatError.
func Parse(payload string) (models.Person, error) {
	trimmed := strings.TrimSpace(payload)

	if json.Valid([]byte(trimmed)) {
		var person models.Person
		if err := json.Unmarshal([]byte(trimmed), &person); err != nil {
			return models.Person{}, &models.ScanFormatError{
				Payload: payload,
				Reason:  "QR must contain name, miNo and email",
			}
		}
		if err := validate.Struct(person); err != nil {
			return models.Person{}, &models.ScanFormatError{
				Payload: payload,
				Reason:  "QR must contain name, miNo and email",
			}
		}
		return person, nil
	}

	if len(trimmed) > minBadgeLen && len(trimmed) < maxBadgeLen {
		return models.Person{
			Name:  SentinelName,
			MiNo:  trimmed,
			Email: SentinelEmail,
		}, nil
	}

	return models.Person{}, &models.ScanFormatError{
		Payload: payload,
		Reason:  `expected {"name":"...","miNo":"...","email":"..."} or a badge id`,
	}
}
