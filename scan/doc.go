// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scan turns raw badge-scan input into a Person.

Three input paths share one parser:

  - camera: a poller decodes frames at a fixed rate and dispatches the
    first successful decode, then stops
  - hardware scanner: keyboard-emulating scanners type the payload and
    finish with Enter; a Listener state machine accumulates keystrokes
  - manual paste: callers hand the pasted text straight to Parse

# Parsing Policy

Parse tries, in order:

 1. JSON object with non-empty name, miNo, email -> full Person
 2. non-JSON text whose length is strictly inside the badge-id bounds ->
    Person with sentinel name/email and miNo set to the raw text
 3. otherwise *models.ScanFormatError

# Hardware Listener

States: idle -> listening -> idle. Start clears the buffer and begins
accumulating printable keys that do not target a text input. Enter
parses-and-dispatches the buffer; HandleKey reports that Enter's
default action must be suppressed so a scanner's trailing Enter cannot
submit a form or trigger navigation. A successful decode returns the
listener to idle; a failed parse reports the error and keeps listening
with a cleared buffer. Stop cancels explicitly; the terminal also
stops the listener when a sync starts, so new scans cannot race an
in-flight batch.
*/
package scan
