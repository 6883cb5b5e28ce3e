// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package report renders the printable allocation report generated
// after each confirmed sync: one section per room with its display
// password, occupancy, and the people placed there. Report generation
// is best-effort — the sync service logs a failure here and clears the
// ledger anyway, because the server's persistence is the durability
// boundary, not the printout.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/danielhkuo/roomsync/models"
)

type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write renders the batch and saves it under the report directory,
// returning the file path.
func (w *Writer) Write(batch []models.Allocation) (string, error) {
	if len(batch) == 0 {
		return "", fmt.Errorf("no allocations to report")
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(w.dir,
		fmt.Sprintf("allocations-%s.txt", time.Now().Format("20060102-150405")))
	if err := os.WriteFile(path, []byte(Render(batch)), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Render produces the report text: a header, then one block per room
// in sorted order, people in batch order within each room.
func Render(batch []models.Allocation) string {
	type group struct {
		hostel   string
		roomNo   string
		password string
		people   []models.Allocation
	}

	groups := make(map[string]*group)
	for _, a := range batch {
		key := a.Hostel + " - Room " + a.RoomNo
		g, ok := groups[key]
		if !ok {
			g = &group{hostel: a.Hostel, roomNo: a.RoomNo, password: a.RoomPassword}
			groups[key] = g
		}
		g.people = append(g.people, a)
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("Room Allocations\n")
	b.WriteString("Generated: " + time.Now().Format("2006-01-02 15:04:05") + "\n")
	fmt.Fprintf(&b, "Total Allocations: %d\n\n", len(batch))

	for _, key := range keys {
		g := groups[key]
		b.WriteString(key + "\n")
		password := g.password
		if password == "" {
			password = "N/A"
		}
		fmt.Fprintf(&b, "  Password: %s\n", password)
		fmt.Fprintf(&b, "  Occupancy: %d person(s)\n", len(g.people))
		for _, p := range g.people {
			fmt.Fprintf(&b, "    %s | %s | %s | %s\n",
				p.Name, p.MiNo, p.Email, p.Timestamp.Local().Format("2006-01-02 15:04:05"))
		}
		b.WriteString("\n")
	}

	return b.String()
}
