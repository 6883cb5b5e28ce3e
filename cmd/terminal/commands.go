// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/roomsync/allocate"
	"github.com/danielhkuo/roomsync/apiclient"
	"github.com/danielhkuo/roomsync/capacity"
	"github.com/danielhkuo/roomsync/ledger"
	"github.com/danielhkuo/roomsync/models"
	"github.com/danielhkuo/roomsync/report"
	"github.com/danielhkuo/roomsync/scan"
	"github.com/danielhkuo/roomsync/syncer"
)

type options struct {
	apiBase    string
	ledgerPath string
	reportDir  string
}

var (
	okMsg   = color.New(color.FgGreen)
	errMsg  = color.New(color.FgRed)
	warnMsg = color.New(color.FgYellow)
)

func (o *options) ledger() *ledger.Ledger {
	return ledger.New(ledger.NewFileStore(o.ledgerPath))
}

func (o *options) client() *apiclient.Client {
	return apiclient.New(o.apiBase)
}

// newAllocateCmd runs the interactive scan-and-allocate loop. Each
// stdin line plays the role of a hardware scanner burst: the characters
// feed the listener and the newline is the scanner's trailing Enter.
func newAllocateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "allocate",
		Short: "Scan badges and allocate rooms interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := opts.client()

			rooms, err := client.Rooms(ctx)
			if err != nil {
				return fmt.Errorf("failed to load rooms: %w", err)
			}
			confirmed, err := client.ConfirmedAllocations(ctx)
			if err != nil {
				return fmt.Errorf("failed to load allocations: %w", err)
			}

			led := opts.ledger()
			orch := allocate.New(led)
			reader := bufio.NewScanner(os.Stdin)

			fmt.Println("Scan a badge (or paste QR JSON), empty line to quit.")
			for {
				person, ok := readScan(reader)
				if !ok {
					return nil
				}
				okMsg.Printf("Scanned: %s (%s)\n", person.Name, person.MiNo)

				room, ok := chooseRoom(reader, led, rooms, confirmed)
				if !ok {
					return nil
				}

				alloc, err := orch.Allocate(person, room, confirmed)
				if err != nil {
					errMsg.Println(err)
					continue
				}
				okMsg.Printf("Allocated %s - Room %s to %s\n",
					alloc.Hostel, alloc.RoomNo, alloc.Name)
			}
		},
	}
}

// readScan drives the hardware-scanner listener with one stdin line.
func readScan(reader *bufio.Scanner) (models.Person, bool) {
	var (
		scanned models.Person
		decoded bool
	)
	listener := scan.NewListener(
		func(p models.Person) { scanned = p; decoded = true },
		func(err error) { errMsg.Println(err) },
	)

	for {
		fmt.Print("scan> ")
		if !reader.Scan() {
			return models.Person{}, false
		}
		line := strings.TrimSpace(reader.Text())
		if line == "" || line == "quit" {
			return models.Person{}, false
		}

		listener.Start()
		for _, r := range line {
			listener.HandleKey(scan.Key{Rune: r})
		}
		listener.HandleKey(scan.Key{Enter: true})
		if decoded {
			return scanned, true
		}
		// parse error already reported; listener is still listening
	}
}

func chooseRoom(reader *bufio.Scanner, led *ledger.Ledger, rooms []models.Room, confirmed []models.Allocation) (models.Room, bool) {
	pending, err := led.All()
	if err != nil {
		errMsg.Println(err)
		pending = nil
	}
	view := capacity.NewView(rooms, confirmed, pending)

	fmt.Println("Hostels:", strings.Join(view.Hostels(), ", "))
	for {
		fmt.Print("hostel> ")
		if !reader.Scan() {
			return models.Room{}, false
		}
		hostel := strings.TrimSpace(reader.Text())
		if hostel == "" {
			return models.Room{}, false
		}

		hostelRooms := view.RoomsIn(hostel)
		if len(hostelRooms) == 0 {
			warnMsg.Println("No rooms in that hostel")
			continue
		}
		for _, room := range hostelRooms {
			occupied := view.Occupied(room.Hostel, room.RoomNo)
			line := fmt.Sprintf("  Room %-8s %d/%d occupied", room.RoomNo, occupied, room.Capacity)
			if view.Available(room) <= 0 {
				errMsg.Println(line + "  FULL")
			} else {
				fmt.Println(line)
			}
		}

		fmt.Print("room> ")
		if !reader.Scan() {
			return models.Room{}, false
		}
		roomNo := strings.TrimSpace(reader.Text())
		room, found := view.Find(hostel, roomNo)
		if !found {
			warnMsg.Println("No such room")
			continue
		}
		return room, true
	}
}

// newSyncCmd uploads the whole pending ledger, retrying until it lands
// or the operator hits Ctrl-C. The ledger is only cleared after the
// server confirms the batch.
func newSyncCmd(opts *options) *cobra.Command {
	var maxAttempts int

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Upload pending allocations to the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			policy := syncer.DefaultPolicy
			policy.MaxAttempts = maxAttempts

			svc := syncer.New(opts.client(), opts.ledger(), report.NewWriter(opts.reportDir), policy)
			svc.OnRetry = func(attempt int, err error) {
				warnMsg.Printf("attempt %d failed: %v (retrying, Ctrl-C to stop)\n", attempt, err)
			}

			out, err := svc.SyncAll(ctx)
			if err != nil {
				return err
			}
			if out.NothingToSync {
				fmt.Println("Nothing to sync")
				return nil
			}

			okMsg.Printf("Synced %d allocations in %d attempt(s)\n", out.Synced, out.Attempts)
			if out.ReportPath != "" {
				fmt.Println("Report:", out.ReportPath)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0,
		"Give up after this many attempts (0 = retry until cancelled)")
	return cmd
}

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the pending ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			pending, err := opts.ledger().All()
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				fmt.Println("Pending ledger is empty")
				return nil
			}

			fmt.Printf("%d pending allocation(s):\n", len(pending))
			for _, a := range pending {
				fmt.Printf("  %s (%s) -> %s - Room %s, %s\n",
					a.Name, a.MiNo, a.Hostel, a.RoomNo, humanize.Time(a.Timestamp))
			}
			return nil
		},
	}
}

func newRoomsCmd(opts *options) *cobra.Command {
	var hostel string

	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "Show room occupancy (confirmed + pending)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := opts.client()

			rooms, err := client.Rooms(ctx)
			if err != nil {
				return err
			}
			confirmed, err := client.ConfirmedAllocations(ctx)
			if err != nil {
				return err
			}
			pending, err := opts.ledger().All()
			if err != nil {
				return err
			}

			view := capacity.NewView(rooms, confirmed, pending)
			hostels := view.Hostels()
			if hostel != "" {
				hostels = []string{hostel}
			}

			for _, h := range hostels {
				fmt.Println(h)
				for _, room := range view.RoomsIn(h) {
					occupied := view.Occupied(room.Hostel, room.RoomNo)
					line := fmt.Sprintf("  Room %-8s %d/%d", room.RoomNo, occupied, room.Capacity)
					if view.Available(room) <= 0 {
						errMsg.Println(line + "  FULL")
					} else {
						fmt.Println(line)
					}
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&hostel, "hostel", "", "Limit to one hostel")
	return cmd
}
