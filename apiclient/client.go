// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package apiclient is the terminal's typed client for the Roomsync
// API. It owns the mapping between the wire formats (external CSV
// column names for rooms, snake_case for confirmed allocations,
// camelCase for the save batch) and the typed models, so nothing
// outside this package touches a duck-typed record.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/roomsync/models"
)

// Per-request deadline; an expired deadline is a failure, never a
// silent hang.
const requestTimeout = 10 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Rooms fetches the room reference list, mapped to typed records.
// Rows with an unparseable capacity come back as capacity 0, which the
// capacity view reports as unavailable rather than failing the fetch.
func (c *Client) Rooms(ctx context.Context) ([]models.Room, error) {
	var resp models.DashboardDataResponse
	if err := c.get(ctx, "/api/dashboard/data?hostel=all", &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errors.New("room data fetch reported failure")
	}

	rooms := make([]models.Room, 0, len(resp.Data))
	for _, row := range resp.Data {
		capacity, _ := strconv.Atoi(strings.TrimSpace(row.Capacity))
		rooms = append(rooms, models.Room{
			Hostel:   row.Hostel,
			RoomNo:   row.RoomNo,
			Capacity: capacity,
			Password: row.Password,
		})
	}
	return rooms, nil
}

// ConfirmedAllocations fetches the server's allocation list, the
// confirmed set of the reconciliation split.
func (c *Client) ConfirmedAllocations(ctx context.Context) ([]models.Allocation, error) {
	var resp models.ListAllocationsResponse
	if err := c.get(ctx, "/api/allocation/list", &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errors.New("allocation list fetch reported failure")
	}

	allocations := make([]models.Allocation, 0, len(resp.Allocations))
	for _, rec := range resp.Allocations {
		// allocated_at is ISO-8601 text; a malformed value keeps the
		// row with a zero timestamp rather than dropping it.
		ts, _ := time.Parse(time.RFC3339, rec.AllocatedAt)
		allocations = append(allocations, models.Allocation{
			Name:         rec.Name,
			MiNo:         rec.MiNo,
			Email:        rec.Email,
			Hostel:       rec.Hostel,
			RoomNo:       rec.RoomNo,
			RoomPassword: rec.RoomPassword,
			Timestamp:    ts,
		})
	}
	return allocations, nil
}

// SaveAllocations uploads one batch. Failures come back classified:
// *models.SyncTimeoutError, *models.SyncTransportError, or
// *models.SyncServerError. The returned count is the server's.
func (c *Client) SaveAllocations(ctx context.Context, batch []models.Allocation) (int, error) {
	req := models.SaveAllocationsRequest{
		Allocations: make([]models.SaveAllocation, 0, len(batch)),
	}
	for _, a := range batch {
		req.Allocations = append(req.Allocations, models.SaveAllocation{
			Name:         a.Name,
			MiNo:         a.MiNo,
			Email:        a.Email,
			Hostel:       a.Hostel,
			RoomNo:       a.RoomNo,
			RoomPassword: a.RoomPassword,
			Timestamp:    a.Timestamp.UTC().Format(time.RFC3339),
		})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return 0, &models.SyncTransportError{Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/allocation/save", bytes.NewReader(body))
	if err != nil {
		return 0, &models.SyncTransportError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, classifyTransport(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		var errResp models.ErrorResponse
		_ = json.NewDecoder(httpResp.Body).Decode(&errResp)
		return 0, &models.SyncServerError{
			Status:  httpResp.StatusCode,
			Message: errResp.Error,
		}
	}

	var resp models.SaveAllocationsResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return 0, &models.SyncServerError{
			Status:  httpResp.StatusCode,
			Message: "unreadable response body",
		}
	}
	if !resp.Success {
		return 0, &models.SyncServerError{
			Status:  httpResp.StatusCode,
			Message: resp.Message,
		}
	}

	return resp.Count, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp models.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error != "" {
			return fmt.Errorf("GET %s: %s", path, errResp.Error)
		}
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &models.SyncTimeoutError{Err: err}
	}
	var timeout interface{ Timeout() bool }
	if errors.As(err, &timeout) && timeout.Timeout() {
		return &models.SyncTimeoutError{Err: err}
	}
	return &models.SyncTransportError{Err: err}
}
