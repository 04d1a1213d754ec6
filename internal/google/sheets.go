package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/capture/internal/common"
	"github.com/Veraticus/capture/internal/service"
)

const valueInputRaw = "RAW"

// ReadRows reads rng from the spreadsheet tableID. Trailing empty cells are
// omitted by the API, so rows may be shorter than the range.
func (c *Client) ReadRows(ctx context.Context, tableID, rng string) ([][]string, error) {
	resp, err := c.sheets.Spreadsheets.Values.Get(tableID, rng).Context(ctx).Do()
	if err != nil {
		return nil, classifyAPIError(fmt.Errorf("failed to read %s from %s: %w", rng, tableID, err))
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// AppendRow appends one row after the last row of rng. Values are stored as
// given, so text starting with "=" or "+" or shaped like a date is not
// reinterpreted by Sheets.
func (c *Client) AppendRow(ctx context.Context, tableID, rng string, cells []string) error {
	row := make([]any, len(cells))
	for i, v := range cells {
		row[i] = v
	}

	_, err := c.sheets.Spreadsheets.Values.Append(tableID, rng, &sheets.ValueRange{
		Values: [][]any{row},
	}).ValueInputOption(valueInputRaw).Context(ctx).Do()
	if err != nil {
		return classifyAPIError(fmt.Errorf("failed to append row to %s: %w", tableID, err))
	}

	c.logger.Debug("appended row", "table", tableID, "range", rng, "cells", len(cells))
	return nil
}

// CreateTable creates a spreadsheet with the given tabs, writes each tab's
// header row and moves it under parentID.
func (c *Client) CreateTable(ctx context.Context, parentID, name string, tabs []service.TabSpec) (string, error) {
	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: name},
	}
	for _, tab := range tabs {
		spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: tab.Name},
		})
	}

	created, err := c.sheets.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create spreadsheet %q: %w", name, err)
	}
	if created.SpreadsheetId == "" {
		return "", fmt.Errorf("%w: spreadsheet %q", common.ErrDocumentNotCreated, name)
	}

	var data []*sheets.ValueRange
	for _, tab := range tabs {
		if len(tab.Header) == 0 {
			continue
		}
		header := make([]any, len(tab.Header))
		for i, h := range tab.Header {
			header[i] = h
		}
		data = append(data, &sheets.ValueRange{
			Range:  tab.Name + "!A1",
			Values: [][]any{header},
		})
	}

	if len(data) > 0 {
		_, err = c.sheets.Spreadsheets.Values.BatchUpdate(created.SpreadsheetId, &sheets.BatchUpdateValuesRequest{
			ValueInputOption: valueInputRaw,
			Data:             data,
		}).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("failed to write headers to %q: %w", name, err)
		}
	}

	if err := c.moveToFolder(ctx, created.SpreadsheetId, parentID); err != nil {
		return "", err
	}

	c.logger.Info("created spreadsheet", "name", name, "id", created.SpreadsheetId, "tabs", len(tabs))
	return created.SpreadsheetId, nil
}

// classifyAPIError marks client errors as permanent so reads are not retried
// on them, and maps 429 to common.ErrRateLimit.
func classifyAPIError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
	case apiErr.Code == http.StatusNotFound:
		return &common.RetryableError{Err: fmt.Errorf("%w: %w", common.ErrNotFound, err), Retryable: false}
	case apiErr.Code >= 400 && apiErr.Code < 500:
		return &common.RetryableError{Err: err, Retryable: false}
	default:
		return err
	}
}
