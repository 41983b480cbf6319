package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"tasklog/internal/core"
	ports "tasklog/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// DefaultSheetName is the worksheet used when none is configured.
const DefaultSheetName = "Foglio1"

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string

	// headersReady is set once the header row is known to exist, so that the
	// first appended task never lands in row 1.
	headersReady atomic.Bool
}

// Ensure interface conformance
var (
	_ ports.RecordAppender = (*Client)(nil)
	_ ports.RecordReader   = (*Client)(nil)
	_ ports.HeaderEnsurer  = (*Client)(nil)
)

// Options configures a Client.
type Options struct {
	SpreadsheetID string
	SheetName     string
	// Service account credentials, inline JSON or a file path. When both are
	// empty GOOGLE_APPLICATION_CREDENTIALS is used.
	CredentialsJSON string
	CredentialsFile string
}

// New creates a Sheets client. When extra client options are supplied they are
// used instead of service account credentials, which lets tests point the
// client at a fake endpoint.
func New(ctx context.Context, o Options, extra ...goption.ClientOption) (*Client, error) {
	if strings.TrimSpace(o.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheetName := strings.TrimSpace(o.SheetName)
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	var opts []goption.ClientOption
	if len(extra) == 0 {
		creds, err := loadCredentials(ctx, o.CredentialsJSON, o.CredentialsFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts,
			goption.WithCredentialsJSON(creds),
			goption.WithScopes(gsheet.SpreadsheetsScope))
	}
	opts = append(opts, extra...)

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	slog.InfoContext(ctx, "Google Sheets service created", "spreadsheet_id", o.SpreadsheetID, "sheet", sheetName)

	return &Client{svc: svc, spreadsheetID: o.SpreadsheetID, sheetName: sheetName}, nil
}

// loadCredentials resolves service account JSON from inline text or a file.
func loadCredentials(ctx context.Context, inline, file string) ([]byte, error) {
	inline = strings.TrimSpace(inline)
	file = strings.TrimSpace(file)
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if inline == "" && file == "" {
		// Older deployments export the JSON as "creds".
		inline = strings.TrimSpace(os.Getenv("creds"))
	}

	switch {
	case inline != "":
		slog.DebugContext(ctx, "Using inline JSON credentials", "json_length", len(inline))
		return []byte(inline), nil
	case file != "":
		slog.DebugContext(ctx, "Reading credentials from file", "path", file)
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return b, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

func (c *Client) tableRange() string {
	return fmt.Sprintf("%s!A:F", c.sheetName)
}

// Append writes r as a new row. Values are sent RAW so that the date text is
// stored verbatim instead of being converted into a sheet date.
func (c *Client) Append(ctx context.Context, r core.TaskRecord) (string, error) {
	if err := r.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}
	if !c.headersReady.Load() {
		if _, err := c.EnsureHeaders(ctx); err != nil {
			return "", err
		}
	}
	return c.appendRow(ctx, ports.RowFromRecord(r))
}

func (c *Client) appendRow(ctx context.Context, row []any) (string, error) {
	rng := c.tableRange()
	vr := &gsheet.ValueRange{Values: [][]any{row}}
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append %s: %w: %w", rng, ports.ErrBackendUnavailable, err)
	}
	ref := rng
	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		ref = resp.Updates.UpdatedRange
	}
	return ref, nil
}

func (c *Client) readRows(ctx context.Context) ([][]string, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := c.tableRange()
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", rng, ports.ErrBackendUnavailable, err)
	}
	return valuesToRows(resp.Values), nil
}

// ReadAll returns every task row below the header, in sheet order. Row 1 is
// always the header, even when it does not match the expected names.
func (c *Client) ReadAll(ctx context.Context) ([]core.TaskRecord, error) {
	rows, err := c.readRows(ctx)
	if err != nil {
		return nil, err
	}
	records, err := ports.RecordsFromSheet(rows)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", c.sheetName, err)
	}
	return records, nil
}

// EnsureHeaders writes the header row into an empty sheet. An existing first
// row that differs from the expected headers is reported, never rewritten.
func (c *Client) EnsureHeaders(ctx context.Context) (ports.HeaderStatus, error) {
	rows, err := c.readRows(ctx)
	if err != nil {
		return ports.HeadersOK, err
	}
	if len(rows) == 0 {
		row := make([]any, len(ports.Headers))
		for i, h := range ports.Headers {
			row[i] = h
		}
		if _, err := c.appendRow(ctx, row); err != nil {
			return ports.HeadersOK, err
		}
		slog.InfoContext(ctx, "Headers added to sheet", "sheet", c.sheetName)
		c.headersReady.Store(true)
		return ports.HeadersAdded, nil
	}
	c.headersReady.Store(true)
	if !ports.HeadersMatch(rows[0]) {
		slog.WarnContext(ctx, "Sheet headers do not match expected format", "sheet", c.sheetName, "got", rows[0], "want", ports.Headers)
		return ports.HeadersMismatch, nil
	}
	return ports.HeadersOK, nil
}
