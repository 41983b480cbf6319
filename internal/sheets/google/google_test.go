package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	goption "google.golang.org/api/option"

	"tasklog/internal/core"
	ports "tasklog/internal/sheets"
)

// fakeSheet serves the two Values endpoints used by Client.
type fakeSheet struct {
	mu      sync.Mutex
	rows    [][]any
	fail    bool
	appends int
	lastOpt string
}

func (f *fakeSheet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"permission denied"}}`))
		return
	}

	switch {
	case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/values/"):
		resp := map[string]any{"range": "Foglio1!A1:F100", "majorDimension": "ROWS"}
		if len(f.rows) > 0 {
			resp["values"] = f.rows
		}
		_ = json.NewEncoder(w).Encode(resp)
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":append"):
		var body struct {
			Values [][]any `json:"values"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.rows = append(f.rows, body.Values...)
		f.appends++
		f.lastOpt = r.URL.Query().Get("valueInputOption")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"updates": map[string]any{"updatedRange": fmt.Sprintf("Foglio1!A%d:F%d", len(f.rows), len(f.rows))},
		})
	default:
		http.NotFound(w, r)
	}
}

func newTestClient(t *testing.T, f *fakeSheet) *Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	c, err := New(context.Background(), Options{SpreadsheetID: "sheet-id"},
		goption.WithHTTPClient(srv.Client()),
		goption.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	return c
}

func TestNew_MissingSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), Options{})
	require.Error(t, err)
}

func TestLoadCredentials(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	t.Setenv("creds", "")

	_, err := loadCredentials(context.Background(), "", "")
	require.Error(t, err)

	b, err := loadCredentials(context.Background(), `{"type":"service_account"}`, "")
	require.NoError(t, err)
	assert.Contains(t, string(b), "service_account")

	t.Setenv("creds", `{"legacy":true}`)
	b, err = loadCredentials(context.Background(), "", "")
	require.NoError(t, err)
	assert.Contains(t, string(b), "legacy")

	path := t.TempDir() + "/sa.json"
	require.NoError(t, os.WriteFile(path, []byte(`{"file":true}`), 0o600))
	b, err = loadCredentials(context.Background(), "", path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "file")

	_, err = loadCredentials(context.Background(), "", path+".missing")
	require.Error(t, err)
}

func TestClient_AppendAndReadAll(t *testing.T) {
	f := &fakeSheet{}
	c := newTestClient(t, f)
	ctx := context.Background()

	status, err := c.EnsureHeaders(ctx)
	require.NoError(t, err)
	assert.Equal(t, ports.HeadersAdded, status)

	rec := core.TaskRecord{
		Name:       "Anna",
		Task:       "Newsletter",
		Date:       core.NewDate(2024, time.March, 15),
		Hours:      2.5,
		Type:       core.Marketing,
		RecordedAt: time.Date(2024, time.March, 15, 9, 0, 0, 0, time.Local),
	}
	ref, err := c.Append(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, "Foglio1!A2:F2", ref)
	assert.Equal(t, "RAW", f.lastOpt)

	records, err := c.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Anna", records[0].Name)
	assert.Equal(t, "15-03-2024", records[0].RawDate)
	assert.Equal(t, 2.5, records[0].Hours)
	assert.Equal(t, core.Marketing, records[0].Type)
	assert.True(t, rec.RecordedAt.Equal(records[0].RecordedAt))

	status, err = c.EnsureHeaders(ctx)
	require.NoError(t, err)
	assert.Equal(t, ports.HeadersOK, status)
	assert.Equal(t, 2, f.appends)
}

func TestClient_AppendWritesHeaderFirst(t *testing.T) {
	f := &fakeSheet{}
	c := newTestClient(t, f)
	ctx := context.Background()

	rec := core.TaskRecord{Name: "Anna", Task: "Newsletter", Date: core.NewDate(2024, time.March, 15), Hours: 1, Type: core.Product}
	ref, err := c.Append(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, "Foglio1!A2:F2", ref)
	_, err = c.Append(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, 3, f.appends)

	records, err := c.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestClient_AppendRejectsInvalidRecord(t *testing.T) {
	f := &fakeSheet{}
	c := newTestClient(t, f)

	_, err := c.Append(context.Background(), core.TaskRecord{Name: "Anna", Task: "x", RawDate: "31-02-2024", Hours: 1, Type: core.Product})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidDate)
	assert.Zero(t, f.appends)
}

func TestClient_EnsureHeadersMismatch(t *testing.T) {
	f := &fakeSheet{rows: [][]any{{"Nome", "Attività", "Data"}}}
	c := newTestClient(t, f)

	status, err := c.EnsureHeaders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ports.HeadersMismatch, status)
	assert.Zero(t, f.appends)
}

func TestClient_ReadAllWithMismatchedHeader(t *testing.T) {
	f := &fakeSheet{rows: [][]any{
		{"Collaborator", "Task", "Date", "Hours", "Type", "Recorded At"},
		{"A", "x", "15-03-2024", "2.5", "Product", ""},
	}}
	c := newTestClient(t, f)

	status, err := c.EnsureHeaders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ports.HeadersMismatch, status)

	records, err := c.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "A", records[0].Name)
	assert.Equal(t, 2.5, records[0].Hours)
}

func TestClient_ReadAllSchemaMismatch(t *testing.T) {
	f := &fakeSheet{rows: [][]any{
		{"Name", "Task", "Date", "Hours", "Type", "Recorded At"},
		{"Anna", "Newsletter", "15-03-2024"},
	}}
	c := newTestClient(t, f)

	_, err := c.ReadAll(context.Background())
	assert.ErrorIs(t, err, ports.ErrSchemaMismatch)
}

func TestClient_ReadAllNumericCells(t *testing.T) {
	f := &fakeSheet{rows: [][]any{
		{"Name", "Task", "Date", "Hours", "Type", "Recorded At"},
		{"Anna", "Newsletter", "15-03-2024", 1.25, "Product", ""},
		{"Bo", "Ads", "16-03-2024", "2,5", "Marketing"},
	}}
	c := newTestClient(t, f)

	records, err := c.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1.25, records[0].Hours)
	assert.Equal(t, 2.5, records[1].Hours)
}

func TestClient_BackendUnavailable(t *testing.T) {
	f := &fakeSheet{fail: true}
	c := newTestClient(t, f)
	ctx := context.Background()

	_, err := c.ReadAll(ctx)
	assert.ErrorIs(t, err, ports.ErrBackendUnavailable)

	_, err = c.Append(ctx, core.TaskRecord{Name: "a", Task: "b", Date: core.NewDate(2024, 1, 1), Hours: 1, Type: core.Product})
	assert.ErrorIs(t, err, ports.ErrBackendUnavailable)

	_, err = c.EnsureHeaders(ctx)
	assert.ErrorIs(t, err, ports.ErrBackendUnavailable)
}

func TestClient_NilService(t *testing.T) {
	c := &Client{spreadsheetID: "x", sheetName: "Foglio1"}
	_, err := c.ReadAll(context.Background())
	require.Error(t, err)
}
