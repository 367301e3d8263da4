package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/M-Smaran/test-mcp-server/internal/config"
	"github.com/M-Smaran/test-mcp-server/internal/core"
	"github.com/M-Smaran/test-mcp-server/internal/log"
	"github.com/M-Smaran/test-mcp-server/internal/storage"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	store, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("storage.Open() unexpected error: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := &config.Config{
		Transport: config.TransportStdio,
		Port:      "8000",
		DBPath:    store.Path(),
		LogLevel:  "info",
	}
	logger := log.New(log.Config{
		Handler:   slog.NewTextHandler(io.Discard, nil),
		Component: "test",
	})

	srv := New(cfg, store, logger)
	srv.now = func() time.Time { return testNow }
	return srv
}

func toolRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()

	if len(res.Content) != 1 {
		t.Fatalf("result has %d content blocks, want 1", len(res.Content))
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("result content is %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

func addExpense(t *testing.T, srv *Server, args map[string]any) int64 {
	t.Helper()

	res, err := srv.handleAddExpense(context.Background(), toolRequest("add_expense", args))
	if err != nil {
		t.Fatalf("add_expense unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("add_expense failed: %s", resultText(t, res))
	}

	var status statusResult
	if err := json.Unmarshal([]byte(resultText(t, res)), &status); err != nil {
		t.Fatalf("decode add_expense result: %v", err)
	}
	return status.ID
}

func TestAddExpense(t *testing.T) {
	srv := newTestServer(t)

	id := addExpense(t, srv, map[string]any{
		"date":     "2025-06-01",
		"amount":   12.5,
		"category": "Food & Dining",
		"note":     "lunch",
	})
	if id <= 0 {
		t.Errorf("add_expense assigned id %d, want positive", id)
	}
}

func TestAddExpense_MissingRequiredArgument(t *testing.T) {
	srv := newTestServer(t)

	res, err := srv.handleAddExpense(context.Background(), toolRequest("add_expense", map[string]any{
		"amount":   5.0,
		"category": "Food",
	}))
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if !res.IsError {
		t.Error("add_expense without date should return an error result")
	}
}

func TestListExpenses_RoundTrip(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	addExpense(t, srv, map[string]any{
		"date": "2025-06-02", "amount": 8.0, "category": "Transport", "subcategory": "Bus",
	})

	res, err := srv.handleListExpenses(ctx, toolRequest("list_expenses", map[string]any{
		"start_date": "2025-06-01",
		"end_date":   "2025-06-30",
	}))
	if err != nil {
		t.Fatalf("list_expenses unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("list_expenses failed: %s", resultText(t, res))
	}

	var expenses []core.Expense
	if err := json.Unmarshal([]byte(resultText(t, res)), &expenses); err != nil {
		t.Fatalf("decode list result: %v", err)
	}
	if len(expenses) != 1 {
		t.Fatalf("listed %d expenses, want 1", len(expenses))
	}
	if expenses[0].Subcategory != "Bus" {
		t.Errorf("subcategory = %q, want Bus", expenses[0].Subcategory)
	}
}

func TestSummarizeExpenses_OrderedByTotal(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	addExpense(t, srv, map[string]any{"date": "2025-06-03", "amount": 10.0, "category": "Food"})
	addExpense(t, srv, map[string]any{"date": "2025-06-04", "amount": 15.0, "category": "Food"})
	addExpense(t, srv, map[string]any{"date": "2025-06-05", "amount": 5.0, "category": "Transport"})

	res, err := srv.handleSummarizeExpenses(ctx, toolRequest("summarize_expenses", map[string]any{
		"start_date": "2025-06-01",
		"end_date":   "2025-06-30",
	}))
	if err != nil {
		t.Fatalf("summarize_expenses unexpected error: %v", err)
	}

	var summaries []core.CategorySummary
	if err := json.Unmarshal([]byte(resultText(t, res)), &summaries); err != nil {
		t.Fatalf("decode summary result: %v", err)
	}

	want := []core.CategorySummary{
		{Category: "Food", TotalAmount: 25, Count: 2},
		{Category: "Transport", TotalAmount: 5, Count: 1},
	}
	if len(summaries) != len(want) {
		t.Fatalf("summarized %d categories, want %d", len(summaries), len(want))
	}
	for i := range want {
		if summaries[i] != want[i] {
			t.Errorf("summary %d = %+v, want %+v", i, summaries[i], want[i])
		}
	}
}

func TestDeleteExpense_NotFoundMessage(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	id := addExpense(t, srv, map[string]any{"date": "2025-06-06", "amount": 3.0, "category": "Other"})

	res, err := srv.handleDeleteExpense(ctx, toolRequest("delete_expense", map[string]any{
		"expense_id": float64(id),
	}))
	if err != nil {
		t.Fatalf("delete_expense unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("first delete failed: %s", resultText(t, res))
	}

	res, err = srv.handleDeleteExpense(ctx, toolRequest("delete_expense", map[string]any{
		"expense_id": float64(id),
	}))
	if err != nil {
		t.Fatalf("delete_expense unexpected error: %v", err)
	}
	if !res.IsError {
		t.Fatal("second delete should be an error result")
	}
	if !strings.Contains(resultText(t, res), "not found") {
		t.Errorf("second delete message = %q, want a not-found message", resultText(t, res))
	}
}

func TestUpdateExpense(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	id := addExpense(t, srv, map[string]any{
		"date": "2025-06-07", "amount": 30.0, "category": "Shopping", "note": "shoes",
	})

	t.Run("zero amount is applied", func(t *testing.T) {
		res, err := srv.handleUpdateExpense(ctx, toolRequest("update_expense", map[string]any{
			"expense_id": float64(id),
			"amount":     float64(0),
		}))
		if err != nil {
			t.Fatalf("update_expense unexpected error: %v", err)
		}
		if res.IsError {
			t.Fatalf("update failed: %s", resultText(t, res))
		}

		listRes, err := srv.handleListExpenses(ctx, toolRequest("list_expenses", map[string]any{
			"start_date": "2025-06-07", "end_date": "2025-06-07",
		}))
		if err != nil {
			t.Fatal(err)
		}
		var expenses []core.Expense
		if err := json.Unmarshal([]byte(resultText(t, listRes)), &expenses); err != nil {
			t.Fatal(err)
		}
		if expenses[0].Amount != 0 {
			t.Errorf("amount = %v, want 0 (falsy values must still apply)", expenses[0].Amount)
		}
		if expenses[0].Note != "shoes" {
			t.Errorf("note = %q, want untouched value", expenses[0].Note)
		}
	})

	t.Run("no fields", func(t *testing.T) {
		res, err := srv.handleUpdateExpense(ctx, toolRequest("update_expense", map[string]any{
			"expense_id": float64(id),
		}))
		if err != nil {
			t.Fatalf("update_expense unexpected error: %v", err)
		}
		if !res.IsError {
			t.Fatal("update with no fields should be an error result")
		}
		if got := resultText(t, res); got != "No fields to update" {
			t.Errorf("message = %q, want 'No fields to update'", got)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		res, err := srv.handleUpdateExpense(ctx, toolRequest("update_expense", map[string]any{
			"expense_id": float64(99999),
			"note":       "x",
		}))
		if err != nil {
			t.Fatalf("update_expense unexpected error: %v", err)
		}
		if !res.IsError || !strings.Contains(resultText(t, res), "not found") {
			t.Errorf("unknown id result = %q, want not-found error", resultText(t, res))
		}
	})
}

// readOnlyInsertError provokes a real driver error of the read-only
// class against the server's database file.
func readOnlyInsertError(t *testing.T, srv *Server) error {
	t.Helper()

	ctx := context.Background()
	db, err := sql.Open("sqlite", srv.store.Path())
	if err != nil {
		t.Fatalf("open second handle: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	conn, err := db.Conn(ctx)
	if err != nil {
		t.Fatalf("pin connection: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if _, err := conn.ExecContext(ctx, "PRAGMA query_only=1"); err != nil {
		t.Fatalf("set query_only: %v", err)
	}
	_, err = conn.ExecContext(ctx,
		"INSERT INTO expenses(date, amount, category) VALUES ('2025-01-01', 1, 'Other')")
	if err == nil {
		t.Fatal("insert on a query-only connection should fail")
	}
	return err
}

func TestInsertErrorResult(t *testing.T) {
	srv := newTestServer(t)

	t.Run("read-only storage gets the dedicated message", func(t *testing.T) {
		res := insertErrorResult(readOnlyInsertError(t, srv))

		if !res.IsError {
			t.Fatal("read-only failure should be an error result")
		}
		want := "Database is in read-only mode. Check file permissions."
		if got := resultText(t, res); got != want {
			t.Errorf("message = %q, want %q", got, want)
		}
	})

	t.Run("other failures get the generic wrapper", func(t *testing.T) {
		res := insertErrorResult(errors.New("disk I/O error"))

		if !res.IsError {
			t.Fatal("insert failure should be an error result")
		}
		if got := resultText(t, res); !strings.HasPrefix(got, "Database error:") {
			t.Errorf("message = %q, want a Database error prefix", got)
		}
	})
}

func TestLoggingMiddleware_ProvidesContextLogger(t *testing.T) {
	srv := newTestServer(t)

	var component string
	next := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		component = log.FromContext(ctx).Component()
		return mcp.NewToolResultText("ok"), nil
	}

	res, err := srv.loggingMiddleware(next)(context.Background(), toolRequest("add_expense", nil))
	if err != nil {
		t.Fatalf("middleware unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatal("middleware should pass the handler result through")
	}
	if component != log.ComponentServer {
		t.Errorf("handler saw component %q, want %q", component, log.ComponentServer)
	}
}

func TestMonthlyReportPrompt(t *testing.T) {
	srv := newTestServer(t)

	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{"month": "12", "year": "2024"}

	res, err := srv.handleMonthlyReport(context.Background(), req)
	if err != nil {
		t.Fatalf("monthly_report unexpected error: %v", err)
	}
	if len(res.Messages) != 1 {
		t.Fatalf("prompt has %d messages, want 1", len(res.Messages))
	}
	tc, ok := res.Messages[0].Content.(mcp.TextContent)
	if !ok {
		t.Fatalf("prompt content is %T, want TextContent", res.Messages[0].Content)
	}
	if !strings.Contains(tc.Text, "2024-12-01 to 2024-12-31") {
		t.Errorf("prompt text missing December range:\n%s", tc.Text)
	}
}

func TestStatsResource(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	addExpense(t, srv, map[string]any{"date": "2025-06-08", "amount": 7.0, "category": "Food"})

	req := mcp.ReadResourceRequest{}
	req.Params.URI = statsURI

	contents, err := srv.handleStatsResource(ctx, req)
	if err != nil {
		t.Fatalf("stats resource unexpected error: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("stats resource returned %d contents, want 1", len(contents))
	}

	text := contents[0].(mcp.TextResourceContents).Text
	var stats core.Statistics
	if err := json.Unmarshal([]byte(text), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalExpenses != 1 || stats.TotalAmount != 7 {
		t.Errorf("stats = %+v, want 1 expense totaling 7", stats)
	}
}

func TestCategoriesResource_DefaultTaxonomy(t *testing.T) {
	srv := newTestServer(t)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = categoriesURI

	contents, err := srv.handleCategoriesResource(context.Background(), req)
	if err != nil {
		t.Fatalf("categories resource unexpected error: %v", err)
	}

	text := contents[0].(mcp.TextResourceContents).Text
	if !strings.Contains(text, "Food & Dining") {
		t.Errorf("default taxonomy missing Food & Dining:\n%s", text)
	}
}

func TestCategoriesResource_MalformedOverride(t *testing.T) {
	srv := newTestServer(t)

	path := filepath.Join(t.TempDir(), "categories.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	srv.cfg.CategoriesPath = path

	req := mcp.ReadResourceRequest{}
	req.Params.URI = categoriesURI

	if _, err := srv.handleCategoriesResource(context.Background(), req); err == nil {
		t.Error("broken taxonomy override should surface as an error")
	}
}

func TestHelpResource(t *testing.T) {
	srv := newTestServer(t)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = helpURI

	contents, err := srv.handleHelpResource(context.Background(), req)
	if err != nil {
		t.Fatalf("help resource unexpected error: %v", err)
	}

	text := contents[0].(mcp.TextResourceContents).Text
	for _, tool := range []string{"add_expense", "list_expenses", "summarize_expenses", "delete_expense", "update_expense"} {
		if !strings.Contains(text, tool) {
			t.Errorf("help document does not mention %s", tool)
		}
	}
}
