package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/M-Smaran/test-mcp-server/internal/core"
	"github.com/M-Smaran/test-mcp-server/internal/storage"
)

// statusResult is the payload shape of mutating tools.
type statusResult struct {
	Status  string `json:"status"`
	ID      int64  `json:"id,omitempty"`
	Message string `json:"message"`
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("add_expense",
		mcp.WithDescription("Add a new expense entry to the database."),
		mcp.WithString("date", mcp.Required(),
			mcp.Description("Date in YYYY-MM-DD format")),
		mcp.WithNumber("amount", mcp.Required(),
			mcp.Description("Amount spent (positive number)")),
		mcp.WithString("category", mcp.Required(),
			mcp.Description(`Expense category (e.g., "Food & Dining", "Transportation")`)),
		mcp.WithString("subcategory",
			mcp.Description("Optional subcategory for more detail")),
		mcp.WithString("note",
			mcp.Description("Optional note or description")),
	), s.handleAddExpense)

	s.mcp.AddTool(mcp.NewTool("list_expenses",
		mcp.WithDescription("List expense entries within an inclusive date range."),
		mcp.WithString("start_date", mcp.Required(),
			mcp.Description("Start date in YYYY-MM-DD format")),
		mcp.WithString("end_date", mcp.Required(),
			mcp.Description("End date in YYYY-MM-DD format")),
	), s.handleListExpenses)

	s.mcp.AddTool(mcp.NewTool("summarize_expenses",
		mcp.WithDescription("Summarize expenses by category within an inclusive date range."),
		mcp.WithString("start_date", mcp.Required(),
			mcp.Description("Start date in YYYY-MM-DD format")),
		mcp.WithString("end_date", mcp.Required(),
			mcp.Description("End date in YYYY-MM-DD format")),
		mcp.WithString("category",
			mcp.Description("Optional category to filter by")),
	), s.handleSummarizeExpenses)

	s.mcp.AddTool(mcp.NewTool("delete_expense",
		mcp.WithDescription("Delete an expense entry by ID."),
		mcp.WithNumber("expense_id", mcp.Required(),
			mcp.Description("The ID of the expense to delete")),
	), s.handleDeleteExpense)

	s.mcp.AddTool(mcp.NewTool("update_expense",
		mcp.WithDescription("Update an existing expense entry. Only provided fields will be updated."),
		mcp.WithNumber("expense_id", mcp.Required(),
			mcp.Description("The ID of the expense to update")),
		mcp.WithString("date", mcp.Description("New date in YYYY-MM-DD format (optional)")),
		mcp.WithNumber("amount", mcp.Description("New amount (optional)")),
		mcp.WithString("category", mcp.Description("New category (optional)")),
		mcp.WithString("subcategory", mcp.Description("New subcategory (optional)")),
		mcp.WithString("note", mcp.Description("New note (optional)")),
	), s.handleUpdateExpense)
}

func (s *Server) handleAddExpense(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	amount, err := req.RequireFloat("amount")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	category, err := req.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	id, err := s.store.Insert(ctx, core.Expense{
		Date:        date,
		Amount:      amount,
		Category:    category,
		Subcategory: req.GetString("subcategory", ""),
		Note:        req.GetString("note", ""),
	})
	if err != nil {
		return insertErrorResult(err), nil
	}

	return jsonResult(statusResult{
		Status:  "success",
		ID:      id,
		Message: "Expense added successfully",
	}), nil
}

func (s *Server) handleListExpenses(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, err := req.RequireString("start_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	end, err := req.RequireString("end_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	expenses, err := s.store.ListRange(ctx, start, end)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error listing expenses: %v", err)), nil
	}

	return jsonResult(expenses), nil
}

func (s *Server) handleSummarizeExpenses(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, err := req.RequireString("start_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	end, err := req.RequireString("end_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	summaries, err := s.store.SummarizeRange(ctx, start, end, req.GetString("category", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error summarizing expenses: %v", err)), nil
	}

	return jsonResult(summaries), nil
}

func (s *Server) handleDeleteExpense(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("expense_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.store.Delete(ctx, int64(id)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("Expense %d not found", id)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Error deleting expense: %v", err)), nil
	}

	return jsonResult(statusResult{
		Status:  "success",
		Message: fmt.Sprintf("Expense %d deleted", id),
	}), nil
}

func (s *Server) handleUpdateExpense(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("expense_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	patch, errResult := patchFromArguments(req.GetArguments())
	if errResult != nil {
		return errResult, nil
	}

	if err := s.store.Update(ctx, int64(id), patch); err != nil {
		switch {
		case errors.Is(err, storage.ErrNoFields):
			return mcp.NewToolResultError("No fields to update"), nil
		case errors.Is(err, storage.ErrNotFound):
			return mcp.NewToolResultError(fmt.Sprintf("Expense %d not found", id)), nil
		default:
			return mcp.NewToolResultError(fmt.Sprintf("Error updating expense: %v", err)), nil
		}
	}

	return jsonResult(statusResult{
		Status:  "success",
		Message: fmt.Sprintf("Expense %d updated", id),
	}), nil
}

// patchFromArguments builds the partial update from the raw argument map.
// Presence decides whether a column is touched, so zero values (amount 0,
// empty note) are applied like any other; an explicit null counts as
// absent.
func patchFromArguments(args map[string]any) (core.ExpensePatch, *mcp.CallToolResult) {
	var patch core.ExpensePatch

	for _, f := range []struct {
		name string
		dst  **string
	}{
		{"date", &patch.Date},
		{"category", &patch.Category},
		{"subcategory", &patch.Subcategory},
		{"note", &patch.Note},
	} {
		v, ok := args[f.name]
		if !ok || v == nil {
			continue
		}
		sv, ok := v.(string)
		if !ok {
			return core.ExpensePatch{}, mcp.NewToolResultError(fmt.Sprintf("%s must be a string", f.name))
		}
		*f.dst = &sv
	}

	if v, ok := args["amount"]; ok && v != nil {
		fv, ok := floatArg(v)
		if !ok {
			return core.ExpensePatch{}, mcp.NewToolResultError("amount must be a number")
		}
		patch.Amount = &fv
	}

	return patch, nil
}

// insertErrorResult maps an insert failure onto the user-facing result,
// branching on the storage error kind rather than the error text.
func insertErrorResult(err error) *mcp.CallToolResult {
	if storage.KindOf(err) == storage.KindReadOnly {
		return mcp.NewToolResultError("Database is in read-only mode. Check file permissions.")
	}
	return mcp.NewToolResultError(fmt.Sprintf("Database error: %v", err))
}

// floatArg coerces JSON-decoded numeric argument values.
func floatArg(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}
