package server

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/M-Smaran/test-mcp-server/internal/report"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("monthly_report",
		mcp.WithPromptDescription("Generate a comprehensive monthly expense report."),
		mcp.WithArgument("month",
			mcp.ArgumentDescription("Month number (1-12), defaults to current month")),
		mcp.WithArgument("year",
			mcp.ArgumentDescription("Year (YYYY), defaults to current year")),
	), s.handleMonthlyReport)

	s.mcp.AddPrompt(mcp.NewPrompt("budget_analysis",
		mcp.WithPromptDescription("Analyze spending against a budget."),
		mcp.WithArgument("budget", mcp.RequiredArgument(),
			mcp.ArgumentDescription("Total budget amount")),
		mcp.WithArgument("start_date",
			mcp.ArgumentDescription("Start date (YYYY-MM-DD), defaults to current month start")),
		mcp.WithArgument("end_date",
			mcp.ArgumentDescription("End date (YYYY-MM-DD), defaults to today")),
	), s.handleBudgetAnalysis)

	s.mcp.AddPrompt(mcp.NewPrompt("spending_trends",
		mcp.WithPromptDescription("Analyze spending trends over time."),
		mcp.WithArgument("category",
			mcp.ArgumentDescription("Optional category to analyze (analyzes all if not specified)")),
		mcp.WithArgument("months",
			mcp.ArgumentDescription("Number of months to analyze (default 3)")),
	), s.handleSpendingTrends)

	s.mcp.AddPrompt(mcp.NewPrompt("quick_add",
		mcp.WithPromptDescription("Quick add an expense from natural language description."),
		mcp.WithArgument("description", mcp.RequiredArgument(),
			mcp.ArgumentDescription(`Natural language description (e.g., "coffee $5.50 this morning")`)),
	), s.handleQuickAdd)
}

func (s *Server) handleMonthlyReport(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := req.Params.Arguments

	text, err := report.Monthly(args["month"], args["year"], s.now())
	if err != nil {
		return nil, fmt.Errorf("build monthly report prompt: %w", err)
	}

	return promptResult("Comprehensive monthly expense report", text), nil
}

func (s *Server) handleBudgetAnalysis(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := req.Params.Arguments

	budget, err := strconv.ParseFloat(args["budget"], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid budget %q: must be a number", args["budget"])
	}

	text := report.BudgetAnalysis(budget, args["start_date"], args["end_date"], s.now())
	return promptResult("Spending analysis against a budget", text), nil
}

func (s *Server) handleSpendingTrends(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := req.Params.Arguments

	months := report.DefaultTrendMonths
	if raw, ok := args["months"]; ok && raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid months %q: must be a number", raw)
		}
		months = m
	}

	text := report.SpendingTrends(args["category"], months, s.now())
	return promptResult("Spending trend analysis", text), nil
}

func (s *Server) handleQuickAdd(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	description, ok := req.Params.Arguments["description"]
	if !ok || description == "" {
		return nil, fmt.Errorf("description is required")
	}

	return promptResult("Quick expense entry", report.QuickAdd(description)), nil
}

func promptResult(description, text string) *mcp.GetPromptResult {
	return mcp.NewGetPromptResult(description, []mcp.PromptMessage{
		mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
	})
}
