package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/M-Smaran/test-mcp-server/internal/taxonomy"
)

const (
	categoriesURI = "expense:///categories"
	statsURI      = "expense:///stats"
	helpURI       = "expense:///help"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(mcp.NewResource(categoriesURI, "Expense Categories",
		mcp.WithResourceDescription("All valid expense categories and their subcategories."),
		mcp.WithMIMEType("application/json"),
	), s.handleCategoriesResource)

	s.mcp.AddResource(mcp.NewResource(statsURI, "Expense Statistics",
		mcp.WithResourceDescription("Overall ledger statistics: totals, date range, and per-category breakdown."),
		mcp.WithMIMEType("application/json"),
	), s.handleStatsResource)

	s.mcp.AddResource(mcp.NewResource(helpURI, "Expense Tracker Help",
		mcp.WithResourceDescription("Help documentation for every tool and prompt."),
		mcp.WithMIMEType("text/markdown"),
	), s.handleHelpResource)
}

func (s *Server) handleCategoriesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	doc, err := taxonomy.Load(s.cfg.CategoriesPath)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}

	// A file-backed document is served verbatim but must at least decode;
	// a broken override should surface, not poison agents silently.
	if _, err := taxonomy.Parse(doc); err != nil {
		return nil, fmt.Errorf("invalid taxonomy document: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     doc,
		},
	}, nil
}

func (s *Server) handleStatsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	stats, err := s.store.Statistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute statistics: %w", err)
	}

	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode statistics: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleHelpResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     helpDocument,
		},
	}, nil
}
