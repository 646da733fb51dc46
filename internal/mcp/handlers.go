package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/notebook/internal/catalog"
	"github.com/ziadkadry99/notebook/internal/toc"
)

func (s *Server) handleListNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cat, err := catalog.Build(ctx, s.src, s.opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build catalog: %v", err)), nil
	}
	if len(cat) == 0 {
		return mcp.NewToolResultText("No notes found."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d note(s):\n", len(cat)))
	for i, e := range cat {
		sb.WriteString(fmt.Sprintf("%d. %s: %s (%s)\n", i+1, e.ID, e.Title, e.Path))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleGetNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, body, errResult := s.note(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(string(body)), nil
}

func (s *Server) handleGetTOC(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entry, body, errResult := s.note(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	contents := toc.Extract(string(body))
	if len(contents) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("%s has no headings.", entry.ID)), nil
	}
	return mcp.NewToolResultText(formatTOC(contents)), nil
}

func (s *Server) handleGetNeighbors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}
	cat, err := catalog.Build(ctx, s.src, s.opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build catalog: %v", err)), nil
	}
	if _, ok := cat.Lookup(id); !ok {
		return mcp.NewToolResultError(fmt.Sprintf("note %q not found", id)), nil
	}

	prev, next := catalog.Neighbors(cat, id)
	var sb strings.Builder
	sb.WriteString("Previous: ")
	if prev != nil {
		sb.WriteString(fmt.Sprintf("%s (%s)", prev.ID, prev.Title))
	} else {
		sb.WriteString("none")
	}
	sb.WriteString("\nNext: ")
	if next != nil {
		sb.WriteString(fmt.Sprintf("%s (%s)", next.ID, next.Title))
	} else {
		sb.WriteString("none")
	}
	sb.WriteString("\n")
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleResolveAnchor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fragment, err := request.RequireString("fragment")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: fragment"), nil
	}
	entry, body, errResult := s.note(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	h, ok := toc.NewIndex(toc.Extract(string(body))).Resolve(fragment)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no heading in %s matches %q", entry.ID, fragment)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("#%s (level %d, line %d): %s", h.Slug, h.Level, h.Line, h.Title)), nil
}

// note looks up the id argument and returns the note body without front
// matter. A non-nil result is the tool error to return.
func (s *Server) note(ctx context.Context, request mcp.CallToolRequest) (catalog.Entry, []byte, *mcp.CallToolResult) {
	id, err := request.RequireString("id")
	if err != nil {
		return catalog.Entry{}, nil, mcp.NewToolResultError("missing required parameter: id")
	}
	cat, err := catalog.Build(ctx, s.src, s.opts)
	if err != nil {
		return catalog.Entry{}, nil, mcp.NewToolResultError(fmt.Sprintf("failed to build catalog: %v", err))
	}
	entry, ok := cat.Lookup(id)
	if !ok {
		return catalog.Entry{}, nil, mcp.NewToolResultError(fmt.Sprintf("note %q not found", id))
	}
	content, err := s.src.Read(ctx, entry.FileName)
	if err != nil {
		return catalog.Entry{}, nil, mcp.NewToolResultError(fmt.Sprintf("failed to read note: %v", err))
	}
	return entry, catalog.StripFrontMatter(content), nil
}

// formatTOC renders headings as an indented outline with their anchors.
func formatTOC(contents toc.TOC) string {
	var sb strings.Builder
	for _, h := range contents {
		sb.WriteString(strings.Repeat("  ", h.Level-1))
		sb.WriteString(fmt.Sprintf("- %s (#%s)\n", h.Title, h.Slug))
	}
	return sb.String()
}
