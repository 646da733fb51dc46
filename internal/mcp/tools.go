package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listNotesTool defines the list_notes MCP tool.
var listNotesTool = mcp.NewTool("list_notes",
	mcp.WithDescription("List every note in reading order with its id and title."),
)

// getNoteTool defines the get_note MCP tool.
var getNoteTool = mcp.NewTool("get_note",
	mcp.WithDescription("Get the markdown content of a note, without front matter."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Note id, the file name without extension (e.g. page-00)"),
	),
)

// getTOCTool defines the get_toc MCP tool.
var getTOCTool = mcp.NewTool("get_toc",
	mcp.WithDescription("Get the table of contents of a note: level 1-3 headings with their anchor slugs."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Note id"),
	),
)

// getNeighborsTool defines the get_neighbors MCP tool.
var getNeighborsTool = mcp.NewTool("get_neighbors",
	mcp.WithDescription("Get the previous and next notes in reading order."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Note id"),
	),
)

// resolveAnchorTool defines the resolve_anchor MCP tool.
var resolveAnchorTool = mcp.NewTool("resolve_anchor",
	mcp.WithDescription("Find the heading of a note that a URL fragment or heading text points at."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Note id"),
	),
	mcp.WithString("fragment",
		mcp.Required(),
		mcp.Description("Fragment such as #setup-1 or heading text such as Running QEMU"),
	),
)
