package mcpserver

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/promptloom/loom/internal/compose"
	"github.com/promptloom/loom/internal/library"
)

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	composeTool := mcp.NewTool("compose_prompt",
		mcp.WithDescription("Compose a prompt from the library's current selection state"),
		mcp.WithNumber("seed",
			mcp.Description("Seed for reproducible line picks; omit for a random draw"),
		),
		mcp.WithBoolean("randomize",
			mcp.Description("Re-roll unlocked single-selection choices before composing"),
		),
	)
	s.mcpServer.AddTool(composeTool, s.handleComposePrompt)

	randomizeTool := mcp.NewTool("randomize",
		mcp.WithDescription("Re-roll every unlocked single-selection choice in the library"),
		mcp.WithNumber("seed",
			mcp.Description("Seed for reproducible picks; omit for a random draw"),
		),
	)
	s.mcpServer.AddTool(randomizeTool, s.handleRandomize)

	searchTool := mcp.NewTool("search_files",
		mcp.WithDescription("Search library files by tag, ranked by name/path/content relevance"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search keywords"),
		),
	)
	s.mcpServer.AddTool(searchTool, s.handleSearchFiles)

	relatedTool := mcp.NewTool("related_tags",
		mcp.WithDescription("List tags that co-occur with the given tag, most frequent first"),
		mcp.WithString("tag",
			mcp.Required(),
			mcp.Description("Tag name"),
		),
	)
	s.mcpServer.AddTool(relatedTool, s.handleRelatedTags)

	treeTool := mcp.NewTool("get_tree",
		mcp.WithDescription("Show the library hierarchy with enabled, locked and selection state"),
	)
	s.mcpServer.AddTool(treeTool, s.handleGetTree)

	setTool := mcp.NewTool("set_node",
		mcp.WithDescription("Toggle a node's enabled or locked flag by slash-separated path"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Node path: Category, Category/SubCategory or Category/SubCategory/entry"),
		),
		mcp.WithString("field",
			mcp.Required(),
			mcp.Description("Field to set: enabled or locked"),
		),
		mcp.WithBoolean("value",
			mcp.Required(),
			mcp.Description("New flag value"),
		),
	)
	s.mcpServer.AddTool(setTool, s.handleSetNode)

	rescanTool := mcp.NewTool("rescan_library",
		mcp.WithDescription("Re-read the library folder and rebuild the tag index"),
	)
	s.mcpServer.AddTool(rescanTool, s.handleRescan)
}

func (s *Server) handleComposePrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seed := int64(request.GetFloat("seed", 0))
	if request.GetBool("randomize", false) {
		compose.Randomize(s.tree, seededRng(seed))
	}
	prompt := s.composer(seed).Build(s.tree)
	if prompt == "" {
		return mcp.NewToolResultText("(empty prompt: no enabled categories contribute)"), nil
	}
	return mcp.NewToolResultText(prompt), nil
}

func (s *Server) handleRandomize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seed := int64(request.GetFloat("seed", 0))
	compose.Randomize(s.tree, seededRng(seed))
	return mcp.NewToolResultText(formatTree(s.tree)), nil
}

func (s *Server) handleSearchFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("query parameter required"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	matches := s.index.Search(strings.Fields(query), s.weights())
	if max := s.cfg.Search.MaxResults; max > 0 && len(matches) > max {
		matches = matches[:max]
	}
	if len(matches) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("no files match %q", query)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Matches for %q\n", query)
	for _, m := range matches {
		fmt.Fprintf(&b, "- %s (%.2f) %s\n", m.Name, m.Score, m.Path)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleRelatedTags(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag := request.GetString("tag", "")
	if tag == "" {
		return mcp.NewToolResultError("tag parameter required"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	related := s.index.SuggestRelatedTags(tag)
	if len(related) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("no tags co-occur with %q", tag)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Tags related to %q\n", tag)
	for _, r := range related {
		fmt.Fprintf(&b, "- %s (%d files)\n", r.Name, r.FileCount)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGetTree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return mcp.NewToolResultText(formatTree(s.tree)), nil
}

func (s *Server) handleSetNode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	field := request.GetString("field", "")
	value := request.GetBool("value", false)
	if path == "" || field == "" {
		return mcp.NewToolResultError("path and field parameters required"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cat, sub, entry, err := s.tree.Resolve(strings.Split(path, "/"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch field {
	case "enabled":
		switch {
		case entry != nil:
			s.tree.SetEntryEnabled(sub, entry, value)
		case sub != nil:
			s.tree.SetSubCategoryEnabled(sub, value)
		default:
			s.tree.SetCategoryEnabled(cat, value)
		}
	case "locked":
		switch {
		case entry != nil:
			return mcp.NewToolResultError("entries have no locked flag"), nil
		case sub != nil:
			s.tree.SetSubCategoryLocked(sub, value)
		default:
			s.tree.SetCategoryLocked(cat, value)
		}
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown field %q, want enabled or locked", field)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("set %s %s=%v", path, field, value)), nil
}

func (s *Server) handleRescan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := library.Scan(s.tree.Root)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to scan library: %v", err)), nil
	}
	s.tree.Rescan(snap)
	s.rebuildIndex()
	return mcp.NewToolResultText(fmt.Sprintf("rescanned: %d files indexed", s.index.FileCount())), nil
}

func seededRng(seed int64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(seed))
}
