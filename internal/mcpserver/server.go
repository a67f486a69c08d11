package mcpserver

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"github.com/promptloom/loom/internal/compose"
	"github.com/promptloom/loom/internal/config"
	"github.com/promptloom/loom/internal/library"
	"github.com/promptloom/loom/internal/logger"
	"github.com/promptloom/loom/internal/tagindex"
)

// Server exposes the library over MCP stdio so agent clients can compose
// prompts and search the library. The engine packages expect a single
// caller at a time, so every handler runs under one mutex.
type Server struct {
	cfg       *config.Config
	tree      *library.Tree
	index     *tagindex.Index
	mu        sync.Mutex
	mcpServer *server.MCPServer
}

// New creates a new MCP server instance over a loaded tree
func New(cfg *config.Config, tree *library.Tree) *Server {
	s := &Server{
		cfg:  cfg,
		tree: tree,
	}
	s.rebuildIndex()

	s.mcpServer = server.NewMCPServer(
		"loom",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.registerTools()
	return s
}

// ServeStdio blocks serving MCP requests on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) rebuildIndex() {
	s.index = tagindex.Rebuild(s.tree.Files(), tagindex.ReadFile, func(err error) {
		logger.Warn("index: %v", err)
	})
}

func (s *Server) weights() tagindex.Weights {
	return tagindex.Weights{
		Name:    s.cfg.Search.NameWeight,
		Path:    s.cfg.Search.PathWeight,
		Content: s.cfg.Search.ContentWeight,
	}
}

func (s *Server) composer(seed int64) *compose.Composer {
	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}
	resolver := compose.NewFileResolver(compose.Mode(s.cfg.Compose.ContentMode), rng)
	return compose.New(resolver, s.cfg.Compose.Separator, func(err error) {
		logger.Warn("compose: %v", err)
	})
}

// formatTree renders the tree state as markdown for tool output.
func formatTree(t *library.Tree) string {
	var b strings.Builder
	b.WriteString("# Library\n")
	for _, c := range t.Categories {
		fmt.Fprintf(&b, "- %s%s\n", c.Name, categoryFlags(c))
		for _, sub := range c.SubCategories {
			fmt.Fprintf(&b, "  - %s%s\n", sub.Name, subCategoryFlags(sub))
			for _, e := range sub.Entries {
				mark := " "
				if e.Enabled {
					mark = "x"
				}
				fmt.Fprintf(&b, "    - [%s] %s\n", mark, e.Name)
			}
		}
	}
	return b.String()
}

func categoryFlags(c *library.Category) string {
	var flags []string
	if c.Enabled {
		flags = append(flags, "enabled")
	}
	if c.Locked {
		flags = append(flags, "locked")
	}
	if !c.UseAllSubCategories {
		flags = append(flags, "selected="+c.SelectedSubCategory)
	}
	if len(flags) == 0 {
		return ""
	}
	return " (" + strings.Join(flags, ", ") + ")"
}

func subCategoryFlags(s *library.SubCategory) string {
	var flags []string
	if s.Enabled {
		flags = append(flags, "enabled")
	}
	if s.Locked {
		flags = append(flags, "locked")
	}
	if !s.UseAllFiles {
		flags = append(flags, "selected="+s.SelectedEntry)
	}
	if len(flags) == 0 {
		return ""
	}
	return " (" + strings.Join(flags, ", ") + ")"
}
