// Package mcpserver exposes the reader as Model Context Protocol tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"gita/internal/domain"
	"gita/internal/logging"
	"gita/internal/share"
)

const (
	serverName    = "Bhagavad Gita"
	serverVersion = "1.0.0"
)

type Server struct {
	service domain.GitaService
	logger  *slog.Logger
}

// New creates the tool server over service.
func New(service domain.GitaService, logger *slog.Logger) *Server {
	return &Server{
		service: service,
		logger:  logging.OrDiscard(logger).With(slog.String("module", "mcp")),
	}
}

// MCPServer builds the protocol server with every tool registered.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
	)

	srv.AddTool(
		mcp.NewTool("search_verses",
			mcp.WithDescription("Find chapters and verses containing a phrase. Matches chapter names, summaries, verse text, transliteration and meanings. Returns at most one hit per chapter."),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Phrase to look for (case-insensitive substring)"),
			),
		),
		s.handleSearch,
	)

	srv.AddTool(
		mcp.NewTool("ask_gita",
			mcp.WithDescription("Ask a question about life, duty, karma or the mind and get the most relevant verses with their chapter context."),
			mcp.WithString("question",
				mcp.Required(),
				mcp.Description("Natural language question"),
			),
		),
		s.handleAsk,
	)

	srv.AddTool(
		mcp.NewTool("read_verse",
			mcp.WithDescription("Read one verse in full: original text, transliteration and meanings."),
			mcp.WithNumber("chapter",
				mcp.Required(),
				mcp.Description("Chapter number"),
			),
			mcp.WithNumber("verse",
				mcp.Required(),
				mcp.Description("Verse number within the chapter"),
			),
		),
		s.handleReadVerse,
	)

	srv.AddTool(
		mcp.NewTool("list_chapters",
			mcp.WithDescription("List the loaded chapters with their names, summaries and verse counts."),
		),
		s.handleListChapters,
	)

	return srv
}

// ServeStdio serves the tools over stdin and stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP over stdio")
	return server.ServeStdio(s.MCPServer())
}

type searchHit struct {
	Chapter     int    `json:"chapter"`
	NameMeaning string `json:"name_meaning"`
	Verse       int    `json:"verse,omitempty"`
	Excerpt     string `json:"excerpt,omitempty"`
}

func (s *Server) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	st := s.service.Search(query)
	if !st.Active {
		return mcp.NewToolResultError("query is required"), nil
	}
	if len(st.Results) == 0 {
		return mcp.NewToolResultText("No results found for: " + query), nil
	}

	hits := make([]searchHit, 0, len(st.Results))
	for _, r := range st.Results {
		h := searchHit{Chapter: r.Chapter.Number, NameMeaning: r.Chapter.NameMeaning}
		if r.Verse != nil {
			h.Verse, h.Excerpt = r.Verse.VerseNumber, r.Verse.Text
		}
		hits = append(hits, h)
	}
	result, _ := json.MarshalIndent(hits, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func (s *Server) handleAsk(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ans, err := s.service.Ask(req.GetString("question", ""))
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			return mcp.NewToolResultError("question is required"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Error answering: %v", err)), nil
	}
	return mcp.NewToolResultText(ans.Text), nil
}

func (s *Server) handleReadVerse(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref := domain.VerseRef{Chapter: req.GetInt("chapter", 0), Verse: req.GetInt("verse", 0)}
	if ref.Chapter <= 0 || ref.Verse <= 0 {
		return mcp.NewToolResultError("chapter and verse must be positive numbers"), nil
	}
	ch, v, err := s.service.Resolve(ref)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error reading verse: %v", err)), nil
	}
	return mcp.NewToolResultText(share.Text(ch, v)), nil
}

type chapterSummary struct {
	Number      int    `json:"chapter_number"`
	Name        string `json:"name"`
	NameMeaning string `json:"name_meaning"`
	Summary     string `json:"summary"`
	VersesCount int    `json:"verses_count"`
}

func (s *Server) handleListChapters(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	chapters := s.service.Chapters()
	summaries := make([]chapterSummary, 0, len(chapters))
	for _, ch := range chapters {
		summaries = append(summaries, chapterSummary{
			Number:      ch.Number,
			Name:        ch.Name,
			NameMeaning: ch.NameMeaning,
			Summary:     ch.Summary,
			VersesCount: ch.VersesCount,
		})
	}
	result, _ := json.MarshalIndent(summaries, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}
