// Package server exposes the reader over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gita/internal/domain"
	"gita/internal/logging"
)

const (
	requestIDHeader = "X-Request-ID"
	shutdownTimeout = 5 * time.Second
)

type Server struct {
	service domain.GitaService
	logger  *slog.Logger
}

// NewServer creates the API over service.
func NewServer(service domain.GitaService, logger *slog.Logger) *Server {
	return &Server{
		service: service,
		logger:  logging.OrDiscard(logger).With(slog.String("module", "server")),
	}
}

// SetupRouter registers every route with recovery and request logging.
func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.Health)
	r.GET("/chapters", s.ListChapters)
	r.GET("/chapters/:number", s.GetChapter)
	r.GET("/chapters/:number/verses/:verse", s.GetVerse)
	r.GET("/search", s.Search)
	r.POST("/ask", s.Ask)

	return r
}

// Run serves the API on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)

		c.Next()

		s.logger.Info("http_request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

type chapterSummary struct {
	Number      int    `json:"chapter_number"`
	Name        string `json:"name"`
	NameMeaning string `json:"name_meaning"`
	Summary     string `json:"summary"`
	VersesCount int    `json:"verses_count"`
}

func summarize(ch *domain.Chapter) chapterSummary {
	return chapterSummary{
		Number:      ch.Number,
		Name:        ch.Name,
		NameMeaning: ch.NameMeaning,
		Summary:     ch.Summary,
		VersesCount: ch.VersesCount,
	}
}

type searchHit struct {
	Chapter chapterSummary  `json:"chapter"`
	Verse   *domain.Excerpt `json:"verse,omitempty"`
}

type SearchResponse struct {
	Active  bool        `json:"active"`
	Results []searchHit `json:"results"`
}

type AskRequest struct {
	Query string `json:"query"`
}

type AskResponse struct {
	Query string            `json:"query"`
	Text  string            `json:"text"`
	Refs  []domain.VerseRef `json:"refs"`
}

type VerseResponse struct {
	Chapter  chapterSummary `json:"chapter"`
	Verse    *domain.Verse  `json:"verse"`
	Progress float64        `json:"progress"`
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "chapters": len(s.service.Chapters())})
}

func (s *Server) ListChapters(c *gin.Context) {
	chapters := s.service.Chapters()
	out := make([]chapterSummary, 0, len(chapters))
	for i := range chapters {
		out = append(out, summarize(&chapters[i]))
	}
	c.JSON(http.StatusOK, gin.H{"chapters": out})
}

func (s *Server) GetChapter(c *gin.Context) {
	n, ok := intParam(c, "number")
	if !ok {
		return
	}
	ch, _, err := s.service.Resolve(domain.VerseRef{Chapter: n})
	if err != nil {
		s.lookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

func (s *Server) GetVerse(c *gin.Context) {
	n, ok := intParam(c, "number")
	if !ok {
		return
	}
	v, ok := intParam(c, "verse")
	if !ok {
		return
	}
	if v <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verse number"})
		return
	}
	ch, verse, err := s.service.Resolve(domain.VerseRef{Chapter: n, Verse: v})
	if err != nil {
		s.lookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, VerseResponse{Chapter: summarize(ch), Verse: verse, Progress: ch.Progress(v)})
}

func (s *Server) Search(c *gin.Context) {
	st := s.service.Search(c.Query("q"))
	resp := SearchResponse{Active: st.Active, Results: make([]searchHit, 0, len(st.Results))}
	for _, r := range st.Results {
		resp.Results = append(resp.Results, searchHit{Chapter: summarize(r.Chapter), Verse: r.Verse})
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	ans, err := s.service.Ask(req.Query)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query must not be empty"})
			return
		}
		s.logger.Error("ask failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to answer"})
		return
	}
	c.JSON(http.StatusOK, AskResponse{Query: ans.Query, Text: ans.Text, Refs: ans.Refs()})
}

func (s *Server) lookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrChapterNotFound), errors.Is(err, domain.ErrVerseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		s.logger.Error("lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lookup failed"})
	}
}

func intParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(c.Param(name)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return n, true
}
