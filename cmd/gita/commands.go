package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"

	"gita/internal/domain"
	"gita/internal/mcpserver"
	"gita/internal/server"
	"gita/internal/share"
	"gita/internal/tui"
)

// TUICmd opens the interactive reader.
type TUICmd struct{}

func (c *TUICmd) Run(g *Globals, ctx context.Context) error {
	// The terminal belongs to the TUI, so logs only go to the configured file.
	a, err := g.bootstrap(ctx, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	m := tui.New(a.service, tui.Options{
		Debounce: time.Duration(a.cfg.TUI.DebounceMS) * time.Millisecond,
		Logger:   a.logger,
	})
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// SearchCmd prints literal matches for a phrase.
type SearchCmd struct {
	Query []string `arg:"" help:"Phrase to search for"`
}

func (c *SearchCmd) Run(g *Globals, ctx context.Context, kctx *kong.Context) error {
	a, err := g.bootstrap(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	st := a.service.Search(strings.Join(c.Query, " "))
	printSearch(kctx.Stdout, st)
	return nil
}

func printSearch(w io.Writer, st domain.SearchState) {
	if !st.Active {
		fmt.Fprintln(w, "Nothing to search for.")
		return
	}
	if len(st.Results) == 0 {
		fmt.Fprintln(w, "No verses found.")
		return
	}
	for _, r := range st.Results {
		fmt.Fprintf(w, "Chapter %d: %s (%s)\n", r.Chapter.Number, r.Chapter.NameMeaning, r.Chapter.Name)
		if r.Verse != nil {
			fmt.Fprintf(w, "    Verse %d: %s\n", r.Verse.VerseNumber, r.Verse.Text)
		}
	}
}

// AskCmd answers a question with ranked verses.
type AskCmd struct {
	Question []string `arg:"" help:"Question to ask"`
	Explain  bool     `help:"Show the expanded search terms and verse scores"`
}

func (c *AskCmd) Run(g *Globals, ctx context.Context, kctx *kong.Context) error {
	a, err := g.bootstrap(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	q := strings.Join(c.Question, " ")
	ans, err := a.service.Ask(q)
	if err != nil {
		return err
	}
	fmt.Fprintln(kctx.Stdout, ans.Text)

	if c.Explain {
		fmt.Fprintln(kctx.Stdout)
		exp := a.engine.Expand(q)
		data, err := json.MarshalIndent(exp, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(kctx.Stdout, string(data))
		for _, r := range ans.Results {
			fmt.Fprintf(kctx.Stdout, "%d.%d\tscore=%g\n", r.Chapter.Number, r.Verse.Number, r.Score)
		}
	}
	return nil
}

// VerseCmd prints one verse, optionally copying it to the clipboard.
type VerseCmd struct {
	Chapter int  `arg:"" help:"Chapter number"`
	Verse   int  `arg:"" help:"Verse number"`
	Copy    bool `help:"Also copy the verse to the clipboard"`
}

func (c *VerseCmd) Run(g *Globals, ctx context.Context, kctx *kong.Context) error {
	if c.Verse <= 0 {
		return fmt.Errorf("verse number must be positive")
	}
	a, err := g.bootstrap(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	ch, v, err := a.service.Resolve(domain.VerseRef{Chapter: c.Chapter, Verse: c.Verse})
	if err != nil {
		return err
	}
	text := share.Text(ch, v)
	fmt.Fprintln(kctx.Stdout, text)
	if c.Copy {
		return share.Copy(text)
	}
	return nil
}

// ChaptersCmd lists the loaded chapters.
type ChaptersCmd struct{}

func (c *ChaptersCmd) Run(g *Globals, ctx context.Context, kctx *kong.Context) error {
	a, err := g.bootstrap(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, ch := range a.service.Chapters() {
		fmt.Fprintf(kctx.Stdout, "%2d  %s (%s), %d verses\n", ch.Number, ch.NameMeaning, ch.Name, ch.VersesCount)
	}
	return nil
}

// ServeCmd runs the HTTP API.
type ServeCmd struct {
	Addr string `help:"Listen address, overriding the config"`
}

func (c *ServeCmd) Run(g *Globals, ctx context.Context) error {
	a, err := g.bootstrap(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	addr := a.cfg.Server.Addr
	if c.Addr != "" {
		addr = c.Addr
	}
	setGinMode(a.cfg.Server.Mode)
	return server.NewServer(a.service, a.logger).Run(ctx, addr)
}

// MCPCmd serves MCP tools over stdio.
type MCPCmd struct{}

func (c *MCPCmd) Run(g *Globals, ctx context.Context) error {
	// Stdout carries the protocol, so logs go to stderr.
	a, err := g.bootstrap(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	return mcpserver.New(a.service, a.logger).ServeStdio()
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(kctx *kong.Context) error {
	fmt.Fprintf(kctx.Stdout, "gita %s\n", version)
	return nil
}

func setGinMode(mode string) {
	switch mode {
	case gin.DebugMode, gin.TestMode:
		gin.SetMode(mode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
}
