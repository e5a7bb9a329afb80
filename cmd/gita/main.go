// Command gita reads and searches the Bhagavad Gita from the terminal, over
// HTTP or as MCP tools.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"gita/internal/config"
	"gita/internal/corpus/memory"
	"gita/internal/logging"
	"gita/internal/search"
	"gita/internal/service"
	"gita/internal/summarizer"
)

const version = "0.1.0"

// Globals are the flags shared by every command.
type Globals struct {
	Config   string   `name:"config" short:"c" help:"Path to YAML or TOML config file (default ./config.yaml, then ~/.config/gita/config.yaml)" type:"path"`
	Corpus   []string `name:"corpus" help:"Corpus files or globs, overriding the config" sep:","`
	LogLevel string   `name:"log-level" help:"Log level (debug, info, warn, error)"`
}

// CLI defines the command-line interface for gita.
type CLI struct {
	Globals

	TUI      TUICmd      `cmd:"" default:"1" help:"Open the interactive reader"`
	Search   SearchCmd   `cmd:"" help:"Find chapters and verses containing a phrase"`
	Ask      AskCmd      `cmd:"" help:"Ask a question and get the most relevant verses"`
	Verse    VerseCmd    `cmd:"" help:"Print a single verse"`
	Chapters ChaptersCmd `cmd:"" help:"List the chapters"`
	Serve    ServeCmd    `cmd:"" help:"Start the JSON HTTP API"`
	MCP      MCPCmd      `cmd:"" name:"mcp" help:"Serve MCP tools over stdio"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// app is the assembled application for one command invocation.
type app struct {
	cfg     *config.AppConfig
	logger  *slog.Logger
	closer  io.Closer
	engine  *search.Engine
	service *service.GitaServiceImpl
}

// bootstrap loads config, builds the logger and loads the corpus. Logs go to
// logOut unless the config names a log file; nil discards them.
func (g *Globals) bootstrap(ctx context.Context, logOut io.Writer) (*app, error) {
	config.LoadEnv()

	var (
		cfg *config.AppConfig
		err error
	)
	if g.Config == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(g.Config)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyEnv()
	if len(g.Corpus) > 0 {
		cfg.Corpus.Paths = g.Corpus
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}

	logger, closer, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	}, logOut)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	keywords := search.DefaultKeywords()
	if cfg.Search.KeywordsFile != "" {
		if keywords, err = search.LoadKeywords(cfg.Search.KeywordsFile); err != nil {
			_ = closer.Close()
			return nil, err
		}
	}

	engine := search.NewEngine(search.Options{
		LiteralLimit:  cfg.Search.LiteralLimit,
		RankedLimit:   cfg.Search.RankedLimit,
		ExcerptLength: cfg.Search.ExcerptLength,
		Keywords:      keywords,
	}, logger)
	svc := service.NewGitaService(memory.NewStorage(), engine, engine, summarizer.NewResponseComposer(), logger)
	if _, err := svc.LoadCorpus(ctx, cfg.Corpus.Paths); err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	return &app{cfg: cfg, logger: logger, closer: closer, engine: engine, service: svc}, nil
}

func (a *app) Close() error { return a.closer.Close() }

func main() {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gita"),
		kong.Description("Bhagavad Gita reader with phrase search and question answering"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.BindTo(sigCtx, (*context.Context)(nil)),
	)

	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
