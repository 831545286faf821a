package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/skillmatch/pkg/api"
	"github.com/hazyhaar/skillmatch/pkg/importer"
	"github.com/hazyhaar/skillmatch/pkg/skills"
	"github.com/hazyhaar/skillmatch/pkg/taxonomy"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "match":
		cmdMatch(os.Args[2:])
	case "categorize":
		cmdCategorize(os.Args[2:])
	case "mcp":
		cmdMCP(os.Args[2:])
	case "import":
		cmdImport(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: skillmatch <command>

Commands:
  serve        Start the HTTP server (JSON API + MCP at /mcp)
  match        Score a résumé file against a job description file
  categorize   Extract and group the skills of a text or file
  mcp          Serve the MCP tools over stdio
  import       Download skill categories from public sources
`)
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	debug := fs.Bool("debug", false, "log every endpoint call")
	fs.Parse(args)

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := newLogger(level)

	cfg, found, err := loadConfig(*cfgPath)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	if !found {
		logger.Info("no config file, using defaults", "path", *cfgPath)
	}

	// Load taxonomy.
	reg := taxonomy.NewRegistry(cfg.TaxonomyDir)
	if err := reg.Load(); err != nil {
		logger.Error("failed to load taxonomy", "dir", cfg.TaxonomyDir, "error", err)
		os.Exit(1)
	}
	logger.Info("taxonomy loaded", "dir", cfg.TaxonomyDir, "categories", reg.CategoryCount(), "skills", reg.SkillCount())

	eng := skills.NewEngine(reg)
	mcpSrv := api.NewMCPServer(version, eng, reg, logger)

	// HTTP router.
	router := api.NewRouter(eng, reg, api.Options{
		MaxUploadBytes: cfg.MaxUploadBytes,
		Logger:         logger,
		MCP:            server.NewStreamableHTTPServer(mcpSrv),
	})

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	// SIGHUP: hot reload taxonomy.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading taxonomy")
			if err := reg.Reload(); err != nil {
				logger.Error("reload failed, keeping previous taxonomy", "error", err)
			} else {
				logger.Info("taxonomy reloaded", "categories", reg.CategoryCount(), "skills", reg.SkillCount())
			}
		}
	}()

	if cfg.SourceCheckInterval > 0 {
		sdb, err := importer.OpenSourceDB(cfg.SourcesDB)
		if err != nil {
			logger.Error("open sources db", "path", cfg.SourcesDB, "error", err)
			os.Exit(1)
		}
		defer sdb.Close()
		if err := sdb.Seed(importer.All()); err != nil {
			logger.Error("seed sources", "error", err)
			os.Exit(1)
		}
		go importer.NewChecker(sdb, logger, cfg.SourceCheckInterval).Start(ctx)
	}

	// Start server.
	go func() {
		logger.Info("skillmatch listening", "addr", cfg.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.Shutdown(context.Background())
}

func cmdMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	taxDir := fs.String("taxonomy", "", "taxonomy directory (default: built-in)")
	fs.Parse(args)

	// stdout carries the protocol; logs go to stderr only.
	logger := newLogger(slog.LevelWarn)
	reg := mustLoadRegistry(*taxDir)
	eng := skills.NewEngine(reg)

	if err := server.ServeStdio(api.NewMCPServer(version, eng, reg, logger)); err != nil {
		logger.Error("mcp stdio", "error", err)
		os.Exit(1)
	}
}

func mustLoadRegistry(dir string) *taxonomy.Registry {
	reg := taxonomy.NewRegistry(dir)
	if err := reg.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "load taxonomy: %v\n", err)
		os.Exit(1)
	}
	return reg
}
