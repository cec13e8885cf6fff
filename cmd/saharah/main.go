// Package main is the Saharah CLI entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/saharah/saharah/internal/auth"
	"github.com/saharah/saharah/internal/chat"
	"github.com/saharah/saharah/internal/cli"
	"github.com/saharah/saharah/internal/config"
	"github.com/saharah/saharah/internal/contacts"
	"github.com/saharah/saharah/internal/diag"
	"github.com/saharah/saharah/internal/directory"
	"github.com/saharah/saharah/internal/i18n"
	"github.com/saharah/saharah/internal/keyword"
	"github.com/saharah/saharah/internal/lawdata"
	"github.com/saharah/saharah/internal/models"
	"github.com/saharah/saharah/internal/search"
	"github.com/saharah/saharah/internal/server"
	"github.com/saharah/saharah/internal/storage"
	"github.com/saharah/saharah/internal/uploads"
	"github.com/saharah/saharah/internal/watcher"
	"github.com/saharah/saharah/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/saharah/config.yaml"

// loadConfig reads .env, then loads config. A config.yaml in the working directory wins
// over the default path; a default path that does not exist yields the built-in defaults.
// Returns the config and the path actually loaded ("" for built-in defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if err := config.LoadEnvFile(".env"); err != nil {
		return nil, "", err
	}
	if path == defaultConfigPath {
		if cwd, err := os.Getwd(); err == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, err := os.Stat(fallback); err == nil {
				cfg, err := config.Load(fallback)
				if err != nil {
					return nil, "", err
				}
				return cfg, fallback, nil
			}
		}
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			cfg, err := config.Default()
			return cfg, "", err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	args := os.Args[2:]
	var err error
	switch command {
	case "server":
		err = runServer(args)
	case "laws":
		err = runLaws(args, os.Stdout)
	case "law":
		err = runLaw(args, os.Stdout)
	case "categories":
		err = runCategories(args, os.Stdout)
	case "search":
		err = runSearch(args, os.Stdout)
	case "lawyers":
		err = runLawyers(args, os.Stdout)
	case "diag":
		err = runDiag(args, os.Stdout)
	case "version", "--version", "-v":
		fmt.Printf("saharah version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// commonFlags are shared by every subcommand.
type commonFlags struct {
	configPath *string
	format     *string
	debug      *bool
}

func newFlagSet(name string) (*flag.FlagSet, *commonFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	return fs, &commonFlags{
		configPath: fs.String("config", defaultConfigPath, "config file path"),
		format:     fs.String("format", "text", "output format: text or json"),
		debug:      fs.Bool("debug", false, "enable debug logging"),
	}
}

// argsReorder moves flags that appear after positionals to the front, since the flag
// package stops at the first non-flag argument.
func argsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

// joinArgs joins positionals so multi-word queries work with or without quoting.
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// setup loads config and builds a logger, honouring --debug over the file setting.
func setup(cf *commonFlags) (*config.Config, *zap.Logger, error) {
	cfg, _, err := loadConfig(*cf.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := utils.NewLogger(cfg.Debug || *cf.debug)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger, nil
}

// newStore builds the law reference store for the configured source and returns both.
func newStore(cfg *config.Config, logger *zap.Logger) (*lawdata.Store, lawdata.Source) {
	src := lawdata.NewSource(cfg.Data.Source, &http.Client{})
	return lawdata.NewStore(src,
		lawdata.WithLogger(logger),
		lawdata.WithCache(cfg.Data.CacheOrDefault()),
		lawdata.WithFetchTimeout(cfg.Data.FetchTimeout),
		lawdata.WithLoadTimeout(cfg.Data.LoadTimeout),
	), src
}

// newResponder returns the remote assistant when a base URL is configured, else the scripted one.
func newResponder(cfg *config.ChatConfig, logger *zap.Logger) chat.Responder {
	if cfg.BaseURL != "" {
		return chat.NewRemoteClient(cfg.BaseURL,
			chat.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
			chat.WithLogger(logger),
		)
	}
	delay := cfg.ReplyDelay
	if delay < 0 {
		delay = 0
	}
	return chat.NewScriptedResponder(delay)
}

func runServer(args []string) error {
	fs, cf := newFlagSet("server")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, logger, err := setup(cf)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("config loaded",
		zap.String("data_source", cfg.Data.Source),
		zap.Bool("cache", cfg.Data.CacheOrDefault()),
		zap.String("database", cfg.Storage.DatabasePath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, src := newStore(cfg, logger)
	kw, err := keyword.NewBleveIndex(cfg.Storage.BleveIndexPath)
	if err != nil {
		return err
	}
	defer func() { _ = kw.Close() }()
	engine := search.NewEngine(kw, search.WithLogger(logger))

	db, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	defer func() { _ = db.Close() }()

	language := i18n.NewSelector(cfg.State.Dir)
	contactSvc := contacts.NewService(db, contacts.WithLogger(logger))
	uploadSvc := uploads.NewService(db, uploads.WithLogger(logger))
	if err := contactSvc.Seed(ctx, language.Language()); err != nil {
		return err
	}
	if err := uploadSvc.Seed(ctx, language.Language()); err != nil {
		return err
	}

	if _, err := engine.Reindex(ctx, store.LoadCatalog(ctx)); err != nil {
		logger.Warn("initial section index failed", zap.Error(err))
	}

	deps := &server.Dependencies{
		Store:        store,
		Engine:       engine,
		Storage:      db,
		Contacts:     contactSvc,
		Uploads:      uploadSvc,
		Conversation: chat.NewConversation(newResponder(&cfg.Chat, logger), language.Language()),
		Session:      auth.NewSession(cfg.State.Dir, auth.WithLogger(logger)),
		Language:     language,
		DiskPaths:    []string{cfg.Storage.DatabasePath, cfg.Storage.BleveIndexPath},
	}

	if dirSrc, ok := src.(*lawdata.DirSource); ok {
		deps.DataDir = dirSrc.DataDir()
		if cfg.Data.WatchOrDefault() {
			w := watcher.NewWatcher(dirSrc.DataDir(), []string{".json"}, func(paths []string) {
				logger.Info("datasets changed, reloading catalog", zap.Int("files", len(paths)))
				store.Invalidate()
				if _, err := engine.Reindex(ctx, store.LoadCatalog(ctx)); err != nil {
					logger.Warn("reindex after change failed", zap.Error(err))
				}
			}, watcher.WithLogger(logger))
			if err := w.Start(ctx); err != nil {
				logger.Warn("dataset watcher not started", zap.String("dir", dirSrc.DataDir()), zap.Error(err))
			} else {
				defer w.Stop()
			}
		}
	}

	srv := server.NewServer(&cfg.Server, deps, logger)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigChan:
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	logger.Info("Shutting down...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Stop(shutdownCtx)
}

func runLaws(args []string, out io.Writer) error {
	fs, cf := newFlagSet("laws")
	category := fs.String("category", "", "filter by category or main category")
	if err := fs.Parse(argsReorder(args)); err != nil {
		return err
	}
	cfg, logger, err := setup(cf)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, _ := newStore(cfg, logger)
	cat := store.LoadCatalog(context.Background())
	return cli.WriteCatalog(out, lawdata.Filter(cat, joinArgs(fs.Args()), *category), cli.ParseFormat(*cf.format))
}

func runLaw(args []string, out io.Writer) error {
	fs, cf := newFlagSet("law")
	if err := fs.Parse(argsReorder(args)); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: saharah law [flags] <id>")
	}
	cfg, logger, err := setup(cf)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, _ := newStore(cfg, logger)
	col, ok := store.GetCollection(context.Background(), fs.Arg(0))
	if !ok {
		return fmt.Errorf("law %q not found", fs.Arg(0))
	}
	return cli.WriteCollection(out, col, cli.ParseFormat(*cf.format))
}

func runCategories(args []string, out io.Writer) error {
	fs, cf := newFlagSet("categories")
	mainCat := fs.String("main", "", `list the sub-categories of "Legal Laws" or "Islamic Laws"`)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, logger, err := setup(cf)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, _ := newStore(cfg, logger)
	cat := store.LoadCatalog(context.Background())
	menu := lawdata.CategoryMenu(cat)
	if *mainCat != "" {
		mc := models.MainCategory(*mainCat)
		if mc != models.LegalLaws && mc != models.IslamicLaws {
			return fmt.Errorf("unknown main category %q", *mainCat)
		}
		menu = lawdata.SubcategoryMenu(cat, mc)
	}
	return cli.WriteMenu(out, menu, cli.ParseFormat(*cf.format))
}

func runSearch(args []string, out io.Writer) error {
	fs, cf := newFlagSet("search")
	limit := fs.Int("limit", 10, "number of results")
	collection := fs.String("law", "", "restrict results to one law id")
	fuzzy := fs.Bool("fuzzy", false, "enable fuzzy matching for typo tolerance")
	if err := fs.Parse(argsReorder(args)); err != nil {
		return err
	}
	query := joinArgs(fs.Args())
	if query == "" {
		return errors.New("usage: saharah search [flags] <query>")
	}
	cfg, logger, err := setup(cf)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	kw, err := keyword.NewMemIndex()
	if err != nil {
		return err
	}
	defer func() { _ = kw.Close() }()
	engine := search.NewEngine(kw, search.WithLogger(logger))
	store, _ := newStore(cfg, logger)
	if _, err := engine.Reindex(ctx, store.LoadCatalog(ctx)); err != nil {
		return err
	}
	response, err := engine.Search(ctx, &models.SearchQuery{
		Query:        query,
		Limit:        *limit,
		CollectionID: *collection,
		FuzzyEnabled: *fuzzy,
	})
	if err != nil {
		return err
	}
	return cli.WriteSearchResults(out, response, cli.ParseFormat(*cf.format))
}

func runLawyers(args []string, out io.Writer) error {
	fs, cf := newFlagSet("lawyers")
	city := fs.String("city", directory.Any, "filter by city")
	spec := fs.String("specialization", directory.Any, "filter by specialization")
	lang := fs.String("lang", "", "language: en or ur (default: saved choice)")
	if err := fs.Parse(argsReorder(args)); err != nil {
		return err
	}
	cfg, _, err := loadConfig(*cf.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	l, ok := i18n.Parse(*lang)
	if !ok {
		l = i18n.NewSelector(cfg.State.Dir).Language()
	}
	return cli.WriteLawyers(out, directory.Filter(l, joinArgs(fs.Args()), *city, *spec), cli.ParseFormat(*cf.format))
}

func runDiag(args []string, out io.Writer) error {
	fs, cf := newFlagSet("diag")
	baseURL := fs.String("url", "", "assistant base URL (default: chat.base_url from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	target := *baseURL
	cfg, _, err := loadConfig(*cf.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if target == "" {
		target = cfg.Chat.BaseURL
	}
	if target == "" {
		return errors.New("no assistant URL: set chat.base_url or pass --url")
	}
	report := diag.Probe(context.Background(), &http.Client{Timeout: cfg.Chat.Timeout}, target)
	if _, err := io.WriteString(out, report.String()); err != nil {
		return err
	}
	if !report.OK() {
		return errors.New("assistant checks failed")
	}
	return nil
}

func printUsage() {
	fmt.Println(`saharah - Bilingual women's rights legal reference

Usage:
  saharah server [flags]               Start the HTTP server
  saharah laws [flags] [query]         List laws, optionally filtered
  saharah law [flags] <id>             Show one law with all its sections
  saharah categories [flags]           Show the category menu
  saharah search [flags] <query>       Search law sections
  saharah lawyers [flags] [name]       List lawyers in the directory
  saharah diag [flags]                 Check the remote assistant
  saharah version                      Show version
  saharah help                         Show this help

Common Flags:
  --config string    Config file path (default: /usr/local/etc/saharah/config.yaml)
  --format string    Output format: text or json (default: text)
  --debug            Enable debug logging

Laws Flags:
  --category string          Category, or "Legal Laws" / "Islamic Laws"

Categories Flags:
  --main string              Show sub-categories of one main category

Search Flags:
  --limit int                Number of results (default: 10)
  --law string               Restrict to one law id
  --fuzzy                    Enable fuzzy matching

Lawyers Flags:
  --city string              City value (default: all)
  --specialization string    Specialization value (default: all)
  --lang string              en or ur

Diag Flags:
  --url string               Assistant base URL

Examples:
  saharah server
  saharah laws --category "Islamic Laws"
  saharah law pakistan-penal-code
  saharah search harassment at work
  saharah search --format json inheritance
  saharah lawyers --city lahore
  saharah diag --url https://example.ngrok-free.app`)
}
