// Package main is the entry point for the linedit editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dshills/linedit/internal/app"
	"github.com/dshills/linedit/internal/config"
	"github.com/dshills/linedit/internal/editor"
	"github.com/dshills/linedit/internal/project/document"
	perrors "github.com/dshills/linedit/internal/project/errors"
	"github.com/dshills/linedit/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath  string
	logLevel    string
	guard       bool
	guardSet    bool
	recoverPath string
	showVersion bool
	file        string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.showVersion {
		fmt.Printf("linedit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	out, err := app.OpenLogOutput(cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer out.Close()

	logger := app.NewLogger(out, app.ParseLogLevel(cfg.Logging.Level))

	opened, err := openDocument(opts, cfg, logger)
	if err != nil {
		logger.Error("%v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	doc := opened.doc
	defer func() {
		if err := doc.Close(); err != nil {
			logger.Warn("close: %v", err)
		}
	}()

	ed := editor.New(doc,
		editor.WithTabWidth(cfg.Editor.TabWidth),
		editor.WithCursor(opened.cursor),
	)
	ed.SetMessage(opened.message)

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	interval := cfg.Document.RecoveryInterval
	if !cfg.Document.Recovery {
		interval = 0
	}
	application := app.New(ed, term, app.Options{
		RecoveryInterval: interval,
		Watch:            cfg.Document.Watch,
		Logger:           logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	if err := application.Run(ctx); err != nil {
		if doc.IsDirty() {
			logger.Warn("exiting with unsaved changes: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parseFlags reads the command line. At most one file may be named.
func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	flags := flag.NewFlagSet("linedit", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&opts.configPath, "config", config.DefaultPath(), "Path to configuration file (.toml, .yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	flags.BoolVar(&opts.guard, "guard", false, "Refuse to open a file another session is editing")
	flags.StringVar(&opts.recoverPath, "recover", "", "Restore unsaved edits from a recovery artifact")
	flags.BoolVar(&opts.showVersion, "version", false, "Show version information")

	flags.Usage = func() {
		fmt.Fprintf(stderr, "linedit - a small modal text editor\n\n")
		fmt.Fprintf(stderr, "Usage: linedit [options] [file]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  linedit                      Edit a new unnamed document\n")
		fmt.Fprintf(stderr, "  linedit notes.txt            Open or create a file\n")
		fmt.Fprintf(stderr, "  linedit -recover .notes.txt.swp\n")
		fmt.Fprintf(stderr, "                               Continue an interrupted session\n")
	}

	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	flags.Visit(func(f *flag.Flag) {
		if f.Name == "guard" {
			opts.guardSet = true
		}
	})

	switch flags.NArg() {
	case 0:
	case 1:
		opts.file = flags.Arg(0)
	default:
		return opts, fmt.Errorf("expected at most one file, got %d", flags.NArg())
	}
	if opts.file != "" && opts.recoverPath != "" {
		return opts, errors.New("-recover takes the file from the artifact; do not name one")
	}
	return opts, nil
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.guardSet {
		cfg.Document.SessionGuard = opts.guard
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type openedDocument struct {
	doc     *document.Document
	cursor  document.Position
	message string
}

// openDocument opens the named file, creating its identity if it does not
// exist yet, or restores a recovery artifact. With neither, the document is
// new and unnamed.
func openDocument(opts options, cfg *config.Config, logger *app.Logger) (openedDocument, error) {
	docOpts := []document.Option{document.WithSessionGuard(cfg.Document.SessionGuard)}

	if opts.recoverPath != "" {
		doc, cursor, err := document.Recover(opts.recoverPath, docOpts...)
		if err != nil {
			return openedDocument{}, err
		}
		ins, del := recoveryDiff(doc)
		logger.Recovered(opts.recoverPath, doc.Path(), doc.LineCount(), ins, del)
		msg := fmt.Sprintf("recovered %d lines (+%d -%d vs disk)", doc.LineCount(), ins, del)
		return openedDocument{doc: doc, cursor: cursor, message: msg}, nil
	}

	if opts.file == "" {
		return openedDocument{doc: document.New(docOpts...)}, nil
	}

	doc, err := document.Open(opts.file, docOpts...)
	if errors.Is(err, fs.ErrNotExist) {
		doc, err = document.Create(opts.file, docOpts...)
		if err != nil {
			return openedDocument{}, err
		}
		logger.Created(doc.Path())
		return openedDocument{doc: doc, message: "new file"}, nil
	}
	if perrors.IsPolicy(err) {
		return openedDocument{}, fmt.Errorf("%w; if no other linedit has it open, restore it with -recover", err)
	}
	if err != nil {
		return openedDocument{}, err
	}
	logger.Opened(doc.Path(), doc.LineCount())
	return openedDocument{doc: doc}, nil
}

// recoveryDiff counts the runes the recovered text adds to and removes from
// the file currently on disk.
func recoveryDiff(doc *document.Document) (inserted, deleted int) {
	onDisk := ""
	if data, err := os.ReadFile(doc.Path()); err == nil {
		onDisk = string(data)
	}
	return app.DiffSummary(onDisk, strings.Join(doc.Lines(), "\n"))
}
