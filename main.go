package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"stet.codes/shellnav/clients"
	"stet.codes/shellnav/router"
	"stet.codes/shellnav/server"
	"stet.codes/shellnav/shell"
	"stet.codes/shellnav/store"
)

func main() {
	// Load .env file (ignore error if not found)
	_ = godotenv.Load()

	cfg, err := configFromEnv(os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(&cfg).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "shellnav [path]",
		Short: "Browse a static site's pages in the terminal",
		Long: `shellnav loads a site's shell document, injects its header, nav and footer,
and fetches pages/{route}.html into the body as you follow nav links.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runBrowser(cmd.Context(), *cfg, path)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.Site, "site", cfg.Site, "site base URL or directory (empty for the built-in demo)")
	flags.StringVar(&cfg.LogPath, "log", cfg.LogPath, "debug log path")

	root.Flags().BoolVar(&cfg.TwoStep, "two-step", cfg.TwoStep, "check a page exists before fetching its content")
	root.Flags().BoolVar(&cfg.Sanitize, "sanitize", cfg.Sanitize, "strip scripts and event handlers from fetched pages")
	root.Flags().StringVar(&cfg.Ordering, "ordering", cfg.Ordering, "overlapping navigations: last-started or last-completed")
	root.Flags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP request timeout")

	root.AddCommand(newServeCmd(cfg))
	return root
}

func newServeCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a site directory for --site http://...",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context(), *cfg)
		},
	}
	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	return cmd
}

// newFileLogger returns the rotating debug log, with extra writers teed in.
func newFileLogger(path string, extra ...io.Writer) *log.Logger {
	var w io.Writer = &lumberjack.Logger{
		Filename:   os.ExpandEnv(path),
		MaxSize:    5,  // Megabytes before it rotates
		MaxBackups: 3,  // Keep only the 3 most recent old log files
		MaxAge:     28, // Days to keep logs
		Compress:   true,
	}
	if len(extra) > 0 {
		w = io.MultiWriter(append([]io.Writer{w}, extra...)...)
	}
	return log.New(w, "APP: ", log.LstdFlags)
}

func runBrowser(ctx context.Context, cfg Config, path string) error {
	logger := newFileLogger(cfg.LogPath)

	ordering, err := cfg.ordering()
	if err != nil {
		return err
	}
	src, err := cfg.source()
	if err != nil {
		return err
	}

	chrome, err := clients.LoadChrome(ctx, src, logger)
	if err != nil {
		return err
	}
	doc, err := shell.Bind(chrome, logger)
	if err != nil {
		return err
	}

	history := router.NewHistory("/")
	var saver historySaver
	if cfg.HistoryDB != historyOff {
		st, err := store.Open(os.ExpandEnv(cfg.HistoryDB), logger)
		if err != nil {
			return err
		}
		defer st.Close()
		saver = st

		if path == "" {
			entries, index, err := st.Load(ctx)
			if err != nil {
				logger.Printf("failed to restore history: %v", err)
			} else if len(entries) > 0 {
				if err := history.Restore(entries, index); err != nil {
					logger.Printf("failed to restore history: %v", err)
				}
			}
		}
	}
	if path != "" {
		history = router.NewHistory(path)
	}

	m := NewAppModel(ctx, doc, history, cfg.pages(src), AppOptions{
		Ordering: ordering,
		Logger:   logger,
		Saver:    saver,
	})

	// Alt-screen makes this a true full-window TUI (no scrollback spam).
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

func runServer(ctx context.Context, cfg Config) error {
	logger := newFileLogger(cfg.LogPath, os.Stderr)

	fsys, err := cfg.siteFS()
	if err != nil {
		return err
	}
	return server.ListenAndServe(ctx, cfg.Addr, server.NewHandler(fsys, logger), logger)
}
