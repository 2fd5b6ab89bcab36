package main

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"stet.codes/shellnav/clients"
	"stet.codes/shellnav/demo"
	"stet.codes/shellnav/router"
	"stet.codes/shellnav/shell"
)

const (
	defaultHistoryDB = "$HOME/.local/share/shellnav/history.db"
	defaultLogPath   = "$HOME/.local/share/shellnav/debug.log"
	defaultAddr      = ":8080"
	defaultTimeout   = 30 * time.Second

	// historyOff disables history persistence when used as SHELLNAV_HISTORY_DB.
	historyOff = "off"
)

// Config holds runtime settings loaded from the environment and flags.
type Config struct {
	Site      string // base URL, directory, or "" for the embedded demo
	TwoStep   bool
	Sanitize  bool
	Ordering  string
	Timeout   time.Duration
	HistoryDB string
	LogPath   string
	Addr      string
}

// configFromEnv reads SHELLNAV_* variables, falling back to defaults.
func configFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Site:      getenv("SHELLNAV_SITE"),
		TwoStep:   true,
		Sanitize:  false,
		Ordering:  router.LastStarted.String(),
		Timeout:   defaultTimeout,
		HistoryDB: defaultHistoryDB,
		LogPath:   defaultLogPath,
		Addr:      defaultAddr,
	}

	var err error
	if v := getenv("SHELLNAV_TWO_STEP"); v != "" {
		if cfg.TwoStep, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("invalid SHELLNAV_TWO_STEP: %w", err)
		}
	}
	if v := getenv("SHELLNAV_SANITIZE"); v != "" {
		if cfg.Sanitize, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("invalid SHELLNAV_SANITIZE: %w", err)
		}
	}
	if v := getenv("SHELLNAV_ORDERING"); v != "" {
		cfg.Ordering = v
	}
	if v := getenv("SHELLNAV_TIMEOUT"); v != "" {
		if cfg.Timeout, err = time.ParseDuration(v); err != nil {
			return Config{}, fmt.Errorf("invalid SHELLNAV_TIMEOUT: %w", err)
		}
	}
	if v := getenv("SHELLNAV_HISTORY_DB"); v != "" {
		cfg.HistoryDB = v
	}
	if v := getenv("SHELLNAV_LOG"); v != "" {
		cfg.LogPath = v
	}
	if v := getenv("SHELLNAV_ADDR"); v != "" {
		cfg.Addr = v
	}
	return cfg, nil
}

func (c Config) ordering() (router.Ordering, error) {
	return router.ParseOrdering(c.Ordering)
}

func (c Config) isRemote() bool {
	return strings.HasPrefix(c.Site, "http://") || strings.HasPrefix(c.Site, "https://")
}

// siteFS returns the local file system of the site.
func (c Config) siteFS() (fs.FS, error) {
	if c.isRemote() {
		return nil, fmt.Errorf("site %s is remote; serve needs a directory", c.Site)
	}
	if c.Site == "" {
		return demo.Site(), nil
	}
	info, err := os.Stat(c.Site)
	if err != nil {
		return nil, fmt.Errorf("failed to open site: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("site %s is not a directory", c.Site)
	}
	return os.DirFS(c.Site), nil
}

// pages returns the fragment fetcher for src. Fragments pass through
// untouched unless sanitizing was asked for.
func (c Config) pages(src clients.Source) *clients.Pages {
	p := &clients.Pages{Source: src, TwoStep: c.TwoStep}
	if c.Sanitize {
		p.Sanitizer = shell.NewSanitizer()
	}
	return p
}

// source returns where the site's resources are read from.
func (c Config) source() (clients.Source, error) {
	if c.isRemote() {
		return clients.NewHTTPSource(c.Site, c.Timeout)
	}
	fsys, err := c.siteFS()
	if err != nil {
		return nil, err
	}
	return clients.NewDirSource(fsys), nil
}
