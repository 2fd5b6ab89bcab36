// Package server hosts a site directory for the terminal browser's HTTP source
// (shellnav --site http://host:port). Files are served as they are; pages
// that do not exist return 404 so the existence check fails, and
// extensionless paths that match no file get the shell document.
package server

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shellName = "index.html"

// NewHandler returns the site handler for fsys.
func NewHandler(fsys fs.FS, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	s := &site{fsys: fsys, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	r.Get("/*", s.serve)
	r.Head("/*", s.serve)
	return r
}

type site struct {
	fsys   fs.FS
	logger *log.Logger
}

func (s *site) serve(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" {
		name = shellName
	}

	if s.isFile(name) {
		http.ServeFileFS(w, r, s.fsys, name)
		return
	}
	if path.Ext(name) == "" {
		http.ServeFileFS(w, r, s.fsys, shellName)
		return
	}
	http.NotFound(w, r)
}

func (s *site) isFile(name string) bool {
	info, err := fs.Stat(s.fsys, name)
	return err == nil && !info.IsDir()
}

// ListenAndServe serves handler on addr until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("site server listening addr=%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Printf("site server stopped addr=%s", addr)
		return nil
	}
}
