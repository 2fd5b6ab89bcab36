package main

import (
	"context"
	"log"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"stet.codes/shellnav/router"
	"stet.codes/shellnav/shell"
)

// historySaver persists the history stack after it changes.
type historySaver interface {
	Save(ctx context.Context, entries []string, index int) error
}

// session is the application context built once at startup: the bound
// document, the history stack, and the router and controller driving them.
// It is the router's NavigationHost.
type session struct {
	doc     *shell.Document
	history *router.History
	router  *router.Router
	nav     *router.Controller
	writer  *snapshotWriter
	logger  *log.Logger

	// Number of the last history snapshot handed to the writer.
	seq uint64

	// Navigations started during the current Update, waiting to be turned
	// into fetch commands.
	queue []router.Navigation
}

func newSession(doc *shell.Document, history *router.History, fetcher router.Fetcher, opts AppOptions) *session {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &session{
		doc:     doc,
		history: history,
		logger:  logger,
	}
	if opts.Saver != nil {
		s.writer = &snapshotWriter{saver: opts.Saver}
	}
	s.router = router.New(s, fetcher, router.Config{Ordering: opts.Ordering, Logger: logger})
	s.nav = router.NewController(s, s.router, func(nav router.Navigation) {
		s.queue = append(s.queue, nav)
	})
	return s
}

func (s *session) PushRoute(path string) { s.history.Push(path) }

func (s *session) OnRouteChange(fn func(path string)) { s.history.OnRouteChange(fn) }

func (s *session) RenderBody(html string) { s.doc.RenderBody(html) }

func (s *session) NavLinks() []router.NavLink { return s.doc.NavLinks() }

func (s *session) SetLinkActive(index int, active bool) { s.doc.SetLinkActive(index, active) }

/**
 * Commands and messages
 */

// fragmentLoadedMsg carries a finished fetch back to the event loop.
type fragmentLoadedMsg struct {
	res router.Result
}

// historySaveFailedMsg indicates persisting the history stack failed.
type historySaveFailedMsg struct {
	err error
}

// fetchFragmentCmd fetches nav's fragment off the event loop.
func fetchFragmentCmd(ctx context.Context, r *router.Router, nav router.Navigation) tea.Cmd {
	return func() tea.Msg {
		return fragmentLoadedMsg{res: r.Fetch(ctx, nav)}
	}
}

// snapshotWriter serializes history saves. Save commands run concurrently
// and may finish in any order, so a snapshot older than the last one
// written is dropped.
type snapshotWriter struct {
	mu      sync.Mutex
	saver   historySaver
	written uint64
}

func (w *snapshotWriter) write(ctx context.Context, seq uint64, entries []string, index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if seq <= w.written {
		return nil
	}
	w.written = seq
	return w.saver.Save(ctx, entries, index)
}

// saveHistoryCmd persists snapshot seq of the history stack.
func saveHistoryCmd(ctx context.Context, w *snapshotWriter, seq uint64, entries []string, index int) tea.Cmd {
	return func() tea.Msg {
		if err := w.write(ctx, seq, entries, index); err != nil {
			return historySaveFailedMsg{err: err}
		}
		return nil
	}
}

// flush turns queued navigations into fetch commands.
func (s *session) flush(ctx context.Context) tea.Cmd {
	if len(s.queue) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(s.queue))
	for _, nav := range s.queue {
		cmds = append(cmds, fetchFragmentCmd(ctx, s.router, nav))
	}
	s.queue = s.queue[:0]
	return tea.Batch(cmds...)
}

// save returns a command persisting the history, or nil without a saver.
func (s *session) save(ctx context.Context) tea.Cmd {
	if s.writer == nil {
		return nil
	}
	s.seq++
	return saveHistoryCmd(ctx, s.writer, s.seq, s.history.Entries(), s.history.Index())
}
