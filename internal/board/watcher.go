package board

import (
	"context"
	"sync"

	"github.com/uwtype/uwtype/internal/model"
)

// Subscribable is a store that can push change notifications.
type Subscribable interface {
	Source
	Subscribe(fn func()) func()
}

// Watcher keeps a current leaderboard view, recomputing from scratch on
// every change notification. A failed recompute keeps the last good
// view; stale-but-available beats unavailable.
type Watcher struct {
	store Subscribable
	cfg   model.BoardConfig

	mu   sync.Mutex
	view View

	updates   chan View
	dirty     chan struct{}
	done      chan struct{}
	unsub     func()
	closeOnce sync.Once
}

// NewWatcher computes the initial view and starts listening for store
// changes. The initial recompute error is surfaced; later failures only
// freeze the displayed view.
func NewWatcher(ctx context.Context, store Subscribable, cfg model.BoardConfig) (*Watcher, error) {
	view, err := Recompute(ctx, store, cfg)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		store:   store,
		cfg:     cfg,
		view:    view,
		updates: make(chan View, 1),
		dirty:   make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	w.unsub = store.Subscribe(w.markDirty)
	go w.loop(ctx)
	return w, nil
}

// View returns the last successfully computed view.
func (w *Watcher) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.view
}

// Updates delivers fresh views. The channel is conflated: only the
// newest pending view is kept, so slow consumers never back up the
// recompute loop.
func (w *Watcher) Updates() <-chan View {
	return w.updates
}

// Close releases the change subscription and stops the recompute loop.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		w.unsub()
		close(w.done)
	})
}

func (w *Watcher) markDirty() {
	select {
	case w.dirty <- struct{}{}:
	default:
	}
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-w.done:
			return
		case <-ctx.Done():
			return
		case <-w.dirty:
		}
		view, err := Recompute(ctx, w.store, w.cfg)
		if err != nil {
			continue
		}
		w.mu.Lock()
		w.view = view
		w.mu.Unlock()
		w.publish(view)
	}
}

func (w *Watcher) publish(view View) {
	for {
		select {
		case w.updates <- view:
			return
		default:
		}
		select {
		case <-w.updates:
		default:
		}
	}
}
