// Package syncer keeps the local store and a remote snapshot store in sync.
//
// Consistency is deliberately eventual and coarse: snapshots move whole
// collections per key, the remote wins on pull, and the last full snapshot
// written for a key silently replaces whatever was there. There is no
// record-level merge, no conflict resolution, and no causal ordering.
package syncer

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	apperrors "financehub/internal/errors"
)

// LocalStore is the ledger-side surface the syncer needs: a full snapshot
// out, wholesale per-key replacement in.
type LocalStore interface {
	Export() (map[string]json.RawMessage, error)
	ImportKey(key string, value json.RawMessage) error
}

// RemoteStore is the remote snapshot store.
type RemoteStore interface {
	FetchAll(ctx context.Context) (map[string]json.RawMessage, error)
	Put(ctx context.Context, key string, value json.RawMessage) error
}

// Watcher is implemented by remote stores that can push per-key change
// notifications. Watch blocks until ctx is done, invoking handler for every
// remote change.
type Watcher interface {
	Watch(ctx context.Context, handler func(key string, value json.RawMessage)) error
}

// Syncer coordinates pull, push, and live updates between the two stores.
type Syncer struct {
	local  LocalStore
	remote RemoteStore
	log    *zap.SugaredLogger

	// pushing is the single-flight guard: a push requested while another is
	// in flight is dropped, not queued.
	pushing atomic.Bool

	mu        sync.RWMutex
	observers []func(key string)
}

// New creates a Syncer.
func New(local LocalStore, remote RemoteStore, log *zap.SugaredLogger) *Syncer {
	return &Syncer{local: local, remote: remote, log: log}
}

// Start performs the initial pull and, when the remote supports it, begins
// watching for live updates. It resolves exactly once: a failed initial pull
// is returned to the caller instead of being retried on a timer.
func (s *Syncer) Start(ctx context.Context) error {
	if err := s.Pull(ctx); err != nil {
		return err
	}
	if watcher, ok := s.remote.(Watcher); ok {
		go func() {
			if err := watcher.Watch(ctx, s.handleRemoteChange); err != nil && ctx.Err() == nil {
				s.log.Errorw("remote watch ended", "error", err)
			}
		}()
	}
	return nil
}

// Pull overwrites local collections with the remote snapshot, key by key.
// The remote wins unconditionally; there is no timestamp comparison and no
// merge at the record level.
func (s *Syncer) Pull(ctx context.Context) error {
	snapshot, err := s.remote.FetchAll(ctx)
	if err != nil {
		s.log.Errorw("pull failed", "error", err)
		return apperrors.Wrap(apperrors.ErrSyncFailed, err)
	}

	for key, value := range snapshot {
		if err := s.local.ImportKey(key, value); err != nil {
			s.log.Errorw("pull import failed", "key", key, "error", err)
			return apperrors.Wrap(apperrors.ErrSyncFailed, err)
		}
		s.notifyObservers(key)
	}
	s.log.Infow("pull complete", "keys", len(snapshot))
	return nil
}

// Push writes the entire local snapshot to the remote, per key. A second
// concurrent push is dropped and reported as in flight; nothing is queued.
// The caller decides whether that matters: background triggers just log it.
func (s *Syncer) Push(ctx context.Context) error {
	if !s.pushing.CompareAndSwap(false, true) {
		return apperrors.ErrSyncInFlight
	}
	defer s.pushing.Store(false)

	snapshot, err := s.local.Export()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrSyncFailed, err)
	}

	for key, value := range snapshot {
		if err := s.remote.Put(ctx, key, value); err != nil {
			s.log.Errorw("push failed", "key", key, "error", err)
			return apperrors.Wrap(apperrors.ErrSyncFailed, err)
		}
	}
	s.log.Infow("push complete", "keys", len(snapshot))
	return nil
}

// Subscribe registers an observer invoked with the collection key after any
// remote-driven replacement of local data.
func (s *Syncer) Subscribe(fn func(key string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// handleRemoteChange applies one live update: the remote value replaces the
// local collection wholesale, then observers are told which key changed.
func (s *Syncer) handleRemoteChange(key string, value json.RawMessage) {
	if err := s.local.ImportKey(key, value); err != nil {
		s.log.Errorw("live update import failed", "key", key, "error", err)
		return
	}
	s.notifyObservers(key)
}

func (s *Syncer) notifyObservers(key string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, fn := range s.observers {
		fn(key)
	}
}
