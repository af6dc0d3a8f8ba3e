package store

import (
	"log/slog"
	"sync"
	"time"

	"github.com/launchdash/launchdash/server/internal/dataset"
	"github.com/launchdash/launchdash/server/internal/view"
)

// Entry is a dataset together with its view and the time it was installed.
type Entry struct {
	Dataset   *dataset.Dataset
	View      *view.View
	Version   uint64
	UpdatedAt time.Time
}

// Store is a thread-safe holder of the current Entry.
type Store struct {
	mu   sync.RWMutex
	cur  *Entry
	subs map[chan *Entry]struct{}
	now  func() time.Time // injectable for deterministic tests
}

// New creates a Store serving ds as version 1.
func New(ds *dataset.Dataset) *Store {
	s := &Store{
		subs: make(map[chan *Entry]struct{}),
		now:  time.Now,
	}
	s.cur = s.entry(ds, 1)
	return s
}

func (s *Store) entry(ds *dataset.Dataset, version uint64) *Entry {
	return &Entry{
		Dataset:   ds,
		View:      view.New(ds),
		Version:   version,
		UpdatedAt: s.now(),
	}
}

// Current returns the Entry being served. Callers must not modify it.
func (s *Store) Current() *Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Swap installs ds as the new current dataset and notifies subscribers.
// Subscribers that have not consumed the previous notification only see the
// latest Entry.
func (s *Store) Swap(ds *dataset.Dataset) *Entry {
	s.mu.Lock()
	e := s.entry(ds, s.cur.Version+1)
	s.cur = e
	for ch := range s.subs {
		select {
		case <-ch: // drop the stale notification
		default:
		}
		ch <- e
	}
	n := len(s.subs)
	s.mu.Unlock()

	slog.Info("store: dataset swapped",
		"version", e.Version, "records", ds.Len(), "subscribers", n)
	return e
}

// Subscribe returns a channel that receives the new Entry after every Swap,
// and a function that cancels the subscription and closes the channel.
func (s *Store) Subscribe() (<-chan *Entry, func()) {
	ch := make(chan *Entry, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, ch)
			close(ch)
			s.mu.Unlock()
		})
	}
}
