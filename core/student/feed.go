package student

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/classease/core"
)

// Feed keeps live, ranked views of the roster.
// Each subscriber gets the current snapshot on Subscribe and a fresh one after every Notify.
// A subscriber that falls behind only sees the latest snapshot.
type Feed struct {
	repo   Repository
	logger core.Logger

	mu     sync.Mutex // guards subs & closed, and serializes queries with deliveries
	subs   map[uuid.UUID]*subscription
	closed bool
	done   chan struct{}
}

type subscription struct {
	id       uuid.UUID
	sortType SortType
	ch       chan []Student
}

func NewFeed(repo Repository, logger core.Logger) *Feed {
	return &Feed{
		repo:   repo,
		logger: logger,
		subs:   make(map[uuid.UUID]*subscription),
		done:   make(chan struct{}),
	}
}

// Subscribe returns a channel of ranked snapshots. The channel is closed once ctx is done or the Feed is closed.
func (f *Feed) Subscribe(ctx context.Context, st SortType) (<-chan []Student, error) {
	st = ParseSortType(string(st))

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, ErrFeedClosed
	}
	students, err := f.repo.QueryStudents(ctx, st)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}

	sub := &subscription{
		id:       uuid.New(),
		sortType: st,
		ch:       make(chan []Student, 1),
	}
	sub.ch <- students
	f.subs[sub.id] = sub
	f.logger.Debug(fmt.Sprintf("feed: subscription %s opened (sort: %s)", sub.id, st))

	go func() {
		select {
		case <-ctx.Done():
			f.unsubscribe(sub.id)
		case <-f.done:
		}
	}()
	return sub.ch, nil
}

func (f *Feed) unsubscribe(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if sub, ok := f.subs[id]; ok {
		delete(f.subs, id)
		close(sub.ch)
		f.logger.Debug(fmt.Sprintf("feed: subscription %s closed", id))
	}
}

// Notify re-queries the roster once per sort type in use and pushes the results to subscribers.
// It returns the first query error; subscribers of a failed query keep their previous snapshot.
func (f *Feed) Notify(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrFeedClosed
	}

	var firstErr error
	snapshots := make(map[SortType][]Student, len(SortTypes))
	failed := make(map[SortType]bool)
	for _, sub := range f.subs {
		if failed[sub.sortType] {
			continue
		}
		snap, ok := snapshots[sub.sortType]
		if !ok {
			var err error
			if snap, err = f.repo.QueryStudents(ctx, sub.sortType); err != nil {
				err = errors.Wrapf(err, "querying students (sort: %s)", sub.sortType)
				f.logger.Error(fmt.Sprintf("feed: %v", err), err)
				failed[sub.sortType] = true
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			snapshots[sub.sortType] = snap
		}
		deliver(sub, snap)
	}
	return firstErr
}

// deliver replaces whatever snapshot is still pending; callers hold Feed.mu.
func deliver(sub *subscription, snap []Student) {
	cp := make([]Student, len(snap))
	copy(cp, snap)

	select {
	case <-sub.ch:
	default:
	}
	select {
	case sub.ch <- cp:
	default:
	}
}

// Subscribers returns the number of open subscriptions.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Close closes every subscription. Subscribe fails afterwards.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	close(f.done)
	for id, sub := range f.subs {
		delete(f.subs, id)
		close(sub.ch)
	}
}
