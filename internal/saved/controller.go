// Package saved keeps the set of bookmarked job ids and applies save/unsave
// optimistically against a backend.
package saved

import (
	"context"
	"sort"
	"sync"

	"github.com/jimezsa/jobhunt/internal/api"
	"github.com/jimezsa/jobhunt/internal/models"
	"github.com/rs/zerolog"
)

// Backend is the source of truth for saved ids. *api.Client and *LocalBackend
// satisfy it.
type Backend interface {
	SavedIDs(ctx context.Context) ([]models.ID, error)
	Save(ctx context.Context, id models.ID) (api.SaveResult, error)
	Unsave(ctx context.Context, id models.ID) (api.SaveResult, error)
}

type set map[models.ID]struct{}

func newSet(ids []models.ID) set {
	out := make(set, len(ids))
	for _, id := range ids {
		if id != "" {
			out[id] = struct{}{}
		}
	}
	return out
}

func (s set) has(id models.ID) bool {
	_, ok := s[id]
	return ok
}

func (s set) put(id models.ID, member bool) {
	if member {
		s[id] = struct{}{}
		return
	}
	delete(s, id)
}

// mutation is one toggle: the flip already applied locally plus the request
// that has to confirm it. A mutation is sent only after prev has resolved, so
// the backend sees requests in the order they were issued.
type mutation struct {
	id   models.ID
	seq  uint64
	save bool
	prev <-chan struct{}
	done chan struct{}
}

type Controller struct {
	backend Backend
	logger  zerolog.Logger

	mu        sync.Mutex
	shown     set
	confirmed set
	pending   map[models.ID]int
	// confirmedSeq is the seq of the newest mutation the backend accepted per id.
	confirmedSeq map[models.ID]uint64
	seq          uint64
	inflight     int
	// last is closed when the newest issued mutation has been committed.
	last <-chan struct{}
}

func NewController(backend Backend, logger zerolog.Logger) *Controller {
	return &Controller{
		backend:      backend,
		logger:       logger,
		shown:        set{},
		confirmed:    set{},
		pending:      map[models.ID]int{},
		confirmedSeq: map[models.ID]uint64{},
	}
}

// Load replaces the set with the backend's. On failure the set is left empty
// and the error is returned for display.
func (c *Controller) Load(ctx context.Context) error {
	ids, err := c.backend.SavedIDs(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Warn().Err(err).Msg("loading saved jobs failed")
		c.shown = set{}
		c.confirmed = set{}
		return err
	}
	c.shown = newSet(ids)
	c.confirmed = newSet(ids)
	return nil
}

func (c *Controller) IsSaved(id models.ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shown.has(id)
}

// IDs returns the displayed saved ids in a stable order.
func (c *Controller) IDs() []models.ID {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ID, 0, len(c.shown))
	for id := range c.shown {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Pending reports whether any save or unsave is still waiting on the backend.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight > 0
}

// Toggle flips the saved state of id before returning and confirms it with the
// backend in the background, after every earlier mutation has resolved. The channel yields the request error (nil on
// success) once the outcome has been reconciled into the set.
func (c *Controller) Toggle(ctx context.Context, id models.ID) <-chan error {
	done := make(chan error, 1)
	m := c.apply(id)
	go func() {
		err := c.issue(ctx, m)
		done <- err
		close(done)
	}()
	return done
}

// Save marks id as saved. It is a no-op when id is already shown as saved.
func (c *Controller) Save(ctx context.Context, id models.ID) <-chan error {
	return c.setMembership(ctx, id, true)
}

// Unsave removes id. It is a no-op when id is not shown as saved.
func (c *Controller) Unsave(ctx context.Context, id models.ID) <-chan error {
	return c.setMembership(ctx, id, false)
}

func (c *Controller) setMembership(ctx context.Context, id models.ID, member bool) <-chan error {
	if c.IsSaved(id) == member {
		done := make(chan error, 1)
		done <- nil
		close(done)
		return done
	}
	return c.Toggle(ctx, id)
}

func (c *Controller) apply(id models.ID) mutation {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	m := mutation{id: id, seq: c.seq, save: !c.shown.has(id), prev: c.last, done: make(chan struct{})}
	c.last = m.done
	c.shown.put(id, m.save)
	c.pending[id]++
	c.inflight++
	return m
}

func (c *Controller) issue(ctx context.Context, m mutation) error {
	defer close(m.done)

	var (
		res api.SaveResult
		err error
	)
	if m.prev != nil {
		select {
		case <-m.prev:
		case <-ctx.Done():
			err = ctx.Err()
			c.commit(m, res, err)
			return err
		}
	}
	if m.save {
		res, err = c.backend.Save(ctx, m.id)
	} else {
		res, err = c.backend.Unsave(ctx, m.id)
	}
	c.commit(m, res, err)
	return err
}

// commit folds the outcome of m into the confirmed set. Once no request for
// the id is left in flight, the shown membership snaps to the confirmed one,
// which rolls back a failed toggle. A full id list from the backend replaces
// both sets only when it answers the newest mutation and nothing is pending.
func (c *Controller) commit(m mutation, res api.SaveResult, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inflight--
	c.pending[m.id]--
	if c.pending[m.id] <= 0 {
		delete(c.pending, m.id)
	}

	if err != nil {
		c.logger.Debug().Err(err).Str("job_id", m.id.String()).Bool("save", m.save).Msg("saved mutation failed, rolling back")
	} else if m.seq > c.confirmedSeq[m.id] {
		c.confirmedSeq[m.id] = m.seq
		c.confirmed.put(m.id, m.save)
	}

	if err == nil && res.HasSavedIDs && m.seq == c.seq && c.inflight == 0 {
		c.confirmed = newSet(res.SavedIDs)
		c.shown = newSet(res.SavedIDs)
		return
	}
	if _, waiting := c.pending[m.id]; !waiting {
		c.shown.put(m.id, c.confirmed.has(m.id))
	}
}
