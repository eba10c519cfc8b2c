package saved

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/jimezsa/jobhunt/internal/api"
	"github.com/jimezsa/jobhunt/internal/models"
	"github.com/jimezsa/jobhunt/internal/store"
	"github.com/rs/zerolog"
)

type call struct {
	save  bool
	id    models.ID
	reply chan reply
}

type reply struct {
	res api.SaveResult
	err error
}

// fakeBackend parks each save/unsave until the test answers it.
type fakeBackend struct {
	mu      sync.Mutex
	ids     []models.ID
	loadErr error
	calls   chan call
}

func newFakeBackend(ids ...models.ID) *fakeBackend {
	return &fakeBackend{ids: ids, calls: make(chan call, 8)}
}

func (b *fakeBackend) SavedIDs(context.Context) ([]models.ID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	return append([]models.ID(nil), b.ids...), nil
}

func (b *fakeBackend) Save(ctx context.Context, id models.ID) (api.SaveResult, error) {
	return b.park(ctx, true, id)
}

func (b *fakeBackend) Unsave(ctx context.Context, id models.ID) (api.SaveResult, error) {
	return b.park(ctx, false, id)
}

func (b *fakeBackend) park(ctx context.Context, save bool, id models.ID) (api.SaveResult, error) {
	c := call{save: save, id: id, reply: make(chan reply, 1)}
	b.calls <- c
	select {
	case r := <-c.reply:
		return r.res, r.err
	case <-ctx.Done():
		return api.SaveResult{}, ctx.Err()
	}
}

func (b *fakeBackend) next(t *testing.T) call {
	t.Helper()
	select {
	case c := <-b.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatalf("no backend call arrived")
		return call{}
	}
}

func wait(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatalf("toggle never resolved")
		return nil
	}
}

func loaded(t *testing.T, b *fakeBackend) *Controller {
	t.Helper()
	c := NewController(b, zerolog.Nop())
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return c
}

func TestToggleAppliesBeforeResponse(t *testing.T) {
	b := newFakeBackend()
	c := loaded(t, b)

	done := c.Toggle(context.Background(), "7")
	if !c.IsSaved("7") {
		t.Fatalf("toggle should show the job as saved immediately")
	}
	if !c.Pending() {
		t.Fatalf("expected a pending mutation")
	}

	req := b.next(t)
	if !req.save || req.id != "7" {
		t.Fatalf("unexpected call: %+v", req)
	}
	req.reply <- reply{res: api.SaveResult{OK: true}}
	if err := wait(t, done); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if !c.IsSaved("7") || c.Pending() {
		t.Fatalf("saved=%v pending=%v after success", c.IsSaved("7"), c.Pending())
	}
}

func TestToggleRollsBackOnFailure(t *testing.T) {
	b := newFakeBackend("7")
	c := loaded(t, b)

	done := c.Toggle(context.Background(), "7")
	if c.IsSaved("7") {
		t.Fatalf("unsave should apply immediately")
	}
	boom := errors.New("server error")
	b.next(t).reply <- reply{err: boom}
	if err := wait(t, done); !errors.Is(err, boom) {
		t.Fatalf("Toggle() error = %v, want %v", err, boom)
	}
	if !c.IsSaved("7") {
		t.Fatalf("failed unsave should roll back to saved")
	}
}

func noCall(t *testing.T, b *fakeBackend) {
	t.Helper()
	select {
	case got := <-b.calls:
		t.Fatalf("unexpected backend call: %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDoubleToggleReturnsToOriginal(t *testing.T) {
	boom := errors.New("boom")
	ok := api.SaveResult{OK: true}
	cases := []struct {
		name      string
		firstRes  api.SaveResult
		firstErr  error
		secondRes api.SaveResult
		secondErr error
		wantSaved bool
	}{
		{name: "both succeed", firstRes: ok, secondRes: ok},
		{
			name:      "both succeed with id lists",
			firstRes:  api.SaveResult{OK: true, SavedIDs: []models.ID{"42"}, HasSavedIDs: true},
			secondRes: api.SaveResult{OK: true, SavedIDs: []models.ID{}, HasSavedIDs: true},
		},
		{name: "save fails", firstErr: boom, secondRes: ok},
		{name: "unsave fails", firstRes: ok, secondErr: boom, wantSaved: true},
		{
			name:      "unsave fails after id list",
			firstRes:  api.SaveResult{OK: true, SavedIDs: []models.ID{"42"}, HasSavedIDs: true},
			secondErr: boom,
			wantSaved: true,
		},
		{name: "both fail", firstErr: boom, secondErr: boom},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newFakeBackend()
			c := loaded(t, b)
			ctx := context.Background()

			first := c.Toggle(ctx, "42")
			second := c.Toggle(ctx, "42")
			if c.IsSaved("42") {
				t.Fatalf("second toggle should show unsaved")
			}

			saveCall := b.next(t)
			if !saveCall.save {
				t.Fatalf("first call should be the save: %+v", saveCall)
			}
			noCall(t, b)

			saveCall.reply <- reply{res: tc.firstRes, err: tc.firstErr}
			wait(t, first)
			if c.IsSaved("42") {
				t.Fatalf("job shown saved while the unsave is pending")
			}

			unsaveCall := b.next(t)
			if unsaveCall.save {
				t.Fatalf("second call should be the unsave: %+v", unsaveCall)
			}
			unsaveCall.reply <- reply{res: tc.secondRes, err: tc.secondErr}
			wait(t, second)

			if got := c.IsSaved("42"); got != tc.wantSaved {
				t.Fatalf("IsSaved(42) = %v, want %v (IDs=%v)", got, tc.wantSaved, c.IDs())
			}
			if c.Pending() {
				t.Fatalf("expected nothing pending")
			}
		})
	}
}

func TestMutationsAreSentInOrder(t *testing.T) {
	b := newFakeBackend()
	c := loaded(t, b)
	ctx := context.Background()

	first := c.Toggle(ctx, "a")
	second := c.Toggle(ctx, "b")

	callA := b.next(t)
	if callA.id != "a" {
		t.Fatalf("first call id = %s, want a", callA.id)
	}
	noCall(t, b)

	callA.reply <- reply{res: api.SaveResult{OK: true, SavedIDs: []models.ID{"a"}, HasSavedIDs: true}}
	if err := wait(t, first); err != nil {
		t.Fatalf("Toggle(a) error = %v", err)
	}
	if !c.IsSaved("b") {
		t.Fatalf("an older id list must not drop the pending save of b")
	}

	callB := b.next(t)
	callB.reply <- reply{res: api.SaveResult{OK: true, SavedIDs: []models.ID{"a", "b"}, HasSavedIDs: true}}
	if err := wait(t, second); err != nil {
		t.Fatalf("Toggle(b) error = %v", err)
	}
	if got, want := c.IDs(), []models.ID{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("IDs() = %v, want %v", got, want)
	}
}

func TestCanceledMutationRollsBack(t *testing.T) {
	b := newFakeBackend()
	c := loaded(t, b)

	first := c.Toggle(context.Background(), "a")
	ctx, cancel := context.WithCancel(context.Background())
	second := c.Toggle(ctx, "b")
	callA := b.next(t)
	cancel()

	if err := wait(t, second); !errors.Is(err, context.Canceled) {
		t.Fatalf("Toggle(b) error = %v, want context.Canceled", err)
	}
	if c.IsSaved("b") {
		t.Fatalf("canceled save should roll back")
	}
	select {
	case <-first:
		t.Fatalf("first toggle resolved without a reply")
	default:
	}

	callA.reply <- reply{res: api.SaveResult{OK: true}}
	if err := wait(t, first); err != nil {
		t.Fatalf("Toggle(a) error = %v", err)
	}
	if !c.IsSaved("a") || c.IsSaved("b") {
		t.Fatalf("IDs() = %v, want [a]", c.IDs())
	}
}

func TestServerSavedIDsReplaceSet(t *testing.T) {
	b := newFakeBackend("1", "2")
	c := loaded(t, b)

	done := c.Toggle(context.Background(), "3")
	b.next(t).reply <- reply{res: api.SaveResult{OK: true, SavedIDs: []models.ID{"2", "3", "9"}, HasSavedIDs: true}}
	if err := wait(t, done); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}

	want := []models.ID{"2", "3", "9"}
	if got := c.IDs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("IDs() = %v, want %v", got, want)
	}
}

func TestLoadFailureLeavesEmptySet(t *testing.T) {
	b := newFakeBackend("1")
	c := loaded(t, b)

	b.loadErr = errors.New("unauthorized")
	if err := c.Load(context.Background()); err == nil {
		t.Fatalf("expected load error")
	}
	if ids := c.IDs(); len(ids) != 0 {
		t.Fatalf("IDs() = %v, want empty", ids)
	}
}

func TestSaveIsNoopWhenAlreadySaved(t *testing.T) {
	b := newFakeBackend("5")
	c := loaded(t, b)

	if err := wait(t, c.Save(context.Background(), "5")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	select {
	case got := <-b.calls:
		t.Fatalf("unexpected backend call: %+v", got)
	default:
	}
}

func TestLocalBackendPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	fs, err := store.NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	c := NewController(NewLocalBackend(fs), zerolog.Nop())
	if err := c.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	for _, id := range []models.ID{"a", "b", "a"} {
		if err := wait(t, c.Toggle(ctx, id)); err != nil {
			t.Fatalf("Toggle(%s) error = %v", id, err)
		}
	}

	reopened, _ := store.NewFileStore(path)
	ids, err := NewLocalBackend(reopened).SavedIDs(ctx)
	if err != nil {
		t.Fatalf("SavedIDs() error = %v", err)
	}
	if !reflect.DeepEqual(ids, []models.ID{"b"}) {
		t.Fatalf("SavedIDs() = %v, want [b]", ids)
	}
	if got := c.IDs(); !reflect.DeepEqual(got, []models.ID{"b"}) {
		t.Fatalf("IDs() = %v, want [b]", got)
	}
}

func TestLocalBackendRapidDoubleToggle(t *testing.T) {
	ctx := context.Background()
	fs, err := store.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	backend := NewLocalBackend(fs)
	c := NewController(backend, zerolog.Nop())
	if err := c.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for i := 0; i < 20; i++ {
		first := c.Toggle(ctx, "x")
		second := c.Toggle(ctx, "x")
		if err := wait(t, second); err != nil {
			t.Fatalf("unsave error = %v", err)
		}
		if err := wait(t, first); err != nil {
			t.Fatalf("save error = %v", err)
		}

		ids, err := backend.SavedIDs(ctx)
		if err != nil {
			t.Fatalf("SavedIDs() error = %v", err)
		}
		if len(ids) != 0 || c.IsSaved("x") {
			t.Fatalf("round %d: stored=%v shown=%v, want unsaved", i, ids, c.IDs())
		}
	}
}
