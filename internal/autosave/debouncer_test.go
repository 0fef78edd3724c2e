package autosave

import (
	"context"
	"sync"
	"testing"
	"time"

	"notevault-be/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saveRecorder struct {
	mu    sync.Mutex
	saves []dto.AutosaveNoteRequest
	block chan struct{} // when set, saves wait on it
}

func (r *saveRecorder) save(_ context.Context, _ uuid.UUID, req *dto.AutosaveNoteRequest) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, *req)
	return nil
}

func (r *saveRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saves)
}

func (r *saveRecorder) last() dto.AutosaveNoteRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves[len(r.saves)-1]
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestDebouncerCoalescesBursts(t *testing.T) {
	rec := &saveRecorder{}
	d := NewDebouncer(30*time.Millisecond, rec.save)
	defer d.Close()

	userId := uuid.New()
	noteId := uuid.New()

	// A burst of keystrokes within the quiet period becomes one save of the
	// last payload.
	for _, content := range []string{"h", "he", "hel", "hello"} {
		d.Queue(userId, &dto.AutosaveNoteRequest{Id: noteId, Content: content})
		time.Sleep(5 * time.Millisecond)
	}

	waitFor(t, time.Second, func() bool { return rec.count() == 1 })
	assert.Equal(t, "hello", rec.last().Content)

	// The entry is gone; quiet time alone triggers nothing more.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, rec.count())
}

func TestDebouncerSeparateNotes(t *testing.T) {
	rec := &saveRecorder{}
	d := NewDebouncer(20*time.Millisecond, rec.save)
	defer d.Close()

	userId := uuid.New()
	d.Queue(userId, &dto.AutosaveNoteRequest{Id: uuid.New(), Content: "a"})
	d.Queue(userId, &dto.AutosaveNoteRequest{Id: uuid.New(), Content: "b"})

	waitFor(t, time.Second, func() bool { return rec.count() == 2 })
}

func TestDebouncerEditDuringSave(t *testing.T) {
	rec := &saveRecorder{block: make(chan struct{})}
	d := NewDebouncer(10*time.Millisecond, rec.save)
	defer d.Close()

	userId := uuid.New()
	noteId := uuid.New()

	d.Queue(userId, &dto.AutosaveNoteRequest{Id: noteId, Content: "v1"})

	// Wait for the save to start (it blocks on rec.block), then edit twice.
	time.Sleep(30 * time.Millisecond)
	d.Queue(userId, &dto.AutosaveNoteRequest{Id: noteId, Content: "v2"})
	d.Queue(userId, &dto.AutosaveNoteRequest{Id: noteId, Content: "v3"})

	close(rec.block)

	// Exactly one follow-up save, carrying the newest payload.
	waitFor(t, time.Second, func() bool { return rec.count() == 2 })
	assert.Equal(t, "v1", rec.saves[0].Content)
	assert.Equal(t, "v3", rec.last().Content)

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, 2, rec.count())
}

func TestDebouncerFlush(t *testing.T) {
	rec := &saveRecorder{}
	d := NewDebouncer(time.Hour, rec.save) // would never fire on its own
	defer d.Close()

	userId := uuid.New()
	noteId := uuid.New()

	d.Queue(userId, &dto.AutosaveNoteRequest{Id: noteId, Content: "unsaved"})
	d.Flush(noteId)

	require.Equal(t, 1, rec.count())
	assert.Equal(t, "unsaved", rec.last().Content)

	// Flushing a note with nothing pending is a no-op.
	d.Flush(uuid.New())
	assert.Equal(t, 1, rec.count())
}

func TestDebouncerClose(t *testing.T) {
	rec := &saveRecorder{}
	d := NewDebouncer(time.Hour, rec.save)

	userId := uuid.New()
	d.Queue(userId, &dto.AutosaveNoteRequest{Id: uuid.New(), Content: "a"})
	d.Queue(userId, &dto.AutosaveNoteRequest{Id: uuid.New(), Content: "b"})

	d.Close()
	assert.Equal(t, 2, rec.count())

	// Queueing after close is dropped.
	d.Queue(userId, &dto.AutosaveNoteRequest{Id: uuid.New(), Content: "late"})
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 2, rec.count())
}
