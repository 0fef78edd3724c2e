package autosave

import (
	"context"
	"fmt"
	"sync"
	"time"

	"notevault-be/internal/dto"

	"github.com/google/uuid"
)

const DefaultQuietPeriod = 2 * time.Second

// SaveFunc persists the latest editor payload for one note.
type SaveFunc func(ctx context.Context, userId uuid.UUID, req *dto.AutosaveNoteRequest) error

// Debouncer coalesces rapid editor writes into one save per quiet period.
// Per note there is at most one pending timer and at most one save in
// flight; edits that land during a save mark the entry dirty and get exactly
// one follow-up save once the in-flight one completes.
type Debouncer struct {
	mu      sync.Mutex
	quiet   time.Duration
	save    SaveFunc
	entries map[uuid.UUID]*entry
	closed  bool
}

type entry struct {
	timer   *time.Timer
	userId  uuid.UUID
	pending dto.AutosaveNoteRequest
	saving  bool
	dirty   bool
}

func NewDebouncer(quiet time.Duration, save SaveFunc) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Debouncer{
		quiet:   quiet,
		save:    save,
		entries: make(map[uuid.UUID]*entry),
	}
}

// Queue records the latest payload for the note and restarts its quiet
// timer. Successive calls within the quiet period collapse into one save of
// the last payload.
func (d *Debouncer) Queue(userId uuid.UUID, req *dto.AutosaveNoteRequest) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	e, ok := d.entries[req.Id]
	if !ok {
		e = &entry{}
		d.entries[req.Id] = e
	}
	e.userId = userId
	e.pending = *req

	if e.saving {
		e.dirty = true
		return
	}

	if e.timer != nil {
		e.timer.Stop()
	}
	noteId := req.Id
	e.timer = time.AfterFunc(d.quiet, func() { d.fire(noteId) })
}

// Flush saves the note's pending payload immediately, skipping the quiet
// period. Used when the editor is about to lose the buffer.
func (d *Debouncer) Flush(noteId uuid.UUID) {
	d.mu.Lock()
	e, ok := d.entries[noteId]
	if !ok || e.saving {
		d.mu.Unlock()
		return
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	d.mu.Unlock()

	d.fire(noteId)
}

// Close stops all timers and saves every pending payload before returning.
func (d *Debouncer) Close() {
	d.mu.Lock()
	d.closed = true
	pending := make([]uuid.UUID, 0, len(d.entries))
	for id, e := range d.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
		if !e.saving {
			pending = append(pending, id)
		}
	}
	d.mu.Unlock()

	for _, id := range pending {
		d.fire(id)
	}
}

func (d *Debouncer) fire(noteId uuid.UUID) {
	d.mu.Lock()
	e, ok := d.entries[noteId]
	if !ok {
		d.mu.Unlock()
		return
	}
	if e.saving {
		// A save is already running; its completion handles the follow-up.
		e.dirty = true
		d.mu.Unlock()
		return
	}
	e.saving = true
	e.dirty = false
	userId := e.userId
	req := e.pending
	d.mu.Unlock()

	if err := d.save(context.Background(), userId, &req); err != nil {
		fmt.Printf("[WARN] Autosave failed for note %s: %v\n", noteId, err)
	}

	d.mu.Lock()
	e.saving = false
	if e.dirty && !d.closed {
		e.dirty = false
		e.timer = time.AfterFunc(d.quiet, func() { d.fire(noteId) })
		d.mu.Unlock()
		return
	}
	delete(d.entries, noteId)
	d.mu.Unlock()
}
