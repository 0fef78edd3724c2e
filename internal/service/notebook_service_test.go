package service

import (
	"context"
	"testing"

	"notevault-be/internal/apperror"
	"notevault-be/internal/dto"
	"notevault-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNotebook(t *testing.T) {
	f := newFixture()
	userId := uuid.New()
	ctx := context.Background()

	t.Run("trims the title", func(t *testing.T) {
		res, err := f.notebookService.Create(ctx, userId, &dto.CreateNotebookRequest{Title: "  Groceries  "})
		require.NoError(t, err)
		assert.Equal(t, "Groceries", res.Title)
		assert.Equal(t, entity.LifecycleActive, res.State)
	})

	t.Run("rejects whitespace-only title", func(t *testing.T) {
		_, err := f.notebookService.Create(ctx, userId, &dto.CreateNotebookRequest{Title: "   "})
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("appends to the end of the active list", func(t *testing.T) {
		res, err := f.notebookService.Create(ctx, userId, &dto.CreateNotebookRequest{Title: "Work"})
		require.NoError(t, err)
		assert.Equal(t, 1, res.SortOrder)

		// Another user's list starts from zero.
		other, err := f.notebookService.Create(ctx, uuid.New(), &dto.CreateNotebookRequest{Title: "Theirs"})
		require.NoError(t, err)
		assert.Equal(t, 0, other.SortOrder)
	})
}

func TestArchiveNotebook(t *testing.T) {
	f := newFixture()
	userId := uuid.New()
	ctx := context.Background()

	nb, err := f.notebookService.Create(ctx, userId, &dto.CreateNotebookRequest{Title: "Journal"})
	require.NoError(t, err)

	res, err := f.notebookService.Archive(ctx, userId, nb.Id)
	require.NoError(t, err)
	assert.Equal(t, entity.LifecycleArchived, res.State)

	t.Run("archiving twice is a no-op", func(t *testing.T) {
		again, err := f.notebookService.Archive(ctx, userId, nb.Id)
		require.NoError(t, err)
		assert.Equal(t, entity.LifecycleArchived, again.State)
	})

	t.Run("archived notebook keeps its notes untouched", func(t *testing.T) {
		// Archive does not cascade; only the notebook row changes state.
		assert.NotContains(t, f.publisher.eventTypes(), "NOTE_ARCHIVED")
	})

	t.Run("trashed notebook cannot be archived", func(t *testing.T) {
		_, err := f.notebookService.Trash(ctx, userId, nb.Id)
		require.NoError(t, err)

		_, err = f.notebookService.Archive(ctx, userId, nb.Id)
		assert.ErrorIs(t, err, apperror.ErrPrecondition)
	})
}

func TestTrashAndRestoreNotebook(t *testing.T) {
	f := newFixture()
	userId := uuid.New()
	ctx := context.Background()

	nb, err := f.notebookService.Create(ctx, userId, &dto.CreateNotebookRequest{Title: "Recipes"})
	require.NoError(t, err)

	trashed, err := f.notebookService.Trash(ctx, userId, nb.Id)
	require.NoError(t, err)
	assert.Equal(t, entity.LifecycleTrashed, trashed.State)
	require.NotNil(t, trashed.TrashedAt)

	t.Run("trashing twice keeps the original trashed_at", func(t *testing.T) {
		again, err := f.notebookService.Trash(ctx, userId, nb.Id)
		require.NoError(t, err)
		assert.Equal(t, trashed.TrashedAt, again.TrashedAt)
	})

	t.Run("restore lands on active and clears trashed_at", func(t *testing.T) {
		restored, err := f.notebookService.Restore(ctx, userId, nb.Id)
		require.NoError(t, err)
		assert.Equal(t, entity.LifecycleActive, restored.State)
		assert.Nil(t, restored.TrashedAt)
	})

	t.Run("restore from archived also lands on active", func(t *testing.T) {
		_, err := f.notebookService.Archive(ctx, userId, nb.Id)
		require.NoError(t, err)

		restored, err := f.notebookService.Restore(ctx, userId, nb.Id)
		require.NoError(t, err)
		assert.Equal(t, entity.LifecycleActive, restored.State)
	})
}

func TestPermanentlyDeleteNotebook(t *testing.T) {
	f := newFixture()
	userId := uuid.New()
	ctx := context.Background()

	nb, err := f.notebookService.Create(ctx, userId, &dto.CreateNotebookRequest{Title: "Scratch"})
	require.NoError(t, err)

	note, err := f.noteService.Create(ctx, userId, &dto.CreateNoteRequest{
		Title:      "Draft",
		NotebookId: nb.Id,
	})
	require.NoError(t, err)

	t.Run("refused while not trashed", func(t *testing.T) {
		err := f.notebookService.PermanentlyDelete(ctx, userId, nb.Id)
		assert.ErrorIs(t, err, apperror.ErrPrecondition)
	})

	t.Run("cascades to child notes", func(t *testing.T) {
		_, err := f.notebookService.Trash(ctx, userId, nb.Id)
		require.NoError(t, err)

		require.NoError(t, f.notebookService.PermanentlyDelete(ctx, userId, nb.Id))

		_, err = f.notebookService.Show(ctx, userId, nb.Id)
		assert.ErrorIs(t, err, apperror.ErrNotFound)

		_, err = f.noteService.Show(ctx, userId, note.Id)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestListNotebooks(t *testing.T) {
	f := newFixture()
	userId := uuid.New()
	ctx := context.Background()

	// Same sort_order for all three; order must fall back to the title,
	// case-insensitively.
	for _, title := range []string{"banana", "Apple", "cherry"} {
		nb, err := f.notebookService.Create(ctx, userId, &dto.CreateNotebookRequest{Title: title})
		require.NoError(t, err)
		_, err = f.notebookService.Reorder(ctx, userId, &dto.ReorderNotebookRequest{Id: nb.Id, SortOrder: 0})
		require.NoError(t, err)
	}

	active, err := f.notebookService.ListActive(ctx, userId)
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, "Apple", active[0].Title)
	assert.Equal(t, "banana", active[1].Title)
	assert.Equal(t, "cherry", active[2].Title)

	t.Run("trashed notebooks leave the active view", func(t *testing.T) {
		_, err := f.notebookService.Trash(ctx, userId, active[0].Id)
		require.NoError(t, err)

		remaining, err := f.notebookService.ListActive(ctx, userId)
		require.NoError(t, err)
		assert.Len(t, remaining, 2)

		trash, err := f.notebookService.ListTrashed(ctx, userId)
		require.NoError(t, err)
		require.Len(t, trash, 1)
		assert.Equal(t, "Apple", trash[0].Title)
	})

	t.Run("owner isolation", func(t *testing.T) {
		other, err := f.notebookService.ListActive(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, other)
	})
}

func TestNotebookOwnership(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	stranger := uuid.New()
	ctx := context.Background()

	nb, err := f.notebookService.Create(ctx, owner, &dto.CreateNotebookRequest{Title: "Private"})
	require.NoError(t, err)

	// A stranger sees not-found, never a permission hint.
	_, err = f.notebookService.Show(ctx, stranger, nb.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.notebookService.Trash(ctx, stranger, nb.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestNotebookLifecycleEvents(t *testing.T) {
	f := newFixture()
	userId := uuid.New()
	ctx := context.Background()

	nb, err := f.notebookService.Create(ctx, userId, &dto.CreateNotebookRequest{Title: "Events"})
	require.NoError(t, err)
	_, err = f.notebookService.Trash(ctx, userId, nb.Id)
	require.NoError(t, err)
	require.NoError(t, f.notebookService.PermanentlyDelete(ctx, userId, nb.Id))

	assert.Equal(t, []string{"NOTEBOOK_CREATED", "NOTEBOOK_TRASHED", "NOTEBOOK_DELETED"}, f.publisher.eventTypes())
	for _, e := range f.publisher.events {
		assert.Equal(t, userId, e.UserId)
		assert.Equal(t, "notebook", e.EntityKind)
	}
}
