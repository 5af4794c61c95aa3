package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-service/internal/repository"
	"notes-service/pkg/xerrors"
)

func TestNoteCRUD(t *testing.T) {
	uc := NewNoteUsecase(repository.NewNoteMemoryRepository())
	ctx := context.Background()

	note, err := uc.CreateNote(ctx, "user-1", "Groceries", "milk, eggs")
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)
	assert.Equal(t, "user-1", note.UserID)

	got, err := uc.GetNote(ctx, note.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Title)

	updated, err := uc.UpdateNote(ctx, note.ID, "user-1", "Groceries", "milk, eggs, bread")
	require.NoError(t, err)
	assert.Equal(t, "milk, eggs, bread", updated.Content)

	require.NoError(t, uc.DeleteNote(ctx, note.ID, "user-1"))

	_, err = uc.GetNote(ctx, note.ID, "user-1")
	assert.ErrorIs(t, err, xerrors.ErrNoteNotFound)
	err = uc.DeleteNote(ctx, note.ID, "user-1")
	assert.ErrorIs(t, err, xerrors.ErrNoteNotFound)
}

func TestNoteOwnershipScoping(t *testing.T) {
	uc := NewNoteUsecase(repository.NewNoteMemoryRepository())
	ctx := context.Background()

	note, err := uc.CreateNote(ctx, "owner", "private", "secret")
	require.NoError(t, err)

	// Another user cannot read, update or delete someone else's note; the
	// note id alone is not enough.
	_, err = uc.GetNote(ctx, note.ID, "intruder")
	assert.ErrorIs(t, err, xerrors.ErrNoteNotFound)
	_, err = uc.UpdateNote(ctx, note.ID, "intruder", "x", "y")
	assert.ErrorIs(t, err, xerrors.ErrNoteNotFound)
	err = uc.DeleteNote(ctx, note.ID, "intruder")
	assert.ErrorIs(t, err, xerrors.ErrNoteNotFound)

	got, err := uc.GetNote(ctx, note.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, "secret", got.Content)
}

func TestListNotes(t *testing.T) {
	repo := repository.NewNoteMemoryRepository()
	uc := NewNoteUsecase(repo)
	ctx := context.Background()

	notes, err := uc.ListNotes(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, notes)

	first, err := uc.CreateNote(ctx, "user-1", "first", "1")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := uc.CreateNote(ctx, "user-1", "second", "2")
	require.NoError(t, err)
	_, err = uc.CreateNote(ctx, "user-2", "other", "3")
	require.NoError(t, err)

	notes, err = uc.ListNotes(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, notes, 2)

	// Newest first.
	assert.Equal(t, second.ID, notes[0].ID)
	assert.Equal(t, first.ID, notes[1].ID)
}
