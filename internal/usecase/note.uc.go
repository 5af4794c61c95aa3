package usecase

import (
	"context"

	"github.com/google/uuid"

	"notes-service/internal/domain"
	"notes-service/internal/repository"
)

type NoteUsecase struct {
	notes repository.NoteStore
}

func NewNoteUsecase(notes repository.NoteStore) *NoteUsecase {
	return &NoteUsecase{notes: notes}
}

func (uc *NoteUsecase) CreateNote(ctx context.Context, userID, title, content string) (*domain.Note, error) {
	return uc.notes.Create(ctx, &domain.Note{
		ID:      uuid.New().String(),
		UserID:  userID,
		Title:   title,
		Content: content,
	})
}

func (uc *NoteUsecase) ListNotes(ctx context.Context, userID string) ([]*domain.Note, error) {
	return uc.notes.ListByUser(ctx, userID)
}

func (uc *NoteUsecase) GetNote(ctx context.Context, noteID, userID string) (*domain.Note, error) {
	return uc.notes.GetByID(ctx, noteID, userID)
}

func (uc *NoteUsecase) UpdateNote(ctx context.Context, noteID, userID, title, content string) (*domain.Note, error) {
	return uc.notes.Update(ctx, noteID, userID, title, content)
}

func (uc *NoteUsecase) DeleteNote(ctx context.Context, noteID, userID string) error {
	return uc.notes.Delete(ctx, noteID, userID)
}
