package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"notes-service/internal/domain"
	"notes-service/pkg/xerrors"
)

type NoteMemoryRepository struct {
	mu    sync.Mutex
	notes map[string]*domain.Note
}

func NewNoteMemoryRepository() *NoteMemoryRepository {
	return &NoteMemoryRepository{notes: make(map[string]*domain.Note)}
}

func (r *NoteMemoryRepository) Create(_ context.Context, note *domain.Note) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := *note
	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now
	r.notes[n.ID] = &n
	copy := n
	return &copy, nil
}

func (r *NoteMemoryRepository) ListByUser(_ context.Context, userID string) ([]*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []*domain.Note{}
	for _, n := range r.notes {
		if n.UserID == userID {
			copy := *n
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *NoteMemoryRepository) GetByID(_ context.Context, noteID, userID string) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[noteID]
	if !ok || n.UserID != userID {
		return nil, xerrors.ErrNoteNotFound
	}
	copy := *n
	return &copy, nil
}

func (r *NoteMemoryRepository) Update(_ context.Context, noteID, userID, title, content string) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[noteID]
	if !ok || n.UserID != userID {
		return nil, xerrors.ErrNoteNotFound
	}
	n.Title = title
	n.Content = content
	n.UpdatedAt = time.Now()
	copy := *n
	return &copy, nil
}

func (r *NoteMemoryRepository) Delete(_ context.Context, noteID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[noteID]
	if !ok || n.UserID != userID {
		return xerrors.ErrNoteNotFound
	}
	delete(r.notes, noteID)
	return nil
}
