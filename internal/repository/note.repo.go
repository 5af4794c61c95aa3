package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"notes-service/internal/domain"
	"notes-service/pkg/xerrors"
)

// NoteStore scopes every read and write to the owning user; a note that
// exists but belongs to someone else reports ErrNoteNotFound.
type NoteStore interface {
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Note, error)
	GetByID(ctx context.Context, noteID, userID string) (*domain.Note, error)
	Update(ctx context.Context, noteID, userID, title, content string) (*domain.Note, error)
	Delete(ctx context.Context, noteID, userID string) error
}

type NoteRepository struct {
	db *pgxpool.Pool
}

func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{db: db}
}

const noteColumns = `id, user_id, title, content, created_at, updated_at`

func scanNote(row pgx.Row) (*domain.Note, error) {
	var n domain.Note
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNoteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	return scanNote(r.db.QueryRow(ctx, `
		INSERT INTO notes (id, user_id, title, content)
		VALUES ($1, $2, $3, $4)
		RETURNING `+noteColumns,
		note.ID, note.UserID, note.Title, note.Content,
	))
}

func (r *NoteRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Note, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+noteColumns+`
		FROM notes
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []*domain.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *NoteRepository) GetByID(ctx context.Context, noteID, userID string) (*domain.Note, error) {
	return scanNote(r.db.QueryRow(ctx, `
		SELECT `+noteColumns+`
		FROM notes
		WHERE id = $1 AND user_id = $2
	`, noteID, userID))
}

func (r *NoteRepository) Update(ctx context.Context, noteID, userID, title, content string) (*domain.Note, error) {
	return scanNote(r.db.QueryRow(ctx, `
		UPDATE notes
		SET title = $3, content = $4, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+noteColumns,
		noteID, userID, title, content,
	))
}

func (r *NoteRepository) Delete(ctx context.Context, noteID, userID string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM notes
		WHERE id = $1 AND user_id = $2
	`, noteID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNoteNotFound
	}
	return nil
}
