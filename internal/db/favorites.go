package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/interview-prep/internal/types"
)

// ErrFavoriteNotFound is returned when a favorite ID does not exist.
var ErrFavoriteNotFound = errors.New("favorite not found")

// Favorite is one persisted favorite question row.
type Favorite struct {
	ID             uuid.UUID
	Question       string
	Answer         string
	Category       types.Category
	JobDescription string
	Source         string
	SourceURL      string
	Company        string
	SkillTag       string
	CreatedAt      time.Time
}

// ToQuestion converts a favorite row to the API question shape.
func (f *Favorite) ToQuestion() types.Question {
	return types.Question{
		ID:             f.ID.String(),
		Question:       f.Question,
		Answer:         f.Answer,
		Category:       f.Category,
		JobDescription: f.JobDescription,
		Source:         f.Source,
		SourceURL:      f.SourceURL,
		Company:        f.Company,
		SkillTag:       f.SkillTag,
	}
}

// CreateFavorite persists one favorite and returns the stored row.
func (db *DB) CreateFavorite(ctx context.Context, req types.AddFavoriteRequest) (*Favorite, error) {
	fav := &Favorite{
		ID:             uuid.New(),
		Question:       req.Question,
		Answer:         req.Answer,
		Category:       req.Category,
		JobDescription: req.JobDescription,
		Source:         req.Source,
		SourceURL:      req.SourceURL,
		Company:        req.Company,
		SkillTag:       req.SkillTag,
	}

	err := db.pool.QueryRow(ctx,
		`INSERT INTO favorites (id, question, answer, category, job_description, source, source_url, company, skill_tag)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at`,
		fav.ID, fav.Question, fav.Answer, fav.Category, fav.JobDescription,
		fav.Source, fav.SourceURL, fav.Company, fav.SkillTag,
	).Scan(&fav.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create favorite: %w", err)
	}
	return fav, nil
}

// ListFavorites returns all favorites, newest first.
func (db *DB) ListFavorites(ctx context.Context) ([]Favorite, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, question, answer, category, job_description, source, source_url, company, skill_tag, created_at
		 FROM favorites
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []Favorite
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.Category, &f.JobDescription,
			&f.Source, &f.SourceURL, &f.Company, &f.SkillTag, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read favorites: %w", err)
	}
	return favorites, nil
}

// DeleteFavorite removes one favorite by ID.
func (db *DB) DeleteFavorite(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// GetFavorite loads one favorite by ID.
func (db *DB) GetFavorite(ctx context.Context, id uuid.UUID) (*Favorite, error) {
	var f Favorite
	err := db.pool.QueryRow(ctx,
		`SELECT id, question, answer, category, job_description, source, source_url, company, skill_tag, created_at
		 FROM favorites WHERE id = $1`, id,
	).Scan(&f.ID, &f.Question, &f.Answer, &f.Category, &f.JobDescription,
		&f.Source, &f.SourceURL, &f.Company, &f.SkillTag, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFavoriteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get favorite: %w", err)
	}
	return &f, nil
}
