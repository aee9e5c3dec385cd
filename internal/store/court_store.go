package store

import (
	"context"

	"github.com/AdamBeresnev/clubdesk/internal/bracket"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CourtStore struct {
	db *sqlx.DB
}

func NewCourtStore(db *sqlx.DB) *CourtStore {
	return &CourtStore{db: db}
}

func (s *CourtStore) CreateCourt(ctx context.Context, court *bracket.Court) error {
	_, err := s.db.NamedExecContext(ctx, "INSERT INTO courts (id, name, surface) VALUES (:id, :name, :surface)", court)
	return duplicate(err, "court "+court.Name)
}

func (s *CourtStore) GetCourt(ctx context.Context, id uuid.UUID) (*bracket.Court, error) {
	var court bracket.Court
	if err := s.db.GetContext(ctx, &court, "SELECT * FROM courts WHERE id = ?", id); err != nil {
		return nil, notFound(err, "court "+id.String())
	}
	return &court, nil
}

func (s *CourtStore) ListCourts(ctx context.Context) ([]bracket.Court, error) {
	courts := []bracket.Court{}
	err := s.db.SelectContext(ctx, &courts, "SELECT * FROM courts ORDER BY name ASC")
	return courts, err
}
