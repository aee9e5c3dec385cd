package bracket

import (
	"time"

	"github.com/google/uuid"
)

type Court struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Surface   *string   `db:"surface" json:"surface,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
