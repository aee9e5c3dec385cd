package store

import (
	"context"
	"testing"

	"github.com/AdamBeresnev/clubdesk/internal/bracket"
	"github.com/AdamBeresnev/clubdesk/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourtStore(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	store := NewCourtStore(database)
	ctx := context.Background()

	centre := &bracket.Court{ID: uuid.New(), Name: "Centre", Surface: utils.Ptr("clay")}
	annex := &bracket.Court{ID: uuid.New(), Name: "Annex"}
	require.NoError(t, store.CreateCourt(ctx, centre))
	require.NoError(t, store.CreateCourt(ctx, annex))

	// Names are unique
	assert.ErrorIs(t, store.CreateCourt(ctx, &bracket.Court{ID: uuid.New(), Name: "Centre"}), ErrDuplicate)

	courts, err := store.ListCourts(ctx)
	require.NoError(t, err)
	require.Len(t, courts, 2)
	assert.Equal(t, "Annex", courts[0].Name)
	assert.Nil(t, courts[0].Surface)

	fetched, err := store.GetCourt(ctx, centre.ID)
	require.NoError(t, err)
	assert.Equal(t, "clay", *fetched.Surface)

	_, err = store.GetCourt(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
