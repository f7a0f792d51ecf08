//go:build integration

package repository_test

import (
	"context"
	"testing"

	"github.com/Eursukkul/ticketing-service/internal/models"
	"github.com/Eursukkul/ticketing-service/internal/repository"
	"github.com/Eursukkul/ticketing-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketRepository_FindByID_JoinsDetails(t *testing.T) {
	db := testutil.ResetSchema(t)
	repo := repository.NewTicketRepository()
	ctx := context.Background()

	seat := "B7"
	ticket := &models.Ticket{Show: "Joined Show", Details: &models.TicketDetails{Seat: &seat}}
	require.NoError(t, repo.Create(ctx, db, ticket))

	bare, err := repo.FindByID(ctx, db, ticket.ID, false)
	require.NoError(t, err)
	assert.Nil(t, bare.Details)

	full, err := repo.FindByID(ctx, db, ticket.ID, true)
	require.NoError(t, err)
	require.NotNil(t, full.Details)
	require.NotNil(t, full.Details.Seat)
	assert.Equal(t, "B7", *full.Details.Seat)
}

func TestTicketRepository_FindByID_Missing(t *testing.T) {
	db := testutil.ResetSchema(t)

	_, err := repository.NewTicketRepository().FindByID(context.Background(), db, 99, true)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTicketRepository_CreateDetails_Duplicate(t *testing.T) {
	db := testutil.ResetSchema(t)
	repo := repository.NewTicketRepository()
	ctx := context.Background()

	ticket := &models.Ticket{Show: "Dup Show", Details: &models.TicketDetails{}}
	require.NoError(t, repo.Create(ctx, db, ticket))

	err := repo.CreateDetails(ctx, db, &models.TicketDetails{TicketID: ticket.ID})
	assert.ErrorIs(t, err, repository.ErrDuplicateDetails)
}

func TestTicketRepository_Delete_RemovesDetails(t *testing.T) {
	db := testutil.ResetSchema(t)
	repo := repository.NewTicketRepository()
	ctx := context.Background()

	ticket := &models.Ticket{Show: "Gone Show", Details: &models.TicketDetails{}}
	require.NoError(t, repo.Create(ctx, db, ticket))

	ok, err := repo.Delete(ctx, db, ticket.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.FindDetails(ctx, db, ticket.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
