package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/build-with-chris/pepe-api/internal/models"
)

func newAvailabilityRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAvailabilityRepositoryCreateAndList(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()

	repo := NewAvailabilityRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO availability_slots")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	date := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	slot := &models.AvailabilitySlot{ArtistID: "artist-1", Date: date}
	require.NoError(t, repo.Create(context.Background(), slot))
	require.NotEmpty(t, slot.ID)

	rows := sqlmock.NewRows([]string{"id", "artist_id", "date", "created_at"}).
		AddRow(slot.ID, slot.ArtistID, date, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, artist_id, date, created_at")).
		WithArgs("artist-1").
		WillReturnRows(rows)

	slots, err := repo.ListByArtist(context.Background(), "artist-1", nil)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	require.Equal(t, slot.ID, slots[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryListFrom(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()

	repo := NewAvailabilityRepository(db)
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "artist_id", "date", "created_at"}).
		AddRow("slot-1", "artist-1", from.AddDate(0, 0, 3), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, artist_id, date, created_at")).
		WithArgs("artist-1", from).
		WillReturnRows(rows)

	slots, err := repo.ListByArtist(context.Background(), "artist-1", &from)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()

	repo := NewAvailabilityRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM availability_slots")).
		WithArgs("slot-1", "artist-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "slot-1", "artist-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()

	repo := NewAvailabilityRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM availability_slots")).
		WithArgs("slot-404", "artist-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "slot-404", "artist-1")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
