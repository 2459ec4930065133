package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"zkpark/internal/db"
)

func TestReservationRepository_CreateSession(t *testing.T) {
	conn, mock := newMockDB(t)
	repo := NewReservationRepository(conn)

	start := time.Date(2025, 3, 23, 9, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)
	created := time.Date(2025, 3, 22, 18, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO parking_session`)).
		WithArgs("ana@example.com", "0xuser", "owner@example.com", "0xowner", "sess-1", start, end, SessionStatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, created))

	s := &db.ParkingSession{
		UserEmail:       "ana@example.com",
		UserWalletAddr:  "0xuser",
		OwnerEmail:      "owner@example.com",
		OwnerWalletAddr: "0xowner",
		SessionID:       "sess-1",
		StartTimestamp:  start,
		EndTimestamp:    end,
	}
	require.NoError(t, repo.CreateSession(context.Background(), s))
	assert.Equal(t, 7, s.ID)
	assert.Equal(t, SessionStatusActive, s.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_GetBySessionIDNotFound(t *testing.T) {
	conn, mock := newMockDB(t)
	repo := NewReservationRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM parking_session WHERE session_id = $1`)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	s, err := repo.GetBySessionID(context.Background(), "missing")
	assert.Nil(t, s)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestParkingRepository_FindByCoordinates(t *testing.T) {
	conn, mock := newMockDB(t)
	repo := NewParkingRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM parking WHERE lat = $1 AND long = $2`)).
		WithArgs("38.8816", "-77.091").
		WillReturnRows(sqlmock.NewRows([]string{"id", "lat", "long", "addr", "purl1", "email_id"}).
			AddRow("12", "38.8816", "-77.091", "4238 Wilson Blvd", "https://img/1.jpg", "owner@example.com"))

	spots, err := repo.FindByCoordinates(context.Background(), "38.8816", "-77.091")
	require.NoError(t, err)
	require.Len(t, spots, 1)
	assert.Equal(t, "owner@example.com", spots[0].OwnerEmail)
	assert.Equal(t, "https://img/1.jpg", spots[0].ImageURL.String)
}

func TestJobRepository_CompleteEndedSessions(t *testing.T) {
	conn, mock := newMockDB(t)
	repo := NewJobRepository(conn)
	cutoff := time.Date(2025, 3, 23, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE parking_session`)).
		WithArgs(SessionStatusCompleted, SessionStatusActive, cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"session_id"}).AddRow("sess-1").AddRow("sess-4"))

	ids, err := repo.CompleteEndedSessions(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, []string{"sess-1", "sess-4"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_CompleteEndedSessionsNone(t *testing.T) {
	conn, mock := newMockDB(t)
	repo := NewJobRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE parking_session`)).
		WillReturnRows(sqlmock.NewRows([]string{"session_id"}))

	ids, err := repo.CompleteEndedSessions(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
