package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmmitra/FarmMitraGo/internal/domain"
	apperrors "github.com/farmmitra/FarmMitraGo/pkg/errors"
)

func newReviewTestFixture(t *testing.T) (*ReviewRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewReviewRepository(mock)
	return repo, mock
}

func sampleReview() *domain.Review {
	return &domain.Review{
		ID:          "rev-1",
		UserID:      "u-1",
		Rating:      4,
		Comment:     "Very useful for checking mandi prices.",
		SubmittedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestReviewRepository_Create_Success(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	rv := sampleReview()

	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(rv.ID, rv.UserID, rv.Rating, rv.Comment, rv.SubmittedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), rv)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Create_DuplicateUser(t *testing.T) {
	// The unique index on user_id catches the check-then-insert race; the
	// violation must surface as the same AlreadyExists the precheck produces.
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	rv := sampleReview()

	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(rv.ID, rv.UserID, rv.Rating, rv.Comment, rv.SubmittedAt).
		WillReturnError(fmt.Errorf("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)"))

	err := repo.Create(context.Background(), rv)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists), "expected ErrAlreadyExists, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ExistsByUserID(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("u-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByUserID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_List_OrderedNewestFirst(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "user_id", "name", "rating", "comment", "submitted_at"}).
		AddRow("rev-2", "u-2", "Sita", 3, "Weather forecast is handy.", now).
		AddRow("rev-1", "u-1", "Ram", 5, "", now.Add(-time.Hour))

	mock.ExpectQuery("SELECT .+ FROM reviews rv").
		WillReturnRows(rows)

	reviews, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "rev-2", reviews[0].ID)
	assert.Equal(t, "Sita", reviews[0].UserName)
	assert.Equal(t, "rev-1", reviews[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_List_Empty(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM reviews rv").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "rating", "comment", "submitted_at"}))

	reviews, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_GetSummary_RoundsToOneDecimal(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	// Ratings 5, 3, 4 give a mean of 4.0.
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(pgxmock.NewRows([]string{"avg", "count"}).AddRow(4.0, 3))

	summary, err := repo.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4.0, summary.AverageRating)
	assert.Equal(t, 3, summary.TotalCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_GetSummary_RepeatingDecimal(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	// Ratings 5, 4, 4 give 4.333..., which rounds to 4.3.
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(pgxmock.NewRows([]string{"avg", "count"}).AddRow(13.0/3.0, 3))

	summary, err := repo.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4.3, summary.AverageRating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_GetSummary_EmptyIsZero(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(pgxmock.NewRows([]string{"avg", "count"}).AddRow(0.0, 0))

	summary, err := repo.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.AverageRating)
	assert.Equal(t, 0, summary.TotalCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
