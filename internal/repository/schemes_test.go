package repository_test

import (
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/UnknownOlympus/inclusion/internal/models"
	"github.com/UnknownOlympus/inclusion/internal/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemeRowColumns = []string{
	"id", "title", "description", "category", "organization", "url", "start_date", "end_date", "location", "created_at",
}

func TestCreateScheme(t *testing.T) {
	t.Parallel()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := repository.NewRepository(mock, slog.Default())
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	scheme := &models.Scheme{Title: "Assistive devices grant", Category: "health", StartDate: &start}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO schemes`)).
		WithArgs(
			pgxmock.AnyArg(), "Assistive devices grant", "", "health", "", "",
			&start, (*time.Time)(nil), "", pgxmock.AnyArg(),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.CreateScheme(t.Context(), scheme)

	require.NoError(t, err)
	assert.NotEmpty(t, scheme.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSchemes(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	query := regexp.QuoteMeta(`ORDER BY start_date DESC NULLS LAST, created_at DESC;`)
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(query).WillReturnRows(
			pgxmock.NewRows(schemeRowColumns).
				AddRow("s-1", "Grant", "", "health", "", "", &start, nil, "Delhi", createdAt).
				AddRow("s-2", "Scholarship", "", "education", "", "", nil, nil, "", createdAt),
		)

		schemes, err := repo.ListSchemes(ctx)

		require.NoError(t, err)
		require.Len(t, schemes, 2)
		assert.Equal(t, start, *schemes[0].StartDate)
		assert.Nil(t, schemes[1].StartDate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - query", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(query).WillReturnError(assert.AnError)

		schemes, err := repo.ListSchemes(ctx)

		require.Nil(t, schemes)
		require.ErrorContains(t, err, "failed to query schemes")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteScheme(t *testing.T) {
	t.Parallel()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := repository.NewRepository(mock, slog.Default())

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM schemes WHERE id = $1;`)).
		WithArgs("s-x").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = repo.DeleteScheme(t.Context(), "s-x")

	require.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
