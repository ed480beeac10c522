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

var placeRowColumns = []string{
	"id", "name", "description", "address", "st_x", "st_y", "tags", "photos", "verified", "added_by", "created_at",
}

const fetchPlacesQuery = `
	SELECT id, address
	FROM places
	WHERE
		location IS NULL
		AND geocoding_attempts < $1
		AND address <> ''
	ORDER BY created_at ASC
	LIMIT $2;
`

func TestCreatePlace(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	query := regexp.QuoteMeta(`INSERT INTO places (id, name, description, address, location, tags, photos, verified, added_by, created_at)`)

	t.Run("success - pending geocoding", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)
		place := &models.Place{Name: "Ramp cafe", Address: "Connaught Place, New Delhi"}

		mock.ExpectExec(query).
			WithArgs(
				pgxmock.AnyArg(), "Ramp cafe", "", "Connaught Place, New Delhi", (*float64)(nil), (*float64)(nil),
				[]string{}, []string{}, false, (*string)(nil), pgxmock.AnyArg(),
			).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err = repo.CreatePlace(ctx, place)

		require.NoError(t, err)
		assert.NotEmpty(t, place.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - insert", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(query).WithArgs(anyArgs(11)...).WillReturnError(assert.AnError)

		err = repo.CreatePlace(ctx, &models.Place{Name: "Ramp cafe"})

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to insert place")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFindPlacesNear(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	query := regexp.QuoteMeta(`AND (cardinality($4::text[]) = 0 OR tags && $4::text[])`)
	createdAt := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	center := models.NewPoint(77.209, 28.6139)

	t.Run("success - nil tags become empty filter", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(query).WithArgs(77.209, 28.6139, 3000.0, []string{}, 200).WillReturnRows(
			pgxmock.NewRows(placeRowColumns).AddRow(
				"place-1", "Library", "", "", ptr(77.21), ptr(28.61), []string{"ramp"}, []string{}, true, nil, createdAt,
			),
		)

		places, err := repo.FindPlacesNear(ctx, center, 3000, nil, 200)

		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, []string{"ramp"}, places[0].Tags)
		assert.NotNil(t, places[0].Location)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - query", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(query).WithArgs(77.209, 28.6139, 3000.0, []string{"toilet"}, 200).
			WillReturnError(assert.AnError)

		places, err := repo.FindPlacesNear(ctx, center, 3000, []string{"toilet"}, 200)

		require.Nil(t, places)
		require.ErrorContains(t, err, "failed to query places")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeletePlace(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	query := regexp.QuoteMeta(`DELETE FROM places WHERE id = $1;`)

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(query).WithArgs("place-x").WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err = repo.DeletePlace(ctx, "place-x")

		require.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(query).WithArgs("place-1").WillReturnResult(pgxmock.NewResult("DELETE", 1))

		err = repo.DeletePlace(ctx, "place-1")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFetchPlacesForGeocoding(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	limit := 10

	t.Run("error - query places", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchPlacesQuery)).
			WithArgs(5, limit).
			WillReturnError(assert.AnError)

		tasks, err := repo.FetchPlacesForGeocoding(ctx, limit)

		require.Nil(t, tasks)
		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to query places pending geocoding")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - scan places", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchPlacesQuery)).
			WithArgs(5, limit).
			WillReturnRows(pgxmock.NewRows([]string{"id", "address"}).AddRow(123.5, "valid address"))

		tasks, err := repo.FetchPlacesForGeocoding(ctx, limit)

		require.Nil(t, tasks)
		require.ErrorContains(t, err, "failed to scan place pending geocoding")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - rows error", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchPlacesQuery)).
			WithArgs(5, limit).
			WillReturnRows(
				pgxmock.NewRows([]string{"id", "address"}).AddRow("place-1", "valid address").
					RowError(1, assert.AnError),
			)

		tasks, err := repo.FetchPlacesForGeocoding(ctx, limit)

		require.Nil(t, tasks)
		require.ErrorContains(t, err, "failed to read row")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - fetch places with address", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchPlacesQuery)).
			WithArgs(5, limit).
			WillReturnRows(
				pgxmock.NewRows([]string{"id", "address"}).
					AddRow("place-1", "Janpath, New Delhi").
					AddRow("place-2", "MG Road, Bengaluru"),
			)

		tasks, err := repo.FetchPlacesForGeocoding(ctx, limit)

		require.NoError(t, err)
		assert.Equal(t, []models.GeocodingTask{
			{PlaceID: "place-1", Address: "Janpath, New Delhi"},
			{PlaceID: "place-2", Address: "MG Road, Bengaluru"},
		}, tasks)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdatePlaceCoordinates(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	query := regexp.QuoteMeta(`location = ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,`)
	coords := models.Coordinates{Longitude: 77.2195, Latitude: 28.6328}

	t.Run("error - update place coords", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(query).WithArgs(77.2195, 28.6328, "place-1").WillReturnError(assert.AnError)

		err = repo.UpdatePlaceCoordinates(ctx, "place-1", coords)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to update place coordinates")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - update place coords", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(query).WithArgs(77.2195, 28.6328, "place-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err = repo.UpdatePlaceCoordinates(ctx, "place-1", coords)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIncrementFailureCount(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	query := regexp.QuoteMeta(`geocoding_attempts = geocoding_attempts + 1,`)

	t.Run("error - increment failure count", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(query).WithArgs("no results", "place-1").WillReturnError(assert.AnError)

		err = repo.IncrementFailureCount(ctx, "place-1", "no results")

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to update geocoding error and number of attempts")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - increment failure count", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(query).WithArgs("no results", "place-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err = repo.IncrementFailureCount(ctx, "place-1", "no results")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
