package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/inclusion/internal/geocoding"
	"github.com/UnknownOlympus/inclusion/internal/metrics"
	"github.com/UnknownOlympus/inclusion/internal/models"
	"github.com/UnknownOlympus/inclusion/internal/repository"
)

const geocodingBatchSize = 100

// PlaceGeocoder periodically resolves the addresses of places submitted without coordinates.
type PlaceGeocoder struct {
	log           *slog.Logger
	store         repository.PlaceStore
	provider      geocoding.Provider
	providerName  string // label for provider metrics
	metrics       *metrics.Metrics
	numWorkers    int
	pollInterval  time.Duration
	addressSuffix string // appended to every address, e.g. ", India"
}

// NewPlaceGeocoder creates a new PlaceGeocoder.
func NewPlaceGeocoder(
	log *slog.Logger,
	store repository.PlaceStore,
	provider geocoding.Provider,
	providerName string,
	metrics *metrics.Metrics,
	numWorkers int,
	pollInterval time.Duration,
	addressSuffix string,
) *PlaceGeocoder {
	return &PlaceGeocoder{
		log:           log,
		store:         store,
		provider:      provider,
		providerName:  providerName,
		metrics:       metrics,
		numWorkers:    max(numWorkers, 1),
		pollInterval:  pollInterval,
		addressSuffix: addressSuffix,
	}
}

// Run processes pending places once and then on every poll interval until ctx is cancelled.
func (pg *PlaceGeocoder) Run(ctx context.Context) {
	ticker := time.NewTicker(pg.pollInterval)
	defer ticker.Stop()

	pg.log.InfoContext(ctx, "Place geocoder started", "provider", pg.providerName, "workers", pg.numWorkers)
	pg.processBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			pg.log.InfoContext(ctx, "Place geocoder stopped")
			return
		case <-ticker.C:
			pg.processBatch(ctx)
		}
	}
}

// processBatch fetches places awaiting coordinates and geocodes them with a fixed pool of workers.
func (pg *PlaceGeocoder) processBatch(ctx context.Context) {
	tasks, err := pg.store.FetchPlacesForGeocoding(ctx, geocodingBatchSize)
	if err != nil {
		pg.log.ErrorContext(ctx, "Failed to fetch places for geocoding", "error", err)
		return
	}
	if len(tasks) == 0 {
		pg.log.DebugContext(ctx, "No places to geocode")
		return
	}

	pg.log.InfoContext(ctx, "Geocoding places", "jobs", len(tasks), "num_workers", pg.numWorkers)

	jobs := make(chan models.GeocodingTask, len(tasks))
	var wg sync.WaitGroup

	for i := 1; i <= pg.numWorkers; i++ {
		wg.Add(1)
		go pg.worker(ctx, i, &wg, jobs)
	}

	for _, task := range tasks {
		jobs <- task
	}
	close(jobs)

	wg.Wait()
	pg.log.InfoContext(ctx, "Geocoding batch finished", "jobs", len(tasks))
}

func (pg *PlaceGeocoder) worker(ctx context.Context, idx int, wg *sync.WaitGroup, jobs <-chan models.GeocodingTask) {
	defer wg.Done()
	for task := range jobs {
		if ctx.Err() != nil {
			return
		}
		pg.geocode(ctx, idx, task)
	}
}

func (pg *PlaceGeocoder) geocode(ctx context.Context, idx int, task models.GeocodingTask) {
	pg.metrics.GeocoderWorkers.Inc()
	defer pg.metrics.GeocoderWorkers.Dec()

	log := pg.log.With("worker", idx, "place", task.PlaceID)
	log.DebugContext(ctx, "Geocoding place", "address", task.Address)

	start := time.Now()
	coords, err := pg.provider.Geocode(ctx, task.Address+pg.addressSuffix)
	pg.metrics.GeocoderSeconds.WithLabelValues(pg.providerName).Observe(time.Since(start).Seconds())

	if err != nil {
		log.WarnContext(ctx, "Failed to geocode place", "error", err)
		pg.metrics.PlacesGeocoded.WithLabelValues("failure").Inc()
		pg.metrics.GeocoderErrors.Inc()

		if err = pg.store.IncrementFailureCount(ctx, task.PlaceID, err.Error()); err != nil {
			log.ErrorContext(ctx, "Could not record geocoding failure", "error", err)
		}
		return
	}

	pg.metrics.PlacesGeocoded.WithLabelValues("success").Inc()
	if err = pg.store.UpdatePlaceCoordinates(ctx, task.PlaceID, *coords); err != nil {
		log.ErrorContext(ctx, "Failed to store place coordinates", "error", err)
		return
	}
	log.DebugContext(ctx, "Place geocoded", "lng", coords.Longitude, "lat", coords.Latitude)
}
