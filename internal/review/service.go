package review

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"github.com/2beens/straviz/internal/activity"
	"github.com/2beens/straviz/internal/telemetry/metrics"
	"github.com/2beens/straviz/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const cachedReviewTTLSeconds = 3600

type activitiesRepo interface {
	ListForYear(ctx context.Context, year int) ([]activity.Activity, error)
}

// Review is the complete year-in-review bundle consumed by the frontend:
// route classifications and map framing, the chart series, and the
// personalized summary.
type Review struct {
	Year          int                  `json:"year"`
	Summary       Summary              `json:"summary"`
	Routes        map[int64]RouteClass `json:"routes"`
	LongestRun    *activity.Activity   `json:"longestRun,omitempty"`
	Bounds        *Bounds              `json:"bounds,omitempty"`
	Monthly       []MonthlyVolume      `json:"monthly"`
	Weekly        []WeeklyVolume       `json:"weekly"`
	Cumulative    []CumulativePoint    `json:"cumulative"`
	Pace          []PacePoint          `json:"pace"`
	TimeOfDay     []TimeOfDayBucket    `json:"timeOfDay"`
	NewVsRepeated []NewVsRepeatedMonth `json:"newVsRepeated"`
	TypeBreakdown []TypeCount          `json:"typeBreakdown"`
	Heatmap       map[string]int       `json:"heatmap"`
	Scatter       []ScatterPoint       `json:"scatter"`
}

// Service computes year reviews from the stored activities. Computation is
// pure and stateless; computed bundles are additionally memoized in an
// in-memory cache keyed by the dataset fingerprint, so repeated requests
// for an unchanged year are free.
type Service struct {
	repo           activitiesRepo
	analyzer       *Analyzer
	cache          *freecache.Cache
	metricsManager *metrics.Manager
}

func NewService(
	repo activitiesRepo,
	analyzer *Analyzer,
	cacheSizeBytes int,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:           repo,
		analyzer:       analyzer,
		cache:          freecache.NewCache(cacheSizeBytes),
		metricsManager: metricsManager,
	}
}

func (s *Service) ActivitiesForYear(ctx context.Context, year int) ([]activity.Activity, error) {
	return s.repo.ListForYear(ctx, year)
}

// YearReview returns the review bundle for the given year, from the cache
// when the stored activities did not change since the last computation.
func (s *Service) YearReview(ctx context.Context, year int) (_ *Review, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.review.yearReview")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("year", year))

	activities, err := s.repo.ListForYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("list activities for year %d: %w", year, err)
	}

	cacheKey := reviewCacheKey(year, activities)
	if cachedBytes, err := s.cache.Get(cacheKey); err == nil {
		var cached Review
		if unmarshalErr := json.Unmarshal(cachedBytes, &cached); unmarshalErr == nil {
			s.metricsManager.CounterReviewCacheHits.Inc()
			return &cached, nil
		} else {
			log.Errorf("failed to unmarshal cached review for year %d: %s", year, unmarshalErr)
		}
	}

	computeStart := time.Now()
	rev := s.compute(year, activities)
	s.metricsManager.HistReviewComputeDuration.Observe(time.Since(computeStart).Seconds())
	s.metricsManager.CounterReviewsComputed.Inc()

	revBytes, err := json.Marshal(rev)
	if err != nil {
		return nil, fmt.Errorf("marshal review: %w", err)
	}
	if err := s.cache.Set(cacheKey, revBytes, cachedReviewTTLSeconds); err != nil {
		// cache full or entry too large, not worth failing the request
		log.Warnf("failed to cache review for year %d: %s", year, err)
	}

	return rev, nil
}

func (s *Service) compute(year int, activities []activity.Activity) *Review {
	classes := s.analyzer.Classify(activities)

	return &Review{
		Year:          year,
		Summary:       s.analyzer.Summarize(activities),
		Routes:        classes,
		LongestRun:    LongestRun(activities),
		Bounds:        MapBounds(activities),
		Monthly:       MonthlyVolumes(activities),
		Weekly:        WeeklyVolumes(activities),
		Cumulative:    Cumulative(activities),
		Pace:          PaceEvolution(activities),
		TimeOfDay:     TimeOfDay(activities),
		NewVsRepeated: NewVsRepeatedByMonth(activities, classes),
		TypeBreakdown: TypeBreakdown(activities),
		Heatmap:       HeatmapData(activities),
		Scatter:       ScatterData(activities),
	}
}

// reviewCacheKey fingerprints the dataset over every field the computation
// reads, so any change to the stored activities of a year (a re-import
// correcting elevation, type or geometry included) naturally invalidates
// its cached review.
func reviewCacheKey(year int, activities []activity.Activity) []byte {
	h := fnv.New64a()

	var buf [8]byte
	writeUint64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}

	writeUint64(uint64(year))

	for _, act := range activities {
		writeUint64(uint64(act.ID))
		writeUint64(uint64(act.StartDate.UnixNano()))
		writeUint64(uint64(act.StartDateLocal.UnixNano()))
		writeUint64(math.Float64bits(act.Distance))
		writeUint64(math.Float64bits(act.TotalElevationGain))
		writeUint64(math.Float64bits(act.AverageSpeed))
		writeUint64(uint64(act.MovingTime))
		writeUint64(uint64(act.ElapsedTime))
		_, _ = h.Write([]byte(act.Type))
		_, _ = h.Write([]byte(act.Name))
		_, _ = h.Write([]byte(act.SummaryPolyline()))
	}

	return h.Sum(nil)
}
