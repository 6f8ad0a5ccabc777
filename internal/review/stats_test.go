package review_test

import (
	"testing"
	"time"

	"github.com/2beens/straviz/internal/activity"
	"github.com/2beens/straviz/internal/review"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsActivity(id int64, startLocal time.Time, distanceM float64) activity.Activity {
	return activity.Activity{
		ID:             id,
		Name:           "workout",
		Type:           "Run",
		Distance:       distanceM,
		MovingTime:     1800,
		StartDate:      startLocal,
		StartDateLocal: startLocal,
	}
}

func TestMonthlyVolumes(t *testing.T) {
	activities := []activity.Activity{
		statsActivity(1, time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC), 5025),
		statsActivity(2, time.Date(2024, 1, 20, 8, 0, 0, 0, time.UTC), 5530),
		statsActivity(3, time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC), 21097.5),
	}

	volumes := review.MonthlyVolumes(activities)
	require.Len(t, volumes, 12)

	assert.Equal(t, "Jan", volumes[0].Month)
	assert.Equal(t, 10.6, volumes[0].DistanceKm) // 10.555 rounded to 1 decimal
	assert.Equal(t, 0.0, volumes[1].DistanceKm)
	assert.Equal(t, 21.1, volumes[2].DistanceKm)
	assert.Equal(t, "Dec", volumes[11].Month)
}

func TestMonthlyVolumes_Empty(t *testing.T) {
	volumes := review.MonthlyVolumes(nil)
	require.Len(t, volumes, 12)
	for _, v := range volumes {
		assert.Zero(t, v.DistanceKm)
	}
}

func TestWeeklyVolumes(t *testing.T) {
	activities := []activity.Activity{
		// Monday 2024-01-01 is ISO week 1 of 2024
		statsActivity(1, time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), 10000),
		// Sunday 2023-01-01 belongs to ISO week 52 of 2022; clamped into
		// the year's first bucket
		statsActivity(2, time.Date(2023, 1, 1, 8, 0, 0, 0, time.UTC), 3000),
		// Monday 2024-12-30 belongs to ISO week 1 of 2025; clamped into
		// the year's last bucket
		statsActivity(3, time.Date(2024, 12, 30, 8, 0, 0, 0, time.UTC), 7000),
	}

	volumes := review.WeeklyVolumes(activities)
	require.Len(t, volumes, 53)

	assert.Equal(t, 1, volumes[0].Week)
	assert.Equal(t, 13.0, volumes[0].DistanceKm)
	assert.Equal(t, 7.0, volumes[52].DistanceKm)
}

func TestCumulative(t *testing.T) {
	activities := []activity.Activity{
		// given out of order on purpose: cumulative series is chronological
		{ID: 2, Distance: 10000, TotalElevationGain: 120.4,
			StartDate:      time.Date(2024, 2, 15, 9, 0, 0, 0, time.UTC),
			StartDateLocal: time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC)},
		{ID: 1, Distance: 5250, TotalElevationGain: 80.3,
			StartDate:      time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC),
			StartDateLocal: time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)},
	}

	points := review.Cumulative(activities)
	require.Len(t, points, 2)

	assert.Equal(t, "Jan 5", points[0].Date)
	assert.Equal(t, 5.3, points[0].DistanceKm)
	assert.Equal(t, 80.0, points[0].ElevationM)

	assert.Equal(t, "Feb 15", points[1].Date)
	assert.Equal(t, 15.3, points[1].DistanceKm)
	assert.Equal(t, 201.0, points[1].ElevationM) // round(200.7)

	assert.Empty(t, review.Cumulative(nil))
}

func TestPaceEvolution(t *testing.T) {
	runDate := time.Date(2024, 5, 12, 7, 0, 0, 0, time.UTC)
	activities := []activity.Activity{
		{ID: 1, Type: "Run", Distance: 5000, MovingTime: 1500,
			StartDate: runDate, StartDateLocal: runDate}, // 5:00 min/km
		{ID: 2, Type: "Ride", Distance: 40000, MovingTime: 5400,
			StartDate: runDate.Add(time.Hour), StartDateLocal: runDate.Add(time.Hour)},
		{ID: 3, Type: "Run", Distance: 0, MovingTime: 1500,
			StartDate: runDate.Add(2 * time.Hour), StartDateLocal: runDate.Add(2 * time.Hour)},
		{ID: 4, Type: "Run", Distance: 10000, MovingTime: 0,
			StartDate: runDate.Add(3 * time.Hour), StartDateLocal: runDate.Add(3 * time.Hour)},
		{ID: 5, Type: "Running", Distance: 10000, MovingTime: 3300,
			StartDate: runDate.Add(4 * time.Hour), StartDateLocal: runDate.Add(4 * time.Hour)}, // 5:30 -> 5.5
	}

	points := review.PaceEvolution(activities)
	require.Len(t, points, 2)

	assert.Equal(t, 5.0, points[0].PaceMinPerKm)
	assert.Equal(t, "May 12", points[0].Date)
	assert.Equal(t, "May", points[0].Month)
	assert.Equal(t, 5.5, points[1].PaceMinPerKm)
}

func TestTimeOfDay(t *testing.T) {
	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	atHour := func(id int64, hour int) activity.Activity {
		started := day.Add(time.Duration(hour) * time.Hour)
		return statsActivity(id, started, 5000)
	}

	buckets := review.TimeOfDay([]activity.Activity{
		atHour(1, 6),
		atHour(2, 14),
		atHour(3, 22),
		atHour(4, 2),
	})

	// evening has no activities and is omitted
	require.Len(t, buckets, 3)
	assert.Equal(t, "Morning (5am-12pm)", buckets[0].Name)
	assert.Equal(t, 1, buckets[0].Count)
	assert.Equal(t, "Afternoon (12pm-5pm)", buckets[1].Name)
	assert.Equal(t, 1, buckets[1].Count)
	assert.Equal(t, "Night (9pm-5am)", buckets[2].Name)
	assert.Equal(t, 2, buckets[2].Count)
}

func TestTimeOfDay_BucketEdges(t *testing.T) {
	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	atHour := func(id int64, hour int) activity.Activity {
		return statsActivity(id, day.Add(time.Duration(hour)*time.Hour), 5000)
	}

	buckets := review.TimeOfDay([]activity.Activity{
		atHour(1, 5),  // first morning hour
		atHour(2, 12), // first afternoon hour
		atHour(3, 17), // first evening hour
		atHour(4, 21), // first night hour
		atHour(5, 4),  // still night
	})

	require.Len(t, buckets, 4)
	assert.Equal(t, 1, buckets[0].Count)
	assert.Equal(t, 1, buckets[1].Count)
	assert.Equal(t, 1, buckets[2].Count)
	assert.Equal(t, 2, buckets[3].Count)
}

func TestNewVsRepeatedByMonth(t *testing.T) {
	analyzer := review.NewDefaultAnalyzer()

	jan := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	activities := []activity.Activity{
		testActivity(1, jan, routeAround(52.52, 13.40)),
		testActivity(2, feb, routeAround(52.52, 13.40)),
		testActivity(3, feb.AddDate(0, 0, 7), routeAround(44.81, 20.46)),
	}

	months := review.NewVsRepeatedByMonth(activities, analyzer.Classify(activities))
	require.Len(t, months, 12)

	assert.Equal(t, 1, months[0].New)
	assert.Equal(t, 0, months[0].Repeated)
	assert.Equal(t, 1, months[1].New)
	assert.Equal(t, 1, months[1].Repeated)
	assert.Equal(t, 0, months[2].New)
}

func TestTypeBreakdown(t *testing.T) {
	day := time.Date(2024, 8, 1, 9, 0, 0, 0, time.UTC)
	withType := func(id int64, actType string) activity.Activity {
		a := statsActivity(id, day, 5000)
		a.Type = actType
		return a
	}

	breakdown := review.TypeBreakdown([]activity.Activity{
		withType(1, "Run"),
		withType(2, "Ride"),
		withType(3, "Run"),
		withType(4, "Hike"),
		withType(5, "Hike"),
	})

	require.Len(t, breakdown, 3)
	// most frequent first, count ties ordered by name
	assert.Equal(t, review.TypeCount{Type: "Hike", Count: 2}, breakdown[0])
	assert.Equal(t, review.TypeCount{Type: "Run", Count: 2}, breakdown[1])
	assert.Equal(t, review.TypeCount{Type: "Ride", Count: 1}, breakdown[2])
}

func TestScatterData(t *testing.T) {
	day := time.Date(2024, 9, 3, 9, 0, 0, 0, time.UTC)
	a := statsActivity(1, day, 12345)
	a.AverageSpeed = 3.456

	points := review.ScatterData([]activity.Activity{a})
	require.Len(t, points, 1)

	assert.Equal(t, 12.35, points[0].DistanceKm) // 2 decimals
	assert.Equal(t, 12.4, points[0].SpeedKmh)    // 3.456 m/s * 3.6, 1 decimal
}

func TestHeatmapData(t *testing.T) {
	morning := time.Date(2024, 10, 5, 7, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 10, 5, 19, 0, 0, 0, time.UTC)
	nextDay := time.Date(2024, 10, 6, 7, 0, 0, 0, time.UTC)

	heatmap := review.HeatmapData([]activity.Activity{
		statsActivity(1, morning, 5000),
		statsActivity(2, evening, 5000),
		statsActivity(3, nextDay, 5000),
	})

	assert.Equal(t, map[string]int{
		"2024-10-05": 2,
		"2024-10-06": 1,
	}, heatmap)
}

func TestAggregations_DoNotMutateInput(t *testing.T) {
	first := statsActivity(1, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), 5000)
	second := statsActivity(2, time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), 3000)
	activities := []activity.Activity{first, second}

	review.Cumulative(activities)
	review.PaceEvolution(activities)
	review.NewDefaultAnalyzer().Classify(activities)

	// the chronological sorts inside must work on copies
	assert.Equal(t, int64(1), activities[0].ID)
	assert.Equal(t, int64(2), activities[1].ID)
}
