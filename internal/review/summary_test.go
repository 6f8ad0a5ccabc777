package review_test

import (
	"testing"
	"time"

	"github.com/2beens/straviz/internal/activity"
	"github.com/2beens/straviz/internal/review"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	analyzer := review.NewDefaultAnalyzer()

	jan := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC)

	a1 := testActivity(1, jan, routeAround(52.52, 13.40))
	a1.Distance = 5000
	a1.TotalElevationGain = 50.4
	a2 := testActivity(2, feb, routeAround(52.52, 13.40))
	a2.Distance = 15000
	a2.TotalElevationGain = 120.2
	a3 := testActivity(3, feb.AddDate(0, 0, 5), routeAround(44.81, 20.46))
	a3.Distance = 3000
	a3.TotalElevationGain = 30.0

	summary := analyzer.Summarize([]activity.Activity{a1, a2, a3})

	assert.Equal(t, 23, summary.TotalDistanceKm)
	assert.Equal(t, 3, summary.TotalActivities)
	assert.Equal(t, 15.0, summary.LongestRunKm)
	assert.Equal(t, "February", summary.FavoriteMonth)
	assert.Equal(t, 201, summary.TotalElevationM) // round(200.6)
	// two distinct areas: Berlin (visited twice) and Belgrade
	assert.Equal(t, 2, summary.NewAreasExplored)
}

func TestSummarize_FavoriteMonthTie(t *testing.T) {
	analyzer := review.NewDefaultAnalyzer()

	mar := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	jul := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)

	summary := analyzer.Summarize([]activity.Activity{
		testActivity(1, mar, nil),
		testActivity(2, jul, nil),
	})

	// ties go to the earliest month
	assert.Equal(t, "March", summary.FavoriteMonth)
}

func TestSummarize_Empty(t *testing.T) {
	analyzer := review.NewDefaultAnalyzer()

	summary := analyzer.Summarize(nil)
	assert.Equal(t, review.Summary{}, summary)
}

func TestSummarize_Deterministic(t *testing.T) {
	analyzer := review.NewDefaultAnalyzer()

	jan := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	activities := []activity.Activity{
		testActivity(1, jan, routeAround(52.52, 13.40)),
		testActivity(2, jan.AddDate(0, 1, 0), routeAround(52.52, 13.40)),
		testActivity(3, jan.AddDate(0, 2, 0), routeAround(44.81, 20.46)),
	}
	reversed := []activity.Activity{activities[2], activities[1], activities[0]}

	assert.Equal(t, analyzer.Summarize(activities), analyzer.Summarize(reversed))
}
