package review

import (
	"math"

	"github.com/2beens/straviz/internal/activity"
)

// Summary holds the headline statistics for one year of activities.
type Summary struct {
	TotalDistanceKm  int     `json:"totalDistanceKm"`
	TotalActivities  int     `json:"totalActivities"`
	LongestRunKm     float64 `json:"longestRunKm"`
	FavoriteMonth    string  `json:"favoriteMonth"`
	TotalElevationM  int     `json:"totalElevationM"`
	NewAreasExplored int     `json:"newAreasExplored"`
}

// Summarize derives the personalized summary from the activity list and the
// route matcher's classification. An empty list yields the zero-value
// Summary (all totals 0, no favorite month) rather than an error.
func (a *Analyzer) Summarize(activities []activity.Activity) Summary {
	if len(activities) == 0 {
		return Summary{}
	}

	var totalDistanceM, totalElevationM, longestM float64
	for _, act := range activities {
		totalDistanceM += act.Distance
		totalElevationM += act.TotalElevationGain
		if act.Distance > longestM {
			longestM = act.Distance
		}
	}

	monthCounts := make([]int, 12)
	for _, act := range activities {
		monthCounts[act.StartDateLocal.Month()-1]++
	}
	favoriteMonthIdx := 0
	for i, count := range monthCounts {
		if count > monthCounts[favoriteMonthIdx] {
			favoriteMonthIdx = i
		}
	}

	newAreas := 0
	for _, class := range a.Classify(activities) {
		if class.IsNew {
			newAreas++
		}
	}

	return Summary{
		TotalDistanceKm:  int(math.Round(totalDistanceM / 1000)),
		TotalActivities:  len(activities),
		LongestRunKm:     round1(longestM / 1000),
		FavoriteMonth:    fullMonthNames[favoriteMonthIdx],
		TotalElevationM:  int(math.Round(totalElevationM)),
		NewAreasExplored: newAreas,
	}
}
