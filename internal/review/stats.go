package review

import (
	"math"
	"sort"
	"time"

	"github.com/2beens/straviz/internal/activity"
)

var shortMonthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

var fullMonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// MonthlyVolume is the distance total of one calendar month, in km.
type MonthlyVolume struct {
	Month      string  `json:"month"`
	DistanceKm float64 `json:"distanceKm"`
}

// MonthlyVolumes sums activity distance into the 12 calendar months of the
// local start date, each total rounded to 1 decimal.
func MonthlyVolumes(activities []activity.Activity) []MonthlyVolume {
	sums := make([]float64, 12)
	for _, act := range activities {
		sums[act.StartDateLocal.Month()-1] += act.Distance / 1000
	}

	volumes := make([]MonthlyVolume, 12)
	for i := range volumes {
		volumes[i] = MonthlyVolume{
			Month:      shortMonthNames[i],
			DistanceKm: round1(sums[i]),
		}
	}
	return volumes
}

// WeeklyVolume is the distance total of one ISO week, in km.
type WeeklyVolume struct {
	Week       int     `json:"week"`
	DistanceKm float64 `json:"distanceKm"`
}

// weekBucket maps the local start date to one of 53 fixed buckets via ISO
// week numbering. The first days of January can belong to the last ISO week
// of the previous year and the last days of December to week 1 of the next;
// those get clamped into the year's first and last bucket respectively.
func weekBucket(t time.Time) int {
	isoYear, isoWeek := t.ISOWeek()
	switch {
	case isoYear < t.Year():
		return 0
	case isoYear > t.Year():
		return 52
	default:
		return isoWeek - 1
	}
}

// WeeklyVolumes sums activity distance into 53 ISO week buckets,
// each total rounded to 1 decimal.
func WeeklyVolumes(activities []activity.Activity) []WeeklyVolume {
	sums := make([]float64, 53)
	for _, act := range activities {
		sums[weekBucket(act.StartDateLocal)] += act.Distance / 1000
	}

	volumes := make([]WeeklyVolume, 53)
	for i := range volumes {
		volumes[i] = WeeklyVolume{
			Week:       i + 1,
			DistanceKm: round1(sums[i]),
		}
	}
	return volumes
}

// CumulativePoint carries the running distance and elevation totals up to
// and including one activity.
type CumulativePoint struct {
	Date       string  `json:"date"`
	DistanceKm float64 `json:"distanceKm"`
	ElevationM float64 `json:"elevationM"`
}

// Cumulative emits the running distance (km, 1 decimal) and elevation gain
// (m, rounded) totals per activity, in chronological order.
func Cumulative(activities []activity.Activity) []CumulativePoint {
	sorted := sortedByStartDate(activities)

	var distanceKm, elevationM float64
	points := make([]CumulativePoint, 0, len(sorted))
	for _, act := range sorted {
		distanceKm += act.Distance / 1000
		elevationM += act.TotalElevationGain
		points = append(points, CumulativePoint{
			Date:       act.StartDateLocal.Format("Jan 2"),
			DistanceKm: round1(distanceKm),
			ElevationM: math.Round(elevationM),
		})
	}
	return points
}

// PacePoint is one run's pace, in minutes per km.
type PacePoint struct {
	Date         string  `json:"date"`
	PaceMinPerKm float64 `json:"paceMinPerKm"`
	Month        string  `json:"month"`
}

// PaceEvolution computes pace per run in chronological order. Non-running
// activities and those with zero distance or moving time are silently
// excluded.
func PaceEvolution(activities []activity.Activity) []PacePoint {
	var runs []activity.Activity
	for _, act := range activities {
		if act.IsRun() && act.Distance > 0 && act.MovingTime > 0 {
			runs = append(runs, act)
		}
	}
	runs = sortedByStartDate(runs)

	points := make([]PacePoint, 0, len(runs))
	for _, act := range runs {
		pace := (float64(act.MovingTime) / 60) / (act.Distance / 1000)
		points = append(points, PacePoint{
			Date:         act.StartDateLocal.Format("Jan 2"),
			PaceMinPerKm: round1(pace),
			Month:        shortMonthNames[act.StartDateLocal.Month()-1],
		})
	}
	return points
}

// TimeOfDayBucket counts activities started within one part of the day.
type TimeOfDayBucket struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// TimeOfDay buckets activities by the local hour of their start: morning
// [5,12), afternoon [12,17), evening [17,21) and night for the rest.
// Buckets with no activities are omitted.
func TimeOfDay(activities []activity.Activity) []TimeOfDayBucket {
	var morning, afternoon, evening, night int
	for _, act := range activities {
		hour := act.StartDateLocal.Hour()
		switch {
		case hour >= 5 && hour < 12:
			morning++
		case hour >= 12 && hour < 17:
			afternoon++
		case hour >= 17 && hour < 21:
			evening++
		default:
			night++
		}
	}

	all := []TimeOfDayBucket{
		{Name: "Morning (5am-12pm)", Count: morning, Color: "#fbbf24"},
		{Name: "Afternoon (12pm-5pm)", Count: afternoon, Color: "#f59e0b"},
		{Name: "Evening (5pm-9pm)", Count: evening, Color: "#d97706"},
		{Name: "Night (9pm-5am)", Count: night, Color: "#92400e"},
	}

	buckets := make([]TimeOfDayBucket, 0, len(all))
	for _, b := range all {
		if b.Count > 0 {
			buckets = append(buckets, b)
		}
	}
	return buckets
}

// NewVsRepeatedMonth counts first visits versus repeats in one calendar month.
type NewVsRepeatedMonth struct {
	Month    string `json:"month"`
	New      int    `json:"new"`
	Repeated int    `json:"repeated"`
}

// NewVsRepeatedByMonth splits each month's activity count by the route
// matcher's verdict. The classes map comes from Analyzer.Classify over the
// same activity list.
func NewVsRepeatedByMonth(activities []activity.Activity, classes map[int64]RouteClass) []NewVsRepeatedMonth {
	months := make([]NewVsRepeatedMonth, 12)
	for i := range months {
		months[i].Month = shortMonthNames[i]
	}

	for _, act := range activities {
		class, ok := classes[act.ID]
		if !ok {
			continue
		}
		monthIdx := act.StartDateLocal.Month() - 1
		if class.IsNew {
			months[monthIdx].New++
		} else {
			months[monthIdx].Repeated++
		}
	}
	return months
}

// TypeCount is the number of activities of one type, pie chart feed.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// TypeBreakdown counts activities per type, most frequent first,
// ties ordered by type name.
func TypeBreakdown(activities []activity.Activity) []TypeCount {
	counts := make(map[string]int)
	for _, act := range activities {
		counts[act.Type]++
	}

	breakdown := make([]TypeCount, 0, len(counts))
	for actType, count := range counts {
		breakdown = append(breakdown, TypeCount{Type: actType, Count: count})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return breakdown[i].Type < breakdown[j].Type
	})
	return breakdown
}

// ScatterPoint is one activity's distance vs speed sample.
type ScatterPoint struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	DistanceKm float64 `json:"distanceKm"`
	SpeedKmh   float64 `json:"speedKmh"`
}

// ScatterData maps each activity to a distance (km, 2 decimals) vs average
// speed (km/h, 1 decimal) sample, in input order.
func ScatterData(activities []activity.Activity) []ScatterPoint {
	points := make([]ScatterPoint, 0, len(activities))
	for _, act := range activities {
		points = append(points, ScatterPoint{
			ID:         act.ID,
			Name:       act.Name,
			Type:       act.Type,
			DistanceKm: round2(act.Distance / 1000),
			SpeedKmh:   round1(act.AverageSpeed * 3.6),
		})
	}
	return points
}

// HeatmapData counts activities per local calendar day, keyed YYYY-MM-DD.
func HeatmapData(activities []activity.Activity) map[string]int {
	days := make(map[string]int)
	for _, act := range activities {
		days[act.StartDateLocal.Format("2006-01-02")]++
	}
	return days
}

func sortedByStartDate(activities []activity.Activity) []activity.Activity {
	sorted := make([]activity.Activity, len(activities))
	copy(sorted, activities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})
	return sorted
}
