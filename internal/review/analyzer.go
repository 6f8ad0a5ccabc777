package review

import (
	"sort"

	"github.com/2beens/straviz/internal/activity"
	"github.com/2beens/straviz/internal/geo"

	log "github.com/sirupsen/logrus"
)

// DefaultProximityThresholdMeters is the great-circle distance below which
// two route centers are considered the same area.
const DefaultProximityThresholdMeters = 100

// Style tells the map view how to draw a route.
type Style struct {
	Color   string  `json:"color"`
	Weight  int     `json:"weight"`
	Opacity float64 `json:"opacity"`
}

var (
	styleNew      = Style{Color: "#10b981", Weight: 3, Opacity: 0.8} // emerald
	styleRepeated = Style{Color: "#6b7280", Weight: 2, Opacity: 0.4} // gray
	styleLongest  = Style{Color: "#f59e0b", Weight: 4, Opacity: 0.9} // amber
)

// RouteClass is the per-activity outcome of the route matching pass.
type RouteClass struct {
	IsNew      bool  `json:"isNew"`
	VisitCount int   `json:"visitCount"`
	Style      Style `json:"style"`
}

// Bounds is the minimal bounding box covering all decoded route points,
// used for map framing.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLng float64 `json:"minLng"`
	MaxLng float64 `json:"maxLng"`
}

type AnalyzerParams struct {
	// ProximityThresholdMeters defaults to DefaultProximityThresholdMeters when 0
	ProximityThresholdMeters float64
	// UseCentroidCenter switches the route center from the midpoint sample
	// to the centroid of all decoded points
	UseCentroidCenter bool
	// UseGridIndex replaces the linear visited-areas scan with a spatial
	// grid, for datasets beyond a few thousand activities
	UseGridIndex bool
}

// Analyzer classifies activity routes as new or repeated by clustering
// their centers into visited areas. All methods are pure functions of the
// given activity list; the analyzer itself holds only configuration.
type Analyzer struct {
	proximityThreshold float64
	useCentroidCenter  bool
	useGridIndex       bool
}

func NewAnalyzer(params AnalyzerParams) *Analyzer {
	threshold := params.ProximityThresholdMeters
	if threshold == 0 {
		threshold = DefaultProximityThresholdMeters
	}
	return &Analyzer{
		proximityThreshold: threshold,
		useCentroidCenter:  params.UseCentroidCenter,
		useGridIndex:       params.UseGridIndex,
	}
}

func NewDefaultAnalyzer() *Analyzer {
	return NewAnalyzer(AnalyzerParams{})
}

// Classify walks the activities in chronological order and labels each one
// as a first visit to its area or a repeat. Chronology decides which
// activity gets the "new" label when several share an area, so ties on the
// start date keep the original input order. Activities without usable
// geometry are always a first visit and never touch the visited areas.
func (a *Analyzer) Classify(activities []activity.Activity) map[int64]RouteClass {
	classes := make(map[int64]RouteClass, len(activities))

	sorted := make([]activity.Activity, len(activities))
	copy(sorted, activities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})

	index := a.newAreaIndex()

	for _, act := range sorted {
		center, ok := a.routeCenter(act)
		if !ok {
			classes[act.ID] = RouteClass{
				IsNew:      true,
				VisitCount: 1,
				Style:      styleNew,
			}
			continue
		}

		if area := index.match(center); area != nil {
			area.visitCount++
			classes[act.ID] = RouteClass{
				IsNew:      false,
				VisitCount: area.visitCount,
				Style:      styleRepeated,
			}
			continue
		}

		index.add(center)
		classes[act.ID] = RouteClass{
			IsNew:      true,
			VisitCount: 1,
			Style:      styleNew,
		}
	}

	return classes
}

func (a *Analyzer) routeCenter(act activity.Activity) (geo.Point, bool) {
	points, err := geo.DecodePolyline(act.SummaryPolyline())
	if err != nil {
		log.Tracef("activity %d: unusable route geometry: %s", act.ID, err)
		return geo.Point{}, false
	}
	if len(points) == 0 {
		return geo.Point{}, false
	}

	if a.useCentroidCenter {
		return geo.Centroid(points), true
	}
	// the midpoint sample, not a centroid: cheap, and adequate because
	// routes are typically loops or out-and-backs
	return points[len(points)/2], true
}

// LongestRun returns the activity with the greatest distance, the first one
// in input order when there is a tie, or nil for an empty list.
func LongestRun(activities []activity.Activity) *activity.Activity {
	if len(activities) == 0 {
		return nil
	}

	longest := activities[0]
	for _, act := range activities[1:] {
		if act.Distance > longest.Distance {
			longest = act
		}
	}
	return &longest
}

// LongestRunStyle is the map style for the longest activity's route.
func LongestRunStyle() Style {
	return styleLongest
}

// MapBounds folds the minimal bounding box over every decodable route
// point of every activity. Decode failures are skipped; nil is returned
// when no activity yields a valid point. Order independent.
func MapBounds(activities []activity.Activity) *Bounds {
	var bounds *Bounds

	for _, act := range activities {
		points, err := geo.DecodePolyline(act.SummaryPolyline())
		if err != nil {
			log.Tracef("activity %d: skipped for map bounds: %s", act.ID, err)
			continue
		}
		for _, p := range points {
			if bounds == nil {
				bounds = &Bounds{
					MinLat: p.Lat, MaxLat: p.Lat,
					MinLng: p.Lng, MaxLng: p.Lng,
				}
				continue
			}
			if p.Lat < bounds.MinLat {
				bounds.MinLat = p.Lat
			}
			if p.Lat > bounds.MaxLat {
				bounds.MaxLat = p.Lat
			}
			if p.Lng < bounds.MinLng {
				bounds.MinLng = p.Lng
			}
			if p.Lng > bounds.MaxLng {
				bounds.MaxLng = p.Lng
			}
		}
	}

	return bounds
}
