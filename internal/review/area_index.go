package review

import (
	"math"

	"github.com/2beens/straviz/internal/geo"
)

const (
	// meters per degree of latitude, deliberately a touch below the real
	// ~111.3 km: cells come out slightly wider than the threshold, so two
	// centers within it are never more than one cell apart on either axis
	metersPerDegree = 111000

	// below this cosine (roughly 89.4 degrees of latitude) longitude cells
	// degenerate and the whole band collapses into one cell
	minCosLat = 0.01
)

type visitedArea struct {
	center     geo.Point
	visitCount int
	seq        int
}

// areaIndex tracks visited areas during one classification pass.
// match must return the area with the lowest insertion sequence among all
// areas strictly within the proximity threshold of center, or nil - the
// "first match wins" tie-break is load-bearing for determinism.
type areaIndex interface {
	match(center geo.Point) *visitedArea
	add(center geo.Point) *visitedArea
}

func (a *Analyzer) newAreaIndex() areaIndex {
	if a.useGridIndex {
		return newGridAreaIndex(a.proximityThreshold)
	}
	return newLinearAreaIndex(a.proximityThreshold)
}

// linearAreaIndex scans all areas front to back,
// O(number of distinct areas) per lookup.
type linearAreaIndex struct {
	threshold float64
	areas     []*visitedArea
}

func newLinearAreaIndex(threshold float64) *linearAreaIndex {
	return &linearAreaIndex{threshold: threshold}
}

func (idx *linearAreaIndex) match(center geo.Point) *visitedArea {
	for _, area := range idx.areas {
		if geo.Distance(center, area.center) < idx.threshold {
			return area
		}
	}
	return nil
}

func (idx *linearAreaIndex) add(center geo.Point) *visitedArea {
	area := &visitedArea{
		center:     center,
		visitCount: 1,
		seq:        len(idx.areas),
	}
	idx.areas = append(idx.areas, area)
	return area
}

type gridCell struct {
	latIdx int
	lngIdx int
}

// gridAreaIndex buckets areas into cells at least one threshold wide, so a
// lookup only inspects the 3x3 cell neighborhood of the query point. The
// longitude cell width is derived from the latitude band a cell sits in,
// never from a point's own latitude: all points of one band must agree on
// the longitude grid, or two nearby centers could land in far-apart cells.
type gridAreaIndex struct {
	threshold   float64
	cellSizeLat float64
	cells       map[gridCell][]*visitedArea
	nextSeq     int
}

func newGridAreaIndex(threshold float64) *gridAreaIndex {
	return &gridAreaIndex{
		threshold:   threshold,
		cellSizeLat: threshold / metersPerDegree,
		cells:       make(map[gridCell][]*visitedArea),
	}
}

func (idx *gridAreaIndex) latBand(lat float64) int {
	return int(math.Floor(lat / idx.cellSizeLat))
}

// lngIdxInBand returns the longitude cell of lng within the given latitude
// band, using the band's center latitude for the cell width.
func (idx *gridAreaIndex) lngIdxInBand(lng float64, band int) int {
	bandCenterLat := (float64(band) + 0.5) * idx.cellSizeLat
	cosLat := math.Cos(bandCenterLat * math.Pi / 180)
	if cosLat < minCosLat {
		// near the poles a single cell spans all longitudes
		return 0
	}
	return int(math.Floor(lng * cosLat / idx.cellSizeLat))
}

func (idx *gridAreaIndex) match(center geo.Point) *visitedArea {
	band := idx.latBand(center.Lat)

	var best *visitedArea
	for dLat := -1; dLat <= 1; dLat++ {
		neighborBand := band + dLat
		lngIdx := idx.lngIdxInBand(center.Lng, neighborBand)
		for dLng := -1; dLng <= 1; dLng++ {
			neighbor := gridCell{latIdx: neighborBand, lngIdx: lngIdx + dLng}
			for _, area := range idx.cells[neighbor] {
				if geo.Distance(center, area.center) >= idx.threshold {
					continue
				}
				if best == nil || area.seq < best.seq {
					best = area
				}
			}
		}
	}
	return best
}

func (idx *gridAreaIndex) add(center geo.Point) *visitedArea {
	area := &visitedArea{
		center:     center,
		visitCount: 1,
		seq:        idx.nextSeq,
	}
	idx.nextSeq++

	band := idx.latBand(center.Lat)
	cell := gridCell{latIdx: band, lngIdx: idx.lngIdxInBand(center.Lng, band)}
	idx.cells[cell] = append(idx.cells[cell], area)
	return area
}
