package jsondoc

import (
	"math"
	"sort"

	"github.com/tidwall/gjson"
)

// BBox is a lon/lat bounding box.
type BBox struct {
	MinLon, MinLat, MaxLon, MaxLat float64
}

// Summary describes a GeoJSON document.
type Summary struct {
	FeatureCount  int
	GeometryTypes []string // distinct, sorted
	BBox          *BBox    // nil when no coordinate pair was found
}

// Summarize counts features, collects the distinct geometry type names and
// computes the bounding box over every coordinate pair. Documents without a
// features array yield an empty summary.
func Summarize(root gjson.Result) Summary {
	features := root.Get("features")
	if !features.IsArray() {
		return Summary{}
	}
	arr := features.Array()
	s := Summary{FeatureCount: len(arr)}

	types := make(map[string]struct{})
	acc := bboxAccum{
		minLon: math.MaxFloat64, minLat: math.MaxFloat64,
		maxLon: -math.MaxFloat64, maxLat: -math.MaxFloat64,
	}
	for _, f := range arr {
		geom := f.Get("geometry")
		if !geom.Exists() {
			continue
		}
		if t := geom.Get("type"); t.Type == gjson.String {
			types[t.Str] = struct{}{}
		}
		visitCoords(geom.Get("coordinates"), &acc)
	}
	for t := range types {
		s.GeometryTypes = append(s.GeometryTypes, t)
	}
	sort.Strings(s.GeometryTypes)
	if acc.seen {
		s.BBox = &BBox{MinLon: acc.minLon, MinLat: acc.minLat, MaxLon: acc.maxLon, MaxLat: acc.maxLat}
	}
	return s
}

type bboxAccum struct {
	minLon, minLat, maxLon, maxLat float64
	seen                           bool
}

// visitCoords walks an arbitrarily nested coordinates value. An array whose
// first two elements are numbers counts as one lon/lat pair; anything else
// is recursed into.
func visitCoords(v gjson.Result, acc *bboxAccum) {
	if !v.IsArray() {
		return
	}
	arr := v.Array()
	if len(arr) >= 2 && arr[0].Type == gjson.Number && arr[1].Type == gjson.Number {
		lon, lat := arr[0].Num, arr[1].Num
		acc.seen = true
		if lon < acc.minLon {
			acc.minLon = lon
		}
		if lat < acc.minLat {
			acc.minLat = lat
		}
		if lon > acc.maxLon {
			acc.maxLon = lon
		}
		if lat > acc.maxLat {
			acc.maxLat = lat
		}
		return
	}
	for _, item := range arr {
		visitCoords(item, acc)
	}
}

// FeaturesTable flattens feature properties into table headers and rows.
// Headers are the union of property keys in first-seen order; a feature
// missing a property renders "null" in that cell.
func FeaturesTable(root gjson.Result) ([]string, [][]string) {
	features := root.Get("features")
	if !features.IsArray() {
		return nil, nil
	}
	arr := features.Array()

	var headers []string
	seen := make(map[string]bool)
	for _, f := range arr {
		props := f.Get("properties")
		if !props.IsObject() {
			continue
		}
		props.ForEach(func(k, _ gjson.Result) bool {
			if !seen[k.String()] {
				seen[k.String()] = true
				headers = append(headers, k.String())
			}
			return true
		})
	}

	rows := make([][]string, 0, len(arr))
	for _, f := range arr {
		vals := make(map[string]gjson.Result)
		if props := f.Get("properties"); props.IsObject() {
			props.ForEach(func(k, v gjson.Result) bool {
				vals[k.String()] = v
				return true
			})
		}
		row := make([]string, len(headers))
		for i, h := range headers {
			if v, ok := vals[h]; ok {
				row[i] = DisplayValue(v)
			} else {
				row[i] = "null"
			}
		}
		rows = append(rows, row)
	}
	return headers, rows
}
