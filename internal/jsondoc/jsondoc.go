// Package jsondoc loads JSON documents and flattens them for display.
// Parsing goes through gjson so object keys keep their document order,
// which fixes both the tree layout and the feature table header order.
package jsondoc

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Kind distinguishes plain JSON from GeoJSON.
type Kind int

const (
	KindJSON Kind = iota
	KindGeoJSON
)

func (k Kind) String() string {
	if k == KindGeoJSON {
		return "GeoJSON"
	}
	return "JSON"
}

// Document is a parsed JSON file.
type Document struct {
	Path string
	Kind Kind
	Root gjson.Result
	raw  []byte
}

// Load reads and parses path. The raw bytes are kept for the raw tab.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s: invalid JSON", filepath.Base(path))
	}
	root := gjson.ParseBytes(data)
	return &Document{Path: path, Kind: detectKind(path, root), Root: root, raw: data}, nil
}

// Pretty returns the document re-indented for the raw tab.
func (d *Document) Pretty() string {
	return string(pretty.Pretty(d.raw))
}

// detectKind treats a file as GeoJSON when it has the .geojson extension or
// a top-level type of FeatureCollection or Feature.
func detectKind(path string, root gjson.Result) Kind {
	if filepath.Ext(path) == ".geojson" {
		return KindGeoJSON
	}
	if t := root.Get("type"); t.Type == gjson.String {
		if t.Str == "FeatureCollection" || t.Str == "Feature" {
			return KindGeoJSON
		}
	}
	return KindJSON
}

// DisplayValue renders a value for table cells. Containers show their size
// instead of their contents.
func DisplayValue(v gjson.Result) string {
	switch {
	case v.IsObject():
		n := 0
		v.ForEach(func(_, _ gjson.Result) bool { n++; return true })
		return fmt.Sprintf("{%d}", n)
	case v.IsArray():
		return fmt.Sprintf("[%d]", len(v.Array()))
	case v.Type == gjson.True:
		return "true"
	case v.Type == gjson.False:
		return "false"
	case v.Type == gjson.String:
		return v.Str
	case v.Type == gjson.Number:
		return v.Raw
	default:
		return "null"
	}
}
