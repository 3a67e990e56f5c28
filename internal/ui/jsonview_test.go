package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dataspect/internal/tiles"
)

const featureCollection = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [1.5, 2.5]}, "properties": {"name": "a", "value": 1}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [3.5, 4.5]}, "properties": {"name": "b", "value": 2}}
  ]
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func jsonModel(t *testing.T, name, content string) *Model {
	t.Helper()
	m := newTestModel()
	if err := m.loadJSONDocument(writeTemp(t, name, content)); err != nil {
		t.Fatalf("loadJSONDocument: %v", err)
	}
	m.screen = screenJSON
	return m
}

func TestLoadPlainJSON(t *testing.T) {
	m := jsonModel(t, "obj.json", `{"a": 1, "b": [1, 2]}`)
	if m.jsonTab != tabTree || m.jsonScroll != 0 {
		t.Fatalf("expected tree tab at top, got %d %d", m.jsonTab, m.jsonScroll)
	}
	if m.geoSummary != nil {
		t.Fatal("plain JSON must not carry a geo summary")
	}
	// root, a, b, b[0], b[1]
	if len(m.treeNodes) != 5 {
		t.Fatalf("expected 5 tree nodes, got %d", len(m.treeNodes))
	}
	if !strings.Contains(m.rawText, "\"a\"") {
		t.Fatalf("raw text missing content: %q", m.rawText)
	}
}

func TestLoadInvalidJSONFails(t *testing.T) {
	m := newTestModel()
	if err := m.loadJSONDocument(writeTemp(t, "bad.json", "{nope")); err == nil {
		t.Fatal("expected load to fail")
	}
	if m.doc != nil {
		t.Fatal("failed load must not install a document")
	}
}

func TestToggleTreeNode(t *testing.T) {
	m := jsonModel(t, "obj.json", `{"a": 1, "b": [1, 2]}`)
	total := len(m.treeNodes)

	press(m, keyEnter) // collapse root
	if len(m.treeNodes) != 1 {
		t.Fatalf("expected collapsed root only, got %d nodes", len(m.treeNodes))
	}
	press(m, keyEnter) // expand again
	if len(m.treeNodes) != total {
		t.Fatalf("expected %d nodes after expand, got %d", total, len(m.treeNodes))
	}

	press(m, keyDown)
	press(m, keyDown) // "b" array
	press(m, keyEnter)
	if len(m.treeNodes) != 3 {
		t.Fatalf("expected root, a and collapsed b, got %d nodes", len(m.treeNodes))
	}
}

func TestToggleIgnoresScalars(t *testing.T) {
	m := jsonModel(t, "obj.json", `{"a": 1}`)
	press(m, keyDown) // scalar "a"
	total := len(m.treeNodes)
	press(m, keyEnter)
	if len(m.treeNodes) != total {
		t.Fatalf("scalar toggle must be a no-op, got %d nodes", len(m.treeNodes))
	}
}

func TestCollapseStateSurvivesOtherToggles(t *testing.T) {
	m := jsonModel(t, "obj.json", `{"a": [1], "b": [2]}`)
	// nodes: root, a, a[0], b, b[0]
	press(m, keyDown) // a
	press(m, keyEnter)
	// nodes: root, a(collapsed), b, b[0]
	press(m, keyDown) // b
	press(m, keyEnter)
	if len(m.treeNodes) != 3 {
		t.Fatalf("expected both arrays collapsed, got %d nodes", len(m.treeNodes))
	}
	if _, ok := m.collapsed["a"]; !ok {
		t.Fatal("collapsing b must not expand a")
	}
}

func TestGeoJSONLoadsSummary(t *testing.T) {
	m := jsonModel(t, "points.geojson", featureCollection)
	if m.geoTab != geoSummary {
		t.Fatalf("expected summary tab, got %d", m.geoTab)
	}
	s := m.geoSummary
	if s == nil || s.FeatureCount != 2 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if len(s.GeometryTypes) != 1 || s.GeometryTypes[0] != "Point" {
		t.Fatalf("unexpected geometry types %v", s.GeometryTypes)
	}
	if s.BBox == nil || s.BBox.MinLon != 1.5 || s.BBox.MaxLat != 4.5 {
		t.Fatalf("unexpected bbox %+v", s.BBox)
	}
	if len(m.featHeaders) != 2 || m.featHeaders[0] != "name" || len(m.featRows) != 2 {
		t.Fatalf("unexpected features table %v %v", m.featHeaders, m.featRows)
	}
}

func TestGeoTabCycle(t *testing.T) {
	m := jsonModel(t, "points.geojson", featureCollection)
	m.jsonScroll = 1
	press(m, keyTab)
	if m.geoTab != geoFeatures || m.jsonScroll != 0 {
		t.Fatalf("expected features tab with scroll 0, got %d %d", m.geoTab, m.jsonScroll)
	}
	press(m, keyTab)
	if m.geoTab != geoTree {
		t.Fatalf("expected tree tab, got %d", m.geoTab)
	}
	press(m, keyTab)
	if m.geoTab != geoSummary {
		t.Fatalf("expected wrap to summary, got %d", m.geoTab)
	}
}

func TestScrollBoundsOnFeaturesTab(t *testing.T) {
	m := jsonModel(t, "points.geojson", featureCollection)
	m.geoTab = geoFeatures
	for i := 0; i < 10; i++ {
		press(m, keyDown)
	}
	if m.jsonScroll != len(m.featRows)-1 {
		t.Fatalf("expected scroll pinned at %d, got %d", len(m.featRows)-1, m.jsonScroll)
	}
}

func TestExportFeatures(t *testing.T) {
	m := jsonModel(t, "points.geojson", featureCollection)
	m.geoTab = geoFeatures
	pressRune(m, 'e')
	if m.popup != popupMessage || m.popupTitle != "Success" {
		t.Fatalf("expected success popup, got %d %q", m.popup, m.popupTitle)
	}
	out := strings.TrimSuffix(m.doc.Path, ".geojson") + "_features.csv"
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("expected export at %s: %v", out, err)
	}
	if !strings.HasPrefix(string(data), "name,value\n") {
		t.Fatalf("unexpected csv content %q", data)
	}
	if m.popupBody != "Exported features to "+out {
		t.Fatalf("unexpected body %q", m.popupBody)
	}
}

func TestExportOnlyOnFeaturesTab(t *testing.T) {
	m := jsonModel(t, "points.geojson", featureCollection)
	pressRune(m, 'e') // summary tab
	if m.popup != popupNone {
		t.Fatalf("export must only react on the features tab, got %d", m.popup)
	}
}

func TestTilesPopupRequiresGeoJSON(t *testing.T) {
	m := jsonModel(t, "obj.json", `{"a": 1}`)
	pressRune(m, 'p')
	if m.popup != popupNone {
		t.Fatalf("plain JSON must not open the tiles popup, got %d", m.popup)
	}
}

func TestTilesPopupWithoutTippecanoe(t *testing.T) {
	if tiles.Installed() {
		t.Skip("tippecanoe available")
	}
	m := jsonModel(t, "points.geojson", featureCollection)
	pressRune(m, 'p')
	if m.popup != popupMessage || m.popupTitle != "Error" {
		t.Fatalf("expected error popup, got %d %q", m.popup, m.popupTitle)
	}
	if !strings.Contains(m.popupBody, "tippecanoe") {
		t.Fatalf("unexpected body %q", m.popupBody)
	}
}

func TestTilesNavClamp(t *testing.T) {
	m := newTestModel()
	m.popup = popupTiles
	m.tiles = tilesEditor{cfg: tiles.DefaultConfig()}
	press(m, keyUp)
	if m.tiles.row != 0 {
		t.Fatalf("expected row pinned at 0, got %d", m.tiles.row)
	}
	for i := 0; i < 10; i++ {
		press(m, keyDown)
	}
	if m.tiles.row != tilesRowCount-1 {
		t.Fatalf("expected row pinned at %d, got %d", tilesRowCount-1, m.tiles.row)
	}
}

func TestTilesPresetCycle(t *testing.T) {
	m := newTestModel()
	m.popup = popupTiles
	m.tiles = tilesEditor{cfg: tiles.DefaultConfig()}
	press(m, keyRight)
	if m.tiles.preset != 1 {
		t.Fatalf("expected preset 1, got %d", m.tiles.preset)
	}
	if m.tiles.cfg.MinZoom != 6 || m.tiles.cfg.MaxZoom != 18 {
		t.Fatalf("preset must apply its zoom range, got %d..%d", m.tiles.cfg.MinZoom, m.tiles.cfg.MaxZoom)
	}
	press(m, keyLeft)
	if m.tiles.preset != 0 {
		t.Fatalf("expected wrap back to custom, got %d", m.tiles.preset)
	}
	press(m, keyLeft)
	if m.tiles.preset != len(tiles.Presets)-1 {
		t.Fatalf("expected wrap to last preset, got %d", m.tiles.preset)
	}
}

func TestTilesZoomAdjustClampsAndResetsPreset(t *testing.T) {
	m := newTestModel()
	m.popup = popupTiles
	m.tiles = tilesEditor{cfg: tiles.DefaultConfig(), preset: 1, row: tilesRowMinZoom}
	press(m, keyLeft)
	if m.tiles.cfg.MinZoom != 0 {
		t.Fatalf("min zoom must not go below 0, got %d", m.tiles.cfg.MinZoom)
	}
	press(m, keyRight)
	if m.tiles.cfg.MinZoom != 1 {
		t.Fatalf("expected min zoom 1, got %d", m.tiles.cfg.MinZoom)
	}
	if m.tiles.preset != 0 {
		t.Fatalf("manual zoom edit must reset the preset, got %d", m.tiles.preset)
	}

	m.tiles.row = tilesRowMaxZoom
	m.tiles.cfg.MaxZoom = 22
	press(m, keyRight)
	if m.tiles.cfg.MaxZoom != 22 {
		t.Fatalf("max zoom must not exceed 22, got %d", m.tiles.cfg.MaxZoom)
	}
	m.tiles.cfg.MaxZoom = m.tiles.cfg.MinZoom
	press(m, keyLeft)
	if m.tiles.cfg.MaxZoom != m.tiles.cfg.MinZoom {
		t.Fatalf("max zoom must not drop below min zoom, got %d", m.tiles.cfg.MaxZoom)
	}
}

func TestTilesToggles(t *testing.T) {
	m := newTestModel()
	m.popup = popupTiles
	m.tiles = tilesEditor{cfg: tiles.DefaultConfig(), row: tilesRowFeatureLimit}
	press(m, keyRight)
	if !m.tiles.cfg.NoFeatureLimit {
		t.Fatal("expected feature limit toggle on")
	}
	press(m, keyLeft)
	if m.tiles.cfg.NoFeatureLimit {
		t.Fatal("expected feature limit toggle off")
	}
}

func TestStartTilesShowsRunningPopup(t *testing.T) {
	m := newTestModel()
	m.tiles = tilesEditor{source: "/data/points.geojson", cfg: tiles.DefaultConfig()}
	m.popup = popupTiles
	cmd := m.startTiles()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if m.popup != popupMessage || m.popupTitle != "PMTiles" {
		t.Fatalf("expected running popup, got %d %q", m.popup, m.popupTitle)
	}
	if !m.tilesRunning {
		t.Fatal("expected running flag set")
	}
	if !strings.Contains(m.popupBody, "points.geojson") {
		t.Fatalf("unexpected body %q", m.popupBody)
	}
}
