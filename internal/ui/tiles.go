package ui

import (
	"errors"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"dataspect/internal/jsondoc"
	"dataspect/internal/tiles"
	"dataspect/internal/util/logx"
)

// tile popup rows, top to bottom
const (
	tilesRowPreset = iota
	tilesRowMinZoom
	tilesRowMaxZoom
	tilesRowFeatureLimit
	tilesRowTileSizeLimit
	tilesRowDropDensest
	tilesRowCount
)

// openTilesPopup starts the PMTiles editor for the loaded GeoJSON file,
// seeded with the configured zoom range. Without tippecanoe on PATH an
// error popup is shown instead.
func (m *Model) openTilesPopup() {
	if m.doc == nil || m.doc.Kind != jsondoc.KindGeoJSON {
		return
	}
	if !tiles.Installed() {
		m.errorPopup(errors.New("tippecanoe is not installed or not on PATH"))
		return
	}
	cfg := tiles.DefaultConfig()
	cfg.MinZoom = m.cfg.Tiles.MinZoom
	cfg.MaxZoom = m.cfg.Tiles.MaxZoom
	m.tiles = tilesEditor{source: m.doc.Path, cfg: cfg}
	m.popup = popupTiles
}

func (m *Model) tilesNav(delta int) {
	row := m.tiles.row + delta
	if row < 0 || row >= tilesRowCount {
		return
	}
	m.tiles.row = row
}

// tilesAdjust changes the selected row by one step. Cycling the preset
// applies its zoom range; editing a zoom by hand drops back to Custom.
func (m *Model) tilesAdjust(delta int) {
	ed := &m.tiles
	switch ed.row {
	case tilesRowPreset:
		n := len(tiles.Presets)
		ed.preset = (ed.preset + delta + n) % n
		ed.cfg.Apply(tiles.Presets[ed.preset])
	case tilesRowMinZoom:
		z := ed.cfg.MinZoom + delta
		if z >= 0 && z <= ed.cfg.MaxZoom {
			ed.cfg.MinZoom = z
			ed.preset = 0
		}
	case tilesRowMaxZoom:
		z := ed.cfg.MaxZoom + delta
		if z >= ed.cfg.MinZoom && z <= 22 {
			ed.cfg.MaxZoom = z
			ed.preset = 0
		}
	case tilesRowFeatureLimit:
		ed.cfg.NoFeatureLimit = !ed.cfg.NoFeatureLimit
	case tilesRowTileSizeLimit:
		ed.cfg.NoTileSizeLimit = !ed.cfg.NoTileSizeLimit
	case tilesRowDropDensest:
		ed.cfg.DropDensestAsNeeded = !ed.cfg.DropDensestAsNeeded
	}
}

// startTiles dispatches the tippecanoe run off the update loop and leaves
// a progress popup behind; tilesDoneMsg carries the outcome back.
func (m *Model) startTiles() tea.Cmd {
	ed := m.tiles
	m.popup = popupMessage
	m.popupTitle = "PMTiles"
	m.popupBody = "Running tippecanoe on " + filepath.Base(ed.source) + "..."
	m.tilesRunning = true
	ctx := m.ctx
	logx.Infof("tiles: running tippecanoe on %s (zoom %d..%d)", ed.source, ed.cfg.MinZoom, ed.cfg.MaxZoom)
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		out, err := tiles.Run(ctx, ed.source, ed.cfg)
		return tilesDoneMsg{output: out, err: err}
	})
}
