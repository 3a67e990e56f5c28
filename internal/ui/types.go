package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/fsnotify/fsnotify"

	"dataspect/internal/browse"
	"dataspect/internal/config"
	"dataspect/internal/engine"
	"dataspect/internal/jsondoc"
	"dataspect/internal/tiles"
)

// previewPageSize is the number of rows fetched per preview page.
const previewPageSize = 50

type screen int

const (
	screenHome screen = iota
	screenBrowser
	screenInspector
	screenJSON
)

type popupKind int

const (
	popupNone popupKind = iota
	popupConvert
	popupMessage
	popupFilter
	popupTiles
)

type inspectorTab int

const (
	tabSchema inspectorTab = iota
	tabPreview
)

type jsonTab int

const (
	tabTree jsonTab = iota
	tabRaw
)

type geoTab int

const (
	geoSummary geoTab = iota
	geoFeatures
	geoTree
)

type filterField int

const (
	fieldColumn filterField = iota
	fieldOperator
	fieldValue
)

type msgKind int

const (
	msgNone msgKind = iota
	msgQuit
	msgNavigateUp
	msgNavigateDown
	msgEnter
	msgBack
	msgSwitchTab
	msgScrollUp
	msgScrollDown
	msgNextPage
	msgPrevPage
	msgConvertFile
	msgConfirmConvert
	msgClosePopup
	msgToggleTreeNode
	msgSwitchGeoTab
	msgOpenFilter
	msgFilterTabNext
	msgFilterNavUp
	msgFilterNavDown
	msgFilterChar
	msgFilterBackspace
	msgFilterAdd
	msgFilterRemoveLast
	msgFilterApply
	msgOpenTiles
	msgTilesNavUp
	msgTilesNavDown
	msgTilesAdjustLeft
	msgTilesAdjustRight
	msgTilesRun
	msgExportFeatures
)

// message is the reduced form of one input event. mapKey translates a key
// press into a message; apply performs the state change. Keeping the two
// apart means every transition is testable without a terminal.
type message struct {
	kind msgKind
	text string // typed characters, only for msgFilterChar
}

// dirChangedMsg arrives when the watcher sees the current directory change.
type dirChangedMsg struct{}

// tilesDoneMsg carries the result of a finished tippecanoe run.
type tilesDoneMsg struct {
	output string
	err    error
}

// dataEngine is the part of engine.Inspector the model calls. Tests swap
// in a fake so reducer behavior can be checked without DuckDB.
type dataEngine interface {
	Path() string
	Schema() ([]engine.Column, error)
	RowCount(whereClause string) (int, error)
	NullCount(column string) (int, error)
	MinValue(column string) (string, error)
	MaxValue(column string) (string, error)
	MeanValue(column string) (string, error)
	Preview(limit, offset int, whereClause string) ([]string, [][]string, error)
	Convert(target string) (string, error)
	Close() error
}

type engineOpener func(path string) (dataEngine, error)

// filterEditor is the working state of the filter popup. conditions is a
// copy of the applied filters; nothing touches the model until apply.
type filterEditor struct {
	conditions  []engine.Condition
	columnIdx   int
	operatorIdx int
	value       string
	active      filterField
}

// tilesEditor is the working state of the PMTiles popup.
type tilesEditor struct {
	source string
	cfg    tiles.Config
	preset int // index into tiles.Presets
	row    int // selected line, 0..5
}

type Model struct {
	ctx context.Context
	cfg *config.Config

	// Navigation
	screen       screen
	homeSelected int

	// File browser
	currentDir      string
	dirEntries      []browse.Entry
	browserSelected int
	watcher         *fsnotify.Watcher
	watchedDir      string

	// Data inspector; eng is non-nil exactly while a file is loaded
	openEngine     engineOpener
	eng            dataEngine
	inspectorTab   inspectorTab
	schema         []engine.Column
	nullCounts     []int
	minValues      []string
	maxValues      []string
	meanValues     []string
	previewHeaders []string
	previewRows    [][]string
	rowCount       int
	scroll         int
	page           int
	filters        []engine.Condition

	// JSON inspector
	doc         *jsondoc.Document
	treeNodes   []jsondoc.Node
	collapsed   map[string]struct{}
	jsonTab     jsonTab
	geoTab      geoTab
	jsonScroll  int
	featHeaders []string
	featRows    [][]string
	geoSummary  *jsondoc.Summary
	rawText     string

	// Popup
	popup         popupKind
	popupTitle    string
	popupBody     string
	convertTarget string
	filter        filterEditor
	tiles         tilesEditor
	tilesRunning  bool
	spin          spinner.Model

	// Chrome
	styles     Styles
	keymap     KeyMap
	termWidth  int
	termHeight int
}

var homeItems = []string{"Browse Files", "Inspect Data File"}
