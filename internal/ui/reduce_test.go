package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"dataspect/internal/browse"
	"dataspect/internal/config"
	"dataspect/internal/engine"
)

type previewCall struct {
	limit, offset int
	where         string
}

// fakeEngine implements dataEngine in memory so transitions can be
// exercised without DuckDB.
type fakeEngine struct {
	path       string
	schema     []engine.Column
	rows       int
	statErr    error
	countErr   error
	previewErr error
	convertErr error

	countWheres  []string
	previewCalls []previewCall
	converted    []string
	closed       bool
}

func (f *fakeEngine) Path() string                    { return f.path }
func (f *fakeEngine) Schema() ([]engine.Column, error) { return f.schema, nil }

func (f *fakeEngine) RowCount(where string) (int, error) {
	f.countWheres = append(f.countWheres, where)
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.rows, nil
}

func (f *fakeEngine) NullCount(string) (int, error) {
	if f.statErr != nil {
		return 0, f.statErr
	}
	return 2, nil
}

func (f *fakeEngine) MinValue(string) (string, error) {
	if f.statErr != nil {
		return "", f.statErr
	}
	return "1", nil
}

func (f *fakeEngine) MaxValue(string) (string, error) {
	if f.statErr != nil {
		return "", f.statErr
	}
	return "9", nil
}

func (f *fakeEngine) MeanValue(string) (string, error) {
	if f.statErr != nil {
		return "", f.statErr
	}
	return "5.0", nil
}

func (f *fakeEngine) Preview(limit, offset int, where string) ([]string, [][]string, error) {
	f.previewCalls = append(f.previewCalls, previewCall{limit, offset, where})
	if f.previewErr != nil {
		return nil, nil, f.previewErr
	}
	headers := make([]string, len(f.schema))
	for i, c := range f.schema {
		headers[i] = c.Name
	}
	n := f.rows - offset
	if n > limit {
		n = limit
	}
	if n < 0 {
		n = 0
	}
	rows := make([][]string, n)
	for i := range rows {
		cells := make([]string, len(headers))
		for j := range cells {
			cells[j] = sprintf("r%dc%d", offset+i, j)
		}
		rows[i] = cells
	}
	return headers, rows, nil
}

func (f *fakeEngine) Convert(target string) (string, error) {
	f.converted = append(f.converted, target)
	if f.convertErr != nil {
		return "", f.convertErr
	}
	return strings.TrimSuffix(f.path, filepath.Ext(f.path)) + "." + target, nil
}

func (f *fakeEngine) Close() error {
	f.closed = true
	return nil
}

func newFakeEngine(path string, rows int) *fakeEngine {
	return &fakeEngine{
		path: path,
		rows: rows,
		schema: []engine.Column{
			{Name: "id", Type: "BIGINT"},
			{Name: "name", Type: "VARCHAR"},
		},
	}
}

func newTestModel() *Model {
	m := &Model{
		ctx:        context.Background(),
		cfg:        config.Default(),
		screen:     screenHome,
		styles:     NewStyles(true),
		keymap:     DefaultKeyMap(),
		collapsed:  map[string]struct{}{},
		termWidth:  100,
		termHeight: 30,
	}
	m.spin = spinner.New()
	return m
}

func loadFake(t *testing.T, m *Model, f *fakeEngine) {
	t.Helper()
	m.openEngine = func(string) (dataEngine, error) { return f, nil }
	if err := m.loadInspector(f.path); err != nil {
		t.Fatalf("loadInspector: %v", err)
	}
	m.screen = screenInspector
}

func press(m *Model, k tea.Key) tea.Cmd {
	_, cmd := m.apply(m.mapKey(tea.KeyMsg(k)))
	return cmd
}

func pressRune(m *Model, r rune) tea.Cmd {
	return press(m, tea.Key{Type: tea.KeyRunes, Runes: []rune{r}})
}

var (
	keyUp        = tea.Key{Type: tea.KeyUp}
	keyDown      = tea.Key{Type: tea.KeyDown}
	keyLeft      = tea.Key{Type: tea.KeyLeft}
	keyRight     = tea.Key{Type: tea.KeyRight}
	keyEnter     = tea.Key{Type: tea.KeyEnter}
	keyEsc       = tea.Key{Type: tea.KeyEsc}
	keyTab       = tea.Key{Type: tea.KeyTab}
	keyBackspace = tea.Key{Type: tea.KeyBackspace}
)

func TestHomeNavigationBounds(t *testing.T) {
	m := newTestModel()
	press(m, keyUp)
	if m.homeSelected != 0 {
		t.Fatalf("expected selection pinned at 0, got %d", m.homeSelected)
	}
	press(m, keyDown)
	if m.homeSelected != 1 {
		t.Fatalf("expected selection 1, got %d", m.homeSelected)
	}
	press(m, keyDown)
	if m.homeSelected != 1 {
		t.Fatalf("expected selection pinned at %d, got %d", len(homeItems)-1, m.homeSelected)
	}
	pressRune(m, 'k')
	if m.homeSelected != 0 {
		t.Fatalf("expected vim up to move selection to 0, got %d", m.homeSelected)
	}
}

func TestHomeEnterOpensBrowser(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "data.csv"), []byte("a\n1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := newTestModel()
	m.currentDir = dir
	press(m, keyEnter)
	if m.screen != screenBrowser {
		t.Fatalf("expected browser screen, got %d", m.screen)
	}
	if len(m.dirEntries) != 2 || m.dirEntries[0].Name != ".." || m.dirEntries[1].Name != "data.csv" {
		t.Fatalf("unexpected entries: %+v", m.dirEntries)
	}
	if m.browserSelected != 0 {
		t.Fatalf("expected selection reset, got %d", m.browserSelected)
	}
}

func TestEnterOnDirectoryFailureKeepsBrowserState(t *testing.T) {
	m := newTestModel()
	m.screen = screenBrowser
	m.currentDir = "/somewhere"
	m.dirEntries = []browse.Entry{{Name: "gone", Path: "/no/such/dir/anywhere", IsDir: true}}
	press(m, keyEnter)
	if m.popup != popupMessage || m.popupTitle != "Error" {
		t.Fatalf("expected error popup, got %d %q", m.popup, m.popupTitle)
	}
	if m.currentDir != "/somewhere" || len(m.dirEntries) != 1 {
		t.Fatalf("listing failure must leave browser state alone, got dir %q", m.currentDir)
	}
}

func TestOpenDataFileLoadsInspector(t *testing.T) {
	f := newFakeEngine("/data/data.csv", 120)
	m := newTestModel()
	m.screen = screenBrowser
	m.openEngine = func(string) (dataEngine, error) { return f, nil }
	m.dirEntries = []browse.Entry{{Name: "data.csv", Path: f.path}}
	m.browserSelected = 0

	press(m, keyEnter)
	if m.screen != screenInspector {
		t.Fatalf("expected inspector screen, got %d", m.screen)
	}
	if m.inspectorTab != tabSchema {
		t.Fatalf("expected schema tab after load, got %d", m.inspectorTab)
	}
	if m.rowCount != 120 || len(m.schema) != 2 {
		t.Fatalf("expected 120 rows and 2 columns, got %d %d", m.rowCount, len(m.schema))
	}
	if m.nullCounts[0] != 2 || m.minValues[0] != "1" || m.maxValues[0] != "9" || m.meanValues[0] != "5.0" {
		t.Fatalf("unexpected stats: %v %v %v %v", m.nullCounts, m.minValues, m.maxValues, m.meanValues)
	}
	if len(f.previewCalls) != 1 || f.previewCalls[0] != (previewCall{50, 0, ""}) {
		t.Fatalf("expected first page preview, got %+v", f.previewCalls)
	}
	if len(m.previewRows) != 50 {
		t.Fatalf("expected 50 preview rows, got %d", len(m.previewRows))
	}
}

func TestInspectorStatsDegrade(t *testing.T) {
	f := newFakeEngine("/data/data.csv", 10)
	f.statErr = errors.New("no stats")
	m := newTestModel()
	loadFake(t, m, f)
	for i := range m.schema {
		if m.nullCounts[i] != 0 {
			t.Fatalf("expected null count 0 on error, got %d", m.nullCounts[i])
		}
		if m.minValues[i] != "-" || m.maxValues[i] != "-" || m.meanValues[i] != "-" {
			t.Fatalf("expected dashes on stat error, got %q %q %q", m.minValues[i], m.maxValues[i], m.meanValues[i])
		}
	}
}

func TestOpenEngineFailureKeepsScreen(t *testing.T) {
	m := newTestModel()
	m.screen = screenBrowser
	m.openEngine = func(string) (dataEngine, error) { return nil, errors.New("boom") }
	m.dirEntries = []browse.Entry{{Name: "data.parquet", Path: "/data/data.parquet"}}

	press(m, keyEnter)
	if m.screen != screenBrowser {
		t.Fatalf("expected to stay on browser, got %d", m.screen)
	}
	if m.popup != popupMessage || m.popupTitle != "Error" || m.popupBody != "boom" {
		t.Fatalf("expected error popup, got %d %q %q", m.popup, m.popupTitle, m.popupBody)
	}
}

func TestSwitchTabResetsScroll(t *testing.T) {
	m := newTestModel()
	loadFake(t, m, newFakeEngine("/data/data.csv", 120))
	m.scroll = 3
	press(m, keyTab)
	if m.inspectorTab != tabPreview || m.scroll != 0 {
		t.Fatalf("expected preview tab with scroll 0, got %d %d", m.inspectorTab, m.scroll)
	}
	m.scroll = 5
	press(m, keyTab)
	if m.inspectorTab != tabSchema || m.scroll != 0 {
		t.Fatalf("expected schema tab with scroll 0, got %d %d", m.inspectorTab, m.scroll)
	}
}

func TestInspectorScrollBounds(t *testing.T) {
	m := newTestModel()
	loadFake(t, m, newFakeEngine("/data/data.csv", 3))
	press(m, keyUp)
	if m.scroll != 0 {
		t.Fatalf("expected scroll pinned at 0, got %d", m.scroll)
	}
	press(m, keyDown)
	press(m, keyDown)
	if m.scroll != 1 {
		t.Fatalf("schema scroll must stop at %d, got %d", len(m.schema)-1, m.scroll)
	}
	press(m, keyTab)
	for i := 0; i < 10; i++ {
		pressRune(m, 'j')
	}
	if m.scroll != 2 {
		t.Fatalf("preview scroll must stop at %d, got %d", len(m.previewRows)-1, m.scroll)
	}
}

func TestPreviewPagination(t *testing.T) {
	f := newFakeEngine("/data/data.csv", 120)
	m := newTestModel()
	loadFake(t, m, f)
	press(m, keyTab)
	m.scroll = 4

	press(m, keyRight)
	if m.page != 1 || m.scroll != 0 {
		t.Fatalf("expected page 1 scroll 0, got %d %d", m.page, m.scroll)
	}
	press(m, keyRight)
	if m.page != 2 {
		t.Fatalf("expected page 2, got %d", m.page)
	}
	calls := len(f.previewCalls)
	press(m, keyRight)
	if m.page != 2 || len(f.previewCalls) != calls {
		t.Fatalf("expected last page pin, got page %d calls %d", m.page, len(f.previewCalls))
	}
	if f.previewCalls[1].offset != 50 || f.previewCalls[2].offset != 100 {
		t.Fatalf("unexpected offsets: %+v", f.previewCalls)
	}
	if len(m.previewRows) != 20 {
		t.Fatalf("expected 20 rows on last page, got %d", len(m.previewRows))
	}

	press(m, keyLeft)
	press(m, keyLeft)
	press(m, keyLeft)
	if m.page != 0 {
		t.Fatalf("expected page pinned at 0, got %d", m.page)
	}
}

func TestPaginationOnlyOnPreviewTab(t *testing.T) {
	f := newFakeEngine("/data/data.csv", 120)
	m := newTestModel()
	loadFake(t, m, f)
	calls := len(f.previewCalls)
	press(m, keyRight)
	if m.page != 0 || len(f.previewCalls) != calls {
		t.Fatalf("schema tab must ignore paging, got page %d", m.page)
	}
}

func TestPreviewPageErrorShowsPopup(t *testing.T) {
	f := newFakeEngine("/data/data.csv", 120)
	m := newTestModel()
	loadFake(t, m, f)
	press(m, keyTab)
	f.previewErr = errors.New("query failed")
	press(m, keyRight)
	if m.popup != popupMessage || m.popupTitle != "Error" {
		t.Fatalf("expected error popup, got %d %q", m.popup, m.popupTitle)
	}
	if m.page != 1 {
		t.Fatalf("page advances before the load, got %d", m.page)
	}
}

func TestBackNavigation(t *testing.T) {
	m := newTestModel()
	loadFake(t, m, newFakeEngine("/data/data.csv", 10))
	m.dirEntries = []browse.Entry{{Name: "data.csv", Path: "/data/data.csv"}}
	press(m, keyEsc)
	if m.screen != screenBrowser {
		t.Fatalf("expected browser after back, got %d", m.screen)
	}
	press(m, keyEsc)
	if m.screen != screenHome {
		t.Fatalf("expected home after back, got %d", m.screen)
	}
}

func TestBackFromDirectInspectorFillsBrowser(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte("a\n1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := newTestModel()
	loadFake(t, m, newFakeEngine(path, 10))
	m.dirEntries = nil

	press(m, keyEsc)
	if m.screen != screenBrowser {
		t.Fatalf("expected browser, got %d", m.screen)
	}
	if m.currentDir != dir || len(m.dirEntries) == 0 {
		t.Fatalf("expected listing of %s, got %q with %d entries", dir, m.currentDir, len(m.dirEntries))
	}
}

func TestPopupBlocksScreenKeys(t *testing.T) {
	m := newTestModel()
	m.screen = screenBrowser
	m.dirEntries = []browse.Entry{{Name: "a"}, {Name: "b"}}
	m.popup = popupMessage
	press(m, keyDown)
	if m.browserSelected != 0 {
		t.Fatalf("popup must swallow navigation, got selection %d", m.browserSelected)
	}
	cmd := pressRune(m, 'q')
	if cmd != nil {
		t.Fatalf("popup must swallow quit")
	}
	press(m, keyEnter)
	if m.popup != popupNone {
		t.Fatalf("enter must close the message popup, got %d", m.popup)
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel()
	cmd := pressRune(m, 'q')
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg, got %T", cmd())
	}
	cmd = press(m, tea.Key{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command for ctrl+c")
	}
}

func TestConvertFlow(t *testing.T) {
	f := newFakeEngine("/data/data.csv", 10)
	m := newTestModel()
	loadFake(t, m, f)

	pressRune(m, 'c')
	if m.popup != popupConvert || m.convertTarget != "parquet" {
		t.Fatalf("expected convert popup to parquet, got %d %q", m.popup, m.convertTarget)
	}
	press(m, keyEnter)
	if m.popup != popupMessage || m.popupTitle != "Success" {
		t.Fatalf("expected success popup, got %d %q", m.popup, m.popupTitle)
	}
	if m.popupBody != "Converted to /data/data.parquet" {
		t.Fatalf("unexpected body %q", m.popupBody)
	}
	if len(f.converted) != 1 || f.converted[0] != "parquet" {
		t.Fatalf("unexpected convert calls %v", f.converted)
	}
}

func TestConvertTargetForParquet(t *testing.T) {
	m := newTestModel()
	loadFake(t, m, newFakeEngine("/data/data.parquet", 10))
	pressRune(m, 'c')
	if m.convertTarget != "csv" {
		t.Fatalf("expected csv target, got %q", m.convertTarget)
	}
}

func TestConvertCancelled(t *testing.T) {
	f := newFakeEngine("/data/data.csv", 10)
	m := newTestModel()
	loadFake(t, m, f)
	pressRune(m, 'c')
	press(m, keyEsc)
	if m.popup != popupNone {
		t.Fatalf("expected popup closed, got %d", m.popup)
	}
	if len(f.converted) != 0 {
		t.Fatalf("cancel must not convert, got %v", f.converted)
	}
}

func TestConvertErrorPopup(t *testing.T) {
	f := newFakeEngine("/data/data.csv", 10)
	f.convertErr = errors.New("disk full")
	m := newTestModel()
	loadFake(t, m, f)
	pressRune(m, 'c')
	press(m, keyEnter)
	if m.popup != popupMessage || m.popupTitle != "Error" || m.popupBody != "disk full" {
		t.Fatalf("expected error popup, got %d %q %q", m.popup, m.popupTitle, m.popupBody)
	}
}

func TestLoadingNewFileClosesOldEngine(t *testing.T) {
	old := newFakeEngine("/data/a.csv", 5)
	m := newTestModel()
	loadFake(t, m, old)
	next := newFakeEngine("/data/b.csv", 7)
	m.openEngine = func(string) (dataEngine, error) { return next, nil }
	if err := m.loadInspector(next.path); err != nil {
		t.Fatalf("loadInspector: %v", err)
	}
	if !old.closed {
		t.Fatal("expected previous engine to be closed")
	}
	if m.eng != dataEngine(next) || m.rowCount != 7 {
		t.Fatalf("expected new engine active with 7 rows, got %d", m.rowCount)
	}
}

func TestWindowSize(t *testing.T) {
	m := newTestModel()
	m.Update(tea.WindowSizeMsg{Width: 42, Height: 17})
	if m.termWidth != 42 || m.termHeight != 17 {
		t.Fatalf("expected 42x17, got %dx%d", m.termWidth, m.termHeight)
	}
}

func TestTilesDoneMsg(t *testing.T) {
	m := newTestModel()
	m.popup = popupMessage
	m.tilesRunning = true
	m.Update(tilesDoneMsg{output: "/data/roads.pmtiles"})
	if m.popupTitle != "Success" || m.popupBody != "Created /data/roads.pmtiles" {
		t.Fatalf("unexpected popup %q %q", m.popupTitle, m.popupBody)
	}
	if m.tilesRunning {
		t.Fatal("expected running flag cleared")
	}
	m.Update(tilesDoneMsg{err: errors.New("tile error")})
	if m.popupTitle != "Error" || m.popupBody != "tile error" {
		t.Fatalf("unexpected popup %q %q", m.popupTitle, m.popupBody)
	}
}

func TestSeedEmptyStaysHome(t *testing.T) {
	m := newTestModel()
	if err := m.seed(""); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if m.screen != screenHome || m.currentDir == "" {
		t.Fatalf("expected home in working directory, got %d %q", m.screen, m.currentDir)
	}
}

func TestSeedDirectoryOpensBrowser(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel()
	if err := m.seed(dir); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if m.screen != screenBrowser || m.currentDir != dir {
		t.Fatalf("expected browser at %s, got %d %q", dir, m.screen, m.currentDir)
	}
}

func TestSeedDataFileOpensInspector(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte("a\n1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f := newFakeEngine(path, 1)
	m := newTestModel()
	m.openEngine = func(string) (dataEngine, error) { return f, nil }
	if err := m.seed(path); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if m.screen != screenInspector {
		t.Fatalf("expected inspector, got %d", m.screen)
	}
	if m.currentDir != dir || len(m.dirEntries) == 0 {
		t.Fatalf("expected parent listing, got %q", m.currentDir)
	}
}

func TestSeedUnknownFileOpensBrowserAtParent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := newTestModel()
	if err := m.seed(path); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if m.screen != screenBrowser || m.currentDir != dir {
		t.Fatalf("expected browser at %s, got %d %q", dir, m.screen, m.currentDir)
	}
}

func TestRefreshKeepsSelectionInRange(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.csv", "b.csv"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	m := newTestModel()
	if err := m.loadDirEntries(dir); err != nil {
		t.Fatalf("loadDirEntries: %v", err)
	}
	m.browserSelected = len(m.dirEntries) - 1
	if err := os.Remove(filepath.Join(dir, "b.csv")); err != nil {
		t.Fatal(err)
	}
	m.refreshDirEntries()
	if m.browserSelected >= len(m.dirEntries) {
		t.Fatalf("selection %d out of range after refresh (%d entries)", m.browserSelected, len(m.dirEntries))
	}
}
