package ui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"dataspect/internal/browse"
	"dataspect/internal/util/logx"
)

// apply performs the state change for one message. Every mutation runs on
// the update goroutine; nothing here is called concurrently.
func (m *Model) apply(msg message) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case msgQuit:
		return m, tea.Quit
	case msgNavigateUp:
		m.navigateUp()
	case msgNavigateDown:
		m.navigateDown()
	case msgEnter:
		m.enter()
	case msgBack:
		m.back()
	case msgSwitchTab:
		m.switchTab()
	case msgScrollUp:
		m.scrollUp()
	case msgScrollDown:
		m.scrollDown()
	case msgNextPage:
		m.nextPage()
	case msgPrevPage:
		m.prevPage()
	case msgConvertFile:
		m.convertFile()
	case msgConfirmConvert:
		m.confirmConvert()
	case msgClosePopup:
		m.popup = popupNone
	case msgToggleTreeNode:
		m.toggleTreeNode()
	case msgSwitchGeoTab:
		m.switchGeoTab()
	case msgOpenFilter:
		m.openFilterPopup()
	case msgFilterTabNext:
		m.filterTabNext()
	case msgFilterNavUp:
		m.filterNavUp()
	case msgFilterNavDown:
		m.filterNavDown()
	case msgFilterChar:
		m.filter.value += msg.text
	case msgFilterBackspace:
		m.filterBackspace()
	case msgFilterAdd:
		m.filterAddCondition()
	case msgFilterRemoveLast:
		m.filterRemoveLast()
	case msgFilterApply:
		m.filterApply()
	case msgOpenTiles:
		m.openTilesPopup()
	case msgTilesNavUp:
		m.tilesNav(-1)
	case msgTilesNavDown:
		m.tilesNav(1)
	case msgTilesAdjustLeft:
		m.tilesAdjust(-1)
	case msgTilesAdjustRight:
		m.tilesAdjust(1)
	case msgTilesRun:
		return m, m.startTiles()
	case msgExportFeatures:
		m.exportFeatures()
	}
	return m, nil
}

func (m *Model) navigateUp() {
	switch m.screen {
	case screenHome:
		if m.homeSelected > 0 {
			m.homeSelected--
		}
	case screenBrowser:
		if m.browserSelected > 0 {
			m.browserSelected--
		}
	}
}

func (m *Model) navigateDown() {
	switch m.screen {
	case screenHome:
		if m.homeSelected+1 < len(homeItems) {
			m.homeSelected++
		}
	case screenBrowser:
		if m.browserSelected+1 < len(m.dirEntries) {
			m.browserSelected++
		}
	}
}

func (m *Model) enter() {
	switch m.screen {
	case screenHome:
		// Both menu entries lead to the browser.
		if err := m.loadDirEntries(m.currentDir); err != nil {
			m.errorPopup(err)
			return
		}
		m.screen = screenBrowser
	case screenBrowser:
		if m.browserSelected >= len(m.dirEntries) {
			return
		}
		entry := m.dirEntries[m.browserSelected]
		if entry.IsDir {
			if err := m.loadDirEntries(entry.Path); err != nil {
				m.errorPopup(err)
			}
			return
		}
		switch browse.Extension(entry.Name) {
		case "csv", "parquet":
			if err := m.loadInspector(entry.Path); err != nil {
				m.errorPopup(err)
				return
			}
			m.screen = screenInspector
		case "json", "geojson":
			if err := m.loadJSONDocument(entry.Path); err != nil {
				m.errorPopup(err)
				return
			}
			m.screen = screenJSON
		}
	}
}

func (m *Model) back() {
	switch m.screen {
	case screenJSON:
		m.screen = screenBrowser
	case screenInspector:
		// Repopulate the browser when the inspector was entered directly.
		if len(m.dirEntries) == 0 && m.eng != nil {
			if err := m.loadDirEntries(filepath.Dir(m.eng.Path())); err != nil {
				logx.Warnf("browser: %v", err)
			}
		}
		m.screen = screenBrowser
	case screenBrowser:
		m.screen = screenHome
	}
}

func (m *Model) switchTab() {
	switch m.screen {
	case screenJSON:
		m.jsonScroll = 0
		if m.jsonTab == tabTree {
			m.jsonTab = tabRaw
		} else {
			m.jsonTab = tabTree
		}
	default:
		m.scroll = 0
		if m.inspectorTab == tabSchema {
			m.inspectorTab = tabPreview
		} else {
			m.inspectorTab = tabSchema
		}
	}
}

func (m *Model) scrollUp() {
	switch m.screen {
	case screenJSON:
		if m.jsonScroll > 0 {
			m.jsonScroll--
		}
	default:
		if m.scroll > 0 {
			m.scroll--
		}
	}
}

func (m *Model) scrollDown() {
	switch m.screen {
	case screenJSON:
		max := len(m.treeNodes)
		if m.geoTab == geoFeatures {
			max = len(m.featRows)
		}
		if m.jsonScroll+1 < max {
			m.jsonScroll++
		}
	default:
		max := len(m.schema)
		if m.inspectorTab == tabPreview {
			max = len(m.previewRows)
		}
		if m.scroll+1 < max {
			m.scroll++
		}
	}
}

func (m *Model) nextPage() {
	if m.inspectorTab != tabPreview {
		return
	}
	totalPages := (m.rowCount + previewPageSize - 1) / previewPageSize
	if m.page+1 < totalPages {
		m.page++
		m.loadPreviewPage()
	}
}

func (m *Model) prevPage() {
	if m.inspectorTab != tabPreview {
		return
	}
	if m.page > 0 {
		m.page--
		m.loadPreviewPage()
	}
}

func (m *Model) errorPopup(err error) {
	m.popup = popupMessage
	m.popupTitle = "Error"
	m.popupBody = err.Error()
}

func (m *Model) successPopup(body string) {
	m.popup = popupMessage
	m.popupTitle = "Success"
	m.popupBody = body
}
