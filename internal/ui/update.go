package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"dataspect/internal/jsondoc"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth, m.termHeight = msg.Width, msg.Height
		return m, nil
	case dirChangedMsg:
		m.refreshDirEntries()
		return m, m.watchCmd()
	case spinner.TickMsg:
		if !m.tilesRunning || m.popup != popupMessage {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tilesDoneMsg:
		m.tilesRunning = false
		if msg.err != nil {
			m.errorPopup(msg.err)
		} else {
			m.successPopup("Created " + msg.output)
		}
		return m, nil
	case tea.KeyMsg:
		return m.apply(m.mapKey(msg))
	}
	return m, nil
}

// mapKey translates a key press into a message using the current state.
// An active popup captures the key before any screen handling.
func (m *Model) mapKey(msg tea.KeyMsg) message {
	switch m.popup {
	case popupConvert:
		switch msg.Type {
		case tea.KeyEnter:
			return message{kind: msgConfirmConvert}
		case tea.KeyEsc:
			return message{kind: msgClosePopup}
		}
		return message{}
	case popupMessage:
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc {
			return message{kind: msgClosePopup}
		}
		return message{}
	case popupFilter:
		return m.mapFilterKey(msg)
	case popupTiles:
		return m.mapTilesKey(msg)
	}

	if keyMatches(msg, m.keymap.Quit) || msg.Type == tea.KeyCtrlC {
		return message{kind: msgQuit}
	}

	switch m.screen {
	case screenHome:
		switch {
		case keyMatches(msg, m.keymap.Up) || keyMatches(msg, m.keymap.VimUp):
			return message{kind: msgNavigateUp}
		case keyMatches(msg, m.keymap.Down) || keyMatches(msg, m.keymap.VimDown):
			return message{kind: msgNavigateDown}
		case keyMatches(msg, m.keymap.Enter):
			return message{kind: msgEnter}
		}
	case screenBrowser:
		switch {
		case keyMatches(msg, m.keymap.Up) || keyMatches(msg, m.keymap.VimUp):
			return message{kind: msgNavigateUp}
		case keyMatches(msg, m.keymap.Down) || keyMatches(msg, m.keymap.VimDown):
			return message{kind: msgNavigateDown}
		case keyMatches(msg, m.keymap.Enter):
			return message{kind: msgEnter}
		case keyMatches(msg, m.keymap.Back):
			return message{kind: msgBack}
		}
	case screenInspector:
		switch {
		case keyMatches(msg, m.keymap.SwitchTab):
			return message{kind: msgSwitchTab}
		case keyMatches(msg, m.keymap.Up) || keyMatches(msg, m.keymap.VimUp):
			return message{kind: msgScrollUp}
		case keyMatches(msg, m.keymap.Down) || keyMatches(msg, m.keymap.VimDown):
			return message{kind: msgScrollDown}
		case keyMatches(msg, m.keymap.Convert):
			return message{kind: msgConvertFile}
		case keyMatches(msg, m.keymap.Filter):
			return message{kind: msgOpenFilter}
		case keyMatches(msg, m.keymap.Back):
			return message{kind: msgBack}
		case keyMatches(msg, m.keymap.NextPage):
			return message{kind: msgNextPage}
		case keyMatches(msg, m.keymap.PrevPage):
			return message{kind: msgPrevPage}
		}
	case screenJSON:
		isGeo := m.doc != nil && m.doc.Kind == jsondoc.KindGeoJSON
		switch {
		case keyMatches(msg, m.keymap.SwitchTab):
			if isGeo {
				return message{kind: msgSwitchGeoTab}
			}
			return message{kind: msgSwitchTab}
		case keyMatches(msg, m.keymap.Up) || keyMatches(msg, m.keymap.VimUp):
			return message{kind: msgScrollUp}
		case keyMatches(msg, m.keymap.Down) || keyMatches(msg, m.keymap.VimDown):
			return message{kind: msgScrollDown}
		case keyMatches(msg, m.keymap.Enter):
			return message{kind: msgToggleTreeNode}
		case keyMatches(msg, m.keymap.Back):
			return message{kind: msgBack}
		case isGeo && keyMatches(msg, m.keymap.Tiles):
			return message{kind: msgOpenTiles}
		case isGeo && m.geoTab == geoFeatures && keyMatches(msg, m.keymap.Export):
			return message{kind: msgExportFeatures}
		}
	}
	return message{}
}

func (m *Model) mapFilterKey(msg tea.KeyMsg) message {
	switch msg.Type {
	case tea.KeyEsc:
		return message{kind: msgClosePopup}
	case tea.KeyTab:
		return message{kind: msgFilterTabNext}
	case tea.KeyUp:
		return message{kind: msgFilterNavUp}
	case tea.KeyDown:
		return message{kind: msgFilterNavDown}
	case tea.KeyBackspace:
		return message{kind: msgFilterBackspace}
	case tea.KeyEnter:
		if m.filter.active == fieldValue {
			if m.filter.value == "" {
				return message{kind: msgFilterApply}
			}
			return message{kind: msgFilterAdd}
		}
		return message{kind: msgFilterTabNext}
	}
	if m.filter.active != fieldValue && keyMatches(msg, m.keymap.RemoveFilter) {
		return message{kind: msgFilterRemoveLast}
	}
	if m.filter.active == fieldValue {
		if text := typedText(msg); text != "" {
			return message{kind: msgFilterChar, text: text}
		}
	}
	return message{}
}

func (m *Model) mapTilesKey(msg tea.KeyMsg) message {
	switch msg.Type {
	case tea.KeyEsc:
		return message{kind: msgClosePopup}
	case tea.KeyUp:
		return message{kind: msgTilesNavUp}
	case tea.KeyDown:
		return message{kind: msgTilesNavDown}
	case tea.KeyLeft:
		return message{kind: msgTilesAdjustLeft}
	case tea.KeyRight:
		return message{kind: msgTilesAdjustRight}
	case tea.KeyEnter:
		return message{kind: msgTilesRun}
	}
	return message{}
}

// typedText extracts the printable text of a key press, if any.
func typedText(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyRunes:
		return string(msg.Runes)
	case tea.KeySpace:
		return " "
	}
	return ""
}
