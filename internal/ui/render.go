package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dataspect/internal/engine"
	"dataspect/internal/tiles"
)

func (m *Model) View() string {
	var v string
	switch m.screen {
	case screenHome:
		v = m.viewHome()
	case screenBrowser:
		v = m.viewBrowser()
	case screenInspector:
		v = m.viewInspector()
	default:
		v = m.viewJSON()
	}
	if m.popup != popupNone {
		// Dim the background content while keeping it visible
		dimmed := lipgloss.NewStyle().Faint(true).Render(v)
		v = overlay(dimmed, m.renderPopup())
	}
	return v
}

func (m *Model) renderPopup() string {
	var box string
	switch m.popup {
	case popupConvert:
		box = m.renderConvertPopup()
	case popupFilter:
		box = m.renderFilterPopup()
	case popupTiles:
		box = m.renderTilesPopup()
	default:
		box = m.renderMessagePopup()
	}
	// Center the box; blank rows around it stay transparent so the dimmed
	// screen shows through.
	return lipgloss.Place(m.termWidth, m.termHeight, lipgloss.Center, lipgloss.Center, box)
}

// overlay draws over on top of base line by line. Whitespace-only overlay
// lines are treated as transparent.
func overlay(base, over string) string {
	baseLines := strings.Split(base, "\n")
	overLines := strings.Split(over, "\n")
	n := maxInt(len(baseLines), len(overLines))
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		var b, o string
		if i < len(baseLines) {
			b = baseLines[i]
		}
		if i < len(overLines) {
			o = overLines[i]
		}
		if strings.TrimSpace(o) == "" {
			out = append(out, b)
		} else {
			out = append(out, o)
		}
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderConvertPopup() string {
	content := "  Convert to " + m.convertTarget + "?"
	hint := " " + m.styles.HintKey.Render("Enter") + " confirm   " + m.styles.HintKey.Render("Esc") + " cancel"
	return m.styles.PopupWarnBox.Copy().Width(40).Render(
		m.styles.PopupWarnTitle.Render(" Convert ") + "\n\n" + content + "\n\n" + hint)
}

func (m *Model) renderMessagePopup() string {
	boxStyle, titleStyle := m.styles.messageBox(m.popupTitle)
	w := maxInt(30, lipgloss.Width(m.popupBody)+6)
	w = minInt(w, maxInt(30, m.termWidth-6))
	body := "  " + m.popupBody
	if m.tilesRunning {
		body = "  " + m.spin.View() + " " + m.popupBody
	}
	hint := " " + m.styles.HintKey.Render("Enter/Esc") + " close"
	return boxStyle.Copy().Width(w).Render(
		titleStyle.Render(" "+m.popupTitle+" ") + "\n\n" + body + "\n\n" + hint)
}

func (m *Model) renderFilterPopup() string {
	w := minInt(72, maxInt(40, m.termWidth-6))

	var b strings.Builder
	b.WriteString(m.styles.Muted.Render(" Active filters:") + "\n")
	if len(m.filter.conditions) == 0 {
		b.WriteString(m.styles.Faint.Render("  (no filters — Tab to select fields, Enter to add)") + "\n")
	} else {
		for i, c := range m.filter.conditions {
			if engine.IsUnary(c.Operator) {
				b.WriteString(sprintf("  %d. %q %s", i+1, c.Column, c.Operator) + "\n")
			} else {
				b.WriteString(sprintf("  %d. %q %s '%s'", i+1, c.Column, c.Operator, c.Value) + "\n")
			}
		}
	}
	b.WriteString(m.styles.Faint.Render(strings.Repeat("─", maxInt(10, w-8))) + "\n\n")

	colName := "-"
	if m.filter.columnIdx < len(m.schema) {
		colName = m.schema[m.filter.columnIdx].Name
	}
	field := func(label, value, hint string, active bool) string {
		st := m.styles.Muted
		if active {
			st = m.styles.Selected
		}
		return "  " + st.Render(sprintf("%s[ %-20s ]", label, value)) + m.styles.Faint.Render(hint)
	}
	b.WriteString(field("Column:   ", colName, "  ↑↓ to change", m.filter.active == fieldColumn) + "\n")
	b.WriteString(field("Operator: ", engine.Operators[m.filter.operatorIdx], "  ↑↓ to change", m.filter.active == fieldOperator) + "\n")
	b.WriteString(field("Value:    ", m.filter.value+"_", "  type to input", m.filter.active == fieldValue) + "\n\n")

	b.WriteString(" " + m.styles.HintKey.Render("Tab") + ":next  " +
		m.styles.HintKey.Render("Enter") + ":add/apply  " +
		m.styles.HintKey.Render("d") + ":remove last  " +
		m.styles.HintKey.Render("Esc") + ":cancel")

	return m.styles.PopupBox.Copy().Width(w).Render(
		m.styles.PopupTitle.Render(" Filters ") + "\n\n" + b.String())
}

func (m *Model) renderTilesPopup() string {
	check := func(on bool) string {
		if on {
			return "x"
		}
		return " "
	}
	rows := []string{
		sprintf("  Preset            < %s >", tiles.Presets[m.tiles.preset].Label()),
		sprintf("  Min Zoom          < %2d >", m.tiles.cfg.MinZoom),
		sprintf("  Max Zoom          < %2d >", m.tiles.cfg.MaxZoom),
		sprintf("  No Feature Limit  [%s]", check(m.tiles.cfg.NoFeatureLimit)),
		sprintf("  No Tile Size Limit[%s]", check(m.tiles.cfg.NoTileSizeLimit)),
		sprintf("  Drop Densest      [%s]", check(m.tiles.cfg.DropDensestAsNeeded)),
	}
	var b strings.Builder
	for i, r := range rows {
		if i == m.tiles.row {
			b.WriteString(m.styles.Selected.Render(r))
		} else {
			b.WriteString(r)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n " + m.styles.HintKey.Render("Enter") + " convert   " +
		m.styles.HintKey.Render("Esc") + " cancel   " +
		m.styles.HintKey.Render("←→") + " adjust")

	return m.styles.PopupWarnBox.Copy().Width(minInt(56, maxInt(40, m.termWidth-6))).Render(
		m.styles.PopupWarnTitle.Render(" Convert to PMTiles: "+baseName(m.tiles.source)+" ") + "\n\n" + b.String())
}
