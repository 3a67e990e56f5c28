package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dataspect/internal/browse"
	"dataspect/internal/jsondoc"
)

// contentHeight is the rows available above the status bar.
func (m *Model) contentHeight() int {
	return maxInt(1, m.termHeight-1)
}

// fillHeight pads or trims body to exactly h lines so the status bar
// always sits on the bottom row.
func fillHeight(body string, h int) string {
	lines := strings.Split(body, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) frame(body string, hints [][2]string) string {
	return lipgloss.JoinVertical(lipgloss.Left, fillHeight(body, m.contentHeight()), m.statusBar(hints))
}

func (m *Model) statusBar(hints [][2]string) string {
	var b strings.Builder
	for _, h := range hints {
		b.WriteString(m.styles.StatusKey.Render(" " + h[0] + " "))
		b.WriteString(m.styles.StatusText.Render(" " + h[1] + " "))
	}
	bar := b.String()
	if pad := m.termWidth - lipgloss.Width(bar); pad > 0 {
		bar += m.styles.StatusText.Render(strings.Repeat(" ", pad))
	}
	return bar
}

func (m *Model) viewHome() string {
	h := m.contentHeight()
	var lines []string
	for i := 0; i < maxInt(0, (h-6)/2); i++ {
		lines = append(lines, "")
	}
	center := func(s string) string {
		return lipgloss.PlaceHorizontal(m.termWidth, lipgloss.Center, s)
	}
	lines = append(lines,
		center(lipgloss.NewStyle().Bold(true).Render("dataspect - Data Toolbox")),
		"",
		center(m.styles.Muted.Render("Select an action:")),
		"")
	const itemWidth = 24
	for i, item := range homeItems {
		row := padCell("  "+item, itemWidth)
		if i == m.homeSelected {
			row = m.styles.Selected.Render(padCell("> "+item, itemWidth))
		}
		lines = append(lines, center(row))
	}
	return m.frame(strings.Join(lines, "\n"), [][2]string{
		{"↑↓", "navigate"}, {"Enter", "select"}, {"q", "quit"},
	})
}

func (m *Model) viewBrowser() string {
	h := m.contentHeight()
	rowsH := maxInt(1, h-2)
	leftW := m.termWidth * 7 / 10
	rightW := maxInt(0, m.termWidth-leftW-1)
	nameW := maxInt(8, leftW-26)

	left := make([]string, 0, rowsH+1)
	header := "  " + padCell("Name", nameW) + "  " + padCell("Size", 10) + "  " + padCell("Modified", 10)
	left = append(left, m.styles.Header.Render(padCell(header, leftW)))

	off := 0
	if m.browserSelected >= rowsH {
		off = m.browserSelected - rowsH + 1
	}
	for i := off; i < len(m.dirEntries) && len(left) < rowsH+1; i++ {
		e := m.dirEntries[i]
		name := e.Name
		if e.IsDir && name != ".." {
			name += "/"
		}
		size := "<DIR>"
		if !e.IsDir {
			size = humanSize(e.Size)
		}
		row := padCell(name, nameW) + "  " + padCell(size, 10) + "  " + padCell(timeAgo(e.Modified), 10)
		var line string
		if i == m.browserSelected {
			line = m.styles.Selected.Render(padCell("> "+row, leftW))
		} else {
			st := lipgloss.NewStyle()
			switch {
			case e.IsDir:
				st = m.styles.Dir
			case browse.IsDataFile(e.Name):
				st = m.styles.DataFile
			}
			line = st.Render(padCell("  "+row, leftW))
		}
		left = append(left, line)
	}
	for len(left) < rowsH+1 {
		left = append(left, strings.Repeat(" ", leftW))
	}

	right := m.browserPreview(rightW)
	sep := m.styles.Faint.Render("│")
	merged := make([]string, len(left))
	for i := range left {
		r := ""
		if i < len(right) {
			r = right[i]
		}
		merged[i] = left[i] + sep + r
	}

	body := m.styles.Title.Render(" File Browser: "+m.currentDir+" ") + "\n" + strings.Join(merged, "\n")
	return m.frame(body, [][2]string{
		{"↑↓", "navigate"}, {"Enter", "open"}, {"Esc", "back"}, {"q", "quit"},
	})
}

// browserPreview describes the selected entry in the side panel.
func (m *Model) browserPreview(w int) []string {
	lines := []string{m.styles.Muted.Render(" Preview "), ""}
	if m.browserSelected >= len(m.dirEntries) {
		return append(lines, " "+m.styles.Muted.Render("No file selected"))
	}
	e := m.dirEntries[m.browserSelected]
	label := func(k, v string) string { return " " + m.styles.Muted.Render(k) + v }
	switch {
	case e.Name == "..":
		lines = append(lines, " "+m.styles.Muted.Render("Parent directory"))
	case e.IsDir:
		lines = append(lines,
			label("Type: ", "Directory"),
			"",
			" "+m.styles.Faint.Render(padCell(e.Path, maxInt(0, w-1))))
	default:
		ext := browse.Extension(e.Name)
		if ext == "" {
			ext = "unknown"
		}
		lines = append(lines,
			label("Name: ", padCell(e.Name, maxInt(0, w-7))),
			label("Size: ", humanSize(e.Size)),
			label("Type: ", strings.ToUpper(ext)))
		if browse.IsDataFile(e.Name) || browse.IsJSONFile(e.Name) {
			lines = append(lines, "", " "+m.styles.DataFile.Render("Press Enter to inspect"))
		}
	}
	return lines
}

func (m *Model) tabBar(labels []string, active int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			parts[i] = m.styles.TabActive.Render(l)
		} else {
			parts[i] = m.styles.TabInactive.Render(l)
		}
	}
	return " " + strings.Join(parts, m.styles.TabInactive.Render(" | "))
}

func (m *Model) viewInspector() string {
	h := m.contentHeight()
	title := " Inspector "
	if m.eng != nil {
		title = sprintf(" Inspector: %s (%d rows) ", baseName(m.eng.Path()), m.rowCount)
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(title) + "\n")
	b.WriteString(m.tabBar([]string{"Schema", "Preview"}, int(m.inspectorTab)) + "\n\n")

	tableH := h - 3
	if m.inspectorTab == tabPreview {
		tableH--
	}
	tableH = maxInt(1, tableH)

	if m.inspectorTab == tabSchema {
		b.WriteString(m.schemaTable(tableH))
	} else {
		b.WriteString(m.previewTable(tableH))
	}

	if m.inspectorTab == tabPreview {
		b.WriteString("\n" + m.previewInfoLine())
	}

	hints := [][2]string{{"Tab", "Switch"}, {"↑↓", "Scroll"}}
	if m.inspectorTab == tabPreview {
		hints = append(hints, [2]string{"←", "Previous page"}, [2]string{"→", "Next page"}, [2]string{"f", "filter"})
	}
	hints = append(hints, [2]string{"c", "Convert"}, [2]string{"Esc", "Back"}, [2]string{"q", "Quit"})
	return m.frame(b.String(), hints)
}

// statAt guards the per-column stat slices, which can be shorter than the
// schema when a load degraded.
func statAt(vals []string, i int) string {
	if i < len(vals) {
		return vals[i]
	}
	return "-"
}

func (m *Model) schemaTable(height int) string {
	nameW := maxInt(15, m.termWidth-2-53-10)
	widths := []int{nameW, 12, 7, 12, 12, 10}
	headers := []string{"Column Name", "Type", "Nulls", "Min", "Max", "Avg"}

	row := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = padCell(c, widths[i])
		}
		return "  " + strings.Join(parts, "  ")
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(row(headers)) + "\n")
	for i := m.scroll; i < len(m.schema) && i-m.scroll < height-1; i++ {
		col := m.schema[i]
		nulls := "-"
		if i < len(m.nullCounts) {
			nulls = sprintf("%d", m.nullCounts[i])
		}
		b.WriteString(row([]string{col.Name, col.Type, nulls, statAt(m.minValues, i), statAt(m.maxValues, i), statAt(m.meanValues, i)}) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) previewTable(height int) string {
	return m.dataTable(m.previewHeaders, m.previewRows, m.scroll, height, 10, "No preview data available")
}

// dataTable renders headers and rows with evenly distributed columns.
func (m *Model) dataTable(headers []string, rows [][]string, scroll, height, minColW int, empty string) string {
	if len(headers) == 0 {
		return " " + m.styles.Muted.Render(empty)
	}
	n := len(headers)
	colW := maxInt(minColW, (m.termWidth-2-(n-1)*2)/n)
	render := func(cells []string) string {
		parts := make([]string, n)
		for i := 0; i < n; i++ {
			c := ""
			if i < len(cells) {
				c = cells[i]
			}
			parts[i] = padCell(c, colW)
		}
		return "  " + strings.Join(parts, "  ")
	}
	var b strings.Builder
	b.WriteString(m.styles.Header.Render(render(headers)) + "\n")
	for i := scroll; i < len(rows) && i-scroll < height-1; i++ {
		b.WriteString(render(rows[i]) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) previewInfoLine() string {
	from := m.page*previewPageSize + 1
	to := minInt((m.page+1)*previewPageSize, m.rowCount)
	totalPages := (m.rowCount + previewPageSize - 1) / previewPageSize

	third := m.termWidth / 3
	left := m.styles.Faint.Render(padCell(sprintf(" showing %d to %d of %d ", from, to, m.rowCount), third))
	center := padCell("", m.termWidth-2*third)
	if n := len(m.filters); n > 0 {
		label := "filter"
		if n != 1 {
			label = sprintf("%d filters", n)
		}
		center = m.styles.Selected.Render(centerCell(sprintf(" %s active ", label), m.termWidth-2*third))
	}
	right := m.styles.Faint.Render(padLeftCell(sprintf(" page %d of %d ", m.page+1, totalPages), third))
	return left + center + right
}

func (m *Model) viewJSON() string {
	h := m.contentHeight()
	name := ""
	if m.doc != nil {
		name = baseName(m.doc.Path)
	}
	isGeo := m.doc != nil && m.doc.Kind == jsondoc.KindGeoJSON

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(" "+name+" ") + "\n")
	bodyH := maxInt(1, h-3)

	var hints [][2]string
	if isGeo {
		b.WriteString(m.tabBar([]string{"Summary", "Features", "Tree"}, int(m.geoTab)) + "\n\n")
		switch m.geoTab {
		case geoSummary:
			b.WriteString(m.geoSummaryView())
		case geoFeatures:
			b.WriteString(m.dataTable(m.featHeaders, m.featRows, m.jsonScroll, bodyH, 12, "No features or no properties"))
		default:
			b.WriteString(strings.Join(m.treeLines(bodyH), "\n"))
		}
		hints = [][2]string{{"Tab", "next tab"}, {"↑↓", "scroll"}, {"Enter", "expand/collapse"}, {"p", "pmtiles"}}
		if m.geoTab == geoFeatures {
			hints = append(hints, [2]string{"e", "export csv"})
		}
		hints = append(hints, [2]string{"Esc", "back"}, [2]string{"q", "quit"})
	} else {
		b.WriteString(m.tabBar([]string{"Tree", "Raw"}, int(m.jsonTab)) + "\n\n")
		if m.jsonTab == tabTree {
			b.WriteString(strings.Join(m.treeLines(bodyH), "\n"))
		} else {
			b.WriteString(m.rawLines(bodyH))
		}
		hints = [][2]string{{"Tab", "switch"}, {"↑↓", "scroll"}, {"Enter", "expand/collapse"}, {"Esc", "back"}, {"q", "quit"}}
	}
	return m.frame(b.String(), hints)
}

func (m *Model) treeStyle(st lipgloss.Style, selected bool) lipgloss.Style {
	if selected {
		return st.Copy().Background(m.styles.TreeCursorBG)
	}
	return st
}

// treeLines renders the flattened tree from the scroll offset; the row
// under the cursor is marked with a background.
func (m *Model) treeLines(height int) []string {
	var out []string
	for i := m.jsonScroll; i < len(m.treeNodes) && len(out) < height; i++ {
		n := m.treeNodes[i]
		sel := i == m.jsonScroll
		indent := strings.Repeat("  ", n.Depth)
		if sel && indent != "" {
			indent = lipgloss.NewStyle().Background(m.styles.TreeCursorBG).Render(indent)
		}
		keyPart := ""
		if n.HasKey {
			keyPart = n.Key + ": "
		}
		var line string
		switch n.Kind {
		case jsondoc.NodeObject, jsondoc.NodeArray:
			arrow := "▼"
			if n.Collapsed {
				arrow = "▶"
			}
			count := sprintf("{%d}", n.ChildCount)
			if n.Kind == jsondoc.NodeArray {
				count = sprintf("[%d]", n.ChildCount)
			}
			line = indent +
				m.treeStyle(m.styles.TreeArrow, sel).Render(arrow) +
				m.treeStyle(m.styles.TreeKey, sel).Render(" "+keyPart) +
				m.treeStyle(m.styles.TreeCount, sel).Render(count)
		default:
			line = indent +
				m.treeStyle(m.styles.TreeScalarKey, sel).Render("  "+keyPart) +
				m.treeStyle(m.styles.Scalar[n.Scalar], sel).Render(n.Value)
		}
		out = append(out, line)
	}
	return out
}

func (m *Model) rawLines(height int) string {
	lines := strings.Split(m.rawText, "\n")
	var b strings.Builder
	for i := m.jsonScroll; i < len(lines) && i-m.jsonScroll < height; i++ {
		b.WriteString(m.styles.Muted.Render(lines[i]) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) geoSummaryView() string {
	s := m.geoSummary
	if s == nil {
		return " No GeoJSON summary available"
	}
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.styles.Header.Render("  Features:  ") + sprintf("%d", s.FeatureCount) + "\n")
	b.WriteString(m.styles.Header.Render("  Geometry:  ") + strings.Join(s.GeometryTypes, ", ") + "\n")
	if s.BBox != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Header.Render("  Bounding Box:") + "\n")
		b.WriteString(sprintf("    Min lon/lat: %.6f, %.6f", s.BBox.MinLon, s.BBox.MinLat) + "\n")
		b.WriteString(sprintf("    Max lon/lat: %.6f, %.6f", s.BBox.MaxLon, s.BBox.MaxLat) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
