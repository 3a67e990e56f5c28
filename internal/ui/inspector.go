package ui

import (
	"path/filepath"

	"dataspect/internal/browse"
	"dataspect/internal/engine"
	"dataspect/internal/util/logx"
)

// loadInspector opens path and gathers everything the inspector screens
// show: schema, row count, per-column stats and the first preview page.
// The model is only updated once every fallible query has succeeded, so a
// failure leaves the previous file loaded.
func (m *Model) loadInspector(path string) error {
	eng, err := m.openEngine(path)
	if err != nil {
		return err
	}

	schema, err := eng.Schema()
	if err != nil {
		eng.Close()
		return err
	}
	count, err := eng.RowCount("")
	if err != nil {
		eng.Close()
		return err
	}

	// Per-column stats degrade instead of failing: unreadable null counts
	// show 0, aggregates on non-numeric columns show "-".
	nulls := make([]int, 0, len(schema))
	means := make([]string, 0, len(schema))
	mins := make([]string, 0, len(schema))
	maxs := make([]string, 0, len(schema))
	for _, col := range schema {
		n, err := eng.NullCount(col.Name)
		if err != nil {
			n = 0
		}
		nulls = append(nulls, n)

		mean, err := eng.MeanValue(col.Name)
		if err != nil {
			mean = "-"
		}
		means = append(means, mean)
		min, err := eng.MinValue(col.Name)
		if err != nil {
			min = "-"
		}
		mins = append(mins, min)
		max, err := eng.MaxValue(col.Name)
		if err != nil {
			max = "-"
		}
		maxs = append(maxs, max)
	}

	headers, rows, err := eng.Preview(previewPageSize, 0, "")
	if err != nil {
		eng.Close()
		return err
	}

	if m.eng != nil {
		m.eng.Close()
	}
	m.eng = eng
	m.schema = schema
	m.rowCount = count
	m.nullCounts = nulls
	m.meanValues = means
	m.minValues = mins
	m.maxValues = maxs
	m.previewHeaders = headers
	m.previewRows = rows
	m.scroll = 0
	m.page = 0
	m.filters = nil
	m.inspectorTab = tabSchema
	logx.Infof("inspector: loaded %s (%d columns, %d rows)", filepath.Base(path), len(schema), count)
	return nil
}

// loadPreviewPage fetches the current page with the applied filters.
func (m *Model) loadPreviewPage() {
	if m.eng == nil {
		return
	}
	where := engine.BuildWhereClause(m.filters)
	headers, rows, err := m.eng.Preview(previewPageSize, m.page*previewPageSize, where)
	if err != nil {
		m.errorPopup(err)
		return
	}
	m.previewHeaders = headers
	m.previewRows = rows
	m.scroll = 0
}

// reloadPreview re-counts and refetches page zero after a filter change.
// Count and rows commit together: a failure in either leaves the previous
// pair visible behind the error popup.
func (m *Model) reloadPreview() {
	if m.eng == nil {
		return
	}
	where := engine.BuildWhereClause(m.filters)
	count, err := m.eng.RowCount(where)
	if err != nil {
		m.errorPopup(err)
		return
	}
	headers, rows, err := m.eng.Preview(previewPageSize, 0, where)
	if err != nil {
		m.errorPopup(err)
		return
	}
	m.rowCount = count
	m.previewHeaders = headers
	m.previewRows = rows
	m.scroll = 0
}

// convertFile opens the confirmation popup for the opposite format.
func (m *Model) convertFile() {
	if m.eng == nil {
		return
	}
	target := "csv"
	if browse.Extension(m.eng.Path()) == "csv" {
		target = "parquet"
	}
	m.convertTarget = target
	m.popup = popupConvert
}

func (m *Model) confirmConvert() {
	if m.eng == nil {
		m.popup = popupNone
		return
	}
	path, err := m.eng.Convert(m.convertTarget)
	if err != nil {
		m.errorPopup(err)
		return
	}
	logx.Infof("inspector: converted %s to %s", filepath.Base(m.eng.Path()), path)
	m.successPopup("Converted to " + path)
}
