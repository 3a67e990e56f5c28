package ui

import (
	"path/filepath"
	"strings"

	"dataspect/internal/export"
	"dataspect/internal/jsondoc"
	"dataspect/internal/util/logx"
)

// loadJSONDocument parses path and builds the tree with everything
// expanded. GeoJSON documents additionally get their summary and
// property table and start on the Summary tab.
func (m *Model) loadJSONDocument(path string) error {
	doc, err := jsondoc.Load(path)
	if err != nil {
		return err
	}
	m.doc = doc
	m.rawText = doc.Pretty()
	m.collapsed = map[string]struct{}{}
	m.treeNodes = jsondoc.BuildTree(doc.Root, m.collapsed)

	if doc.Kind == jsondoc.KindGeoJSON {
		s := jsondoc.Summarize(doc.Root)
		m.geoSummary = &s
		m.featHeaders, m.featRows = jsondoc.FeaturesTable(doc.Root)
		m.geoTab = geoSummary
	} else {
		m.jsonTab = tabTree
		m.geoSummary = nil
		m.featHeaders = nil
		m.featRows = nil
	}
	m.jsonScroll = 0
	logx.Infof("json: loaded %s as %s (%d tree nodes)", filepath.Base(path), doc.Kind, len(m.treeNodes))
	return nil
}

// toggleTreeNode flips the collapse state of the container under the
// cursor and rebuilds the flattened view. Scalars are left alone.
func (m *Model) toggleTreeNode() {
	if m.doc == nil || m.jsonScroll >= len(m.treeNodes) {
		return
	}
	node := m.treeNodes[m.jsonScroll]
	if node.Kind != jsondoc.NodeObject && node.Kind != jsondoc.NodeArray {
		return
	}
	if _, ok := m.collapsed[node.Path]; ok {
		delete(m.collapsed, node.Path)
	} else {
		m.collapsed[node.Path] = struct{}{}
	}
	m.treeNodes = jsondoc.BuildTree(m.doc.Root, m.collapsed)
}

func (m *Model) switchGeoTab() {
	m.jsonScroll = 0
	switch m.geoTab {
	case geoSummary:
		m.geoTab = geoFeatures
	case geoFeatures:
		m.geoTab = geoTree
	default:
		m.geoTab = geoSummary
	}
}

// exportFeatures writes the property table to <stem>_features.csv beside
// the source document.
func (m *Model) exportFeatures() {
	if m.doc == nil {
		return
	}
	base := strings.TrimSuffix(m.doc.Path, filepath.Ext(m.doc.Path))
	path := base + "_features.csv"
	if err := export.ToCSV(path, m.featHeaders, m.featRows); err != nil {
		m.errorPopup(err)
		return
	}
	logx.Infof("json: exported %d features to %s", len(m.featRows), path)
	m.successPopup("Exported features to " + path)
}
