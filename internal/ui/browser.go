package ui

import (
	"dataspect/internal/browse"
	"dataspect/internal/util/logx"
)

// loadDirEntries lists dir and makes it the current directory. State is
// only touched when the listing succeeds, so a failed navigation leaves
// the browser where it was.
func (m *Model) loadDirEntries(dir string) error {
	entries, err := browse.List(dir)
	if err != nil {
		return err
	}
	m.currentDir = dir
	m.dirEntries = entries
	m.browserSelected = 0
	m.rewatch(dir)
	return nil
}

// refreshDirEntries reloads the current listing after a watcher event,
// keeping the selection in range. Failures keep the old entries; the
// watcher is a convenience, not a requirement.
func (m *Model) refreshDirEntries() {
	if m.currentDir == "" {
		return
	}
	entries, err := browse.List(m.currentDir)
	if err != nil {
		logx.Warnf("browser: refresh %s: %v", m.currentDir, err)
		return
	}
	m.dirEntries = entries
	if m.browserSelected >= len(entries) {
		m.browserSelected = maxInt(0, len(entries)-1)
	}
}

func (m *Model) rewatch(dir string) {
	if m.watcher == nil {
		return
	}
	if m.watchedDir != "" {
		_ = m.watcher.Remove(m.watchedDir)
		m.watchedDir = ""
	}
	if err := m.watcher.Add(dir); err != nil {
		logx.Warnf("browser: watch %s: %v", dir, err)
		return
	}
	m.watchedDir = dir
}
