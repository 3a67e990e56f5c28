// Package browse produces directory listings for the file browser screen.
package browse

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Entry is one row in the file browser.
type Entry struct {
	Name     string
	Path     string
	IsDir    bool
	Size     int64
	Modified time.Time // zero when unknown
}

// List returns the entries of dir: a ".." entry first when dir has a parent,
// then directories, then files, each group sorted case-insensitively by name.
func List(dir string) ([]Entry, error) {
	var entries []Entry
	if parent := filepath.Dir(dir); parent != dir {
		entries = append(entries, Entry{Name: "..", Path: parent, IsDir: true})
	}

	listing, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make([]Entry, 0, len(listing))
	for _, ent := range listing {
		info, err := ent.Info()
		if err != nil {
			return nil, err
		}
		files = append(files, Entry{
			Name:     ent.Name(),
			Path:     filepath.Join(dir, ent.Name()),
			IsDir:    info.IsDir(),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].IsDir != files[j].IsDir {
			return files[i].IsDir
		}
		return strings.ToLower(files[i].Name) < strings.ToLower(files[j].Name)
	})
	return append(entries, files...), nil
}

// IsDataFile reports whether name has an extension the data inspector opens.
func IsDataFile(name string) bool {
	switch Extension(name) {
	case "csv", "parquet":
		return true
	}
	return false
}

// IsJSONFile reports whether name has an extension the JSON inspector opens.
func IsJSONFile(name string) bool {
	switch Extension(name) {
	case "json", "geojson":
		return true
	}
	return false
}

// Extension returns the file extension without the leading dot.
func Extension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return ext[1:]
}
