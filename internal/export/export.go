// Package export writes tabular views to CSV files.
package export

import (
	"encoding/csv"
	"errors"
	"os"
)

// ToCSV writes headers and rows to path as CSV, overwriting any existing
// file. An empty header set means there is nothing worth writing.
func ToCSV(path string, headers []string, rows [][]string) error {
	if len(headers) == 0 {
		return errors.New("nothing to export")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
