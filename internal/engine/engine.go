// Package engine inspects CSV and Parquet files through an embedded DuckDB
// database. Queries run against the file in place via DuckDB's reader
// functions, so nothing is imported or copied first.
package engine

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
)

// Column is one schema entry: the column name and its SQL type.
type Column struct {
	Name string
	Type string
}

// Inspector runs queries against a single CSV or Parquet file.
type Inspector struct {
	path string
	db   *sql.DB
}

// New validates path and opens an in-memory database for querying it.
// The caller must Close the returned Inspector.
func New(path string) (*Inspector, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, newError(KindFileNotFound, path)
	}
	if !info.Mode().IsRegular() {
		return nil, newError(KindInvalidFormat, path+" is not a file")
	}
	switch ext := fileExt(path); ext {
	case "csv", "parquet":
	case "":
		return nil, newError(KindInvalidFormat, "File has no extension")
	default:
		return nil, newError(KindInvalidFormat, "Expected .parquet or .csv file, got ."+ext)
	}
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, wrapError(KindConnection, "Failed to open in-memory database", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, wrapError(KindConnection, "Failed to open in-memory database", err)
	}
	return &Inspector{path: path, db: db}, nil
}

// Close releases the database.
func (in *Inspector) Close() error { return in.db.Close() }

// Path returns the inspected file path.
func (in *Inspector) Path() string { return in.path }

// Schema returns the column names and types DuckDB infers for the file.
func (in *Inspector) Schema() ([]Column, error) {
	rows, err := in.db.Query("DESCRIBE SELECT * FROM " + in.source())
	if err != nil {
		return nil, wrapError(KindQuery, "Failed to prepare schema query", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, wrapError(KindQuery, "Failed to execute schema query", err)
	}

	var schema []Column
	for rows.Next() {
		// DESCRIBE yields six columns; only name and type matter here.
		var name, typ sql.NullString
		dest := make([]any, len(cols))
		dest[0] = &name
		dest[1] = &typ
		for i := 2; i < len(dest); i++ {
			dest[i] = new(any)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, wrapError(KindQuery, "Failed to read schema row", err)
		}
		schema = append(schema, Column{Name: name.String, Type: typ.String})
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(KindQuery, "Failed to execute schema query", err)
	}
	if len(schema) == 0 {
		return nil, newError(KindInvalidFormat, "File has no columns")
	}
	return schema, nil
}

// RowCount returns the number of rows matching whereClause. An empty clause
// counts all rows.
func (in *Inspector) RowCount(whereClause string) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", in.source(), whereClause)
	var count int
	if err := in.db.QueryRow(query).Scan(&count); err != nil {
		return 0, wrapError(KindQuery, "Failed to count rows", err)
	}
	return count, nil
}

// NullCount returns the number of NULL values in column.
func (in *Inspector) NullCount(column string) (int, error) {
	safe, err := sanitizeIdentifier(column)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s IS NULL", in.source(), safe)
	var count int
	if err := in.db.QueryRow(query).Scan(&count); err != nil {
		return 0, wrapError(KindQuery, fmt.Sprintf("Failed to count nulls in column '%s'", column), err)
	}
	return count, nil
}

// MinValue returns the smallest value in column rendered as text, or the
// string "NULL" when the column is empty or all NULL.
func (in *Inspector) MinValue(column string) (string, error) {
	return in.aggregate(column, "MIN(%s)", "min")
}

// MaxValue returns the largest value in column rendered as text.
func (in *Inspector) MaxValue(column string) (string, error) {
	return in.aggregate(column, "MAX(%s)", "max")
}

// MeanValue returns the average of column rounded to two decimals.
func (in *Inspector) MeanValue(column string) (string, error) {
	return in.aggregate(column, "ROUND(AVG(%s), 2)", "mean")
}

func (in *Inspector) aggregate(column, expr, what string) (string, error) {
	safe, err := sanitizeIdentifier(column)
	if err != nil {
		return "", err
	}
	query := fmt.Sprintf("SELECT CAST(%s AS VARCHAR) FROM %s", fmt.Sprintf(expr, safe), in.source())
	var val sql.NullString
	if err := in.db.QueryRow(query).Scan(&val); err != nil {
		return "", wrapError(KindQuery, fmt.Sprintf("Failed to find %s value in column '%s'", what, column), err)
	}
	if !val.Valid {
		return "NULL", nil
	}
	return val.String, nil
}

// Preview returns up to limit rows starting at offset, with every value cast
// to text and NULLs replaced by the string "NULL". Headers come from the
// schema so they are present even when no rows match.
func (in *Inspector) Preview(limit, offset int, whereClause string) ([]string, [][]string, error) {
	schema, err := in.Schema()
	if err != nil {
		return nil, nil, err
	}
	headers := make([]string, len(schema))
	exprs := make([]string, len(schema))
	for i, col := range schema {
		name := strings.ReplaceAll(col.Name, `"`, `""`)
		headers[i] = col.Name
		exprs[i] = fmt.Sprintf(`COALESCE(CAST("%s" AS VARCHAR), 'NULL')`, name)
	}
	query := fmt.Sprintf("SELECT %s FROM %s %s LIMIT %d OFFSET %d",
		strings.Join(exprs, ", "), in.source(), whereClause, limit, offset)
	rows, err := in.db.Query(query)
	if err != nil {
		return nil, nil, wrapError(KindQuery, "Failed to prepare preview query", err)
	}
	defer rows.Close()

	var data [][]string
	for rows.Next() {
		values := make([]string, len(headers))
		dest := make([]any, len(headers))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, wrapError(KindQuery, "Failed to read preview row", err)
		}
		data = append(data, values)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, wrapError(KindQuery, "Failed to execute preview query", err)
	}
	return headers, data, nil
}

// Convert writes the file in target format ("csv" or "parquet") next to the
// source and returns the new path. Converting to the current format is a
// no-op that returns the source path.
func (in *Inspector) Convert(target string) (string, error) {
	if target != "csv" && target != "parquet" {
		return "", newError(KindInvalidFormat, "Target format not supported")
	}
	if fileExt(in.path) == target {
		return in.path, nil
	}
	targetPath := strings.TrimSuffix(in.path, filepath.Ext(in.path)) + "." + target
	format := "PARQUET"
	if target == "csv" {
		format = "CSV"
	}
	query := fmt.Sprintf("COPY (SELECT * FROM '%s') TO '%s' (FORMAT %s)",
		escapeLiteral(in.path), escapeLiteral(targetPath), format)
	if _, err := in.db.Exec(query); err != nil {
		return "", wrapError(KindQuery, "Failed to convert file", err)
	}
	return targetPath, nil
}

// source returns the DuckDB reader call for the file, path escaped.
func (in *Inspector) source() string {
	fn := "read_parquet"
	if fileExt(in.path) == "csv" {
		fn = "read_csv_auto"
	}
	return fmt.Sprintf("%s('%s')", fn, escapeLiteral(in.path))
}

// fileExt returns the extension without the leading dot.
func fileExt(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return ext[1:]
}
