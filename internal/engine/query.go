package engine

import (
	"fmt"
	"strings"
	"unicode"
)

// Operators lists the filter operators in the order the filter editor
// cycles through them.
var Operators = []string{"=", "!=", ">", "<", ">=", "<=", "LIKE", "IS NULL", "IS NOT NULL"}

// IsUnary reports whether op takes no comparison value.
func IsUnary(op string) bool {
	return op == "IS NULL" || op == "IS NOT NULL"
}

// Condition is a single column comparison in a filter set.
type Condition struct {
	Column   string
	Operator string
	Value    string
}

// BuildWhereClause renders conditions as a SQL WHERE clause, all of them
// ANDed together. The result is empty when conditions is empty and is safe
// to splice directly after a FROM clause.
func BuildWhereClause(conditions []Condition) string {
	if len(conditions) == 0 {
		return ""
	}
	parts := make([]string, len(conditions))
	for i, c := range conditions {
		parts[i] = c.fragment()
	}
	return "WHERE " + strings.Join(parts, " AND ")
}

func (c Condition) fragment() string {
	col := strings.ReplaceAll(c.Column, `"`, `""`)
	switch c.Operator {
	case "IS NULL":
		return fmt.Sprintf(`"%s" IS NULL`, col)
	case "IS NOT NULL":
		return fmt.Sprintf(`"%s" IS NOT NULL`, col)
	case "LIKE":
		// Cast to text so LIKE also matches numeric columns.
		return fmt.Sprintf(`"%s"::text LIKE '%%%s%%'`, col, escapeLiteral(c.Value))
	default:
		return fmt.Sprintf(`"%s" %s '%s'`, col, c.Operator, escapeLiteral(c.Value))
	}
}

// escapeLiteral doubles single quotes for embedding in a SQL string literal.
func escapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// sanitizeIdentifier accepts bare column names made of letters, digits and
// underscores. Anything else is rejected rather than quoted, since these
// names are spliced into aggregate expressions unquoted.
func sanitizeIdentifier(name string) (string, error) {
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return "", newError(KindInvalidColumn, "Column name contains invalid characters: "+name)
		}
	}
	return name, nil
}
