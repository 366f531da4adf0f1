// Package sqlutil provides SQL utility functions for reading the catalog from a database.
package sqlutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxIdentifierLength is the MySQL limit; SQLite accepts longer names.
const maxIdentifierLength = 64

// QuoteIdentifier quotes an identifier (table name, column name) with backticks.
// Both MySQL and SQLite accept backtick quoting. Existing backticks are doubled.
// Example: "Dex Number" -> "`Dex Number`"
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// IsValidIdentifier checks if a name can be used as a quoted identifier.
// Spreadsheet-style headers such as "In Collection Check" are allowed;
// backticks, control characters and leading or trailing spaces are not.
func IsValidIdentifier(name string) bool {
	if name == "" || utf8.RuneCountInString(name) > maxIdentifierLength {
		return false
	}
	if strings.TrimSpace(name) != name {
		return false
	}
	for _, r := range name {
		if r == '`' || unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// QuoteIdentifierSafe quotes an identifier after validating it.
// Returns an error if the identifier contains invalid characters.
func QuoteIdentifierSafe(name string) (string, error) {
	if !IsValidIdentifier(name) {
		return "", &InvalidIdentifierError{Name: name}
	}
	return QuoteIdentifier(name), nil
}

// InvalidIdentifierError is returned when an identifier contains invalid characters.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid identifier: " + e.Name + " (must be 1-64 characters without backticks or control characters)"
}

// BuildSelect builds "SELECT <columns> FROM <table> [WHERE <where>]".
// The where clause is taken verbatim from configuration.
func BuildSelect(table string, columns []string, where string) (string, error) {
	qt, err := QuoteIdentifierSafe(table)
	if err != nil {
		return "", err
	}

	quoted := make([]string, 0, len(columns))
	for _, c := range columns {
		qc, err := QuoteIdentifierSafe(c)
		if err != nil {
			return "", err
		}
		quoted = append(quoted, qc)
	}

	query := "SELECT " + strings.Join(quoted, ", ") + " FROM " + qt
	if w := strings.TrimSpace(where); w != "" {
		query += " WHERE " + w
	}
	return query, nil
}
