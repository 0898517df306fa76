package store

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/wordbook/internal/config"
)

// table describes how one entity kind is laid out in SQL.
// The first column is the primary key; created_at is never updated.
type table struct {
	name    string
	columns []string
}

var (
	wordsTable = table{
		name:    "words",
		columns: []string{"id", "text", "definition", "part_of_speech", "phonetic", "favorite", "created_at", "examples"},
	}
	idiomsTable = table{
		name:    "idioms",
		columns: []string{"id", "text", "definition", "favorite", "created_at", "examples"},
	}
)

func (t table) selectAllSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY created_at, id", strings.Join(t.columns, ", "), t.name)
}

func (t table) insertSQL() string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.name,
		strings.Join(t.columns, ", "),
		":"+strings.Join(t.columns, ", :"),
	)
}

func (t table) mutableColumns() []string {
	columns := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		if c == "id" || c == "created_at" {
			continue
		}
		columns = append(columns, c)
	}
	return columns
}

func (t table) updateSQL() string {
	assignments := make([]string, 0, len(t.columns))
	for _, c := range t.mutableColumns() {
		assignments = append(assignments, fmt.Sprintf("%s = :%s", c, c))
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = :id", t.name, strings.Join(assignments, ", "))
}

func (t table) deleteSQL() string {
	return fmt.Sprintf("DELETE FROM %s WHERE id = ?", t.name)
}

// upsertSQL inserts a record or overwrites its mutable columns when the id exists.
func (t table) upsertSQL(driverName string) string {
	var assignments []string
	var conflict string
	switch driverName {
	case config.DriverMySQL:
		for _, c := range t.mutableColumns() {
			assignments = append(assignments, fmt.Sprintf("%s = VALUES(%s)", c, c))
		}
		conflict = " ON DUPLICATE KEY UPDATE "
	default:
		for _, c := range t.mutableColumns() {
			assignments = append(assignments, fmt.Sprintf("%s = excluded.%s", c, c))
		}
		conflict = " ON CONFLICT(id) DO UPDATE SET "
	}
	return t.insertSQL() + conflict + strings.Join(assignments, ", ")
}
