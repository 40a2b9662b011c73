package repository

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sortModel struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	ItemName string `db:"item_name" table:"items" column:"name"`
}

func TestSortColumn(t *testing.T) {
	columns, _ := getColumns("things", reflect.TypeOf(sortModel{}))
	repo := Repository[sortModel]{table: "things", columns: columns}

	tests := []struct {
		name     string
		input    string
		expected string
		resolved bool
	}{
		{
			name:     "bare column",
			input:    "name",
			expected: "things.name",
			resolved: true,
		},
		{
			name:     "table qualified column",
			input:    "things.id",
			expected: "things.id",
			resolved: true,
		},
		{
			name:     "joined column by alias",
			input:    "item_name",
			expected: "items.name",
			resolved: true,
		},
		{
			name:     "unknown column",
			input:    "password",
			resolved: false,
		},
		{
			name:     "sql fragment",
			input:    "name; DROP TABLE things --",
			resolved: false,
		},
		{
			name:     "expression",
			input:    "(SELECT 1)",
			resolved: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, ok := repo.sortColumn(tt.input)

			assert.Equal(t, tt.resolved, ok)
			assert.Equal(t, tt.expected, col)
		})
	}
}
