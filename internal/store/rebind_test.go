package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	pg := &SQLStore{driver: DriverPostgres}
	lite := &SQLStore{driver: DriverSQLite}

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "insert item",
			query: insertItem,
			want: `INSERT INTO quiz_items
    (course_id, question, option_a, option_b, option_c, option_d, correct_label)
    VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		},
		{
			name:  "select by id",
			query: selectItem + " WHERE id = ?",
			want:  selectItem + " WHERE id = $1",
		},
		{
			name:  "no placeholders",
			query: "SELECT 1",
			want:  "SELECT 1",
		},
		{
			name:  "adjacent placeholders",
			query: "VALUES (?,?)",
			want:  "VALUES ($1,$2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pg.rebind(tt.query))
			assert.Equal(t, tt.query, lite.rebind(tt.query))
		})
	}
}
