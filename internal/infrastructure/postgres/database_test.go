package postgres

import (
	"strings"
	"testing"
)

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "placeholders untouched",
			query: "SELECT id FROM budgets WHERE user_id = $1 AND id = $12",
			want:  "SELECT id FROM budgets WHERE user_id = $1 AND id = $12",
		},
		{
			name:  "string literal masked",
			query: "SELECT * FROM users WHERE email = 'ana@example.com'",
			want:  "SELECT * FROM users WHERE email = '?'",
		},
		{
			name:  "escaped quote",
			query: "SELECT 'it''s' AS x",
			want:  "SELECT '?' AS x",
		},
		{
			name:  "numeric literal masked",
			query: "SELECT * FROM transactions LIMIT 15 OFFSET 30",
			want:  "SELECT * FROM transactions LIMIT ? OFFSET ?",
		},
		{
			name:  "decimal literal",
			query: "UPDATE budgets SET limit_amount = 10.50",
			want:  "UPDATE budgets SET limit_amount = ?",
		},
		{
			name:  "digits inside identifiers kept",
			query: "SELECT col2 FROM t1",
			want:  "SELECT col2 FROM t1",
		},
		{
			name:  "whitespace collapsed",
			query: "\n\t\tSELECT id\n\t\tFROM categories\n\t",
			want:  "SELECT id FROM categories",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeQuery(tt.query); got != tt.want {
				t.Errorf("sanitizeQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeQuery_Truncates(t *testing.T) {
	got := sanitizeQuery("SELECT " + strings.Repeat("a", 400))
	if len(got) != 256+len("...") || !strings.HasSuffix(got, "...") {
		t.Errorf("sanitizeQuery() length = %d", len(got))
	}
}

func TestExtractSQLVerb(t *testing.T) {
	tests := map[string]string{
		"select 1":                 "SELECT",
		"\n  INSERT INTO budgets": "INSERT",
		"":                         "",
	}
	for q, want := range tests {
		if got := extractSQLVerb(q); got != want {
			t.Errorf("extractSQLVerb(%q) = %q, want %q", q, got, want)
		}
	}
}
