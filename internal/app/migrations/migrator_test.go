package migrations

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

// The job model carries its list fields as string slices, so the schema has
// to declare the matching columns as Postgres arrays for pgx to encode
// parameters and scan rows.
func TestInitSchemaDeclaresJobListColumnsAsArrays(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)

	for _, column := range []string{"responsibilities", "requirements", "benefits"} {
		pattern := regexp.MustCompile(column + `\s+TEXT\[\]\s+NOT NULL DEFAULT '\{\}'`)
		require.True(t, pattern.Match(raw), "jobs.%s must be declared TEXT[]", column)
	}
}
