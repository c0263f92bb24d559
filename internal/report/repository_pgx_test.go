package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQuery(t *testing.T) {
	sql, args, err := listQuery(Filter{CourtID: "c1", Status: "pending", Severity: "urgent"}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM public.court_reports")
	assert.Contains(t, sql, "court_id = $1")
	assert.Contains(t, sql, "status = $2")
	assert.Contains(t, sql, "severity = $3")
	assert.Contains(t, sql, "ORDER BY created_at DESC")
	assert.Equal(t, []any{"c1", "pending", "urgent"}, args)
}
