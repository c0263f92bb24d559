package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQuery(t *testing.T) {
	sql, args, err := listQuery(Filter{Email: "ana", Status: "pending", Page: 3, PageSize: 5}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM public.users")
	assert.Contains(t, sql, "email ILIKE $1")
	assert.Contains(t, sql, "status = $2")
	assert.Contains(t, sql, "ORDER BY created_at DESC")
	assert.Contains(t, sql, "LIMIT 5 OFFSET 10")
	assert.Equal(t, []any{"%ana%", "pending"}, args)
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	require.NotNil(t, nullIfEmpty("1-1111-1111"))
	assert.Equal(t, "1-1111-1111", *nullIfEmpty("1-1111-1111"))
}
