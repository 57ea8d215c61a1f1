package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderStrings(t *testing.T) {
	sql, err := Render(Query{
		SQL:    "INSERT INTO jobs (id, title) VALUES (?1, ?2)",
		Params: []any{"greenhouse-123", "Software Engineer"},
	})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO jobs (id, title) VALUES ('greenhouse-123', 'Software Engineer')", sql)
}

func TestRenderEscapesQuotes(t *testing.T) {
	sql, err := Render(Query{
		SQL:    "UPDATE jobs SET title = ?1",
		Params: []any{"O'Brien's role"},
	})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE jobs SET title = 'O''Brien''s role'", sql)
}

func TestRenderBoolAndNull(t *testing.T) {
	sql, err := Render(Query{
		SQL:    "INSERT INTO t (a, b, c) VALUES (?1, ?2, ?3)",
		Params: []any{true, false, nil},
	})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO t (a, b, c) VALUES (1, 0, NULL)", sql)
}

func TestRenderNumbers(t *testing.T) {
	sql, err := Render(Query{
		SQL:    "INSERT INTO t (a, b) VALUES (?1, ?2)",
		Params: []any{42, 3.5},
	})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO t (a, b) VALUES (42, 3.5)", sql)
}

func TestRenderParamsOutOfOrder(t *testing.T) {
	// Placeholder numbers reference positions, not occurrence order.
	sql, err := Render(Query{
		SQL:    "SELECT * FROM t WHERE b = ?2 AND a = ?1",
		Params: []any{"first", "second"},
	})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE b = 'second' AND a = 'first'", sql)
}

func TestRenderOutOfRange(t *testing.T) {
	_, err := Render(Query{
		SQL:    "SELECT ?1, ?2",
		Params: []any{"only one"},
	})
	require.Error(t, err)
}

func TestRenderUnsupportedType(t *testing.T) {
	_, err := Render(Query{
		SQL:    "SELECT ?1",
		Params: []any{struct{}{}},
	})
	require.Error(t, err)
}
