package storage

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func newTestD1Store(t *testing.T, handler http.HandlerFunc) *D1Store {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	orig := d1Base
	d1Base = server.URL
	t.Cleanup(func() { d1Base = orig })

	return NewD1Store("acct", "db", "token", arbor.NewLogger())
}

func TestD1ExecuteBatchRendersParams(t *testing.T) {
	var received []d1Statement
	store := newTestD1Store(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/acct/d1/database/db/batch", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.Write([]byte(`{"success":true}`))
	})

	err := store.ExecuteBatch(context.Background(), []Query{{
		SQL:    "INSERT INTO jobs (id, title) VALUES (?1, ?2)",
		Params: []any{"lever-1", "Intern, Data"},
	}})
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.Equal(t, "INSERT INTO jobs (id, title) VALUES ('lever-1', 'Intern, Data')", received[0].SQL)
	assert.Empty(t, received[0].Params)
}

func TestD1ExecuteBatchChunks(t *testing.T) {
	requests := 0
	store := newTestD1Store(t, func(w http.ResponseWriter, r *http.Request) {
		var stmts []d1Statement
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &stmts))
		assert.LessOrEqual(t, len(stmts), d1ChunkSize)
		requests++
		w.Write([]byte(`{"success":true}`))
	})

	queries := make([]Query, 120)
	for i := range queries {
		queries[i] = Query{SQL: "SELECT 1"}
	}
	require.NoError(t, store.ExecuteBatch(context.Background(), queries))
	assert.Equal(t, 3, requests)
}

func TestD1ExecuteBatchAPIError(t *testing.T) {
	store := newTestD1Store(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"success":false}`, http.StatusBadRequest)
	})

	err := store.ExecuteBatch(context.Background(), []Query{{SQL: "SELECT 1"}})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "400"))
}

func TestD1ExistingIDs(t *testing.T) {
	store := newTestD1Store(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/acct/d1/database/db/query", r.URL.Path)

		var stmt d1Statement
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &stmt))
		assert.Equal(t, "SELECT id FROM jobs", stmt.SQL)

		w.Write([]byte(`{"success":true,"result":[{"results":[{"id":"greenhouse-1"},{"id":"lever-2"}]}]}`))
	})

	ids, err := store.ExistingIDs(context.Background())
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, "greenhouse-1")
	assert.Contains(t, ids, "lever-2")
}

func TestD1InitializeGeoTablesSkipsWhenPopulated(t *testing.T) {
	batchCalls := 0
	store := newTestD1Store(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/batch") {
			batchCalls++
			w.Write([]byte(`{"success":true}`))
			return
		}
		w.Write([]byte(`{"success":true,"result":[{"results":[{"n":252}]}]}`))
	})

	err := store.InitializeGeoTables(context.Background(),
		map[string]string{"US": "United States"},
		map[string]string{"US.CA": "California"})
	require.NoError(t, err)
	assert.Zero(t, batchCalls)
}
