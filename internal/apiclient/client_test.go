package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadersDecodesList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tables/headers", r.URL.Path)
		w.Write([]byte(`["Część budżetowa","Dział"]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	headers, err := c.Headers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Część budżetowa", "Dział"}, headers)
}

func TestNonSuccessStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Table(context.Background(), 1)
	assert.Error(t, err)
	_, err = c.Divisions(context.Background())
	assert.Error(t, err)
	err = c.BatchUpdate(context.Background(), []ChangeRecord{{TableID: 1}})
	assert.Error(t, err)
}

func TestBatchUpdateSendsRecordsAsIs(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
	}))
	defer srv.Close()

	rowID := int64(100)
	c := New(srv.URL)
	err := c.BatchUpdate(context.Background(), []ChangeRecord{{
		TableID:    1,
		RowID:      &rowID,
		Values:     []string{"27"},
		LastUpdate: "2026-02-01T12:00:00Z",
	}})
	require.NoError(t, err)

	assert.Contains(t, gotBody, `"tableId":1`)
	assert.Contains(t, gotBody, `"rowId":100`)
	assert.Contains(t, gotBody, `"isDeleted":false`)
}
