package sdk_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rahul675/indyanet-crm/pkg/sdk"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResourceServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var deleted []string

	r := chi.NewRouter()
	r.Get("/customers", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"data":[{"id":"c1","customerName":"Asha"},{"id":"c2","customerName":"Vik"}],"total":2}}`))
	})
	r.Get("/issues", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"_id":"i1","title":"RT-221 down"}]`))
	})
	r.Get("/loadshare", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"count":0}}`))
	})
	r.Get("/customers/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := chi.URLParam(req, "id")
		if id == "missing" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Customer not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":{"id":"` + id + `","customerName":"Asha"}}`))
	})
	r.Delete("/customers/{id}", func(w http.ResponseWriter, req *http.Request) {
		deleted = append(deleted, chi.URLParam(req, "id"))
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/audit", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid token"}`))
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, &deleted
}

func TestResourceClient_ListUnwrapsEnvelopes(t *testing.T) {
	srv, _ := newResourceServer(t)
	client := sdk.NewResourceClient(srv.URL + "/")

	t.Run("nested envelope", func(t *testing.T) {
		records, err := client.List(context.Background(), sdk.ResourceCustomers)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Asha", records[0].Title())
	})

	t.Run("bare array", func(t *testing.T) {
		records, err := client.List(context.Background(), sdk.ResourceIssues)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "i1", records[0].ID())
	})

	t.Run("no list yields empty", func(t *testing.T) {
		records, err := client.List(context.Background(), sdk.ResourceLoadshare)
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})
}

func TestResourceClient_GetAndErrors(t *testing.T) {
	srv, _ := newResourceServer(t)
	client := sdk.NewResourceClient(srv.URL)

	rec, err := client.Get(context.Background(), sdk.ResourceCustomers, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", rec.ID())

	_, err = client.Get(context.Background(), sdk.ResourceCustomers, "missing")
	var apiErr *sdk.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Customer not found", sdk.UserMessage(err))
	assert.NotErrorIs(t, err, sdk.ErrUnauthenticated)

	_, err = client.Get(context.Background(), sdk.ResourceCustomers, "")
	assert.Error(t, err)
}

func TestResourceClient_UnauthorizedMatchesSentinel(t *testing.T) {
	srv, _ := newResourceServer(t)
	client := sdk.NewResourceClient(srv.URL)

	_, err := client.List(context.Background(), sdk.ResourceAudit)
	assert.ErrorIs(t, err, sdk.ErrUnauthenticated)
}

func TestResourceClient_DeleteEscapesID(t *testing.T) {
	srv, deleted := newResourceServer(t)
	client := sdk.NewResourceClient(srv.URL)

	require.NoError(t, client.Delete(context.Background(), sdk.ResourceCustomers, "a b"))
	require.Len(t, *deleted, 1)
	assert.Equal(t, "a b", (*deleted)[0])

	assert.Error(t, client.Delete(context.Background(), sdk.ResourceCustomers, ""))
}

func TestResourceClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := sdk.NewResourceClient(url).List(context.Background(), sdk.ResourceCustomers)
	require.Error(t, err)
	var apiErr *sdk.APIError
	assert.False(t, errors.As(err, &apiErr))
}
