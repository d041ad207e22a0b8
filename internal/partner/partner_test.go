package partner_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagecraft/concierge/backend/internal/partner"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestActivitiesClient_Search(t *testing.T) {
	var gotQuery partner.ActivityQuery
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/activities/search", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotQuery))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"activities": [
			{"title": "Old town food walk", "price": "65", "currency": "EUR"},
			{"title": "Catamaran day trip", "price": 140}
		]}`))
	}))
	defer srv.Close()

	client := partner.NewActivitiesClient(srv.URL, time.Second, testLogger())

	items, err := client.SearchActivities(context.Background(), partner.ActivityQuery{
		Destination: "Lisbon",
		From:        "2026-09-10",
		To:          "2026-09-14",
		Adults:      2,
	})

	require.NoError(t, err)
	assert.Equal(t, "Lisbon", gotQuery.Destination)
	require.Len(t, items, 2)
	// Items come back in the partner's own shape, untouched.
	assert.Equal(t, "Old town food walk", items[0]["title"])
	assert.Equal(t, "EUR", items[0]["currency"])
	assert.Equal(t, float64(140), items[1]["price"])
}

func TestActivitiesClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := partner.NewActivitiesClient(srv.URL, time.Second, testLogger())

	_, err := client.SearchActivities(context.Background(), partner.ActivityQuery{Destination: "Lisbon"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestTransfersClient_Search(t *testing.T) {
	var gotQuery partner.TransferQuery
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transfers/search", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotQuery))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"transfers": [{"vehicle": "Minivan", "price": 55}]}`))
	}))
	defer srv.Close()

	client := partner.NewTransfersClient(srv.URL, time.Second, testLogger())

	items, err := client.SearchTransfers(context.Background(), partner.TransferQuery{
		Destination: "Lisbon",
		PickupDate:  "2026-09-10",
		Adults:      2,
		Children:    1,
	})

	require.NoError(t, err)
	assert.Equal(t, "2026-09-10", gotQuery.PickupDate)
	assert.Equal(t, 1, gotQuery.Children)
	require.Len(t, items, 1)
	assert.Equal(t, "Minivan", items[0]["vehicle"])
}

func TestTransfersClient_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := partner.NewTransfersClient(srv.URL, time.Second, testLogger())

	_, err := client.SearchTransfers(context.Background(), partner.TransferQuery{Destination: "Lisbon"})

	assert.Error(t, err)
}
