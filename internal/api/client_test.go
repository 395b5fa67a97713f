package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSubdomain(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/onboard/check-subdomain", r.URL.Path)
		assert.Equal(t, "kicksonfire", r.URL.Query().Get("subdomain"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","data":{"available":true}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	avail, err := client.CheckSubdomain(context.Background(), "kicksonfire")
	require.NoError(t, err)
	assert.True(t, avail.Available)
	assert.Empty(t, avail.Error)
}

func TestCheckSubdomain_ReservedWithReason(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","data":{"available":false,"error":"Reserved name"}}`))
	}))
	defer server.Close()

	avail, err := NewClient(server.URL).CheckSubdomain(context.Background(), "admin")
	require.NoError(t, err)
	assert.False(t, avail.Available)
	assert.Equal(t, "Reserved name", avail.Error)
}

func TestCheckEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/onboard/check-email", r.URL.Path)
		assert.Equal(t, "john@example.com", r.URL.Query().Get("email"))
		_, _ = w.Write([]byte(`{"status":"success","data":{"available":false}}`))
	}))
	defer server.Close()

	avail, err := NewClient(server.URL).CheckEmail(context.Background(), "john@example.com")
	require.NoError(t, err)
	assert.False(t, avail.Available)
}

func TestUpsertLead_CreateAdoptsLeadID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Nil(t, body["id"])
		assert.Equal(t, "kicksonfire", body["siteName"])

		_, _ = w.Write([]byte(`{"status":"success","data":{"lead_id":"lead-7","siteName":"kicksonfire"}}`))
	}))
	defer server.Close()

	result, err := NewClient(server.URL).UpsertLead(context.Background(), "", map[string]any{"siteName": "kicksonfire"})
	require.NoError(t, err)
	assert.Equal(t, "lead-7", result.LeadID)
}

func TestUpsertLead_UpdateCarriesID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "lead-7", body["id"])
		_, _ = w.Write([]byte(`{"status":"success","data":{"lead_id":"lead-7"}}`))
	}))
	defer server.Close()

	result, err := NewClient(server.URL).UpsertLead(context.Background(), "lead-7", map[string]any{"siteVibe": "bold"})
	require.NoError(t, err)
	assert.Equal(t, "lead-7", result.LeadID)
}

func TestUpsertLead_ErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","message":"Validation failed"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).UpsertLead(context.Background(), "", map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Validation failed")
}

func TestRegister(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/onboard/register", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "lead-7", body["lead_id"])

		_, _ = w.Write([]byte(`{"status":"success","data":{
			"customer":{"id":"42","email":"john@example.com"},
			"site":{"id":"s-9","subdomain":"kicksonfire"}
		}}`))
	}))
	defer server.Close()

	data, err := NewClient(server.URL).Register(context.Background(), "lead-7", "secret")
	require.NoError(t, err)
	customer := data["customer"].(map[string]any)
	site := data["site"].(map[string]any)
	assert.Equal(t, "42", customer["id"])
	assert.Equal(t, "s-9", site["id"])
}

func TestRegister_BusinessErrorSurfacedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"status":"error","message":"email already registered"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Register(context.Background(), "lead-7", "secret")
	require.Error(t, err)
	assert.EqualError(t, err, "email already registered")
}

func TestCreateStore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customer/store/create", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"success","message":"Store creation queued"}`))
	}))
	defer server.Close()

	msg, err := NewClient(server.URL).CreateStore(context.Background(), "s-9")
	require.NoError(t, err)
	assert.Equal(t, "Store creation queued", msg)
}

func TestCreateStore_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"failed","message":"site not found"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).CreateStore(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "site not found")
}

func TestGetStoreStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "s-9", r.URL.Query().Get("site_id"))
		_, _ = w.Write([]byte(`{"status":"success","data":{
			"status":"DB_IMPORTING",
			"timeline":["database created","import started"]
		}}`))
	}))
	defer server.Close()

	st, err := NewClient(server.URL).GetStoreStatus(context.Background(), "s-9")
	require.NoError(t, err)
	assert.Equal(t, "DB_IMPORTING", st.Status)
	assert.Len(t, st.Timeline, 2)
}

func TestDo_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway error</html>`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).GetStoreStatus(context.Background(), "s-9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}
