package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/pltype"
)

const testAPIKey = "test-admin-key"

// adminServer is a scripted agent admin endpoint.
func adminServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Header.Get("X-API-Key") != testAPIKey {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	r.HandleFunc("/connections", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(t, w, map[string]interface{}{
			"results": []ConnectionRecord{
				{ID: "conn-1", Alias: "faber", State: pltype.ConnActive},
			},
		})
	}).Methods(http.MethodGet)

	r.HandleFunc("/connections/create-invitation",
		func(w http.ResponseWriter, req *http.Request) {
			writeJSON(t, w, map[string]interface{}{
				"connection_id":  "conn-2",
				"invitation":     map[string]string{"@type": "invitation"},
				"invitation_url": "http://agent/invite?c_i=e30",
			})
		}).Methods(http.MethodPost)

	r.HandleFunc("/issue-credential/records",
		func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "issuer", req.URL.Query().Get("role"))
			writeJSON(t, w, map[string]interface{}{
				"results": []CredExRecord{
					{ID: "ex-1", Role: pltype.RoleIssuer,
						State: pltype.CredProposalReceived},
				},
			})
		}).Methods(http.MethodGet)

	r.HandleFunc("/issue-credential/records/{id}/send-offer",
		func(w http.ResponseWriter, req *http.Request) {
			if mux.Vars(req)["id"] == "ex-rejected" {
				w.WriteHeader(http.StatusUnprocessableEntity)
				_, _ = w.Write([]byte("credential definition not found"))
				return
			}
			writeJSON(t, w, CredExRecord{
				ID:    mux.Vars(req)["id"],
				Role:  pltype.RoleIssuer,
				State: pltype.CredOfferSent,
			})
		}).Methods(http.MethodPost)

	r.HandleFunc("/issue-credential/records/{id}/problem-report",
		func(w http.ResponseWriter, req *http.Request) {
			var body map[string]string
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.Equal(t, "changed my mind", body["description"])
			w.WriteHeader(http.StatusOK)
		}).Methods(http.MethodPost)

	r.HandleFunc("/issue-credential/records/{id}",
		func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusOK)
		}).Methods(http.MethodDelete)

	r.HandleFunc("/revocation/credential-record",
		func(w http.ResponseWriter, req *http.Request) {
			state := "issued"
			if req.URL.Query().Get("cred_ex_id") == "ex-revoked" {
				state = "revoked"
			}
			writeJSON(t, w, map[string]interface{}{
				"result": map[string]string{"state": state},
			})
		}).Methods(http.MethodGet)

	r.HandleFunc("/ledger/taa", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(t, w, map[string]interface{}{
			"result": TAAInfo{Required: true, Text: "agreement", Version: "1.0"},
		})
	}).Methods(http.MethodGet)

	return httptest.NewServer(r)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestListConnections(t *testing.T) {
	srv := adminServer(t)
	defer srv.Close()
	c := New(srv.URL, testAPIKey)

	recs, err := c.Connections().List(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "faber", recs[0].Alias)
	assert.Equal(t, pltype.ConnActive, recs[0].State)
}

func TestCreateInvitation(t *testing.T) {
	srv := adminServer(t)
	defer srv.Close()
	c := New(srv.URL, testAPIKey)

	inv, err := c.Connections().CreateInvitation(
		context.Background(), "faber", true, false)
	require.NoError(t, err)
	assert.Equal(t, "conn-2", inv.ConnectionID)
	assert.NotEmpty(t, inv.URL)
	assert.NotEmpty(t, inv.Payload)
}

func TestListExchangesSendsFilter(t *testing.T) {
	srv := adminServer(t)
	defer srv.Close()
	c := New(srv.URL, testAPIKey)

	recs, err := c.Credentials().ListExchanges(context.Background(),
		ExchangeFilter{Role: pltype.RoleIssuer})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, pltype.CredProposalReceived, recs[0].State)
}

func TestRejectionKeepsAgentExplanation(t *testing.T) {
	srv := adminServer(t)
	defer srv.Close()
	c := New(srv.URL, testAPIKey)

	_, err := c.Credentials().Offer(context.Background(), "ex-rejected")
	require.Error(t, err)

	ge, ok := AsError(err)
	require.True(t, ok)
	assert.True(t, ge.Rejection())
	assert.False(t, ge.Transport())
	assert.Equal(t, "credential definition not found", ge.Body)
	assert.Contains(t, err.Error(), "credential definition not found")
}

func TestTransportError(t *testing.T) {
	// nothing listens here
	c := New("http://127.0.0.1:1", "")

	_, err := c.Connections().List(context.Background())
	require.Error(t, err)

	ge, ok := AsError(err)
	require.True(t, ok)
	assert.True(t, ge.Transport())
	assert.False(t, ge.Rejection())
}

func TestAPIKeyHeader(t *testing.T) {
	srv := adminServer(t)
	defer srv.Close()
	c := New(srv.URL, "wrong-key")

	_, err := c.Connections().List(context.Background())
	require.Error(t, err)

	ge, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, ge.Status)
}

func TestAbortSendsProblemReportThenDeletes(t *testing.T) {
	srv := adminServer(t)
	defer srv.Close()
	c := New(srv.URL, testAPIKey)

	err := c.Credentials().Abort(context.Background(), "ex-1", "changed my mind")
	require.NoError(t, err)
}

func TestIssuerStatus(t *testing.T) {
	srv := adminServer(t)
	defer srv.Close()
	c := New(srv.URL, testAPIKey)
	ctx := context.Background()

	revoked, err := c.Revocation().IssuerStatus(ctx, "ex-revoked")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = c.Revocation().IssuerStatus(ctx, "ex-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTAA(t *testing.T) {
	srv := adminServer(t)
	defer srv.Close()
	c := New(srv.URL, testAPIKey)

	taa, err := c.Ledger().TAA(context.Background())
	require.NoError(t, err)
	assert.True(t, taa.Required)
	assert.Equal(t, "1.0", taa.Version)
}
