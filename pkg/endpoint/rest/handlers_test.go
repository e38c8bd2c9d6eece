//
//  Copyright © Altinn. All rights reserved.
//

package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinn/accessmgmt/internal/core/test"
	"github.com/altinn/accessmgmt/pkg/core"
	"github.com/altinn/accessmgmt/pkg/core/attribute"
	"github.com/altinn/accessmgmt/pkg/core/delegation"
	"github.com/altinn/accessmgmt/pkg/core/model"
)

func newTestServer(t *testing.T) (*echo.Echo, core.Engine) {
	t.Helper()

	engine, _, err := test.NewTestEngine(64)
	require.NoError(t, err)
	t.Cleanup(engine.Close)

	e := echo.New()
	registerRoutes(e, &handlers{engine: engine})
	return e, engine
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const delegateBody = `{
	"from": [{"id": "urn:altinn:organization:identifier-no", "value": "910459880"}],
	"to": [{"id": "urn:altinn:person:identifier-no", "value": "07124912037"}],
	"resource": [{"id": "urn:altinn:resource:resourceregistryid", "value": "scan-app"}],
	"performedByUserId": 20000490
}`

func TestResolveEndpoint(t *testing.T) {
	e, _ := newTestServer(t)

	body := `{
		"attributes": [{"id": "urn:altinn:person:identifier-no", "value": "07124912037"}],
		"wanted": ["urn:altinn:person:party-id"]
	}`
	rec := doJSON(e, http.MethodPost, "/api/v1/resolve", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ResolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	partyID, ok := attribute.Value(resp.Attributes, attribute.PersonPartyID)
	require.True(t, ok)
	assert.Equal(t, "50002598", partyID)
}

func TestCheckEndpoint(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/delegations/check", delegateBody)
	require.Equal(t, http.StatusOK, rec.Code)

	var decision model.Decision
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decision))
	assert.Equal(t, model.OutcomeDelegable, decision.Outcome)
}

func TestCheckEndpointReturnsInvalidAsData(t *testing.T) {
	e, _ := newTestServer(t)

	body := `{
		"from": [],
		"to": [{"id": "urn:altinn:person:identifier-no", "value": "07124912037"}],
		"resource": [
			{"id": "urn:altinn:resource:resourceregistryid", "value": "scan-app"},
			{"id": "urn:altinn:resource:app-id", "value": "rf-0002"}
		]
	}`
	rec := doJSON(e, http.MethodPost, "/api/v1/delegations/check", body)

	// malformed shape is a verdict, not a transport error
	require.Equal(t, http.StatusOK, rec.Code)

	var decision model.Decision
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decision))
	assert.Equal(t, model.OutcomeInvalid, decision.Outcome)
	require.NotNil(t, decision.Validation)
}

func TestDelegateEndpoint(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/delegations", delegateBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var change delegation.Change
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &change))
	assert.Equal(t, delegation.ChangeGrant, change.Type)
	assert.Equal(t, "scan-app", change.ResourceID)
	assert.Equal(t, 50005545, change.OfferedByPartyID)
	assert.Equal(t, 20000490, change.CoveredByUserID)
}

func TestRevokeEndpoint(t *testing.T) {
	e, _ := newTestServer(t)

	t.Run("without active grant", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/delegations/revoke", delegateBody)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("after delegate", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/delegations", delegateBody)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(e, http.MethodPost, "/api/v1/delegations/revoke", delegateBody)
		require.Equal(t, http.StatusCreated, rec.Code)

		var change delegation.Change
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &change))
		assert.Equal(t, delegation.ChangeRevoke, change.Type)
	})
}

func TestDelegateEndpointValidation(t *testing.T) {
	e, _ := newTestServer(t)

	body := `{
		"from": [],
		"to": [],
		"resource": []
	}`
	rec := doJSON(e, http.MethodPost, "/api/v1/delegations", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestListingEndpoints(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/delegations", delegateBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("offered", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/api/v1/delegations/offered/50005545", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var listing []*model.ResourceDelegation
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
		require.Len(t, listing, 1)
		assert.Equal(t, "scan-app", listing[0].ResourceID)
	})

	t.Run("received", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/api/v1/delegations/received/50002598", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var listing []*model.ResourceDelegation
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
		require.Len(t, listing, 1)
	})

	t.Run("non-numeric party id", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/api/v1/delegations/offered/abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHTTPStatusMapping(t *testing.T) {
	// unreachable registry surfaces as 503 on resolve
	e, _ := newTestServer(t)

	body := `{
		"attributes": [{"id": "urn:altinn:person:identifier-no", "value": "networkerror"}],
		"wanted": ["urn:altinn:person:party-id"]
	}`
	rec := doJSON(e, http.MethodPost, "/api/v1/resolve", body)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
