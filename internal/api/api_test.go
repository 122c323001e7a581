package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/openexpo/jurypanel/internal/api"
	"github.com/openexpo/jurypanel/internal/api/response"
	"github.com/openexpo/jurypanel/internal/factory"
	"github.com/openexpo/jurypanel/internal/testutil"
)

const (
	testAPIKey        = "test-api-key"
	testAdminPassword = "test-admin-password"
)

// testServer creates a server with in-memory storage and mocked dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:            testutil.NopLogger(),
		APIKey:            testAPIKey,
		AdminPasswordHash: string(hash),
		TokenService:      app.TokenService,
		PINService:        app.PINService,
		DraftService:      app.DraftService,
		ResetWindow:       app.ResetWindow,
		EvaluationService: app.EvaluationService,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

// request performs a request with optional credential headers
func (ts *testServer) request(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func apiKeyHeaders() map[string]string {
	return map[string]string{"X-Api-Key": testAPIKey}
}

func adminHeaders() map[string]string {
	return map[string]string{"X-Admin-Password": testAdminPassword}
}

func bearerHeaders(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// issuePIN registers a juror through the API and returns the PIN and token
func (ts *testServer) issuePIN(t *testing.T, jurorID string) response.IssuePINResponse {
	t.Helper()

	body := map[string]string{"juror_id": jurorID, "name": "Alice", "dept": "Hardware"}
	rr := ts.request(http.MethodPost, "/api/v1/pins", body, apiKeyHeaders())
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.IssuePINResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

// Credential class tests

func TestPINEndpointsRequireAPIKey(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"juror_id": "juror-1"}

	rr := ts.request(http.MethodPost, "/api/v1/pins", body, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/pins", body, map[string]string{"X-Api-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestPINEndpointsRejectBearerToken(t *testing.T) {
	ts := newTestServer(t)
	issued := ts.issuePIN(t, "juror-1")

	// A juror token is not an API key
	body := map[string]string{"juror_id": "juror-1"}
	rr := ts.request(http.MethodPost, "/api/v1/pins", body, bearerHeaders(issued.Token))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAdminEndpointsRequireAdminPassword(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/admin/jurors/juror-1/reset-pin", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/admin/jurors/juror-1/reset-pin", nil,
		map[string]string{"X-Admin-Password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/admin/jurors/juror-1/reset-pin", nil,
		apiKeyHeaders())
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestJurorEndpointsRequireBearerToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/scores", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/scores", nil, bearerHeaders("garbage"))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// PIN endpoint tests

func TestIssuePIN(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.issuePIN(t, "juror-1")
	assert.Len(t, resp.PIN, 4)
	assert.NotEmpty(t, resp.Token)
}

func TestIssuePINIsIdempotent(t *testing.T) {
	ts := newTestServer(t)

	first := ts.issuePIN(t, "juror-1")
	second := ts.issuePIN(t, "juror-1")
	assert.Equal(t, first.PIN, second.PIN)
}

func TestIssuePINRequiresJurorID(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/pins", map[string]string{}, apiKeyHeaders())
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPINExists(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/pins/juror-1", nil, apiKeyHeaders())
	assert.Equal(t, http.StatusOK, rr.Code)
	var resp response.PINExistsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Exists)

	ts.issuePIN(t, "juror-1")

	rr = ts.request(http.MethodGet, "/api/v1/pins/juror-1", nil, apiKeyHeaders())
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Exists)
}

func TestVerifyPIN(t *testing.T) {
	ts := newTestServer(t)
	issued := ts.issuePIN(t, "juror-1")

	body := map[string]string{"juror_id": "juror-1", "pin": issued.PIN}
	rr := ts.request(http.MethodPost, "/api/v1/pins/verify", body, apiKeyHeaders())
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.VerifyPINResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.NotEmpty(t, resp.Token)
	assert.NotEqual(t, issued.Token, resp.Token)
}

func TestVerifyPINLockout(t *testing.T) {
	ts := newTestServer(t)
	issued := ts.issuePIN(t, "juror-1")

	var resp response.VerifyPINResponse
	for i := 0; i < 3; i++ {
		body := map[string]string{"juror_id": "juror-1", "pin": "0000"}
		rr := ts.request(http.MethodPost, "/api/v1/pins/verify", body, apiKeyHeaders())
		require.Equal(t, http.StatusOK, rr.Code)
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.False(t, resp.Valid)
	}
	assert.True(t, resp.Locked)

	// Even the right PIN fails now
	body := map[string]string{"juror_id": "juror-1", "pin": issued.PIN}
	rr := ts.request(http.MethodPost, "/api/v1/pins/verify", body, apiKeyHeaders())
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.True(t, resp.Locked)
}

// Admin endpoint tests

func TestAdminResetPINUnlocks(t *testing.T) {
	ts := newTestServer(t)
	ts.issuePIN(t, "juror-1")

	for i := 0; i < 3; i++ {
		body := map[string]string{"juror_id": "juror-1", "pin": "0000"}
		ts.request(http.MethodPost, "/api/v1/pins/verify", body, apiKeyHeaders())
	}

	rr := ts.request(http.MethodPost, "/api/v1/admin/jurors/juror-1/reset-pin", nil, adminHeaders())
	assert.Equal(t, http.StatusOK, rr.Code)

	// PIN is cleared
	var existsResp response.PINExistsResponse
	rr = ts.request(http.MethodGet, "/api/v1/pins/juror-1", nil, apiKeyHeaders())
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &existsResp))
	assert.False(t, existsResp.Exists)

	// And a fresh PIN can be issued and verified
	issued := ts.issuePIN(t, "juror-1")
	body := map[string]string{"juror_id": "juror-1", "pin": issued.PIN}
	rr = ts.request(http.MethodPost, "/api/v1/pins/verify", body, apiKeyHeaders())
	var verifyResp response.VerifyPINResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &verifyResp))
	assert.True(t, verifyResp.Valid)
}

func TestAdminClearAccount(t *testing.T) {
	ts := newTestServer(t)
	issued := ts.issuePIN(t, "juror-1")

	rr := ts.request(http.MethodDelete, "/api/v1/admin/jurors/juror-1", nil, adminHeaders())
	assert.Equal(t, http.StatusOK, rr.Code)

	// Outstanding tokens die with the account
	rr = ts.request(http.MethodGet, "/api/v1/scores", nil, bearerHeaders(issued.Token))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// Draft endpoint tests

func TestDraftRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	issued := ts.issuePIN(t, "juror-1")

	payload := map[string]any{"payload": map[string]any{"scores": []any{}}}
	rr := ts.request(http.MethodPut, "/api/v1/draft", payload, bearerHeaders(issued.Token))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/draft", nil, bearerHeaders(issued.Token))
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.DraftResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.JSONEq(t, `{"scores":[]}`, string(resp.Payload))
}

func TestDraftLoadMissingReturns404(t *testing.T) {
	ts := newTestServer(t)
	issued := ts.issuePIN(t, "juror-1")

	rr := ts.request(http.MethodGet, "/api/v1/draft", nil, bearerHeaders(issued.Token))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDraftDelete(t *testing.T) {
	ts := newTestServer(t)
	issued := ts.issuePIN(t, "juror-1")

	payload := map[string]any{"payload": map[string]any{"v": 1}}
	ts.request(http.MethodPut, "/api/v1/draft", payload, bearerHeaders(issued.Token))

	rr := ts.request(http.MethodDelete, "/api/v1/draft", nil, bearerHeaders(issued.Token))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/draft", nil, bearerHeaders(issued.Token))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// Scores endpoint tests

func scoreRow(jurorID, groupID, ts, status string) map[string]any {
	return map[string]any{
		"juror_id":         jurorID,
		"juror_name":       "Alice",
		"juror_dept":       "Hardware",
		"timestamp":        ts,
		"group_id":         groupID,
		"group_name":       "Group " + groupID,
		"score_planning":   8,
		"score_execution":  9,
		"score_creativity": 7,
		"score_delivery":   8,
		"score_total":      32,
		"comments":         "",
		"status":           status,
	}
}

func TestSubmitAndListScores(t *testing.T) {
	ts := newTestServer(t)
	issued := ts.issuePIN(t, "juror-1")

	body := map[string]any{"rows": []any{
		scoreRow("juror-1", "g1", "2025-06-01T09:00:00", "in_progress"),
		scoreRow("juror-1", "g2", "2025-06-01T09:00:00", "all_submitted"),
	}}
	rr := ts.request(http.MethodPost, "/api/v1/scores", body, bearerHeaders(issued.Token))
	assert.Equal(t, http.StatusOK, rr.Code)

	var submitResp response.SubmitScoresResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &submitResp))
	assert.Equal(t, 2, submitResp.Added)

	rr = ts.request(http.MethodGet, "/api/v1/scores", nil, bearerHeaders(issued.Token))
	assert.Equal(t, http.StatusOK, rr.Code)

	var listResp response.ListScoresResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listResp))
	require.Len(t, listResp.Records, 2)
	assert.Equal(t, "g1", listResp.Records[0].GroupID)
	assert.Equal(t, "g2", listResp.Records[1].GroupID)
}

func TestSubmitScoresIgnoresForeignRows(t *testing.T) {
	ts := newTestServer(t)
	issued := ts.issuePIN(t, "juror-1")

	body := map[string]any{"rows": []any{
		scoreRow("juror-2", "g1", "2025-06-01T09:00:00", "in_progress"),
	}}
	rr := ts.request(http.MethodPost, "/api/v1/scores", body, bearerHeaders(issued.Token))
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.SubmitScoresResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Added)
	assert.Equal(t, 0, resp.Updated)
}

func TestCountFinalized(t *testing.T) {
	ts := newTestServer(t)
	issued := ts.issuePIN(t, "juror-1")

	body := map[string]any{"rows": []any{
		scoreRow("juror-1", "g1", "2025-06-01T09:00:00", "all_submitted"),
		scoreRow("juror-1", "g2", "2025-06-01T09:00:00", "in_progress"),
	}}
	ts.request(http.MethodPost, "/api/v1/scores", body, bearerHeaders(issued.Token))

	rr := ts.request(http.MethodGet, "/api/v1/scores/finalized/count", nil, bearerHeaders(issued.Token))
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.CountResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestDeleteScores(t *testing.T) {
	ts := newTestServer(t)
	issued := ts.issuePIN(t, "juror-1")

	body := map[string]any{"rows": []any{
		scoreRow("juror-1", "g1", "2025-06-01T09:00:00", "in_progress"),
		scoreRow("juror-1", "g2", "2025-06-01T09:00:00", "in_progress"),
	}}
	ts.request(http.MethodPost, "/api/v1/scores", body, bearerHeaders(issued.Token))

	rr := ts.request(http.MethodDelete, "/api/v1/scores", nil, bearerHeaders(issued.Token))
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.CountResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)

	var listResp response.ListScoresResponse
	rr = ts.request(http.MethodGet, "/api/v1/scores", nil, bearerHeaders(issued.Token))
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listResp))
	assert.Empty(t, listResp.Records)
}

func TestResetWindowAllowsStatusRegression(t *testing.T) {
	ts := newTestServer(t)
	issued := ts.issuePIN(t, "juror-1")

	body := map[string]any{"rows": []any{
		scoreRow("juror-1", "g1", "2025-06-01T09:00:00", "all_submitted"),
	}}
	ts.request(http.MethodPost, "/api/v1/scores", body, bearerHeaders(issued.Token))

	rr := ts.request(http.MethodPost, "/api/v1/reset-window", nil, bearerHeaders(issued.Token))
	assert.Equal(t, http.StatusOK, rr.Code)

	// Records were eagerly reopened
	var listResp response.ListScoresResponse
	rr = ts.request(http.MethodGet, "/api/v1/scores", nil, bearerHeaders(issued.Token))
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listResp))
	require.Len(t, listResp.Records, 1)
	assert.Equal(t, "in_progress", listResp.Records[0].Status)
	assert.Equal(t, "editing", listResp.Records[0].EditingFlag)
}
