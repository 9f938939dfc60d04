package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/the-wheel-must-spin/internal/analysis"
	"github.com/Veraticus/the-wheel-must-spin/internal/engine"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
	"github.com/Veraticus/the-wheel-must-spin/internal/testutil"
)

func newTestServer(t *testing.T) (http.Handler, *testutil.TestDB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	tracker, err := engine.New(db.Storage)
	require.NoError(t, err)
	return NewServer(tracker, "test").Routes(), db
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[HealthResponse](t, rec)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "test", resp.Version)
}

func TestRecordAndListSpins(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/spins", RecordRequest{Numbers: []int{17, 0}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[[]model.Outcome](t, rec)
	require.Len(t, created, 2)

	rec = do(t, h, http.MethodPost, "/api/spins", RecordRequest{Entry: "32 15"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/spins?last=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode[[]model.Outcome](t, rec)
	assert.Equal(t, []int{0, 32, 15}, model.Numbers(listed))

	rec = do(t, h, http.MethodDelete, "/api/spins/last", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 15, decode[model.Outcome](t, rec).Number)
}

func TestRecordSpins_Errors(t *testing.T) {
	h, _ := newTestServer(t)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{name: "empty body", body: RecordRequest{}, status: http.StatusBadRequest},
		{name: "out of range", body: RecordRequest{Numbers: []int{37}}, status: http.StatusBadRequest},
		{name: "bad entry", body: RecordRequest{Entry: "4 x"}, status: http.StatusBadRequest},
		{name: "unknown field", body: map[string]any{"spin": 4}, status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/spins", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, ErrTypeValidation, decode[Error](t, rec).Type)
		})
	}

	rec := do(t, h, http.MethodDelete, "/api/spins/last", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalysis(t *testing.T) {
	h, db := newTestServer(t)
	db.SeedSpins("Anna", 7, 7, 7, 7, 7, 12)
	db.SeedSpins("Ben", 3)

	rec := do(t, h, http.MethodGet, "/api/analysis?dealer=Anna", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	report := decode[analysis.Report](t, rec)
	assert.Equal(t, 6, report.Total)
	assert.Equal(t, "Anna", report.Filter.DealerID)
	require.NotEmpty(t, report.HotCold.Hot)
	assert.Equal(t, 7, report.HotCold.Hot[0].Number)

	rec = do(t, h, http.MethodGet, "/api/analysis?dealer=Nobody", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[analysis.Report](t, rec).NoData)

	rec = do(t, h, http.MethodGet, "/api/analysis?last=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, h, http.MethodGet, "/api/analysis?last=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNeighbours(t *testing.T) {
	h, db := newTestServer(t)
	db.SeedSpins("Default", 0, 32, 1)

	rec := do(t, h, http.MethodGet, "/api/neighbours?center=0&k=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	row := decode[analysis.GroupRow](t, rec)
	assert.Equal(t, 2, row.Hits)

	rec = do(t, h, http.MethodGet, "/api/neighbours?center=0&k=19", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/neighbours", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGroups(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/groups", GroupRequest{Name: "My Picks", Numbers: "5 17"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, []int{5, 17}, decode[GroupResponse](t, rec).Numbers)

	rec = do(t, h, http.MethodPost, "/api/groups", GroupRequest{Name: "my picks", Numbers: "1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/groups?category=custom", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	groups := decode[[]GroupResponse](t, rec)
	require.Len(t, groups, 1)
	assert.Equal(t, "My Picks", groups[0].Name)

	rec = do(t, h, http.MethodDelete, "/api/groups/My%20Picks", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/groups/My%20Picks", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDealerAndSession(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPut, "/api/dealer", DealerRequest{Dealer: " Anna "})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Anna", decode[DealerRequest](t, rec).Dealer)

	rec = do(t, h, http.MethodPut, "/api/dealer", DealerRequest{Dealer: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/spins", RecordRequest{Numbers: []int{4}})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/dealers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"dealer_id":"Anna"`)

	rec = do(t, h, http.MethodGet, "/api/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[engine.Status](t, rec)
	assert.Equal(t, "Anna", status.Dealer)
	assert.Equal(t, 1, status.SessionSpins)

	rec = do(t, h, http.MethodPost, "/api/session", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	session := decode[model.Session](t, rec)
	assert.NotEqual(t, status.Session.ID, session.ID)
}
