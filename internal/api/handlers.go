package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Veraticus/the-wheel-must-spin/internal/analysis"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// RecordRequest is the body of POST /api/spins. Either Numbers or Entry
// must be set.
type RecordRequest struct {
	Entry   string `json:"entry,omitempty"`
	Numbers []int  `json:"numbers,omitempty"`
}

// GroupRequest is the body of POST /api/groups.
type GroupRequest struct {
	Name    string `json:"name"`
	Numbers string `json:"numbers"`
}

// DealerRequest is the body of PUT /api/dealer.
type DealerRequest struct {
	Dealer string `json:"dealer"`
}

// GroupResponse describes one group.
type GroupResponse struct {
	Name     string              `json:"name"`
	Category model.GroupCategory `json:"category"`
	Numbers  []int               `json:"numbers"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: s.version,
		Uptime:  time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}
	report, err := s.tracker.Analyze(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleNeighbours(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}
	center, ok := intParam(w, r, "center", -1)
	if !ok {
		return
	}
	if center < 0 {
		validationError(w, r, "center", "center is required")
		return
	}
	k, ok := intParam(w, r, "k", 2)
	if !ok {
		return
	}

	row, err := s.tracker.Neighbours(r.Context(), center, k, filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleListSpins(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}
	outcomes, err := s.tracker.History(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if outcomes == nil {
		outcomes = []model.Outcome{}
	}
	writeJSON(w, http.StatusOK, outcomes)
}

func (s *Server) handleRecordSpins(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var (
		outcomes []model.Outcome
		err      error
	)
	switch {
	case len(req.Numbers) > 0:
		outcomes, err = s.tracker.Record(r.Context(), req.Numbers...)
	case strings.TrimSpace(req.Entry) != "":
		outcomes, err = s.tracker.RecordEntry(r.Context(), req.Entry)
	default:
		validationError(w, r, "numbers", "numbers or entry is required")
		return
	}
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, outcomes)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	removed, err := s.tracker.Undo(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, removed)
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.tracker.Groups(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if category := r.URL.Query().Get("category"); category != "" {
		filtered := groups[:0]
		for _, g := range groups {
			if string(g.Category) == category {
				filtered = append(filtered, g)
			}
		}
		groups = filtered
	}

	resp := make([]GroupResponse, len(groups))
	for i, g := range groups {
		resp[i] = toGroupResponse(g)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddGroup(w http.ResponseWriter, r *http.Request) {
	var req GroupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	g, err := s.tracker.AddGroup(r.Context(), req.Name, req.Numbers)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupResponse(g))
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.DeleteGroup(r.Context(), chi.URLParam(r, "name")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListDealers(w http.ResponseWriter, r *http.Request) {
	dealers, err := s.tracker.Dealers(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dealers)
}

func (s *Server) handleGetDealer(w http.ResponseWriter, r *http.Request) {
	dealer, err := s.tracker.Dealer(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DealerRequest{Dealer: dealer})
}

func (s *Server) handleSetDealer(w http.ResponseWriter, r *http.Request) {
	var req DealerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.tracker.SetDealer(r.Context(), req.Dealer); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DealerRequest{Dealer: strings.TrimSpace(req.Dealer)})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	status, err := s.tracker.Status(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.tracker.StartSession(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func parseFilter(w http.ResponseWriter, r *http.Request) (analysis.Filter, bool) {
	q := r.URL.Query()
	last, ok := intParam(w, r, "last", 0)
	if !ok {
		return analysis.Filter{}, false
	}
	if last < 0 {
		validationError(w, r, "last", "last must not be negative")
		return analysis.Filter{}, false
	}
	return analysis.Filter{
		DealerID:  strings.TrimSpace(q.Get("dealer")),
		SessionID: strings.TrimSpace(q.Get("session")),
		Last:      last,
	}, true
}

func intParam(w http.ResponseWriter, r *http.Request, name string, fallback int) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		validationError(w, r, name, name+" must be an integer")
		return 0, false
	}
	return v, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		validationError(w, r, "body", "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func toGroupResponse(g model.Group) GroupResponse {
	return GroupResponse{Name: g.Name, Category: g.Category, Numbers: g.Numbers}
}

