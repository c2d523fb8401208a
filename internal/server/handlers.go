package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/trialviz/axisgoat/internal/axis"
	"github.com/trialviz/axisgoat/internal/metadata"
	"github.com/trialviz/axisgoat/internal/resolve"
	"github.com/trialviz/axisgoat/internal/store"
)

const maxBodyBytes = 1 << 20

type HealthResponse struct {
	Status        string `json:"status"`
	StudiesCount  int    `json:"studies_count"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	studies, err := s.store.ListStudies(r.Context())
	if err != nil {
		s.log.Error("health check failed", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, HealthResponse{
		Status:        "ok",
		StudiesCount:  len(studies),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
	})
}

// ViewResponse summarises the selection rules of a view.
type ViewResponse struct {
	View        axis.ViewID `json:"view"`
	Legacy      bool        `json:"legacy"`
	NoneOption  bool        `json:"none_option"`
	XOngoing    []string    `json:"x_ongoing"`
	XCompleted  []string    `json:"x_completed,omitempty"`
	Y           []string    `json:"y"`
	YTimepoints []string    `json:"y_timepoints,omitempty"`
}

func (s *Server) handleViews(w http.ResponseWriter, r *http.Request) {
	var response []ViewResponse
	for _, v := range axis.AllViews() {
		p := axis.PolicyFor(v)
		response = append(response, ViewResponse{
			View:        v,
			Legacy:      p.Legacy,
			NoneOption:  p.NoneOption,
			XOngoing:    p.XOngoing,
			XCompleted:  p.XCompleted,
			Y:           p.Y,
			YTimepoints: p.YTimepointKeys,
		})
	}
	writeJSON(w, response)
}

type StudyResponse struct {
	Name      string        `json:"name"`
	Ongoing   bool          `json:"ongoing"`
	Views     []axis.ViewID `json:"views"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (s *Server) handleStudies(w http.ResponseWriter, r *http.Request) {
	studies, err := s.store.ListStudies(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	// Return empty array instead of null
	response := []StudyResponse{}
	for _, st := range studies {
		response = append(response, StudyResponse{
			Name:      st.Name,
			Ongoing:   st.Ongoing,
			Views:     st.Views,
			UpdatedAt: st.UpdatedAt,
		})
	}
	writeJSON(w, response)
}

func (s *Server) handleStudyDefaults(w http.ResponseWriter, r *http.Request) {
	results, err := s.resolver.StudyDefaults(r.Context(), r.PathValue("study"), s.workers)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, results)
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	req, ok := s.parseRequest(w, r)
	if !ok {
		return
	}

	opts, err := s.resolver.Options(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if opts == nil {
		opts = []axis.DisplayableOption{}
	}
	writeJSON(w, opts)
}

func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	req, ok := s.parseRequest(w, r)
	if !ok {
		return
	}

	d, err := s.resolver.Default(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, d)
}

func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	req, ok := s.parseRequest(w, r)
	if !ok {
		return
	}
	sel, ok := readSelection(w, r)
	if !ok {
		return
	}

	opt, err := s.resolver.Reconcile(r.Context(), req, sel)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, opt)
}

// handleSetting reconciles the posted selection and returns the request
// setting an adapter would send. NONE yields 204.
func (s *Server) handleSetting(w http.ResponseWriter, r *http.Request) {
	req, ok := s.parseRequest(w, r)
	if !ok {
		return
	}
	sel, ok := readSelection(w, r)
	if !ok {
		return
	}

	opt, err := s.resolver.Reconcile(r.Context(), req, sel)
	if err != nil {
		s.writeError(w, err)
		return
	}

	setting, ok := opt.Setting()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, setting)
}

func (s *Server) parseRequest(w http.ResponseWriter, r *http.Request) (resolve.Request, bool) {
	view, err := axis.ParseViewID(r.PathValue("view"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return resolve.Request{}, false
	}
	a, err := metadata.ParseAxis(r.URL.Query().Get("axis"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return resolve.Request{}, false
	}
	return resolve.Request{Study: r.PathValue("study"), View: view, Axis: a}, true
}

func readSelection(w http.ResponseWriter, r *http.Request) (axis.SelectedOption, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return axis.SelectedOption{}, false
	}
	sel, err := metadata.ParseSelection(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return axis.SelectedOption{}, false
	}
	return sel, true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, metadata.ErrInvalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		s.log.Error("request failed", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
