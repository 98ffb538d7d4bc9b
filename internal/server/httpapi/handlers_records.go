package httpapi

import (
	"net/http"

	"github.com/aureapp/aure/internal/api"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	jobs, err := s.records.ListJobs(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	s.metrics.RecordRecordFetch("jobs")

	out := make([]api.Job, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toAPIJob(j))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req api.Job
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := s.records.CreateJob(r.Context(), UserIDFromContext(r.Context()), fromAPIJob(&req))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAPIJob(created))
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	var req api.Job
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := s.records.UpdateJob(r.Context(), UserIDFromContext(r.Context()), fromAPIJob(&req)); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	if err := s.records.DeleteJob(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAllJobs(w http.ResponseWriter, r *http.Request) {
	if err := s.records.DeleteAllJobs(r.Context(), UserIDFromContext(r.Context())); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	payments, err := s.records.ListPayments(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	s.metrics.RecordRecordFetch("payments")

	out := make([]api.Payment, 0, len(payments))
	for _, p := range payments {
		out = append(out, toAPIPayment(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req api.Payment
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := s.records.CreatePayment(r.Context(), UserIDFromContext(r.Context()), fromAPIPayment(&req))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAPIPayment(created))
}

func (s *Server) handleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	var req api.Payment
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := s.records.UpdatePayment(r.Context(), UserIDFromContext(r.Context()), fromAPIPayment(&req)); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	if err := s.records.DeletePayment(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAllPayments(w http.ResponseWriter, r *http.Request) {
	if err := s.records.DeleteAllPayments(r.Context(), UserIDFromContext(r.Context())); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListAgencies(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	agencies, err := s.records.ListAgencies(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	s.metrics.RecordRecordFetch("agencies")

	out := make([]api.Agency, 0, len(agencies))
	for _, a := range agencies {
		out = append(out, toAPIAgency(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateAgency(w http.ResponseWriter, r *http.Request) {
	var req api.Agency
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := s.records.CreateAgency(r.Context(), UserIDFromContext(r.Context()), fromAPIAgency(&req))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAPIAgency(created))
}

func (s *Server) handleUpdateAgency(w http.ResponseWriter, r *http.Request) {
	var req api.Agency
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := s.records.UpdateAgency(r.Context(), UserIDFromContext(r.Context()), fromAPIAgency(&req)); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAgency(w http.ResponseWriter, r *http.Request) {
	if err := s.records.DeleteAgency(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAllAgencies(w http.ResponseWriter, r *http.Request) {
	if err := s.records.DeleteAllAgencies(r.Context(), UserIDFromContext(r.Context())); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
