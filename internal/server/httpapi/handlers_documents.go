package httpapi

import (
	"net/http"

	"github.com/aureapp/aure/internal/api"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.documents.List(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]api.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, toAPIDocument(d))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleRequestUpload creates the metadata row and returns a presigned PUT
// URL. The client uploads directly to object storage and then confirms with
// handleMarkUploaded.
func (s *Server) handleRequestUpload(w http.ResponseWriter, r *http.Request) {
	var req api.UploadRequest
	if !decodeBody(w, r, &req) {
		return
	}

	doc, url, err := s.documents.RequestUpload(r.Context(),
		UserIDFromContext(r.Context()), req.FileName, req.ContentType, req.SizeBytes, req.Year)
	if err != nil {
		writeError(w, err)
		return
	}
	s.metrics.RecordDocumentUpload()

	writeJSON(w, http.StatusCreated, api.UploadResponse{Document: toAPIDocument(doc), URL: url})
}

func (s *Server) handleMarkUploaded(w http.ResponseWriter, r *http.Request) {
	if err := s.documents.MarkUploaded(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDownloadURL(w http.ResponseWriter, r *http.Request) {
	url, err := s.documents.DownloadURL(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.DownloadResponse{URL: url})
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.documents.Delete(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
