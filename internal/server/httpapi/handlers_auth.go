package httpapi

import (
	"net/http"

	"github.com/aureapp/aure/internal/api"
)

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req api.SignUpRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, pair, err := s.users.SignUp(r.Context(), req.DisplayName, req.Email, []byte(req.Password))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.Session{
		User:      toAPIUser(user),
		TokenPair: api.TokenPair{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken},
	})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req api.SignInRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, pair, err := s.users.SignIn(r.Context(), req.Email, []byte(req.Password))
	if err != nil {
		s.metrics.RecordSignIn(false)
		writeError(w, err)
		return
	}
	s.metrics.RecordSignIn(true)

	writeJSON(w, http.StatusOK, api.Session{
		User:      toAPIUser(user),
		TokenPair: api.TokenPair{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken},
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req api.RefreshRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "refresh_token is required"})
		return
	}

	pair, err := s.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.TokenPair{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// handleSession is the endpoint the client's periodic validator polls.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.CheckSession(r.Context(), UserIDFromContext(r.Context()), SessionIDFromContext(r.Context()))
	if err != nil {
		s.metrics.RecordSessionCheck(false)
		writeError(w, err)
		return
	}
	s.metrics.RecordSessionCheck(true)

	writeJSON(w, http.StatusOK, toAPIUser(user))
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	err := s.users.SignOut(r.Context(), UserIDFromContext(r.Context()), SessionIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
