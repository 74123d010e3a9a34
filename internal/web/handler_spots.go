package web

import (
	"net/http"

	"github.com/vbonduro/spotshare/internal/domain"
)

func (s *Server) handleListSpots(w http.ResponseWriter, r *http.Request) {
	filter := domain.SpotFilter{
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
	}
	spots := s.service.ListSpots(r.Context(), filter)
	s.respond(w, http.StatusOK, map[string]any{"spots": spots})
}

func (s *Server) handleGetSpot(w http.ResponseWriter, r *http.Request) {
	spot, err := s.service.GetSpot(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]any{"spot": spot})
}

func (s *Server) handleCreateSpot(w http.ResponseWriter, r *http.Request) {
	var in domain.SpotInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	spot, err := s.service.CreateSpot(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]any{"spot": spot})
}

func (s *Server) handleUpdateSpot(w http.ResponseWriter, r *http.Request) {
	var in domain.SpotInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	spot, err := s.service.UpdateSpot(r.Context(), r.PathValue("id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]any{"spot": spot})
}

func (s *Server) handleDeleteSpot(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteSpot(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleLuckyDraw(w http.ResponseWriter, r *http.Request) {
	spot, message, err := s.service.LuckyDraw(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]any{"spot": spot, "message": message})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, s.service.Stats(r.Context()))
}
