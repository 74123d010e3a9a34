package web

import (
	"net/http"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]any{"categories": s.service.ListCategories(r.Context())})
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Category string `json:"category"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	categories, err := s.service.AddCategory(r.Context(), body.Category)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) handleListAreas(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]any{"areas": s.service.ListAreas(r.Context())})
}

func (s *Server) handleAddArea(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Area string `json:"area"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	areas, err := s.service.AddArea(r.Context(), body.Area)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]any{"areas": areas})
}

func (s *Server) handleDistricts(w http.ResponseWriter, _ *http.Request) {
	cities, districts := s.service.Districts()
	s.respond(w, http.StatusOK, map[string]any{"cities": cities, "districts": districts})
}
