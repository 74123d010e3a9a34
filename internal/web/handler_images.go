package web

import (
	"errors"
	"io"
	"net/http"

	"github.com/vbonduro/spotshare/internal/domain"
	"github.com/vbonduro/spotshare/internal/images"
)

func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")

	reader, contentType, err := s.images.Retrieve(r.Context(), filename)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("read image failed", "filename", filename, "error", err)
		}
		s.respond(w, http.StatusNotFound, errorBody{Error: "not found"})
		return
	}
	defer closeWithLog(reader, "image reader", s.logger)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", images.CacheControl)
	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Error("write image failed", "filename", filename, "error", err)
	}
}
