package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/vbonduro/spotshare/internal/domain"
	"github.com/vbonduro/spotshare/internal/photostore"
)

const (
	// URLPrefix is prepended to stored filenames to form asset references.
	URLPrefix = "/api/images/"
	// CacheControl is served with every image. Filenames derive from record
	// ids, so a given name is treated as stable.
	CacheControl = "public, max-age=31536000, immutable"
)

var payloadPattern = regexp.MustCompile(`^data:image/(\w+);base64,(.+)$`)

// Manager turns data-URL payloads into stored files named
// <recordID>.<subtype> and serves them back.
type Manager struct {
	stg    photostore.PhotoStore
	logger *slog.Logger
}

func NewManager(stg photostore.PhotoStore, logger *slog.Logger) *Manager {
	return &Manager{stg: stg, logger: logger}
}

// IsPayload reports whether s is meant as an inline image rather than a
// reference to a stored one.
func IsPayload(s string) bool {
	return strings.HasPrefix(s, "data:image")
}

// ParsePayload splits a data:image/<subtype>;base64,<body> string.
func ParsePayload(payload string) (string, []byte, error) {
	m := payloadPattern.FindStringSubmatch(payload)
	if m == nil {
		return "", nil, domain.NewValidationError("image", "is not a base64 image data URL")
	}
	subtype, body := m[1], m[2]

	data, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(body, "="))
	}
	if err != nil {
		return "", nil, domain.NewValidationError("image", "has an invalid base64 body")
	}
	return subtype, data, nil
}

// Store writes the decoded payload as <recordID>.<subtype>, replacing any
// file of that name, and returns its reference. A malformed payload returns
// an empty reference and a validation error.
func (m *Manager) Store(ctx context.Context, payload, recordID string) (string, error) {
	subtype, data, err := ParsePayload(payload)
	if err != nil {
		return "", err
	}

	filename := recordID + "." + subtype
	if err := m.stg.Save(ctx, filename, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("%w: failed to save image %s: %w", domain.ErrStorage, filename, err)
	}
	m.logger.Debug("image stored", "filename", filename, "bytes", len(data))
	return URLPrefix + filename, nil
}

func (m *Manager) Retrieve(ctx context.Context, filename string) (io.ReadCloser, string, error) {
	return m.stg.Get(ctx, filename)
}

// Remove deletes the file behind reference. References that do not point
// into the image store, and files already gone, are ignored.
func (m *Manager) Remove(ctx context.Context, reference string) error {
	filename, ok := FilenameFromReference(reference)
	if !ok {
		return nil
	}
	if err := m.stg.Delete(ctx, filename); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to remove image %s: %w", filename, err)
	}
	m.logger.Debug("image removed", "filename", filename)
	return nil
}

// FilenameFromReference extracts the stored filename from a reference
// produced by Store.
func FilenameFromReference(reference string) (string, bool) {
	filename, ok := strings.CutPrefix(reference, URLPrefix)
	if !ok || filename == "" || strings.Contains(filename, "/") {
		return "", false
	}
	return filename, true
}
