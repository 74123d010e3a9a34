package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vbonduro/spotshare/internal/domain"
	"github.com/vbonduro/spotshare/internal/images"
)

// spotRepository is the subset of store.Collection[domain.Spot] that
// SpotService requires.
type spotRepository interface {
	ReadAll(ctx context.Context) []domain.Spot
	Find(ctx context.Context, key string) (domain.Spot, error)
	Append(ctx context.Context, record domain.Spot) error
	UpsertByKey(ctx context.Context, key string, fn func(*domain.Spot) error) (domain.Spot, error)
	DeleteByKey(ctx context.Context, key string) (domain.Spot, error)
}

// stringSetRepository is the subset of store.StringSet used for categories
// and areas.
type stringSetRepository interface {
	List(ctx context.Context) []string
	AddUnique(ctx context.Context, value string) ([]string, error)
}

// imageManager is the subset of images.Manager that SpotService requires.
type imageManager interface {
	Store(ctx context.Context, payload, recordID string) (string, error)
	Remove(ctx context.Context, reference string) error
}

type Options struct {
	NewID IDGenerator
	Now   func() time.Time
	// PruneImages deletes a Spot's image file when the Spot is deleted or
	// its image is replaced under a different filename. Off by default:
	// orphaned files are kept.
	PruneImages bool
	// Pick returns an index in [0, n) for LuckyDraw.
	Pick func(n int) int
}

var luckyMessages = []string{
	"命运的齿轮开始转动了！",
	"让我康康今天去哪里浪~",
	"闭上眼睛，跟着感觉走！",
	"这个选择，绝了！",
	"恭喜你，抽中了快乐！",
	"就决定是你了！",
	"今天就去这里吧，不许反悔哦~",
	"缘分让我们相遇在这里！",
}

type SpotService struct {
	spots      spotRepository
	categories stringSetRepository
	areas      stringSetRepository
	images     imageManager
	validate   *validator.Validate
	opts       Options
	logger     *slog.Logger
}

func NewSpotService(
	spots spotRepository,
	categories stringSetRepository,
	areas stringSetRepository,
	images imageManager,
	opts Options,
	logger *slog.Logger,
) *SpotService {
	if opts.NewID == nil {
		opts.NewID = UUIDs()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Pick == nil {
		opts.Pick = rand.IntN
	}
	return &SpotService{
		spots:      spots,
		categories: categories,
		areas:      areas,
		images:     images,
		validate:   newValidator(),
		opts:       opts,
		logger:     logger,
	}
}

// ListSpots returns spots newest-first. Storage read failures yield an empty
// list.
func (s *SpotService) ListSpots(ctx context.Context, filter domain.SpotFilter) []*domain.Spot {
	records := s.spots.ReadAll(ctx)
	out := make([]*domain.Spot, 0, len(records))
	for i := range records {
		if matches(&records[i], filter) {
			out = append(out, &records[i])
		}
	}
	return out
}

func (s *SpotService) GetSpot(ctx context.Context, id string) (*domain.Spot, error) {
	spot, err := s.spots.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &spot, nil
}

// CreateSpot validates in, stores its image payload if any and prepends the
// new spot. Nothing is written when validation fails.
func (s *SpotService) CreateSpot(ctx context.Context, in domain.SpotInput) (*domain.Spot, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	spot := domain.Spot{
		ID:        s.opts.NewID(),
		CreatedAt: domain.FormatTime(s.opts.Now()),
	}
	applyInput(&spot, in)
	spot.Image = ""

	switch {
	case images.IsPayload(in.Image):
		ref, err := s.images.Store(ctx, in.Image, spot.ID)
		if err != nil && !errors.Is(err, domain.ErrValidation) {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		if err != nil {
			s.logger.Warn("ignoring malformed image payload", "spot_id", spot.ID, "error", err)
		}
		spot.Image = ref
	case in.Image != "":
		s.logger.Warn("ignoring non-payload image on create", "spot_id", spot.ID)
	}

	if err := s.spots.Append(ctx, spot); err != nil {
		return nil, fmt.Errorf("failed to create spot: %w", err)
	}
	s.logger.Info("spot created", "spot_id", spot.ID, "category", spot.Category, "has_image", spot.Image != "")
	return &spot, nil
}

// UpdateSpot replaces every field of the spot with in, except the image:
// a payload is stored anew (a malformed one clears the reference), any
// other non-empty string is kept verbatim as the reference and an empty
// string leaves the current image in place.
func (s *SpotService) UpdateSpot(ctx context.Context, id string, in domain.SpotInput) (*domain.Spot, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	var previousImage string
	updated, err := s.spots.UpsertByKey(ctx, id, func(spot *domain.Spot) error {
		previousImage = spot.Image
		image := spot.Image
		switch {
		case images.IsPayload(in.Image):
			ref, err := s.images.Store(ctx, in.Image, spot.ID)
			switch {
			case errors.Is(err, domain.ErrValidation):
				s.logger.Warn("malformed image payload clears image", "spot_id", spot.ID, "error", err)
			case err != nil:
				return fmt.Errorf("failed to store image: %w", err)
			}
			image = ref
		case in.Image != "":
			image = in.Image
		}
		applyInput(spot, in)
		spot.Image = image
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update spot %s: %w", id, err)
	}

	if s.opts.PruneImages && previousImage != "" && previousImage != updated.Image {
		s.removeImage(ctx, id, previousImage)
	}
	s.logger.Info("spot updated", "spot_id", id)
	return &updated, nil
}

// DeleteSpot removes the spot. Its image file is left behind unless
// PruneImages is set.
func (s *SpotService) DeleteSpot(ctx context.Context, id string) error {
	removed, err := s.spots.DeleteByKey(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete spot %s: %w", id, err)
	}
	if s.opts.PruneImages && removed.Image != "" {
		s.removeImage(ctx, id, removed.Image)
	}
	s.logger.Info("spot deleted", "spot_id", id)
	return nil
}

// LuckyDraw picks a random spot, optionally limited to one category, along
// with a cheer message.
func (s *SpotService) LuckyDraw(ctx context.Context, category string) (*domain.Spot, string, error) {
	pool := s.ListSpots(ctx, domain.SpotFilter{Category: category})
	if len(pool) == 0 {
		return nil, "", fmt.Errorf("no spots to draw from: %w", domain.ErrNotFound)
	}
	spot := pool[s.opts.Pick(len(pool))]
	message := luckyMessages[s.opts.Pick(len(luckyMessages))]
	return spot, message, nil
}

// Stats counts spots per category and per district in first-seen order,
// walking the list newest-first.
func (s *SpotService) Stats(ctx context.Context) *domain.Stats {
	records := s.spots.ReadAll(ctx)
	byCategory := newCounter()
	byDistrict := newCounter()
	for _, r := range records {
		byCategory.add(r.Category)
		byDistrict.add(r.District)
	}
	return &domain.Stats{
		Total:      len(records),
		Categories: len(byCategory.counts),
		Districts:  len(byDistrict.counts),
		ByCategory: byCategory.counts,
		ByDistrict: byDistrict.counts,
	}
}

func (s *SpotService) ListCategories(ctx context.Context) []string {
	return s.categories.List(ctx)
}

func (s *SpotService) AddCategory(ctx context.Context, name string) ([]string, error) {
	return addToSet(ctx, s.categories, "category", name)
}

func (s *SpotService) ListAreas(ctx context.Context) []string {
	return s.areas.List(ctx)
}

func (s *SpotService) AddArea(ctx context.Context, name string) ([]string, error) {
	return addToSet(ctx, s.areas, "area", name)
}

// Districts returns the known cities and their districts.
func (s *SpotService) Districts() ([]string, map[string][]string) {
	return domain.Cities, domain.Districts
}

func (s *SpotService) validateInput(in domain.SpotInput) error {
	if err := s.validate.Struct(in); err != nil {
		return toValidationError(err)
	}
	return nil
}

func (s *SpotService) removeImage(ctx context.Context, id, reference string) {
	if err := s.images.Remove(ctx, reference); err != nil {
		s.logger.Error("failed to prune image", "spot_id", id, "image", reference, "error", err)
	}
}

func addToSet(ctx context.Context, set stringSetRepository, field, value string) ([]string, error) {
	if strings.TrimSpace(value) == "" {
		return nil, domain.NewValidationError(field, "is required")
	}
	values, err := set.AddUnique(ctx, value)
	if err != nil {
		return nil, fmt.Errorf("failed to add %s: %w", field, err)
	}
	return values, nil
}

func applyInput(spot *domain.Spot, in domain.SpotInput) {
	spot.Category = in.Category
	spot.Name = in.Name
	spot.Type = in.Type
	spot.City = in.City
	spot.District = in.District
	spot.Location = in.Location
	spot.AveragePrice = in.AveragePrice
	spot.Review = in.Review
}

func matches(spot *domain.Spot, filter domain.SpotFilter) bool {
	if filter.Category != "" && filter.Category != "all" && spot.Category != filter.Category {
		return false
	}
	if filter.Query == "" {
		return true
	}
	q := strings.ToLower(filter.Query)
	for _, field := range []string{spot.Name, spot.City, spot.District, spot.Location, spot.Review} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

type counter struct {
	index  map[string]int
	counts []domain.Count
}

func newCounter() *counter {
	return &counter{index: make(map[string]int), counts: []domain.Count{}}
}

func (c *counter) add(label string) {
	if i, ok := c.index[label]; ok {
		c.counts[i].Count++
		return
	}
	c.index[label] = len(c.counts)
	c.counts = append(c.counts, domain.Count{Label: label, Count: 1})
}
