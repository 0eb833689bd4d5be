package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/naniedobe1/PoleBrothers/geo"
	"github.com/naniedobe1/PoleBrothers/models"
)

// Outcome reports what a write actually did. It replaces the old boolean
// that collapsed success, no-op and failure into one value.
type Outcome int

const (
	// OutcomeApplied means the write changed at least one row.
	OutcomeApplied Outcome = iota
	// OutcomeNoop means the call succeeded but matched zero rows. The
	// legacy behavior treated this as success; callers that only care
	// whether the call errored can treat Applied and Noop alike.
	OutcomeNoop
	// OutcomeFailed means the call itself errored.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeNoop:
		return "noop"
	default:
		return "failed"
	}
}

// Sort selects the list ordering.
type Sort string

const (
	SortRecent  Sort = "recent"
	SortOldest  Sort = "oldest"
	SortNearest Sort = "nearest"
)

// DefaultPageSize matches the mobile list view's page.
const DefaultPageSize = 20

// Store is the device-scoped metadata repository. Every operation is
// restricted to the taker_id the store was built with.
type Store struct {
	db      *gorm.DB
	takerID string
}

func NewStore(db *gorm.DB, takerID string) *Store {
	return &Store{db: db, takerID: takerID}
}

func (s *Store) TakerID() string { return s.takerID }

// InsertParams are the caller-supplied fields of a new pole record. A nil
// Location is recorded as 0/0; readers must treat 0/0 as "unknown", not as
// a real ocean coordinate.
type InsertParams struct {
	ImageURI        string
	Location        *geo.Point
	Status          models.PoleStatus
	LowerConfidence float64
	UpperConfidence float64
}

// InsertPole creates a pole record. created_at is assigned here, and the
// five boolean type columns are derived from Status so exactly one is true.
func (s *Store) InsertPole(ctx context.Context, p InsertParams) (models.Pole, error) {
	if p.ImageURI == "" {
		return models.Pole{}, errors.New("image uri is required")
	}
	if !p.Status.Valid() {
		return models.Pole{}, errors.New("invalid pole status: " + string(p.Status))
	}

	var lat, lon float64
	if p.Location != nil {
		lat = p.Location.Latitude
		lon = p.Location.Longitude
	}

	pole := models.Pole{
		TakerID:         s.takerID,
		CreatedAt:       time.Now().UTC(),
		Latitude:        lat,
		Longitude:       lon,
		ImageURI:        p.ImageURI,
		Status:          p.Status,
		LowerConfidence: p.LowerConfidence,
		UpperConfidence: p.UpperConfidence,
	}
	pole.SetFlags()

	if err := s.db.WithContext(ctx).Create(&pole).Error; err != nil {
		return models.Pole{}, err
	}
	return pole, nil
}

// ListQuery selects a page of poles. A nil or empty StatusFilter means no
// filter at all: "select none" is not expressible through this interface.
type ListQuery struct {
	Limit        int
	Offset       int
	Sort         Sort
	UserLocation *geo.Point
	StatusFilter []models.PoleStatus
}

// ListPoles returns one page of this device's records. End of data is
// signaled by a page shorter than Limit.
//
// SortNearest fetches the page in created_at DESC order and re-sorts only
// that page by distance to UserLocation. Pagination happens before the
// distance sort, so the ordering is per-page, not global. That is a known
// approximation carried over on purpose; fetching everything to sort
// globally would change the resource profile.
func (s *Store) ListPoles(ctx context.Context, q ListQuery) ([]models.Pole, error) {
	if q.Limit <= 0 {
		q.Limit = DefaultPageSize
	}

	query := s.db.WithContext(ctx).Where("taker_id = ?", s.takerID)

	if len(q.StatusFilter) > 0 {
		query = query.Where("status IN ?", q.StatusFilter)
	}

	switch q.Sort {
	case SortOldest:
		query = query.Order("created_at ASC")
	case SortRecent, SortNearest, "":
		query = query.Order("created_at DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var poles []models.Pole
	if err := query.Limit(q.Limit).Offset(q.Offset).Find(&poles).Error; err != nil {
		return nil, err
	}

	if q.Sort == SortNearest && q.UserLocation != nil {
		geo.SortByDistance(poles, *q.UserLocation)
	}
	return poles, nil
}

// DeleteByImageURI removes this device's record(s) carrying imageURI. One
// of two delete identities in use; see DeleteByCreatedAt for the other.
// Which one is authoritative is deliberately left to the caller.
func (s *Store) DeleteByImageURI(ctx context.Context, imageURI string) (Outcome, error) {
	res := s.db.WithContext(ctx).
		Where("taker_id = ? AND image_uri = ?", s.takerID, imageURI).
		Delete(&models.Pole{})
	return writeOutcome(res, "delete pole by image uri")
}

// DeleteByCreatedAt removes this device's record(s) created at the given
// instant.
func (s *Store) DeleteByCreatedAt(ctx context.Context, createdAt time.Time) (Outcome, error) {
	res := s.db.WithContext(ctx).
		Where("taker_id = ? AND created_at = ?", s.takerID, createdAt).
		Delete(&models.Pole{})
	return writeOutcome(res, "delete pole by created_at")
}

func writeOutcome(res *gorm.DB, op string) (Outcome, error) {
	if res.Error != nil {
		log.Printf("Error in %s: %v\n", op, res.Error)
		return OutcomeFailed, res.Error
	}
	if res.RowsAffected == 0 {
		return OutcomeNoop, nil
	}
	return OutcomeApplied, nil
}
