package quoterepo

import (
	"context"
	"errors"
	"time"

	"etching/internal/core/domain/model/kernel"
	"etching/internal/core/domain/model/quote"
	"etching/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormQuoteRepository stores quotes in postgres.
type GormQuoteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormQuoteRepository binds the repository to db and reports writes to tracker.
func NewGormQuoteRepository(db *gorm.DB, tracker aggregateTracker) *GormQuoteRepository {
	return &GormQuoteRepository{db: db, tracker: tracker}
}

// Add inserts the quote with version 1.
func (r *GormQuoteRepository) Add(ctx context.Context, aggregate *quote.Quote) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("quote already exists", err)
		}
		return err
	}

	aggregate.MarkPersisted(dto.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the quote when the stored version still matches. A missing
// row is an errs.ErrObjectNotFound.
func (r *GormQuoteRepository) Update(ctx context.Context, aggregate *quote.Quote) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&QuoteDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var n int64
		if err := r.db.WithContext(ctx).Model(&QuoteDTO{}).Where("id = ?", dto.ID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return errs.NewVersionIsInvalidError("quote " + aggregate.ID().String())
		}
		return errs.NewObjectNotFoundError("quote", aggregate.ID().String())
	}

	aggregate.MarkPersisted(dto.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads a quote or returns an errs.ErrObjectNotFound.
func (r *GormQuoteRepository) Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto QuoteDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("quote", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllExpirable selects open quotes past valid_until, oldest window first.
func (r *GormQuoteRepository) GetAllExpirable(ctx context.Context, now time.Time, limit int) ([]*quote.Quote, error) {
	statuses := make([]string, 0, len(quote.ExpirableStatuses()))
	for _, s := range quote.ExpirableStatuses() {
		statuses = append(statuses, s.String())
	}

	var dtos []QuoteDTO
	err := r.db.WithContext(ctx).
		Where("status IN ? AND valid_until <= ?", statuses, now.UTC()).
		Order("valid_until").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	quotes := make([]*quote.Quote, 0, len(dtos))
	for _, dto := range dtos {
		q, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}

	return quotes, nil
}
