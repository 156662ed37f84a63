package quoterepo

import (
	"time"

	"etching/internal/core/domain/model/kernel"
	"etching/internal/core/domain/model/quote"

	"github.com/google/uuid"
)

// QuoteDTO is the quotes table row.
type QuoteDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID            uuid.UUID `gorm:"type:uuid;not null;index"`
	VendorID           uuid.UUID `gorm:"type:uuid;not null;index"`
	AmountCents        int64     `gorm:"not null"`
	CounterAmountCents *int64
	ValidUntil         time.Time `gorm:"not null;index"`
	Status             string    `gorm:"type:varchar(32);not null;index"`
	Version            int       `gorm:"not null;default:1"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName pins the table name for gorm.
func (QuoteDTO) TableName() string {
	return "quotes"
}

func fromDomain(q *quote.Quote) QuoteDTO {
	return QuoteDTO{
		ID:                 q.ID().Bytes(),
		OrderID:            q.OrderID().Bytes(),
		VendorID:           q.VendorID().Bytes(),
		AmountCents:        q.AmountCents(),
		CounterAmountCents: q.CounterAmountCents(),
		ValidUntil:         q.ValidUntil(),
		Status:             q.Status().String(),
		Version:            q.Version(),
	}
}

func toDomain(dto QuoteDTO) (*quote.Quote, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}

	return quote.RestoreQuote(quote.RestoreParams{
		ID:                 id,
		OrderID:            orderID,
		VendorID:           vendorID,
		AmountCents:        dto.AmountCents,
		CounterAmountCents: dto.CounterAmountCents,
		ValidUntil:         dto.ValidUntil,
		Status:             quote.Status(dto.Status),
		Version:            dto.Version,
	})
}
