package orderrepo

import (
	"time"

	"etching/internal/core/domain/model/kernel"
	"etching/internal/core/domain/model/order"
	"etching/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

// OrderDTO is the orders table row.
type OrderDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Status            string     `gorm:"type:varchar(32);not null;index"`
	PaymentType       string     `gorm:"type:varchar(8)"`
	TotalCents        int64      `gorm:"not null"`
	DownPaymentCents  int64      `gorm:"not null"`
	RemainingCents    int64      `gorm:"not null"`
	VendorID          *uuid.UUID `gorm:"type:uuid;index"`
	CostBasisCents    *int64
	ShippingAddress   string `gorm:"type:text"`
	ProductionStartAt *time.Time
	ShippedAt         *time.Time
	DeliveredAt       *time.Time
	PaymentDate       *time.Time
	StatusReason      string `gorm:"type:text"`
	Notes             string `gorm:"type:text"`
	Version           int    `gorm:"not null;default:1"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName pins the table name for gorm.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	var vendorID *uuid.UUID
	if id := o.VendorID(); id != nil {
		raw := id.Bytes()
		vendorID = &raw
	}

	return OrderDTO{
		ID:                o.ID().Bytes(),
		Status:            o.Status().String(),
		PaymentType:       o.PaymentType().String(),
		TotalCents:        o.TotalCents(),
		DownPaymentCents:  o.DownPaymentCents(),
		RemainingCents:    o.RemainingCents(),
		VendorID:          vendorID,
		CostBasisCents:    o.CostBasisCents(),
		ShippingAddress:   o.ShippingAddress(),
		ProductionStartAt: o.ProductionStartAt(),
		ShippedAt:         o.ShippedAt(),
		DeliveredAt:       o.DeliveredAt(),
		PaymentDate:       o.PaymentDate(),
		StatusReason:      o.StatusReason(),
		Notes:             o.Notes(),
		Version:           o.Version(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var vendorID *kernel.UUID
	if dto.VendorID != nil {
		vID, vendorErr := kernel.UUIDFromBytes((*dto.VendorID)[:])
		if vendorErr != nil {
			return nil, vendorErr
		}
		vendorID = &vID
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:                id,
		Status:            order.Status(dto.Status),
		PaymentType:       payment.Type(dto.PaymentType),
		TotalCents:        dto.TotalCents,
		VendorID:          vendorID,
		CostBasisCents:    dto.CostBasisCents,
		ShippingAddress:   dto.ShippingAddress,
		ProductionStartAt: utc(dto.ProductionStartAt),
		ShippedAt:         utc(dto.ShippedAt),
		DeliveredAt:       utc(dto.DeliveredAt),
		PaymentDate:       utc(dto.PaymentDate),
		StatusReason:      dto.StatusReason,
		Notes:             dto.Notes,
		Version:           dto.Version,
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
