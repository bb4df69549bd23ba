package orderrepo

import (
	"context"
	"errors"
	"strings"

	"foodfast/internal/adapters/out/postgres/conflict"
	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/core/domain/model/order"
	"foodfast/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker collects the orders written through a unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order. A taken id or code is reported as a conflict.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return conflict.Translate(err, "order", aggregate.Code(), aggregate.Version())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order only if the stored version is still the one it was
// loaded at, and bumps the stored version.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":           dto.Status,
			"drone_id":         dto.DroneID,
			"items":            dto.Items,
			"total":            dto.Total,
			"customer_email":   dto.CustomerEmail,
			"delivery_address": dto.DeliveryAddress,
			"note":             dto.Note,
			"version":          dto.Version + 1,
		})
	if result.Error != nil {
		return conflict.Translate(result.Error, "order", aggregate.Code(), aggregate.Version())
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) missingOrStale(ctx context.Context, aggregate *order.Order) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", aggregate.ID().Bytes()).Count(&count).Error
	if err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return errs.NewVersionConflictError("order", aggregate.Code(), aggregate.Version())
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByRef looks the order up by id when ref parses as one, then by code.
func (r *GormOrderRepository) GetByRef(ctx context.Context, ref string) (*order.Order, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errs.NewValueIsRequiredError("order ref")
	}

	id, parseErr := kernel.UUIDFromString(ref)

	query := r.db.WithContext(ctx).Where("code = ?", ref)
	if parseErr == nil {
		query = r.db.WithContext(ctx).Where("id = ? OR code = ?", id.Bytes(), ref)
	}

	var dtos []OrderDTO
	if err := query.Order("placed_at").Limit(2).Find(&dtos).Error; err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, errs.NewObjectNotFoundError("order", ref)
	}

	// An id match wins over a code that happens to look like an id.
	dto := dtos[0]
	for _, candidate := range dtos {
		if parseErr == nil && candidate.ID == id.Bytes() {
			dto = candidate
		}
	}

	return toDomain(dto)
}

// GetAllShipping returns the Shipping orders oldest first.
func (r *GormOrderRepository) GetAllShipping(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", order.Shipping.String()).
		Order("placed_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
