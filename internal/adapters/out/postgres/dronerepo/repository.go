package dronerepo

import (
	"context"
	"errors"
	"strings"

	"foodfast/internal/adapters/out/postgres/conflict"
	"foodfast/internal/core/domain/model/drone"
	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDroneRepository implements ports.DroneRepository using GORM.
type GormDroneRepository struct {
	db *gorm.DB
}

func NewGormDroneRepository(db *gorm.DB) *GormDroneRepository {
	return &GormDroneRepository{db: db}
}

func (r *GormDroneRepository) Add(ctx context.Context, aggregate *drone.Drone) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if conflict.IsDuplicate(err) {
			return errs.NewValueIsInvalidErrorWithCause("drone code is already taken", err)
		}
		return err
	}

	return nil
}

func (r *GormDroneRepository) Update(ctx context.Context, aggregate *drone.Drone) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DroneDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":           dto.Status,
			"battery":          dto.Battery,
			"daily_deliveries": dto.DailyDeliveries,
			"total_deliveries": dto.TotalDeliveries,
			"distance":         dto.Distance,
		})
	if result.Error != nil {
		return conflict.Translate(result.Error, "drone", aggregate.ID().String(), 0)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("drone", aggregate.ID().String())
	}

	return nil
}

func (r *GormDroneRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&DroneDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return conflict.Translate(result.Error, "drone", id.String(), 0)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("drone", id.String())
	}

	return nil
}

func (r *GormDroneRepository) Get(ctx context.Context, id kernel.UUID) (*drone.Drone, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DroneDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("drone", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByRef looks the drone up by id when ref parses as one, otherwise by code.
func (r *GormDroneRepository) GetByRef(ctx context.Context, ref string) (*drone.Drone, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errs.NewValueIsRequiredError("drone ref")
	}

	query := r.db.WithContext(ctx)
	if id, err := kernel.UUIDFromString(ref); err == nil {
		query = query.Where("id = ?", id.Bytes())
	} else {
		query = query.Where("code = ?", ref)
	}

	var dto DroneDTO
	if err := query.First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("drone", ref)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormDroneRepository) GetAll(ctx context.Context) ([]*drone.Drone, error) {
	var dtos []DroneDTO
	if err := r.db.WithContext(ctx).Order("code, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	drones := make([]*drone.Drone, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		drones = append(drones, d)
	}

	return drones, nil
}

func (r *GormDroneRepository) ResetDailyDeliveries(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&DroneDTO{}).
		Where("daily_deliveries <> ?", 0).
		Update("daily_deliveries", 0)
	return result.RowsAffected, result.Error
}
