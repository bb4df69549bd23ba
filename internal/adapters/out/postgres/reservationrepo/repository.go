package reservationrepo

import (
	"context"
	"errors"

	"foodfast/internal/adapters/out/postgres/conflict"
	"foodfast/internal/core/domain/model/drone"
	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/core/ports"
	"foodfast/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entity = "drone reservation"

// GormReservationRepository implements ports.ReservationRepository using GORM.
type GormReservationRepository struct {
	db *gorm.DB
}

func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

// Claim inserts the reservation. The drone row is read with a share lock first
// and must still be Active: a concurrent status change or delete either waits
// for the claim to commit or makes it fail. The insert fails on the drone_id
// key when another order holds the drone. Both cases are reported as a version
// conflict.
func (r *GormReservationRepository) Claim(ctx context.Context, reservation ports.Reservation) error {
	if err := errors.Join(reservation.DroneID.Validate(), reservation.OrderID.Validate()); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)

	var row struct{ Status string }
	err := db.Table("drones").
		Clauses(clause.Locking{Strength: clause.LockingStrengthShare}).
		Select("status").
		Where("id = ?", reservation.DroneID.Bytes()).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewVersionConflictError(entity, reservation.DroneID.String(), 0)
	}
	if err != nil {
		return conflict.Translate(err, entity, reservation.DroneID.String(), 0)
	}
	if row.Status != drone.Active.String() {
		return errs.NewVersionConflictError(entity, reservation.DroneID.String(), 0)
	}

	dto := fromDomain(reservation)
	if err = db.Create(&dto).Error; err != nil {
		return conflict.Translate(err, entity, reservation.DroneID.String(), 0)
	}

	return nil
}

func (r *GormReservationRepository) ReleaseByOrder(ctx context.Context, orderID kernel.UUID) error {
	return r.db.WithContext(ctx).Delete(&ReservationDTO{}, "order_id = ?", orderID.Bytes()).Error
}

func (r *GormReservationRepository) ReleaseByDrone(ctx context.Context, droneID kernel.UUID) error {
	return r.db.WithContext(ctx).Delete(&ReservationDTO{}, "drone_id = ?", droneID.Bytes()).Error
}

func (r *GormReservationRepository) HolderOf(ctx context.Context, droneID kernel.UUID) (kernel.UUID, bool, error) {
	var dto ReservationDTO
	err := r.db.WithContext(ctx).Where("drone_id = ?", droneID.Bytes()).Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return kernel.UUID{}, false, nil
	}
	if err != nil {
		return kernel.UUID{}, false, err
	}

	reservation, err := toDomain(dto)
	if err != nil {
		return kernel.UUID{}, false, err
	}

	return reservation.OrderID, true, nil
}

func (r *GormReservationRepository) GetAll(ctx context.Context) ([]ports.Reservation, error) {
	var dtos []ReservationDTO
	if err := r.db.WithContext(ctx).Order("drone_id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	reservations := make([]ports.Reservation, 0, len(dtos))
	for _, dto := range dtos {
		reservation, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}

	return reservations, nil
}

func (r *GormReservationRepository) ReplaceAll(ctx context.Context, reservations []ports.Reservation) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("1 = 1").Delete(&ReservationDTO{}).Error; err != nil {
		return err
	}

	if len(reservations) == 0 {
		return nil
	}

	dtos := make([]ReservationDTO, 0, len(reservations))
	for _, reservation := range reservations {
		dtos = append(dtos, fromDomain(reservation))
	}

	if err := db.CreateInBatches(&dtos, 100).Error; err != nil {
		return conflict.Translate(err, entity, "table", 0)
	}

	return nil
}
