// Package postgres provides the GORM-based unit of work and the database
// plumbing (connections for PostgreSQL and SQLite, embedded migrations) behind
// the lifecycle engine.
//
// A unit of work binds the order, drone and reservation repositories to one
// transaction. Orders written through it are tracked and, once the transaction
// commits, announced through the order event publisher.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.ReservationRepository().Claim(ctx, reservation); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides an isolated transaction
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Lost races surface as errs.VersionConflictError from the repositories
package postgres

import (
	"context"

	"foodfast/internal/adapters/out/postgres/dronerepo"
	"foodfast/internal/adapters/out/postgres/orderrepo"
	"foodfast/internal/adapters/out/postgres/reservationrepo"
	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/core/domain/model/order"
	"foodfast/internal/core/ports"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.OrderEventPublisher
	logger    zerolog.Logger
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based units of work.
// publisher may be nil, in which case nothing is announced after commit.
func NewGormUnitOfWorkFactory(
	db *gorm.DB,
	publisher ports.OrderEventPublisher,
	logger zerolog.Logger,
) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With().Str("component", "unit_of_work").Logger(),
	}
}

// Create produces a new UnitOfWork with its own transaction state and tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the orders
// written within it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.OrderEventPublisher
	logger            zerolog.Logger
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it twice does not nest transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalises the transaction and then publishes an order-changed event
// for every tracked order. Publication failures are logged, never returned:
// the write has already happened.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.publishTracked(ctx)
	return nil
}

// Rollback discards the transaction and whatever was tracked in it.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) DroneRepository() ports.DroneRepository {
	return dronerepo.NewGormDroneRepository(uow.conn())
}

func (uow *GormUnitOfWork) ReservationRepository() ports.ReservationRepository {
	return reservationrepo.NewGormReservationRepository(uow.conn())
}

// TrackAggregate registers an aggregate written within this unit of work.
// A later write of the same aggregate replaces the earlier entry.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	for i, tracked := range uow.trackedAggregates {
		if tracked.ID.IsEqual(id) {
			uow.trackedAggregates[i].Aggregate = aggregate
			return
		}
	}

	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publishTracked(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)

	if uow.publisher == nil {
		return
	}

	for _, t := range tracked {
		o, ok := t.Aggregate.(*order.Order)
		if !ok {
			continue
		}

		if err := uow.publisher.PublishOrderChanged(ctx, o); err != nil {
			uow.logger.Error().
				Err(err).
				Stringer("order_id", o.ID()).
				Str("status", o.Status().String()).
				Msg("failed to publish order change")
		}
	}
}
