package drone

import (
	"errors"
	"fmt"
	"strings"

	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/pkg/errs"
	"foodfast/internal/pkg/guard"
)

const (
	// MinBattery and MaxBattery bound the battery level in percent.
	MinBattery = 0
	MaxBattery = 100

	codePrefix = "DR-"
)

var (
	// ErrDroneIsNotConstructed is returned when using an improperly initialized Drone.
	ErrDroneIsNotConstructed = errors.New("Drone must be created via NewDrone constructor")
)

// Drone is a delivery drone of the fleet.
//
// Business rules:
//   - id is valid and code is never empty
//   - battery stays within [MinBattery, MaxBattery]
//   - delivery counters and distance are never negative
//   - dailyDeliveries never exceeds totalDeliveries
type Drone struct {
	id              kernel.UUID
	code            string
	status          Status
	battery         int
	dailyDeliveries int
	totalDeliveries int
	distance        float64
	guard           guard.ConstructorGuard
}

// NewDrone registers a drone with the fleet defaults: Active, full battery and
// zeroed counters. An empty code is replaced by a generated "DR-XXXXXXXX" code.
func NewDrone(id kernel.UUID, code string) (*Drone, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	code = strings.TrimSpace(code)
	if code == "" {
		code = GenerateCode(id)
	}

	return &Drone{
		id:      id,
		code:    code,
		status:  Active,
		battery: MaxBattery,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// RestoreDrone rebuilds a drone from persisted state.
func RestoreDrone(
	id kernel.UUID,
	code string,
	status Status,
	battery, dailyDeliveries, totalDeliveries int,
	distance float64,
) (*Drone, error) {
	d := &Drone{
		id:    id,
		code:  strings.TrimSpace(code),
		guard: guard.NewConstructorGuard(),
	}

	var codeErr error
	if d.code == "" {
		codeErr = errs.NewValueIsRequiredError("drone code")
	}

	if err := errors.Join(
		id.Validate(),
		codeErr,
		d.ChangeStatus(status),
		d.SetBattery(battery),
		d.SetDeliveries(dailyDeliveries, totalDeliveries),
		d.SetDistance(distance),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// GenerateCode derives a human code from the drone id.
func GenerateCode(id kernel.UUID) string {
	return codePrefix + strings.ToUpper(id.String()[:8])
}

func (d *Drone) Validate() error {
	if d == nil {
		return ErrDroneIsNotConstructed
	}
	return d.guard.Validate(ErrDroneIsNotConstructed)
}

func (d *Drone) IsEqual(other *Drone) bool {
	return other != nil && d.id.IsEqual(other.id)
}

func (d *Drone) ID() kernel.UUID {
	return d.id
}

func (d *Drone) Code() string {
	return d.code
}

func (d *Drone) Status() Status {
	return d.status
}

// IsActive reports whether the drone may be reserved.
func (d *Drone) IsActive() bool {
	return d.status == Active
}

func (d *Drone) Battery() int {
	return d.battery
}

func (d *Drone) DailyDeliveries() int {
	return d.dailyDeliveries
}

func (d *Drone) TotalDeliveries() int {
	return d.totalDeliveries
}

// Distance is the cumulative flown distance in kilometres.
func (d *Drone) Distance() float64 {
	return d.distance
}

// ChangeStatus sets the operational status.
func (d *Drone) ChangeStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

func (d *Drone) SetBattery(battery int) error {
	if battery < MinBattery || battery > MaxBattery {
		return errs.NewValueIsOutOfRangeError("battery", battery, MinBattery, MaxBattery)
	}
	d.battery = battery
	return nil
}

// SetDeliveries overwrites both delivery counters.
func (d *Drone) SetDeliveries(daily, total int) error {
	if daily < 0 || total < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveries is invalid",
			fmt.Errorf("daily %d and total %d must not be negative", daily, total),
		)
	}
	if daily > total {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveries is invalid",
			fmt.Errorf("daily %d exceeds total %d", daily, total),
		)
	}
	d.dailyDeliveries = daily
	d.totalDeliveries = total
	return nil
}

func (d *Drone) SetDistance(distance float64) error {
	if distance < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"distance is invalid",
			fmt.Errorf("%g is negative", distance),
		)
	}
	d.distance = distance
	return nil
}

// ResetDailyDeliveries zeroes the per-day counter at the start of a new day.
func (d *Drone) ResetDailyDeliveries() {
	d.dailyDeliveries = 0
}
