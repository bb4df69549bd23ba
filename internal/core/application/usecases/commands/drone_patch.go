package commands

import (
	"errors"

	"foodfast/internal/core/domain/model/drone"
)

// DronePatch lists the fleet attributes an operator may set. Nil fields are left untouched.
type DronePatch struct {
	Status          *drone.Status
	Battery         *int
	DailyDeliveries *int
	TotalDeliveries *int
	Distance        *float64
}

func (p DronePatch) IsEmpty() bool {
	return p.Status == nil && p.Battery == nil && p.DailyDeliveries == nil &&
		p.TotalDeliveries == nil && p.Distance == nil
}

// apply writes the patch onto d and reports whether the drone status changed.
func (p DronePatch) apply(d *drone.Drone) (bool, error) {
	statusChanged := false
	var errList []error

	if p.Status != nil {
		statusChanged = *p.Status != d.Status()
		errList = append(errList, d.ChangeStatus(*p.Status))
	}
	if p.Battery != nil {
		errList = append(errList, d.SetBattery(*p.Battery))
	}
	if p.DailyDeliveries != nil || p.TotalDeliveries != nil {
		daily, total := d.DailyDeliveries(), d.TotalDeliveries()
		if p.DailyDeliveries != nil {
			daily = *p.DailyDeliveries
		}
		if p.TotalDeliveries != nil {
			total = *p.TotalDeliveries
		}
		errList = append(errList, d.SetDeliveries(daily, total))
	}
	if p.Distance != nil {
		errList = append(errList, d.SetDistance(*p.Distance))
	}

	if err := errors.Join(errList...); err != nil {
		return false, err
	}
	return statusChanged, nil
}
