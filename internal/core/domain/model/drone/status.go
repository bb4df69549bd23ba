package drone

import (
	"fmt"
	"strings"

	"foodfast/internal/pkg/errs"
)

// Status is the operational state of a drone. Only Active drones are eligible
// for reservation.
type Status int

const (
	Unknown Status = iota
	Active
	Maintenance
	Charging
	Unavailable
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "unknown",
		Active:      "active",
		Maintenance: "maintenance",
		Charging:    "charging",
		Unavailable: "unavailable",
	}
}

// ParseStatus converts a wire name into a Status, case-insensitively.
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"drone status is invalid",
		fmt.Errorf("%q is not a valid drone status", s),
	)
}

func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("drone status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("drone status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
