package order

// Outcome tells a caller what happened to a requested status change.
type Outcome int

const (
	// Applied means the order moved to the requested status.
	Applied Outcome = iota + 1

	// Unchanged means the requested status equals the current one.
	Unchanged

	// Rejected means the transition is not allowed and the order kept its status.
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Unchanged:
		return "unchanged"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

var allowedTransitions = map[Status][]Status{
	Pending:   {Pending, Preparing, Cancelled},
	Preparing: {Preparing, Shipping, Cancelled},
	Shipping:  {Shipping, Delivered},
	Delivered: {Delivered},
	Cancelled: {Cancelled},
}

// Resolve returns the status an order in current ends up in when requested
// is asked for, together with the outcome. A request outside the allowed set
// resolves to current. Resolve is pure and never fails.
func Resolve(current, requested Status) (Status, Outcome) {
	for _, allowed := range allowedTransitions[current] {
		if allowed != requested {
			continue
		}
		if requested == current {
			return current, Unchanged
		}
		return requested, Applied
	}

	return current, Rejected
}

// CanTransition reports whether Resolve would accept requested from current.
func CanTransition(current, requested Status) bool {
	_, outcome := Resolve(current, requested)
	return outcome != Rejected
}
