package commands

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"foodfast/internal/pkg/errs"
	"foodfast/internal/pkg/guard"
)

// MaxNoteLength bounds the free-text note, in runes.
const MaxNoteLength = 1000

var ErrAddOrderNoteCommandIsNotConstructed = errors.New(
	"AddOrderNoteCommand must be created via NewAddOrderNoteCommand constructor",
)

// AddOrderNoteCommand replaces the note of an order. An empty note clears it.
type AddOrderNoteCommand struct { //nolint:recvcheck //using for validation
	orderRef string
	note     string

	guard guard.ConstructorGuard
}

func NewAddOrderNoteCommand(orderRef, note string) (AddOrderNoteCommand, error) {
	cmd := AddOrderNoteCommand{
		orderRef: strings.TrimSpace(orderRef),
		note:     note,
		guard:    guard.NewConstructorGuard(),
	}

	var errList []error
	if cmd.orderRef == "" {
		errList = append(errList, errs.NewValueIsRequiredError("order ref"))
	}
	if n := utf8.RuneCountInString(note); n > MaxNoteLength {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"note is invalid",
			fmt.Errorf("%d characters exceed the limit of %d", n, MaxNoteLength),
		))
	}
	if err := errors.Join(errList...); err != nil {
		return AddOrderNoteCommand{}, err
	}

	return cmd, nil
}

func (c AddOrderNoteCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderNoteCommandIsNotConstructed)
}

func (c AddOrderNoteCommand) OrderRef() string {
	return c.orderRef
}

func (c AddOrderNoteCommand) Note() string {
	return c.note
}
