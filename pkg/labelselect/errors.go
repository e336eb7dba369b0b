package labelselect

import (
	"errors"

	lserrors "github.com/vango-dev/labelselect/internal/errors"
)

var (
	// ErrReservedIdentifier is wrapped by errors raised when an option uses
	// the reserved id "none".
	ErrReservedIdentifier = errors.New("labelselect: reserved identifier")

	// ErrInvalidArgument is wrapped by errors raised for bad setSelected
	// arguments.
	ErrInvalidArgument = errors.New("labelselect: invalid argument")
)

func reservedIDError(index int) error {
	return lserrors.New("LS001").
		WithDetailf("values[%d] uses id %q", index, NoneID).
		WithSuggestion(`Pick another id; "none" stands for the empty selection`).
		Wrap(ErrReservedIdentifier)
}

func notStringError(arg any) error {
	return lserrors.New("LS002").
		WithDetailf("got %T %v", arg, arg).
		Wrap(ErrInvalidArgument)
}

func unknownEntryError(id string) error {
	return lserrors.New("LS003").
		WithDetailf("no rendered entry with id %q", id).
		Wrap(ErrInvalidArgument)
}
