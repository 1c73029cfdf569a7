package harmony

import (
	"errors"
	"fmt"
)

var (
	// ErrBorrowConflict is reported when a borrow overlaps an incompatible
	// borrow of the same column.
	ErrBorrowConflict = errors.New("borrow conflict")

	// ErrStructuralChange is reported when entities or columns are created
	// while any column is borrowed.
	ErrStructuralChange = errors.New("structural change while borrowed")

	ErrEntityOutOfRange = errors.New("entity out of range")
	ErrEntityDeleted    = errors.New("entity deleted")
)

// BorrowError describes a rejected borrow request on a single column.
type BorrowError struct {
	Type      *ComponentType
	Requested Mode
	Held      Mode
}

func (e *BorrowError) Error() string {
	return fmt.Sprintf(
		"%s on %s: %s borrow requested while %s borrow is held",
		ErrBorrowConflict, e.Type, e.Requested, e.Held,
	)
}

func (e *BorrowError) Unwrap() error {
	return ErrBorrowConflict
}

// EntityError describes an invalid entity id passed to the store.
type EntityError struct {
	Entity EntityId
	Count  int

	// Type is the component type of the failed operation, if any.
	Type *ComponentType

	Err error
}

func (e *EntityError) Error() string {
	if e.Type == nil {
		return fmt.Sprintf("%s: entity %s (entity count %d)", e.Err, e.Entity, e.Count)
	}

	return fmt.Sprintf("%s: entity %s (entity count %d) accessing %s", e.Err, e.Entity, e.Count, e.Type)
}

func (e *EntityError) Unwrap() error {
	return e.Err
}

func structuralChange(op string, ty *ComponentType) error {
	if ty == nil {
		return fmt.Errorf("%w: %s", ErrStructuralChange, op)
	}

	return fmt.Errorf("%w: %s %s", ErrStructuralChange, op, ty)
}

// IsContractError reports whether err is one of the store's contract
// violations.
func IsContractError(err error) bool {
	return errors.Is(err, ErrBorrowConflict) ||
		errors.Is(err, ErrStructuralChange) ||
		errors.Is(err, ErrEntityOutOfRange) ||
		errors.Is(err, ErrEntityDeleted)
}

// Catch runs fn and converts a contract violation panic raised by the store
// into an error. Any other panic is propagated unchanged.
func Catch(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		if rErr, ok := r.(error); ok && IsContractError(rErr) {
			err = rErr
			return
		}

		panic(r)
	}()

	fn()

	return nil
}
