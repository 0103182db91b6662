package receiving

import "errors"

// Sentinel errors raised by the reconciliation path. Handlers map these to
// HTTP statuses with errors.Is, so wrapped variants keep their identity.
var (
	// ErrOrderNotFound means the referenced order id does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrReceiptNotFound means the referenced receipt id does not exist.
	ErrReceiptNotFound = errors.New("receipt not found")

	// ErrOrderCanceled means the order was canceled; cancellation takes
	// precedence over any in-flight receiving.
	ErrOrderCanceled = errors.New("order is canceled")

	// ErrNothingRemaining means every order line is already fully received,
	// so there is nothing left to receive. Distinct from validation failures
	// so callers can render "already complete".
	ErrNothingRemaining = errors.New("nothing remaining to receive")

	// ErrItemNotInOrder means a requested item id is not a line on the order.
	ErrItemNotInOrder = errors.New("item is not part of the order")

	// ErrInvalidQuantity means a requested quantity is not a positive finite
	// number.
	ErrInvalidQuantity = errors.New("quantity must be a positive number")

	// ErrQuantityExceedsRemaining means a requested quantity is larger than
	// the line's remaining quantity.
	ErrQuantityExceedsRemaining = errors.New("quantity exceeds remaining")

	// ErrInvalidIntegerQuantity means a fractional quantity was requested for
	// a unit that only allows whole numbers. Never auto-corrected.
	ErrInvalidIntegerQuantity = errors.New("quantity must be a whole number for this unit")

	// ErrInvalidItem means a standalone receipt line is malformed (missing
	// name or item id).
	ErrInvalidItem = errors.New("invalid receipt item")

	// ErrNoItems means a standalone receipt was submitted without lines.
	ErrNoItems = errors.New("receipt requires at least one item")
)
