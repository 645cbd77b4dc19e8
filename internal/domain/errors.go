package domain

import "fmt"

// DataError signals malformed or missing input tables, or an empty
// post-join result. It aborts the single request and is never retried.
type DataError struct {
	Reason string
}

func (e *DataError) Error() string {
	return "invalid dataset: " + e.Reason
}

// NewDataError builds a DataError with a formatted reason.
func NewDataError(format string, args ...interface{}) *DataError {
	return &DataError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError signals that a requested product is absent from the
// aggregated features.
type NotFoundError struct {
	ProductID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %d not found in aggregated features", e.ProductID)
}

// PredictionError wraps a scoring function failure. Not retried.
type PredictionError struct {
	ProductID int64
	Err       error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("prediction failed for product %d: %v", e.ProductID, e.Err)
}

func (e *PredictionError) Unwrap() error { return e.Err }

// NotificationError wraps a notifier failure for a single recipient bucket.
// It is logged and isolated; the affected reminders retry on the next tick.
type NotificationError struct {
	Recipient string
	Kind      NotificationKind
	Err       error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification %s to %s failed: %v", e.Kind, e.Recipient, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }
