package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the core services. The boundary layer maps
// these to HTTP statuses; the core never deals in status codes.
var (
	// ErrNotFound covers both "does not exist" and "belongs to another
	// tenant". The two cases are deliberately indistinguishable so that
	// probing with foreign IDs leaks nothing.
	ErrNotFound = errors.New("material not found")

	// ErrTenantNotFound is returned when a tenant lookup misses.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrStorageConflict signals that an atomic unit could not commit due
	// to contention or an infrastructure fault. The whole unit was rolled
	// back and may be retried from scratch.
	ErrStorageConflict = errors.New("storage conflict, retry the operation")
)

// ValidationError reports malformed or missing input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// QuotaExceededError is returned when a FREE tenant already holds the
// maximum number of active materials.
type QuotaExceededError struct {
	Limit int
	Count int64
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("FREE plan allows maximum %d materials, upgrade to PRO for unlimited materials", e.Limit)
}

// InsufficientStockError is returned when an OUT transaction would drive
// stock negative. It carries the observed stock and the requested quantity
// for diagnostics; no partial effect survives.
type InsufficientStockError struct {
	CurrentStock int
	Requested    int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: current stock %d, requested %d", e.CurrentStock, e.Requested)
}

// PlanRestrictedError is returned when a feature is gated behind the PRO plan
type PlanRestrictedError struct {
	Feature string
}

func (e *PlanRestrictedError) Error() string {
	return fmt.Sprintf("%s is only available on the PRO plan", e.Feature)
}
