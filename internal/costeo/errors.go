// Package costeo implements the pure cost arithmetic of the engine:
// unit conversion, partial cost of usage lines, derived business figures
// (costo administrativo, precio sugerido, margen) and the reverse-dependency
// graph used by the propagation scheduler. Nothing in this package touches
// the database — services feed it catalog models and persist its results.
package costeo

import "fmt"

// ValidationError rejects a catalog edit before any write happens:
// duplicate references on the same composite, recipe cycles, negative
// quantities or costs.
type ValidationError struct{ Detail string }

func (e *ValidationError) Error() string { return e.Detail }

func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}

// NotFoundError marks a dangling reference: an ingrediente, receta, platillo,
// unidad or configuracion row that should exist but does not.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s %s no encontrado", e.Entity, e.ID) }

func NewNotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// ComputationError marks arithmetic the formulas must refuse to perform
// (divide by zero that cannot be defaulted away) or a reference that could
// not be resolved mid-computation.
type ComputationError struct{ Detail string }

func (e *ComputationError) Error() string { return e.Detail }

func NewComputation(format string, args ...interface{}) *ComputationError {
	return &ComputationError{Detail: fmt.Sprintf(format, args...)}
}

// ConflictError signals a stale optimistic write: the composite's revision
// moved between read and write. The caller should retry with fresh state.
type ConflictError struct{ Detail string }

func (e *ConflictError) Error() string { return e.Detail }

func NewConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Detail: fmt.Sprintf(format, args...)}
}

// PersistenceError wraps a store failure that aborted a propagation
// mid-flight. Downstream costs may be stale (never corrupted — composite
// costs are overwritten wholesale, not patched).
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("persistencia: %s: %v", e.Op, e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }

func NewPersistence(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}
