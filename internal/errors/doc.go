// Package errors provides the structured error type shared by the lookup
// stores, the reference cache and the entity orchestrators.
//
// Errors carry a Code, a message, an optional cause and free-form metadata:
//
//	err := errors.NotFoundf("no lookup entries for kind %s", kind).
//	    WithMeta("kind", kind)
//
// Wrapping keeps the code of a structured cause:
//
//	if err := repo.Upsert(ctx, input); err != nil {
//	    return errors.Wrapf(err, "failed to seed %s", kind)
//	}
//
// Store failures use Unavailable (or Canceled / DeadlineExceeded via
// FromContext). The reference cache treats every store error as a signal to
// use its static tables; IsTransient separates "store down" from "store has
// bad data" for logging.
//
// # Validation
//
// Every Config in this module validates through the builder:
//
//	vb := errors.NewValidationBuilder()
//	if c.Reference == nil {
//	    vb.RequiredField("Reference")
//	}
//	errors.ValidateRange("Workers", c.Workers, 1, 64, vb)
//	return vb.Build()
//
// # Layer guidelines
//
// Repository layer:
//   - NotFound when a kind has no stored entries
//   - Unavailable for connection failures, DataLoss for undecodable rows
//
// Orchestrator layer:
//   - InvalidArgument for nil input or an unnamed entity
//   - never surface matcher misses; an empty fact list is a normal result
package errors
