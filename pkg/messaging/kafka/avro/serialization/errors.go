package serialization

import (
	"errors"
	"fmt"
)

// IncompatibleSchemaError is returned when the registry refuses a schema
// under the subject's compatibility mode.
type IncompatibleSchemaError struct {
	Subject string
	Schema  string
	Reason  string
}

func (e *IncompatibleSchemaError) Error() string {
	return fmt.Sprintf("schema is incompatible with subject %s: %s", e.Subject, e.Reason)
}

// RegistryUnavailableError is returned when the registry could not be reached
// or did not answer before the caller's deadline.
type RegistryUnavailableError struct {
	Subject string
	Timeout bool
	Err     error
}

func (e *RegistryUnavailableError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("schema registry did not respond in time for subject %s: %v", e.Subject, e.Err)
	}
	return fmt.Sprintf("schema registry unavailable for subject %s: %v", e.Subject, e.Err)
}

func (e *RegistryUnavailableError) Unwrap() error {
	return e.Err
}

// SerializationError wraps every failure of Serialize.
//
// When the registry refused the schema as incompatible, Error returns exactly
// its canonical JSON so callers can surface the offending definition verbatim.
// Every other failure is described by its reason and cause.
type SerializationError struct {
	Topic   string
	Subject string
	Schema  string
	Reason  string
	Err     error
}

func (e *SerializationError) Error() string {
	if e.Schema != "" && IsIncompatible(e.Err) {
		return e.Schema
	}
	if e.Err != nil {
		return fmt.Sprintf("failed to serialize record for topic %q: %s: %v", e.Topic, e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to serialize record for topic %q: %s", e.Topic, e.Reason)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// IsIncompatible reports whether err was caused by a compatibility rejection.
func IsIncompatible(err error) bool {
	var incompatible *IncompatibleSchemaError
	return errors.As(err, &incompatible)
}

// IsRegistryUnavailable reports whether err was caused by an unreachable registry.
func IsRegistryUnavailable(err error) bool {
	var unavailable *RegistryUnavailableError
	return errors.As(err, &unavailable)
}
