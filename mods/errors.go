package mods

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedResult is returned when a mod chain returns something other than a document.
	ErrMalformedResult = errors.New("malformed mod result")

	// ErrConflictingProvider is returned when a second provider is registered for a mod.
	ErrConflictingProvider = errors.New("conflicting provider")

	// ErrInvalidModOrder is returned when a mod is registered after the provider of its chain.
	ErrInvalidModOrder = errors.New("invalid mod order")

	// ErrMissingProvider is returned when the outermost mod of a chain is not a provider.
	ErrMissingProvider = errors.New("missing provider")

	// ErrInvalidProvider is returned when provider methods are incomplete.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrUnregisteredMod is returned when running a Mod that was not created by WithBaseMod.
	ErrUnregisteredMod = errors.New("mod was not registered with WithBaseMod")
)

// StageError attributes a failure to the base mod it passed through.
// Nested base mods wrap each other, so the message reads outermost stage first.
type StageError struct {
	Platform Platform
	ModName  string
	Method   string
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("[%s.%s]: %s: %v", e.Platform, e.ModName, e.Method, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// MalformedResultError reports a chain result that is not a valid document.
type MalformedResultError struct {
	Platform Platform
	ModName  string

	// Snapshot is the serialized value that was returned
	Snapshot string
}

func (e *MalformedResultError) Error() string {
	return fmt.Sprintf("Mod `mods.%s.%s` evaluated to an object that is not a valid project config. Instead got: %s",
		e.Platform, e.ModName, e.Snapshot)
}

// Is reports ErrMalformedResult as a match.
func (e *MalformedResultError) Is(target error) bool {
	return target == ErrMalformedResult
}

// ModResultsTypeError reports working state of an unexpected type.
type ModResultsTypeError struct {
	Platform Platform
	ModName  string
	Want     string
	Got      any
}

func (e *ModResultsTypeError) Error() string {
	return fmt.Sprintf("mod results for %s.%s: want %s, got %T", e.Platform, e.ModName, e.Want, e.Got)
}
