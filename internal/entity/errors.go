package entity

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Generation errors
	ErrGeneration        = errors.New("generation failed")
	ErrEmptyResponse     = errors.New("generation returned no usable response")
	ErrMalformedResponse = errors.New("malformed generation response")

	// Search errors
	ErrNoSearchResults = errors.New("no search results")

	// Document errors
	ErrUnsupportedDocument = errors.New("unsupported or unreadable document")
	ErrDocumentTooLarge    = errors.New("document is too large")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ParseError reports that a generated response is not valid JSON.
type ParseError struct {
	Contract string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s response: %v", e.Contract, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

// ValidationError reports the first contract rule a parsed response violated.
type ValidationError struct {
	Contract string
	Field    string
	Rule     string
	Detail   string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("validate %s response: field %q violates %s", e.Contract, e.Field, e.Rule)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrMalformedResponse
}

// GenerationError wraps a failed or empty backend call.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}

// NoResultsError is returned when search grounding produced zero candidates.
type NoResultsError struct {
	Query string
}

func (e *NoResultsError) Error() string {
	return fmt.Sprintf("no search results for %q", e.Query)
}

func (e *NoResultsError) Is(target error) bool {
	return target == ErrNoSearchResults
}
