package models

import (
	"errors"
	"fmt"
)

// ErrEmptyResult is matched by EmptyResultError via errors.Is.
var ErrEmptyResult = errors.New("empty result")

// ApiError is a non-2xx backend response.
type ApiError struct {
	Status int
	URL    string
	Body   string
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("api error: %d (%s)", e.Status, e.URL)
}

// ParseError is a malformed JSON payload.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// EmptyResultError is a well-formed response with zero assets for a period.
type EmptyResultError struct {
	Period Period
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no assets for period %s", e.Period)
}

func (e *EmptyResultError) Is(target error) bool { return target == ErrEmptyResult }
