package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDocumentNotFound      = errors.New("document not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrTemporary             = errors.New("temporary failure")
	ErrExtractionUnavailable = errors.New("text extraction unavailable")
	ErrEmptyCorpus           = errors.New("empty corpus")
	ErrMalformedNumeric      = errors.New("malformed numeric value")
	ErrNoYearFound           = errors.New("no year found")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// KindOf returns the first known sentinel wrapped by err, or nil.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrExtractionUnavailable,
		ErrEmptyCorpus,
		ErrMalformedNumeric,
		ErrNoYearFound,
		ErrDocumentNotFound,
		ErrInvalidInput,
		ErrTemporary,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
