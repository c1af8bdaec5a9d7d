package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidBatch = errors.New("invalid batch")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateBatch validates a batch before it is persisted.
func validateBatch(batch *model.ValidatedBatch) error {
	if batch == nil {
		return fmt.Errorf("%w: batch", ErrNilParameter)
	}
	if strings.TrimSpace(batch.ID) == "" {
		return fmt.Errorf("%w: missing batch id", ErrInvalidBatch)
	}
	if batch.CreatedAt.IsZero() {
		return fmt.Errorf("%w: missing creation time", ErrInvalidBatch)
	}
	for i := range batch.Records {
		if strings.TrimSpace(batch.Records[i].Record.MemoID) == "" {
			return fmt.Errorf("%w: record %d has no memo id", ErrInvalidBatch, i+1)
		}
	}
	return nil
}
