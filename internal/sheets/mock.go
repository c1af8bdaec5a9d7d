package sheets

import (
	"context"
	"sync"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
)

// MockWriter is a mock implementation of ReportWriter for testing.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, batch *model.ValidatedBatch, summary *model.BatchSummary) error
	LastBatch      *model.ValidatedBatch
	LastSummary    *model.BatchSummary
	WriteCalls     []WriteCall
	WriteCallCount int
	mu             sync.Mutex
}

// WriteCall represents a single call to Write.
type WriteCall struct {
	Error   error
	Batch   *model.ValidatedBatch
	Summary *model.BatchSummary
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{
		WriteCalls: make([]WriteCall, 0),
	}
}

// Write implements the ReportWriter interface.
func (m *MockWriter) Write(ctx context.Context, batch *model.ValidatedBatch, summary *model.BatchSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastBatch = batch
	m.LastSummary = summary

	var err error
	if m.WriteFunc != nil {
		err = m.WriteFunc(ctx, batch, summary)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{
		Batch:   batch,
		Summary: summary,
		Error:   err,
	})

	return err
}

// Reset clears all recorded calls.
func (m *MockWriter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount = 0
	m.WriteCalls = make([]WriteCall, 0)
	m.LastBatch = nil
	m.LastSummary = nil
}

// SetWriteError configures the mock to return an error on subsequent calls.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(_ context.Context, _ *model.ValidatedBatch, _ *model.BatchSummary) error {
		return err
	}
}
