package sheets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/engine"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/service"
)

func TestMockWriterRecordsCalls(t *testing.T) {
	var writer service.ReportWriter = NewMockWriter()
	mock := writer.(*MockWriter)

	batch := testBatch(t)
	summary := engine.Aggregate(batch)

	require.NoError(t, writer.Write(context.Background(), batch, &summary))

	assert.Equal(t, 1, mock.WriteCallCount)
	require.Len(t, mock.WriteCalls, 1)
	assert.Equal(t, batch, mock.LastBatch)
	assert.Equal(t, &summary, mock.LastSummary)

	mock.Reset()
	assert.Zero(t, mock.WriteCallCount)
	assert.Nil(t, mock.LastBatch)
}

func TestMockWriterError(t *testing.T) {
	mock := NewMockWriter()
	wantErr := errors.New("quota exceeded")
	mock.SetWriteError(wantErr)

	batch := testBatch(t)
	summary := engine.Aggregate(batch)

	err := mock.Write(context.Background(), batch, &summary)
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, mock.WriteCallCount)
}
