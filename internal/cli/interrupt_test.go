package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterruptHandlerNotInterrupted(t *testing.T) {
	var buf bytes.Buffer
	h := NewInterruptHandler(&buf)

	ctx := h.HandleInterrupts(context.Background())

	assert.False(t, h.WasInterrupted())
	assert.NoError(t, ctx.Err())
	assert.Empty(t, buf.String())
}

func TestInterruptHandlerDefaultWriter(t *testing.T) {
	h := NewInterruptHandler(nil)
	assert.NotNil(t, h.writer)
}
