// Copyright © 2024 The ELPS authors

package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSpanSummary(t *testing.T) {
	summary := newSpanSummary()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(summary))
	tracer := tp.Tracer("test")

	ctx, outer := tracer.Start(context.Background(), "eval")
	for i := 0; i < 3; i++ {
		_, span := tracer.Start(ctx, "head")
		span.End()
	}
	outer.End()
	require.NoError(t, tp.Shutdown(context.Background()))

	var buf bytes.Buffer
	require.NoError(t, summary.Render(&buf))
	lines := bytes.Split(bytes.TrimSuffix(buf.Bytes(), []byte("\n")), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, "trace: 4 spans", string(lines[0]))
	assert.Regexp(t, `^  eval\s+1 `, string(lines[1]))
	assert.Regexp(t, `^  head\s+3 `, string(lines[2]))
}
