// Copyright © 2024 The ELPS authors

package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// spanSummary is a sdktrace.SpanExporter which aggregates the spans of
// traced builtin calls by name.
type spanSummary struct {
	mu    sync.Mutex
	total int
	stats map[string]*spanStat
}

type spanStat struct {
	count    int
	duration time.Duration
}

var _ sdktrace.SpanExporter = &spanSummary{}

func newSpanSummary() *spanSummary {
	return &spanSummary{stats: make(map[string]*spanStat)}
}

func (s *spanSummary) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, span := range spans {
		stat := s.stats[span.Name()]
		if stat == nil {
			stat = &spanStat{}
			s.stats[span.Name()] = stat
		}
		stat.count++
		stat.duration += span.EndTime().Sub(span.StartTime())
		s.total++
	}
	return nil
}

func (s *spanSummary) Shutdown(ctx context.Context) error {
	return nil
}

// Render writes the number of spans exported followed by the call count and
// cumulative duration of each builtin.
func (s *spanSummary) Render(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(w, "trace: %d spans\n", s.total)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(s.stats))
	for name := range s.stats {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		stat := s.stats[name]
		_, err = fmt.Fprintf(w, "  %-6s %6d %v\n", name, stat.count, stat.duration)
		if err != nil {
			return err
		}
	}
	return nil
}
