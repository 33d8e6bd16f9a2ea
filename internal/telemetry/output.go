package telemetry

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// TraceRecord is one simulated frame in a headless trace.
type TraceRecord struct {
	Frame           int     `csv:"frame"`
	Time            float32 `csv:"time"`
	DT              float32 `csv:"dt"`
	PointerX        float32 `csv:"pointer_x"`
	PointerY        float32 `csv:"pointer_y"`
	PointerActive   bool    `csv:"pointer_active"`
	AvatarOffset    float32 `csv:"avatar_offset"`
	AmbientRespawns int     `csv:"ambient_respawns"`
	AuraRespawns    int     `csv:"aura_respawns"`
	AmbientMeanLife float32 `csv:"ambient_mean_life"`
	DrawCalls       int     `csv:"draw_calls"`
}

// TraceWriter streams TraceRecords as CSV, writing the header once.
type TraceWriter struct {
	w             io.Writer
	headerWritten bool
}

func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{w: w}
}

func (t *TraceWriter) Write(records ...TraceRecord) error {
	if len(records) == 0 {
		return nil
	}

	if !t.headerWritten {
		if err := gocsv.Marshal(records, t.w); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
		t.headerWritten = true
		return nil
	}

	if err := gocsv.MarshalWithoutHeaders(records, t.w); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}
