package log

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestToFields(t *testing.T) {
	err := errors.New("login rejected")

	tests := []struct {
		name  string
		input []any
		want  int // expected number of fields
	}{
		{"empty input", []any{}, 0},
		{"string pair", []any{"vin", "WAUZZZ4G7EN123456"}, 1},
		{"mixed pairs", []any{"attempt", 2, "delay", 10 * time.Second, "final", true}, 3},
		{"error only", []any{err}, 1},
		{"zap field passthrough", []any{zap.String("region", "DE"), "soc", 80}, 2},
		{"odd number of args", []any{"key1", "val1", "dangling"}, 2},
		{"non-string key", []any{42, "value"}, 1},
		{"time value", []any{"at", time.Now()}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := toFields(tt.input...)

			if got := len(fields); got != tt.want {
				t.Errorf("toFields(%v) produced %d fields, want %d", tt.input, got, tt.want)
			}

			for _, f := range fields {
				if f.Key == "" {
					t.Errorf("field has empty key: %+v", f)
				}
			}
		})
	}
}

func TestNopLoggerDoesNotPanic(t *testing.T) {
	l := NewNopLogger()
	l.Info("ignored", "k", "v")
	l.Error(errors.New("boom"), "ignored")
	l.WithName("sub").WithValues("a", 1).Debug("ignored")
}
