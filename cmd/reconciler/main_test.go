package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"arcli/internal/config"
)

func TestSplitColumns(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "single", in: "Customer Name", want: []string{"Customer Name"}},
		{name: "multiple", in: "Customer Name,Transaction#", want: []string{"Customer Name", "Transaction#"}},
		{name: "whitespace trimmed", in: " Customer Name , Age ", want: []string{"Customer Name", "Age"}},
		{name: "empty entries dropped", in: "A,,B,", want: []string{"A", "B"}},
		{name: "empty string", in: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitColumns(tt.in))
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.Default().Reconcile
	applyOverrides(&cfg, "A,B", "C", 0.05, 10)

	assert.Equal(t, []string{"A", "B"}, cfg.KeyColumns)
	assert.Equal(t, []string{"C"}, cfg.CompareColumns)
	assert.Equal(t, 0.05, cfg.Tolerance)
	assert.Equal(t, 10, cfg.MaxMatchedKeys)
}

func TestApplyOverrides_UnsetFlagsKeepConfig(t *testing.T) {
	cfg := config.Default().Reconcile
	want := cfg

	// -max-keys defaults to -1, meaning not set.
	applyOverrides(&cfg, "", "", 0, -1)

	assert.Equal(t, want, cfg)
}

func TestApplyOverrides_MaxKeysZeroMeansUnbounded(t *testing.T) {
	cfg := config.Default().Reconcile
	cfg.MaxMatchedKeys = 50

	applyOverrides(&cfg, "", "", 0, 0)

	assert.Zero(t, cfg.MaxMatchedKeys)
}
