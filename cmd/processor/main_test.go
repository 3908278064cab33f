package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"arcli/internal/config"
)

func TestProcessedName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain file", in: "ledger.xlsx", want: "ledger_processed.xlsx"},
		{name: "nested path", in: "/data/input/ar_march.xlsx", want: "ar_march_processed.xlsx"},
		{name: "uppercase extension", in: "Ledger.XLSX", want: "Ledger_processed.xlsx"},
		{name: "dots in stem", in: "ar.2026.03.xlsx", want: "ar.2026.03_processed.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, processedName(tt.in))
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.Default()
	applyOverrides(cfg, 200, 0.1, 20, 400, config.PolicyDynamic)

	assert.Equal(t, 200, cfg.Interest.DueDaysThreshold)
	assert.Equal(t, 0.1, cfg.Interest.PerDayInterestRate)
	assert.Equal(t, 20, cfg.Interest.InterestWorkingDays)
	assert.Equal(t, 400, cfg.Interest.OpeningBalanceAge)
	assert.Equal(t, config.PolicyDynamic, cfg.Interest.WorkingDaysPolicy)
}

func TestApplyOverrides_ZeroValuesKeepConfig(t *testing.T) {
	cfg := config.Default()
	want := cfg.Interest

	applyOverrides(cfg, 0, 0, 0, 0, "")

	assert.Equal(t, want, cfg.Interest)
}
