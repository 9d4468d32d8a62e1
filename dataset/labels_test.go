package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextPeriodLabels(t *testing.T) {
	tests := []struct {
		name string
		last string
		h    int
		want []string
	}{
		{"continues the year", "Set/25", 3, []string{"Out/25", "Nov/25", "Dez/25"}},
		{"wraps into next year", "Nov/25", 3, []string{"Dez/25", "Jan/26", "Fev/26"}},
		{"zero horizon", "Set/25", 0, []string{}},
		{"unparseable label", "2025-09", 2, []string{"+1", "+2"}},
		{"unknown month", "Sep/25", 1, []string{"+1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextPeriodLabels(tt.last, tt.h))
		})
	}
}
