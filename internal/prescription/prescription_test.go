package prescription_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/pharmacare/internal/prescription"
)

func TestNextNumber(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{name: "Empty", want: "RX000001"},
		{name: "FollowsHighest", existing: []string{"RX000001", "RX000007", "RX000004"}, want: "RX000008"},
		{name: "IgnoresForeignNumbers", existing: []string{"LEGACY-9", "RX-PAPER-12", "RX000002"}, want: "RX000003"},
		{name: "SeedNumbers", existing: []string{"RX001234", "RX001235"}, want: "RX001236"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := make([]*prescription.Prescription, 0, len(tt.existing))
			for _, n := range tt.existing {
				existing = append(existing, &prescription.Prescription{PrescriptionNumber: n})
			}

			assert.Equal(t, tt.want, prescription.NextNumber(existing))
		})
	}
}
