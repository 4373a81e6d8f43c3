package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeKeepsFirstEmission(t *testing.T) {
	in := []string{RecFollowUpMonth, RecQuitSmoking, RecFollowUpMonth, "", RecAnnualScreening, RecQuitSmoking}
	assert.Equal(t, []string{RecFollowUpMonth, RecQuitSmoking, RecAnnualScreening}, dedupe(in))
}
