package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ferryops/internal/domain/models"
)

func standardPolicies() []models.RefundPolicy {
	return []models.RefundPolicy{
		{ID: 1, DaysBeforeDeparture: 7, Percentage: 100},
		{ID: 2, DaysBeforeDeparture: 3, Percentage: 50},
		{ID: 3, DaysBeforeDeparture: 0, Percentage: 0},
	}
}

func TestEvaluateRefundPolicy(t *testing.T) {
	cases := []struct {
		name       string
		daysBefore int
		wantPolicy int64
		wantAmount int64
	}{
		{"h-10 refund penuh", 10, 1, 200000},
		{"h-7 tepat di ambang", 7, 1, 200000},
		{"h-5 refund setengah", 5, 2, 100000},
		{"h-3 tepat di ambang", 3, 2, 100000},
		{"h-1 hangus", 1, 3, 0},
		{"hari keberangkatan", 0, 3, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EvaluateRefundPolicy(200000, tc.daysBefore, standardPolicies())
			assert.Equal(t, tc.wantPolicy, got.PolicyID)
			assert.Equal(t, tc.wantAmount, got.SuggestedAmount)
		})
	}
}

func TestEvaluateRefundPolicyFeeCorridor(t *testing.T) {
	floor := []models.RefundPolicy{{ID: 9, Percentage: 50, MinFee: 60000}}
	got := EvaluateRefundPolicy(100000, 1, floor)
	assert.Equal(t, int64(60000), got.SuggestedAmount, "MinFee harus mengangkat hasil")

	ceiling := []models.RefundPolicy{{ID: 9, Percentage: 50, MaxFee: 40000}}
	got = EvaluateRefundPolicy(100000, 1, ceiling)
	assert.Equal(t, int64(40000), got.SuggestedAmount, "MaxFee harus memotong hasil")
}

func TestEvaluateRefundPolicyRounding(t *testing.T) {
	policies := []models.RefundPolicy{{ID: 9, Percentage: 50}}
	// 50% of 33333 rounds to 16667, not truncated.
	got := EvaluateRefundPolicy(33333, 1, policies)
	assert.Equal(t, int64(16667), got.SuggestedAmount)
}

func TestEvaluateRefundPolicyNoMatch(t *testing.T) {
	got := EvaluateRefundPolicy(200000, 5, nil)
	assert.Zero(t, got.PolicyID)
	assert.Zero(t, got.SuggestedAmount)
	assert.Contains(t, got.Message, "tidak ada kebijakan refund yang cocok")

	// Departure already passed: every threshold misses.
	got = EvaluateRefundPolicy(200000, -1, standardPolicies())
	assert.Zero(t, got.PolicyID)
	assert.Contains(t, got.Message, "tidak ada kebijakan refund yang cocok")
}
