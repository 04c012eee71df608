package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
	"github.com/dkomnin/AVB-SchedulingService/pkg/ptr"
)

func activityWithPricing(pricing *domain.PricingStrategy) *domain.Activity {
	return &domain.Activity{ID: 1, Pricing: pricing}
}

func TestComputeBaseAmountFlat(t *testing.T) {
	activity := activityWithPricing(&domain.PricingStrategy{Type: domain.PricingFlat, Amount: 500})

	for _, participants := range []int{1, 3, 10} {
		amount, err := ComputeBaseAmount(activity, participants)
		require.NoError(t, err)
		assert.Equal(t, 500.0, amount)
	}
}

func TestComputeBaseAmountPerParticipant(t *testing.T) {
	activity := activityWithPricing(&domain.PricingStrategy{Type: domain.PricingPerParticipant, UnitPrice: 75})

	amount, err := ComputeBaseAmount(activity, 4)
	require.NoError(t, err)
	assert.Equal(t, 300.0, amount)
}

func TestComputeBaseAmountTiered(t *testing.T) {
	// Первые двое - фиксированные 150, участники 3-4 - по 70 за каждого
	activity := activityWithPricing(&domain.PricingStrategy{
		Type: domain.PricingTiered,
		Tiers: []domain.PricingTier{
			{MaxParticipants: 2, Price: ptr.Ptr(150.0)},
			{MaxParticipants: 4, PricePerParticipant: ptr.Ptr(70.0)},
		},
	})

	tests := []struct {
		participants int
		want         float64
	}{
		{participants: 1, want: 150},
		{participants: 2, want: 150},
		{participants: 3, want: 220},
		{participants: 4, want: 290},
	}

	for _, tt := range tests {
		amount, err := ComputeBaseAmount(activity, tt.participants)
		require.NoError(t, err)
		assert.Equal(t, tt.want, amount, "participants=%d", tt.participants)
	}
}

func TestComputeBaseAmountTieredBeyondCoverage(t *testing.T) {
	activity := activityWithPricing(&domain.PricingStrategy{
		Type: domain.PricingTiered,
		Tiers: []domain.PricingTier{
			{MaxParticipants: 2, Price: ptr.Ptr(150.0)},
		},
	})

	// Участников больше, чем покрывают ступени - данные тенанта битые
	_, err := ComputeBaseAmount(activity, 3)
	require.Error(t, err)
	reason, ok := ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, ReasonConfigError, reason)
}

func TestComputeBaseAmountConfigErrors(t *testing.T) {
	noPricing := &domain.Activity{ID: 1}
	_, err := ComputeBaseAmount(noPricing, 2)
	require.Error(t, err)
	reason, _ := ReasonOf(err)
	assert.Equal(t, ReasonConfigError, reason)

	unknown := activityWithPricing(&domain.PricingStrategy{Type: "surge"})
	_, err = ComputeBaseAmount(unknown, 2)
	require.Error(t, err)
	reason, _ = ReasonOf(err)
	assert.Equal(t, ReasonConfigError, reason)

	flat := activityWithPricing(&domain.PricingStrategy{Type: domain.PricingFlat, Amount: 100})
	_, err = ComputeBaseAmount(flat, 0)
	require.Error(t, err)
}

func TestComputeBaseAmountDeterministic(t *testing.T) {
	activity := activityWithPricing(&domain.PricingStrategy{
		Type: domain.PricingTiered,
		Tiers: []domain.PricingTier{
			{MaxParticipants: 3, PricePerParticipant: ptr.Ptr(99.9)},
			{MaxParticipants: 8, PricePerParticipant: ptr.Ptr(79.9)},
		},
	})

	first, err := ComputeBaseAmount(activity, 5)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := ComputeBaseAmount(activity, 5)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
