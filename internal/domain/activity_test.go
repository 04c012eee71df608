package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePricingStrategyFlat(t *testing.T) {
	strategy, err := DecodePricingStrategy([]byte(`{"type": "flat", "amount": 500}`))
	require.NoError(t, err)
	assert.Equal(t, PricingFlat, strategy.Type)
	assert.Equal(t, 500.0, strategy.Amount)

	_, err = DecodePricingStrategy([]byte(`{"type": "flat"}`))
	assert.ErrorIs(t, err, ErrMalformedPricing)
}

func TestDecodePricingStrategyPerParticipant(t *testing.T) {
	strategy, err := DecodePricingStrategy([]byte(`{"type": "per_participant", "unitPrice": 75.5}`))
	require.NoError(t, err)
	assert.Equal(t, PricingPerParticipant, strategy.Type)
	assert.Equal(t, 75.5, strategy.UnitPrice)

	_, err = DecodePricingStrategy([]byte(`{"type": "per_participant"}`))
	assert.ErrorIs(t, err, ErrMalformedPricing)
}

func TestDecodePricingStrategyTiered(t *testing.T) {
	// Ступени в документе не отсортированы - декодер сортирует сам
	raw := []byte(`{"type": "tiered", "tiers": [
		{"maxParticipants": 4, "pricePerParticipant": 70},
		{"maxParticipants": 2, "price": 150}
	]}`)

	strategy, err := DecodePricingStrategy(raw)
	require.NoError(t, err)
	assert.Equal(t, PricingTiered, strategy.Type)
	require.Len(t, strategy.Tiers, 2)
	assert.Equal(t, 2, strategy.Tiers[0].MaxParticipants)
	assert.Equal(t, 4, strategy.Tiers[1].MaxParticipants)
}

func TestDecodePricingStrategyTieredMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "no tiers", raw: `{"type": "tiered"}`},
		{name: "empty tier list", raw: `{"type": "tiered", "tiers": []}`},
		{name: "tier with both prices", raw: `{"type": "tiered", "tiers": [{"maxParticipants": 2, "price": 100, "pricePerParticipant": 50}]}`},
		{name: "tier with neither price", raw: `{"type": "tiered", "tiers": [{"maxParticipants": 2}]}`},
		{name: "non-positive maxParticipants", raw: `{"type": "tiered", "tiers": [{"maxParticipants": 0, "price": 100}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePricingStrategy([]byte(tt.raw))
			assert.ErrorIs(t, err, ErrMalformedPricing)
		})
	}
}

func TestDecodePricingStrategyUnknownType(t *testing.T) {
	_, err := DecodePricingStrategy([]byte(`{"type": "surge", "amount": 100}`))
	assert.ErrorIs(t, err, ErrUnknownPricingType)

	_, err = DecodePricingStrategy([]byte(`{"amount": 100}`))
	assert.ErrorIs(t, err, ErrUnknownPricingType)
}

func TestDecodeActivityConstraints(t *testing.T) {
	constraints, err := DecodeActivityConstraints(nil)
	require.NoError(t, err)
	assert.Nil(t, constraints.MinWeightKg)

	raw := []byte(`{"maxWeightKg": 120, "addOnCertifications": {"night_dive": ["night-cert"], "deep_dive": ["deep-cert", "night-cert"]}}`)
	constraints, err = DecodeActivityConstraints(raw)
	require.NoError(t, err)
	require.NotNil(t, constraints.MaxWeightKg)
	assert.Equal(t, 120.0, *constraints.MaxWeightKg)

	_, err = DecodeActivityConstraints([]byte(`{not json`))
	require.Error(t, err)
}

func TestRequiredCertificationsFor(t *testing.T) {
	constraints := &ActivityConstraints{
		AddOnCertifications: map[string][]string{
			"night_dive": {"night-cert"},
			"deep_dive":  {"deep-cert", "night-cert"},
		},
	}

	// Дубликаты сертификатов между add-on схлопываются
	certs := constraints.RequiredCertificationsFor([]string{"night_dive", "deep_dive"})
	assert.ElementsMatch(t, []string{"night-cert", "deep-cert"}, certs)

	// Неизвестный add-on ничего не требует
	assert.Empty(t, constraints.RequiredCertificationsFor([]string{"photo_package"}))
	assert.Empty(t, constraints.RequiredCertificationsFor(nil))
}
