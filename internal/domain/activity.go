package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"
)

// PricingType is the tag of a pricing strategy variant
type PricingType string

const (
	PricingFlat           PricingType = "flat"
	PricingPerParticipant PricingType = "per_participant"
	PricingTiered         PricingType = "tiered"
)

var (
	// ErrUnknownPricingType is returned when a pricing document carries an
	// unknown strategy tag. This is tenant configuration data, not user input,
	// so callers surface it as a config error rather than a validation error.
	ErrUnknownPricingType = errors.New("domain: unknown pricing strategy type")

	// ErrMalformedPricing is returned when a pricing document cannot be
	// decoded or its tier list is inconsistent
	ErrMalformedPricing = errors.New("domain: malformed pricing strategy")
)

// PricingTier is one band of a tiered (graduated) pricing model.
// Exactly one of Price and PricePerParticipant must be set: a flat Price
// charges once for the whole slice of participants falling into the band,
// PricePerParticipant multiplies by the size of that slice.
type PricingTier struct {
	MaxParticipants     int      `json:"maxParticipants"`
	Price               *float64 `json:"price,omitempty"`
	PricePerParticipant *float64 `json:"pricePerParticipant,omitempty"`
}

// PricingStrategy is the closed, decoded form of an activity's pricing
// document. The raw JSON is decoded once at the storage boundary; unknown
// tags are rejected there instead of silently defaulting.
type PricingStrategy struct {
	Type      PricingType
	Amount    float64       // flat: fixed amount per activity
	UnitPrice float64       // per_participant: price per head
	Tiers     []PricingTier // tiered: bands in ascending MaxParticipants order
}

// pricingDocument is the raw JSON shape stored in the activities table
type pricingDocument struct {
	Type      string        `json:"type"`
	Amount    *float64      `json:"amount,omitempty"`
	UnitPrice *float64      `json:"unitPrice,omitempty"`
	Tiers     []PricingTier `json:"tiers,omitempty"`
}

// DecodePricingStrategy decodes and validates a raw pricing document
func DecodePricingStrategy(raw []byte) (*PricingStrategy, error) {
	var doc pricingDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPricing, err)
	}

	switch PricingType(doc.Type) {
	case PricingFlat:
		if doc.Amount == nil {
			return nil, fmt.Errorf("%w: flat strategy requires amount", ErrMalformedPricing)
		}
		return &PricingStrategy{Type: PricingFlat, Amount: *doc.Amount}, nil

	case PricingPerParticipant:
		if doc.UnitPrice == nil {
			return nil, fmt.Errorf("%w: per_participant strategy requires unitPrice", ErrMalformedPricing)
		}
		return &PricingStrategy{Type: PricingPerParticipant, UnitPrice: *doc.UnitPrice}, nil

	case PricingTiered:
		if len(doc.Tiers) == 0 {
			return nil, fmt.Errorf("%w: tiered strategy requires at least one tier", ErrMalformedPricing)
		}
		tiers := make([]PricingTier, len(doc.Tiers))
		copy(tiers, doc.Tiers)
		sort.SliceStable(tiers, func(i, j int) bool {
			return tiers[i].MaxParticipants < tiers[j].MaxParticipants
		})
		for i, tier := range tiers {
			if tier.MaxParticipants <= 0 {
				return nil, fmt.Errorf("%w: tier %d has non-positive maxParticipants", ErrMalformedPricing, i)
			}
			if (tier.Price == nil) == (tier.PricePerParticipant == nil) {
				return nil, fmt.Errorf("%w: tier %d must set exactly one of price and pricePerParticipant", ErrMalformedPricing, i)
			}
		}
		return &PricingStrategy{Type: PricingTiered, Tiers: tiers}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPricingType, doc.Type)
	}
}

// ActivityConstraints is the decoded constraints document of an activity:
// participant weight bounds, metadata fields the booking must carry, and
// the certifications an instructor needs per selected add-on.
type ActivityConstraints struct {
	MinWeightKg         *float64            `json:"minWeightKg,omitempty"`
	MaxWeightKg         *float64            `json:"maxWeightKg,omitempty"`
	RequiredFields      []string            `json:"requiredFields,omitempty"`
	AddOnCertifications map[string][]string `json:"addOnCertifications,omitempty"`
}

// DecodeActivityConstraints decodes a raw constraints document.
// An empty document is valid and yields no constraints.
func DecodeActivityConstraints(raw []byte) (*ActivityConstraints, error) {
	if len(raw) == 0 {
		return &ActivityConstraints{}, nil
	}
	var constraints ActivityConstraints
	if err := json.Unmarshal(raw, &constraints); err != nil {
		return nil, fmt.Errorf("domain: malformed constraints document: %w", err)
	}
	return &constraints, nil
}

// RequiredCertificationsFor collects the certifications required by the
// given selected add-ons. Unknown add-ons contribute nothing.
func (c *ActivityConstraints) RequiredCertificationsFor(addOns []string) []string {
	if len(c.AddOnCertifications) == 0 || len(addOns) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	required := make([]string, 0)
	for _, addOn := range addOns {
		for _, cert := range c.AddOnCertifications[addOn] {
			if _, ok := seen[cert]; ok {
				continue
			}
			seen[cert] = struct{}{}
			required = append(required, cert)
		}
	}
	return required
}

// Activity represents a bookable product type owned by a company.
// It is a read-only input to a scheduling decision.
type Activity struct {
	ID              int64
	CompanyID       int64
	Name            string
	ActivityType    string
	MinParticipants int
	MaxParticipants int
	DurationMinutes int
	Pricing         *PricingStrategy
	Constraints     *ActivityConstraints
	Active          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
