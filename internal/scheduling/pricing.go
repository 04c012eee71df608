package scheduling

import (
	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
)

// ComputeBaseAmount вычисляет базовую стоимость брони по стратегии
// ценообразования активности.
//
// flat - фиксированная сумма за активность независимо от числа участников;
// per_participant - цена за человека × число участников;
// tiered - прогрессивная (градуированная) модель: ступени обходятся в
// порядке возрастания maxParticipants, каждая ступень добавляет стоимость
// своего среза участников. Ступень с price добавляет фиксированную сумму,
// как только срез достигнут; ступень с pricePerParticipant умножает цену
// на число участников, попавших в срез.
//
// Некорректная стратегия - это ошибка данных тенанта (ReasonConfigError),
// а не конфликт планирования
func ComputeBaseAmount(activity *domain.Activity, participantCount int) (float64, error) {
	if activity.Pricing == nil {
		return 0, NewError(ReasonConfigError,
			"activity %d has no pricing strategy configured", activity.ID)
	}
	if participantCount <= 0 {
		return 0, NewError(ReasonConfigError,
			"participant count must be positive, got %d", participantCount)
	}

	pricing := activity.Pricing

	switch pricing.Type {
	case domain.PricingFlat:
		return pricing.Amount, nil

	case domain.PricingPerParticipant:
		return pricing.UnitPrice * float64(participantCount), nil

	case domain.PricingTiered:
		return computeTieredAmount(activity.ID, pricing.Tiers, participantCount)

	default:
		return 0, NewError(ReasonConfigError,
			"activity %d has unknown pricing strategy %q", activity.ID, pricing.Type)
	}
}

// computeTieredAmount аккумулирует стоимость по ступеням
//
// Пример: ступени [{max:2, price:150}, {max:4, perParticipant:70}] и
// 3 участника - первые двое стоят фиксированные 150, третий попадает во
// вторую ступень и добавляет 1 × 70, итого 220
func computeTieredAmount(activityID int64, tiers []domain.PricingTier, participantCount int) (float64, error) {
	total := 0.0
	covered := 0

	for _, tier := range tiers {
		if participantCount <= covered {
			break
		}
		if tier.MaxParticipants <= covered {
			// Ступени отсортированы при декодировании; дубликат границы -
			// битые данные тенанта
			return 0, NewError(ReasonConfigError,
				"activity %d has overlapping pricing tiers at maxParticipants=%d", activityID, tier.MaxParticipants)
		}

		sliceEnd := participantCount
		if tier.MaxParticipants < sliceEnd {
			sliceEnd = tier.MaxParticipants
		}
		sliceSize := sliceEnd - covered

		switch {
		case tier.Price != nil:
			total += *tier.Price
		case tier.PricePerParticipant != nil:
			total += *tier.PricePerParticipant * float64(sliceSize)
		default:
			return 0, NewError(ReasonConfigError,
				"activity %d has a pricing tier without price or pricePerParticipant", activityID)
		}

		covered = tier.MaxParticipants
	}

	if participantCount > covered {
		return 0, NewError(ReasonConfigError,
			"activity %d pricing tiers cover only %d participants, got %d", activityID, covered, participantCount)
	}

	return total, nil
}
