package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
)

func TestCheckRequiredFields(t *testing.T) {
	activity := &domain.Activity{
		ID: 5,
		Constraints: &domain.ActivityConstraints{
			RequiredFields: []string{"emergency_contact"},
		},
	}

	t.Run("all fields present", func(t *testing.T) {
		reservation := &domain.Reservation{
			ID: 100,
			Participants: []domain.Participant{
				{Metadata: map[string]string{"emergency_contact": "+1234"}},
			},
		}
		assert.NoError(t, CheckRequiredFields(activity, reservation))
	})

	t.Run("missing field is a config error", func(t *testing.T) {
		reservation := &domain.Reservation{
			ID: 100,
			Participants: []domain.Participant{
				{Metadata: map[string]string{"emergency_contact": "+1234"}},
				{Metadata: map[string]string{}},
			},
		}

		err := CheckRequiredFields(activity, reservation)
		require.Error(t, err)
		reason, ok := ReasonOf(err)
		require.True(t, ok)
		assert.Equal(t, ReasonConfigError, reason)
		assert.False(t, IsConstraintViolation(err))
		assert.Contains(t, err.Error(), "emergency_contact")
		assert.Contains(t, err.Error(), "participant 2")
	})

	t.Run("no constraints means no requirements", func(t *testing.T) {
		reservation := &domain.Reservation{ID: 100}
		assert.NoError(t, CheckRequiredFields(&domain.Activity{ID: 5}, reservation))
		assert.NoError(t, CheckRequiredFields(activity, reservation))
	})
}
