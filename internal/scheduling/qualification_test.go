package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
)

func TestCheckQualificationActivityType(t *testing.T) {
	instructor := &domain.Instructor{
		ID:            10,
		ActivityTypes: []string{"dive", "snorkel"},
	}

	dive := &domain.Activity{ID: 1, ActivityType: "dive"}
	surf := &domain.Activity{ID: 2, ActivityType: "surf"}

	assert.NoError(t, CheckQualification(instructor, dive, nil))

	err := CheckQualification(instructor, surf, nil)
	require.Error(t, err)
	reason, ok := ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, ReasonQualification, reason)
	assert.Contains(t, err.Error(), `"surf"`)
}

func TestCheckQualificationAddOnCertifications(t *testing.T) {
	activity := &domain.Activity{
		ID:           1,
		ActivityType: "dive",
		Constraints: &domain.ActivityConstraints{
			AddOnCertifications: map[string][]string{
				"night_dive": {"night-cert"},
				"deep_dive":  {"deep-cert"},
			},
		},
	}

	certified := &domain.Instructor{
		ID:             10,
		ActivityTypes:  []string{"dive"},
		Certifications: []string{"night-cert", "deep-cert"},
	}
	uncertified := &domain.Instructor{
		ID:             11,
		ActivityTypes:  []string{"dive"},
		Certifications: []string{"night-cert"},
	}

	assert.NoError(t, CheckQualification(certified, activity, []string{"night_dive", "deep_dive"}))
	assert.NoError(t, CheckQualification(uncertified, activity, []string{"night_dive"}))

	// Отказ именует недостающий сертификат
	err := CheckQualification(uncertified, activity, []string{"deep_dive"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deep-cert")

	// Дополнение без требований к сертификатам проходит всегда
	assert.NoError(t, CheckQualification(uncertified, activity, []string{"photo_package"}))
}

func TestMissingCertifications(t *testing.T) {
	instructor := &domain.Instructor{Certifications: []string{"a", "b"}}

	assert.Empty(t, MissingCertifications(instructor, nil))
	assert.Empty(t, MissingCertifications(instructor, []string{"a"}))
	assert.Equal(t, []string{"c"}, MissingCertifications(instructor, []string{"b", "c"}))
}
