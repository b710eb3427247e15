package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultacerta/noshow-backend/internal/domain/entities"
	apperrors "github.com/consultacerta/noshow-backend/pkg/errors"
)

type recordingProfileRepo struct {
	stubProfileRepo
	upserted []*entities.HealthProfile
}

func (r *recordingProfileRepo) Upsert(ctx context.Context, profile *entities.HealthProfile) error {
	r.upserted = append(r.upserted, profile)
	return nil
}

func validProfile() *entities.HealthProfile {
	return &entities.HealthProfile{
		PatientID:    "patient-ana",
		Age:          68,
		Gender:       "F",
		Hypertension: entities.Yes,
		Diabetes:     entities.No,
		Alcoholism:   entities.No,
		Disability:   entities.No,
	}
}

func TestSaveProfile_SetsTimestamps(t *testing.T) {
	repo := &recordingProfileRepo{}
	svc := NewHealthProfileService(repo)

	profile := validProfile()
	require.NoError(t, svc.Save(context.Background(), profile))

	require.Len(t, repo.upserted, 1)
	assert.False(t, repo.upserted[0].CreatedAt.IsZero())
	assert.False(t, repo.upserted[0].UpdatedAt.IsZero())
}

func TestSaveProfile_Validation(t *testing.T) {
	svc := NewHealthProfileService(&recordingProfileRepo{})

	cases := []struct {
		name   string
		mutate func(*entities.HealthProfile)
	}{
		{"missing patient id", func(p *entities.HealthProfile) { p.PatientID = "" }},
		{"negative age", func(p *entities.HealthProfile) { p.Age = -1 }},
		{"bad gender", func(p *entities.HealthProfile) { p.Gender = "X" }},
		{"bad hypertension", func(p *entities.HealthProfile) { p.Hypertension = "sim" }},
		{"bad disability", func(p *entities.HealthProfile) { p.Disability = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile := validProfile()
			tc.mutate(profile)

			err := svc.Save(context.Background(), profile)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		})
	}
}

func TestSaveProfile_InvalidatesCachedPrediction(t *testing.T) {
	repo := &recordingProfileRepo{}
	svc := NewHealthProfileService(repo)

	cache := newMemoryCache()
	cache.data[predictionCacheKey("apt-1")] = []byte(`{}`)
	svc.SetCache(&stubAppointmentRepo{
		appointment: &entities.Appointment{ID: "apt-1", PatientID: "patient-ana"},
	}, cache)

	require.NoError(t, svc.Save(context.Background(), validProfile()))

	_, ok := cache.data[predictionCacheKey("apt-1")]
	assert.False(t, ok, "stale prediction should be evicted")
}

func TestSaveProfile_NoActiveAppointmentSkipsInvalidation(t *testing.T) {
	repo := &recordingProfileRepo{}
	svc := NewHealthProfileService(repo)

	cache := newMemoryCache()
	svc.SetCache(&stubAppointmentRepo{
		err: apperrors.NewNotFoundError("no active appointment"),
	}, cache)

	require.NoError(t, svc.Save(context.Background(), validProfile()))
	require.Len(t, repo.upserted, 1)
}

func TestGetProfile_RequiresPatientID(t *testing.T) {
	svc := NewHealthProfileService(&recordingProfileRepo{})

	_, err := svc.Get(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}
