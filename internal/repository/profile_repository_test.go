package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickcare/internal/model"
)

func TestProfileRepository_PatientProfile(t *testing.T) {
	ctx := context.Background()
	deps := newDeps()
	repo := NewProfileRepository(deps)

	profile := repo.PatientProfile(ctx)
	assert.Equal(t, model.DefaultPatientProfile(), profile)
	stored, _ := deps.Store.Get(ctx, KeyPatientData)
	assert.NotNil(t, stored, "default is stored on first access")

	profile.PersonalInfo.FullName = "Anita Desai"
	profile.MemberSince = ""
	require.NoError(t, repo.SavePatientProfile(ctx, profile))

	got := NewProfileRepository(deps).PatientProfile(ctx)
	assert.Equal(t, "Anita Desai", got.PersonalInfo.FullName)
	assert.Equal(t, "January 2025", got.MemberSince)

	profile.PersonalInfo.FullName = ""
	profile.PersonalInfo.Phone = "123"
	assert.Equal(t, []string{"Full name is required", "Please enter a valid phone number"}, messages(repo.SavePatientProfile(ctx, profile)))
}

func TestProfileRepository_DoctorProfile(t *testing.T) {
	ctx := context.Background()
	deps := newDeps()
	require.NoError(t, deps.Store.Set(ctx, KeyDoctorProfile, []byte(`{broken`)))
	repo := NewProfileRepository(deps)

	assert.Equal(t, model.DefaultDoctorProfile(), repo.DoctorProfile(ctx), "corrupt document falls back to default")

	p := repo.DoctorProfile(ctx)
	p.Address = "42 Residency Road, Bengaluru"
	require.NoError(t, repo.SaveDoctorProfile(ctx, p))
	assert.Equal(t, "42 Residency Road, Bengaluru", repo.DoctorProfile(ctx).Address)

	p.Email = "not-an-email"
	assert.Equal(t, []string{"Please enter a valid email address"}, messages(repo.SaveDoctorProfile(ctx, p)))
}
