package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "quickcare/internal/errors"
	"quickcare/internal/model"
	"quickcare/internal/storage"
)

func newDeps() Deps {
	return Deps{Store: storage.NewMemoryStore(), Now: clock}
}

func validDoctor() model.Doctor {
	return model.Doctor{
		Name:          "Dr. Priya Singh",
		Email:         "dr.priya@fortis.com",
		Specialty:     "pediatrics",
		Experience:    8,
		Hospital:      "fortis",
		City:          "mumbai",
		Qualification: "MBBS, MD (Pediatrics)",
		Availability:  model.AvailabilityBusy,
		Fee:           decimal.NewFromInt(400),
	}
}

func messages(err error) []string {
	verr, ok := err.(*apperrors.ValidationError)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		out = append(out, f.Message)
	}
	return out
}

func TestDoctorRepository_Create(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *model.Doctor)
		wantErr []string
	}{
		{
			name:   "valid doctor",
			mutate: func(d *model.Doctor) {},
		},
		{
			name: "every required field missing",
			mutate: func(d *model.Doctor) {
				*d = model.Doctor{Experience: -1}
			},
			wantErr: []string{
				"Doctor name is required",
				"Email address is required",
				"Please select a specialty",
				"Please enter valid years of experience",
				"Please select a hospital",
				"Please select a city",
				"Qualification is required",
				"Please select availability status",
			},
		},
		{
			name:    "malformed email",
			mutate:  func(d *model.Doctor) { d.Email = "priya at fortis" },
			wantErr: []string{"Please enter a valid email address"},
		},
		{
			name:    "unknown availability",
			mutate:  func(d *model.Doctor) { d.Availability = "sleeping" },
			wantErr: []string{"Please select availability status"},
		},
		{
			name:    "negative fee",
			mutate:  func(d *model.Doctor) { d.Fee = decimal.NewFromInt(-5) },
			wantErr: []string{"Please enter a valid consultation fee"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := NewDoctorRepository(ctx, newDeps())
			d := validDoctor()
			tt.mutate(&d)

			err := repo.Create(ctx, &d)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.NotEmpty(t, d.ID)
				assert.Equal(t, fixedNow, d.CreatedAt)
				assert.Len(t, repo.List(ctx), 1)
				return
			}
			assert.Equal(t, tt.wantErr, messages(err))
			assert.Empty(t, repo.List(ctx), "failed validation must not mutate")
		})
	}
}

func TestDoctorRepository_EmailUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewDoctorRepository(ctx, newDeps())
	first := validDoctor()
	require.NoError(t, repo.Create(ctx, &first))

	dup := validDoctor()
	dup.Email = "DR.PRIYA@FORTIS.COM"
	dup.Name = ""
	err := repo.Create(ctx, &dup)
	assert.Equal(t, []string{"Doctor name is required", "A doctor with this email already exists"}, messages(err))

	other := validDoctor()
	other.Email = "dr.rohan@metrocare.com"
	require.NoError(t, repo.Create(ctx, &other))

	// saving a record with its own email is fine
	exp := 9
	updated, err := repo.Update(ctx, first.ID, model.DoctorPatch{Experience: &exp})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Experience)
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, first.CreatedAt, updated.CreatedAt)

	// taking another doctor's email is not
	taken := "Dr.Rohan@metrocare.com"
	_, err = repo.Update(ctx, first.ID, model.DoctorPatch{Email: &taken})
	assert.Equal(t, []string{"A doctor with this email already exists"}, messages(err))

	got, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "dr.priya@fortis.com", got.Email)
}

func TestDoctorRepository_UpdateDeleteMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewDoctorRepository(ctx, newDeps())

	_, err := repo.Update(ctx, "ghost", model.DoctorPatch{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.FindByID(ctx, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	removed, err := repo.Delete(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDoctorRepository_FilterAndPersistence(t *testing.T) {
	ctx := context.Background()
	deps := newDeps()
	repo := NewDoctorRepository(ctx, deps)

	seeded, err := repo.SeedIfEmpty(ctx, []model.Doctor{
		{Name: "Dr. Rajesh Sharma", Email: "dr.rajesh@apollo.com", Specialty: "cardiology", City: "delhi", Qualification: "MBBS, MD", Availability: model.AvailabilityAvailable},
		{Name: "Dr. Priya Singh", Email: "dr.priya@fortis.com", Specialty: "pediatrics", City: "mumbai", Qualification: "MBBS, DCH", Availability: model.AvailabilityBusy},
		{Name: "Dr. Sunita Nair", Email: "dr.sunita@greenvalley.com", Specialty: "dermatology", City: "mumbai", Qualification: "MD (Dermatology)", Availability: model.AvailabilityAvailable},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, seeded)

	again, err := repo.SeedIfEmpty(ctx, []model.Doctor{validDoctor()})
	require.NoError(t, err)
	assert.Zero(t, again)

	reloaded := NewDoctorRepository(ctx, deps)
	assert.Len(t, reloaded.List(ctx), 3)

	tests := []struct {
		name   string
		filter DoctorFilter
		want   []string
	}{
		{"empty filter", DoctorFilter{}, []string{"Dr. Rajesh Sharma", "Dr. Priya Singh", "Dr. Sunita Nair"}},
		{"search by qualification", DoctorFilter{Search: "dch"}, []string{"Dr. Priya Singh"}},
		{"search by email", DoctorFilter{Search: "APOLLO"}, []string{"Dr. Rajesh Sharma"}},
		{"city is case-insensitive", DoctorFilter{City: "Mumbai"}, []string{"Dr. Priya Singh", "Dr. Sunita Nair"}},
		{"conjunction", DoctorFilter{City: "mumbai", Specialty: "Dermatology"}, []string{"Dr. Sunita Nair"}},
		{"availability", DoctorFilter{Availability: "available", City: "mumbai"}, []string{"Dr. Sunita Nair"}},
		{"no match", DoctorFilter{Search: "neurology"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names := []string{}
			for _, d := range reloaded.Filter(ctx, tt.filter) {
				names = append(names, d.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}
