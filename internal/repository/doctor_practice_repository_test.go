package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "quickcare/internal/errors"
	"quickcare/internal/model"
)

func TestAvailabilityRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAvailabilityRepository(ctx, newDeps())

	tests := []struct {
		name    string
		slot    model.AvailabilitySlot
		wantErr []string
	}{
		{
			name: "valid slot",
			slot: model.AvailabilitySlot{Date: "2026-03-12", StartTime: "14:00", EndTime: "17:00", Duration: 30, Fee: decimal.NewFromInt(500)},
		},
		{
			name:    "end before start",
			slot:    model.AvailabilitySlot{Date: "2026-03-12", StartTime: "14:00", EndTime: "13:00", Duration: 30},
			wantErr: []string{"End time must be after start time"},
		},
		{
			name:    "end equal to start",
			slot:    model.AvailabilitySlot{Date: "2026-03-12", StartTime: "14:00", EndTime: "14:00", Duration: 30},
			wantErr: []string{"End time must be after start time"},
		},
		{
			name:    "malformed fields",
			slot:    model.AvailabilitySlot{Date: "12/03/2026", StartTime: "9am", EndTime: "17:00", Duration: 0},
			wantErr: []string{"Please select a date", "Please enter a valid start time", "Please enter a valid slot duration"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := tt.slot
			err := repo.Create(ctx, &slot)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.NotEmpty(t, slot.ID)
				return
			}
			assert.Equal(t, tt.wantErr, messages(err))
		})
	}

	early := model.AvailabilitySlot{Date: "2026-03-11", StartTime: "09:00", EndTime: "12:00", Duration: 15}
	require.NoError(t, repo.Create(ctx, &early))
	slots := repo.List(ctx)
	require.Len(t, slots, 2)
	assert.Equal(t, early.ID, slots[0].ID)

	moved, err := repo.Update(ctx, early.ID, model.AvailabilitySlot{Date: "2026-03-13", StartTime: "10:00", EndTime: "11:30", Duration: 15})
	require.NoError(t, err)
	assert.Equal(t, early.ID, moved.ID)
	assert.Equal(t, early.CreatedAt, moved.CreatedAt)
	require.NotNil(t, moved.UpdatedAt)
	slots = repo.List(ctx)
	require.Len(t, slots, 2)
	assert.Equal(t, early.ID, slots[1].ID, "moved slot sorts after the 12th")
	assert.Equal(t, "11:30", slots[1].EndTime)

	_, err = repo.Update(ctx, early.ID, model.AvailabilitySlot{Date: "2026-03-13", StartTime: "10:00", EndTime: "09:00", Duration: 15})
	assert.Equal(t, []string{"End time must be after start time"}, messages(err))
	got := repo.List(ctx)
	assert.Equal(t, "11:30", got[1].EndTime)

	_, err = repo.Update(ctx, "missing", model.AvailabilitySlot{Date: "2026-03-13", StartTime: "10:00", EndTime: "11:00", Duration: 15})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	removed, err := repo.Delete(ctx, early.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Len(t, repo.List(ctx), 1)
}

func TestDoctorPatientFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewDoctorPatientRepository(ctx, newDeps())
	_, err := repo.SeedIfEmpty(ctx, []model.DoctorPatient{
		{Name: "John Doe", LastVisit: "2026-03-05", NextAppointment: "2026-03-20", Condition: "Hypertension"},
		{Name: "Jane Smith", LastVisit: "2026-02-01", NextAppointment: "2026-03-09", Condition: "Diabetes"},
		{Name: "Sarah Wilson", LastVisit: "2026-03-03", Condition: "Regular Checkup"},
	})
	require.NoError(t, err)

	now := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		filter PatientFilter
		want   []string
	}{
		{"all", PatientFilter{Now: now}, []string{"John Doe", "Jane Smith", "Sarah Wilson"}},
		{"search condition", PatientFilter{Search: "diab", Now: now}, []string{"Jane Smith"}},
		{"recent visits", PatientFilter{Scope: PatientScopeRecent, Now: now}, []string{"John Doe", "Sarah Wilson"}},
		{"upcoming appointments", PatientFilter{Scope: PatientScopeUpcoming, Now: now}, []string{"John Doe"}},
		{"search and scope", PatientFilter{Search: "sarah", Scope: PatientScopeUpcoming, Now: now}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names := []string{}
			for _, p := range repo.Filter(ctx, tt.filter) {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}

	bad := model.DoctorPatient{Name: "", Age: -3}
	assert.Equal(t, []string{"Patient name is required", "Please enter a valid age"}, messages(repo.Create(ctx, &bad)))
}
