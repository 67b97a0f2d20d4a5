package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "quickcare/internal/errors"
	"quickcare/internal/model"
)

func TestAppointmentRepository_CreateAndSetStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentRepository(ctx, newDeps())

	a := model.Appointment{Date: "2026-03-12", Time: "10:30", Doctor: "Dr. Rajesh Sharma", Status: "Pending", PatientEmail: "john@example.com"}
	require.NoError(t, repo.Create(ctx, &a))
	assert.Equal(t, model.AppointmentStatusPending, a.Status)

	updated, err := repo.SetStatus(ctx, a.ID, model.AppointmentStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, updated.Status)

	_, err = repo.SetStatus(ctx, a.ID, "archived")
	var verr *apperrors.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = repo.SetStatus(ctx, "missing", model.AppointmentStatusCancelled)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAppointmentRepository_MigratesLegacyLists(t *testing.T) {
	ctx := context.Background()
	deps := newDeps()
	require.NoError(t, deps.Store.Set(ctx, KeyAppointments, []byte(`[{"id":"a1","date":"2026-03-01","time":"09:00","doctor":"Dr. Priya Singh","status":"pending","patientEmail":"john@example.com"}]`)))
	require.NoError(t, deps.Store.Set(ctx, KeyPatientAppointments, []byte(`[{"id":"a1","date":"2026-03-02","time":"11:00","doctor":"Dr. Rohan Shah","status":"Cancelled","reason":"Knee pain","patientEmail":"john@example.com"}]`)))
	require.NoError(t, deps.Store.Set(ctx, KeyDoctorAppointments, []byte(`[{"id":2,"date":"2026-03-10","time":"11:00","patientName":"Jane Smith","type":"Consultation","fee":600,"status":"completed"}]`)))

	repo := NewAppointmentRepository(ctx, deps)
	all := repo.List(ctx)
	require.Len(t, all, 3)

	assert.Equal(t, "a1", all[0].ID)
	assert.NotEqual(t, "a1", all[1].ID, "colliding legacy id is replaced")
	assert.Equal(t, model.AppointmentStatusCancelled, all[1].Status)
	assert.Equal(t, "Knee pain", all[1].Reason)

	assert.Equal(t, "2", all[2].ID)
	assert.Equal(t, "Consultation", all[2].Reason)
	assert.True(t, decimal.NewFromInt(600).Equal(all[2].Fee))

	legacy, _ := deps.Store.Get(ctx, KeyDoctorAppointments)
	assert.Nil(t, legacy)
	assert.Len(t, NewAppointmentRepository(ctx, deps).List(ctx), 3, "migration runs once")
}

func TestAppointmentFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentRepository(ctx, newDeps())
	_, err := repo.SeedIfEmpty(ctx, []model.Appointment{
		{Date: "2026-03-12", Status: model.AppointmentStatusPending, PatientEmail: "john@example.com", DoctorEmail: "dr.rajesh@apollo.com"},
		{Date: "2026-03-12", Status: model.AppointmentStatusCompleted, PatientEmail: "jane@example.com", DoctorEmail: "dr.priya@fortis.com"},
		{Date: "2026-03-13", Status: model.AppointmentStatusConfirmed, PatientEmail: "JOHN@example.com"},
	})
	require.NoError(t, err)

	assert.Len(t, repo.Filter(ctx, AppointmentFilter{PatientEmail: "john@example.com"}), 2)
	assert.Len(t, repo.Filter(ctx, AppointmentFilter{DoctorEmail: "dr.rajesh@apollo.com"}), 2, "unassigned appointments match any doctor")
	assert.Len(t, repo.Filter(ctx, AppointmentFilter{Date: "2026-03-12", Status: "COMPLETED"}), 1)
	assert.Len(t, repo.Filter(ctx, AppointmentFilter{}), 3)
}
