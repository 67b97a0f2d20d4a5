package auth

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickcare/internal/model"
	"quickcare/internal/storage"
)

func millis(t time.Time) []byte {
	return []byte(strconv.FormatInt(t.UnixMilli(), 10))
}

func TestSessionStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	login := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		sess model.Session
		keys []string
	}{
		{
			name: "admin layout",
			sess: model.Session{SubjectID: DefaultAdminID, Email: "admin@quickcare.com", DisplayName: DefaultAdminName, Role: model.RoleAdmin, LoginAt: login, LastActivityAt: login.Add(time.Minute)},
			keys: []string{"isAdmin", "adminData", "currentUser", "sessionStart", "lastActivity"},
		},
		{
			name: "patient layout",
			sess: model.Session{SubjectID: "john@example.com", Email: "john@example.com", DisplayName: "john", Role: model.RolePatient, LoginAt: login, LastActivityAt: login},
			keys: []string{"currentUser", "sessionStart", "lastActivity"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := storage.NewMemoryStore()
			s := NewSessionStore(mem)
			sess := tt.sess
			require.NoError(t, s.Save(ctx, &sess))
			assert.ElementsMatch(t, tt.keys, mem.Keys())
			raw, err := mem.Get(ctx, "currentUser")
			require.NoError(t, err)
			assert.Contains(t, string(raw), `"version":1`)

			got, err := s.Load(ctx)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.sess, *got)
		})
	}
}

func TestSessionStore_ReadsExistingEntries(t *testing.T) {
	ctx := context.Background()
	login := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("current user without activity falls back to login time", func(t *testing.T) {
		mem := storage.NewMemoryStore()
		require.NoError(t, mem.Set(ctx, "currentUser", []byte(`{"email":"dr.sunita@greenvalley.com","name":"dr.sunita","type":"doctor","loginTime":"2026-03-10T09:00:00.000Z"}`)))

		got, err := NewSessionStore(mem).Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, model.RoleDoctor, got.Role)
		assert.Equal(t, login, got.LoginAt)
		assert.Equal(t, login, got.LastActivityAt)
	})

	t.Run("admin data without optional fields", func(t *testing.T) {
		mem := storage.NewMemoryStore()
		require.NoError(t, mem.Set(ctx, "isAdmin", []byte("true")))
		require.NoError(t, mem.Set(ctx, "adminData", []byte(`{"email":"admin@quickcare.com"}`)))
		require.NoError(t, mem.Set(ctx, "sessionStart", millis(login)))
		require.NoError(t, mem.Set(ctx, "lastActivity", millis(login.Add(-time.Hour))))

		got, err := NewSessionStore(mem).Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, DefaultAdminID, got.SubjectID)
		assert.Equal(t, DefaultAdminName, got.DisplayName)
		assert.Equal(t, login, got.LastActivityAt, "activity before login is clamped")
	})

	unusable := map[string]map[string]string{
		"empty store":            {},
		"malformed current user": {"currentUser": "{oops"},
		"unknown role":           {"currentUser": `{"email":"x@y.z","type":"nurse","loginTime":"2026-03-10T09:00:00Z"}`},
		"admin without flag":     {"currentUser": `{"email":"admin@quickcare.com","type":"admin","loginTime":"2026-03-10T09:00:00Z"}`},
		"no login time":          {"currentUser": `{"email":"x@y.z","type":"patient"}`},
		"malformed admin data":   {"isAdmin": "true", "adminData": "[]", "sessionStart": "123"},
		"newer user version":     {"currentUser": `{"version":2,"email":"x@y.z","type":"patient","loginTime":"2026-03-10T09:00:00Z"}`},
		"newer admin version":    {"isAdmin": "true", "adminData": `{"version":9,"email":"admin@quickcare.com"}`, "sessionStart": "1773133200000"},
	}
	for name, entries := range unusable {
		t.Run(name, func(t *testing.T) {
			mem := storage.NewMemoryStore()
			for k, v := range entries {
				require.NoError(t, mem.Set(ctx, k, []byte(v)))
			}
			got, err := NewSessionStore(mem).Load(ctx)
			assert.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestSessionStore_ClearAndLogoutMessage(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	s := NewSessionStore(mem)
	now := time.Now().UTC()
	require.NoError(t, s.Save(ctx, &model.Session{Email: "a@b.co", Role: model.RolePatient, LoginAt: now, LastActivityAt: now}))
	require.NoError(t, mem.Set(ctx, "doctor_stats", []byte("{}")))
	require.NoError(t, mem.Set(ctx, "doctors", []byte("[]")))

	require.NoError(t, s.Clear(ctx, "doctor_stats"))
	require.NoError(t, s.SetLogoutMessage(ctx, MessageInactivity))
	assert.ElementsMatch(t, []string{"doctors", "logoutMessage"}, mem.Keys())

	msg, err := s.ConsumeLogoutMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, MessageInactivity, msg)
	msg, err = s.ConsumeLogoutMessage(ctx)
	require.NoError(t, err)
	assert.Empty(t, msg)
}
