package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "quickcare/internal/errors"
	"quickcare/internal/model"
	"quickcare/internal/notify"
	"quickcare/internal/storage"
)

// MockWatcher is a mock implementation of Watcher.
type MockWatcher struct {
	mock.Mock
}

func (m *MockWatcher) Watch(clientID string, every time.Duration, job func()) {
	m.Called(clientID, every, job)
}

func (m *MockWatcher) Unwatch(clientID string) {
	m.Called(clientID)
}

// fakeClock is a settable clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fixture struct {
	manager *Manager
	store   *storage.MemoryStore
	clock   *fakeClock
	notices *notify.Board
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		store:   storage.NewMemoryStore(),
		clock:   &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)},
		notices: notify.NewBoard(),
	}
	t.Cleanup(f.notices.Close)
	base := []Option{
		WithClock(f.clock.Now),
		WithNotices(f.notices),
		WithScopedKeys([]string{"doctor_patients", "doctor_stats"}),
	}
	f.manager = NewManager("client-1", NewSessionStore(f.store), DefaultPolicy(), append(base, opts...)...)
	return f
}

func (f *fixture) login(t *testing.T, email string) *model.Session {
	t.Helper()
	sess, err := f.manager.Login(context.Background(), Credentials{Email: email, Password: "secret"})
	require.NoError(t, err)
	return sess
}

func TestManager_Login(t *testing.T) {
	tests := []struct {
		name     string
		creds    Credentials
		wantRole model.Role
		wantName string
		wantErr  bool
	}{
		{name: "admin by pattern", creds: Credentials{Email: "admin@quickcare.com", Password: "x"}, wantRole: model.RoleAdmin, wantName: DefaultAdminName},
		{name: "doctor by word", creds: Credentials{Email: "doctor.kavita@citygeneral.com", Password: "x"}, wantRole: model.RoleDoctor, wantName: "doctor.kavita"},
		{name: "doctor by title", creds: Credentials{Email: "Dr.Rohan@metrocare.com", Password: "x"}, wantRole: model.RoleDoctor, wantName: "Dr.Rohan"},
		{name: "patient by default", creds: Credentials{Email: "john@example.com", Password: "x", Name: "John Doe"}, wantRole: model.RolePatient, wantName: "John Doe"},
		{name: "empty email", creds: Credentials{Password: "x"}, wantErr: true},
		{name: "empty password", creds: Credentials{Email: "john@example.com"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			sess, err := f.manager.Login(context.Background(), tt.creds)
			if tt.wantErr {
				var verr *apperrors.ValidationError
				assert.ErrorAs(t, err, &verr)
				assert.Nil(t, f.manager.CurrentSession(context.Background()))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, sess.Role)
			assert.Equal(t, tt.wantName, sess.DisplayName)

			current := f.manager.CurrentSession(context.Background())
			require.NotNil(t, current)
			assert.Equal(t, *sess, *current)
		})
	}
}

func TestManager_CustomResolver(t *testing.T) {
	f := newFixture(t, WithResolver(ResolverFunc(func(string) model.Role { return model.RoleDoctor })))
	sess := f.login(t, "admin@quickcare.com")
	assert.Equal(t, model.RoleDoctor, sess.Role)
}

func TestManager_IdleTimeout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.login(t, "john@example.com")

	f.clock.Advance(29 * time.Minute)
	require.NotNil(t, f.manager.CurrentSession(ctx))

	f.clock.Advance(time.Minute)
	assert.Nil(t, f.manager.CurrentSession(ctx), "expires at exactly the timeout")
	assert.Equal(t, MessageSessionExpired, f.manager.ConsumeLogoutMessage(ctx))
	assert.Empty(t, f.manager.ConsumeLogoutMessage(ctx), "message is one-shot")
	assert.Empty(t, f.store.Keys())
}

func TestManager_ActivityDefersIdleButNotAbsoluteTimeout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.login(t, "john@example.com")

	f.clock.Advance(20 * time.Minute)
	require.True(t, f.manager.TouchActivity(ctx))
	f.clock.Advance(9 * time.Minute)
	require.NotNil(t, f.manager.CurrentSession(ctx), "idle for 9 minutes only")

	f.clock.Advance(time.Minute)
	assert.Nil(t, f.manager.CurrentSession(ctx), "30 minutes since login")
	assert.False(t, f.manager.TouchActivity(ctx), "activity does not revive a session")
}

func TestManager_RenewRestartsClocks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.login(t, "admin@quickcare.com")

	f.clock.Advance(25 * time.Minute)
	renewed, err := f.manager.Renew(ctx)
	require.NoError(t, err)
	assert.Equal(t, f.clock.Now(), renewed.LoginAt)

	f.clock.Advance(25 * time.Minute)
	assert.NotNil(t, f.manager.CurrentSession(ctx))

	require.NoError(t, f.manager.Logout(ctx, ""))
	_, err = f.manager.Renew(ctx)
	var authErr *apperrors.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, apperrors.AuthRequired, authErr.Kind)
}

func TestManager_ClampsFutureActivity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.login(t, "john@example.com")
	require.NoError(t, f.store.Set(ctx, "lastActivity", millis(f.clock.Now().Add(time.Hour))))

	sess := f.manager.CurrentSession(ctx)
	require.NotNil(t, sess)
	assert.Equal(t, f.clock.Now(), sess.LastActivityAt)
}

func TestManager_IsNearExpiry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	assert.False(t, f.manager.IsNearExpiry(ctx))

	f.login(t, "john@example.com")
	f.clock.Advance(25 * time.Minute)
	assert.False(t, f.manager.IsNearExpiry(ctx), "boundary is exclusive")
	f.clock.Advance(time.Second)
	assert.True(t, f.manager.IsNearExpiry(ctx))
}

func TestManager_CheckExpiryWarnsOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.login(t, "john@example.com")

	f.manager.CheckExpiry(ctx)
	assert.False(t, f.manager.WarningShown())

	f.clock.Advance(26 * time.Minute)
	f.manager.CheckExpiry(ctx)
	f.manager.CheckExpiry(ctx)
	require.True(t, f.manager.WarningShown())
	require.Len(t, f.notices.List(), 1)
	assert.Equal(t, ActionExtend, f.notices.List()[0].Action)

	_, err := f.manager.ExtendSession(ctx)
	require.NoError(t, err)
	assert.False(t, f.manager.WarningShown())
	assert.Empty(t, f.notices.List())
}

func TestManager_CheckExpiryLogsOutIdleSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.login(t, "dr.rajesh@apollo.com")
	require.NoError(t, f.store.Set(ctx, "doctor_patients", []byte("[]")))
	require.NoError(t, f.store.Set(ctx, "doctors", []byte("[]")))

	f.clock.Advance(31 * time.Minute)
	f.manager.CheckExpiry(ctx)

	assert.Nil(t, f.manager.CurrentSession(ctx))
	assert.Equal(t, MessageInactivity, f.manager.ConsumeLogoutMessage(ctx))
	assert.ElementsMatch(t, []string{"doctors"}, f.store.Keys(), "only session-scoped data is dropped")
}

func TestManager_WarningAutoDismissResetsFlag(t *testing.T) {
	ctx := context.Background()
	policy := DefaultPolicy()
	policy.WarningTTL = 20 * time.Millisecond
	f := newFixture(t)
	f.manager.policy = policy
	f.login(t, "john@example.com")

	f.clock.Advance(27 * time.Minute)
	f.manager.CheckExpiry(ctx)
	require.True(t, f.manager.WarningShown())

	require.Eventually(t, func() bool { return !f.manager.WarningShown() }, time.Second, 5*time.Millisecond)
	f.manager.CheckExpiry(ctx)
	assert.True(t, f.manager.WarningShown(), "warning can be shown again after auto-dismiss")
}

func TestManager_LogoutIsIdempotentAndUnwatches(t *testing.T) {
	ctx := context.Background()
	w := new(MockWatcher)
	w.On("Watch", "client-1", 5*time.Minute, mock.Anything).Once()
	w.On("Unwatch", "client-1").Twice()

	f := newFixture(t, WithWatcher(w))
	f.login(t, "john@example.com")

	require.NoError(t, f.manager.Logout(ctx, "Logged out"))
	require.NoError(t, f.manager.Logout(ctx, ""))
	assert.Nil(t, f.manager.CurrentSession(ctx))
	assert.Equal(t, "Logged out", f.manager.ConsumeLogoutMessage(ctx))

	w.AssertExpectations(t)
}

func TestManager_RequireRole(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.manager.RequireRole(ctx, model.RolePatient)
	var authErr *apperrors.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, apperrors.AuthRequired, authErr.Kind)
	assert.Equal(t, apperrors.SignInPath, authErr.Redirect)

	f.login(t, "john@example.com")
	_, err = f.manager.RequireRole(ctx, model.RoleAdmin)
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, apperrors.AuthRoleMismatch, authErr.Kind)
	assert.Equal(t, apperrors.HomePath, authErr.Redirect)

	sess, err := f.manager.RequireRole(ctx, model.RolePatient)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", sess.Email)
}

func TestManager_FutureLoginIsDropped(t *testing.T) {
	ctx := context.Background()

	t.Run("on read", func(t *testing.T) {
		f := newFixture(t)
		f.login(t, "john@example.com")
		require.NoError(t, f.store.Set(ctx, "sessionStart", millis(f.clock.Now().Add(time.Hour))))

		assert.Nil(t, f.manager.CurrentSession(ctx))
		assert.False(t, f.manager.TouchActivity(ctx))
		raw, err := f.store.Get(ctx, "currentUser")
		require.NoError(t, err)
		assert.Nil(t, raw)
		assert.Equal(t, MessageSessionExpired, f.manager.ConsumeLogoutMessage(ctx))
	})

	t.Run("on periodic check", func(t *testing.T) {
		f := newFixture(t)
		f.login(t, "john@example.com")
		require.NoError(t, f.store.Set(ctx, "sessionStart", millis(f.clock.Now().Add(time.Hour))))

		f.manager.CheckExpiry(ctx)
		raw, err := f.store.Get(ctx, "sessionStart")
		require.NoError(t, err)
		assert.Nil(t, raw)
		assert.Equal(t, MessageSessionExpired, f.manager.ConsumeLogoutMessage(ctx))
	})
}

func TestManager_PeriodicCheckHoldsJobGuard(t *testing.T) {
	ctx := context.Background()
	watcher := &MockWatcher{}
	var job func()
	watcher.On("Watch", "client-1", 5*time.Minute, mock.Anything).Run(func(args mock.Arguments) {
		job = args.Get(2).(func())
	})
	watcher.On("Unwatch", "client-1").Return()

	var guard sync.Mutex
	f := newFixture(t, WithWatcher(watcher), WithJobGuard(&guard))
	f.login(t, "john@example.com")
	require.NotNil(t, job)
	f.clock.Advance(31 * time.Minute)

	guard.Lock()
	done := make(chan struct{})
	go func() {
		job()
		close(done)
	}()
	finished := func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}
	assert.Never(t, finished, 50*time.Millisecond, 10*time.Millisecond)
	guard.Unlock()

	require.Eventually(t, finished, time.Second, 10*time.Millisecond)
	assert.Equal(t, MessageInactivity, f.manager.ConsumeLogoutMessage(ctx))
}
