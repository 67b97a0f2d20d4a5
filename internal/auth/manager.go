package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "quickcare/internal/errors"
	"quickcare/internal/model"
	"quickcare/internal/notify"
)

// Logout reasons shown on the sign-in view.
const (
	MessageSessionExpired = "Session expired. Please login again."
	MessageInactivity     = "Session expired due to inactivity."
)

// ActionExtend is the action attached to the expiry warning.
const ActionExtend = "extend-session"

const warningMessage = "Your session will expire in %d minutes due to inactivity."

// Policy holds the session timing rules.
type Policy struct {
	// Timeout is the allowed time without tracked activity.
	Timeout time.Duration
	// AbsoluteTimeout is the allowed time since login or the last renewal.
	AbsoluteTimeout time.Duration
	// WarningWindow is how long before the idle timeout the warning appears.
	WarningWindow time.Duration
	CheckInterval time.Duration
	WarningTTL    time.Duration
}

// DefaultPolicy is 30 minutes of session, a warning 5 minutes before the
// end, checked every 5 minutes, shown for one minute.
func DefaultPolicy() Policy {
	return Policy{
		Timeout:         30 * time.Minute,
		AbsoluteTimeout: 30 * time.Minute,
		WarningWindow:   5 * time.Minute,
		CheckInterval:   5 * time.Minute,
		WarningTTL:      time.Minute,
	}
}

// Credentials is what the sign-in form submits.
type Credentials struct {
	Email    string
	Password string
	Name     string
}

// ActivityEvents are the interactions that count as activity.
var ActivityEvents = map[string]bool{
	"pointerdown": true,
	"pointermove": true,
	"keypress":    true,
	"scroll":      true,
	"touchstart":  true,
	"click":       true,
	"visibility":  true,
}

// Manager owns the session of one client: login, logout, expiry, renewal
// and activity tracking. All methods are safe for concurrent use.
type Manager struct {
	mu         sync.Mutex
	clientID   string
	sessions   SessionStoreInterface
	policy     Policy
	resolver   RoleResolver
	watcher    Watcher
	notices    *notify.Board
	scopedKeys []string
	guard      sync.Locker
	now        func() time.Time
	log        *logrus.Entry

	warningID string
}

// Option customises a Manager.
type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithResolver replaces the email pattern role resolver.
func WithResolver(r RoleResolver) Option {
	return func(m *Manager) { m.resolver = r }
}

// WithWatcher schedules the periodic expiry check.
func WithWatcher(w Watcher) Option {
	return func(m *Manager) { m.watcher = w }
}

// WithNotices publishes the expiry warning on b.
func WithNotices(b *notify.Board) Option {
	return func(m *Manager) { m.notices = b }
}

// WithScopedKeys names extra store keys dropped on logout.
func WithScopedKeys(keys []string) Option {
	return func(m *Manager) { m.scopedKeys = append([]string(nil), keys...) }
}

// WithJobGuard makes the periodic check hold g while it runs, so it never
// interleaves with a request that holds the same lock.
func WithJobGuard(g sync.Locker) Option {
	return func(m *Manager) { m.guard = g }
}

type noopWatcher struct{}

func (noopWatcher) Watch(string, time.Duration, func()) {}
func (noopWatcher) Unwatch(string)                      {}

// NewManager creates the session manager of clientID.
func NewManager(clientID string, sessions SessionStoreInterface, policy Policy, opts ...Option) *Manager {
	m := &Manager{
		clientID: clientID,
		sessions: sessions,
		policy:   policy,
		resolver: PatternResolver{},
		watcher:  noopWatcher{},
		now:      time.Now,
		log:      logrus.WithField("client_id", clientID),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login opens a session. Only an empty email or password is rejected; the
// role comes from the resolver.
func (m *Manager) Login(ctx context.Context, creds Credentials) (*model.Session, error) {
	email := strings.TrimSpace(creds.Email)
	verr := &apperrors.ValidationError{}
	if email == "" {
		verr.Add("email", "Email is required")
	}
	if creds.Password == "" {
		verr.Add("password", "Password is required")
	}
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	sess := &model.Session{
		SubjectID:      email,
		Email:          email,
		DisplayName:    LocalPart(email),
		Role:           m.resolver.Resolve(email),
		LoginAt:        now,
		LastActivityAt: now,
	}
	if sess.Role == model.RoleAdmin {
		sess.SubjectID = DefaultAdminID
		sess.DisplayName = DefaultAdminName
	}
	if name := strings.TrimSpace(creds.Name); name != "" {
		sess.DisplayName = name
	}

	if err := m.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	m.dismissWarningLocked()
	m.watcher.Watch(m.clientID, m.policy.CheckInterval, m.runCheck)

	m.log.WithFields(logrus.Fields{
		"email": sess.Email,
		"role":  sess.Role,
	}).Info("session opened")
	return sess, nil
}

// CurrentSession returns the live session or nil. An expired session is
// logged out on the way.
func (m *Manager) CurrentSession(ctx context.Context) *model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentLocked(ctx)
}

// TouchActivity records activity now. It reports false when there is no
// live session, so activity never revives an expired one.
func (m *Manager) TouchActivity(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.currentLocked(ctx) == nil {
		return false
	}
	if err := m.sessions.Touch(ctx, m.now().UTC()); err != nil {
		m.log.WithError(err).Warn("failed to record activity")
		return false
	}
	return true
}

// IsNearExpiry reports whether the idle time has entered the warning window.
func (m *Manager) IsNearExpiry(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := m.currentLocked(ctx)
	if sess == nil {
		return false
	}
	return sess.Idle(m.now()) > m.policy.Timeout-m.policy.WarningWindow
}

// CheckExpiry is the periodic job: it logs out an idle session and shows a
// single warning when the session is about to expire.
func (m *Manager) CheckExpiry(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, err := m.sessions.Load(ctx)
	if err != nil || sess == nil {
		m.dismissWarningLocked()
		m.watcher.Unwatch(m.clientID)
		return
	}

	now := m.now().UTC()
	switch {
	case sess.LoginAt.After(now):
		m.log.WithField("login_at", sess.LoginAt).Warn("session starts in the future, dropping it")
		m.logoutLocked(ctx, MessageSessionExpired)
	case sess.Idle(now) >= m.policy.Timeout:
		m.logoutLocked(ctx, MessageInactivity)
	case sess.Age(now) >= m.policy.AbsoluteTimeout:
		m.logoutLocked(ctx, MessageSessionExpired)
	case sess.Idle(now) > m.policy.Timeout-m.policy.WarningWindow:
		m.showWarningLocked()
	}
}

// ExtendSession is the warning's extend action: it records activity and
// dismisses the warning.
func (m *Manager) ExtendSession(ctx context.Context) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := m.currentLocked(ctx)
	if sess == nil {
		return nil, apperrors.NewAuthRequired()
	}
	sess.LastActivityAt = m.now().UTC()
	if err := m.sessions.Touch(ctx, sess.LastActivityAt); err != nil {
		return nil, fmt.Errorf("extend session: %w", err)
	}
	m.dismissWarningLocked()
	return sess, nil
}

// Renew restarts both session clocks.
func (m *Manager) Renew(ctx context.Context) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := m.currentLocked(ctx)
	if sess == nil {
		return nil, apperrors.NewAuthRequired()
	}
	now := m.now().UTC()
	sess.LoginAt = now
	sess.LastActivityAt = now
	if err := m.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("renew session: %w", err)
	}
	m.dismissWarningLocked()
	m.log.WithField("email", sess.Email).Info("session renewed")
	return sess, nil
}

// Logout ends the session and drops session-scoped data. A non-empty reason
// is kept for the sign-in view. Logging out twice is harmless.
func (m *Manager) Logout(ctx context.Context, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logoutLocked(ctx, reason)
}

// ConsumeLogoutMessage returns the pending logout reason once.
func (m *Manager) ConsumeLogoutMessage(ctx context.Context) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg, err := m.sessions.ConsumeLogoutMessage(ctx)
	if err != nil {
		m.log.WithError(err).Warn("failed to read logout message")
		return ""
	}
	return msg
}

// RequireRole gates a view. It fails with an AuthError that tells the
// caller where to redirect.
func (m *Manager) RequireRole(ctx context.Context, role model.Role) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := m.currentLocked(ctx)
	if sess == nil {
		return nil, apperrors.NewAuthRequired()
	}
	if sess.Role != role {
		return nil, apperrors.NewRoleMismatch(string(role))
	}
	return sess, nil
}

// Resume restarts the periodic check for a session persisted by an earlier
// process. It reports whether a live session was found.
func (m *Manager) Resume(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.currentLocked(ctx) == nil {
		return false
	}
	m.watcher.Watch(m.clientID, m.policy.CheckInterval, m.runCheck)
	return true
}

// WarningShown reports whether the expiry warning is currently displayed.
func (m *Manager) WarningShown() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.warningID != "" && m.notices != nil && m.notices.Has(m.warningID)
}

// Close stops the periodic check and clears any warning. The stored
// session is left untouched.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dismissWarningLocked()
	m.watcher.Unwatch(m.clientID)
}

func (m *Manager) runCheck() {
	if m.guard != nil {
		m.guard.Lock()
		defer m.guard.Unlock()
	}
	m.CheckExpiry(context.Background())
}

func (m *Manager) currentLocked(ctx context.Context) *model.Session {
	sess, err := m.sessions.Load(ctx)
	if err != nil || sess == nil {
		return nil
	}
	now := m.now().UTC()
	if sess.LoginAt.After(now) {
		m.log.WithField("login_at", sess.LoginAt).Warn("session starts in the future, dropping it")
		m.logoutLocked(ctx, MessageSessionExpired)
		return nil
	}
	if sess.LastActivityAt.After(now) {
		sess.LastActivityAt = now
	}
	if sess.Idle(now) >= m.policy.Timeout || sess.Age(now) >= m.policy.AbsoluteTimeout {
		m.logoutLocked(ctx, MessageSessionExpired)
		return nil
	}
	return sess
}

func (m *Manager) logoutLocked(ctx context.Context, reason string) error {
	if err := m.sessions.Clear(ctx, m.scopedKeys...); err != nil {
		m.log.WithError(err).Error("failed to clear session")
		return err
	}
	if reason != "" {
		if err := m.sessions.SetLogoutMessage(ctx, reason); err != nil {
			m.log.WithError(err).Warn("failed to store logout message")
		}
	}
	m.dismissWarningLocked()
	m.watcher.Unwatch(m.clientID)
	m.log.WithField("reason", reason).Info("session closed")
	return nil
}

func (m *Manager) showWarningLocked() {
	if m.notices == nil {
		return
	}
	if m.warningID != "" && m.notices.Has(m.warningID) {
		return
	}
	var id string
	msg := fmt.Sprintf(warningMessage, int(m.policy.WarningWindow/time.Minute))
	n := m.notices.Show(notify.KindWarning, msg, ActionExtend, m.policy.WarningTTL, func() {
		m.mu.Lock()
		if m.warningID == id {
			m.warningID = ""
		}
		m.mu.Unlock()
	})
	id = n.ID
	m.warningID = id
	m.log.Info("session expiry warning shown")
}

func (m *Manager) dismissWarningLocked() {
	if m.warningID == "" {
		return
	}
	if m.notices != nil {
		m.notices.Dismiss(m.warningID)
	}
	m.warningID = ""
}
