package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"quickcare/internal/model"
	"quickcare/internal/storage"
)

const (
	keyIsAdmin       = "isAdmin"
	keyAdminData     = "adminData"
	keySessionStart  = "sessionStart"
	keyLastActivity  = "lastActivity"
	keyCurrentUser   = "currentUser"
	keyLogoutMessage = "logoutMessage"
)

// SessionKeys are the store keys that make up a persisted session.
var SessionKeys = []string{keyIsAdmin, keyAdminData, keySessionStart, keyLastActivity, keyCurrentUser}

// recordVersion is written into adminData and currentUser. Records without
// a version predate it and read as version 1.
const recordVersion = 1

// Default admin identity written to adminData.
const (
	DefaultAdminID   = "admin_001"
	DefaultAdminName = "System Administrator"
)

// SessionStoreInterface defines the interface for session persistence.
type SessionStoreInterface interface {
	Save(ctx context.Context, s *model.Session) error
	Load(ctx context.Context) (*model.Session, error)
	Touch(ctx context.Context, at time.Time) error
	Clear(ctx context.Context, extraKeys ...string) error
	SetLogoutMessage(ctx context.Context, msg string) error
	ConsumeLogoutMessage(ctx context.Context) (string, error)
}

// adminRecord is the adminData layout.
type adminRecord struct {
	Version   int    `json:"version,omitempty"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	LastLogin string `json:"lastLogin"`
}

// userRecord is the currentUser layout.
type userRecord struct {
	Version   int    `json:"version,omitempty"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	LoginTime string `json:"loginTime"`
}

// SessionStore reads and writes the session entries of one client.
type SessionStore struct {
	store storage.Store
	log   *logrus.Entry
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a session store over a client-scoped store.
func NewSessionStore(store storage.Store) *SessionStore {
	return &SessionStore{store: store, log: logrus.WithField("component", "session_store")}
}

// Save writes s in the layout of its role. Admin sessions also carry the
// adminData entry; other roles drop it.
func (s *SessionStore) Save(ctx context.Context, sess *model.Session) error {
	if sess.Role == model.RoleAdmin {
		data, err := json.Marshal(adminRecord{
			Version:   recordVersion,
			ID:        sess.SubjectID,
			Name:      sess.DisplayName,
			Email:     sess.Email,
			Role:      string(model.RoleAdmin),
			LastLogin: formatISO(sess.LoginAt),
		})
		if err != nil {
			return fmt.Errorf("marshal admin data: %w", err)
		}
		if err := s.store.Set(ctx, keyIsAdmin, []byte("true")); err != nil {
			return fmt.Errorf("store admin flag: %w", err)
		}
		if err := s.store.Set(ctx, keyAdminData, data); err != nil {
			return fmt.Errorf("store admin data: %w", err)
		}
	} else if err := s.store.Delete(ctx, keyIsAdmin, keyAdminData); err != nil {
		return fmt.Errorf("drop admin data: %w", err)
	}

	user, err := json.Marshal(userRecord{
		Version:   recordVersion,
		Email:     sess.Email,
		Name:      sess.DisplayName,
		Type:      string(sess.Role),
		LoginTime: formatISO(sess.LoginAt),
	})
	if err != nil {
		return fmt.Errorf("marshal current user: %w", err)
	}
	if err := s.store.Set(ctx, keyCurrentUser, user); err != nil {
		return fmt.Errorf("store current user: %w", err)
	}
	if err := s.store.Set(ctx, keySessionStart, formatMillis(sess.LoginAt)); err != nil {
		return fmt.Errorf("store session start: %w", err)
	}
	return s.Touch(ctx, sess.LastActivityAt)
}

// Load reconstructs the session. Missing or unreadable entries yield nil.
func (s *SessionStore) Load(ctx context.Context) (*model.Session, error) {
	flag, _ := s.store.Get(ctx, keyIsAdmin)

	var sess *model.Session
	if string(flag) == "true" {
		sess = s.loadAdmin(ctx)
	} else {
		sess = s.loadUser(ctx)
	}
	if sess == nil {
		return nil, nil
	}

	if start, ok := s.millis(ctx, keySessionStart); ok {
		sess.LoginAt = start
	}
	if sess.LoginAt.IsZero() {
		s.log.Warn("session has no login time, ignoring it")
		return nil, nil
	}
	sess.LastActivityAt = sess.LoginAt
	if last, ok := s.millis(ctx, keyLastActivity); ok && last.After(sess.LoginAt) {
		sess.LastActivityAt = last
	}
	return sess, nil
}

func (s *SessionStore) loadAdmin(ctx context.Context) *model.Session {
	raw, _ := s.store.Get(ctx, keyAdminData)
	if raw == nil {
		return nil
	}
	var rec adminRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		s.log.WithError(err).Warn("unreadable admin data")
		return nil
	}
	if !s.knownVersion(rec.Version, keyAdminData) {
		return nil
	}
	if rec.ID == "" {
		rec.ID = DefaultAdminID
	}
	if rec.Name == "" {
		rec.Name = DefaultAdminName
	}
	return &model.Session{
		SubjectID:   rec.ID,
		Email:       rec.Email,
		DisplayName: rec.Name,
		Role:        model.RoleAdmin,
		LoginAt:     parseISO(rec.LastLogin),
	}
}

func (s *SessionStore) loadUser(ctx context.Context) *model.Session {
	raw, _ := s.store.Get(ctx, keyCurrentUser)
	if raw == nil {
		return nil
	}
	var rec userRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		s.log.WithError(err).Warn("unreadable current user")
		return nil
	}
	if !s.knownVersion(rec.Version, keyCurrentUser) {
		return nil
	}
	role, ok := model.ParseRole(rec.Type)
	if !ok || rec.Email == "" {
		s.log.WithField("type", rec.Type).Warn("current user without usable role or email")
		return nil
	}
	// an admin is only trusted with the admin layout
	if role == model.RoleAdmin {
		return nil
	}
	name := rec.Name
	if name == "" {
		name = LocalPart(rec.Email)
	}
	return &model.Session{
		SubjectID:   rec.Email,
		Email:       rec.Email,
		DisplayName: name,
		Role:        role,
		LoginAt:     parseISO(rec.LoginTime),
	}
}

// Touch records activity at the given time.
func (s *SessionStore) Touch(ctx context.Context, at time.Time) error {
	if err := s.store.Set(ctx, keyLastActivity, formatMillis(at)); err != nil {
		return fmt.Errorf("store last activity: %w", err)
	}
	return nil
}

// Clear removes the session entries plus any extra session-scoped keys.
func (s *SessionStore) Clear(ctx context.Context, extraKeys ...string) error {
	keys := append(append([]string{}, SessionKeys...), extraKeys...)
	if err := s.store.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// SetLogoutMessage stores a one-shot message for the sign-in view.
func (s *SessionStore) SetLogoutMessage(ctx context.Context, msg string) error {
	return s.store.Set(ctx, keyLogoutMessage, []byte(msg))
}

// ConsumeLogoutMessage returns the pending logout message and removes it.
func (s *SessionStore) ConsumeLogoutMessage(ctx context.Context) (string, error) {
	raw, err := s.store.Get(ctx, keyLogoutMessage)
	if err != nil || raw == nil {
		return "", err
	}
	if err := s.store.Delete(ctx, keyLogoutMessage); err != nil {
		return "", fmt.Errorf("drop logout message: %w", err)
	}
	return string(raw), nil
}

func (s *SessionStore) knownVersion(v int, key string) bool {
	if v > recordVersion {
		s.log.WithFields(logrus.Fields{"key": key, "version": v}).Warn("unsupported session record version")
		return false
	}
	return true
}

func (s *SessionStore) millis(ctx context.Context, key string) (time.Time, bool) {
	raw, _ := s.store.Get(ctx, key)
	if raw == nil {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil || ms <= 0 {
		s.log.WithField("key", key).Warn("unreadable timestamp")
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}

// LocalPart returns the part of an email address before the "@".
func LocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

func formatMillis(t time.Time) []byte {
	return []byte(strconv.FormatInt(t.UnixMilli(), 10))
}

func formatISO(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

func parseISO(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
