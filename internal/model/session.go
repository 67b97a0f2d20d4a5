package model

import "time"

// Session is the authenticated state of one client.
type Session struct {
	SubjectID      string    `json:"subjectId"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"displayName"`
	Role           Role      `json:"role"`
	LoginAt        time.Time `json:"loginTimestamp"`
	LastActivityAt time.Time `json:"lastActivityTimestamp"`
}

// Idle returns how long the session has been without tracked activity.
func (s *Session) Idle(now time.Time) time.Duration {
	return now.Sub(s.LastActivityAt)
}

// Age returns how long ago the session was opened or last renewed.
func (s *Session) Age(now time.Time) time.Duration {
	return now.Sub(s.LoginAt)
}
