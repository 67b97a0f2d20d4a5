package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"quickcare/internal/auth"
	apperrors "quickcare/internal/errors"
	"quickcare/internal/storage"
)

// clientRegistryPrefix keys the registry in the unscoped store, outside
// every client namespace.
const clientRegistryPrefix = "clients:"

// ErrInvalidClientToken is returned when a client token is invalid or expired.
var ErrInvalidClientToken = errors.New("invalid or expired client token")

// ClientRegistration is handed to a new client.
type ClientRegistration struct {
	ClientID  string    `json:"clientId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ClientService issues and checks client identities. A client is the
// equivalent of one browser: it owns an isolated store namespace.
type ClientService interface {
	Register(ctx context.Context) (*ClientRegistration, error)
	Ensure(ctx context.Context, clientID string) (*ClientRegistration, error)
	Authenticate(ctx context.Context, token string) (string, error)
	Exists(ctx context.Context, clientID string) bool
}

type clientService struct {
	store      storage.Store
	jwtService *auth.JWTService
	now        func() time.Time
}

// NewClientService creates a new client service over the unscoped store.
func NewClientService(store storage.Store, jwtService *auth.JWTService) ClientService {
	return &clientService{
		store:      store,
		jwtService: jwtService,
		now:        time.Now,
	}
}

// Register creates a client with a fresh random id.
func (s *clientService) Register(ctx context.Context) (*ClientRegistration, error) {
	for attempt := 0; attempt < 3; attempt++ {
		id := uuid.NewString()
		if s.Exists(ctx, id) {
			continue
		}
		return s.Ensure(ctx, id)
	}
	return nil, errors.New("could not allocate a client id")
}

// Ensure registers clientID if needed and issues a token for it.
func (s *clientService) Ensure(ctx context.Context, clientID string) (*ClientRegistration, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" || strings.Contains(clientID, ":") {
		return nil, apperrors.NewValidationError("clientId", "Client id must be non-empty and contain no colon")
	}

	now := s.now().UTC()
	if !s.Exists(ctx, clientID) {
		if err := s.store.Set(ctx, clientRegistryPrefix+clientID, []byte(now.Format(time.RFC3339))); err != nil {
			return nil, fmt.Errorf("register client: %w", err)
		}
	}

	token, err := s.jwtService.GenerateClientToken(clientID)
	if err != nil {
		return nil, fmt.Errorf("generate client token: %w", err)
	}
	return &ClientRegistration{
		ClientID:  clientID,
		Token:     token,
		ExpiresAt: now.Add(auth.ClientTokenExpiry),
	}, nil
}

// Authenticate validates a token and returns the client it names.
func (s *clientService) Authenticate(ctx context.Context, token string) (string, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return "", ErrInvalidClientToken
	}
	if !s.Exists(ctx, claims.ClientID) {
		return "", apperrors.ErrUnknownClient
	}
	return claims.ClientID, nil
}

// Exists reports whether clientID was registered.
func (s *clientService) Exists(ctx context.Context, clientID string) bool {
	raw, err := s.store.Get(ctx, clientRegistryPrefix+clientID)
	return err == nil && raw != nil
}
