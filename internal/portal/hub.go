// Package portal ties one client's session, notices, repositories and
// services together. A Hub hands out a Portal per request and keeps the
// long-lived per-client state between requests.
package portal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"quickcare/internal/auth"
	apperrors "quickcare/internal/errors"
	"quickcare/internal/notify"
	"quickcare/internal/repository"
	"quickcare/internal/service"
	"quickcare/internal/storage"
	"quickcare/internal/validation"
)

// Options configures a Hub.
type Options struct {
	Policy   auth.Policy
	Location *time.Location
	// SeedDemo fills the collections of every new client with demo data.
	SeedDemo bool
	Now      func() time.Time
}

// Portal is the view of one client for the duration of a request.
// Release must be called when the request is done.
type Portal struct {
	ClientID string
	Session  *auth.Manager
	Notices  *notify.Board
	Store    storage.Store

	Doctors      repository.DoctorRepository
	Hospitals    repository.HospitalRepository
	Appointments repository.AppointmentRepository
	Availability repository.AvailabilityRepository
	Patients     repository.DoctorPatientRepository
	Profiles     repository.ProfileRepository

	Booking   service.BookingService
	Directory service.DirectoryService
	Profile   service.ProfileService
	Seeder    service.SeedService

	release func()
	once    sync.Once
}

// Release ends the request. Calling it more than once is harmless.
func (p *Portal) Release() {
	p.once.Do(p.release)
}

// tenant is the state of a client that outlives a request.
type tenant struct {
	mu      sync.Mutex
	manager *auth.Manager
	notices *notify.Board
}

// Hub owns every client's long-lived state.
type Hub struct {
	root      storage.Store
	clients   service.ClientService
	watcher   auth.Watcher
	validator *validation.Validator
	opts      Options
	log       *logrus.Entry

	mu      sync.Mutex
	tenants map[string]*tenant
}

// NewHub creates a hub over the unscoped root store.
func NewHub(root storage.Store, clients service.ClientService, watcher auth.Watcher, opts Options) *Hub {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Policy == (auth.Policy{}) {
		opts.Policy = auth.DefaultPolicy()
	}
	return &Hub{
		root:      root,
		clients:   clients,
		watcher:   watcher,
		validator: validation.New(),
		opts:      opts,
		log:       logrus.WithField("component", "portal_hub"),
		tenants:   make(map[string]*tenant),
	}
}

// RegisterClient creates a new client and, if configured, seeds its data.
func (h *Hub) RegisterClient(ctx context.Context) (*service.ClientRegistration, error) {
	reg, err := h.clients.Register(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.seedIfConfigured(ctx, reg.ClientID); err != nil {
		return nil, err
	}
	h.log.WithField("client_id", reg.ClientID).Info("client registered")
	return reg, nil
}

// EnsureClient registers a client with a chosen id, seeding it like
// RegisterClient. Existing clients only get a fresh token.
func (h *Hub) EnsureClient(ctx context.Context, clientID string) (*service.ClientRegistration, error) {
	reg, err := h.clients.Ensure(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if err := h.seedIfConfigured(ctx, reg.ClientID); err != nil {
		return nil, err
	}
	return reg, nil
}

func (h *Hub) seedIfConfigured(ctx context.Context, clientID string) error {
	if !h.opts.SeedDemo {
		return nil
	}
	p, err := h.Open(ctx, clientID)
	if err != nil {
		return err
	}
	defer p.Release()
	if _, err := p.Seeder.SeedDemo(ctx); err != nil {
		return fmt.Errorf("seed client %s: %w", clientID, err)
	}
	return nil
}

// Open locks the client and builds its repositories from the store.
// Requests of one client are served one at a time.
func (h *Hub) Open(ctx context.Context, clientID string) (*Portal, error) {
	if !h.clients.Exists(ctx, clientID) {
		return nil, apperrors.ErrUnknownClient
	}
	t := h.tenant(ctx, clientID)
	t.mu.Lock()

	store := storage.Scoped(h.root, clientID)
	deps := repository.Deps{Store: store, Validator: h.validator, Now: h.opts.Now}

	p := &Portal{
		ClientID: clientID,
		Session:  t.manager,
		Notices:  t.notices,
		Store:    store,

		Doctors:      repository.NewDoctorRepository(ctx, deps),
		Hospitals:    repository.NewHospitalRepository(ctx, deps),
		Appointments: repository.NewAppointmentRepository(ctx, deps),
		Availability: repository.NewAvailabilityRepository(ctx, deps),
		Patients:     repository.NewDoctorPatientRepository(ctx, deps),
		Profiles:     repository.NewProfileRepository(deps),

		release: t.mu.Unlock,
	}
	p.Booking = service.NewBookingService(p.Appointments, p.Doctors, h.opts.Location, h.opts.Now)
	p.Directory = service.NewDirectoryService(p.Doctors, p.Hospitals, p.Appointments, store)
	p.Profile = service.NewProfileService(p.Profiles, p.Availability, p.Patients, h.opts.Location, h.opts.Now)
	p.Seeder = service.NewSeedService(p.Doctors, p.Hospitals, p.Appointments, p.Patients, p.Availability, h.opts.Location, h.opts.Now)
	return p, nil
}

// tenant returns the long-lived state of clientID, creating it on first use.
func (h *Hub) tenant(ctx context.Context, clientID string) *tenant {
	h.mu.Lock()
	defer h.mu.Unlock()

	if t, ok := h.tenants[clientID]; ok {
		return t
	}
	t := &tenant{notices: notify.NewBoard()}
	t.manager = auth.NewManager(
		clientID,
		auth.NewSessionStore(storage.Scoped(h.root, clientID)),
		h.opts.Policy,
		auth.WithClock(h.opts.Now),
		auth.WithWatcher(h.watcher),
		auth.WithNotices(t.notices),
		auth.WithScopedKeys(repository.SessionScopedKeys),
		auth.WithJobGuard(&t.mu),
	)
	if t.manager.Resume(ctx) {
		h.log.WithField("client_id", clientID).Info("resumed persisted session")
	}
	h.tenants[clientID] = t
	return t
}

// Close stops every client's session checks and notices. Stored sessions
// are kept.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, t := range h.tenants {
		t.manager.Close()
		t.notices.Close()
		delete(h.tenants, id)
	}
}
