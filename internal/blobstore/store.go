// Package blobstore persists the whole dataset as one JSON blob, emulating
// the demo/offline backend: every operation loads the full state, mutates it
// in memory and rewrites the blob. A single mutex serialises operations, so
// check-then-mutate sequences such as the booking seat claim are atomic.
package blobstore

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/marinedeck/maritime-api/internal/models"
)

// Storage is the injected key-value backend holding the serialized blob.
type Storage interface {
	// Load returns the blob and whether one exists.
	Load() ([]byte, bool, error)
	// Save rewrites the blob wholesale.
	Save(data []byte) error
}

// State is the full dataset, one array per entity type.
type State struct {
	Users         []models.User                `json:"users"`
	Students      []models.Student             `json:"students"`
	Institutes    []models.Institute           `json:"institutes"`
	Courses       []models.Course              `json:"courses"`
	Batches       []models.Batch               `json:"batches"`
	Bookings      []models.Booking             `json:"bookings"`
	Certificates  []models.Certificate         `json:"certificates"`
	Payments      []models.Payment             `json:"payments"`
	Reactivations []models.ReactivationRequest `json:"reactivation_requests"`
	Lessons       []models.Lesson              `json:"lessons"`
	Enrollments   []models.Enrollment          `json:"enrollments"`
}

// Store wraps a Storage backend with load/mutate/save semantics.
type Store struct {
	mu      sync.Mutex
	storage Storage
	latency time.Duration
	logger  zerolog.Logger
	seed    func() State
}

// Option customises a Store.
type Option func(*Store)

// WithLatency makes every operation sleep for the given duration before
// touching the blob, emulating network latency. Tests leave it at zero.
func WithLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

// WithLogger attaches a logger for load-failure warnings.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) { s.logger = logger.With().Str("component", "blobstore").Logger() }
}

// WithSeed overrides the dataset used when the blob is absent or invalid.
func WithSeed(seed func() State) Option {
	return func(s *Store) { s.seed = seed }
}

// New builds a Store over the given backend.
func New(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		logger:  zerolog.New(io.Discard),
		seed:    SeedState,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// load reads and validates the blob, seeding on absence or corruption.
func (s *Store) load() State {
	raw, found, err := s.storage.Load()
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read blob, seeding defaults")
		return s.seed()
	}
	if !found {
		return s.seed()
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Warn().Err(err).Msg("blob is not valid JSON, seeding defaults")
		return s.seed()
	}
	if err := stateSchema.Validate(doc); err != nil {
		s.logger.Warn().Err(err).Msg("blob failed schema validation, seeding defaults")
		return s.seed()
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		s.logger.Warn().Err(err).Msg("failed to decode blob, seeding defaults")
		return s.seed()
	}
	return state
}

// normalize replaces nil entity slices so the blob always carries arrays;
// a null entry would fail schema validation on the next load.
func (state *State) normalize() {
	if state.Users == nil {
		state.Users = []models.User{}
	}
	if state.Students == nil {
		state.Students = []models.Student{}
	}
	if state.Institutes == nil {
		state.Institutes = []models.Institute{}
	}
	if state.Courses == nil {
		state.Courses = []models.Course{}
	}
	if state.Batches == nil {
		state.Batches = []models.Batch{}
	}
	if state.Bookings == nil {
		state.Bookings = []models.Booking{}
	}
	if state.Certificates == nil {
		state.Certificates = []models.Certificate{}
	}
	if state.Payments == nil {
		state.Payments = []models.Payment{}
	}
	if state.Reactivations == nil {
		state.Reactivations = []models.ReactivationRequest{}
	}
	if state.Lessons == nil {
		state.Lessons = []models.Lesson{}
	}
	if state.Enrollments == nil {
		state.Enrollments = []models.Enrollment{}
	}
}

func (s *Store) save(state State) error {
	state.normalize()
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.storage.Save(raw)
}

func (s *Store) sleep(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(s.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// view runs fn against a read-only snapshot of the state.
func (s *Store) view(ctx context.Context, fn func(State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sleep(ctx); err != nil {
		return err
	}
	return fn(s.load())
}

// update runs fn against the state and rewrites the blob only when fn
// succeeds, so failed operations never mutate the store.
func (s *Store) update(ctx context.Context, fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sleep(ctx); err != nil {
		return err
	}

	state := s.load()
	if err := fn(&state); err != nil {
		return err
	}
	return s.save(state)
}
