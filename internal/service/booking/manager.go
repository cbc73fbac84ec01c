package booking

import (
	"context"
	"sync"
	"time"

	"github.com/Domenick1991/busbooking/internal/auth"
	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/Domenick1991/busbooking/internal/kafka"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TripLoader resolves trip metadata for a new session.
type TripLoader interface {
	GetByID(ctx context.Context, id string) (*domain.Trip, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Session is one traveler's in-progress booking. Sessions live in memory
// only; an abandoned session is discarded wholesale.
type Session struct {
	ID        string
	UserID    string
	Composer  *Composer
	CreatedAt time.Time
}

// Manager keys active composers by session id and drives the submission
// protocol, publishing lifecycle events for every outcome.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	trips      TripLoader
	submitter  Submitter
	producer   Producer
	topic      string
	notifTopic string
	sessionTTL time.Duration
	log        *zap.Logger
}

type ManagerOption func(*Manager)

func WithNotificationsTopic(topic string) ManagerOption {
	return func(m *Manager) {
		m.notifTopic = topic
	}
}

func WithSessionTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) {
		if ttl > 0 {
			m.sessionTTL = ttl
		}
	}
}

func NewManager(trips TripLoader, submitter Submitter, producer Producer, topic string, log *zap.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{
		sessions:   make(map[string]*Session),
		trips:      trips,
		submitter:  submitter,
		producer:   producer,
		topic:      topic,
		sessionTTL: 30 * time.Minute,
		log:        log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start opens a booking session for an authenticated user. Authentication is
// a precondition: it is checked before any remote call. Trip load failures
// abort the workflow upward.
func (m *Manager) Start(ctx context.Context, tripID string, user *auth.User) (*Session, error) {
	if user == nil || user.ID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	trip, err := m.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Composer:  NewComposer(trip),
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	m.log.Info("booking session started",
		zap.String("session_id", session.ID),
		zap.String("trip_id", tripID),
		zap.String("user_id", user.ID),
	)
	return session, nil
}

func (m *Manager) Get(sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, domain.NotFoundError{Resource: "session", ID: sessionID}
	}
	return session, nil
}

func (m *Manager) End(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}

// Submit runs the composer's submission protocol and publishes the outcome.
// Event publishing is best effort: a broker failure never affects the result
// the traveler sees.
func (m *Manager) Submit(ctx context.Context, sessionID, authToken string) (*domain.Reservation, error) {
	session, err := m.Get(sessionID)
	if err != nil {
		return nil, err
	}

	snapshot := session.Composer.Snapshot()
	reservation, err := session.Composer.Submit(ctx, m.submitter, authToken)
	if err != nil {
		if domain.IsRejection(err) {
			m.publish(ctx, "booking_rejected", session, snapshot, "", err.Error())
		}
		return nil, err
	}

	snapshot = session.Composer.Snapshot()
	m.publish(ctx, "booking_confirmed", session, snapshot, reservation.ID, "")
	return reservation, nil
}

// ExpireStale drops sessions older than the TTL. A session with a submission
// in flight is left alone until the next sweep.
func (m *Manager) ExpireStale() int {
	deadline := time.Now().Add(-m.sessionTTL)

	m.mu.Lock()
	defer m.mu.Unlock()

	expired := 0
	for id, session := range m.sessions {
		if session.CreatedAt.After(deadline) {
			continue
		}
		if session.Composer.State() == domain.StateSubmitting {
			continue
		}
		delete(m.sessions, id)
		expired++
	}
	return expired
}

func (m *Manager) publish(ctx context.Context, eventType string, session *Session, snapshot Snapshot, reservationID, reason string) {
	if m.producer == nil || m.topic == "" {
		return
	}

	event := kafka.BookingEvent{
		Type:          eventType,
		SessionID:     session.ID,
		UserID:        session.UserID,
		TripID:        session.Composer.Trip().ID,
		Seats:         snapshot.Selected,
		Total:         snapshot.Price.Total,
		ReservationID: reservationID,
		Reason:        reason,
		OccurredAt:    time.Now(),
	}

	if err := m.producer.Publish(ctx, m.topic, session.ID, event); err != nil {
		m.log.Warn("failed to publish booking event",
			zap.String("type", eventType),
			zap.String("session_id", session.ID),
			zap.Error(err),
		)
	}
	if m.notifTopic != "" {
		if err := m.producer.Publish(ctx, m.notifTopic, session.ID, event); err != nil {
			m.log.Warn("failed to publish notification event",
				zap.String("type", eventType),
				zap.String("session_id", session.ID),
				zap.Error(err),
			)
		}
	}
}
