package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/events"
)

type recordingSink struct {
	name      string
	delivered []events.Event
	fail      bool
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Deliver(_ context.Context, ev events.Event) error {
	if s.fail {
		return errors.New("sink down")
	}
	s.delivered = append(s.delivered, ev)
	return nil
}

func testEvent(evType events.Type) events.Event {
	return events.Event{
		Type: evType,
		Booking: &domain.Booking{
			ID:        7,
			Reference: "BK-ABCD1234",
			RenterID:  1,
		},
		Renter:     &domain.User{ID: 1, Email: "renter@test.com", Name: "Renter"},
		OccurredAt: time.Now(),
	}
}

func TestDispatcher_FanOut(t *testing.T) {
	first := &recordingSink{name: "first"}
	second := &recordingSink{name: "second"}
	bus := events.NewDispatcher(first, second)

	bus.Dispatch(context.Background(), testEvent(events.TypeBookingCreated))

	assert.Len(t, first.delivered, 1)
	assert.Len(t, second.delivered, 1)
	assert.Equal(t, events.TypeBookingCreated, first.delivered[0].Type)
}

func TestDispatcher_SinkFailureDoesNotStopOthers(t *testing.T) {
	broken := &recordingSink{name: "broken", fail: true}
	working := &recordingSink{name: "working"}
	bus := events.NewDispatcher(broken, working)

	// Must not panic or skip the healthy sink.
	bus.Dispatch(context.Background(), testEvent(events.TypeBookingCancelled))

	assert.Empty(t, broken.delivered)
	assert.Len(t, working.delivered, 1)
}

// MockNoteRepo
type MockNoteRepo struct {
	mock.Mock
}

func (m *MockNoteRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNoteRepo) List(ctx context.Context, userID int32, audience domain.NotificationAudience, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, audience, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNoteRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
func (m *MockNoteRepo) Trash(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
func (m *MockNoteRepo) PurgeTrashed(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

func TestNotificationSink_WritesRenterAndAdminRows(t *testing.T) {
	noteRepo := new(MockNoteRepo)
	sink := events.NewNotificationSink(noteRepo)
	ctx := context.Background()

	var created []*domain.Notification
	noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).
		Run(func(args mock.Arguments) {
			created = append(created, args.Get(1).(*domain.Notification))
		}).
		Return(nil)

	err := sink.Deliver(ctx, testEvent(events.TypeBookingApproved))
	assert.NoError(t, err)
	assert.Len(t, created, 2)

	renterNote, adminNote := created[0], created[1]
	assert.Equal(t, int32(1), renterNote.UserID)
	assert.Equal(t, domain.NotificationAudienceRenter, renterNote.Audience)
	assert.Equal(t, int32(0), adminNote.UserID)
	assert.Equal(t, domain.NotificationAudienceAdmin, adminNote.Audience)
	assert.Equal(t, int32(7), *renterNote.BookingID)
	assert.Contains(t, renterNote.Message, "BK-ABCD1234")
}

type recordingEmailer struct {
	sent int
}

func (e *recordingEmailer) SendBookingStatusEmail(_ context.Context, _, _ string, _ *domain.Booking, _ string) error {
	e.sent++
	return nil
}

func TestEmailSink_OnlyMailsTerminalTransitions(t *testing.T) {
	emailer := &recordingEmailer{}
	sink := events.NewEmailSink(emailer)
	ctx := context.Background()

	// Modification and lifecycle jobs stay in-app only.
	for _, evType := range []events.Type{events.TypeBookingModified, events.TypeBookingStarted, events.TypeBookingCompleted} {
		assert.NoError(t, sink.Deliver(ctx, testEvent(evType)))
	}
	assert.Equal(t, 0, emailer.sent)

	for _, evType := range []events.Type{events.TypeBookingCreated, events.TypeBookingCancelled, events.TypeBookingApproved, events.TypeBookingDeclined} {
		assert.NoError(t, sink.Deliver(ctx, testEvent(evType)))
	}
	assert.Equal(t, 4, emailer.sent)
}

func TestEmailSink_SkipsWhenRenterUnknown(t *testing.T) {
	emailer := &recordingEmailer{}
	sink := events.NewEmailSink(emailer)

	ev := testEvent(events.TypeBookingCreated)
	ev.Renter = nil
	assert.NoError(t, sink.Deliver(context.Background(), ev))
	assert.Equal(t, 0, emailer.sent)
}
