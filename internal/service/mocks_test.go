package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/events"
	"drivehub-backend/internal/repository"
)

// fakeTxRunner hands fn the same mocks the service already holds and keeps
// count of outcomes, standing in for the store's transactional runner.
type fakeTxRunner struct {
	tx         repository.Tx
	committed  int
	rolledBack int
}

func (r *fakeTxRunner) WithinTx(_ context.Context, fn func(tx repository.Tx) error) error {
	if err := fn(r.tx); err != nil {
		r.rolledBack++
		return err
	}
	r.committed++
	return nil
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListActiveByVehicle(ctx context.Context, vehicleID, excludeID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, vehicleID, excludeID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}
func (m *MockVehicleRepo) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Vehicle), args.Get(1).(int32), args.Error(2)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) AdjustLifetimeSpend(ctx context.Context, userID int32, deltaCents int32) error {
	args := m.Called(ctx, userID, deltaCents)
	return args.Error(0)
}

// MockTransactionRepo
type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockTransactionRepo) ListByBooking(ctx context.Context, bookingID int32) ([]domain.Transaction, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionRepo) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Transaction, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Transaction), args.Get(1).(int32), args.Error(2)
}
func (m *MockTransactionRepo) MarkRefundedByBooking(ctx context.Context, bookingID int32) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, audience domain.NotificationAudience, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, audience, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
func (m *MockNotificationRepo) Trash(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
func (m *MockNotificationRepo) PurgeTrashed(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// MockBus
type MockBus struct {
	mock.Mock
}

func (m *MockBus) Dispatch(ctx context.Context, ev events.Event) {
	m.Called(ctx, ev)
}
