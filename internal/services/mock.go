package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"raffle-marketplace-frontend/internal/models"
)

// Mock service implementations for tests

// MockReservationService is a testify mock of ReservationService
type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) CreateReservation(ctx context.Context, req *ReservationRequest) (*models.Reservation, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*models.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReservationService) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPaymentService is a testify mock of PaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreatePaymentIntent(ctx context.Context, req *PaymentIntentRequest) (*PaymentIntentResult, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*PaymentIntentResult), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRaffleService is a testify mock of RaffleService
type MockRaffleService struct {
	mock.Mock
}

func (m *MockRaffleService) ListRaffles(ctx context.Context) ([]*models.Raffle, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]*models.Raffle), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRaffleService) GetRaffle(ctx context.Context, id string) (*models.Raffle, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Raffle), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRaffleService) GetRaffleNumbers(ctx context.Context, raffleID string) ([]*models.RaffleNumber, error) {
	args := m.Called(ctx, raffleID)
	if res := args.Get(0); res != nil {
		return res.([]*models.RaffleNumber), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockAuthService is a testify mock of AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	args := m.Called(ctx, email, password)
	if res := args.Get(0); res != nil {
		return res.(*LoginResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
