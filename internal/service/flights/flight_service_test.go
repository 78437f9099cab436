package flights

import (
	"context"
	"errors"
	"testing"

	"github.com/avdonin/skybooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func TestFlightService_List_CacheHit(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	cached := []domain.Flight{{ID: 1, Number: "SB-101"}}
	mockCache.On("GetFlights", ctx).Return(cached, nil).Once()

	flights, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, cached, flights)
	mockRepo.AssertNotCalled(t, "List", mock.Anything)
}

func TestFlightService_List_CacheMissFallsBackToRepo(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	stored := []domain.Flight{{ID: 1, Number: "SB-101"}, {ID: 2, Number: "SB-202"}}
	mockCache.On("GetFlights", ctx).Return(nil, nil).Once()
	mockRepo.On("List", ctx).Return(stored, nil).Once()
	mockCache.On("SetFlights", ctx, stored).Return(nil).Once()

	flights, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, stored, flights)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_List_NoCache(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil)

	ctx := context.Background()
	stored := []domain.Flight{{ID: 1}}
	mockRepo.On("List", ctx).Return(stored, nil).Once()

	flights, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, stored, flights)
}

func TestFlightService_GetByID(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil)

	ctx := context.Background()
	mockRepo.On("GetByID", ctx, int64(1)).Return(&domain.Flight{ID: 1}, nil).Once()

	flight, err := service.GetByID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), flight.ID)

	mockRepo.On("GetByID", ctx, int64(99)).Return(nil, errors.New("flight not found")).Once()
	_, err = service.GetByID(ctx, 99)
	assert.Error(t, err)
}
