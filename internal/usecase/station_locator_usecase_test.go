package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bikeroute-microservice/internal/domain"
	apperrors "github.com/bikeroute-microservice/internal/pkg/errors"
	"github.com/bikeroute-microservice/internal/usecase"
)

func TestStationLocatorUseCase_FindNearest(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	coord := domain.Coordinate{Lat: 37.560, Lon: 126.970}

	t.Run("nearby search returns usable station", func(t *testing.T) {
		mockRepo := &MockStationRepository{}
		uc := usecase.NewStationLocatorUseCase(mockRepo, logger)

		station := testStation(101, 37.561, 126.971, 5)
		mockRepo.On("FindNearby", ctx, coord.Lat, coord.Lon, 10).
			Return([]*domain.Station{station}, nil)

		got, err := uc.FindNearest(ctx, coord)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 101, got.Number)

		mockRepo.AssertNotCalled(t, "FindAll", mock.Anything)
	})

	t.Run("unusable nearby results fall through to inventory scan", func(t *testing.T) {
		mockRepo := &MockStationRepository{}
		uc := usecase.NewStationLocatorUseCase(mockRepo, logger)

		empty := testStation(101, 37.561, 126.971, 0)
		far := testStation(300, 37.900, 127.200, 3)
		near := testStation(200, 37.562, 126.972, 3)

		mockRepo.On("FindNearby", ctx, coord.Lat, coord.Lon, 10).
			Return([]*domain.Station{empty}, nil)
		mockRepo.On("FindAll", ctx).
			Return([]*domain.Station{far, empty, near}, nil)

		got, err := uc.FindNearest(ctx, coord)
		require.NoError(t, err)
		require.NotNil(t, got)
		// Станция без велосипедов отброшена, взята ближайшая пригодная
		assert.Equal(t, 200, got.Number)
	})

	t.Run("nearby failure falls back to inventory scan", func(t *testing.T) {
		mockRepo := &MockStationRepository{}
		uc := usecase.NewStationLocatorUseCase(mockRepo, logger)

		station := testStation(102, 37.563, 126.973, 2)
		mockRepo.On("FindNearby", ctx, coord.Lat, coord.Lon, 10).
			Return(nil, errors.New("connection refused"))
		mockRepo.On("FindAll", ctx).
			Return([]*domain.Station{station}, nil)

		got, err := uc.FindNearest(ctx, coord)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 102, got.Number)
	})

	t.Run("inventory scan retried once after failure", func(t *testing.T) {
		mockRepo := &MockStationRepository{}
		uc := usecase.NewStationLocatorUseCase(mockRepo, logger)

		station := testStation(103, 37.564, 126.974, 1)
		mockRepo.On("FindNearby", ctx, coord.Lat, coord.Lon, 10).
			Return(nil, errors.New("connection refused"))
		mockRepo.On("FindAll", ctx).
			Return(nil, errors.New("deadline exceeded")).Once()
		mockRepo.On("FindAll", ctx).
			Return([]*domain.Station{station}, nil).Once()

		got, err := uc.FindNearest(ctx, coord)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 103, got.Number)
		mockRepo.AssertNumberOfCalls(t, "FindAll", 2)
	})

	t.Run("no station anywhere is not an error", func(t *testing.T) {
		mockRepo := &MockStationRepository{}
		uc := usecase.NewStationLocatorUseCase(mockRepo, logger)

		mockRepo.On("FindNearby", ctx, coord.Lat, coord.Lon, 10).
			Return([]*domain.Station{}, nil)
		mockRepo.On("FindAll", ctx).
			Return([]*domain.Station{}, nil)

		got, err := uc.FindNearest(ctx, coord)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestStationLocatorUseCase_FindPair(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	start := domain.Coordinate{Lat: 37.560, Lon: 126.970}
	end := domain.Coordinate{Lat: 37.500, Lon: 127.030}

	t.Run("both sides resolved", func(t *testing.T) {
		mockRepo := &MockStationRepository{}
		uc := usecase.NewStationLocatorUseCase(mockRepo, logger)

		startStation := testStation(101, 37.561, 126.971, 5)
		endStation := testStation(202, 37.501, 127.031, 4)

		mockRepo.On("FindNearby", mock.Anything, start.Lat, start.Lon, 10).
			Return([]*domain.Station{startStation}, nil)
		mockRepo.On("FindNearby", mock.Anything, end.Lat, end.Lon, 10).
			Return([]*domain.Station{endStation}, nil)

		s, e, err := uc.FindPair(ctx, start, end)
		require.NoError(t, err)
		assert.Equal(t, 101, s.Number)
		assert.Equal(t, 202, e.Number)
	})

	t.Run("missing end station names the side", func(t *testing.T) {
		mockRepo := &MockStationRepository{}
		uc := usecase.NewStationLocatorUseCase(mockRepo, logger)

		startStation := testStation(101, 37.561, 126.971, 5)

		mockRepo.On("FindNearby", mock.Anything, start.Lat, start.Lon, 10).
			Return([]*domain.Station{startStation}, nil)
		mockRepo.On("FindNearby", mock.Anything, end.Lat, end.Lon, 10).
			Return([]*domain.Station{}, nil)
		mockRepo.On("FindAll", mock.Anything).
			Return([]*domain.Station{}, nil)

		s, e, err := uc.FindPair(ctx, start, end)
		assert.Nil(t, s)
		assert.Nil(t, e)
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrStationUnavailable.Code, appErr.Code)
		assert.Equal(t, "end", appErr.Details["side"])
	})

	t.Run("repository error propagates", func(t *testing.T) {
		mockRepo := &MockStationRepository{}
		uc := usecase.NewStationLocatorUseCase(mockRepo, logger)

		mockRepo.On("FindNearby", mock.Anything, mock.Anything, mock.Anything, 10).
			Return(nil, errors.New("connection refused"))
		mockRepo.On("FindAll", mock.Anything).
			Return(nil, errors.New("connection refused"))

		_, _, err := uc.FindPair(ctx, start, end)
		assert.Error(t, err)
	})
}

func TestStationLocatorUseCase_FindSingle(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	coord := domain.Coordinate{Lat: 37.560, Lon: 126.970}

	t.Run("no station carries the purpose", func(t *testing.T) {
		mockRepo := &MockStationRepository{}
		uc := usecase.NewStationLocatorUseCase(mockRepo, logger)

		mockRepo.On("FindNearby", ctx, coord.Lat, coord.Lon, 10).
			Return([]*domain.Station{}, nil)
		mockRepo.On("FindAll", ctx).
			Return([]*domain.Station{}, nil)

		got, err := uc.FindSingle(ctx, coord, "circular")
		assert.Nil(t, got)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "circular", appErr.Details["purpose"])
	})
}

func TestStationLocatorUseCase_FindByNumbers(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("empty list rejected", func(t *testing.T) {
		uc := usecase.NewStationLocatorUseCase(&MockStationRepository{}, logger)

		stations, err := uc.FindByNumbers(ctx, nil)
		assert.Nil(t, stations)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	})

	t.Run("delegates to repository", func(t *testing.T) {
		mockRepo := &MockStationRepository{}
		uc := usecase.NewStationLocatorUseCase(mockRepo, logger)

		expected := []*domain.Station{testStation(101, 37.561, 126.971, 5)}
		mockRepo.On("FindByNumbers", ctx, []int{101, 202}).Return(expected, nil)

		stations, err := uc.FindByNumbers(ctx, []int{101, 202})
		require.NoError(t, err)
		assert.Equal(t, expected, stations)
	})
}

func TestStationLocatorUseCase_NearbyWithDistance(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	coord := domain.Coordinate{Lat: 37.560, Lon: 126.970}

	mockRepo := &MockStationRepository{}
	uc := usecase.NewStationLocatorUseCase(mockRepo, logger)

	same := testStation(1, 37.560, 126.970, 2)
	other := testStation(2, 37.561, 126.970, 3)
	mockRepo.On("FindNearby", ctx, coord.Lat, coord.Lon, 5).
		Return([]*domain.Station{same, other}, nil)

	stations, distances, err := uc.NearbyWithDistance(ctx, coord, 5)
	require.NoError(t, err)
	require.Len(t, stations, 2)
	require.Len(t, distances, 2)

	assert.Equal(t, 0.0, distances[0])
	// 0.001 градуса широты - примерно 111 метров
	assert.InDelta(t, 111.2, distances[1], 1.0)
}
