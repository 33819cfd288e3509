package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/bikeroute-microservice/internal/domain"
	"github.com/bikeroute-microservice/internal/domain/repository"
	"github.com/bikeroute-microservice/internal/repository/postgres"
	"github.com/bikeroute-microservice/internal/repository/postgres/testhelpers"
)

// StationRepositoryTestSuite - интеграционные тесты против живой базы с PostGIS
type StationRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.StationRepository
	ctx    context.Context
}

func (s *StationRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())
	s.ctx = context.Background()

	s.Require().NoError(s.testDB.CreateStationsTable(s.ctx))
	s.Require().NoError(s.testDB.Cleanup(s.ctx))

	// Инвентарь: две доступные станции, одна пустая, одна на обслуживании
	fixtures := []struct {
		number int
		name   string
		lat    float64
		lon    float64
		bikes  int
		status string
	}{
		{101, "City Hall", 37.5663, 126.9779, 5, "available"},
		{102, "Plaza", 37.5658, 126.9770, 3, "available"},
		{103, "Empty Dock", 37.5660, 126.9775, 0, "available"},
		{104, "Workshop", 37.5661, 126.9777, 8, "maintenance"},
		{201, "River Park", 37.5200, 126.9400, 2, "available"},
	}
	for _, f := range fixtures {
		s.Require().NoError(s.testDB.InsertStation(s.ctx, f.number, f.name, f.lat, f.lon, f.bikes, f.status))
	}

	s.repo = postgres.NewStationRepository(
		postgres.NewDBForTest(s.testDB.DB, s.testDB.Logger),
	)
}

func (s *StationRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		_ = s.testDB.Cleanup(s.ctx)
		s.testDB.Close()
	}
}

func (s *StationRepositoryTestSuite) TestFindNearby() {
	stations, err := s.repo.FindNearby(s.ctx, 37.5665, 126.9780, 10)
	s.Require().NoError(err)

	// Пустая и обслуживаемая станции отфильтрованы
	numbers := make([]int, 0, len(stations))
	for _, st := range stations {
		numbers = append(numbers, st.Number)
	}
	s.NotContains(numbers, 103)
	s.NotContains(numbers, 104)

	// Ближайшая доступная - первая
	s.Require().NotEmpty(stations)
	s.Equal(101, stations[0].Number)
}

func (s *StationRepositoryTestSuite) TestFindNearbyLimit() {
	stations, err := s.repo.FindNearby(s.ctx, 37.5665, 126.9780, 1)
	s.Require().NoError(err)
	s.Len(stations, 1)
}

func (s *StationRepositoryTestSuite) TestFindAll() {
	stations, err := s.repo.FindAll(s.ctx)
	s.Require().NoError(err)

	// FindAll отдаёт весь инвентарь без фильтра по доступности
	s.Len(stations, 5)
}

func (s *StationRepositoryTestSuite) TestFindByNumbers() {
	stations, err := s.repo.FindByNumbers(s.ctx, []int{101, 201, 999})
	s.Require().NoError(err)
	s.Len(stations, 2)

	byNumber := make(map[int]*domain.Station, len(stations))
	for _, st := range stations {
		byNumber[st.Number] = st
	}
	s.Contains(byNumber, 101)
	s.Contains(byNumber, 201)
	s.Equal("River Park", byNumber[201].Name)
}

func (s *StationRepositoryTestSuite) TestFindByNumbersEmpty() {
	stations, err := s.repo.FindByNumbers(s.ctx, nil)
	s.NoError(err)
	s.Nil(stations)
}

func TestStationRepositorySuite(t *testing.T) {
	suite.Run(t, new(StationRepositoryTestSuite))
}
