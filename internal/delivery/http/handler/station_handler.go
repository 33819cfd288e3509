package handler

import (
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bikeroute-microservice/internal/domain"
	"github.com/bikeroute-microservice/internal/pkg/errors"
	"github.com/bikeroute-microservice/internal/pkg/utils"
	"github.com/bikeroute-microservice/internal/pkg/validator"
	"github.com/bikeroute-microservice/internal/usecase"
	"github.com/bikeroute-microservice/internal/usecase/dto"
)

// StationHandler - обработчик запросов станций велопроката
type StationHandler struct {
	locatorUC *usecase.StationLocatorUseCase
	logger    *zap.Logger
}

func NewStationHandler(locatorUC *usecase.StationLocatorUseCase, logger *zap.Logger) *StationHandler {
	return &StationHandler{
		locatorUC: locatorUC,
		logger:    logger,
	}
}

// GetNearbyStations - ближайшие станции с велосипедами
// @Summary Ближайшие доступные станции
// @Tags stations
// @Produce json
// @Param lat query number true "Широта"
// @Param lon query number true "Долгота"
// @Param limit query int false "Максимум станций"
// @Success 200 {object} utils.SuccessResponse{data=dto.NearbyStationsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/stations/nearby [get]
func (h *StationHandler) GetNearbyStations(c *fiber.Ctx) error {
	req := dto.NearbyStationsRequest{
		Lat:   c.QueryFloat("lat"),
		Lon:   c.QueryFloat("lon"),
		Limit: c.QueryInt("limit"),
	}

	if err := validator.Validate(&req); err != nil {
		h.logger.Warn("Nearby stations request validation failed", zap.Error(err))
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	stations, distances, err := h.locatorUC.NearbyWithDistance(
		c.Context(),
		domain.Coordinate{Lat: req.Lat, Lon: req.Lon},
		req.Limit,
	)
	if err != nil {
		return utils.SendError(c, err)
	}

	result := make([]dto.StationWithDistance, 0, len(stations))
	for i, s := range stations {
		result = append(result, dto.StationWithDistance{
			StationDto: *dto.ConvertStation(s),
			Distance:   math.Round(distances[i]*10) / 10,
		})
	}

	return utils.SendSuccess(c, dto.NearbyStationsResponse{Stations: result}, &utils.Meta{
		Total: len(result),
	})
}

// GetStationsByNumbers - станции по списку номеров
// @Summary Станции по номерам
// @Tags stations
// @Produce json
// @Param numbers query string true "Номера станций через запятую"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.StationDto}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/stations [get]
func (h *StationHandler) GetStationsByNumbers(c *fiber.Ctx) error {
	raw := strings.Split(c.Query("numbers"), ",")

	numbers := make([]int, 0, len(raw))
	for _, part := range raw {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest)
		}
		numbers = append(numbers, n)
	}

	stations, err := h.locatorUC.FindByNumbers(c.Context(), numbers)
	if err != nil {
		return utils.SendError(c, err)
	}

	result := make([]dto.StationDto, 0, len(stations))
	for _, s := range stations {
		result = append(result, *dto.ConvertStation(s))
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result),
	})
}
