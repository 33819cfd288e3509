package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bikeroute-microservice/internal/pkg/errors"
	"github.com/bikeroute-microservice/internal/pkg/utils"
	"github.com/bikeroute-microservice/internal/pkg/validator"
	"github.com/bikeroute-microservice/internal/usecase"
	"github.com/bikeroute-microservice/internal/usecase/dto"
)

// JourneyHandler - обработчик запросов планирования поездок
type JourneyHandler struct {
	journeyUC *usecase.JourneyUseCase
	logger    *zap.Logger
}

func NewJourneyHandler(journeyUC *usecase.JourneyUseCase, logger *zap.Logger) *JourneyHandler {
	return &JourneyHandler{
		journeyUC: journeyUC,
		logger:    logger,
	}
}

// PlanJourney - построение поездки
// @Summary Построение поездки на городском велосипеде
// @Description Собирает до трёх поездок (приоритет велодорожек, кратчайшая, быстрейшая) между произвольными координатами, через промежуточные точки, по кругу или на целевую дистанцию
// @Tags journeys
// @Accept json
// @Produce json
// @Param request body dto.JourneyRequest true "Параметры поездки"
// @Success 200 {object} utils.SuccessResponse{data=dto.JourneyResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/journeys [post]
func (h *JourneyHandler) PlanJourney(c *fiber.Ctx) error {
	var req dto.JourneyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		h.logger.Warn("Journey request validation failed", zap.Error(err))
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	result, err := h.journeyUC.PlanJourney(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:    len(result.Routes),
		TimeMSec: float64(result.TookMs),
	})
}
