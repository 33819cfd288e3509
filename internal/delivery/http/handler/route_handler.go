package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bikeroute-microservice/internal/pkg/utils"
	"github.com/bikeroute-microservice/internal/usecase"
)

// RouteHandler - чтение сохранённой детали маршрута
type RouteHandler struct {
	routeDetailUC *usecase.RouteDetailUseCase
	logger        *zap.Logger
}

func NewRouteHandler(routeDetailUC *usecase.RouteDetailUseCase, logger *zap.Logger) *RouteHandler {
	return &RouteHandler{
		routeDetailUC: routeDetailUC,
		logger:        logger,
	}
}

// GetRoute - деталь маршрута по route_id
// @Summary Деталь ранее построенного маршрута
// @Description Полная геометрия и навигация маршрута; запись живёт 180 секунд после построения
// @Tags routes
// @Produce json
// @Param id path string true "Идентификатор маршрута"
// @Success 200 {object} utils.SuccessResponse{data=domain.CategorizedPath}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/routes/{id} [get]
func (h *RouteHandler) GetRoute(c *fiber.Ctx) error {
	routeID := c.Params("id")

	route, err := h.routeDetailUC.GetRoute(c.Context(), routeID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, route, nil)
}
