package graphhopper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bikeroute-microservice/internal/config"
	"github.com/bikeroute-microservice/internal/domain"
	"github.com/bikeroute-microservice/internal/domain/repository"
	"github.com/bikeroute-microservice/internal/pkg/errors"
)

const roundTripPoints = 2

type client struct {
	httpClient      *http.Client
	baseURL         string
	maxAlternatives int
	logger          *zap.Logger
	seed            func() int64
}

// NewClient создает новый клиент для GraphHopper API
func NewClient(cfg *config.GraphHopperConfig, logger *zap.Logger) repository.RoutingRepository {
	return NewClientWithSeed(cfg, logger, func() int64 {
		return time.Now().UnixNano()
	})
}

// NewClientWithSeed - клиент с внешним источником seed для round-trip
// запросов (детерминизм в тестах)
func NewClientWithSeed(cfg *config.GraphHopperConfig, logger *zap.Logger, seed func() int64) repository.RoutingRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:         cfg.BaseURL,
		maxAlternatives: cfg.MaxAlternatives,
		logger:          logger,
		seed:            seed,
	}
}

// routeRequest - тело запроса к /route; точки передаются как [lon, lat]
type routeRequest struct {
	Points        [][]float64       `json:"points"`
	Profile       string            `json:"profile"`
	Elevation     bool              `json:"elevation"`
	PointsEncoded bool              `json:"points_encoded"`
	Instructions  bool              `json:"instructions"`
	Details       []string          `json:"details,omitempty"`
	Algorithm     string            `json:"algorithm,omitempty"`
	AlternativeRt *alternativeRoute `json:"alternative_route,omitempty"`
	RoundTrip     *roundTrip        `json:"round_trip,omitempty"`
	CHDisable     *chOptions        `json:"ch,omitempty"`
}

type alternativeRoute struct {
	MaxPaths int `json:"max_paths"`
}

type roundTrip struct {
	Distance float64 `json:"distance"`
	Seed     int64   `json:"seed"`
	Points   int     `json:"points"`
}

type chOptions struct {
	Disable bool `json:"disable"`
}

// geoJSONLine - геометрия пути при points_encoded=false
type geoJSONLine struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

type routeResponse struct {
	Paths []struct {
		Distance     float64              `json:"distance"`
		Time         int64                `json:"time"`
		Ascend       float64              `json:"ascend"`
		Descend      float64              `json:"descend"`
		BBox         []float64            `json:"bbox"`
		Points       geoJSONLine          `json:"points"`
		Instructions []domain.Instruction `json:"instructions"`
		Details      domain.PathDetails   `json:"details"`
	} `json:"paths"`
	Info struct {
		Took int64 `json:"took"`
	} `json:"info"`
}

func (c *client) route(ctx context.Context, req routeRequest) ([]*domain.Path, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal route request: %w", err)
	}

	url := c.baseURL + "/route"
	c.logger.Debug("Calling GraphHopper route API",
		zap.String("profile", req.Profile),
		zap.String("algorithm", req.Algorithm),
		zap.Int("points_count", len(req.Points)))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("GraphHopper API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(respBody)))
		return nil, fmt.Errorf("graphhopper API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var routeResp routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&routeResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	paths := make([]*domain.Path, 0, len(routeResp.Paths))
	for _, p := range routeResp.Paths {
		paths = append(paths, &domain.Path{
			Distance:     p.Distance,
			Time:         p.Time,
			Ascent:       p.Ascend,
			Descent:      p.Descend,
			Points:       p.Points.Coordinates,
			BBox:         p.BBox,
			Instructions: p.Instructions,
			Details:      p.Details,
			Profile:      req.Profile,
		})
	}

	c.logger.Debug("GraphHopper route API call successful",
		zap.Int("paths_count", len(paths)),
		zap.Int64("took_ms", routeResp.Info.Took))

	return paths, nil
}

func (c *client) SingleRoute(ctx context.Context, from, to domain.Coordinate, profile string) (*domain.Path, error) {
	paths, err := c.route(ctx, routeRequest{
		Points:        [][]float64{{from.Lon, from.Lat}, {to.Lon, to.Lat}},
		Profile:       profile,
		Elevation:     true,
		PointsEncoded: false,
		Instructions:  true,
		Details:       []string{"road_class", "bike_network"},
	})
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.ErrNoRouteFound
	}
	return paths[0], nil
}

func (c *client) AlternativeRoutes(ctx context.Context, from, to domain.Coordinate, profile string, maxPaths int) ([]*domain.Path, error) {
	if maxPaths <= 0 {
		maxPaths = c.maxAlternatives
	}

	// ch.disable для большего разнообразия альтернатив
	paths, err := c.route(ctx, routeRequest{
		Points:        [][]float64{{from.Lon, from.Lat}, {to.Lon, to.Lat}},
		Profile:       profile,
		Elevation:     true,
		PointsEncoded: false,
		Instructions:  true,
		Details:       []string{"road_class", "bike_network"},
		Algorithm:     "alternative_route",
		AlternativeRt: &alternativeRoute{MaxPaths: maxPaths},
		CHDisable:     &chOptions{Disable: true},
	})
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.ErrNoRouteFound
	}
	return paths, nil
}

func (c *client) MultipleProfileRoutes(ctx context.Context, from, to domain.Coordinate) ([]*domain.Path, error) {
	var all []*domain.Path
	for _, profile := range domain.BikeProfiles {
		paths, err := c.AlternativeRoutes(ctx, from, to, profile, c.maxAlternatives)
		if err != nil {
			// Частичный сбой одного профиля не прерывает весь вызов
			c.logger.Warn("Profile route request failed",
				zap.String("profile", profile),
				zap.Error(err))
			continue
		}
		all = append(all, paths...)
	}
	if len(all) == 0 {
		return nil, errors.ErrNoRouteFound
	}
	return all, nil
}

func (c *client) CircularRoutes(ctx context.Context, start domain.Coordinate, targetDistanceMeters float64) ([]*domain.Path, error) {
	var all []*domain.Path
	for _, profile := range domain.BikeProfiles {
		paths, err := c.roundTripRoute(ctx, start, profile, targetDistanceMeters)
		if err != nil {
			c.logger.Warn("Circular route request failed",
				zap.String("profile", profile),
				zap.Error(err))
			continue
		}
		all = append(all, paths...)
	}
	if len(all) == 0 {
		return nil, errors.ErrNoRouteFound
	}
	return all, nil
}

func (c *client) SingleCircularRoute(ctx context.Context, start domain.Coordinate, profile string, targetDistanceMeters float64) (*domain.Path, error) {
	paths, err := c.roundTripRoute(ctx, start, profile, targetDistanceMeters)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.ErrNoRouteFound
	}
	return paths[0], nil
}

func (c *client) roundTripRoute(ctx context.Context, start domain.Coordinate, profile string, targetDistanceMeters float64) ([]*domain.Path, error) {
	return c.route(ctx, routeRequest{
		Points:        [][]float64{{start.Lon, start.Lat}},
		Profile:       profile,
		Elevation:     true,
		PointsEncoded: false,
		Instructions:  true,
		Details:       []string{"road_class", "bike_network"},
		Algorithm:     "round_trip",
		AlternativeRt: &alternativeRoute{MaxPaths: c.maxAlternatives},
		RoundTrip: &roundTrip{
			Distance: targetDistanceMeters,
			Seed:     c.seed(),
			Points:   roundTripPoints,
		},
		CHDisable: &chOptions{Disable: true},
	})
}
