package errors

import "net/http"

var (
	ErrNoRouteFound = New(
		"NO_ROUTE_FOUND",
		"Routing engine returned no paths for the requested points",
		http.StatusNotFound,
	)

	ErrStationUnavailable = New(
		"STATION_UNAVAILABLE",
		"No usable bike station near the requested coordinate",
		http.StatusNotFound,
	)

	ErrRouteExpired = New(
		"ROUTE_EXPIRED",
		"Route detail is no longer available",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrWaypointsRequired = New(
		"WAYPOINTS_REQUIRED",
		"Round trip requires at least one waypoint",
		http.StatusBadRequest,
	)

	ErrRoutingEngine = New(
		"ROUTING_ENGINE_ERROR",
		"Routing engine request failed",
		http.StatusBadGateway,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
