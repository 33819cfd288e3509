// Package docs Bike Route Microservice API.
//
// Бэкенд планирования поездок на городском велопрокате. Составляет пешие
// и велосипедные плечи в сквозные поездки между произвольными координатами,
// круговые маршруты и маршруты на целевую дистанцию, ранжированные по
// категориям (приоритет велодорожек, кратчайший, быстрейший).
//
// Основные возможности:
// - Поездки от точки до точки с подбором станций у обоих концов
// - Маршруты через промежуточные точки
// - Круговые поездки и поездки на целевую дистанцию
// - Деталь маршрута по короткоживущему идентификатору
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
