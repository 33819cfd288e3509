//go:build ignore
// +build ignore

package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"
)

type point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type journeyRequest struct {
	Start          point    `json:"start"`
	End            *point   `json:"end,omitempty"`
	Waypoints      []point  `json:"waypoints,omitempty"`
	TargetDistance *float64 `json:"target_distance,omitempty"`
}

func ptr[T any](v T) *T {
	return &v
}

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "API base URL")
	mode := flag.String("mode", "direct", "journey shape: direct | circular")
	flag.Parse()

	// Тестовый запрос (центр Сеула)
	req := journeyRequest{
		Start: point{Lat: 37.5665, Lon: 126.9780},
	}
	switch *mode {
	case "direct":
		req.End = &point{Lat: 37.5512, Lon: 126.9882}
	case "circular":
		req.TargetDistance = ptr(5000.0)
	default:
		log.Fatalf("Unknown mode: %s", *mode)
	}

	body, err := json.Marshal(req)
	if err != nil {
		log.Fatalf("Failed to marshal request: %v", err)
	}

	client := &http.Client{Timeout: 60 * time.Second}
	started := time.Now()

	resp, err := client.Post(*apiURL+"/api/v1/journeys", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatalf("Failed to decode response: %v", err)
	}

	pretty, _ := json.MarshalIndent(result, "", "  ")
	fmt.Printf("Status: %d (took %v)\n%s\n", resp.StatusCode, time.Since(started), pretty)
}
