package server

import "time"

// HealthResponse is the /healthz payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Commit    string    `json:"commit"`
	Uptime    float64   `json:"uptime"`
	Source    string    `json:"source"`
	Nodes     int       `json:"nodes"`
	ETag      string    `json:"etag"`
	LoadedAt  time.Time `json:"loaded_at"`
	Timestamp time.Time `json:"timestamp"`
}

// StatsResponse is the /stats.json payload.
type StatsResponse struct {
	Nodes    int `json:"nodes"`
	Leaves   int `json:"leaves"`
	MaxDepth int `json:"max_depth"`
	Pages    int `json:"pages"`
	Anchors  int `json:"anchors"`
}
