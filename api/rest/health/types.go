package health

import "context"

// a backing service the readiness probe checks
type Pinger interface {
	Ping(ctx context.Context) error
}

type Response struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type ReadyResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

type MeResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}
