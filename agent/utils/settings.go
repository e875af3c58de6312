package utils

import (
	"time"
)

// HTTPReqTimeout bounds every single admin API round trip.
const HTTPReqTimeout = 1 * time.Minute

var Settings = &Hub{
	pollInterval: 2 * time.Second,
	pollTicks:    30,
	timeout:      HTTPReqTimeout,
}

// Hub carries the console's runtime settings. The command layer fills
// it from flags and env before anything talks to the agent.
type Hub struct {
	gatewayURL string        // agent admin API base URL
	apiKey     string        // admin API key, empty when auth is off
	timeout    time.Duration // per-request timeout

	pollInterval time.Duration // tick period of the refresh scheduler
	pollTicks    int           // ticks per countdown
}

func (h *Hub) GatewayURL() string {
	return h.gatewayURL
}

func (h *Hub) SetGatewayURL(u string) {
	h.gatewayURL = u
}

func (h *Hub) APIKey() string {
	return h.apiKey
}

func (h *Hub) SetAPIKey(k string) {
	h.apiKey = k
}

func (h *Hub) Timeout() time.Duration {
	return h.timeout
}

func (h *Hub) SetTimeout(d time.Duration) {
	h.timeout = d
}

func (h *Hub) PollInterval() time.Duration {
	return h.pollInterval
}

func (h *Hub) SetPollInterval(d time.Duration) {
	if d > 0 {
		h.pollInterval = d
	}
}

func (h *Hub) PollTicks() int {
	return h.pollTicks
}

func (h *Hub) SetPollTicks(n int) {
	if n > 0 {
		h.pollTicks = n
	}
}
