// Package handler exposes the admin/observability HTTP API: process status,
// the moderation queue and point ledger, the ban re-arm operation, and a
// websocket stream of moderation events.
package handler

import (
	"time"

	"modbot/backend/internal/feed"
	"modbot/backend/internal/modqueue"
	"modbot/backend/internal/report"
)

// Handler holds the services the API reads from and acts on.
type Handler struct {
	Queue   *modqueue.Service
	Reports *report.Registry
	Feed    *feed.Hub

	// Guilds reports how many guilds the bot serves; optional.
	Guilds func() int

	adminKey  string
	jwtSecret []byte
	started   time.Time
}

// NewHandler creates the API handler.
func NewHandler(queue *modqueue.Service, reports *report.Registry, hub *feed.Hub, adminKey, jwtSecret string) *Handler {
	return &Handler{
		Queue:     queue,
		Reports:   reports,
		Feed:      hub,
		adminKey:  adminKey,
		jwtSecret: []byte(jwtSecret),
		started:   time.Now(),
	}
}
