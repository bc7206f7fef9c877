package discord

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	serverShutdownTimeout = 5 * time.Second
	defaultAnnounceColor  = ColorSuccess
)

// BotStatus is what the internal server needs from the bot
type BotStatus interface {
	Connected() bool
	Announce(embed *discordgo.MessageEmbed) error
}

// HTTPServer serves the bot's health probe and announcement hook
type HTTPServer struct {
	server *http.Server
	status BotStatus
	api    *APIClient
}

// NewHTTPServer creates a new HTTP server
func NewHTTPServer(port string, status BotStatus, api *APIClient) *HTTPServer {
	mux := http.NewServeMux()

	srv := &HTTPServer{
		server: &http.Server{
			Addr:              ":" + port,
			Handler:           mux,
			ReadHeaderTimeout: serverShutdownTimeout,
		},
		status: status,
		api:    api,
	}

	mux.HandleFunc("GET /healthz", srv.HandleHealth)
	mux.HandleFunc("POST /admin/announce", srv.handleAnnounce)
	return srv
}

// Start serves in the background
func (s *HTTPServer) Start() {
	go func() {
		slog.Info(LogMsgHealthServerStart, "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error(LogMsgHealthServerFail, "error", err)
		}
	}()
}

// Stop stops the HTTP server
func (s *HTTPServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error(LogMsgHealthServerFail, "error", err)
	}
}

// AnnounceRequest is posted by operators to broadcast museum news
type AnnounceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

func (s *HTTPServer) handleAnnounce(w http.ResponseWriter, r *http.Request) {
	var req AnnounceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Color == 0 {
		req.Color = defaultAnnounceColor
	}

	embed := createEmbed(req.Title, req.Description, req.Color)
	embed.Timestamp = time.Now().Format(time.RFC3339)

	if err := s.status.Announce(embed); err != nil {
		slog.Error("Failed to send announcement", "error", err)
		code := http.StatusBadGateway
		if errors.Is(err, ErrNoNotificationChannel) {
			code = http.StatusServiceUnavailable
		}
		http.Error(w, "Failed to send to Discord", code)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
