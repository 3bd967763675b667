package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/launa-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/sse"
)

const keepaliveInterval = 30 * time.Second

// EventSubscriber opens a live update stream for one employee.
type EventSubscriber interface {
	Subscribe(employeeID string) (<-chan sse.Event, func())
}

type EventHandler interface {
	// Token issues a short-lived token for Stream
	Token(w http.ResponseWriter, r *http.Request)
	// Stream pushes record changes to the dashboard over server-sent events
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventHandlerImpl struct {
	authService auth.AuthService
	jwtService  jwt.Service
	subscriber  EventSubscriber
}

func NewEventHandler(authService auth.AuthService, jwtService jwt.Service, subscriber EventSubscriber) EventHandler {
	return &eventHandlerImpl{
		authService: authService,
		jwtService:  jwtService,
		subscriber:  subscriber,
	}
}

// Token handles GET /events/token
func (h *eventHandlerImpl) Token(w http.ResponseWriter, r *http.Request) {
	result, err := h.authService.EventToken(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Stream handles GET /events/stream?token=
func (h *eventHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// EventSource cannot send headers, so the token comes in the query
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	employeeID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.subscriber.Subscribe(employeeID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"employee_id\":%q}\n\n", employeeID)
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Warn("dropping unencodable event", "event", event.Event, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
