package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"haus-finance/domain"
	"haus-finance/service"
)

type ThemeHandler struct {
	store    *service.ThemeStore
	upgrader *websocket.Upgrader
	logger   *zap.Logger
}

func NewThemeHandler(store *service.ThemeStore, upgrader *websocket.Upgrader, logger *zap.Logger) *ThemeHandler {
	return &ThemeHandler{store: store, upgrader: upgrader, logger: logger}
}

type themePayload struct {
	Theme domain.Theme `json:"theme"`
}

// Theme serves GET and PUT /preferences/theme.
func (h *ThemeHandler) Theme(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		respondJSON(w, h.logger, http.StatusOK, themePayload{Theme: h.store.Current()})
	case http.MethodPut:
		var p themePayload
		if err := decodeJSON(w, r, &p); err != nil {
			respondDecodeError(w, h.logger, err)
			return
		}
		if err := h.store.Set(p.Theme); err != nil {
			respondServiceError(w, h.logger, err)
			return
		}
		respondJSON(w, h.logger, http.StatusOK, p)
	default:
		methodNotAllowed(w, h.logger, http.MethodGet, http.MethodPut)
	}
}

// Events serves GET /preferences/theme/events: the current theme on
// connect, then one message per change.
func (h *ThemeHandler) Events(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	updates, cancel := h.store.Subscribe()
	defer cancel()

	// The read side only exists to notice the client going away.
	gone := make(chan struct{})
	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := writeJSON(conn, themePayload{Theme: h.store.Current()}); err != nil {
		return
	}

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-gone:
			return
		case <-r.Context().Done():
			return
		case theme, ok := <-updates:
			if !ok {
				return
			}
			if err := writeJSON(conn, themePayload{Theme: theme}); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}
