package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"haus-finance/domain"
	"haus-finance/finance"
	"haus-finance/service"
)

type InsightHandler struct {
	service  *service.InsightService
	upgrader *websocket.Upgrader
	logger   *zap.Logger
}

func NewInsightHandler(service *service.InsightService, upgrader *websocket.Upgrader, logger *zap.Logger) *InsightHandler {
	return &InsightHandler{service: service, upgrader: upgrader, logger: logger}
}

// Ask serves POST /insights/ask.
func (h *InsightHandler) Ask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, h.logger, http.MethodPost)
		return
	}

	var q domain.Question
	if err := decodeJSON(w, r, &q); err != nil {
		respondDecodeError(w, h.logger, err)
		return
	}

	answer, err := h.service.Ask(r.Context(), q)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, answer)
}

// Stream serves GET /insights/stream. Each question received on the socket
// is answered with a sequence of AnswerChunk messages ending in Done.
// Invalid questions get an error message and the socket stays open.
func (h *InsightHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The reader owns the read side: questions go to the writer loop below,
	// pongs extend the deadline. A vanished client ends the stream.
	questions := make(chan domain.Question)
	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	go func() {
		defer cancel()
		for {
			var q domain.Question
			if err := conn.ReadJSON(&q); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					h.logger.Debug("insight stream closed", zap.Error(err))
				}
				return
			}
			_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
			select {
			case questions <- q:
			case <-ctx.Done():
				return
			}
		}
	}()

	emit := func(chunk domain.AnswerChunk) error {
		return writeJSON(conn, chunk)
	}

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		case q := <-questions:
			err := h.service.Stream(ctx, q, emit)
			var verr *finance.ValidationError
			switch {
			case err == nil:
			case errors.As(err, &verr):
				if werr := writeJSON(conn, errorResponse{Error: verr.Message, Field: verr.Field}); werr != nil {
					return
				}
			case ctx.Err() != nil:
				return
			default:
				h.logger.Warn("insight stream aborted", zap.Error(err))
				closeNormally(conn)
				return
			}
		}
	}
}
