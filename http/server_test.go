package http

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"haus-finance/config"
	"haus-finance/domain"
)

func TestServer_ShutdownEndsInsightStreams(t *testing.T) {
	env := newTestEnv(t, 100, nil)
	srv := NewServer(zap.NewNop(), config.HTTPConfig{}, env.handler)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ln) }()

	conn, resp, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/insights/stream", nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	require.NoError(t, conn.WriteJSON(domain.Question{Text: "market?"}))
	for {
		var chunk domain.AnswerChunk
		require.NoError(t, conn.ReadJSON(&chunk))
		if chunk.Done {
			break
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	require.NoError(t, <-served)

	// the handler drops the socket instead of waiting for the next question
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	var netErr net.Error
	assert.False(t, errors.As(err, &netErr) && netErr.Timeout(), "socket was not closed: %v", err)
}
