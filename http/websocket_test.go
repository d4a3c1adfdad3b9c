package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haus-finance/domain"
	"haus-finance/service"
)

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func TestInsightStream(t *testing.T) {
	env := newTestEnv(t, 100, nil)
	srv := httptest.NewServer(env.handler)
	defer srv.Close()

	conn := dial(t, srv, "/insights/stream")
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(domain.Question{Text: "How much can I borrow?"}))

	var text strings.Builder
	var last domain.AnswerChunk
	for {
		var chunk domain.AnswerChunk
		require.NoError(t, conn.ReadJSON(&chunk))
		if chunk.Done {
			last = chunk
			break
		}
		text.WriteString(chunk.Text)
	}
	assert.Equal(t, service.ScriptedProviderName, last.Provider)
	assert.Contains(t, text.String(), "20% deposit")

	// an invalid question keeps the socket open
	require.NoError(t, conn.WriteJSON(domain.Question{Text: " "}))
	var errMsg errorResponse
	require.NoError(t, conn.ReadJSON(&errMsg))
	assert.Equal(t, "question", errMsg.Field)

	require.NoError(t, conn.WriteJSON(domain.Question{Text: "market?"}))
	var chunk domain.AnswerChunk
	require.NoError(t, conn.ReadJSON(&chunk))
	assert.NotEmpty(t, chunk.Text)
}

func TestThemeEvents(t *testing.T) {
	env := newTestEnv(t, 100, nil)
	srv := httptest.NewServer(env.handler)
	defer srv.Close()

	conn := dial(t, srv, "/preferences/theme/events")
	defer conn.Close()

	var initial themePayload
	require.NoError(t, conn.ReadJSON(&initial))
	assert.Equal(t, domain.ThemeLight, initial.Theme)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/preferences/theme", strings.NewReader(`{"theme":"dark"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var update themePayload
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, domain.ThemeDark, update.Theme)
}
