package wsserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonview/pkg/jsonvalue"
	"github.com/grovetools/jsonview/pkg/worker"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	w := worker.New(worker.WithConcurrency(2))
	t.Cleanup(func() { w.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	srv := httptest.NewServer(New(w, logrus.NewEntry(logger)).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg string) worker.Response {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var resp worker.Response
	require.NoError(t, gojson.Unmarshal(data, &resp))
	return resp
}

func TestOriginCheck(t *testing.T) {
	srv := newTestServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	t.Run("cross origin is rejected", func(t *testing.T) {
		header := http.Header{"Origin": []string{"http://evil.example"}}
		conn, resp, err := websocket.DefaultDialer.Dial(url, header)
		require.Error(t, err)
		if conn != nil {
			conn.Close()
		}
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("same origin is accepted", func(t *testing.T) {
		header := http.Header{"Origin": []string{srv.URL}}
		conn, _, err := websocket.DefaultDialer.Dial(url, header)
		require.NoError(t, err)
		conn.Close()
	})
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequests(t *testing.T) {
	srv := newTestServer(t)
	conn := dial(t, srv)

	resp := roundTrip(t, conn, `{"id":"a1","type":"minify","payload":"{ \"k\" : [1, 2] }"}`)
	assert.Equal(t, "a1", resp.ID)
	assert.True(t, resp.Success)
	assert.Equal(t, `{"k":[1,2]}`, resp.Result.Str())

	resp = roundTrip(t, conn, `{"id":"a2","type":"parse","payload":"{\"z\":1,\"a\":2}"}`)
	assert.True(t, resp.Success)
	assert.Equal(t, `{"z":1,"a":2}`, jsonvalue.Marshal(resp.Result, ""))

	resp = roundTrip(t, conn, `{"id":"a3","type":"beautify","payload":{"text":"[1]","indent":"tab"}}`)
	assert.True(t, resp.Success)
	assert.Equal(t, "[\n\t1\n]", resp.Result.Str())

	resp = roundTrip(t, conn, `{"id":"a4","type":"explode","payload":null}`)
	assert.Equal(t, "a4", resp.ID)
	assert.False(t, resp.Success)
	assert.Equal(t, "Unknown operation type: explode", resp.Error)
	assert.Equal(t, "UNKNOWN_OPERATION", resp.Code)
}

func TestMalformedEnvelope(t *testing.T) {
	srv := newTestServer(t)
	conn := dial(t, srv)

	resp := roundTrip(t, conn, `{"id":`)
	assert.False(t, resp.Success)
	assert.Equal(t, "INVALID_INPUT", resp.Code)
}
