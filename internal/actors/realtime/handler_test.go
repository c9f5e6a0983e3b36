package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podiumlink/podiumlink/internal/core/model"
)

type fakeWatcher struct {
	mu      sync.Mutex
	fn      func([]model.Conversation)
	stopped bool
	initial []model.Conversation
}

func (f *fakeWatcher) WatchConversations(_ context.Context, _ string, fn func([]model.Conversation)) (func(), error) {
	f.mu.Lock()
	f.fn = fn
	f.mu.Unlock()
	fn(f.initial)
	return func() {
		f.mu.Lock()
		f.stopped = true
		f.mu.Unlock()
	}, nil
}

func (f *fakeWatcher) push(snapshot []model.Conversation) {
	f.mu.Lock()
	fn := f.fn
	f.mu.Unlock()
	fn(snapshot)
}

func (f *fakeWatcher) isStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

type fakeSessions struct {
	sessions map[string]any
}

func (f *fakeSessions) Get(key string) (any, bool) {
	v, ok := f.sessions[key]
	return v, ok
}

func (f *fakeSessions) Set(key string, value any) { f.sessions[key] = value }
func (f *fakeSessions) Delete(key string)         { delete(f.sessions, key) }

func newTestServer(t *testing.T, watcher ConversationWatcher) (*httptest.Server, *Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	sessions := &fakeSessions{sessions: map[string]any{
		"tok-1": model.Session{Token: "tok-1", UserID: "user-1", Role: model.RoleProgrammer},
	}}
	handler := NewHandler(HandlerArgs{Hub: hub, Watcher: watcher, Sessions: sessions})
	router := gin.New()
	router.GET("/ws/conversations", handler.ServeConversations)
	return httptest.NewServer(router), hub
}

func readSnapshot(t *testing.T, ws *websocket.Conn) snapshotEnvelope {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := ws.ReadMessage()
	require.NoError(t, err)
	var env snapshotEnvelope
	require.NoError(t, json.Unmarshal(payload, &env))
	return env
}

func TestServeConversationsPushesSnapshots(t *testing.T) {
	watcher := &fakeWatcher{initial: []model.Conversation{{ID: "c1", Subject: "booking"}}}
	srv, hub := newTestServer(t, watcher)
	defer srv.Close()
	defer hub.Shutdown()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/conversations?token=tok-1"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	env := readSnapshot(t, ws)
	assert.Equal(t, "conversations", env.Type)
	require.Len(t, env.Conversations, 1)
	assert.Equal(t, "c1", env.Conversations[0].ID)

	watcher.push([]model.Conversation{{ID: "c1"}, {ID: "c2"}})
	env = readSnapshot(t, ws)
	assert.Len(t, env.Conversations, 2)
}

func TestServeConversationsStopsWatchOnClose(t *testing.T) {
	watcher := &fakeWatcher{}
	srv, hub := newTestServer(t, watcher)
	defer srv.Close()
	defer hub.Shutdown()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/conversations?token=tok-1"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = readSnapshot(t, ws)
	require.NoError(t, ws.Close())

	assert.Eventually(t, watcher.isStopped, 2*time.Second, 20*time.Millisecond)
}

// floodWatcher overruns the connection's send buffer before returning the
// stop func, so the connection closes while the watch is still being set up.
type floodWatcher struct {
	fakeWatcher
}

func (f *floodWatcher) WatchConversations(_ context.Context, _ string, fn func([]model.Conversation)) (func(), error) {
	for i := 0; i < sendBuffer+2; i++ {
		fn([]model.Conversation{{ID: "c1"}})
	}
	return func() {
		f.mu.Lock()
		f.stopped = true
		f.mu.Unlock()
	}, nil
}

func TestServeConversationsStopsWatchAfterEarlyClose(t *testing.T) {
	watcher := &floodWatcher{}
	srv, hub := newTestServer(t, watcher)
	defer srv.Close()
	defer hub.Shutdown()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/conversations?token=tok-1"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	// the flood closes the connection before the stop func is bound; the
	// watch must still be cancelled
	assert.Eventually(t, watcher.isStopped, 2*time.Second, 20*time.Millisecond)
}

func TestServeConversationsRejectsUnknownToken(t *testing.T) {
	srv, hub := newTestServer(t, &fakeWatcher{})
	defer srv.Close()
	defer hub.Shutdown()

	resp, err := http.Get(srv.URL + "/ws/conversations?token=nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
