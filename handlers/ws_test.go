package handlers

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWSTestServer(h *WSHandler) *httptest.Server {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", func(c *gin.Context) {
		c.Set("user_id", c.Query("user"))
		h.HandleWS(c)
	})
	return httptest.NewServer(r)
}

func dialWS(t *testing.T, srv *httptest.Server, user string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?user=" + user
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestBroadcastUpdate_ReachesOnlyTheTargetUser(t *testing.T) {
	h := NewWSHandler()
	srv := newWSTestServer(h)
	defer srv.Close()

	alice := dialWS(t, srv, "alice")
	defer alice.Close()
	bob := dialWS(t, srv, "bob")
	defer bob.Close()

	require.Eventually(t, func() bool { return h.M.Len() == 2 },
		time.Second, 10*time.Millisecond)

	h.BroadcastUpdate("alice", "accounts_linked")

	require.NoError(t, alice.SetReadDeadline(time.Now().Add(time.Second)))
	_, msg, err := alice.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": "accounts_linked"}`, string(msg))

	// Bob must see nothing.
	require.NoError(t, bob.SetReadDeadline(time.Now().Add(200 * time.Millisecond)))
	_, _, err = bob.ReadMessage()
	assert.Error(t, err)
}

// Sessions connecting at the same time must each keep their own
// identity, not whichever one registered last.
func TestBroadcastUpdate_ConcurrentConnectsKeepTheirIdentity(t *testing.T) {
	h := NewWSHandler()
	srv := newWSTestServer(h)
	defer srv.Close()

	const users = 8
	conns := make([]*websocket.Conn, users)

	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conns[i] = dialWS(t, srv, fmt.Sprintf("user-%d", i))
		}(i)
	}
	wg.Wait()
	for _, conn := range conns {
		defer conn.Close()
	}

	require.Eventually(t, func() bool { return h.M.Len() == users },
		time.Second, 10*time.Millisecond)

	for i := 0; i < users; i++ {
		h.BroadcastUpdate(fmt.Sprintf("user-%d", i), fmt.Sprintf("event-%d", i))
	}

	for i, conn := range conns {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.JSONEq(t, fmt.Sprintf(`{"type": "event-%d"}`, i), string(msg))
	}
}
