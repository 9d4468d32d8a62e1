package websocket

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/marketing_dashboard/partnership"
	"github.com/LilVoxy/marketing_dashboard/utils"
)

type staticBaseline struct {
	baseline *partnership.Baseline
	err      error
}

func (s staticBaseline) Partnership([]string) (*partnership.Baseline, error) {
	return s.baseline, s.err
}

func newBaseline(t *testing.T) *partnership.Baseline {
	t.Helper()
	b, err := partnership.NewBaseline(partnership.DefaultConfig(), partnership.Inputs{
		AverageTicket: 137.56, ROI: 346.164, LTV: 1650.72, CAC: 377.064,
	})
	require.NoError(t, err)
	return b
}

func startServer(t *testing.T, provider BaselineProvider) (*Manager, *httptest.Server) {
	t.Helper()
	manager := NewManager(utils.Discard(), provider)

	ctx, cancel := context.WithCancel(context.Background())
	go manager.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(manager.HandleConnections))
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return manager, server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	welcome := read(t, conn)
	require.Equal(t, TypeWelcome, welcome.Type)
	require.NotEmpty(t, welcome.ClientID)
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestSimulate(t *testing.T) {
	_, server := startServer(t, staticBaseline{baseline: newBaseline(t)})
	conn := dial(t, server)

	require.NoError(t, conn.WriteJSON(Message{Type: TypeSimulate, Clients: 10, Months: 6}))
	reply := read(t, conn)

	assert.Equal(t, TypeSimulation, reply.Type)
	require.NotNil(t, reply.Simulation)
	assert.Equal(t, 60, reply.Simulation.TotalClients)
	assert.InDelta(t, 1238.04, reply.Simulation.CommissionTotal, 1e-6)
	assert.Len(t, reply.Simulation.Projection, 6)
}

func TestSimulate_InvalidParameters(t *testing.T) {
	_, server := startServer(t, staticBaseline{baseline: newBaseline(t)})
	conn := dial(t, server)

	require.NoError(t, conn.WriteJSON(Message{Type: TypeSimulate, Clients: 80, Months: 6}))
	reply := read(t, conn)

	assert.Equal(t, TypeError, reply.Type)
	assert.Contains(t, reply.Error, partnership.ErrInvalidParameters.Error())
	assert.Nil(t, reply.Simulation)
}

func TestSimulate_BaselineUnavailable(t *testing.T) {
	_, server := startServer(t, staticBaseline{err: errors.New("нет данных")})
	conn := dial(t, server)

	require.NoError(t, conn.WriteJSON(Message{Type: TypeSimulate, Clients: 10, Months: 6}))
	reply := read(t, conn)
	assert.Equal(t, TypeError, reply.Type)
	assert.Equal(t, "нет данных", reply.Error)
}

func TestPingAndUnknownMessages(t *testing.T) {
	_, server := startServer(t, staticBaseline{baseline: newBaseline(t)})
	conn := dial(t, server)

	require.NoError(t, conn.WriteJSON(Message{Type: TypePing}))
	assert.Equal(t, TypePong, read(t, conn).Type)

	require.NoError(t, conn.WriteJSON(Message{Type: "chat"}))
	assert.Equal(t, TypeError, read(t, conn).Type)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{broken")))
	assert.Equal(t, TypeError, read(t, conn).Type)
}

func TestBroadcastSnapshot(t *testing.T) {
	manager, server := startServer(t, staticBaseline{baseline: newBaseline(t)})
	first := dial(t, server)
	second := dial(t, server)

	require.Eventually(t, func() bool { return manager.ClientCount() == 2 }, 5*time.Second, 10*time.Millisecond)
	manager.BroadcastSnapshot("snap-42")

	for _, conn := range []*websocket.Conn{first, second} {
		msg := read(t, conn)
		assert.Equal(t, TypeSnapshot, msg.Type)
		assert.Equal(t, "snap-42", msg.SnapshotID)
	}
}

func TestUnregisterOnClose(t *testing.T) {
	manager, server := startServer(t, staticBaseline{baseline: newBaseline(t)})
	conn := dial(t, server)
	require.Eventually(t, func() bool { return manager.ClientCount() == 1 }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return manager.ClientCount() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestBroadcastAfterStop(t *testing.T) {
	manager := NewManager(utils.Discard(), staticBaseline{})
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		manager.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	done := make(chan struct{})
	go func() {
		manager.BroadcastSnapshot("late")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("рассылка после остановки заблокировалась")
	}
}
