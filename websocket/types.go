// websocket/types.go
package websocket

import (
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/LilVoxy/marketing_dashboard/partnership"
	"github.com/LilVoxy/marketing_dashboard/utils"
)

// Message сообщение, которым обмениваются клиент и сервер
type Message struct {
	Type       string                  `json:"type"`
	ClientID   string                  `json:"clientId,omitempty"`
	Clients    int                     `json:"clients,omitempty"`
	Months     int                     `json:"months,omitempty"`
	SnapshotID string                  `json:"snapshotId,omitempty"`
	Simulation *partnership.Simulation `json:"simulation,omitempty"`
	Error      string                  `json:"error,omitempty"`
}

// BaselineProvider рассчитывает партнерскую модель по выбранным месяцам
type BaselineProvider interface {
	Partnership(months []string) (*partnership.Baseline, error)
}

// Client клиент WebSocket
type Client struct {
	ID     string
	Socket *websocket.Conn
	Send   chan []byte
}

// Manager менеджер WebSocket-соединений симулятора
type Manager struct {
	logger    *utils.Logger
	baselines BaselineProvider

	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	connected atomic.Int64
}

// Конфигурация WebSocket-соединения
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Дашборд открывается с любого источника
	},
}
