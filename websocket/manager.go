// websocket/manager.go
package websocket

import (
	"context"
	"encoding/json"

	"github.com/LilVoxy/marketing_dashboard/utils"
)

// NewManager создает новый менеджер WebSocket-соединений
func NewManager(logger *utils.Logger, baselines BaselineProvider) *Manager {
	return &Manager{
		logger:     logger,
		baselines:  baselines,
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		done:       make(chan struct{}),
	}
}

// Run обслуживает регистрацию клиентов и рассылку до отмены контекста
func (manager *Manager) Run(ctx context.Context) {
	defer close(manager.done)

	for {
		select {
		case client := <-manager.register:
			manager.clients[client.ID] = client
			manager.connected.Add(1)
			manager.logger.Info("👤 Клиент %s подключился", client.ID)

		case client := <-manager.unregister:
			if _, ok := manager.clients[client.ID]; ok {
				delete(manager.clients, client.ID)
				close(client.Send)
				manager.connected.Add(-1)
				manager.logger.Info("👤 Клиент %s отключился", client.ID)
			}

		case message := <-manager.broadcast:
			// Рассылаем сообщение всем подключенным клиентам
			manager.send(message)

		case <-ctx.Done():
			for _, client := range manager.clients {
				client.Socket.Close()
			}
			manager.logger.Info("Менеджер WebSocket остановлен, закрыто соединений: %d", len(manager.clients))
			return
		}
	}
}

// send отправляет сообщение всем подключенным клиентам.
// Клиент с переполненной очередью отключается через закрытие сокета,
// канал Send закрывается только при отмене регистрации.
func (manager *Manager) send(message []byte) {
	for _, client := range manager.clients {
		select {
		case client.Send <- message:
		default:
			manager.logger.Error("⚠️ Очередь клиента %s переполнена, соединение закрывается", client.ID)
			client.Socket.Close()
		}
	}
}

// Broadcast рассылает сообщение всем клиентам
func (manager *Manager) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		manager.logger.Error("Ошибка сериализации сообщения %s: %v", msg.Type, err)
		return
	}
	select {
	case manager.broadcast <- data:
	case <-manager.done:
	}
}

// BroadcastSnapshot уведомляет клиентов о новом снимке дашборда
func (manager *Manager) BroadcastSnapshot(id string) {
	manager.Broadcast(Message{Type: TypeSnapshot, SnapshotID: id})
}

// ClientCount количество подключенных клиентов
func (manager *Manager) ClientCount() int {
	return int(manager.connected.Load())
}

// doRegister передает клиента менеджеру; false, если менеджер уже остановлен
func (manager *Manager) doRegister(client *Client) bool {
	select {
	case manager.register <- client:
		return true
	case <-manager.done:
		return false
	}
}

func (manager *Manager) doUnregister(client *Client) {
	select {
	case manager.unregister <- client:
	case <-manager.done:
	}
}
