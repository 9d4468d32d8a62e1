// websocket/connection_handler.go
package websocket

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// HandleConnections обрабатывает WebSocket-соединения симулятора
func (manager *Manager) HandleConnections(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		manager.logger.Error("Ошибка при установке WebSocket-соединения: %v", err)
		return
	}

	client := &Client{
		ID:     uuid.NewString(),
		Socket: conn,
		Send:   make(chan []byte, sendBufferSize),
	}

	if !manager.doRegister(client) {
		manager.logger.Error("Менеджер WebSocket остановлен, соединение %s отклонено", r.RemoteAddr)
		conn.Close()
		return
	}
	manager.logger.Info("✅ Клиент %s подключился с адреса %s", client.ID, r.RemoteAddr)

	if welcome, err := json.Marshal(Message{Type: TypeWelcome, ClientID: client.ID}); err == nil {
		client.Send <- welcome
	}

	// Запускаем горутины для чтения и отправки сообщений
	go client.writePump(manager)
	go client.readPump(manager)
}
