// websocket/read_pump.go
package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// readPump обрабатывает чтение сообщений от клиента
func (c *Client) readPump(manager *Manager) {
	defer func() {
		// Отправляем сигнал отключения
		manager.doUnregister(c)
		c.Socket.Close()
		manager.logger.Debug("Завершение readPump для клиента %s", c.ID)
	}()

	// Устанавливаем параметры подключения
	c.Socket.SetReadLimit(maxMessageSize)
	c.Socket.SetReadDeadline(time.Now().Add(pongWait))
	c.Socket.SetPongHandler(func(string) error {
		c.Socket.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				manager.logger.Error("Ошибка чтения от клиента %s: %v", c.ID, err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			manager.logger.Debug("Ошибка декодирования сообщения клиента %s: %v", c.ID, err)
			c.reply(manager, Message{Type: TypeError, Error: "некорректный JSON"})
			continue
		}

		switch msg.Type {
		case TypePing:
			c.reply(manager, Message{Type: TypePong})

		case TypeSimulate:
			c.reply(manager, manager.simulate(msg))

		default:
			c.reply(manager, Message{Type: TypeError, Error: fmt.Sprintf("неизвестный тип сообщения %q", msg.Type)})
		}
	}
}

// simulate выполняет симуляцию партнерской программы по запросу клиента
func (manager *Manager) simulate(msg Message) Message {
	baseline, err := manager.baselines.Partnership(nil)
	if err != nil {
		manager.logger.Error("❌ Партнерская модель недоступна: %v", err)
		return Message{Type: TypeError, Error: err.Error()}
	}

	sim, err := baseline.Simulate(msg.Clients, msg.Months)
	if err != nil {
		return Message{Type: TypeError, Clients: msg.Clients, Months: msg.Months, Error: err.Error()}
	}
	return Message{Type: TypeSimulation, Clients: sim.Clients, Months: sim.Months, Simulation: sim}
}

// reply ставит ответ в очередь клиента; при переполненной очереди соединение закрывается
func (c *Client) reply(manager *Manager, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		manager.logger.Error("Ошибка сериализации ответа клиенту %s: %v", c.ID, err)
		return
	}
	select {
	case c.Send <- data:
	default:
		manager.logger.Error("⚠️ Очередь клиента %s переполнена, соединение закрывается", c.ID)
		c.Socket.Close()
	}
}
