// internal/api/websocket.go
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Corphon/AIslandInferno/internal/models"
)

// WebSocket 升级器配置
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 在生产环境中应该进行更严格的检查
		return true
	},
}

// WebSocketClient 表示一个观看直播的客户端连接
type WebSocketClient struct {
	conn     *websocket.Conn
	send     chan []byte
	closed   int32 // 原子操作标志，0=开启，1=关闭
	lastPing time.Time
}

// Close 安全关闭客户端连接
func (client *WebSocketClient) Close() {
	if atomic.CompareAndSwapInt32(&client.closed, 0, 1) {
		if client.conn != nil {
			client.conn.Close()
		}
	}
}

// IsClosed 检查连接是否已关闭
func (client *WebSocketClient) IsClosed() bool {
	return atomic.LoadInt32(&client.closed) == 1
}

// WebSocketManager 管理所有观众连接并广播游戏状态
type WebSocketManager struct {
	clients     map[*WebSocketClient]bool
	register    chan *WebSocketClient
	unregister  chan *WebSocketClient
	broadcast   chan []byte
	mutex       sync.RWMutex
	pingTimeout time.Duration
}

// 全局 WebSocket 管理器
var wsManager = &WebSocketManager{
	clients:     make(map[*WebSocketClient]bool),
	register:    make(chan *WebSocketClient, 64),
	unregister:  make(chan *WebSocketClient, 64),
	broadcast:   make(chan []byte, 256),
	pingTimeout: 60 * time.Second,
}

func init() {
	go wsManager.run()
}

// run 管理器主循环
func (m *WebSocketManager) run() {
	for {
		select {
		case client := <-m.register:
			m.mutex.Lock()
			m.clients[client] = true
			m.mutex.Unlock()

		case client := <-m.unregister:
			m.mutex.Lock()
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
				client.Close()
			}
			m.mutex.Unlock()

		case message := <-m.broadcast:
			m.mutex.RLock()
			for client := range m.clients {
				if client.IsClosed() {
					continue
				}
				select {
				case client.send <- message:
				default:
					// 队列满，丢弃这条消息
					log.Printf("观众连接的消息队列已满，消息被丢弃")
				}
			}
			m.mutex.RUnlock()
		}
	}
}

// BroadcastState 向所有观众推送最新游戏快照
func (m *WebSocketManager) BroadcastState(state *models.GameState) {
	payload, err := json.Marshal(map[string]interface{}{
		"type":      "state_update",
		"state":     state,
		"timestamp": time.Now().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("状态广播序列化失败: %v", err)
		return
	}

	select {
	case m.broadcast <- payload:
	default:
		log.Printf("广播队列已满，状态更新被丢弃")
	}
}

// ClientCount 当前观众数量
func (m *WebSocketManager) ClientCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// GameWebSocket 升级HTTP连接并接入广播
func (h *Handler) GameWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket升级失败: %v", err)
		return
	}

	client := &WebSocketClient{
		conn:     conn,
		send:     make(chan []byte, 64),
		lastPing: time.Now(),
	}
	wsManager.register <- client

	// 接入即推送当前快照
	if h.GameService != nil {
		if payload, err := json.Marshal(map[string]interface{}{
			"type":  "state_update",
			"state": h.GameService.State(),
		}); err == nil {
			client.send <- payload
		}
	}

	go client.writePump()
	go client.readPump()
}

// writePump 把待发送消息写入连接
func (client *WebSocketClient) writePump() {
	pingTicker := time.NewTicker(30 * time.Second)
	defer func() {
		pingTicker.Stop()
		wsManager.unregister <- client
	}()

	for {
		select {
		case message, ok := <-client.send:
			if !ok {
				return
			}
			client.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-pingTicker.C:
			client.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump 消费入站消息并维护pong心跳
func (client *WebSocketClient) readPump() {
	defer func() {
		wsManager.unregister <- client
	}()

	client.conn.SetReadLimit(512)
	client.conn.SetReadDeadline(time.Now().Add(wsManager.pingTimeout))
	client.conn.SetPongHandler(func(string) error {
		client.lastPing = time.Now()
		client.conn.SetReadDeadline(time.Now().Add(wsManager.pingTimeout))
		return nil
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}
