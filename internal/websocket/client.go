package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"groupchat-be/internal/dto"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

// CommandHandler executes one client command against the chat services.
// Implemented by the gateway service; errors are already answered on the
// socket by the time it returns.
type CommandHandler interface {
	HandleCommand(ctx context.Context, client *Client, cmd dto.ClientCommand)
	HandleDisconnect(ctx context.Context, client *Client)
}

// Client is a middleman between one websocket connection and the hub.
type Client struct {
	Hub *Hub

	Conn *websocket.Conn

	// Identity resolved at connect time; a connection without one never
	// reaches this struct.
	UserId   uint64
	Nickname string

	// Buffered channel of outbound frames. Sends race with the close
	// when the hub drops a slow consumer, so every send and the close
	// go through sendMu.
	Send chan []byte

	// rooms this connection is subscribed to; guarded by the hub mutex.
	rooms map[uint64]struct{}

	handler CommandHandler

	sendMu     sync.Mutex
	sendClosed bool
}

// CloseSend closes the outbound channel exactly once, which terminates
// the write pump. Safe to call concurrently with trySend.
func (c *Client) CloseSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.sendClosed {
		return
	}
	c.sendClosed = true
	close(c.Send)
}

// trySend enqueues a raw frame. Returns false when the buffer is full
// or the channel is already closed.
func (c *Client) trySend(raw []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.sendClosed {
		return false
	}
	select {
	case c.Send <- raw:
		return true
	default:
		return false
	}
}

// SendFrame marshals and enqueues a server frame, dropping it if the
// buffer is full. Live delivery is best-effort.
func (c *Client) SendFrame(frameType string, data interface{}) {
	raw, err := json.Marshal(dto.ServerFrame{Type: frameType, Data: data})
	if err != nil {
		return
	}
	c.trySend(raw)
}

// SendError answers a failed command. The connection stays open.
func (c *Client) SendError(code, message, action string, roomId uint64) {
	c.SendFrame(dto.FrameError, dto.ErrorFrame{
		Code:    code,
		Message: message,
		Action:  action,
		RoomId:  roomId,
	})
}

// readPump pumps commands from the websocket connection to the handler.
func (c *Client) readPump() {
	defer func() {
		c.handler.HandleDisconnect(context.Background(), c)
		c.CloseSend()
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("Client", "Unexpected close", map[string]interface{}{
					"user_id": c.UserId,
					"error":   err.Error(),
				})
			}
			break
		}

		var cmd dto.ClientCommand
		if err := json.Unmarshal(raw, &cmd); err != nil {
			c.SendError("InvalidPayload", "malformed command frame", "", 0)
			continue
		}

		c.handler.HandleCommand(context.Background(), c, cmd)
	}
}

// writePump pumps frames from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

			// Drain queued frames into their own writes; frames are
			// self-contained JSON documents.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				if err := c.Conn.WriteMessage(websocket.TextMessage, <-c.Send); err != nil {
					return
				}
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs runs the pump pair for an authenticated connection. Blocks
// until the connection drops.
func ServeWs(hub *Hub, conn *websocket.Conn, userId uint64, nickname string, handler CommandHandler) {
	client := &Client{
		Hub:      hub,
		Conn:     conn,
		UserId:   userId,
		Nickname: nickname,
		Send:     make(chan []byte, 256),
		rooms:    make(map[uint64]struct{}),
		handler:  handler,
	}

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
