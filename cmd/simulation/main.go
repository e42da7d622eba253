package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"groupchat-be/internal/dto"

	"github.com/fasthttp/websocket"
	"github.com/fatih/color"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

const defaultWsURL = "ws://localhost:3000/api/chat/ws"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	wsURL := envOr("SIM_WS_URL", defaultWsURL)
	roomId := envOrUint("SIM_ROOM_ID", 1)
	userId := envOrUint("SIM_USER_ID", 2)
	nickname := envOr("SIM_NICKNAME", "bob")

	color.New(color.Bold).Println("=== Group Chat Simulation Client ===")
	fmt.Printf("Connecting as user %d (%s) to room %d\n", userId, nickname, roomId)

	token, err := mintToken(userId, nickname)
	if err != nil {
		log.Fatalf("Failed to mint token: %v", err)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		log.Fatalf("Failed to dial %s: %v", wsURL, err)
	}
	defer conn.Close()

	done := make(chan struct{})
	go readLoop(conn, done)

	send := func(cmd dto.ClientCommand) {
		payload, _ := json.Marshal(cmd)
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("Write failed: %v", err)
		}
		time.Sleep(300 * time.Millisecond)
	}

	send(dto.ClientCommand{Action: dto.ActionEnter, RoomId: roomId})
	send(dto.ClientCommand{Action: dto.ActionSend, RoomId: roomId, Body: "hello from the simulation client"})
	send(dto.ClientCommand{Action: dto.ActionSend, RoomId: roomId, Body: "and a second message"})

	// Give the fan-out a moment before leaving.
	time.Sleep(2 * time.Second)
	send(dto.ClientCommand{Action: dto.ActionLeave, RoomId: roomId})

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
	color.New(color.Bold).Println("Session finished")
}

// inboundFrame mirrors dto.ServerFrame with the payload kept raw so
// each frame type can be decoded after the switch.
type inboundFrame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func readLoop(conn *websocket.Conn, done chan struct{}) {
	defer close(done)

	msgColor := color.New(color.FgCyan)
	reactColor := color.New(color.FgYellow)
	errColor := color.New(color.FgRed)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			errColor.Printf("?? unparsable frame: %s\n", raw)
			continue
		}

		switch frame.Type {
		case dto.FrameMessage:
			var env dto.MessageEnvelope
			json.Unmarshal(frame.Data, &env)
			body := ""
			if env.Body != nil {
				body = *env.Body
			}
			msgColor.Printf("[%s] #%d %s: %s\n", env.Kind, env.Id, env.AuthorNickname, body)
		case dto.FrameReaction:
			var ev dto.ReactionEvent
			json.Unmarshal(frame.Data, &ev)
			verb := "added"
			if ev.Removed {
				verb = "removed"
			}
			reactColor.Printf("[reaction] user %d %s %s on #%d\n", ev.UserId, verb, ev.Emoji, ev.MessageId)
		case dto.FrameError:
			var ef dto.ErrorFrame
			json.Unmarshal(frame.Data, &ef)
			errColor.Printf("[error] %s: %s\n", ef.Code, ef.Message)
		default:
			fmt.Printf("[%s] %s\n", frame.Type, frame.Data)
		}
	}
}

func mintToken(userId uint64, nickname string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET is not set")
	}

	claims := jwt.MapClaims{
		"user_id":  userId,
		"nickname": nickname,
		"exp":      time.Now().Add(1 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrUint(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
