package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/olwandejj/Quizzify/internal/app"
	"github.com/olwandejj/Quizzify/internal/auth"
)

type WSHandler struct {
	service  *app.QuizService
	tokens   *auth.Manager
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, tokens *auth.Manager) *WSHandler {
	return &WSHandler{
		service: service,
		tokens:  tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type namePayload struct {
	Name string `json:"name"`
}

type categoryPayload struct {
	Category string `json:"category"`
}

type answerPayload struct {
	Option int `json:"option"`
}

type authPayload struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the quiz
// use cases. A valid token query parameter resumes an existing client state;
// otherwise the connection gets a fresh client ID starting at the login
// screen. Screen updates flow out as {type:"screen"} messages.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	clientID := uuid.NewString()
	if raw := r.URL.Query().Get("token"); raw != "" {
		claims, err := h.tokens.Verify(raw)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		clientID = claims.ClientID()
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	h.service.Connect(clientID)
	updates, cancel, err := h.service.Subscribe(r.Context(), clientID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer h.service.Leave(clientID)
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "screen", Payload: update}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	ctx := r.Context()
readLoop:
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "login", "register":
			var payload namePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid login payload"}}
				continue
			}
			submit := h.service.Login
			if inbound.Type == "register" {
				submit = h.service.Register
			}
			if err := submit(ctx, clientID, payload.Name); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			token, err := h.tokens.Issue(clientID, payload.Name)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "could not issue token"}}
				continue
			}
			send <- outboundMessage[any]{Type: "auth", Payload: authPayload{Token: token, Name: payload.Name}}
		case "goToRegister":
			if err := h.service.GoToRegister(ctx, clientID); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			}
		case "backToLogin":
			if err := h.service.BackToLogin(ctx, clientID); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			}
		case "selectCategory":
			var payload categoryPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid category payload"}}
				continue
			}
			if err := h.service.SelectCategory(ctx, clientID, payload.Category); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			}
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
				continue
			}
			result, err := h.service.SubmitAnswer(ctx, clientID, payload.Option)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "answerResult", Payload: result}
		case "quitQuiz":
			if err := h.service.QuitQuiz(ctx, clientID); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			}
		case "openProfile":
			if err := h.service.OpenProfile(ctx, clientID); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			}
		case "logout":
			if err := h.service.Logout(ctx, clientID); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			}
		case "back":
			exit, err := h.service.Back(ctx, clientID)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			if exit {
				send <- outboundMessage[any]{Type: "exit", Payload: nil}
				break readLoop
			}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}
