package websocket

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oausconnect/backend/middleware"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket upgrades the connection and registers the client with the
// hub. A NilObjectID userID means the caller connected without a token; it
// can still authenticate in-band with an "AUTH:<token>" text frame.
func HandleWebSocket(c echo.Context, hub *Hub, userID primitive.ObjectID) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{
		UserID:        userID,
		Conn:          conn,
		Authenticated: userID != primitive.NilObjectID,
	}

	hub.register <- client

	if client.Authenticated {
		conn.WriteJSON(Event{
			Type:    "connected",
			Message: "WebSocket connection established",
			UserID:  userID.Hex(),
		})
	} else {
		conn.WriteJSON(Event{
			Type:         "connected",
			Message:      "WebSocket connection established. Authenticate to receive events.",
			RequiresAuth: true,
		})
	}

	go func() {
		defer func() {
			hub.unregister <- client
		}()

		for {
			messageType, message, err := conn.ReadMessage()
			if err != nil {
				break
			}

			if messageType != websocket.TextMessage {
				continue
			}

			// In-band authentication: "AUTH:<jwt>"
			if token, ok := strings.CutPrefix(string(message), "AUTH:"); ok && !client.Authenticated {
				claims, err := middleware.ParseToken(token)
				if err != nil {
					conn.WriteJSON(Event{Type: "auth_response", Message: "Invalid token", RequiresAuth: true})
					continue
				}

				objID, err := primitive.ObjectIDFromHex(claims.UserID)
				if err != nil {
					conn.WriteJSON(Event{Type: "auth_response", Message: "Invalid token", RequiresAuth: true})
					continue
				}

				hub.AuthenticateClient(client, objID)
				conn.WriteJSON(Event{Type: "auth_response", Message: "Authenticated", UserID: objID.Hex()})
			}
		}
	}()

	return nil
}
