package websocket

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAuthenticateClientPromotesConnection(t *testing.T) {
	hub := NewHub()
	userID := primitive.NewObjectID()

	client := &Client{}
	hub.unauthenticatedClients[client] = true

	if hub.IsOnline(userID) {
		t.Fatal("user reported online before authentication")
	}

	hub.AuthenticateClient(client, userID)

	if !client.Authenticated {
		t.Error("client not marked authenticated")
	}
	if client.UserID != userID {
		t.Errorf("client.UserID = %s, want %s", client.UserID.Hex(), userID.Hex())
	}
	if _, ok := hub.unauthenticatedClients[client]; ok {
		t.Error("client still in the unauthenticated set")
	}
	if !hub.IsOnline(userID) {
		t.Error("user not reported online after authentication")
	}
}

func TestSendToUserOffline(t *testing.T) {
	hub := NewHub()
	if err := hub.SendToUser(primitive.NewObjectID(), Event{Type: EventNotification}); err == nil {
		t.Error("expected error sending to a user with no connection")
	}
}
