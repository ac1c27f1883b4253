// services/notification_service.go
package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oausconnect/backend/config"
	"github.com/oausconnect/backend/models"
	ws "github.com/oausconnect/backend/websocket"
)

// NotificationService persists in-app notifications and fans them out over
// the WebSocket hub, Firestore and FCM. Every delivery channel is
// best-effort: a failed push or mirror write is logged and never fails the
// caller's request.
type NotificationService struct {
	db    *mongo.Client
	push  *PushService
	store *TokenStore
	hub   *ws.Hub
}

func NewNotificationService(db *mongo.Client, push *PushService, store *TokenStore, hub *ws.Hub) *NotificationService {
	return &NotificationService{db: db, push: push, store: store, hub: hub}
}

// Notify saves a notification for the user, mirrors it to Firestore and
// sends an FCM push to the user's registered device token.
func (ns *NotificationService) Notify(userID primitive.ObjectID, title, message, notifType string, data map[string]string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	notification := models.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      notifType,
		Data:      data,
		IsRead:    false,
		CreatedAt: time.Now(),
	}

	if _, err := config.GetCollection(ns.db, "notifications").InsertOne(ctx, notification); err != nil {
		log.Printf("Failed to save notification for %s: %v", userID.Hex(), err)
		return
	}

	ns.store.MirrorNotification(ctx, notification)

	// Connected clients see the notification immediately over the socket
	if ns.hub != nil && ns.hub.IsOnline(userID) {
		_ = ns.hub.SendToUser(userID, ws.Event{
			Type: ws.EventNotification,
			Data: notification,
		})
	}

	var user models.User
	err := config.GetCollection(ns.db, "users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil || user.FCMToken == "" {
		return
	}

	if data == nil {
		data = map[string]string{}
	}
	data["type"] = notifType
	data["timestamp"] = time.Now().Format(time.RFC3339)

	if _, err := ns.push.SendToToken(ctx, user.FCMToken, title, message, data); err != nil {
		log.Printf("Failed to push notification to %s: %v", userID.Hex(), err)
	}
}
