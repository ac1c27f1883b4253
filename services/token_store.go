// services/token_store.go
package services

import (
	"context"
	"errors"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"

	"github.com/oausconnect/backend/models"
)

// TokenStore keeps FCM device tokens and a notification mirror in Firestore
// (collections fcmTokens and notifications), so the web client's realtime
// listeners see the same data the REST API serves.
type TokenStore struct {
	app *firebase.App
}

func NewTokenStore(app *firebase.App) *TokenStore {
	return &TokenStore{app: app}
}

var errStoreDisabled = errors.New("firestore disabled: firebase app not initialized")

func (ts *TokenStore) client(ctx context.Context) (*firestore.Client, error) {
	if ts.app == nil {
		return nil, errStoreDisabled
	}
	return ts.app.Firestore(ctx)
}

// SaveToken upserts the user's device token document.
func (ts *TokenStore) SaveToken(ctx context.Context, userID, token string) error {
	client, err := ts.client(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	_, err = client.Collection("fcmTokens").Doc(userID).Set(ctx, map[string]interface{}{
		"token":     token,
		"userId":    userID,
		"updatedAt": time.Now(),
	})
	return err
}

// DeleteToken removes the user's device token document.
func (ts *TokenStore) DeleteToken(ctx context.Context, userID string) error {
	client, err := ts.client(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	_, err = client.Collection("fcmTokens").Doc(userID).Delete(ctx)
	return err
}

// MirrorNotification writes a copy of an in-app notification to Firestore.
// Best-effort: callers treat failures as non-fatal.
func (ts *TokenStore) MirrorNotification(ctx context.Context, n models.Notification) {
	client, err := ts.client(ctx)
	if err != nil {
		return
	}
	defer client.Close()

	_, err = client.Collection("notifications").Doc(n.ID.Hex()).Set(ctx, map[string]interface{}{
		"userId":    n.UserID.Hex(),
		"title":     n.Title,
		"message":   n.Message,
		"type":      n.Type,
		"isRead":    n.IsRead,
		"createdAt": n.CreatedAt,
	})
	if err != nil {
		log.Printf("Failed to mirror notification %s to Firestore: %v", n.ID.Hex(), err)
	}
}
