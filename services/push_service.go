// services/push_service.go
package services

import (
	"context"
	"errors"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
)

// PushService wraps Firebase Cloud Messaging. A nil firebase app turns every
// send into a logged no-op so the API keeps working without credentials.
type PushService struct {
	app *firebase.App
}

func NewPushService(app *firebase.App) *PushService {
	return &PushService{app: app}
}

var errPushDisabled = errors.New("push notifications disabled: firebase app not initialized")

func (ps *PushService) client(ctx context.Context) (*messaging.Client, error) {
	if ps.app == nil {
		return nil, errPushDisabled
	}
	return ps.app.Messaging(ctx)
}

// SendToToken delivers a push notification to a single device token.
func (ps *PushService) SendToToken(ctx context.Context, token, title, body string, data map[string]string) (string, error) {
	client, err := ps.client(ctx)
	if err != nil {
		return "", err
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:     "default",
				ChannelID: "oausconnect_channel",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: title,
						Body:  body,
					},
					Sound: "default",
				},
			},
		},
	}

	return client.Send(ctx, message)
}

// SendToTopic broadcasts a push notification to an FCM topic.
func (ps *PushService) SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) (string, error) {
	client, err := ps.client(ctx)
	if err != nil {
		return "", err
	}

	message := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	return client.Send(ctx, message)
}

// SubscribeToTopic subscribes device tokens to an FCM topic.
func (ps *PushService) SubscribeToTopic(ctx context.Context, tokens []string, topic string) error {
	client, err := ps.client(ctx)
	if err != nil {
		return err
	}

	resp, err := client.SubscribeToTopic(ctx, tokens, topic)
	if err != nil {
		return err
	}
	if resp.FailureCount > 0 {
		log.Printf("Topic subscribe: %d of %d tokens failed for topic %s", resp.FailureCount, len(tokens), topic)
	}
	return nil
}

// UnsubscribeFromTopic removes device tokens from an FCM topic.
func (ps *PushService) UnsubscribeFromTopic(ctx context.Context, tokens []string, topic string) error {
	client, err := ps.client(ctx)
	if err != nil {
		return err
	}

	resp, err := client.UnsubscribeFromTopic(ctx, tokens, topic)
	if err != nil {
		return err
	}
	if resp.FailureCount > 0 {
		log.Printf("Topic unsubscribe: %d of %d tokens failed for topic %s", resp.FailureCount, len(tokens), topic)
	}
	return nil
}
