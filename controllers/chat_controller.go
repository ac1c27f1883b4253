// controllers/chat_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oausconnect/backend/config"
	"github.com/oausconnect/backend/models"
	"github.com/oausconnect/backend/services"
	"github.com/oausconnect/backend/utils"
	ws "github.com/oausconnect/backend/websocket"
)

// ChatController handles direct and group chats, messages and read receipts
type ChatController struct {
	DB       *mongo.Client
	hub      *ws.Hub
	notifier *services.NotificationService
}

// NewChatController creates a new chat controller
func NewChatController(db *mongo.Client, hub *ws.Hub, notifier *services.NotificationService) *ChatController {
	return &ChatController{DB: db, hub: hub, notifier: notifier}
}

// chatRuleStatus maps membership rule errors to HTTP status codes
func chatRuleStatus(err error) int {
	switch err {
	case models.ErrNotGroupChat, models.ErrCreatorImmutable:
		return http.StatusBadRequest
	case models.ErrNotParticipant:
		return http.StatusNotFound
	case models.ErrNotChatAdmin:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// loadChat fetches a chat and verifies the caller participates in it
func (cn *ChatController) loadChat(ctx context.Context, chatID, userID primitive.ObjectID) (*models.Chat, int, string) {
	var chat models.Chat
	err := config.GetCollection(cn.DB, "chats").FindOne(ctx, bson.M{"_id": chatID}).Decode(&chat)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, http.StatusNotFound, "Chat not found"
		}
		return nil, http.StatusInternalServerError, "Failed to retrieve chat"
	}
	if !chat.IsParticipant(userID) {
		return nil, http.StatusForbidden, "You are not a participant of this chat"
	}
	return &chat, 0, ""
}

// CreateDirectChat opens (or returns the existing) 1:1 chat with another user
func (cn *ChatController) CreateDirectChat(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var req models.CreateDirectChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Participant ID is required",
		})
	}

	otherID, err := primitive.ObjectIDFromHex(req.ParticipantID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid participant ID",
		})
	}
	if otherID == userID {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Cannot create a chat with yourself",
		})
	}

	userCount, err := config.GetCollection(cn.DB, "users").
		CountDocuments(ctx, bson.M{"_id": otherID, "isActive": true})
	if err != nil || userCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}

	collection := config.GetCollection(cn.DB, "chats")
	pairKey := models.DirectChatPairKey(userID, otherID)

	var existing models.Chat
	err = collection.FindOne(ctx, bson.M{"pairKey": pairKey}).Decode(&existing)
	if err == nil {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Chat already exists",
			Data:    existing,
		})
	}

	now := time.Now()
	chat := models.Chat{
		ChatType:     models.ChatTypeDirect,
		Participants: []primitive.ObjectID{userID, otherID},
		CreatedBy:    userID,
		PairKey:      pairKey,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result, err := collection.InsertOne(ctx, chat)
	if err != nil {
		// Lost the race to a concurrent create: the unique pairKey index
		// rejected our insert, so return the winner
		if mongo.IsDuplicateKeyError(err) {
			if err := collection.FindOne(ctx, bson.M{"pairKey": pairKey}).Decode(&existing); err == nil {
				return c.JSON(http.StatusOK, models.Response{
					Status:  http.StatusOK,
					Message: "Chat already exists",
					Data:    existing,
				})
			}
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create chat",
		})
	}
	chat.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Chat created successfully",
		Data:    chat,
	})
}

// CreateGroupChat creates a group with the caller as creator and admin
func (cn *ChatController) CreateGroupChat(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var req models.CreateGroupChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Chat name and at least one participant are required",
		})
	}

	participants := []primitive.ObjectID{userID}
	for _, hex := range req.Participants {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid participant ID: " + hex,
			})
		}
		if id != userID && !containsObjectID(participants, id) {
			participants = append(participants, id)
		}
	}
	if len(participants) < 2 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "A group chat needs at least one other participant",
		})
	}

	now := time.Now()
	chat := models.Chat{
		ChatType:     models.ChatTypeGroup,
		ChatName:     utils.SanitizeInput(req.ChatName),
		Participants: participants,
		AdminUsers:   []primitive.ObjectID{userID},
		CreatedBy:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result, err := config.GetCollection(cn.DB, "chats").InsertOne(ctx, chat)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create group chat",
		})
	}
	chat.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Group chat created successfully",
		Data:    chat,
	})
}

// GetChats lists the caller's chats, most recently active first
func (cn *ChatController) GetChats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	page, limit := utils.ParsePagination(c)
	filter := bson.M{"participants": userID}

	collection := config.GetCollection(cn.DB, "chats")

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to count chats",
		})
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "lastMessageAt", Value: -1}, {Key: "updatedAt", Value: -1}}).
		SetSkip(utils.Skip(page, limit)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve chats",
		})
	}
	defer cursor.Close(ctx)

	var chats []models.Chat
	if err := cursor.All(ctx, &chats); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode chats",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Chats retrieved successfully",
		Data: models.PaginatedData{
			Items:      chats,
			Pagination: utils.NewPagination(page, limit, total),
		},
	})
}

// GetChat returns one chat the caller participates in
func (cn *ChatController) GetChat(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	chatID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid chat ID",
		})
	}

	chat, status, msg := cn.loadChat(ctx, chatID, userID)
	if chat == nil {
		return c.JSON(status, models.Response{Status: status, Message: msg})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Chat retrieved successfully",
		Data:    chat,
	})
}

// AddMembers adds users to a group chat; admins only
func (cn *ChatController) AddMembers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	chatID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid chat ID",
		})
	}

	var req models.AddMembersRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "At least one user ID is required",
		})
	}

	chat, status, msg := cn.loadChat(ctx, chatID, userID)
	if chat == nil {
		return c.JSON(status, models.Response{Status: status, Message: msg})
	}

	if err := chat.CanAddMembers(userID); err != nil {
		status := chatRuleStatus(err)
		return c.JSON(status, models.Response{Status: status, Message: err.Error()})
	}

	var candidates []primitive.ObjectID
	for _, hex := range req.UserIDs {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid user ID: " + hex,
			})
		}
		candidates = append(candidates, id)
	}

	fresh := chat.FilterNewMembers(candidates)
	if len(fresh) == 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "All listed users are already in the chat",
		})
	}

	_, err = config.GetCollection(cn.DB, "chats").UpdateOne(ctx,
		bson.M{"_id": chatID},
		bson.M{
			"$addToSet": bson.M{"participants": bson.M{"$each": fresh}},
			"$set":      bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to add members",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Members added successfully",
		Data: map[string]interface{}{
			"added": fresh,
		},
	})
}

// RemoveMember removes a participant from a group chat. The creator is
// unremovable; admins may remove others; anyone may remove themself.
func (cn *ChatController) RemoveMember(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	chatID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid chat ID",
		})
	}

	targetID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid user ID",
		})
	}

	chat, status, msg := cn.loadChat(ctx, chatID, userID)
	if chat == nil {
		return c.JSON(status, models.Response{Status: status, Message: msg})
	}

	if err := chat.CanRemoveMember(userID, targetID); err != nil {
		status := chatRuleStatus(err)
		return c.JSON(status, models.Response{Status: status, Message: err.Error()})
	}

	_, err = config.GetCollection(cn.DB, "chats").UpdateOne(ctx,
		bson.M{"_id": chatID},
		bson.M{
			"$pull": bson.M{"participants": targetID, "adminUsers": targetID},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to remove member",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Member removed successfully",
	})
}

// PromoteAdmin grants group admin rights to a participant; admins only
func (cn *ChatController) PromoteAdmin(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	chatID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid chat ID",
		})
	}

	targetID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid user ID",
		})
	}

	chat, status, msg := cn.loadChat(ctx, chatID, userID)
	if chat == nil {
		return c.JSON(status, models.Response{Status: status, Message: msg})
	}

	if chat.ChatType != models.ChatTypeGroup {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: models.ErrNotGroupChat.Error(),
		})
	}
	if !chat.IsAdmin(userID) {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: models.ErrNotChatAdmin.Error(),
		})
	}
	if !chat.IsParticipant(targetID) {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: models.ErrNotParticipant.Error(),
		})
	}

	_, err = config.GetCollection(cn.DB, "chats").UpdateOne(ctx,
		bson.M{"_id": chatID},
		bson.M{
			"$addToSet": bson.M{"adminUsers": targetID},
			"$set":      bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to promote admin",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Admin promoted successfully",
	})
}

// SendMessage stores a message, bumps the chat preview, fans it out over
// WebSocket and pushes to offline participants
func (cn *ChatController) SendMessage(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	chatID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid chat ID",
		})
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Message content is required",
		})
	}
	messageType := req.MessageType
	if messageType == "" {
		messageType = "text"
	}

	chat, status, msg := cn.loadChat(ctx, chatID, userID)
	if chat == nil {
		return c.JSON(status, models.Response{Status: status, Message: msg})
	}

	now := time.Now()
	message := models.Message{
		ChatID:      chatID,
		SenderID:    userID,
		Content:     req.Content,
		MessageType: messageType,
		ReadBy:      []models.ReadReceipt{{UserID: userID, ReadAt: now}},
		CreatedAt:   now,
	}

	result, err := config.GetCollection(cn.DB, "messages").InsertOne(ctx, message)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to send message",
		})
	}
	message.ID = result.InsertedID.(primitive.ObjectID)

	preview := messagePreview(req.Content)
	_, err = config.GetCollection(cn.DB, "chats").UpdateOne(ctx,
		bson.M{"_id": chatID},
		bson.M{"$set": bson.M{
			"lastMessage":   preview,
			"lastMessageAt": now,
			"updatedAt":     now,
		}},
	)
	if err != nil {
		c.Logger().Errorf("Failed to update chat preview for %s: %v", chatID.Hex(), err)
	}

	// Online participants get the message over the socket; offline ones get
	// an FCM push instead
	for _, pid := range chat.Participants {
		if pid == userID {
			continue
		}
		if cn.hub.IsOnline(pid) {
			_ = cn.hub.SendToUser(pid, ws.Event{
				Type:   ws.EventNewMessage,
				Data:   message,
				UserID: userID.Hex(),
			})
		} else {
			go cn.notifier.Notify(pid, "New message", preview, "new_message", map[string]string{
				"chatId":    chatID.Hex(),
				"messageId": message.ID.Hex(),
			})
		}
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Message sent successfully",
		Data:    message,
	})
}

// GetMessages returns a page of chat messages, newest first
func (cn *ChatController) GetMessages(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	chatID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid chat ID",
		})
	}

	chat, status, msg := cn.loadChat(ctx, chatID, userID)
	if chat == nil {
		return c.JSON(status, models.Response{Status: status, Message: msg})
	}

	page, limit := utils.ParsePagination(c)
	filter := bson.M{"chatId": chatID}

	collection := config.GetCollection(cn.DB, "messages")

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to count messages",
		})
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(utils.Skip(page, limit)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve messages",
		})
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode messages",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Messages retrieved successfully",
		Data: models.PaginatedData{
			Items:      messages,
			Pagination: utils.NewPagination(page, limit, total),
		},
	})
}

// MarkRead adds a read receipt for the caller on every unread message in the
// chat and notifies senders over the socket
func (cn *ChatController) MarkRead(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	chatID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid chat ID",
		})
	}

	chat, status, msg := cn.loadChat(ctx, chatID, userID)
	if chat == nil {
		return c.JSON(status, models.Response{Status: status, Message: msg})
	}

	now := time.Now()
	result, err := config.GetCollection(cn.DB, "messages").UpdateMany(ctx,
		bson.M{
			"chatId":        chatID,
			"senderId":      bson.M{"$ne": userID},
			"readBy.userId": bson.M{"$ne": userID},
		},
		bson.M{"$push": bson.M{"readBy": models.ReadReceipt{UserID: userID, ReadAt: now}}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to mark messages as read",
		})
	}

	if result.ModifiedCount > 0 {
		others := make([]primitive.ObjectID, 0, len(chat.Participants))
		for _, pid := range chat.Participants {
			if pid != userID {
				others = append(others, pid)
			}
		}
		cn.hub.SendToUsers(others, ws.Event{
			Type:   ws.EventMessageRead,
			UserID: userID.Hex(),
			Data: map[string]interface{}{
				"chatId": chatID.Hex(),
				"readAt": now,
			},
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Messages marked as read",
		Data: map[string]interface{}{
			"markedCount": result.ModifiedCount,
		},
	})
}

// DeleteMessage soft-deletes a message the caller sent
func (cn *ChatController) DeleteMessage(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	messageID, err := primitive.ObjectIDFromHex(c.Param("messageId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid message ID",
		})
	}

	collection := config.GetCollection(cn.DB, "messages")

	var message models.Message
	err = collection.FindOne(ctx, bson.M{"_id": messageID}).Decode(&message)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Message not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve message",
		})
	}
	if message.SenderID != userID {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "You can only delete your own messages",
		})
	}

	_, err = collection.UpdateOne(ctx,
		bson.M{"_id": messageID},
		bson.M{"$set": bson.M{"isDeleted": true, "content": ""}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete message",
		})
	}

	chat, _, _ := cn.loadChat(ctx, message.ChatID, userID)
	if chat != nil {
		others := make([]primitive.ObjectID, 0, len(chat.Participants))
		for _, pid := range chat.Participants {
			if pid != userID {
				others = append(others, pid)
			}
		}
		cn.hub.SendToUsers(others, ws.Event{
			Type:   ws.EventMessageDeleted,
			UserID: userID.Hex(),
			Data: map[string]string{
				"chatId":    message.ChatID.Hex(),
				"messageId": messageID.Hex(),
			},
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Message deleted successfully",
	})
}

const previewMaxRunes = 100

// messagePreview shortens a message for the chat list, cutting on a rune
// boundary so multibyte text never ends up split.
func messagePreview(s string) string {
	runes := []rune(s)
	if len(runes) <= previewMaxRunes {
		return s
	}
	return string(runes[:previewMaxRunes])
}

// containsObjectID reports whether id appears in ids.
func containsObjectID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
