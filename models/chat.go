// models/chat.go
package models

import (
	"errors"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chat types
const (
	ChatTypeDirect = "direct"
	ChatTypeGroup  = "group"
)

// Membership rule errors, mapped to HTTP statuses by the chat controller.
var (
	ErrNotGroupChat     = errors.New("membership changes are only supported on group chats")
	ErrNotParticipant   = errors.New("user is not a participant of this chat")
	ErrNotChatAdmin     = errors.New("only group admins can perform this action")
	ErrCreatorImmutable = errors.New("the chat creator cannot be removed")
)

// Chat model. Direct chats have exactly 2 participants and at most one chat
// exists per unordered pair (PairKey carries the unique index). For group
// chats AdminUsers is a subset of Participants and CreatedBy is immutable.
type Chat struct {
	ID            primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	ChatType      string               `json:"chatType" bson:"chatType"`
	ChatName      string               `json:"chatName,omitempty" bson:"chatName,omitempty"`
	Participants  []primitive.ObjectID `json:"participants" bson:"participants"`
	AdminUsers    []primitive.ObjectID `json:"adminUsers,omitempty" bson:"adminUsers,omitempty"`
	CreatedBy     primitive.ObjectID   `json:"createdBy" bson:"createdBy"`
	PairKey       string               `json:"-" bson:"pairKey,omitempty"`
	LastMessage   string               `json:"lastMessage,omitempty" bson:"lastMessage,omitempty"`
	LastMessageAt time.Time            `json:"lastMessageAt,omitempty" bson:"lastMessageAt,omitempty"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// DirectChatPairKey builds the canonical key for an unordered participant
// pair, used by the unique index that backs direct-chat idempotency.
func DirectChatPairKey(a, b primitive.ObjectID) string {
	keys := []string{a.Hex(), b.Hex()}
	sort.Strings(keys)
	return strings.Join(keys, ":")
}

// IsParticipant reports whether the user belongs to the chat.
func (ch *Chat) IsParticipant(userID primitive.ObjectID) bool {
	return containsID(ch.Participants, userID)
}

// IsAdmin reports whether the user can manage group membership. The creator
// always counts as an admin.
func (ch *Chat) IsAdmin(userID primitive.ObjectID) bool {
	return ch.CreatedBy == userID || containsID(ch.AdminUsers, userID)
}

// CanAddMembers checks the caller's right to add participants.
func (ch *Chat) CanAddMembers(callerID primitive.ObjectID) error {
	if ch.ChatType != ChatTypeGroup {
		return ErrNotGroupChat
	}
	if !ch.IsAdmin(callerID) {
		return ErrNotChatAdmin
	}
	return nil
}

// CanRemoveMember checks whether callerID may remove targetID. The creator is
// permanently unremovable, admins may remove anyone else, and any participant
// may remove themself.
func (ch *Chat) CanRemoveMember(callerID, targetID primitive.ObjectID) error {
	if ch.ChatType != ChatTypeGroup {
		return ErrNotGroupChat
	}
	if !ch.IsParticipant(targetID) {
		return ErrNotParticipant
	}
	if targetID == ch.CreatedBy {
		return ErrCreatorImmutable
	}
	if callerID == targetID {
		return nil
	}
	if !ch.IsAdmin(callerID) {
		return ErrNotChatAdmin
	}
	return nil
}

// FilterNewMembers drops users already present in the chat.
func (ch *Chat) FilterNewMembers(userIDs []primitive.ObjectID) []primitive.ObjectID {
	var fresh []primitive.ObjectID
	for _, id := range userIDs {
		if !ch.IsParticipant(id) && !containsID(fresh, id) {
			fresh = append(fresh, id)
		}
	}
	return fresh
}

// ReadReceipt records when a user read a message.
type ReadReceipt struct {
	UserID primitive.ObjectID `json:"userId" bson:"userId"`
	ReadAt time.Time          `json:"readAt" bson:"readAt"`
}

// Message model. Deleting a message wipes its content and sets IsDeleted
// rather than removing the document.
type Message struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ChatID      primitive.ObjectID `json:"chatId" bson:"chatId"`
	SenderID    primitive.ObjectID `json:"senderId" bson:"senderId"`
	Content     string             `json:"content" bson:"content"`
	MessageType string             `json:"messageType" bson:"messageType"` // text, image, video, file
	ReadBy      []ReadReceipt      `json:"readBy,omitempty" bson:"readBy,omitempty"`
	IsDeleted   bool               `json:"isDeleted" bson:"isDeleted"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// Chat request models
type CreateDirectChatRequest struct {
	ParticipantID string `json:"participantId" validate:"required"`
}

type CreateGroupChatRequest struct {
	ChatName     string   `json:"chatName" validate:"required,min=1,max=100"`
	Participants []string `json:"participants" validate:"required,min=1"`
}

type AddMembersRequest struct {
	UserIDs []string `json:"userIds" validate:"required,min=1"`
}

type SendMessageRequest struct {
	Content     string `json:"content" validate:"required,max=10000"`
	MessageType string `json:"messageType,omitempty"`
}
