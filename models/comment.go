// models/comment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment belongs to a content item; ParentCommentID links replies, which can
// themselves be replied to, so comments form a tree.
type Comment struct {
	ID              primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	ContentID       primitive.ObjectID   `json:"contentId" bson:"contentId"`
	AuthorID        primitive.ObjectID   `json:"authorId" bson:"authorId"`
	ParentCommentID *primitive.ObjectID  `json:"parentCommentId,omitempty" bson:"parentCommentId,omitempty"`
	Body            string               `json:"content" bson:"content"`
	Upvotes         int                  `json:"upvotes" bson:"upvotes"`
	Downvotes       int                  `json:"downvotes" bson:"downvotes"`
	UpvotedBy       []primitive.ObjectID `json:"upvotedBy,omitempty" bson:"upvotedBy,omitempty"`
	DownvotedBy     []primitive.ObjectID `json:"downvotedBy,omitempty" bson:"downvotedBy,omitempty"`
	CreatedAt       time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt" bson:"updatedAt"`
}

func (cm *Comment) HasUpvoted(userID primitive.ObjectID) bool {
	return containsID(cm.UpvotedBy, userID)
}

func (cm *Comment) HasDownvoted(userID primitive.ObjectID) bool {
	return containsID(cm.DownvotedBy, userID)
}

// CommentRequest models
type CommentRequest struct {
	Content         string `json:"content" validate:"required,max=5000"`
	ParentCommentID string `json:"parentCommentId,omitempty"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}
