// models/content.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Media describes an uploaded attachment embedded in content.
type Media struct {
	Type         string `json:"type" bson:"type"` // "image" or "video"
	URL          string `json:"url" bson:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty" bson:"thumbnailUrl,omitempty"`
}

// Content is a feed post. The vote invariant: a user ID appears in at most
// one of UpvotedBy/DownvotedBy, and Upvotes/Downvotes always equal the
// cardinality of their sets.
type Content struct {
	ID          primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID    primitive.ObjectID   `json:"authorId" bson:"authorId"`
	Title       string               `json:"title" bson:"title"`
	Body        string               `json:"content" bson:"content"`
	Tags        []string             `json:"tags,omitempty" bson:"tags,omitempty"`
	Media       []Media              `json:"media,omitempty" bson:"media,omitempty"`
	CommunityID *primitive.ObjectID  `json:"communityId,omitempty" bson:"communityId,omitempty"`
	Upvotes     int                  `json:"upvotes" bson:"upvotes"`
	Downvotes   int                  `json:"downvotes" bson:"downvotes"`
	UpvotedBy   []primitive.ObjectID `json:"upvotedBy,omitempty" bson:"upvotedBy,omitempty"`
	DownvotedBy []primitive.ObjectID `json:"downvotedBy,omitempty" bson:"downvotedBy,omitempty"`
	Comments    []primitive.ObjectID `json:"comments,omitempty" bson:"comments,omitempty"`
	Views       int64                `json:"views" bson:"views"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// HasUpvoted reports whether the user is in the upvote set.
func (c *Content) HasUpvoted(userID primitive.ObjectID) bool {
	return containsID(c.UpvotedBy, userID)
}

// HasDownvoted reports whether the user is in the downvote set.
func (c *Content) HasDownvoted(userID primitive.ObjectID) bool {
	return containsID(c.DownvotedBy, userID)
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// ContentRequest models
type ContentRequest struct {
	Title       string  `json:"title" validate:"required,max=300"`
	Content     string  `json:"content" validate:"required"`
	Tags        []string `json:"tags,omitempty"`
	Media       []Media  `json:"media,omitempty"`
	CommunityID string   `json:"communityId,omitempty"`
}

type UpdateContentRequest struct {
	Title   string   `json:"title,omitempty"`
	Content string   `json:"content,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// VoteRequest is shared by content and comment vote endpoints.
type VoteRequest struct {
	VoteType string `json:"voteType" validate:"required"`
}

// VoteResult is returned after a vote settles.
type VoteResult struct {
	Upvotes   int  `json:"upvotes"`
	Downvotes int  `json:"downvotes"`
	Upvoted   bool `json:"upvoted"`
	Downvoted bool `json:"downvoted"`
}
