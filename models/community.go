// models/community.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Community model. OrganizerID is immutable after creation; the organizer can
// never leave, only delete (soft delete via IsActive=false). MemberCount is
// denormalized from len(Members) and recomputed in the same update that
// mutates Members.
type Community struct {
	ID          primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string               `json:"name" bson:"name"`
	Description string               `json:"description,omitempty" bson:"description,omitempty"`
	OrganizerID primitive.ObjectID   `json:"organizerId" bson:"organizerId"`
	Members     []primitive.ObjectID `json:"members,omitempty" bson:"members,omitempty"`
	MemberCount int                  `json:"memberCount" bson:"memberCount"`
	Rules       []string             `json:"rules,omitempty" bson:"rules,omitempty"`
	Tags        []string             `json:"tags,omitempty" bson:"tags,omitempty"`
	Avatar      string               `json:"avatar,omitempty" bson:"avatar,omitempty"`
	IsPrivate   bool                 `json:"isPrivate" bson:"isPrivate"`
	IsActive    bool                 `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// IsOrganizer reports whether the user owns the community.
func (co *Community) IsOrganizer(userID primitive.ObjectID) bool {
	return co.OrganizerID == userID
}

// IsMember reports whether the user is in the members set.
func (co *Community) IsMember(userID primitive.ObjectID) bool {
	return containsID(co.Members, userID)
}

// CommunityRequest models
type CommunityRequest struct {
	Name        string   `json:"name" validate:"required,min=3,max=100"`
	Description string   `json:"description,omitempty"`
	Rules       []string `json:"rules,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Avatar      string   `json:"avatar,omitempty"`
	IsPrivate   bool     `json:"isPrivate,omitempty"`
}

type UpdateCommunityRequest struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Rules       []string `json:"rules,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Avatar      string   `json:"avatar,omitempty"`
	IsPrivate   *bool    `json:"isPrivate,omitempty"`
}
