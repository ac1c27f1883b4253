package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCommunityMembership(t *testing.T) {
	organizer := primitive.NewObjectID()
	member := primitive.NewObjectID()
	outsider := primitive.NewObjectID()

	community := &Community{
		OrganizerID: organizer,
		Members:     []primitive.ObjectID{organizer, member},
	}

	if !community.IsOrganizer(organizer) {
		t.Error("organizer not recognized")
	}
	if community.IsOrganizer(member) {
		t.Error("plain member must not be organizer")
	}

	if !community.IsMember(organizer) || !community.IsMember(member) {
		t.Error("members not recognized")
	}
	if community.IsMember(outsider) {
		t.Error("outsider must not be a member")
	}
}

func TestContentVoteMembership(t *testing.T) {
	voter := primitive.NewObjectID()

	content := &Content{
		UpvotedBy: []primitive.ObjectID{voter},
	}

	if !content.HasUpvoted(voter) {
		t.Error("upvoter not recognized")
	}
	if content.HasDownvoted(voter) {
		t.Error("upvoter must not appear as downvoter")
	}
	if content.HasUpvoted(primitive.NewObjectID()) {
		t.Error("random user must not appear as upvoter")
	}
}
