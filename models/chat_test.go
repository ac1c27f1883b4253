package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func groupChat(creator primitive.ObjectID, admins, participants []primitive.ObjectID) *Chat {
	return &Chat{
		ChatType:     ChatTypeGroup,
		CreatedBy:    creator,
		AdminUsers:   admins,
		Participants: participants,
	}
}

func TestDirectChatPairKey(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	if DirectChatPairKey(a, b) != DirectChatPairKey(b, a) {
		t.Error("pair key must be identical regardless of argument order")
	}

	c := primitive.NewObjectID()
	if DirectChatPairKey(a, b) == DirectChatPairKey(a, c) {
		t.Error("different pairs must produce different keys")
	}
}

func TestCanRemoveMember(t *testing.T) {
	creator := primitive.NewObjectID()
	admin := primitive.NewObjectID()
	member := primitive.NewObjectID()
	outsider := primitive.NewObjectID()

	chat := groupChat(creator,
		[]primitive.ObjectID{admin},
		[]primitive.ObjectID{creator, admin, member},
	)

	tests := []struct {
		name    string
		caller  primitive.ObjectID
		target  primitive.ObjectID
		wantErr error
	}{
		{"admin removes member", admin, member, nil},
		{"creator removes admin", creator, admin, nil},
		{"member removes self", member, member, nil},
		{"nobody removes creator", admin, creator, ErrCreatorImmutable},
		{"creator cannot remove self", creator, creator, ErrCreatorImmutable},
		{"member cannot remove others", member, admin, ErrNotChatAdmin},
		{"target must be a participant", admin, outsider, ErrNotParticipant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := chat.CanRemoveMember(tt.caller, tt.target); err != tt.wantErr {
				t.Errorf("CanRemoveMember() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCanRemoveMemberDirectChat(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	chat := &Chat{
		ChatType:     ChatTypeDirect,
		CreatedBy:    a,
		Participants: []primitive.ObjectID{a, b},
	}

	if err := chat.CanRemoveMember(a, b); err != ErrNotGroupChat {
		t.Errorf("direct chat removal = %v, want ErrNotGroupChat", err)
	}
}

func TestCanAddMembers(t *testing.T) {
	creator := primitive.NewObjectID()
	member := primitive.NewObjectID()

	chat := groupChat(creator, nil, []primitive.ObjectID{creator, member})

	if err := chat.CanAddMembers(creator); err != nil {
		t.Errorf("creator must be allowed to add members, got %v", err)
	}
	if err := chat.CanAddMembers(member); err != ErrNotChatAdmin {
		t.Errorf("plain member adding = %v, want ErrNotChatAdmin", err)
	}

	chat.ChatType = ChatTypeDirect
	if err := chat.CanAddMembers(creator); err != ErrNotGroupChat {
		t.Errorf("adding to direct chat = %v, want ErrNotGroupChat", err)
	}
}

func TestFilterNewMembers(t *testing.T) {
	existing := primitive.NewObjectID()
	fresh := primitive.NewObjectID()
	creator := primitive.NewObjectID()

	chat := groupChat(creator, nil, []primitive.ObjectID{creator, existing})

	got := chat.FilterNewMembers([]primitive.ObjectID{existing, fresh, fresh})
	if len(got) != 1 || got[0] != fresh {
		t.Errorf("FilterNewMembers() = %v, want exactly [%s]", got, fresh.Hex())
	}

	if got := chat.FilterNewMembers([]primitive.ObjectID{existing, creator}); len(got) != 0 {
		t.Errorf("FilterNewMembers with only existing members = %v, want empty", got)
	}
}

func TestIsAdminIncludesCreator(t *testing.T) {
	creator := primitive.NewObjectID()
	chat := groupChat(creator, nil, []primitive.ObjectID{creator})

	if !chat.IsAdmin(creator) {
		t.Error("creator must always count as admin")
	}
	if chat.IsAdmin(primitive.NewObjectID()) {
		t.Error("random user must not be admin")
	}
}
