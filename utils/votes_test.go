package utils

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestComputeVoteChange(t *testing.T) {
	tests := []struct {
		name         string
		hasUpvoted   bool
		hasDownvoted bool
		voteType     string
		want         VoteChange
	}{
		{
			name:     "fresh upvote",
			voteType: VoteUp,
			want:     VoteChange{AddUp: true, UpDelta: 1},
		},
		{
			name:       "upvote again toggles off",
			hasUpvoted: true,
			voteType:   VoteUp,
			want:       VoteChange{PullUp: true, UpDelta: -1},
		},
		{
			name:         "upvote while downvoted switches sides",
			hasDownvoted: true,
			voteType:     VoteUp,
			want:         VoteChange{AddUp: true, PullDown: true, UpDelta: 1, DownDelta: -1},
		},
		{
			name:     "fresh downvote",
			voteType: VoteDown,
			want:     VoteChange{AddDown: true, DownDelta: 1},
		},
		{
			name:         "downvote again toggles off",
			hasDownvoted: true,
			voteType:     VoteDown,
			want:         VoteChange{PullDown: true, DownDelta: -1},
		},
		{
			name:       "downvote while upvoted switches sides",
			hasUpvoted: true,
			voteType:   VoteDown,
			want:       VoteChange{AddDown: true, PullUp: true, DownDelta: 1, UpDelta: -1},
		},
		{
			name:       "remove clears upvote",
			hasUpvoted: true,
			voteType:   VoteRemove,
			want:       VoteChange{PullUp: true, UpDelta: -1},
		},
		{
			name:         "remove clears downvote",
			hasDownvoted: true,
			voteType:     VoteRemove,
			want:         VoteChange{PullDown: true, DownDelta: -1},
		},
		{
			name:     "remove with no vote is a no-op",
			voteType: VoteRemove,
			want:     VoteChange{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeVoteChange(tt.hasUpvoted, tt.hasDownvoted, tt.voteType)
			if err != nil {
				t.Fatalf("ComputeVoteChange returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ComputeVoteChange() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeVoteChangeInvalidType(t *testing.T) {
	if _, err := ComputeVoteChange(false, false, "like"); err == nil {
		t.Error("expected error for invalid vote type, got nil")
	}
	if _, err := ComputeVoteChange(false, false, ""); err == nil {
		t.Error("expected error for empty vote type, got nil")
	}
}

// Toggle sequences must always return to the starting counters.
func TestVoteToggleSequencesAreNeutral(t *testing.T) {
	sequences := [][]string{
		{VoteUp, VoteUp},
		{VoteDown, VoteDown},
		{VoteUp, VoteRemove},
		{VoteDown, VoteRemove},
		{VoteUp, VoteDown, VoteUp, VoteUp},
	}

	for _, seq := range sequences {
		up, down := 0, 0
		hasUp, hasDown := false, false
		for _, vt := range seq {
			vc, err := ComputeVoteChange(hasUp, hasDown, vt)
			if err != nil {
				t.Fatalf("sequence %v: %v", seq, err)
			}
			up += vc.UpDelta
			down += vc.DownDelta
			if vc.AddUp {
				hasUp = true
			}
			if vc.PullUp {
				hasUp = false
			}
			if vc.AddDown {
				hasDown = true
			}
			if vc.PullDown {
				hasDown = false
			}
			if hasUp && hasDown {
				t.Fatalf("sequence %v: user holds both vote sides", seq)
			}
			if up < 0 || down < 0 {
				t.Fatalf("sequence %v: counter went negative (up=%d down=%d)", seq, up, down)
			}
		}
		if up != 0 || down != 0 {
			t.Errorf("sequence %v: counters not neutral (up=%d down=%d)", seq, up, down)
		}
	}
}

func TestBuildVoteUpdate(t *testing.T) {
	userID := primitive.NewObjectID()

	vc, err := ComputeVoteChange(false, true, VoteUp)
	if err != nil {
		t.Fatal(err)
	}
	update := BuildVoteUpdate(vc, userID)

	addToSet, ok := update["$addToSet"].(bson.M)
	if !ok || addToSet["upvotedBy"] != userID {
		t.Errorf("expected $addToSet.upvotedBy = %s, got %v", userID.Hex(), update["$addToSet"])
	}
	pull, ok := update["$pull"].(bson.M)
	if !ok || pull["downvotedBy"] != userID {
		t.Errorf("expected $pull.downvotedBy = %s, got %v", userID.Hex(), update["$pull"])
	}
	inc, ok := update["$inc"].(bson.M)
	if !ok || inc["upvotes"] != 1 || inc["downvotes"] != -1 {
		t.Errorf("expected $inc {upvotes: 1, downvotes: -1}, got %v", update["$inc"])
	}
}

func TestBuildVoteUpdateOmitsEmptyOperators(t *testing.T) {
	userID := primitive.NewObjectID()

	vc, err := ComputeVoteChange(false, false, VoteUp)
	if err != nil {
		t.Fatal(err)
	}
	update := BuildVoteUpdate(vc, userID)

	if _, ok := update["$pull"]; ok {
		t.Error("fresh upvote must not emit a $pull operator")
	}
	if _, ok := update["$addToSet"]; !ok {
		t.Error("fresh upvote must emit $addToSet")
	}
}
