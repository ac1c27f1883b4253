// utils/votes.go
package utils

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vote types accepted by the content and comment vote endpoints.
const (
	VoteUp     = "upvote"
	VoteDown   = "downvote"
	VoteRemove = "remove"
)

// VoteChange describes the set mutations and counter deltas one vote request
// produces. AddUp/PullUp act on upvotedBy, AddDown/PullDown on downvotedBy;
// the deltas keep the counters equal to their sets' cardinality.
type VoteChange struct {
	AddUp     bool
	PullUp    bool
	AddDown   bool
	PullDown  bool
	UpDelta   int
	DownDelta int
}

// IsZero reports whether the change is a no-op.
func (vc VoteChange) IsZero() bool {
	return !vc.AddUp && !vc.PullUp && !vc.AddDown && !vc.PullDown
}

// ComputeVoteChange implements toggle semantics: submitting the same vote
// type again removes it, switching sides moves the vote and adjusts both
// counters, "remove" clears whichever side holds the user. hasUpvoted and
// hasDownvoted are the user's current membership in the two sets; at most
// one may be true.
func ComputeVoteChange(hasUpvoted, hasDownvoted bool, voteType string) (VoteChange, error) {
	var vc VoteChange
	switch voteType {
	case VoteUp:
		if hasUpvoted {
			vc.PullUp = true
			vc.UpDelta = -1
			break
		}
		vc.AddUp = true
		vc.UpDelta = 1
		if hasDownvoted {
			vc.PullDown = true
			vc.DownDelta = -1
		}
	case VoteDown:
		if hasDownvoted {
			vc.PullDown = true
			vc.DownDelta = -1
			break
		}
		vc.AddDown = true
		vc.DownDelta = 1
		if hasUpvoted {
			vc.PullUp = true
			vc.UpDelta = -1
		}
	case VoteRemove:
		if hasUpvoted {
			vc.PullUp = true
			vc.UpDelta = -1
		}
		if hasDownvoted {
			vc.PullDown = true
			vc.DownDelta = -1
		}
	default:
		return VoteChange{}, fmt.Errorf("invalid vote type %q", voteType)
	}
	return vc, nil
}

// BuildVoteUpdate translates a VoteChange into a single MongoDB update
// document ($addToSet/$pull on the sets plus $inc on the counters), so the
// whole vote settles in one UpdateOne.
func BuildVoteUpdate(vc VoteChange, userID primitive.ObjectID) bson.M {
	addToSet := bson.M{}
	pull := bson.M{}
	inc := bson.M{}

	if vc.AddUp {
		addToSet["upvotedBy"] = userID
	}
	if vc.PullUp {
		pull["upvotedBy"] = userID
	}
	if vc.AddDown {
		addToSet["downvotedBy"] = userID
	}
	if vc.PullDown {
		pull["downvotedBy"] = userID
	}
	if vc.UpDelta != 0 {
		inc["upvotes"] = vc.UpDelta
	}
	if vc.DownDelta != 0 {
		inc["downvotes"] = vc.DownDelta
	}

	update := bson.M{}
	if len(addToSet) > 0 {
		update["$addToSet"] = addToSet
	}
	if len(pull) > 0 {
		update["$pull"] = pull
	}
	if len(inc) > 0 {
		update["$inc"] = inc
	}
	return update
}
