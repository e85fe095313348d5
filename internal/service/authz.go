package service

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrAccessDenied is returned whenever a requester touches a resource owned
// by somebody else.
var ErrAccessDenied = errors.New("access denied: resource belongs to another user")

// authorizeOwner is the single ownership check used by every service entry
// point that loads a user-owned resource. Keeping it in one place stops the
// per-handler copies of this check from drifting apart.
func authorizeOwner(ownerID, requesterID primitive.ObjectID) error {
	if ownerID != requesterID {
		return ErrAccessDenied
	}
	return nil
}
