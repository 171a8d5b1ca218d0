// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package policy holds the authorization decision for mutations on owned resources.

Every mutable entity (user, blog, comment) exposes its owner through [Owned].
Handlers never compare ids themselves; they load the record through [LoadOwned],
which guarantees the order "exists, then owned" for every resource type.
*/
package policy

import (
	"context"
	"fmt"

	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/sec"
)

// Owned is implemented by any record whose mutations are restricted to its owner.
type Owned interface {
	OwnerID() int64
}

// Reason explains a denial.
type Reason string

const (
	// ReasonNotOwner means the actor is not the owner of the resource.
	ReasonNotOwner Reason = "NOT_OWNER"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Allow is the permissive decision.
var Allow = Decision{Allowed: true}

// Authorize allows the actor iff it owns the resource.
func Authorize(actor sec.Identity, resource Owned) Decision {
	if actor.SubjectID == resource.OwnerID() {
		return Allow
	}
	return Decision{Allowed: false, Reason: ReasonNotOwner}
}

// Err converts a denial into a FORBIDDEN error for the given action
// (e.g. "update the blog"). It returns nil for an allowed decision.
func (d Decision) Err(action string) error {
	if d.Allowed {
		return nil
	}
	return apperr.Forbidden(fmt.Sprintf("You are not authorised to %s", action))
}

// Finder loads a record by id. It must return a NOT_FOUND [apperr.AppError]
// when the record does not exist.
type Finder[T Owned] func(ctx context.Context, id int64) (T, error)

// LoadOwned fetches the record with find and authorizes actor against it.
//
// A missing record fails before ownership is evaluated, so callers always see
// 404 for absent records and 403 for records owned by someone else.
func LoadOwned[T Owned](ctx context.Context, actor sec.Identity, id int64, find Finder[T], action string) (T, error) {
	var zero T

	record, err := find(ctx, id)
	if err != nil {
		return zero, err
	}

	if err := Authorize(actor, record).Err(action); err != nil {
		return zero, err
	}

	return record, nil
}
