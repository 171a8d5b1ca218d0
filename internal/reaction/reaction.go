// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reaction

import (
	"time"
)

// Kind is the flavour of a reaction.
type Kind string

const (
	KindLike    Kind = "like"
	KindDislike Kind = "dislike"
)

// Opposite returns the kind that is mutually exclusive with k.
func (k Kind) Opposite() Kind {
	if k == KindLike {
		return KindDislike
	}
	return KindLike
}

// FieldKind names the reaction kind in validation errors.
const FieldKind = "kind"

// Reaction is one user's like or dislike of a blog.
// At most one reaction per (blog, user, kind) exists, and like/dislike exclude each other.
type Reaction struct {
	BlogID    int64     `json:"blog_id"`
	UserID    int64     `json:"user_id"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// State is the outcome of a toggle as seen by the actor.
type State struct {
	BlogID   int64 `json:"blog_id"`
	Liked    bool  `json:"liked"`
	Disliked bool  `json:"disliked"`
	Likes    int   `json:"likes"`
	Dislikes int   `json:"dislikes"`
}
