// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ReactionTable represents the 'reactions' table (likes and dislikes)
type ReactionTable struct {
	Table     string
	BlogID    string
	UserID    string
	Kind      string
	CreatedAt string
}

// Reaction is the schema definition for reactions
var Reaction = ReactionTable{
	Table:     "reactions",
	BlogID:    "blog_id",
	UserID:    "user_id",
	Kind:      "kind",
	CreatedAt: "created_at",
}

// Columns returns all standard column names
func (t ReactionTable) Columns() []string {
	return []string{t.BlogID, t.UserID, t.Kind, t.CreatedAt}
}
