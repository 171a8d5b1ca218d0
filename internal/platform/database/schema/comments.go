// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CommentTable represents the 'comments' table
type CommentTable struct {
	Table     string
	ID        string
	Content   string
	BlogID    string
	AuthorID  string
	CreatedAt string
	UpdatedAt string
}

// Comment is the schema definition for comments
var Comment = CommentTable{
	Table:     "comments",
	ID:        "id",
	Content:   "content",
	BlogID:    "blog_id",
	AuthorID:  "author_id",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

// Columns returns all standard column names
func (t CommentTable) Columns() []string {
	return []string{t.ID, t.Content, t.BlogID, t.AuthorID, t.CreatedAt, t.UpdatedAt}
}
