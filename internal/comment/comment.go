// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "time"

// Comment is a user's remark on a blog.
type Comment struct {
	ID         int64     `json:"id"`
	Content    string    `json:"content"`
	BlogID     int64     `json:"blog_id"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// OwnerID implements policy.Owned.
func (comment *Comment) OwnerID() int64 { return comment.AuthorID }

// Input is the payload for creating or editing a comment.
type Input struct {
	Content string `json:"content"`
}

// Field names for validation
const (
	FieldContent   = "content"
	FieldBlogID    = "blogId"
	FieldCommentID = "commentId"
)

// MaxContentLength bounds comment bodies.
const MaxContentLength = 2000
