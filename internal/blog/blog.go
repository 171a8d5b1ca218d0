// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import "time"

// Blog is a post written by a user.
type Blog struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	BlogImage *string   `json:"blog_image"`
	AuthorID  int64     `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnerID implements policy.Owned.
func (blog *Blog) OwnerID() int64 { return blog.AuthorID }

// Author is the public view of a user attached to blogs and comments.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Summary is a blog as shown in listings.
type Summary struct {
	Blog
	Author        Author `json:"author"`
	LikesCount    int    `json:"likes_count"`
	DislikesCount int    `json:"dislikes_count"`
	CommentsCount int    `json:"comments_count"`
}

// CommentView is a comment embedded in a blog detail.
type CommentView struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// Detail is a blog with everything attached to it.
type Detail struct {
	Summary
	Likers    []Author      `json:"likers"`
	Dislikers []Author      `json:"dislikers"`
	Comments  []CommentView `json:"comments"`
	IsMine    bool          `json:"is_mine"`
}

// Filter holds the parameters for a paginated blog listing.
type Filter struct {
	Title string // Exact title match
}

// CreateInput is the payload for creating a blog.
type CreateInput struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	BlogImage *string `json:"blog_image"`
}

// UpdateInput holds the optional fields of a blog update.
// An empty blog_image removes the image.
type UpdateInput struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	BlogImage *string `json:"blog_image"`
}

// Field names for validation
const (
	FieldTitle     = "title"
	FieldContent   = "content"
	FieldBlogImage = "blog_image"
	FieldBlogID    = "blogId"
)

// MaxTitleLength bounds blog titles.
const MaxTitleLength = 200

// fallbackSlug is used when a title has no ASCII-representable characters.
const fallbackSlug = "post"
