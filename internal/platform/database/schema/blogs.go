// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// BlogTable represents the 'blogs' table
type BlogTable struct {
	Table     string
	ID        string
	Title     string
	Slug      string
	Content   string
	BlogImage string
	AuthorID  string
	CreatedAt string
	UpdatedAt string
}

// Blog is the schema definition for blogs
var Blog = BlogTable{
	Table:     "blogs",
	ID:        "id",
	Title:     "title",
	Slug:      "slug",
	Content:   "content",
	BlogImage: "blog_image",
	AuthorID:  "author_id",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

// Columns returns all standard column names
func (t BlogTable) Columns() []string {
	return []string{t.ID, t.Title, t.Slug, t.Content, t.BlogImage, t.AuthorID, t.CreatedAt, t.UpdatedAt}
}
