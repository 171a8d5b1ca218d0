// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "context"

// Repository persists comments.
//
// Lookups of a missing comment return an apperr NOT_FOUND error.
type Repository interface {
	ListByBlog(context context.Context, blogID int64, limit, offset int) ([]*Comment, int, error)
	FindByID(context context.Context, id int64) (*Comment, error)
	Create(context context.Context, comment *Comment) error
	Update(context context.Context, comment *Comment) error
	Delete(context context.Context, id int64) error
}
