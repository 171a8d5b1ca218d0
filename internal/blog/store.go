// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import "context"

// Repository persists blogs and serves their read models.
//
// Lookups of a missing blog return an apperr NOT_FOUND error.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Summary, int, error)
	FindByID(context context.Context, id int64) (*Blog, error)
	Detail(context context.Context, id int64) (*Detail, error)
	Create(context context.Context, blog *Blog) error
	Update(context context.Context, blog *Blog) error
	Delete(context context.Context, id int64) error
}
