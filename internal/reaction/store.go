// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reaction

import "context"

// Repository persists reactions.
type Repository interface {
	// Toggle atomically removes the user's reaction of kind if present, or adds
	// it and removes the opposite kind, then returns the resulting state.
	Toggle(context context.Context, blogID, userID int64, kind Kind) (*State, error)
}
