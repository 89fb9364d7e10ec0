package user

import "context"

type Repository interface {
	// Transaction runs fn so that repository calls made with the context it
	// receives commit or roll back together.
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
	// CreateIfMissing inserts the user unless the id already exists and
	// reports whether a row was created.
	CreateIfMissing(ctx context.Context, user *User) (bool, error)
	GetUser(ctx context.Context, userID string) (*User, error)
	UpdateEmail(ctx context.Context, userID, email string) error
	UpdateSettings(ctx context.Context, userID, settings string) error
}
