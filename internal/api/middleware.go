package api

import (
	"context"

	"github.com/nekogravitycat/court-reservation-backend/internal/auth"
	"github.com/nekogravitycat/court-reservation-backend/internal/user"
)

// AccountLookup loads the account behind a token.
type AccountLookup interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// RequireApprovedAccount refuses tokens whose account has since been rejected
// or removed. Tokens outlive status changes until they expire, so the stored
// status is re-read on every request.
func RequireApprovedAccount(users AccountLookup) auth.ClaimsCheck {
	return func(ctx context.Context, claims *auth.Claims) error {
		u, err := users.GetByID(ctx, claims.UserID)
		if err != nil {
			return err
		}
		if u.Status != user.StatusApproved {
			return user.ErrNotApproved
		}
		return nil
	}
}
