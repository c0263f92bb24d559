package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/court-reservation-backend/internal/auth"
)

func newTestService() Service {
	return NewService(NewMemoryRepository(), auth.NewBcryptPasswordHasherWithCost(4), nil)
}

func register(t *testing.T, svc Service, email, nationalID string) *User {
	t.Helper()
	u, err := svc.Register(context.Background(), RegisterRequest{
		Email:      email,
		Password:   "password123",
		FullName:   "Ana Mora",
		NationalID: nationalID,
		Phone:      "8888-0000",
	})
	require.NoError(t, err)
	return u
}

func TestRegisterCreatesPendingUser(t *testing.T) {
	svc := newTestService()

	u := register(t, svc, "  Ana@Example.com ", "1-1111-1111")

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, RoleUser, u.Role)
	assert.Equal(t, StatusPending, u.Status)
	assert.NotEqual(t, "password123", u.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	register(t, svc, "ana@example.com", "1-1111-1111")

	tests := []struct {
		name string
		req  RegisterRequest
		want error
	}{
		{name: "no email", req: RegisterRequest{Password: "password123", FullName: "X", NationalID: "2"}, want: ErrEmailRequired},
		{name: "short password", req: RegisterRequest{Email: "b@example.com", Password: "short", FullName: "X", NationalID: "2"}, want: ErrPasswordTooShort},
		{name: "no name", req: RegisterRequest{Email: "b@example.com", Password: "password123", NationalID: "2"}, want: ErrFullNameRequired},
		{name: "no national id", req: RegisterRequest{Email: "b@example.com", Password: "password123", FullName: "X"}, want: ErrNationalIDRequired},
		{name: "duplicate email", req: RegisterRequest{Email: "ANA@example.com", Password: "password123", FullName: "X", NationalID: "2"}, want: ErrEmailAlreadyUsed},
		{name: "duplicate national id", req: RegisterRequest{Email: "b@example.com", Password: "password123", FullName: "X", NationalID: "1-1111-1111"}, want: ErrNationalIDAlreadyUsed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoginRequiresApproval(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	u := register(t, svc, "ana@example.com", "1")

	_, err := svc.Login(ctx, "ana@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ana@example.com", "password123")
	assert.ErrorIs(t, err, ErrNotApproved)

	_, err = svc.Approve(ctx, u.ID)
	require.NoError(t, err)

	logged, err := svc.Login(ctx, "ANA@example.com", "password123")
	require.NoError(t, err)
	assert.NotNil(t, logged.LastLoginAt)

	_, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestApproveAndReject(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	u := register(t, svc, "ana@example.com", "1")

	rejected, err := svc.Reject(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)

	_, err = svc.Reject(ctx, u.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusChange)

	approved, err := svc.Approve(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)

	_, err = svc.Approve(ctx, u.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusChange)

	_, err = svc.Approve(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnsureAdmin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	admin, err := svc.EnsureAdmin(ctx, "admin@example.com", "admin-password")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
	assert.Equal(t, StatusApproved, admin.Status)

	again, err := svc.EnsureAdmin(ctx, "ADMIN@example.com", "admin-password")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)

	_, err = svc.Reject(ctx, admin.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusChange)

	_, err = svc.Login(ctx, "admin@example.com", "admin-password")
	assert.NoError(t, err)
}

func TestListAndCount(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	a := register(t, svc, "ana@example.com", "1")
	register(t, svc, "beto@example.com", "2")
	register(t, svc, "carla@other.org", "3")
	_, err := svc.Approve(ctx, a.ID)
	require.NoError(t, err)

	users, total, err := svc.List(ctx, Filter{Email: "EXAMPLE"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "beto@example.com", users[0].Email)

	pending, total, err := svc.List(ctx, Filter{Status: string(StatusPending)})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, pending, 2)

	counts, err := svc.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[StatusApproved])
	assert.Equal(t, 2, counts[StatusPending])
}
