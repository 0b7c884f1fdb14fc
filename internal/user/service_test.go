// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/artisan-market/internal/core"
)

type fakeRepository struct {
	create  func(ctx context.Context, user *User) error
	getByID func(ctx context.Context, id string) (*User, error)
}

func (f *fakeRepository) Create(ctx context.Context, user *User) error {
	return f.create(ctx, user)
}

func (f *fakeRepository) GetByID(ctx context.Context, id string) (*User, error) {
	return f.getByID(ctx, id)
}

func (f *fakeRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	return nil, core.ErrNotFound
}

func (f *fakeRepository) Update(ctx context.Context, user *User) error {
	return nil
}

func (f *fakeRepository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	return nil
}

func (f *fakeRepository) ResetPassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	return nil
}

func (f *fakeRepository) IncrementTokenVersion(
	ctx context.Context,
	id string,
) error {
	return nil
}

func (f *fakeRepository) SoftDelete(ctx context.Context, id string) error {
	return nil
}

func (f *fakeRepository) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return nil, 0, nil
}

func (f *fakeRepository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	return false, nil
}

func TestCreateUser_StartsBehindForcedRotation(t *testing.T) {
	var created *User
	repo := &fakeRepository{
		create: func(ctx context.Context, user *User) error {
			created = user
			return nil
		},
	}
	svc := NewService(repo)

	user, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Email:        "New.Maker@Example.COM",
		TempPassword: "temppass123",
		FirstName:    "Noa",
		LastName:     "Weaver",
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, "new.maker@example.com", created.Email)
	assert.True(t, created.MustChangePassword)
	assert.Equal(t, RoleUser, created.Role)
	assert.NotEmpty(t, created.ID)

	// The temp password is stored hashed, never verbatim.
	assert.NotEqual(t, "temppass123", created.PasswordHash)
	ok, err := core.VerifyPassword("temppass123", created.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, created.ID, user.ID)
}

func TestCreateUser_ExplicitAdminRole(t *testing.T) {
	repo := &fakeRepository{
		create: func(ctx context.Context, user *User) error { return nil },
	}
	svc := NewService(repo)

	user, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Email:        "boss@example.com",
		TempPassword: "temppass123",
		FirstName:    "Sam",
		LastName:     "Potter",
		Role:         RoleAdmin,
	})
	require.NoError(t, err)

	assert.Equal(t, RoleAdmin, user.Role)
}

func TestCanDeleteUser(t *testing.T) {
	users := map[string]*User{
		"admin-1": {ID: "admin-1", Role: RoleAdmin},
		"admin-2": {ID: "admin-2", Role: RoleAdmin},
		"user-1":  {ID: "user-1", Role: RoleUser},
		"user-2":  {ID: "user-2", Role: RoleUser},
	}
	repo := &fakeRepository{
		getByID: func(ctx context.Context, id string) (*User, error) {
			u, ok := users[id]
			if !ok {
				return nil, core.ErrNotFound
			}
			return u, nil
		},
	}
	svc := NewService(repo)
	ctx := context.Background()

	// Anyone can delete their own account.
	assert.NoError(t, svc.CanDeleteUser(ctx, "user-1", "user-1"))
	assert.NoError(t, svc.CanDeleteUser(ctx, "admin-1", "admin-1"))

	// Admins can delete regular users.
	assert.NoError(t, svc.CanDeleteUser(ctx, "admin-1", "user-1"))

	// Regular users cannot delete anyone else.
	assert.ErrorIs(
		t,
		svc.CanDeleteUser(ctx, "user-1", "user-2"),
		core.ErrForbidden,
	)

	// Admin accounts are not deletable by other admins.
	assert.ErrorIs(
		t,
		svc.CanDeleteUser(ctx, "admin-1", "admin-2"),
		core.ErrForbidden,
	)
}

func TestListUsersParamsNormalize(t *testing.T) {
	params := ListUsersParams{Page: 0, PageSize: 500}
	params.Normalize()

	assert.Equal(t, 1, params.Page)
	assert.LessOrEqual(t, params.PageSize, 100)
	assert.Equal(t, 0, params.Offset())
}
