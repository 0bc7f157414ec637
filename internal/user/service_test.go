package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	seq     int
	byEmail map[string]User
	err     error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: make(map[string]User)}
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return ErrAlreadyExists
	}
	f.seq++
	u.ID = fmt.Sprintf("user-%04d", f.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.byEmail[u.Email] = *u
	return nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (User, error) {
	if f.err != nil {
		return User{}, f.err
	}
	u, ok := f.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (User, error) {
	if f.err != nil {
		return User{}, f.err
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	service := NewService(newFakeRepo())

	t.Run("success", func(t *testing.T) {
		u, err := service.Register(ctx, "Alice", "alice@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "alice@example.com", u.Email)
		// Stored credential is a hash, never the plain password.
		assert.NotEqual(t, "password123", u.Password)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := service.Register(ctx, "Alice Again", "alice@example.com", "password456")
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()
	service := NewService(newFakeRepo())

	_, err := service.Register(ctx, "Bob", "bob@example.com", "correct-horse")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		u, err := service.Authenticate(ctx, "bob@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "bob@example.com", u.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Authenticate(ctx, "bob@example.com", "battery-staple")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := service.Authenticate(ctx, "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
