package userapp

import (
	"context"
	"strings"
	"testing"
	"time"

	"socialfeed/internal/core/access"
	"socialfeed/internal/core/apperror"
	userEntity "socialfeed/internal/core/user"
	sessionPort "socialfeed/internal/ports/session"
	userPort "socialfeed/internal/ports/user"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// memUsers ریپازیتوری درون‌حافظه‌ای برای تست
type memUsers struct {
	byID      map[uuid.UUID]*userEntity.User
	updateErr error
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[uuid.UUID]*userEntity.User{}}
}

func (m *memUsers) Create(_ context.Context, u *userEntity.User) (*userEntity.User, error) {
	for _, existing := range m.byID {
		if existing.Email == u.Email || existing.Username == u.Username {
			return nil, gorm.ErrDuplicatedKey
		}
	}
	u.ID = uuid.Must(uuid.NewV4())
	cp := *u
	m.byID[u.ID] = &cp
	return u, nil
}

func (m *memUsers) FindByID(_ context.Context, id uuid.UUID) (*userEntity.User, error) {
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUsers) find(match func(*userEntity.User) bool) (*userEntity.User, error) {
	for _, u := range m.byID {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*userEntity.User, error) {
	return m.find(func(u *userEntity.User) bool { return u.Email == email })
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*userEntity.User, error) {
	return m.find(func(u *userEntity.User) bool { return u.Username == username })
}

func (m *memUsers) FindByEmailOrUsername(_ context.Context, email, username string) (*userEntity.User, error) {
	return m.find(func(u *userEntity.User) bool { return u.Email == email || u.Username == username })
}

func (m *memUsers) Update(_ context.Context, u *userEntity.User, fields map[string]any) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	stored := m.byID[u.ID]
	for k, v := range fields {
		switch k {
		case "email":
			stored.Email = v.(string)
		case "username":
			stored.Username = v.(string)
		case "name":
			stored.Name = v.(string)
		case "password":
			stored.Password = v.(string)
		case "is_active":
			stored.IsActive = v.(bool)
		}
	}
	return nil
}

type memSessions struct {
	items map[string]string
}

func (m *memSessions) Save(_ context.Context, tokenID, userID string, _ time.Duration) error {
	m.items[tokenID] = userID
	return nil
}

func (m *memSessions) Find(_ context.Context, tokenID string) (string, error) {
	if v, ok := m.items[tokenID]; ok {
		return v, nil
	}
	return "", sessionPort.ErrSessionNotFound
}

func (m *memSessions) Delete(_ context.Context, tokenID string) error {
	delete(m.items, tokenID)
	return nil
}

func newTestService() (*UserService, *memUsers, *memSessions) {
	users := newMemUsers()
	sessions := &memSessions{items: map[string]string{}}
	svc := NewUserService(users, sessions, access.NewGuard(), []byte("test-secret"), time.Hour, zap.NewNop()).
		WithHashCost(bcrypt.MinCost)
	return svc, users, sessions
}

func strPtr(s string) *string { return &s }

func TestRegisterUser(t *testing.T) {
	svc, users, _ := newTestService()
	ctx := context.Background()

	dto, err := svc.RegisterUser(ctx, "  alice@EXAMPLE.com ", "alice", "Alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", dto.Email)
	assert.Equal(t, "alice", dto.Username)

	stored, err := users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.Password, "password must be hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret1")))
	assert.True(t, stored.IsActive)
	assert.False(t, stored.IsSuperuser)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.RegisterUser(ctx, "alice@example.com", "other", "Other", "secret1")
		assert.True(t, apperror.Is(err, apperror.KindConflict))
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.RegisterUser(ctx, "other@example.com", "alice", "Other", "secret1")
		assert.True(t, apperror.Is(err, apperror.KindConflict))
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.RegisterUser(ctx, "bob@example.com", "bob", "Bob", "12345")
		require.True(t, apperror.Is(err, apperror.KindValidation))
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Fields, "password")
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := svc.RegisterUser(ctx, "bob@example.com", "bob", "  ", "secret1")
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})
}

func TestCreateSuperuser(t *testing.T) {
	svc, users, _ := newTestService()
	_, err := svc.CreateSuperuser(context.Background(), "root@example.com", "root", "Root", "secret1")
	require.NoError(t, err)

	u, err := users.FindByUsername(context.Background(), "root")
	require.NoError(t, err)
	assert.True(t, u.IsStaff)
	assert.True(t, u.IsSuperuser)
}

func TestLoginAuthenticateLogout(t *testing.T) {
	svc, _, sessions := newTestService()
	ctx := context.Background()

	registered, err := svc.RegisterUser(ctx, "alice@example.com", "alice", "Alice", "secret1")
	require.NoError(t, err)

	resp, err := svc.LoginUser(ctx, "alice@EXAMPLE.COM", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Greater(t, resp.ExpiresAt, time.Now().Unix())
	assert.Len(t, sessions.items, 1)

	userID, err := svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)

	require.NoError(t, svc.LogoutUser(ctx, resp.Token))
	_, err = svc.Authenticate(ctx, resp.Token)
	assert.True(t, apperror.Is(err, apperror.KindAuthentication), "revoked token")
}

func TestLoginFailures(t *testing.T) {
	svc, users, _ := newTestService()
	ctx := context.Background()

	dto, err := svc.RegisterUser(ctx, "alice@example.com", "alice", "Alice", "secret1")
	require.NoError(t, err)

	_, err = svc.LoginUser(ctx, "alice@example.com", "wrong-password")
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = svc.LoginUser(ctx, "nobody@example.com", "secret1")
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	u, err := users.FindByID(ctx, uuid.FromStringOrNil(dto.ID))
	require.NoError(t, err)
	require.NoError(t, users.Update(ctx, u, map[string]any{"is_active": false}))
	_, err = svc.LoginUser(ctx, "alice@example.com", "secret1")
	assert.True(t, apperror.Is(err, apperror.KindValidation), "inactive account")
}

func TestAuthenticateRejects(t *testing.T) {
	svc, users, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "not-a-jwt")
	assert.True(t, apperror.Is(err, apperror.KindAuthentication))

	dto, err := svc.RegisterUser(ctx, "alice@example.com", "alice", "Alice", "secret1")
	require.NoError(t, err)
	resp, err := svc.LoginUser(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)

	t.Run("other signing key", func(t *testing.T) {
		other := NewUserService(users, &memSessions{items: map[string]string{}}, access.NewGuard(), []byte("other"), time.Hour, zap.NewNop())
		_, err := other.Authenticate(ctx, resp.Token)
		assert.True(t, apperror.Is(err, apperror.KindAuthentication))
	})

	t.Run("tampered token", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, resp.Token+"x")
		assert.True(t, apperror.Is(err, apperror.KindAuthentication))
	})

	t.Run("deactivated user", func(t *testing.T) {
		u, err := users.FindByID(ctx, uuid.FromStringOrNil(dto.ID))
		require.NoError(t, err)
		require.NoError(t, users.Update(ctx, u, map[string]any{"is_active": false}))
		_, err = svc.Authenticate(ctx, resp.Token)
		assert.True(t, apperror.Is(err, apperror.KindAuthentication))
	})
}

func TestProfile(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	alice, err := svc.RegisterUser(ctx, "alice@example.com", "alice", "Alice", "secret1")
	require.NoError(t, err)
	bob, err := svc.RegisterUser(ctx, "bob@example.com", "bob", "Bob", "secret1")
	require.NoError(t, err)

	got, err := svc.GetProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice, got)

	_, err = svc.GetProfile(ctx, "carol")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	t.Run("owner updates", func(t *testing.T) {
		updated, err := svc.UpdateProfile(ctx, alice.ID, "alice", userPort.ProfileUpdate{
			Name:     strPtr("Alice A."),
			Password: strPtr("newsecret"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Alice A.", updated.Name)
		assert.Equal(t, "alice@example.com", updated.Email)

		_, err = svc.LoginUser(ctx, "alice@example.com", "newsecret")
		assert.NoError(t, err)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, bob.ID, "alice", userPort.ProfileUpdate{Name: strPtr("hacked")})
		assert.True(t, apperror.Is(err, apperror.KindAuthorization))
	})

	t.Run("unknown profile", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, alice.ID, "carol", userPort.ProfileUpdate{Name: strPtr("x")})
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, alice.ID, "alice", userPort.ProfileUpdate{Password: strPtr("123")})
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})
}

func TestUpdateProfileConflict(t *testing.T) {
	svc, users, _ := newTestService()
	ctx := context.Background()

	alice, err := svc.RegisterUser(ctx, "alice@example.com", "alice", "Alice", "secret1")
	require.NoError(t, err)

	users.updateErr = gorm.ErrDuplicatedKey
	_, err = svc.UpdateProfile(ctx, alice.ID, "alice", userPort.ProfileUpdate{Username: strPtr("bob")})
	assert.True(t, apperror.Is(err, apperror.KindConflict))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "John.Doe@example.com", NormalizeEmail(" John.Doe@EXAMPLE.Com "))
	assert.Equal(t, "no-at-sign", NormalizeEmail("no-at-sign"))
	assert.False(t, strings.HasSuffix(NormalizeEmail("a@B.c"), "B.c"))
}
