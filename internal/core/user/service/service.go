package userapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"socialfeed/internal/core/access"
	"socialfeed/internal/core/apperror"
	userEntity "socialfeed/internal/core/user"
	sessionPort "socialfeed/internal/ports/session"
	userPort "socialfeed/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	tokenIssuer       = "socialfeed"
	minPasswordLength = 6
)

var errInvalidCredentials = apperror.Validation("invalid credentials")

// UserService سرویس مدیریت کاربران و توکن‌ها
type UserService struct {
	UserRepository    userPort.UserRepository
	SessionRepository sessionPort.SessionRepository
	guard             *access.Guard
	jwtKey            []byte
	tokenTTL          time.Duration
	hashCost          int
	logger            *zap.Logger
}

func NewUserService(
	repo userPort.UserRepository,
	sessions sessionPort.SessionRepository,
	guard *access.Guard,
	jwtKey []byte,
	tokenTTL time.Duration,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		UserRepository:    repo,
		SessionRepository: sessions,
		guard:             guard,
		jwtKey:            jwtKey,
		tokenTTL:          tokenTTL,
		hashCost:          bcrypt.DefaultCost,
		logger:            logger,
	}
}

// WithHashCost برای تست‌ها که bcrypt سریع‌تر لازم دارند
func (s *UserService) WithHashCost(cost int) *UserService {
	s.hashCost = cost
	return s
}

// RegisterUser ثبت‌نام کاربر جدید
func (s *UserService) RegisterUser(ctx context.Context, email, username, name, password string) (*userPort.UserDTO, error) {
	u, err := s.createUser(ctx, email, username, name, password, false)
	if err != nil {
		return nil, err
	}
	return userPort.ToUserDTO(u), nil
}

// CreateSuperuser ساخت کاربر مدیر از طریق CLI
func (s *UserService) CreateSuperuser(ctx context.Context, email, username, name, password string) (*userPort.UserDTO, error) {
	u, err := s.createUser(ctx, email, username, name, password, true)
	if err != nil {
		return nil, err
	}
	return userPort.ToUserDTO(u), nil
}

func (s *UserService) createUser(ctx context.Context, email, username, name, password string, superuser bool) (*userEntity.User, error) {
	email = NormalizeEmail(email)
	username = strings.TrimSpace(username)
	name = strings.TrimSpace(name)

	switch {
	case email == "":
		return nil, apperror.FieldValidation("email", "this field may not be blank")
	case username == "":
		return nil, apperror.FieldValidation("username", "this field may not be blank")
	case name == "":
		return nil, apperror.FieldValidation("name", "this field may not be blank")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	// بررسی اینکه آیا کاربر با این ایمیل یا یوزرنیم قبلاً ثبت شده است
	existing, err := s.UserRepository.FindByEmailOrUsername(ctx, email, username)
	if err == nil && existing != nil {
		if existing.Email == email {
			return nil, conflictField("email", "user with this email already exists")
		}
		return nil, conflictField("username", "user with this username already exists")
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Internal(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u, err := s.UserRepository.Create(ctx, &userEntity.User{
		Email:       email,
		Username:    username,
		Name:        name,
		Password:    string(hashedPassword),
		IsActive:    true,
		IsStaff:     superuser,
		IsSuperuser: superuser,
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apperror.Conflict("email or username already taken")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	s.logger.Info("User registered", zap.String("userID", u.ID.String()), zap.Bool("superuser", superuser))
	return u, nil
}

// LoginUser ورود کاربر و صدور توکن JWT
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*userPort.LoginResponse, error) {
	u, err := s.UserRepository.FindByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	// مقایسه پسورد هش‌شده
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.logger.Info("Login failed", zap.String("userID", u.ID.String()))
		return nil, errInvalidCredentials
	}
	if !u.IsActive {
		return nil, errInvalidCredentials
	}

	tokenID := uuid.Must(uuid.NewV4()).String()
	expiresAt := time.Now().Add(s.tokenTTL)
	token, err := s.generateJWT(u, tokenID, expiresAt)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("could not generate token: %w", err))
	}
	if err := s.SessionRepository.Save(ctx, tokenID, u.ID.String(), s.tokenTTL); err != nil {
		return nil, apperror.Internal(fmt.Errorf("could not store session: %w", err))
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

// generateJWT برای تولید توکن JWT
func (s *UserService) generateJWT(u *userEntity.User, tokenID string, expiresAt time.Time) (string, error) {
	claims := &jwt.StandardClaims{
		Id:        tokenID,
		Subject:   u.ID.String(),
		Issuer:    tokenIssuer,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

func (s *UserService) parseJWT(raw string) (*jwt.StandardClaims, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.Unauthenticated("invalid token")
	}
	if claims.Id == "" || claims.Issuer != tokenIssuer {
		return nil, apperror.Unauthenticated("invalid token")
	}
	return claims, nil
}

// Authenticate توکن را بررسی و شناسه کاربر را برمی‌گرداند
func (s *UserService) Authenticate(ctx context.Context, raw string) (string, error) {
	claims, err := s.parseJWT(raw)
	if err != nil {
		return "", err
	}

	userID, err := s.SessionRepository.Find(ctx, claims.Id)
	if errors.Is(err, sessionPort.ErrSessionNotFound) {
		return "", apperror.Unauthenticated("token has been revoked")
	}
	if err != nil {
		return "", apperror.Internal(err)
	}
	if userID != claims.Subject {
		return "", apperror.Unauthenticated("invalid token")
	}

	u, err := s.UserRepository.FindByID(ctx, uuid.FromStringOrNil(userID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperror.Unauthenticated("user not found")
	}
	if err != nil {
		return "", apperror.Internal(err)
	}
	if !u.IsActive {
		return "", apperror.Unauthenticated("user is inactive")
	}
	return u.ID.String(), nil
}

// LogoutUser باطل کردن توکن
func (s *UserService) LogoutUser(ctx context.Context, raw string) error {
	claims, err := s.parseJWT(raw)
	if err != nil {
		return err
	}
	if err := s.SessionRepository.Delete(ctx, claims.Id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *UserService) GetProfile(ctx context.Context, username string) (*userPort.UserDTO, error) {
	u, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return userPort.ToUserDTO(u), nil
}

// UpdateProfile فقط صاحب پروفایل می‌تواند آن را تغییر دهد
func (s *UserService) UpdateProfile(ctx context.Context, actorID, username string, upd userPort.ProfileUpdate) (*userPort.UserDTO, error) {
	u, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(uuid.FromStringOrNil(actorID), u); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if upd.Email != nil {
		email := NormalizeEmail(*upd.Email)
		if email == "" {
			return nil, apperror.FieldValidation("email", "this field may not be blank")
		}
		fields["email"] = email
	}
	if upd.Username != nil {
		username := strings.TrimSpace(*upd.Username)
		if username == "" {
			return nil, apperror.FieldValidation("username", "this field may not be blank")
		}
		fields["username"] = username
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, apperror.FieldValidation("name", "this field may not be blank")
		}
		fields["name"] = name
	}
	if upd.Password != nil {
		if err := validatePassword(*upd.Password); err != nil {
			return nil, err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), s.hashCost)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		fields["password"] = string(hashed)
	}

	err = s.UserRepository.Update(ctx, u, fields)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apperror.Conflict("email or username already taken")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	updated, err := s.UserRepository.FindByID(ctx, u.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return userPort.ToUserDTO(updated), nil
}

func (s *UserService) findByUsername(ctx context.Context, username string) (*userEntity.User, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("user", username)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return u, nil
}

// NormalizeEmail بخش دامنه ایمیل را کوچک می‌کند
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperror.FieldValidation("password", fmt.Sprintf("ensure this field has at least %d characters", minPasswordLength))
	}
	return nil
}

func conflictField(field, message string) *apperror.AppError {
	err := apperror.Conflict(message)
	err.Fields = map[string]string{field: message}
	return err
}
