package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"mediahub/internal/config"
	"mediahub/internal/model"
)

// =============================================================================
// MOCK REPOSITORY
// =============================================================================

type mockUserRepository struct {
	createFn        func(ctx context.Context, user *model.User) error
	getByIDFn       func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*model.User, error)
	existsByEmailFn func(ctx context.Context, email string) (bool, error)
	updateProfileFn func(ctx context.Context, id int64, fullName, bio *string) (*model.User, error)
	updateAvatarFn  func(ctx context.Context, id int64, avatarURL, avatarKey string) (*model.User, error)

	createCalls int
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, id int64, fullName, bio *string) (*model.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, id, fullName, bio)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) UpdateAvatar(ctx context.Context, id int64, avatarURL, avatarKey string) (*model.User, error) {
	if m.updateAvatarFn != nil {
		return m.updateAvatarFn(ctx, id, avatarURL, avatarKey)
	}
	return nil, model.ErrUserNotFound
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		AccessTokenMaxAge:  900,
		RefreshTokenMaxAge: 2592000,
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hashed)
}

// =============================================================================
// REGISTER TESTS
// =============================================================================

func TestUserService_Register_Success(t *testing.T) {
	mockRepo := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.User) error {
			user.ID = 1
			user.IsActive = true
			user.CreatedAt = time.Now()
			user.UpdatedAt = time.Now()
			return nil
		},
	}
	svc := NewUserService(mockRepo, testConfig())

	req := &model.RegisterRequest{
		Email:    "Alice@Example.com",
		Username: "alice",
		Password: "securepassword123",
		FullName: "Alice Doe",
	}

	user, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if user.Email != "alice@example.com" {
		t.Errorf("email = %q, want lowercased %q", user.Email, "alice@example.com")
	}
	if user.Username != "alice" {
		t.Errorf("username = %q, want %q", user.Username, "alice")
	}
	if user.FullName == nil || *user.FullName != "Alice Doe" {
		t.Errorf("full_name = %v, want %q", user.FullName, "Alice Doe")
	}

	// Password must be hashed, never stored as-is
	if user.PasswordHashed == req.Password {
		t.Error("password should be hashed, not stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password)); err != nil {
		t.Error("password hash should be valid bcrypt hash")
	}

	if mockRepo.createCalls != 1 {
		t.Errorf("Create called %d times, want 1", mockRepo.createCalls)
	}
}

func TestUserService_Register_EmailExists(t *testing.T) {
	mockRepo := &mockUserRepository{
		existsByEmailFn: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}
	svc := NewUserService(mockRepo, testConfig())

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "taken@example.com",
		Username: "someone",
		Password: "password123",
	})

	if !errors.Is(err, model.ErrEmailExists) {
		t.Errorf("error = %v, want ErrEmailExists", err)
	}
	if mockRepo.createCalls != 0 {
		t.Errorf("Create called %d times, want 0", mockRepo.createCalls)
	}
}

// =============================================================================
// LOGIN TESTS
// =============================================================================

func TestUserService_Login_Success(t *testing.T) {
	hashed := hashPassword(t, "correct-password")
	mockRepo := &mockUserRepository{
		getByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:             42,
				Email:          "bob@example.com",
				Username:       "bob",
				PasswordHashed: hashed,
				IsActive:       true,
			}, nil
		},
	}
	svc := NewUserService(mockRepo, testConfig())

	user, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "bob@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if user.ID != 42 {
		t.Errorf("user id = %d, want 42", user.ID)
	}
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	hashed := hashPassword(t, "correct-password")
	mockRepo := &mockUserRepository{
		getByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 42, PasswordHashed: hashed, IsActive: true}, nil
		},
	}
	svc := NewUserService(mockRepo, testConfig())

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "bob@example.com",
		Password: "wrong-password",
	})

	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestUserService_Login_UnknownEmailMasked(t *testing.T) {
	// Unknown email must produce the same error as a wrong password so
	// the endpoint does not reveal which addresses are registered.
	svc := NewUserService(&mockUserRepository{}, testConfig())

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestUserService_Login_InactiveAccount(t *testing.T) {
	hashed := hashPassword(t, "correct-password")
	mockRepo := &mockUserRepository{
		getByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 42, PasswordHashed: hashed, IsActive: false}, nil
		},
	}
	svc := NewUserService(mockRepo, testConfig())

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "bob@example.com",
		Password: "correct-password",
	})

	if !errors.Is(err, model.ErrAccountInactive) {
		t.Errorf("error = %v, want ErrAccountInactive", err)
	}
}
