package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shupin-market/internal/config"
	"github.com/shupin-market/internal/models"
	"github.com/shupin-market/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthService(t *testing.T) *UserAuthService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	users := repository.NewUserRepository(db)
	return NewUserAuthService(users, &config.JWTConfig{SecretKey: "auth-test-secret-key-0123456789abcdef", ExpireHours: 1})
}

func TestRegisterAndLogin(t *testing.T) {
	auth := setupAuthService(t)

	user, err := auth.Register(RegisterInput{Name: "Alice", Email: "Alice@Example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email should be lowercased, got %s", user.Email)
	}
	if user.Password == "secret123" {
		t.Fatalf("password must not be stored in plain text")
	}

	token, loggedIn, err := auth.Login("alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("token should not be empty")
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("login user id want %d got %d", user.ID, loggedIn.ID)
	}

	claims, err := auth.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("claims user id want %d got %d", user.ID, claims.UserID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth := setupAuthService(t)

	if _, err := auth.Register(RegisterInput{Name: "A", Email: "dup@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := auth.Register(RegisterInput{Name: "B", Email: "DUP@example.com", Password: "secret123"})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("want ErrEmailExists, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	auth := setupAuthService(t)

	if _, err := auth.Register(RegisterInput{Name: "A", Email: "a@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := auth.Login("a@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := auth.Login("nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email want ErrInvalidCredentials, got %v", err)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	auth := setupAuthService(t)

	if _, err := auth.ParseToken("not-a-jwt"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}
