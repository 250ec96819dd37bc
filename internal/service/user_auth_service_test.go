package service

import (
	"errors"
	"testing"

	"github.com/ebookstore-next/internal/config"
	"github.com/ebookstore-next/internal/constants"
	"github.com/ebookstore-next/internal/repository"
)

func newTestAuthService(t *testing.T, f *serviceFixture) *UserAuthService {
	t.Helper()
	cfg := &config.Config{
		JWT: config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 6},
		},
	}
	return NewUserAuthService(cfg, repository.NewUserRepository(f.db))
}

func TestRegisterLoginAndParseToken(t *testing.T) {
	f := setupServiceTest(t)
	svc := newTestAuthService(t, f)

	registered, err := svc.Register(RegisterInput{Email: " Elif@Example.com ", Password: "gizli123", FirstName: "Elif"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if registered.User.Email != "elif@example.com" || registered.User.Role != constants.RoleUser {
		t.Fatalf("unexpected registered user: %+v", registered.User)
	}
	if _, err := svc.Register(RegisterInput{Email: "elif@example.com", Password: "gizli123"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate email should be rejected, got %v", err)
	}

	if _, err := svc.Login("elif@example.com", "yanlis"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password should be rejected, got %v", err)
	}
	if _, err := svc.Login("yok@example.com", "gizli123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email should be rejected, got %v", err)
	}

	result, err := svc.Login("ELIF@example.com", "gizli123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims, err := svc.ParseUserJWT(result.Token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != registered.User.ID || claims.Role != constants.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := svc.ParseUserJWT(result.Token + "x"); err == nil {
		t.Fatalf("tampered token should be rejected")
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	f := setupServiceTest(t)
	svc := newTestAuthService(t, f)
	if _, err := svc.Register(RegisterInput{Email: "not-an-email", Password: "gizli123"}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("invalid email should be rejected, got %v", err)
	}
	if _, err := svc.Register(RegisterInput{Email: "kisa@example.com", Password: "123"}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("short password should be rejected, got %v", err)
	}
}

func TestValidatePasswordPolicy(t *testing.T) {
	policy := config.PasswordPolicyConfig{MinLength: 4, RequireLetter: true, RequireNumber: true}
	if err := validatePassword(policy, "abcd"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("missing number should fail, got %v", err)
	}
	if err := validatePassword(policy, "1234"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("missing letter should fail, got %v", err)
	}
	if err := validatePassword(policy, "ab12"); err != nil {
		t.Fatalf("valid password rejected: %v", err)
	}
	if err := validatePassword(config.PasswordPolicyConfig{}, ""); err != nil {
		t.Fatalf("empty policy should accept anything: %v", err)
	}
}
