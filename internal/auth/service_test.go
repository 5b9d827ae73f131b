package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/angelmondragon/storefront/internal/users"
	"github.com/angelmondragon/storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

var testPasswordConfig = config.PasswordConfig{
	ArgonMemoryKB:    8192,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

func buildTestService(t *testing.T, repo userRepository) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{UserRepo: repo, PasswordConfig: testPasswordConfig})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected %s error, got %v", code, err)
	}
	if typed.Code() != code {
		t.Fatalf("expected %s, got %s", code, typed.Code())
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected error for missing repository")
	}
}

func TestSignupThenLogin(t *testing.T) {
	repo := users.NewRepository()
	svc := buildTestService(t, repo)
	ctx := context.Background()

	signup, err := svc.Signup(ctx, SignupRequest{Name: "Ada", Email: "Ada@Example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if signup.Message != "Account created successfully!" {
		t.Fatalf("unexpected message %q", signup.Message)
	}
	if signup.User.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %q", signup.User.Email)
	}

	stored, err := repo.FindByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.PasswordHash == "s3cret" || !strings.HasPrefix(stored.PasswordHash, "$argon2id$") {
		t.Fatalf("password must be stored as an argon2id hash, got %q", stored.PasswordHash)
	}

	login, err := svc.Login(ctx, LoginRequest{Email: "ada@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.User.ID != signup.User.ID {
		t.Fatalf("expected same user id")
	}
	if login.Message != "Login successful!" {
		t.Fatalf("unexpected message %q", login.Message)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := buildTestService(t, users.NewRepository())
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "pw"}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	_, err := svc.Signup(ctx, SignupRequest{Name: "Other", Email: "ADA@example.com", Password: "pw"})
	requireCode(t, err, pkgerrors.CodeConflict)
}

func TestSignupRequiresPassword(t *testing.T) {
	svc := buildTestService(t, users.NewRepository())
	_, err := svc.Signup(context.Background(), SignupRequest{Name: "Ada", Email: "ada@example.com"})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := buildTestService(t, users.NewRepository())
	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "pw"})
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := buildTestService(t, users.NewRepository())
	ctx := context.Background()
	if _, err := svc.Signup(ctx, SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "right"}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	_, err := svc.Login(ctx, LoginRequest{Email: "ada@example.com", Password: "wrong"})
	requireCode(t, err, pkgerrors.CodeUnauthorized)
}

type failingRepo struct{}

func (failingRepo) Create(context.Context, users.CreateUserDTO) (*users.User, error) {
	return nil, errors.New("unavailable")
}

func (failingRepo) FindByEmail(context.Context, string) (*users.User, error) {
	return nil, errors.New("unavailable")
}

func TestRepositoryFailuresAreInternal(t *testing.T) {
	svc := buildTestService(t, failingRepo{})
	_, err := svc.Login(context.Background(), LoginRequest{Email: "ada@example.com", Password: "pw"})
	requireCode(t, err, pkgerrors.CodeInternal)
}
