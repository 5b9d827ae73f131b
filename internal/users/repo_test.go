package users

import (
	"context"
	"errors"
	"testing"
)

func TestRepositoryCreateAndFind(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{Name: " Ada ", Email: " Ada@Example.com", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Email != "ada@example.com" || created.Name != "Ada" {
		t.Fatalf("expected normalized user, got %+v", created)
	}

	found, err := repo.FindByEmail(ctx, "ADA@example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected id %s, got %s", created.ID, found.ID)
	}

	dto := FromModel(found)
	if dto.Email != "ada@example.com" {
		t.Fatalf("unexpected dto %+v", dto)
	}
}

func TestRepositoryRejectsDuplicateEmail(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, CreateUserDTO{Email: "ada@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, CreateUserDTO{Email: "ADA@example.com"}); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if repo.Count() != 1 {
		t.Fatalf("expected 1 user, got %d", repo.Count())
	}
}

func TestRepositoryFindMissing(t *testing.T) {
	if _, err := NewRepository().FindByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRepositoryReturnsCopies(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	created, err := repo.Create(ctx, CreateUserDTO{Name: "Ada", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	created.Name = "mutated"

	found, err := repo.FindByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Name != "Ada" {
		t.Fatalf("stored user was mutated: %q", found.Name)
	}
}
