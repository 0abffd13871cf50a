package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"repair-app/internal/models"
)

func TestClientSignupHashesPassword(t *testing.T) {
	repo := newFakeClientRepo()
	service := NewClientAuthService(repo, nil)

	client, err := service.Signup(context.Background(), &models.ClientSignupRequest{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if client.Password == "hunter22" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(client.Password), []byte("hunter22")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
	if !client.IsActive {
		t.Error("new client not active")
	}
}

func TestClientSignupDuplicateEmail(t *testing.T) {
	repo := newFakeClientRepo()
	service := NewClientAuthService(repo, nil)

	req := &models.ClientSignupRequest{Name: "Dana", Email: "dana@example.com", Password: "hunter22"}
	if _, err := service.Signup(context.Background(), req); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if _, err := service.Signup(context.Background(), req); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestClientLoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeClientRepo()
	service := NewClientAuthService(repo, nil)

	if _, err := service.Signup(context.Background(), &models.ClientSignupRequest{
		Name: "Dana", Email: "dana@example.com", Password: "hunter22",
	}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	// wrong password and unknown email are indistinguishable to the caller
	if _, _, err := service.Login(context.Background(), "dana@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := service.Login(context.Background(), "nobody@example.com", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}
