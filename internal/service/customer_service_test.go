package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewCustomerService(env.customers, zap.NewNop())

	created, err := svc.Register(ctx, "Abdullah", "abdullah@example.com", "secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if created.PasswordHash == "secret" || created.PasswordHash == "" {
		t.Fatalf("password stored in the clear")
	}
	if created.LoyaltyPoints != 0 {
		t.Fatalf("new accounts start at zero points, got %d", created.LoyaltyPoints)
	}

	got, err := svc.Login(ctx, "abdullah@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("wrong account: %d", got.ID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewCustomerService(env.customers, zap.NewNop())

	if _, err := svc.Register(ctx, "Abdullah", "abdullah@example.com", "secret"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Login(ctx, "abdullah@example.com", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("wrong password: %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "secret"); err != ErrInvalidCredentials {
		t.Fatalf("unknown email: %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewCustomerService(env.customers, zap.NewNop())

	if _, err := svc.Register(ctx, "A", "taken@example.com", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, "B", "Taken@Example.com", "pw"); err != ErrEmailTaken {
		t.Fatalf("duplicate email: %v", err)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewCustomerService(env.customers, zap.NewNop())

	cases := []struct{ name, email, password string }{
		{"", "a@example.com", "pw"},
		{"A", "not-an-email", "pw"},
		{"A", "a@example.com", ""},
	}
	for _, tc := range cases {
		if _, err := svc.Register(ctx, tc.name, tc.email, tc.password); err != ErrInvalidInput {
			t.Fatalf("%+v: %v", tc, err)
		}
	}
}
