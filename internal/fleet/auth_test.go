package fleet_test

import (
	"context"
	"testing"

	"github.com/nhle/fleet-maintenance/internal/fleet"
	"github.com/nhle/fleet-maintenance/internal/model"
	"github.com/nhle/fleet-maintenance/internal/store"
)

func TestAuth_SeedsDefaultAdminOnce(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()

	a, err := fleet.NewAuth(ctx, kv)
	if err != nil {
		t.Fatalf("NewAuth() error = %v", err)
	}
	users, _ := a.Users(ctx)
	if len(users) != 1 || users[0] != fleet.DefaultAdmin {
		t.Fatalf("Users() = %+v, want default admin", users)
	}

	extra := append(users, model.User{ID: "2", Email: "eng@entnt.com", Password: "pw", Role: model.RoleEngineer})
	if err := store.SaveList(ctx, kv, store.KeyUsers, extra); err != nil {
		t.Fatal(err)
	}
	a, err = fleet.NewAuth(ctx, kv)
	if err != nil {
		t.Fatalf("NewAuth() second run error = %v", err)
	}
	users, _ = a.Users(ctx)
	if len(users) != 2 {
		t.Errorf("second NewAuth() reseeded users: %+v", users)
	}
}

func TestAuth_LoginLogout(t *testing.T) {
	ctx := context.Background()
	a, err := fleet.NewAuth(ctx, store.NewMemoryKV())
	if err != nil {
		t.Fatalf("NewAuth() error = %v", err)
	}

	u, err := a.Login(ctx, "admin@entnt.com", "wrong")
	if err != nil || u != nil {
		t.Fatalf("Login(bad) = %v, %v; want nil, nil", u, err)
	}
	if cur, _ := a.CurrentUser(ctx); cur != nil {
		t.Fatalf("CurrentUser() = %+v after failed login", cur)
	}

	u, err = a.Login(ctx, "admin@entnt.com", "admin123")
	if err != nil || u == nil {
		t.Fatalf("Login() = %v, %v", u, err)
	}
	if u.Role != model.RoleAdmin {
		t.Errorf("Role = %q, want admin", u.Role)
	}
	cur, err := a.CurrentUser(ctx)
	if err != nil || cur == nil || cur.ID != "1" {
		t.Fatalf("CurrentUser() = %+v, %v", cur, err)
	}

	if err := a.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if cur, _ := a.CurrentUser(ctx); cur != nil {
		t.Errorf("CurrentUser() = %+v after logout", cur)
	}
}
