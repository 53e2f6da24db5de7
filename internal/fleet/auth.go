package fleet

import (
	"context"
	"fmt"

	"github.com/nhle/fleet-maintenance/internal/model"
	"github.com/nhle/fleet-maintenance/internal/store"
)

// DefaultAdmin is the account seeded when no users blob exists.
var DefaultAdmin = model.User{
	ID:       "1",
	Email:    "admin@entnt.com",
	Password: "admin123",
	Name:     "Admin User",
	Role:     model.RoleAdmin,
}

// Auth checks credentials against the users blob and tracks the signed-in
// user. Passwords are compared in plaintext.
type Auth struct {
	kv store.KV
}

// NewAuth seeds the users blob with DefaultAdmin on first run.
func NewAuth(ctx context.Context, kv store.KV) (*Auth, error) {
	_, ok, err := store.LoadList[model.User](ctx, kv, store.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	if !ok {
		if err := store.SaveList(ctx, kv, store.KeyUsers, []model.User{DefaultAdmin}); err != nil {
			return nil, fmt.Errorf("seeding default admin: %w", err)
		}
	}
	return &Auth{kv: kv}, nil
}

// Users returns every stored account.
func (a *Auth) Users(ctx context.Context) ([]model.User, error) {
	users, _, err := store.LoadList[model.User](ctx, a.kv, store.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	return users, nil
}

// Login signs in the user matching email and password. Unknown credentials
// yield a nil user and a nil error.
func (a *Auth) Login(ctx context.Context, email, password string) (*model.User, error) {
	users, err := a.Users(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email && u.Password == password {
			if err := store.SaveValue(ctx, a.kv, store.KeyCurrentUser, u); err != nil {
				return nil, fmt.Errorf("saving session: %w", err)
			}
			return &u, nil
		}
	}
	return nil, nil
}

// Logout forgets the signed-in user.
func (a *Auth) Logout(ctx context.Context) error {
	if err := a.kv.Delete(ctx, store.KeyCurrentUser); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// CurrentUser returns the signed-in user, or nil when nobody is signed in.
func (a *Auth) CurrentUser(ctx context.Context) (*model.User, error) {
	var u model.User
	ok, err := store.LoadValue(ctx, a.kv, store.KeyCurrentUser, &u)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &u, nil
}
