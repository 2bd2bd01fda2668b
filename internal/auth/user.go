package auth

import "context"

// User is the authenticated principal carried through the request context.
// Permissions are "Module:Action" strings resolved at login time.
type User struct {
	ID          uint     `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

func (u *User) HasPermission(module, action string) bool {
	want := module + ":" + action
	for _, p := range u.Permissions {
		if p == want {
			return true
		}
	}
	return false
}

type ctxKey string

const contextUserKey ctxKey = "auth_user"

func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, contextUserKey, user)
}

func UserFromContext(ctx context.Context) (*User, bool) {
	if ctx == nil {
		return nil, false
	}
	user, ok := ctx.Value(contextUserKey).(*User)
	return user, ok
}
