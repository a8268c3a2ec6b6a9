package domain

import "github.com/m04kA/venuebook/pkg/auth"

// Actor пользователь, от имени которого выполняется операция (из access-токена)
type Actor struct {
	UserID int64
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == auth.RoleAdmin
}

// CanActFor пользователь действует от своего имени или является администратором
func (a Actor) CanActFor(userID int64) bool {
	return a.UserID == userID || a.IsAdmin()
}
