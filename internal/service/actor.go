package service

import "github.com/YJ-0220/product-sub000/internal/model"

// Actor is the authenticated caller of a workflow operation.
type Actor struct {
	UserID int64
	Role   model.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

func requireAdmin(actor Actor) error {
	if !actor.IsAdmin() {
		return forbidden(ErrAdminOnly)
	}
	return nil
}
