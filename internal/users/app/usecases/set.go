package usecases

import "userapi/internal/users/ports/services"

// Set объединяет все сценарии сервиса.
type Set struct {
	CreateUser *CreateUser
	ReadUser   *ReadUser
	ReadUsers  *ReadUsers
	UpdateUser *UpdateUser
	DeleteUser *DeleteUser
	GetStatus  *GetStatus
}

// NewSet создает сценарии поверх сервисов.
func NewSet(users services.UserService, status services.StatusService) *Set {
	return &Set{
		CreateUser: NewCreateUser(users),
		ReadUser:   NewReadUser(users),
		ReadUsers:  NewReadUsers(users),
		UpdateUser: NewUpdateUser(users),
		DeleteUser: NewDeleteUser(users),
		GetStatus:  NewGetStatus(status),
	}
}
