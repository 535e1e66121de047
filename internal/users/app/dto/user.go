// Package dto содержит входные и выходные структуры сценариев.
package dto

import "userapi/internal/users/domain/entities"

// CreateUserInput содержит данные для создания пользователя.
type CreateUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateUserInput содержит новые значения всех полей пользователя.
type UpdateUserInput struct {
	ID    int    `json:"-"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserIDInput адресует пользователя по ID.
type UserIDInput struct {
	ID int
}

// UserOutput представляет пользователя в ответе.
type UserOutput struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewUserOutput копирует поля пользователя.
func NewUserOutput(u *entities.User) UserOutput {
	return UserOutput{ID: u.ID, Name: u.Name, Email: u.Email}
}

// NewUserOutputs сохраняет порядок; пустой вход дает пустой, а не nil срез.
func NewUserOutputs(users []*entities.User) []UserOutput {
	out := make([]UserOutput, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserOutput(u))
	}
	return out
}
