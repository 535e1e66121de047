// Package entities defines the domain entities for the users service.
package entities

import "strings"

// User представляет собой пользователя.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewUser создает пользователя. Email не проверяется.
func NewUser(id int, name, email string) *User {
	return &User{
		ID:    id,
		Name:  name,
		Email: email,
	}
}

// HasValidEmail сообщает, содержит ли email символы '@' и '.'.
func (u *User) HasValidEmail() bool {
	return strings.Contains(u.Email, "@") && strings.Contains(u.Email, ".")
}

// Equal сравнивает пользователей по имени и email, ID не учитывается.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.Name == other.Name && u.Email == other.Email
}
