package models

import (
	"errors"
	"fmt"

	goval "github.com/go-passwd/validator"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

// User represents a registered account. Reports only carry a denormalized
// copy of the user's name and email taken at submission time; they are never
// re-resolved against this table.
type User struct {
	Model
	Fullname       string    `json:"fullname" binding:"required,min=2" conform:"name"`
	Email          string    `json:"email" gorm:"unique;not null" binding:"required,email" conform:"email"`
	Password       string    `json:"password,omitempty" validate:"omitempty,min=6"`
	HashedPassword string    `json:"-"`
	IsEmailActive  bool      `json:"-"`
	AccessToken    string    `json:"-"`
	RoleID         uuid.UUID `gorm:"type:uuid" json:"role_id"`
	Role           Role      `gorm:"foreignKey:RoleID" json:"role"`
}

// SessionUser is the identity the submission workflow stamps onto new
// reports. A nil SessionUser means no session: reports are then attributed
// to the anonymous identity.
type SessionUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

const (
	AnonymousUserID   = "anonymous"
	AnonymousUserName = "Anonymous"
)

// Session returns the identity context for this account.
func (u *User) Session() *SessionUser {
	return &SessionUser{Name: u.Fullname, Email: u.Email}
}

// VerifyPassword verifies the collected password with the user's hashed password
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(15, errors.New("password cant be more than 15 characters")))
	return passwordValidator.Validate(password)
}

// ValidateWhiteSpaces normalizes string fields in place per their conform tags.
func ValidateWhiteSpaces(data interface{}) error {
	return conform.Strings(data)
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans) + "; ")
		errs = append(errs, translatedErr)
	}
	return errs
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	RoleName string `json:"role_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	UserResponse
	AccessToken string `json:"access_token"`
}

// Blacklist holds access tokens invalidated by logout.
type Blacklist struct {
	Model
	Token string `gorm:"index" json:"token"`
}
