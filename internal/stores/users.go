package stores

import (
	"errors"
	"strings"

	"github.com/lorecanvas/lorecanvas/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterUser creates a user with a bcrypt hash of the password. The
// plaintext is never stored. Duplicate emails are decided by the unique
// index, not by a racy pre-check.
func RegisterUser(conn *gorm.DB, name, email, password string) (*models.User, error) {
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}

	email = strings.ToLower(strings.TrimSpace(email))

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(passwordHash),
	}

	if err := conn.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return &user, nil
}

// AuthenticateUser checks credentials. Unknown email and wrong password are
// indistinguishable to the caller so that accounts cannot be enumerated.
func AuthenticateUser(conn *gorm.DB, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User

	if err := conn.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

func GetUser(conn *gorm.DB, userID uint) (*models.User, error) {
	var user models.User

	if err := conn.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}
