package db

import (
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/localfixhq/localfix/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AuthRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	IsEmailExist(email string) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	UpdateUser(user *models.User) error
	AddToBlackList(blacklist *models.Blacklist) error
	IsTokenInBlacklist(token string) bool
	FindRoleByID(roleID uuid.UUID) (*models.Role, error)
	FindRoleByName(name string) (*models.Role, error)
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}

	// New accounts default to the User role.
	if user.RoleID == uuid.Nil {
		var defaultRole models.Role
		if err := a.DB.Where("name = ?", models.RoleUser).First(&defaultRole).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				defaultRole = models.Role{
					ID:   uuid.New(),
					Name: models.RoleUser,
				}
				if err := a.DB.Create(&defaultRole).Error; err != nil {
					log.Printf("CreateUser error creating default role: %v", err)
					return nil, err
				}
			} else {
				log.Printf("CreateUser error fetching default role: %v", err)
				return nil, err
			}
		}
		user.RoleID = defaultRole.ID
	}

	result := a.DB.Create(user)
	if result.Error != nil {
		log.Printf("CreateUser error: %v", result.Error)
		return nil, result.Error
	}

	return user, nil
}

func (a *authRepo) IsEmailExist(email string) error {
	var count int64
	err := a.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("email already in use")
	}
	return nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := a.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	return &user, nil
}

func (a *authRepo) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := a.DB.Preload("Role").Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) UpdateUser(user *models.User) error {
	return a.DB.Save(user).Error
}

func (a *authRepo) AddToBlackList(blacklist *models.Blacklist) error {
	result := a.DB.Create(blacklist)
	return result.Error
}

func (a *authRepo) IsTokenInBlacklist(token string) bool {
	normalizedToken := strings.TrimSpace(token)

	var count int64
	a.DB.Model(&models.Blacklist{}).Where("token = ?", normalizedToken).Count(&count)
	return count > 0
}

func (a *authRepo) FindRoleByID(roleID uuid.UUID) (*models.Role, error) {
	var role models.Role
	if err := a.DB.Where("id = ?", roleID).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (a *authRepo) FindRoleByName(name string) (*models.Role, error) {
	var role models.Role
	if err := a.DB.Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("role not found")
		}
		return nil, err
	}
	return &role, nil
}
