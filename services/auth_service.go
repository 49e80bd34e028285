package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/localfixhq/localfix/config"
	"github.com/localfixhq/localfix/db"
	apiError "github.com/localfixhq/localfix/errors"
	"github.com/localfixhq/localfix/models"
	"github.com/localfixhq/localfix/services/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService interface
type AuthService interface {
	SignupUser(request *models.User) (*models.User, error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	LogoutUser(accessToken string) *apiError.Error
	GetUserProfile(userID uint) (*models.User, error)
	GetRoleByName(name string) (*models.Role, error)
}

// authService struct
type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
}

// NewAuthService instantiate an authService
func NewAuthService(authRepo db.AuthRepository, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
	}
}

func (s *authService) SignupUser(user *models.User) (*models.User, error) {
	if user == nil {
		log.Println("SignupUser error: user is nil")
		return nil, errors.New("user is nil")
	}

	if user.Email == "" {
		log.Println("SignupUser error: email is empty")
		return nil, errors.New("email is empty")
	}

	if err := models.ValidatePassword(user.Password); err != nil {
		return nil, err
	}

	if err := models.ValidateWhiteSpaces(user); err != nil {
		return nil, err
	}

	if err := s.authRepo.IsEmailExist(user.Email); err != nil {
		log.Printf("SignupUser error: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	user.HashedPassword = string(hashedPassword)
	user.Password = ""

	user, err = s.authRepo.CreateUser(user)
	if err != nil {
		log.Printf("SignupUser error creating user: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	createdUser, err := s.authRepo.FindUserByEmail(user.Email)
	if err != nil {
		log.Printf("SignupUser error fetching created user: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return createdUser, nil
}

// LoginUser logs in a user and returns the login response
func (a *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := a.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("invalid email or password", http.StatusUnprocessableEntity)
		}
		log.Printf("Error finding user by email: %v", err)
		return nil, apiError.New("invalid email or password", http.StatusUnprocessableEntity)
	}

	if err := foundUser.VerifyPassword(loginRequest.Password); err != nil {
		log.Printf("Invalid password for user %s", foundUser.Email)
		return nil, apiError.ErrInvalidPassword
	}

	if foundUser.RoleID == uuid.Nil {
		log.Printf("User %s does not have a role assigned", foundUser.Email)
		return nil, apiError.New("user role not assigned", http.StatusInternalServerError)
	}

	role, err := a.authRepo.FindRoleByID(foundUser.RoleID)
	if err != nil {
		log.Printf("Error fetching role for user %s: %v", foundUser.Email, err)
		return nil, apiError.New("unable to fetch role", http.StatusInternalServerError)
	}

	accessToken, err := jwt.GenerateToken(foundUser.Email, a.Config.JWTSecret, foundUser.ID, role.Name)
	if err != nil {
		log.Printf("Error generating token for user %s: %v", foundUser.Email, err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.LoginResponse{
		UserResponse: models.UserResponse{
			ID:       foundUser.ID,
			Fullname: foundUser.Fullname,
			Email:    foundUser.Email,
			RoleName: role.Name,
		},
		AccessToken: accessToken,
	}, nil
}

// LogoutUser invalidates the access token by blacklisting it.
func (a *authService) LogoutUser(accessToken string) *apiError.Error {
	if err := a.authRepo.AddToBlackList(&models.Blacklist{Token: accessToken}); err != nil {
		log.Printf("Error blacklisting token: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (a *authService) GetUserProfile(userID uint) (*models.User, error) {
	user, err := a.authRepo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetRoleByName retrieves a role from the repository by its name.
func (a *authService) GetRoleByName(name string) (*models.Role, error) {
	role, err := a.authRepo.FindRoleByName(name)
	if err != nil {
		return nil, err
	}
	return role, nil
}
