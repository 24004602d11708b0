package services

import (
	"errors"
	"strings"
	"time"

	"github.com/HarshitaThota/Flow-State/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrInvalidEmail         = errors.New("invalid email")
	ErrCurrentPasswordWrong = errors.New("invalid current password")
	ErrPasswordUnchanged    = errors.New("new password must differ")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error
}

type AuthService struct {
	users AuthUserRepository
	cost  int
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users, cost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost, mostly to keep tests fast.
func (service *AuthService) WithHashCost(cost int) *AuthService {
	service.cost = cost
	return service
}

func (service *AuthService) Register(emailRaw string, password string, name string, now time.Time) (models.User, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.User{}, ErrInvalidEmail
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}
	trimmedName := strings.TrimSpace(name)
	if len([]rune(trimmedName)) > maxProfileNameLength {
		return models.User{}, ErrProfileNameTooLong
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrEmailAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), service.cost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		Name:         trimmedName,
		CycleLength:  models.DefaultCycleLength,
		PeriodLength: models.DefaultPeriodLength,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, ErrEmailAlreadyExists
	}
	return user, nil
}

// Authenticate returns ErrAuthCredentialsInvalid for unknown emails and
// wrong passwords alike.
func (service *AuthService) Authenticate(emailRaw string, password string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, password)
	if err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return models.User{}, ErrAuthCredentialsInvalid
		}
		return models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return user, nil
}

func (service *AuthService) ChangePassword(userID uint, currentPassword string, newPassword string) error {
	user, err := service.FindByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrCurrentPasswordWrong
	}
	if currentPassword == newPassword {
		return ErrPasswordUnchanged
	}
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), service.cost)
	if err != nil {
		return err
	}
	return service.users.UpdatePassword(userID, string(passwordHash), false)
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, notFound(err)
	}
	return user, nil
}
