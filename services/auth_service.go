package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eduleave-api/models"
	"eduleave-api/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterInput is the payload accepted by AuthService.Register.
type RegisterInput struct {
	Email        string
	Password     string
	Name         string
	Role         string
	DepartmentID *uint
	ClassID      *uint
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"` // seconds
	User      *models.User `json:"user"`
}

type AuthService struct {
	db     *gorm.DB
	tokens *TokenService
}

func NewAuthService(db *gorm.DB, tokens *TokenService) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

// HashPassword hashes password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares password with hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Register creates a user with a bcrypt-hashed password and returns its id.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (uint, error) {
	email := strings.ToLower(utils.SanitizeInput(in.Email))
	name := utils.SanitizeInput(in.Name)
	role := strings.ToLower(strings.TrimSpace(in.Role))

	switch {
	case email == "" || in.Password == "" || name == "" || role == "":
		return 0, validationf("email, password, name and role are required")
	case !utils.ValidateEmail(email):
		return 0, validationf("Invalid email address")
	case !models.IsValidRole(role):
		return 0, validationf("Invalid role")
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		Password:     hashed,
		Name:         name,
		Role:         role,
		DepartmentID: in.DepartmentID,
		ClassID:      in.ClassID,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrEmailTaken
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return user.ID, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if !CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(&user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:     token,
		ExpiresIn: int64(s.tokens.TTL() / time.Second),
		User:      &user,
	}, nil
}

// FindUser loads a user by id; missing users yield ErrNotFound.
func (s *AuthService) FindUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

// Profile returns the user joined with department and class names.
func (s *AuthService) Profile(ctx context.Context, id uint) (*models.UserView, error) {
	var rows []models.UserView
	err := s.db.WithContext(ctx).
		Table("users AS u").
		Select("u.*, d.name AS department_name, c.name AS class_name").
		Joins("LEFT JOIN departments d ON u.department_id = d.id").
		Joins("LEFT JOIN classes c ON u.class_id = c.id").
		Where("u.id = ?", id).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}
