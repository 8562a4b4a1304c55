package service

import (
	"strings"
	"time"

	"github.com/shupin-market/internal/config"
	"github.com/shupin-market/internal/constants"
	"github.com/shupin-market/internal/logger"
	"github.com/shupin-market/internal/models"
	"github.com/shupin-market/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserAuthService 用户认证服务
type UserAuthService struct {
	users       repository.UserRepository
	secret      []byte
	expireHours int
}

// NewUserAuthService 创建认证服务
func NewUserAuthService(users repository.UserRepository, cfg *config.JWTConfig) *UserAuthService {
	secret := "change-me-in-production"
	expireHours := 24
	if cfg != nil {
		if strings.TrimSpace(cfg.SecretKey) != "" {
			secret = cfg.SecretKey
		}
		if cfg.ExpireHours > 0 {
			expireHours = cfg.ExpireHours
		}
	}
	return &UserAuthService{
		users:       users,
		secret:      []byte(secret),
		expireHours: expireHours,
	}
}

// UserClaims 用户令牌声明
type UserClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RegisterInput 注册输入
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register 注册新用户
func (s *UserAuthService) Register(input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidCredentials
	}
	count, err := s.users.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: string(hash),
		Role:     constants.RoleUser,
	}
	if err := s.users.Create(&user); err != nil {
		return nil, err
	}
	logger.Infow("user_registered", "user_id", user.ID)
	return &user, nil
}

// Login 校验凭证并签发令牌
func (s *UserAuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ParseToken 解析并校验令牌
func (s *UserAuthService) ParseToken(tokenString string) (*UserClaims, error) {
	claims := &UserClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidCredentials
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

func (s *UserAuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := UserClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.expireHours) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
