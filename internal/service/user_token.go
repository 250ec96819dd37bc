package service

import (
	"fmt"
	"time"

	"github.com/ebookstore-next/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 24 * time.Hour

// UserJWTClaims 用户令牌声明，角色仅供客户端展示，鉴权以数据库为准
type UserJWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (s *UserAuthService) tokenTTL() time.Duration {
	if s.cfg.JWT.ExpireHours <= 0 {
		return defaultTokenTTL
	}
	return time.Duration(s.cfg.JWT.ExpireHours) * time.Hour
}

// GenerateUserJWT 签发 HS256 令牌
func (s *UserAuthService) GenerateUserJWT(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, UserJWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign user token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseUserJWT 只接受 HS256，缺少 user_id 视为无效
func (s *UserAuthService) ParseUserJWT(raw string) (*UserJWTClaims, error) {
	claims := &UserJWTClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
