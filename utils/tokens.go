package utils

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"

	"github.com/zafyhx/stayverse-project/models"
)

const (
	accessTokenLifetime  = time.Hour
	refreshTokenLifetime = 7 * 24 * time.Hour
)

var bgContext = context.Background()

// AccessToken is the claims payload of the bearer token. Role travels in
// the token so middleware can gate admin routes without a lookup, but
// identity is still re-loaded per request.
type AccessToken struct {
	ID   uint        `json:"ID"`
	Role models.Role `json:"role"`
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// TokenService signs access/refresh pairs and tracks refresh-token validity
// in a Redis allow-list so a consumed or revoked token cannot be replayed.
type TokenService struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewTokenService(db *gorm.DB, rdb *redis.Client) *TokenService {
	return &TokenService{DB: db, Redis: rdb}
}

func (s *TokenService) CreateTokenPair(id uint, role models.Role) (*jwt.TokenPair, error) {
	accessTokenSigner := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), accessTokenLifetime)
	refreshTokenSigner := jwt.NewSigner(jwt.HS256, os.Getenv("REFRESH_TOKEN_SECRET"), refreshTokenLifetime)

	accessToken, err := accessTokenSigner.Sign(AccessToken{ID: id, Role: role})
	if err != nil {
		return nil, err
	}

	userID := strconv.FormatUint(uint64(id), 10)
	refreshToken, err := refreshTokenSigner.Sign(jwt.Claims{Subject: userID})
	if err != nil {
		return nil, err
	}

	var tokenPair jwt.TokenPair
	tokenPair.AccessToken = accessToken
	tokenPair.RefreshToken = refreshToken

	s.Redis.Set(bgContext, string(refreshToken), "true", refreshTokenLifetime+5*time.Minute)

	return &tokenPair, nil
}

// Refresh exchanges a verified refresh token for a new pair. Tokens are
// single-use: the consumed one is removed from the allow-list first.
func (s *TokenService) Refresh(ctx iris.Context) {
	token := jwt.GetVerifiedToken(ctx)
	tokenStr := string(token.Token)

	validToken, tokenErr := s.Redis.Get(bgContext, tokenStr).Result()
	if tokenErr != nil {
		CreateNotFound(ctx)
		return
	}
	if validToken != "true" {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	s.Redis.Del(bgContext, tokenStr)

	userID, parseErr := strconv.ParseUint(token.StandardClaims.Subject, 10, 32)
	if parseErr != nil {
		CreateInternalServerError(ctx)
		return
	}

	// Re-load the role so a demoted admin does not keep minting admin tokens.
	var user models.User
	if err := s.DB.Select("id, role").First(&user, uint(userID)).Error; err != nil {
		CreateNotFound(ctx)
		return
	}

	tokenPair, tokenPairErr := s.CreateTokenPair(user.ID, user.Role)
	if tokenPairErr != nil {
		CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}
