package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/lifetrack/internal/logger"
)

const ctxUserID = "user_id"

var ErrLoginDisabled = errors.New("API login is not configured")

type loginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// HashPassword returns the bcrypt hash stored for API login.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Server) issueToken(now time.Time) (string, time.Time, error) {
	exp := now.Add(s.cfg.TokenTTL)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": s.cfg.UserID,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}).SignedString(s.cfg.JWTSecret)
	return token, exp, err
}

func (s *Server) login(c *gin.Context) {
	if len(s.cfg.PasswordHash) == 0 || len(s.cfg.JWTSecret) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": ErrLoginDisabled.Error()})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.UserID != "" && req.UserID != s.cfg.UserID {
		logger.Warn("API login failed", "user", req.UserID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if bcrypt.CompareHashAndPassword(s.cfg.PasswordHash, []byte(req.Password)) != nil {
		logger.Warn("API login failed", "user", s.cfg.UserID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, exp, err := s.issueToken(time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("API login", "user", s.cfg.UserID)
	c.JSON(http.StatusOK, loginResponse{Token: token, ExpiresAt: exp})
}

// jwtAuth accepts HS256 bearer tokens whose uid claim is the configured user. Tokens with
// less than a day left get a fresh one in X-New-Token.
func (s *Server) jwtAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || len(s.cfg.JWTSecret) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), claims, func(t *jwt.Token) (interface{}, error) {
			return s.cfg.JWTSecret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		uid, _ := claims["uid"].(string)
		if uid != s.cfg.UserID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(ctxUserID, uid)

		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && time.Until(exp.Time) < 24*time.Hour {
			if fresh, _, err := s.issueToken(time.Now()); err == nil {
				c.Header("X-New-Token", fresh)
			}
		}
		c.Next()
	}
}
