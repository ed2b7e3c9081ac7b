package middleware

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pulse/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

var (
	cfg *config.Config
	rdb *redis.Client
)

// InitMiddleware initializes authentication middleware with the given config
// and Redis client. The Redis client may be nil, in which case token
// revocation checks are skipped.
func InitMiddleware(c *config.Config, r *redis.Client) {
	cfg = c
	rdb = r
}

// BlacklistKey returns the Redis key used to mark a token ID as revoked.
func BlacklistKey(jti string) string {
	return fmt.Sprintf("jwt:blacklist:%s", jti)
}

// AuthRequired is a middleware that enforces authentication for protected routes.
func AuthRequired(c *fiber.Ctx) error {
	userID, jti, expiresAt, err := parseBearerToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// Tokens revoked by logout are rejected until they expire
	if rdb != nil && jti != "" {
		exists, redisErr := rdb.Exists(context.Background(), BlacklistKey(jti)).Result()
		if redisErr != nil {
			RedisErrors.WithLabelValues("exists").Inc()
			Logger.Warn("token revocation check failed", "error", redisErr)
		} else if exists > 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token has been revoked",
			})
		}
	}

	c.Locals("userID", userID)
	c.Locals("jti", jti)
	c.Locals("tokenExpiresAt", expiresAt)

	return c.Next()
}

// OptionalAuth populates userID in locals when a valid token is present but
// never rejects the request. Anonymous callers proceed without identity.
func OptionalAuth(c *fiber.Ctx) error {
	if c.Get("Authorization") == "" {
		return c.Next()
	}
	userID, jti, _, err := parseBearerToken(c)
	if err != nil {
		return c.Next()
	}
	c.Locals("userID", userID)
	c.Locals("jti", jti)
	return c.Next()
}

func parseBearerToken(c *fiber.Ctx) (uint, string, time.Time, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, "", time.Time{}, fmt.Errorf("Authorization header required")
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, "", time.Time{}, fmt.Errorf("Invalid authorization header format")
	}

	tokenString := parts[1]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithIssuer("pulse-api"), jwt.WithAudience("pulse-client"))

	if err != nil || !token.Valid {
		return 0, "", time.Time{}, fmt.Errorf("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", time.Time{}, fmt.Errorf("Invalid token claims")
	}

	// User ID lives in the "sub" claim (subject claim per RFC 7519)
	subClaim, ok := claims["sub"]
	if !ok {
		return 0, "", time.Time{}, fmt.Errorf("Invalid token structure - missing subject")
	}

	subStr, ok := subClaim.(string)
	if !ok {
		return 0, "", time.Time{}, fmt.Errorf("Invalid token subject type")
	}

	userIDVal, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, "", time.Time{}, fmt.Errorf("Invalid user ID in token")
	}

	jti, _ := claims["jti"].(string)

	var expiresAt time.Time
	if exp, expErr := claims.GetExpirationTime(); expErr == nil && exp != nil {
		expiresAt = exp.Time
	}

	return uint(userIDVal), jti, expiresAt, nil
}
