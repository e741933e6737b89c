package middleware

import (
	"fmt"
	"strings"
	"time"

	"cyberlearn/config"
	"cyberlearn/gating"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT generates a JWT token for the user. The identity provider is
// external to this service; this helper exists for tooling and tests.
func GenerateJWT(userID uint, name, role string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"name":   name,
		"role":   role,
		"iat":    time.Now().Unix(),                     // issued at
		"exp":    time.Now().Add(24 * time.Hour).Unix(), // expiry 24h
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// JWTMiddleware requires a valid bearer token and stores userId and role in
// the request context.
func JWTMiddleware(c *fiber.Ctx) error {
	userID, role, err := parseBearer(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": err.Error(),
		})
	}

	c.Locals("userId", userID)
	c.Locals("role", role)

	return c.Next()
}

// OptionalJWT extracts identity when a valid token is present and otherwise
// continues as an anonymous caller with role "user". Read surfaces use this:
// a missing session gates exactly like a signed-in non-admin.
func OptionalJWT(c *fiber.Ctx) error {
	userID, role, err := parseBearer(c)
	if err != nil {
		c.Locals("userId", uint(0))
		c.Locals("role", gating.RoleUser)
		return c.Next()
	}

	c.Locals("userId", userID)
	c.Locals("role", role)

	return c.Next()
}

func parseBearer(c *fiber.Ctx) (uint, string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, "", fmt.Errorf("Missing or invalid Authorization header")
	}

	// The token should be prefixed with "Bearer "
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return 0, "", fmt.Errorf("Invalid Authorization header format")
	}

	tokenString := authHeader[len("Bearer "):]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		jwtSecret := []byte(config.AppConfig.JWTKey)
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", fmt.Errorf("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return 0, "", fmt.Errorf("Invalid token payload")
	}

	userID, ok := claims["userId"].(float64) // JWT numbers decode as float64
	if !ok {
		return 0, "", fmt.Errorf("Invalid token payload")
	}

	role := gating.RoleUser
	if r, ok := claims["role"].(string); ok && r != "" {
		role = r
	}

	return uint(userID), role, nil
}

// RoleFromCtx returns the caller's role, defaulting to "user".
func RoleFromCtx(c *fiber.Ctx) string {
	if role, ok := c.Locals("role").(string); ok && role != "" {
		return role
	}
	return gating.RoleUser
}

// UserIDFromCtx returns the caller's user id, 0 for anonymous callers.
func UserIDFromCtx(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userId").(uint); ok {
		return id
	}
	return 0
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
