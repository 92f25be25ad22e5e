package middleware

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"ordermgmt/internal/config"

	"github.com/gofiber/fiber/v2"
)

// BasicAuthRequired is a Fiber middleware enforcing HTTP Basic
// authentication against the fixed service credential. The health
// endpoint stays outside this middleware and remains open.
func BasicAuthRequired(cfg config.BasicAuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			c.Set("WWW-Authenticate", `Basic realm="Restricted"`)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Basic <base64(user:pass)>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Basic") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Basic <credentials>'",
			})
		}

		decoded, err := base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid basic auth encoding",
			})
		}

		username, password, ok := strings.Cut(string(decoded), ":")
		if !ok ||
			subtle.ConstantTimeCompare([]byte(username), []byte(cfg.Username)) != 1 ||
			subtle.ConstantTimeCompare([]byte(password), []byte(cfg.Password)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid credentials",
			})
		}

		return c.Next()
	}
}
