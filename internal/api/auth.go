package api

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	secret   string
	login    string
	password string
}

func NewAuthHandler(secret, login, password string) *AuthHandler {
	return &AuthHandler{secret: secret, login: login, password: password}
}

// Login выдаёт Bearer-токен по сервисным учётным данным из конфигурации.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: "некорректное тело запроса"})
	}
	loginOK := subtle.ConstantTimeCompare([]byte(in.Login), []byte(h.login)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(in.Password), []byte(h.password)) == 1
	if !loginOK || !passOK {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "неверный логин или пароль"})
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": in.Login,
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(h.secret))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: "не удалось выдать токен"})
	}
	return c.JSON(LoginResponse{Token: signed})
}

// Me возвращает логин владельца токена.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"login": GetLogin(c)})
}

// AuthMiddleware проверяет Bearer-токен на защищённых маршрутах.
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Code: "MISSING_TOKEN", Message: "требуется заголовок Authorization"})
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Code: "INVALID_TOKEN", Message: "формат: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Code: "MISSING_TOKEN", Message: "пустой токен"})
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Code: "INVALID_TOKEN", Message: "токен недействителен или истёк"})
		}
		if sub, err := token.Claims.GetSubject(); err == nil {
			c.Locals(LocalLogin, sub)
		}
		return c.Next()
	}
}

const LocalLogin = "login"

// GetLogin — логин из токена после AuthMiddleware.
func GetLogin(c *fiber.Ctx) string {
	v := c.Locals(LocalLogin)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
