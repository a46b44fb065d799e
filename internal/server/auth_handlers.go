package server

import (
	"strconv"
	"time"

	"plume/internal/models"
	"plume/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var input service.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, models.NewBadRequestError("Invalid request body"))
	}

	user, err := s.userService.Register(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var input service.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, models.NewBadRequestError("Invalid request body"))
	}

	user, err := s.userService.Login(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}

// handleCheckUsername powers live availability checks during registration.
func (s *Server) handleCheckUsername(c *fiber.Ctx) error {
	exists := s.userService.UsernameExists(c.UserContext(), c.Query("username"))
	return c.JSON(fiber.Map{"exists": exists})
}

func (s *Server) handleCheckEmail(c *fiber.Ctx) error {
	exists := s.userService.EmailExists(c.UserContext(), c.Query("email"))
	return c.JSON(fiber.Map{"exists": exists})
}

func (s *Server) generateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Issuer:    "plume-api",
		Audience:  jwt.ClaimStrings{"plume-client"},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
