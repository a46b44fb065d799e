package server

import (
	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleFollow(c *fiber.Ctx) error {
	if err := s.followService.Follow(c.UserContext(), viewerID(c), c.Params("username")); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "following"})
}

func (s *Server) handleUnfollow(c *fiber.Ctx) error {
	if err := s.followService.Unfollow(c.UserContext(), viewerID(c), c.Params("username")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "unfollowed"})
}
