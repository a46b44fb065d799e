package server

import (
	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleGetProfile(c *fiber.Ctx) error {
	profile, err := s.userService.GetProfile(c.UserContext(), c.Params("username"), viewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

func (s *Server) handleGetProfilePosts(c *fiber.Ctx) error {
	views, err := s.postService.GetPostsByUsername(c.UserContext(), c.Params("username"), viewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

func (s *Server) handleGetFollowers(c *fiber.Ctx) error {
	users, err := s.followService.GetFollowers(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

func (s *Server) handleGetFollowing(c *fiber.Ctx) error {
	users, err := s.followService.GetFollowing(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}
