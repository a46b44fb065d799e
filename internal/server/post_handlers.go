package server

import (
	"plume/internal/models"
	"plume/internal/service"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleCreatePost(c *fiber.Ctx) error {
	var input service.PostInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, models.NewBadRequestError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), viewerID(c), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": post.ID})
}

func (s *Server) handleGetPost(c *fiber.Ctx) error {
	view, err := s.postService.GetPost(c.UserContext(), c.Params("id"), viewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

func (s *Server) handleUpdatePost(c *fiber.Ctx) error {
	var input service.PostInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, models.NewBadRequestError("Invalid request body"))
	}

	if err := s.postService.UpdatePost(c.UserContext(), c.Params("id"), viewerID(c), input); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "updated"})
}

func (s *Server) handleDeletePost(c *fiber.Ctx) error {
	if err := s.postService.DeletePost(c.UserContext(), c.Params("id"), viewerID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

func (s *Server) handleFeed(c *fiber.Ctx) error {
	views, err := s.feedService.BuildFeed(c.UserContext(), viewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

func (s *Server) handleSearchPosts(c *fiber.Ctx) error {
	views, err := s.searchService.Search(c.UserContext(), c.Query("q"), viewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}
