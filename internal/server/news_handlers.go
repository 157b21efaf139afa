package server

import (
	"pinboard/internal/models"
	"pinboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type actorBody struct {
	ID string `json:"id"`
}

// CreateNewsPost handles POST /news
func (s *Server) CreateNewsPost(c *fiber.Ctx) error {
	ctx := c.Context()

	var req service.CreateNewsPostInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	post, err := s.newsService.CreatePost(ctx, req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetNewsFeed handles GET /news
func (s *Server) GetNewsFeed(c *fiber.Ctx) error {
	ctx := c.Context()

	posts, err := s.newsService.ListFeed(ctx)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"latestNews": posts,
		"count":      len(posts),
	})
}

// GetMyNewsPosts handles GET /news/myPosts/:userId
func (s *Server) GetMyNewsPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := requireParam(c, "userId")
	if err != nil {
		return nil
	}

	var req actorBody
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	// The body identity must match the addressed user.
	if req.ID != userID {
		return models.RespondWithError(c,
			models.NewInvalidRequestError("body id does not match path userId"))
	}

	posts, err := s.newsService.ListForUser(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// DeleteNewsPost handles DELETE /news/:newsId
func (s *Server) DeleteNewsPost(c *fiber.Ctx) error {
	ctx := c.Context()
	newsID, err := requireParam(c, "newsId")
	if err != nil {
		return nil
	}

	var req actorBody
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	if err := s.newsService.DeletePost(ctx, newsID, req.ID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike handles POST /news/like/:newsId
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	return s.toggleEngagement(c, models.EngagementLike, "liked")
}

// ToggleFav handles POST /news/fav/:newsId
func (s *Server) ToggleFav(c *fiber.Ctx) error {
	return s.toggleEngagement(c, models.EngagementFav, "fav")
}

func (s *Server) toggleEngagement(c *fiber.Ctx, kind models.EngagementKind, field string) error {
	ctx := c.Context()
	newsID, err := requireParam(c, "newsId")
	if err != nil {
		return nil
	}

	var req actorBody
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	engaged, err := s.newsService.ToggleEngagement(ctx, kind, newsID, req.ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{field: engaged})
}

// GetLikedAndFavNews handles GET /news/likeandfavnews
func (s *Server) GetLikedAndFavNews(c *fiber.Ctx) error {
	ctx := c.Context()

	var req actorBody
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	feed, err := s.newsService.ListEngagement(ctx, req.ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(feed)
}

// DeleteAllNewsPosts handles DELETE /news (maintenance only)
func (s *Server) DeleteAllNewsPosts(c *fiber.Ctx) error {
	ctx := c.Context()

	deleted, err := s.newsService.DeleteAllPosts(ctx)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}
