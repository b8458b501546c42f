package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/postguard/postguard/pkg/common"
	"github.com/postguard/postguard/pkg/config"
	domain "github.com/postguard/postguard/pkg/domain/post"
	"github.com/postguard/postguard/pkg/spam"
	"github.com/postguard/postguard/pkg/types"
)

type spamCheckHandler struct {
	logger   *logrus.Logger
	detector *spam.Detector
	posts    domain.Repository
	cfg      *config.Config
}

func NewSpamCheckHandler(
	logger *logrus.Logger,
	detector *spam.Detector,
	posts domain.Repository,
	cfg *config.Config,
) Handler {
	return &spamCheckHandler{
		logger:   logger,
		detector: detector,
		posts:    posts,
		cfg:      cfg,
	}
}

func (s *spamCheckHandler) Handle(c *fiber.Ctx) error {
	var req types.SpamCheckRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "content is required"})
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}

	window := common.DefaultDuplicateWindow
	if s.cfg.Moderation.DuplicateWindowMinutes > 0 {
		window = time.Duration(s.cfg.Moderation.DuplicateWindowMinutes) * time.Minute
	}

	result := s.detector.ComprehensiveCheck(spam.ComprehensiveParams{
		Content:           req.Content,
		UserID:            req.UserID,
		RecentPosts:       s.recentPosts(c, req.UserID, window),
		DuplicateWindow:   window,
		MaxPostsPerMinute: s.cfg.Moderation.MaxPostsPerMinute,
	})

	return c.Status(fiber.StatusOK).JSON(result)
}

// recentPosts fails open: when the post history cannot be read, the detector
// runs with the content heuristics only.
func (s *spamCheckHandler) recentPosts(c *fiber.Ctx, userID string, window time.Duration) []types.RecentPost {
	since := time.Now().Add(-window)
	posts, err := s.posts.ListRecentByAuthor(c.Context(), userID, since)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to list recent posts")
		return nil
	}

	recent := make([]types.RecentPost, 0, len(posts))
	for _, p := range posts {
		recent = append(recent, types.RecentPost{
			Content:   p.Content,
			CreatedAt: p.CreatedAt,
		})
	}
	return recent
}
