package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	domain "github.com/postguard/postguard/pkg/domain/lexicon"
)

type listLexiconEntriesHandler struct {
	logger *logrus.Logger
	repo   domain.Repository
}

func NewListLexiconEntriesHandler(
	logger *logrus.Logger,
	repo domain.Repository,
) Handler {
	return &listLexiconEntriesHandler{
		logger: logger,
		repo:   repo,
	}
}

func (s *listLexiconEntriesHandler) Handle(c *fiber.Ctx) error {
	var (
		entries []domain.Entry
		err     error
	)
	if c.QueryBool("active") {
		entries, err = s.repo.ListActive(c.Context())
	} else {
		entries, err = s.repo.List(c.Context())
	}
	if err != nil {
		s.logger.WithError(err).Error("failed to list lexicon entries")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list lexicon entries"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count":   len(entries),
		"entries": entries,
	})
}
