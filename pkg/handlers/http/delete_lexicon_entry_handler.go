package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	applexicon "github.com/postguard/postguard/pkg/app/lexicon"
	"github.com/postguard/postguard/pkg/domain"
	domainlexicon "github.com/postguard/postguard/pkg/domain/lexicon"
)

type deleteLexiconEntryHandler struct {
	logger *logrus.Logger
	repo   domainlexicon.Repository
	finder applexicon.Finder
}

func NewDeleteLexiconEntryHandler(
	logger *logrus.Logger,
	repo domainlexicon.Repository,
	finder applexicon.Finder,
) Handler {
	return &deleteLexiconEntryHandler{
		logger: logger,
		repo:   repo,
		finder: finder,
	}
}

func (s *deleteLexiconEntryHandler) Handle(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("entry_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid entry_id"})
	}

	if err := s.repo.Delete(c.Context(), entryID); err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "lexicon entry not found"})
		}
		s.logger.WithError(err).Error("failed to delete lexicon entry")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete lexicon entry"})
	}

	s.finder.Invalidate(c.Context())

	return c.SendStatus(http.StatusNoContent)
}
