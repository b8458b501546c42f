package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/postguard/postguard/pkg/domain"
	domainlexicon "github.com/postguard/postguard/pkg/domain/lexicon"
)

type getLexiconEntryHandler struct {
	logger *logrus.Logger
	repo   domainlexicon.Repository
}

func NewGetLexiconEntryHandler(
	logger *logrus.Logger,
	repo domainlexicon.Repository,
) Handler {
	return &getLexiconEntryHandler{
		logger: logger,
		repo:   repo,
	}
}

func (s *getLexiconEntryHandler) Handle(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("entry_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid entry_id"})
	}

	entry, err := s.repo.Get(c.Context(), entryID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "lexicon entry not found"})
		}
		s.logger.WithError(err).Error("failed to get lexicon entry")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get lexicon entry"})
	}

	return c.Status(fiber.StatusOK).JSON(entry)
}
