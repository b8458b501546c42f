package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	applexicon "github.com/postguard/postguard/pkg/app/lexicon"
	"github.com/postguard/postguard/pkg/domain"
	domainlexicon "github.com/postguard/postguard/pkg/domain/lexicon"
	"github.com/postguard/postguard/pkg/types"
)

type updateLexiconEntryHandler struct {
	logger *logrus.Logger
	repo   domainlexicon.Repository
	finder applexicon.Finder
}

func NewUpdateLexiconEntryHandler(
	logger *logrus.Logger,
	repo domainlexicon.Repository,
	finder applexicon.Finder,
) Handler {
	return &updateLexiconEntryHandler{
		logger: logger,
		repo:   repo,
		finder: finder,
	}
}

func (s *updateLexiconEntryHandler) Handle(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("entry_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid entry_id"})
	}

	var req types.UpdateLexiconEntryRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	entry, err := s.repo.Get(c.Context(), entryID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "lexicon entry not found"})
		}
		s.logger.WithError(err).Error("failed to get lexicon entry")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get lexicon entry"})
	}

	applyUpdate(entry, &req)
	entry.UpdatedAt = time.Now()

	if err := domainlexicon.Validate(entry); err != nil {
		s.logger.WithError(err).Error("failed to validate lexicon entry")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := s.repo.Update(c.Context(), entry); err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "lexicon entry not found"})
		}
		s.logger.WithError(err).Error("failed to update lexicon entry")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update lexicon entry"})
	}

	s.finder.Invalidate(c.Context())

	return c.Status(fiber.StatusOK).JSON(entry)
}

func applyUpdate(entry *domainlexicon.Entry, req *types.UpdateLexiconEntryRequest) {
	if req.Term != nil {
		entry.Term = *req.Term
	}
	if req.IsPattern != nil {
		entry.IsPattern = *req.IsPattern
	}
	if req.Severity != nil {
		entry.Severity = *req.Severity
	}
	if req.Category != nil {
		entry.Category = *req.Category
	}
	if req.Action != nil {
		entry.Action = *req.Action
	}
	if req.Active != nil {
		entry.Active = *req.Active
	}
}
