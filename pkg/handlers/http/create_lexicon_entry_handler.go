package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	applexicon "github.com/postguard/postguard/pkg/app/lexicon"
	domain "github.com/postguard/postguard/pkg/domain/lexicon"
	"github.com/postguard/postguard/pkg/types"
)

type createLexiconEntryHandler struct {
	logger *logrus.Logger
	repo   domain.Repository
	finder applexicon.Finder
}

func NewCreateLexiconEntryHandler(
	logger *logrus.Logger,
	repo domain.Repository,
	finder applexicon.Finder,
) Handler {
	return &createLexiconEntryHandler{
		logger: logger,
		repo:   repo,
		finder: finder,
	}
}

func (s *createLexiconEntryHandler) Handle(c *fiber.Ctx) error {
	var req types.CreateLexiconEntryRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	now := time.Now()
	entry := &domain.Entry{
		ID:        uuid.New(),
		Term:      req.Term,
		IsPattern: req.IsPattern,
		Severity:  req.Severity,
		Category:  req.Category,
		Action:    req.Action,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := domain.Validate(entry); err != nil {
		s.logger.WithError(err).Error("failed to validate lexicon entry")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := s.repo.Create(c.Context(), entry); err != nil {
		s.logger.WithError(err).Error("failed to create lexicon entry")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create lexicon entry"})
	}

	s.finder.Invalidate(c.Context())

	return c.Status(fiber.StatusCreated).JSON(entry)
}
