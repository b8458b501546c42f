package http

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	domain "github.com/postguard/postguard/pkg/domain/moderation"
)

const (
	defaultStatsHours = 24
	maxStatsHours     = 24 * 30
	recentLogSample   = 200
	topTermCount      = 10
)

type moderationStatsHandler struct {
	logger *logrus.Logger
	logs   domain.Repository
}

func NewModerationStatsHandler(
	logger *logrus.Logger,
	logs domain.Repository,
) Handler {
	return &moderationStatsHandler{
		logger: logger,
		logs:   logs,
	}
}

type termCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

func (s *moderationStatsHandler) Handle(c *fiber.Ctx) error {
	hours := c.QueryInt("hours", defaultStatsHours)
	if hours <= 0 || hours > maxStatsHours {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "hours must be between 1 and 720"})
	}
	since := time.Now().Add(-time.Duration(hours) * time.Hour)

	actions := []domain.LogAction{
		domain.LogActionBlock,
		domain.LogActionAutoFlag,
		domain.LogActionManualFlag,
		domain.LogActionCensor,
		domain.LogActionApprove,
	}
	counts := make(map[string]int64, len(actions))
	for _, action := range actions {
		count, err := s.logs.CountByAction(c.Context(), action, since)
		if err != nil {
			s.logger.WithError(err).WithField("action", action).Error("failed to count moderation logs")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute moderation stats"})
		}
		counts[string(action)] = count
	}

	topTerms, err := s.topMatchedTerms(c)
	if err != nil {
		s.logger.WithError(err).Error("failed to list recent moderation logs")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute moderation stats"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"since":     since.Format(time.RFC3339),
		"actions":   counts,
		"top_terms": topTerms,
	})
}

// topMatchedTerms aggregates the most frequent matched terms over a bounded
// sample of the latest audit entries.
func (s *moderationStatsHandler) topMatchedTerms(c *fiber.Ctx) ([]termCount, error) {
	entries, err := s.logs.ListRecent(c.Context(), recentLogSample)
	if err != nil {
		return nil, err
	}

	frequencies := make(map[string]int)
	for _, entry := range entries {
		for _, term := range entry.MatchedTerms {
			frequencies[term]++
		}
	}

	terms := make([]termCount, 0, len(frequencies))
	for term, count := range frequencies {
		terms = append(terms, termCount{Term: term, Count: count})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Term < terms[j].Term
	})

	if len(terms) > topTermCount {
		terms = terms[:topTermCount]
	}
	return terms, nil
}
