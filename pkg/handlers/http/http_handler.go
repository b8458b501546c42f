package http

import "github.com/gofiber/fiber/v2"

const ErrInvalidJsonPayload = "invalid JSON payload"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Moderation
	CheckContentHandler    Handler
	CensorContentHandler   Handler
	ModerateContentHandler Handler
	ModerationStatsHandler Handler

	// Spam
	SpamCheckHandler Handler

	// Lexicon
	CreateLexiconEntryHandler Handler
	ListLexiconEntriesHandler Handler
	GetLexiconEntryHandler    Handler
	UpdateLexiconEntryHandler Handler
	DeleteLexiconEntryHandler Handler
}
