package router

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	handlers "github.com/postguard/postguard/pkg/handlers/http"
	"github.com/postguard/postguard/pkg/middleware"
)

var ErrMissingHandler = errors.New("handler transport is incomplete")

// Route group names as referenced by the rate limit configuration.
const (
	RouteModeration = "moderation"
	RouteSpam       = "spam"
	RouteLexicon    = "lexicon"
)

type apiRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    handlers.HandlerTransport
}

func NewAPIRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport handlers.HandlerTransport,
) ServerRouter {
	return &apiRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	if err := r.validate(); err != nil {
		return err
	}

	v1 := router.Group("/api/v1")
	{
		moderation := v1.Group("/moderation", r.middlewareTransport.RateLimit(RouteModeration))
		{
			moderation.Post("/check", r.handlerTransport.CheckContentHandler.Handle)
			moderation.Post("/censor", r.handlerTransport.CensorContentHandler.Handle)
			moderation.Post("/moderate", r.handlerTransport.ModerateContentHandler.Handle)
			moderation.Get("/stats", r.handlerTransport.ModerationStatsHandler.Handle)
		}

		spamGroup := v1.Group("/spam", r.middlewareTransport.RateLimit(RouteSpam))
		{
			spamGroup.Post("/check", r.handlerTransport.SpamCheckHandler.Handle)
		}

		lexicon := v1.Group("/lexicon", r.middlewareTransport.RateLimit(RouteLexicon))
		{
			lexicon.Post("/entries", r.handlerTransport.CreateLexiconEntryHandler.Handle)
			lexicon.Get("/entries", r.handlerTransport.ListLexiconEntriesHandler.Handle)
			lexicon.Get("/entries/:entry_id", r.handlerTransport.GetLexiconEntryHandler.Handle)
			lexicon.Put("/entries/:entry_id", r.handlerTransport.UpdateLexiconEntryHandler.Handle)
			lexicon.Delete("/entries/:entry_id", r.handlerTransport.DeleteLexiconEntryHandler.Handle)
		}
	}
	return nil
}

func (r *apiRouter) validate() error {
	required := []handlers.Handler{
		r.handlerTransport.CheckContentHandler,
		r.handlerTransport.CensorContentHandler,
		r.handlerTransport.ModerateContentHandler,
		r.handlerTransport.ModerationStatsHandler,
		r.handlerTransport.SpamCheckHandler,
		r.handlerTransport.CreateLexiconEntryHandler,
		r.handlerTransport.ListLexiconEntriesHandler,
		r.handlerTransport.GetLexiconEntryHandler,
		r.handlerTransport.UpdateLexiconEntryHandler,
		r.handlerTransport.DeleteLexiconEntryHandler,
	}
	for _, h := range required {
		if h == nil {
			return ErrMissingHandler
		}
	}
	return nil
}
