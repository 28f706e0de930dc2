package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/linkkeeper/internal/client/client"
	"github.com/dmitrijs2005/linkkeeper/internal/logging"
)

// Resolver maps a short slug to its destination URL.
type Resolver interface {
	Resolve(ctx context.Context, slug string) (string, error)
}

type resolver struct {
	api client.LinksAPI
	log logging.Logger
}

func NewResolver(api client.LinksAPI, log logging.Logger) Resolver {
	if log == nil {
		log = logging.Nop()
	}
	return &resolver{api: api, log: log.With("component", "resolver")}
}

// Resolve returns the full URL for slug. Missing, forbidden and failed
// lookups all come back as ErrSlugNotFound; the cause is logged.
func (r *resolver) Resolve(ctx context.Context, slug string) (string, error) {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" {
		return "", notFound()
	}

	link, err := r.api.ResolveShortURL(ctx, slug)
	if err != nil {
		r.log.Debug(ctx, "slug lookup failed", "slug", slug, "status", client.StatusOf(err), "err", err)
		return "", notFound()
	}
	return link.Full, nil
}

func notFound() *Error {
	return &Error{Kind: KindFetchFailed, Message: "Short URL not found.", Err: ErrSlugNotFound}
}
