package redis

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"study-notes-backend/internal/domain/model"
	"study-notes-backend/internal/usecase"
)

const subjectsKey = "catalog:subjects"

var _ usecase.CatalogCache = (*CatalogCache)(nil)

// CatalogCache stores the subject listing as a JSON blob. Cache failures are
// logged and treated as misses so the catalog keeps serving from Postgres.
type CatalogCache struct {
	client *Client
	log    *zerolog.Logger
}

func NewCatalogCache(client *Client, logger *zerolog.Logger) *CatalogCache {
	l := logger.With().Str("component", "CatalogCache").Logger()
	return &CatalogCache{client: client, log: &l}
}

func (c *CatalogCache) GetSubjects(ctx context.Context) ([]*model.Subject, bool) {
	raw, err := c.client.Get(ctx, subjectsKey)
	if err != nil {
		if !IsNil(err) {
			c.log.Warn().Err(err).Msg("catalog cache read failed")
		}
		return nil, false
	}
	var subjects []*model.Subject
	if err := json.Unmarshal([]byte(raw), &subjects); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache entry corrupt, dropping")
		_ = c.client.Del(ctx, subjectsKey)
		return nil, false
	}
	return subjects, true
}

func (c *CatalogCache) SetSubjects(ctx context.Context, subjects []*model.Subject) {
	raw, err := json.Marshal(subjects)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, subjectsKey, raw, c.client.ttl); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache write failed")
	}
}

func (c *CatalogCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, subjectsKey); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache invalidate failed")
	}
}
