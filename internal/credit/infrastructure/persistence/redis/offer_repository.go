// Package redis 提供贷款产品目录的 Redis 读穿缓存
package redis

import (
	"context"
	"time"

	"github.com/wyfcoding/creatorcredit/internal/credit/domain"
	"github.com/wyfcoding/creatorcredit/pkg/cache"
	"github.com/wyfcoding/creatorcredit/pkg/logger"
)

const (
	offerCatalogKey = "credit:loan_offers"
	offerCatalogTTL = 5 * time.Minute
)

// CachedOfferRepo decorates an offer repository with a short-TTL redis
// cache for the full catalog. Cache failures fall back to the inner
// repository; the catalog is small and partner-maintained, so staleness
// within the TTL is acceptable.
type CachedOfferRepo struct {
	inner domain.OfferRepository
	cache *cache.RedisCache
}

func NewCachedOfferRepo(inner domain.OfferRepository, cache *cache.RedisCache) domain.OfferRepository {
	return &CachedOfferRepo{inner: inner, cache: cache}
}

func (r *CachedOfferRepo) List(ctx context.Context) ([]domain.LoanOffer, error) {
	var cached []domain.LoanOffer
	hit, err := r.cache.GetJSON(ctx, offerCatalogKey, &cached)
	if err == nil && hit {
		return cached, nil
	}
	if err != nil {
		logger.Warn(ctx, "offer catalog cache read failed, falling back to database", "error", err)
	}

	offers, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.cache.SetJSON(ctx, offerCatalogKey, offers, offerCatalogTTL); err != nil {
		logger.Warn(ctx, "offer catalog cache write failed", "error", err)
	}
	return offers, nil
}

func (r *CachedOfferRepo) FindByID(ctx context.Context, id string) (*domain.LoanOffer, error) {
	offers, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range offers {
		if offers[i].ID == id {
			return &offers[i], nil
		}
	}
	return nil, nil
}
