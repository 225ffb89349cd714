// Package signals 从协作子系统的存储中聚合信用评分输入
package signals

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/wyfcoding/creatorcredit/internal/credit/domain"
)

// MySQLSource reads the raw scoring inputs from the collaborator
// subsystems' tables in the shared store. Those subsystems own the
// write paths; this adapter only aggregates.
type MySQLSource struct {
	db *gorm.DB
}

func NewMySQLSource(db *gorm.DB) domain.SignalSource {
	return &MySQLSource{db: db}
}

// CollectSignals runs the four independent lookups concurrently and
// joins the results. Missing analysis data defaults to zero scores.
func (s *MySQLSource) CollectSignals(ctx context.Context, userID string) (domain.Signals, error) {
	var (
		connections  int64
		followers    int64
		engagement   int
		consistency  int
		conversions  int64
		productCount int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		type connAgg struct {
			Count     int64
			Followers int64
		}
		var agg connAgg
		err := s.db.WithContext(gctx).
			Table("social_connections").
			Select("COUNT(*) AS count, COALESCE(SUM(followers), 0) AS followers").
			Where("user_id = ? AND status = ?", userID, "connected").
			Scan(&agg).Error
		if err != nil {
			return err
		}
		connections = agg.Count
		followers = agg.Followers
		return nil
	})

	g.Go(func() error {
		type summary struct {
			EngagementScore  int
			ConsistencyScore int
		}
		var row summary
		err := s.db.WithContext(gctx).
			Table("analysis_summaries").
			Select("engagement_score, consistency_score").
			Where("user_id = ?", userID).
			Take(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		engagement = row.EngagementScore
		consistency = row.ConsistencyScore
		return nil
	})

	g.Go(func() error {
		return s.db.WithContext(gctx).
			Table("analytics_events").
			Where("user_id = ? AND event_type = ?", userID, "conversion").
			Count(&conversions).Error
	})

	g.Go(func() error {
		return s.db.WithContext(gctx).
			Table("creator_products").
			Where("user_id = ?", userID).
			Count(&productCount).Error
	})

	if err := g.Wait(); err != nil {
		return domain.Signals{}, err
	}

	return domain.Signals{
		ConnectedPlatforms: int(connections),
		TotalFollowers:     followers,
		EngagementScore:    engagement,
		ConsistencyScore:   consistency,
		Conversions:        int(conversions),
		ProductsInShop:     int(productCount),
	}, nil
}
