package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/richardcmg7/dao-voting-platform/internal/ledger"
	"github.com/richardcmg7/dao-voting-platform/internal/service/mq"
	"github.com/richardcmg7/dao-voting-platform/pkg/cache"
	"github.com/richardcmg7/dao-voting-platform/pkg/logger"
	"github.com/richardcmg7/dao-voting-platform/pkg/monitor"
	"github.com/richardcmg7/dao-voting-platform/pkg/utils/lock"
)

const (
	delayCacheTTL  = 10 * time.Minute
	executeLockTTL = 2 * time.Minute
)

// Deps is the optional infrastructure shared by the services. Zero values fall back to
// in-process implementations.
type Deps struct {
	Cache    cache.Cache
	Lock     lock.DistributedLock
	Producer mq.Producer
}

func (d Deps) withDefaults() Deps {
	if d.Cache == nil {
		d.Cache = cache.NewMemoryCache(delayCacheTTL, 2*delayCacheTTL)
	}
	if d.Lock == nil {
		d.Lock = lock.NopLock{}
	}
	if d.Producer == nil {
		d.Producer = mq.NopProducer{}
	}
	return d
}

// executionDelay reads the ledger-wide EXECUTION_DELAY constant through the cache.
func executionDelay(ctx context.Context, c cache.Cache, dao ledger.DAO) (uint64, error) {
	key := fmt.Sprintf("dao:%s:execution_delay", dao.Address().Hex())

	var delay uint64
	if err := c.Get(ctx, key, &delay); err == nil {
		return delay, nil
	}
	delay, err := dao.ExecutionDelay(ctx)
	if err != nil {
		return 0, err
	}
	if err := c.Set(ctx, key, delay, delayCacheTTL); err != nil {
		logger.Debug("cache execution delay", zap.Error(err))
	}
	return delay, nil
}

// executeGuarded submits executeProposal while holding the per-proposal advisory lock.
// acquired is false when another executor holds it; nothing is submitted in that case.
// A lock backend failure does not block execution since the ledger rejects double execution anyway.
func executeGuarded(ctx context.Context, l lock.DistributedLock, dao ledger.DAO, id uint64) (receipt *ledger.Receipt, acquired bool, err error) {
	key := fmt.Sprintf("proposal:execute:%d", id)
	ok, lockErr := l.Acquire(ctx, key, executeLockTTL)
	switch {
	case lockErr != nil:
		logger.Warn("execution lock unavailable, proceeding without it", zap.Uint64("proposal_id", id), zap.Error(lockErr))
	case !ok:
		return nil, false, nil
	default:
		defer func() { _ = l.Release(context.WithoutCancel(ctx), key) }()
	}

	receipt, err = dao.ExecuteProposal(ctx, id)
	return receipt, true, err
}

// publish is best effort: the ledger is the source of truth, events only speed up refreshes.
func publish(ctx context.Context, p mq.Producer, topic, key string, v any) {
	payload, err := json.Marshal(v)
	if err == nil {
		err = p.Publish(ctx, topic, key, payload)
	}
	if err != nil {
		monitor.Business.EventPublishFailures.WithLabelValues(topic).Inc()
		logger.Warn("publish event", zap.String("topic", topic), zap.Error(err))
	}
}
