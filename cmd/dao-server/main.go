package main

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/richardcmg7/dao-voting-platform/internal/handler"
	"github.com/richardcmg7/dao-voting-platform/internal/ledger"
	"github.com/richardcmg7/dao-voting-platform/internal/server"
	"github.com/richardcmg7/dao-voting-platform/internal/service"
	"github.com/richardcmg7/dao-voting-platform/internal/service/mq"
	"github.com/richardcmg7/dao-voting-platform/pkg/cache"
	"github.com/richardcmg7/dao-voting-platform/pkg/config"
	"github.com/richardcmg7/dao-voting-platform/pkg/database"
	"github.com/richardcmg7/dao-voting-platform/pkg/logger"
	"github.com/richardcmg7/dao-voting-platform/pkg/utils/lock"
)

// @title DAO Voting Platform API
// @version 1.0
// @description Gasless vote relay and proposal execution for the DAO treasury
// @BasePath /api/v1
func main() {
	// 0. 初始化 Config & Logger
	config.Init()
	logger.Init(config.Global.App.Env, config.Global.App.LogLevel)
	defer logger.Sync()

	ctx := context.Background()

	// 1. 可选 Redis: L2 cache, advisory locks, event streams
	var rdb *redis.Client
	if config.Global.Redis.Enabled {
		var err error
		rdb, err = database.ConnectRedis(ctx, config.Global.Redis.Addr, config.Global.Redis.Password, config.Global.Redis.DB)
		if err != nil {
			logger.Fatal("Redis 连接失败", zap.Error(err))
		}
		defer rdb.Close()
	}

	deps := service.Deps{Producer: newProducer(rdb)}
	defer deps.Producer.Close()
	if rdb != nil {
		// L1: Memory (TTL 1m), L2: Redis (TTL from Set)
		deps.Cache = cache.NewMultiLevelCache(cache.NewMemoryCache(time.Minute, 5*time.Minute), cache.NewRedisCache(rdb))
		deps.Lock = lock.NewRedisLock(rdb)
	}

	// 2. Ledger session. Nothing here touches the network; a missing credential or address only
	// disables the endpoints that need it.
	session, err := ledger.OpenSession(ctx, config.Global.Chain)
	if err != nil {
		logger.Fatal("ledger configuration invalid", zap.Error(err))
	}
	defer session.Close()
	if !session.CanRelay() {
		logger.Warn("Relayer not configured: set chain.relayer_private_key and chain.forwarder_address")
	}
	if !session.CanExecute() {
		logger.Warn("Daemon not configured: set chain.relayer_private_key and chain.dao_address")
	}
	if session.TimeMachine != nil {
		logger.Warn("auto_advance_time enabled: sweeps will move chain time forward (test networks only)")
	}

	// 3. Services
	relay := service.NewRelayService(session, deps)
	executor := service.NewExecutorService(session, deps)
	sweeper := service.NewSweeperService(session, deps)
	query := service.NewQueryService(session, deps)

	cronService := service.NewCronService(sweeper, deps.Lock, config.Global.Sweeper.Schedule, 0)
	if err := cronService.Start(); err != nil {
		logger.Fatal("invalid sweeper.schedule", zap.String("schedule", config.Global.Sweeper.Schedule), zap.Error(err))
	}

	// 4. HTTP
	r := server.NewHTTPRouter(handler.Handlers{
		Health:   handler.NewHealthHandler(session),
		Relay:    handler.NewRelayHandler(relay),
		Execute:  handler.NewExecuteHandler(executor, sweeper),
		Proposal: handler.NewProposalHandler(query),
	})

	app := server.New(server.Config{HttpPort: config.Global.App.HttpPort}, r)
	app.OnShutdown(cronService.Stop)
	app.Run()

	logger.Info("系统已退出")
}

func newProducer(rdb *redis.Client) mq.Producer {
	switch config.Global.MQ.Type {
	case "kafka":
		logger.Info("使用 Kafka 作为消息队列...", zap.Strings("brokers", config.Global.MQ.KafkaBrokers))
		return mq.NewKafkaProducer(config.Global.MQ.KafkaBrokers)
	case "redis":
		if rdb == nil {
			logger.Warn("mq.type is redis but redis.enabled is false, events disabled")
			return mq.NopProducer{}
		}
		logger.Info("使用 Redis Streams 作为消息队列...")
		return mq.NewRedisProducer(rdb, 10_000)
	default:
		return mq.NopProducer{}
	}
}
