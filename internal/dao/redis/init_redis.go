// Package redis 提供 Redis 缓存操作的封装
// 使用 github.com/redis/go-redis/v9 作为底层客户端
package redis

import (
	"context"
	"strconv"
	"time"

	"share_party_server/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Init 初始化 Redis 连接并返回带 Worker Pool 的缓存服务
// 未配置 host 时退化为进程内缓存
func Init(conf *config.RedisConfig) (AsyncCacheService, error) {
	if conf.Host == "" {
		zap.L().Warn("未配置 Redis，使用进程内缓存")
		return NewMemoryCache(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         conf.Host + ":" + strconv.Itoa(conf.Port),
		Password:     conf.Password,
		DB:           conf.Db,
		PoolSize:     50,
		MinIdleConns: 10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	// 10 个 Worker，缓冲区 2000
	return NewRedisCache(client, 10, 2000), nil
}
