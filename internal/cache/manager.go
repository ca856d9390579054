// Package cache provides internal cache management.
// This package is internal and should not be imported by external projects.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/saleemjadallah/visualz-backend-sub003/internal/tlsutil"
)

// =============================================================================
// 💾 Redis 快照存储
// =============================================================================

// RedisStore keeps opaque snapshot blobs in Redis under a key prefix.
type RedisStore struct {
	redis  *redis.Client
	config Config
	logger *zap.Logger
	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// Config 缓存配置
type Config struct {
	// Redis 地址
	Addr string `yaml:"addr" json:"addr" env:"ADDR"`

	// 密码
	Password string `yaml:"password" json:"password" env:"PASSWORD"`

	// 数据库编号
	DB int `yaml:"db" json:"db" env:"DB"`

	// 键前缀
	KeyPrefix string `yaml:"key_prefix" json:"key_prefix" env:"KEY_PREFIX"`

	// 快照过期时间，0 表示永不过期
	SnapshotTTL time.Duration `yaml:"snapshot_ttl" json:"snapshot_ttl" env:"SNAPSHOT_TTL"`

	// 最大重试次数
	MaxRetries int `yaml:"max_retries" json:"max_retries" env:"MAX_RETRIES"`

	// 连接池大小
	PoolSize int `yaml:"pool_size" json:"pool_size" env:"POOL_SIZE"`

	// 最小空闲连接数
	MinIdleConns int `yaml:"min_idle_conns" json:"min_idle_conns" env:"MIN_IDLE_CONNS"`

	// 是否启用 TLS
	TLS bool `yaml:"tls" json:"tls" env:"TLS"`

	// 健康检查间隔
	HealthCheckInterval time.Duration `yaml:"health_check_interval" json:"health_check_interval" env:"HEALTH_CHECK_INTERVAL"`
}

// DefaultConfig 返回默认缓存配置
func DefaultConfig() Config {
	return Config{
		Addr:                "localhost:6379",
		Password:            "",
		DB:                  0,
		KeyPrefix:           "visualz:",
		SnapshotTTL:         0,
		MaxRetries:          3,
		PoolSize:            10,
		MinIdleConns:        2,
		HealthCheckInterval: 30 * time.Second,
	}
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(config Config, logger *zap.Logger) (*RedisStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		MaxRetries:   config.MaxRetries,
		PoolSize:     config.PoolSize,
		MinIdleConns: config.MinIdleConns,
		TLSConfig:    tlsutil.RedisConfig(config.TLS, config.Addr),
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	s := &RedisStore{
		redis:  client,
		config: config,
		logger: logger.With(zap.String("component", "snapshot_store")),
		done:   make(chan struct{}),
	}

	// 启动健康检查
	if config.HealthCheckInterval > 0 {
		go s.healthCheckLoop()
	}

	s.logger.Info("snapshot store initialized",
		zap.String("addr", config.Addr),
		zap.Int("pool_size", config.PoolSize),
		zap.Bool("tls", config.TLS),
	)

	return s, nil
}

// =============================================================================
// 🎯 核心方法
// =============================================================================

// Save stores data under key.
func (s *RedisStore) Save(ctx context.Context, key string, data []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrStoreClosed
	}

	if err := s.redis.Set(ctx, s.key(key), data, s.config.SnapshotTTL).Err(); err != nil {
		s.logger.Error("snapshot save failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("snapshot save failed: %w", err)
	}
	return nil
}

// Load returns the data stored under key, or ErrCacheMiss.
func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	val, err := s.redis.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		s.logger.Error("snapshot load failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("snapshot load failed: %w", err)
	}
	return val, nil
}

// Delete removes keys.
func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrStoreClosed
	}
	if len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	if err := s.redis.Del(ctx, full...).Err(); err != nil {
		s.logger.Error("snapshot delete failed", zap.Strings("keys", keys), zap.Error(err))
		return fmt.Errorf("snapshot delete failed: %w", err)
	}
	return nil
}

// Ping 检查 Redis 连接
func (s *RedisStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrStoreClosed
	}
	return s.redis.Ping(ctx).Err()
}

// Close 关闭存储
func (s *RedisStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	close(s.done)
	s.logger.Info("closing snapshot store")

	return s.redis.Close()
}

func (s *RedisStore) key(k string) string {
	return s.config.KeyPrefix + k
}

// =============================================================================
// 🏥 健康检查
// =============================================================================

func (s *RedisStore) healthCheckLoop() {
	ticker := time.NewTicker(s.config.HealthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.Ping(ctx); err != nil {
			s.logger.Error("snapshot store health check failed", zap.Error(err))
		} else {
			s.logger.Debug("snapshot store health check passed")
		}
		cancel()
	}
}

// =============================================================================
// 🔧 辅助函数
// =============================================================================

// ErrCacheMiss 缓存未命中错误
var ErrCacheMiss = errors.New("cache miss")

// ErrStoreClosed is returned by every operation after Close.
var ErrStoreClosed = errors.New("snapshot store is closed")

// IsCacheMiss 判断是否为缓存未命中错误
func IsCacheMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss)
}
