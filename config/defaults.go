// =============================================================================
// 📦 Visualz 默认配置
// =============================================================================
// 提供所有配置项的合理默认值
// =============================================================================
package config

import "time"

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		AI:         DefaultAIConfig(),
		Generation: DefaultGenerationConfig(),
		Monitor:    DefaultMonitorConfig(),
		Redis:      DefaultRedisConfig(),
		Log:        DefaultLogConfig(),
		Metrics:    DefaultMetricsConfig(),
		Telemetry:  DefaultTelemetryConfig(),
	}
}

// DefaultAIConfig 返回默认 AI 配置
func DefaultAIConfig() AIConfig {
	return AIConfig{
		Enabled:     false,
		BaseURL:     "https://api.openai.com",
		Model:       "gpt-4o-mini",
		Temperature: 0.3,
		MaxTokens:   2000,
		Timeout:     30 * time.Second,
		RateLimit:   2,
		RateBurst:   4,
	}
}

// DefaultGenerationConfig 返回默认生成配置
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		MaxPiecesPerRequest: 50,
		Concurrency:         8,
		CacheSize:           1000,
		CacheTTL:            0,
		MaterialCacheSize:   256,
	}
}

// DefaultMonitorConfig 返回默认监控配置
func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		HistorySize:       1000,
		MaxGenerationTime: time.Second,
		MaxPolygons:       50000,
		MaxMemoryBytes:    10_000_000,
		ReportEnabled:     false,
		ReportSchedule:    "@every 5m",
		SnapshotKey:       "monitor:snapshot",
	}
}

// DefaultRedisConfig 返回默认 Redis 配置
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Enabled:             false,
		Addr:                "localhost:6379",
		Password:            "",
		DB:                  0,
		KeyPrefix:           "visualz:",
		PoolSize:            10,
		MinIdleConns:        2,
		MaxRetries:          3,
		HealthCheckInterval: 30 * time.Second,
	}
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:            "info",
		Format:           "json",
		OutputPaths:      []string{"stdout"},
		EnableCaller:     true,
		EnableStacktrace: false,
	}
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   true,
		Namespace: "visualz",
	}
}

// DefaultTelemetryConfig 返回默认遥测配置
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Enabled:     false,
		ServiceName: "visualz-pipeline",
		SampleRate:  0.1,
	}
}
