// =============================================================================
// 📦 Visualz 配置加载器
// =============================================================================
// 统一配置加载，支持 YAML 文件 + 环境变量覆盖
//
// 使用方法:
//
//	cfg, err := config.NewLoader().
//	    WithConfigPath("config.yaml").
//	    WithEnvPrefix("VISUALZ").
//	    Load()
//
// 配置优先级: 默认值 → YAML 文件 → 环境变量
// =============================================================================
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/saleemjadallah/visualz-backend-sub003/types"
)

// =============================================================================
// 🎯 核心配置结构
// =============================================================================

// Config 是生成管线的完整配置结构
type Config struct {
	// AI 分析器配置
	AI AIConfig `yaml:"ai" env:"AI"`

	// Generation 生成与缓存配置
	Generation GenerationConfig `yaml:"generation" env:"GENERATION"`

	// Monitor 性能监控配置
	Monitor MonitorConfig `yaml:"monitor" env:"MONITOR"`

	// Redis 快照存储配置
	Redis RedisConfig `yaml:"redis" env:"REDIS"`

	// Log 日志配置
	Log LogConfig `yaml:"log" env:"LOG"`

	// Metrics 指标配置
	Metrics MetricsConfig `yaml:"metrics" env:"METRICS"`

	// Telemetry 遥测配置
	Telemetry TelemetryConfig `yaml:"telemetry" env:"TELEMETRY"`
}

// AIConfig AI 调用配置
type AIConfig struct {
	// 是否启用 AI 调用，关闭时始终使用规则降级
	Enabled bool `yaml:"enabled" env:"ENABLED"`
	// API Key
	APIKey string `yaml:"api_key" env:"API_KEY"`
	// 基础 URL（OpenAI 兼容接口）
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
	// 模型名称
	Model string `yaml:"model" env:"MODEL"`
	// 温度参数
	Temperature float64 `yaml:"temperature" env:"TEMPERATURE"`
	// 最大 Token 数
	MaxTokens int `yaml:"max_tokens" env:"MAX_TOKENS"`
	// 单次调用超时
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
	// 每秒请求数，0 表示不限流
	RateLimit float64 `yaml:"rate_limit" env:"RATE_LIMIT"`
	// 限流突发量
	RateBurst int `yaml:"rate_burst" env:"RATE_BURST"`
}

// GenerationConfig 生成配置
type GenerationConfig struct {
	// 单次请求最多生成的件数
	MaxPiecesPerRequest int `yaml:"max_pieces_per_request" env:"MAX_PIECES_PER_REQUEST"`
	// 并发生成数
	Concurrency int `yaml:"concurrency" env:"CONCURRENCY"`
	// 结果缓存容量
	CacheSize int `yaml:"cache_size" env:"CACHE_SIZE"`
	// 结果缓存 TTL，0 表示不过期
	CacheTTL time.Duration `yaml:"cache_ttl" env:"CACHE_TTL"`
	// 材料缓存容量
	MaterialCacheSize int `yaml:"material_cache_size" env:"MATERIAL_CACHE_SIZE"`
}

// MonitorConfig 性能监控配置
type MonitorConfig struct {
	// 每个 key 保留的样本数
	HistorySize int `yaml:"history_size" env:"HISTORY_SIZE"`
	// 生成耗时阈值
	MaxGenerationTime time.Duration `yaml:"max_generation_time" env:"MAX_GENERATION_TIME"`
	// 多边形数阈值
	MaxPolygons int `yaml:"max_polygons" env:"MAX_POLYGONS"`
	// 内存阈值（字节）
	MaxMemoryBytes int64 `yaml:"max_memory_bytes" env:"MAX_MEMORY_BYTES"`
	// 是否启用周期报告
	ReportEnabled bool `yaml:"report_enabled" env:"REPORT_ENABLED"`
	// 周期报告的 cron 表达式
	ReportSchedule string `yaml:"report_schedule" env:"REPORT_SCHEDULE"`
	// 快照键
	SnapshotKey string `yaml:"snapshot_key" env:"SNAPSHOT_KEY"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	// 是否启用快照存储
	Enabled bool `yaml:"enabled" env:"ENABLED"`
	// 地址
	Addr string `yaml:"addr" env:"ADDR"`
	// 密码
	Password string `yaml:"password" env:"PASSWORD"`
	// 数据库编号
	DB int `yaml:"db" env:"DB"`
	// 键前缀
	KeyPrefix string `yaml:"key_prefix" env:"KEY_PREFIX"`
	// 快照过期时间
	SnapshotTTL time.Duration `yaml:"snapshot_ttl" env:"SNAPSHOT_TTL"`
	// 连接池大小
	PoolSize int `yaml:"pool_size" env:"POOL_SIZE"`
	// 最小空闲连接
	MinIdleConns int `yaml:"min_idle_conns" env:"MIN_IDLE_CONNS"`
	// 最大重试次数
	MaxRetries int `yaml:"max_retries" env:"MAX_RETRIES"`
	// 是否使用 TLS 连接
	TLS bool `yaml:"tls" env:"TLS"`
	// 健康检查间隔
	HealthCheckInterval time.Duration `yaml:"health_check_interval" env:"HEALTH_CHECK_INTERVAL"`
}

// LogConfig 日志配置
type LogConfig struct {
	// 日志级别: debug, info, warn, error
	Level string `yaml:"level" env:"LEVEL"`
	// 输出格式: json, console
	Format string `yaml:"format" env:"FORMAT"`
	// 输出路径
	OutputPaths []string `yaml:"output_paths" env:"OUTPUT_PATHS"`
	// 是否启用调用者信息
	EnableCaller bool `yaml:"enable_caller" env:"ENABLE_CALLER"`
	// 是否启用堆栈跟踪
	EnableStacktrace bool `yaml:"enable_stacktrace" env:"ENABLE_STACKTRACE"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	// 是否启用
	Enabled bool `yaml:"enabled" env:"ENABLED"`
	// 指标命名空间
	Namespace string `yaml:"namespace" env:"NAMESPACE"`
}

// TelemetryConfig 遥测配置
type TelemetryConfig struct {
	// 是否启用
	Enabled bool `yaml:"enabled" env:"ENABLED"`
	// OTLP gRPC 地址，为空时只在进程内记录 span，不导出
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTLP_ENDPOINT"`
	// 服务名称
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
	// 采样率
	SampleRate float64 `yaml:"sample_rate" env:"SAMPLE_RATE"`
}

// =============================================================================
// 🔧 配置加载器
// =============================================================================

// Loader 配置加载器（Builder 模式）
type Loader struct {
	configPath string
	envPrefix  string
	validators []func(*Config) error
}

// NewLoader 创建新的配置加载器
func NewLoader() *Loader {
	return &Loader{
		envPrefix:  "VISUALZ",
		validators: make([]func(*Config) error, 0),
	}
}

// WithConfigPath 设置配置文件路径
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix 设置环境变量前缀
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// WithValidator 添加配置验证器
func (l *Loader) WithValidator(v func(*Config) error) *Loader {
	l.validators = append(l.validators, v)
	return l
}

// Load 加载配置
// 优先级: 默认值 → YAML 文件 → 环境变量
func (l *Loader) Load() (*Config, error) {
	// 1. 从默认值开始
	cfg := DefaultConfig()

	// 2. 如果指定了配置文件，从文件加载
	if l.configPath != "" {
		if err := l.loadFromFile(cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// 3. 从环境变量覆盖
	if err := l.loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// 4. 运行验证器
	for _, v := range l.validators {
		if err := v(cfg); err != nil {
			return nil, fmt.Errorf("config validation failed: %w", err)
		}
	}

	return cfg, nil
}

// loadFromFile 从 YAML 文件加载配置
func (l *Loader) loadFromFile(cfg *Config) error {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// 文件不存在，使用默认值
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// loadFromEnv 从环境变量加载配置
func (l *Loader) loadFromEnv(cfg *Config) error {
	return l.setFieldsFromEnv(reflect.ValueOf(cfg).Elem(), l.envPrefix)
}

// setFieldsFromEnv 递归设置结构体字段
func (l *Loader) setFieldsFromEnv(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		// 获取 env tag
		envTag := fieldType.Tag.Get("env")
		if envTag == "" || envTag == "-" {
			continue
		}

		envKey := prefix + "_" + envTag

		// 如果是结构体，递归处理
		if field.Kind() == reflect.Struct {
			if err := l.setFieldsFromEnv(field, envKey); err != nil {
				return err
			}
			continue
		}

		// 获取环境变量值
		envValue := os.Getenv(envKey)
		if envValue == "" {
			continue
		}

		// 设置字段值
		if err := setFieldValue(field, envValue); err != nil {
			return fmt.Errorf("failed to set %s: %w", envKey, err)
		}
	}

	return nil
}

// setFieldValue 设置字段值
func setFieldValue(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// 特殊处理 time.Duration
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return err
			}
			field.SetInt(i)
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetUint(u)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	case reflect.Slice:
		// 支持逗号分隔的字符串切片
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			field.Set(reflect.ValueOf(parts))
		}
	}

	return nil
}

// =============================================================================
// 🔍 辅助函数
// =============================================================================

// MustLoad 加载配置，失败时 panic
func MustLoad(path string) *Config {
	cfg, err := NewLoader().WithConfigPath(path).Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// LoadFromEnv 仅从环境变量加载配置
func LoadFromEnv() (*Config, error) {
	return NewLoader().Load()
}

// Validate 验证配置
func (c *Config) Validate() error {
	var errs []string

	if c.AI.Timeout <= 0 {
		errs = append(errs, "ai.timeout must be positive")
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		errs = append(errs, "ai.temperature must be between 0 and 2")
	}
	if c.AI.RateLimit < 0 {
		errs = append(errs, "ai.rate_limit must not be negative")
	}
	if c.AI.Enabled && c.AI.Model == "" {
		errs = append(errs, "ai.model is required when ai is enabled")
	}

	if c.Generation.MaxPiecesPerRequest <= 0 {
		errs = append(errs, "generation.max_pieces_per_request must be positive")
	}
	if c.Generation.Concurrency <= 0 {
		errs = append(errs, "generation.concurrency must be positive")
	}
	if c.Generation.CacheSize <= 0 || c.Generation.MaterialCacheSize <= 0 {
		errs = append(errs, "cache sizes must be positive")
	}

	if c.Monitor.HistorySize <= 0 {
		errs = append(errs, "monitor.history_size must be positive")
	}
	if c.Monitor.MaxGenerationTime <= 0 || c.Monitor.MaxPolygons <= 0 || c.Monitor.MaxMemoryBytes <= 0 {
		errs = append(errs, "monitor thresholds must be positive")
	}
	if c.Monitor.ReportEnabled && c.Monitor.ReportSchedule == "" {
		errs = append(errs, "monitor.report_schedule is required when reporting is enabled")
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, "redis.addr is required when redis is enabled")
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, "log.format must be json or console")
	}

	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		errs = append(errs, "telemetry.sample_rate must be between 0 and 1")
	}

	if len(errs) > 0 {
		return types.Errorf(types.ErrConfigInvalid, "config validation errors: %s", strings.Join(errs, "; "))
	}

	return nil
}
