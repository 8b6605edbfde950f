package config

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App           AppConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Log           LogConfig
	HTTP          HTTPConfig
	Liquidity     LiquidityConfig
	Accreditation AccreditationConfig
	Prediction    PredictionConfig
	Referral      ReferralConfig
	Insights      InsightsConfig
	Email         EmailConfig
	Storage       StorageConfig
	Kafka         KafkaConfig
	Chrome        ChromeConfig
	Scheduler     SchedulerConfig
	Swagger       SwaggerConfig
	Telemetry     TelemetryConfig

	v *viper.Viper
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	Output     string // stdout, stderr, or file path
	MaxSizeMB  int    // rotation threshold for file output
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name    string
	Env     string
	Port    string
	BaseURL string // public URL of the web client, used in e-mail links
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int  // in minutes
	ConnMaxIdleTime int  // in minutes
	AutoMigrate     bool // apply embedded migrations on server start
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret                 string
	RefreshSecret          string
	AccessTokenExpiration  time.Duration
	RefreshTokenExpiration time.Duration
	Issuer                 string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	MaxBodySize       int64
	RateLimitEnabled  bool
	RateLimitRPS      float64
	RateLimitBurst    int
	CORSAllowOrigins  []string
	CORSAllowMethods  []string
	CORSAllowHeaders  []string
	TrustedProxies    []string
	MetricsEnabled    bool
	WebsocketEnabled  bool
	WebsocketBuffer   int
	WebsocketPingTick time.Duration
}

// FeeTierConfig is one redemption fee bracket as written in config.toml
//
//	[[liquidity.default_tiers]]
//	min_months = 0
//	max_months = 12
//	fee_percent = 10
type FeeTierConfig struct {
	MinMonths  int     `mapstructure:"min_months"`
	MaxMonths  *int    `mapstructure:"max_months"`
	FeePercent float64 `mapstructure:"fee_percent"`
}

// LiquidityConfig holds redemption settings
type LiquidityConfig struct {
	DefaultTiers     []FeeTierConfig
	ScheduleCacheTTL time.Duration
}

// AccreditationConfig holds KYC settings
type AccreditationConfig struct {
	RequiredToInvest bool
	ValidityDays     int
}

// PredictionConfig holds prediction market settings
type PredictionConfig struct {
	PlatformFeePercent float64
	MinStake           float64
}

// ReferralConfig holds referral program settings
type ReferralConfig struct {
	RewardAmount float64
}

// InsightsConfig holds the LLM gateway settings
type InsightsConfig struct {
	Enabled     bool
	Endpoint    string
	APIKey      string
	Model       string
	Timeout     time.Duration
	CacheTTL    time.Duration
	MaxTokens   int
	Temperature float64
}

// EmailConfig holds the transactional e-mail provider settings
type EmailConfig struct {
	Enabled  bool
	Endpoint string
	APIKey   string
	From     string
	Timeout  time.Duration
}

// StorageConfig holds S3-compatible object storage settings
type StorageConfig struct {
	Enabled         bool
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	PresignTTL      time.Duration
}

// KafkaConfig holds the domain event relay settings
type KafkaConfig struct {
	Enabled      bool
	Brokers      []string
	Topic        string
	BatchSize    int
	BatchTimeout time.Duration
	WriteTimeout time.Duration
	RequiredAcks int
}

// ChromeConfig holds headless Chrome settings for PDF statements
type ChromeConfig struct {
	Enabled   bool
	RemoteURL string
	NoSandbox bool
	Timeout   time.Duration
}

// SchedulerConfig holds cron job configuration
type SchedulerConfig struct {
	Enabled                 bool
	AccreditationExpiryCron string
	MarketCloseCron         string
	JobTimeout              time.Duration
}

// SwaggerConfig holds Swagger documentation endpoint configuration
type SwaggerConfig struct {
	Enabled    bool
	AllowedIPs []string // IP whitelist (empty = allow all)
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string
	SamplingRatio     float64
	ServiceName       string
	Insecure          bool
	DBTraceEnabled    bool
	DBLogFullSQL      bool
	DBSlowQueryThresh time.Duration
	ProfilingEnabled  bool
	ProfilingEndpoint string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with TOKENESTATE_ prefix (e.g., TOKENESTATE_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")
	return load(v)
}

// LoadFile loads configuration from an explicit TOML file
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("TOKENESTATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg, err := build(v)
	if err != nil {
		return nil, err
	}
	cfg.v = v
	return cfg, nil
}

func build(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:    v.GetString("app.name"),
			Env:     v.GetString("app.env"),
			Port:    v.GetString("app.port"),
			BaseURL: v.GetString("app.base_url"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
			AutoMigrate:     v.GetBool("database.auto_migrate"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:                 v.GetString("jwt.secret"),
			RefreshSecret:          v.GetString("jwt.refresh_secret"),
			AccessTokenExpiration:  v.GetDuration("jwt.access_token_expiration"),
			RefreshTokenExpiration: v.GetDuration("jwt.refresh_token_expiration"),
			Issuer:                 v.GetString("jwt.issuer"),
		},
		Log: LogConfig{
			Level:      v.GetString("log.level"),
			Format:     v.GetString("log.format"),
			Output:     v.GetString("log.output"),
			MaxSizeMB:  v.GetInt("log.max_size_mb"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAgeDays: v.GetInt("log.max_age_days"),
			Compress:   v.GetBool("log.compress"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:       v.GetDuration("http.read_timeout"),
			WriteTimeout:      v.GetDuration("http.write_timeout"),
			IdleTimeout:       v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:    v.GetInt("http.max_header_bytes"),
			MaxBodySize:       v.GetInt64("http.max_body_size"),
			RateLimitEnabled:  v.GetBool("http.rate_limit_enabled"),
			RateLimitRPS:      v.GetFloat64("http.rate_limit_rps"),
			RateLimitBurst:    v.GetInt("http.rate_limit_burst"),
			CORSAllowOrigins:  v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods:  v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders:  v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:    v.GetStringSlice("http.trusted_proxies"),
			MetricsEnabled:    v.GetBool("http.metrics_enabled"),
			WebsocketEnabled:  v.GetBool("http.websocket_enabled"),
			WebsocketBuffer:   v.GetInt("http.websocket_buffer"),
			WebsocketPingTick: v.GetDuration("http.websocket_ping_interval"),
		},
		Liquidity: LiquidityConfig{
			ScheduleCacheTTL: v.GetDuration("liquidity.schedule_cache_ttl"),
		},
		Accreditation: AccreditationConfig{
			RequiredToInvest: v.GetBool("accreditation.required_to_invest"),
			ValidityDays:     v.GetInt("accreditation.validity_days"),
		},
		Prediction: PredictionConfig{
			PlatformFeePercent: v.GetFloat64("prediction.platform_fee_percent"),
			MinStake:           v.GetFloat64("prediction.min_stake"),
		},
		Referral: ReferralConfig{
			RewardAmount: v.GetFloat64("referral.reward_amount"),
		},
		Insights: InsightsConfig{
			Enabled:     v.GetBool("insights.enabled"),
			Endpoint:    v.GetString("insights.endpoint"),
			APIKey:      v.GetString("insights.api_key"),
			Model:       v.GetString("insights.model"),
			Timeout:     v.GetDuration("insights.timeout"),
			CacheTTL:    v.GetDuration("insights.cache_ttl"),
			MaxTokens:   v.GetInt("insights.max_tokens"),
			Temperature: v.GetFloat64("insights.temperature"),
		},
		Email: EmailConfig{
			Enabled:  v.GetBool("email.enabled"),
			Endpoint: v.GetString("email.endpoint"),
			APIKey:   v.GetString("email.api_key"),
			From:     v.GetString("email.from"),
			Timeout:  v.GetDuration("email.timeout"),
		},
		Storage: StorageConfig{
			Enabled:         v.GetBool("storage.enabled"),
			Bucket:          v.GetString("storage.bucket"),
			Region:          v.GetString("storage.region"),
			Endpoint:        v.GetString("storage.endpoint"),
			AccessKeyID:     v.GetString("storage.access_key_id"),
			SecretAccessKey: v.GetString("storage.secret_access_key"),
			UsePathStyle:    v.GetBool("storage.use_path_style"),
			PresignTTL:      v.GetDuration("storage.presign_ttl"),
		},
		Kafka: KafkaConfig{
			Enabled:      v.GetBool("kafka.enabled"),
			Brokers:      v.GetStringSlice("kafka.brokers"),
			Topic:        v.GetString("kafka.topic"),
			BatchSize:    v.GetInt("kafka.batch_size"),
			BatchTimeout: v.GetDuration("kafka.batch_timeout"),
			WriteTimeout: v.GetDuration("kafka.write_timeout"),
			RequiredAcks: v.GetInt("kafka.required_acks"),
		},
		Chrome: ChromeConfig{
			Enabled:   v.GetBool("chrome.enabled"),
			RemoteURL: v.GetString("chrome.remote_url"),
			NoSandbox: v.GetBool("chrome.no_sandbox"),
			Timeout:   v.GetDuration("chrome.timeout"),
		},
		Scheduler: SchedulerConfig{
			Enabled:                 v.GetBool("scheduler.enabled"),
			AccreditationExpiryCron: v.GetString("scheduler.accreditation_expiry_cron"),
			MarketCloseCron:         v.GetString("scheduler.market_close_cron"),
			JobTimeout:              v.GetDuration("scheduler.job_timeout"),
		},
		Swagger: SwaggerConfig{
			Enabled:    v.GetBool("swagger.enabled"),
			AllowedIPs: v.GetStringSlice("swagger.allowed_ips"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			DBTraceEnabled:    v.GetBool("telemetry.db_trace_enabled"),
			DBLogFullSQL:      v.GetBool("telemetry.db_log_full_sql"),
			DBSlowQueryThresh: v.GetDuration("telemetry.db_slow_query_threshold"),
			ProfilingEnabled:  v.GetBool("telemetry.profiling_enabled"),
			ProfilingEndpoint: v.GetString("telemetry.profiling_endpoint"),
		},
	}

	if err := v.UnmarshalKey("liquidity.default_tiers", &cfg.Liquidity.DefaultTiers); err != nil {
		return nil, fmt.Errorf("invalid liquidity.default_tiers: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func intPtr(v int) *int { return &v }

// DefaultFeeTiers is the schedule used when none is configured:
// under 1 year 10%, 1-2 years 7%, 2-3 years 5%, 3+ years 3%.
func DefaultFeeTiers() []FeeTierConfig {
	return []FeeTierConfig{
		{MinMonths: 0, MaxMonths: intPtr(12), FeePercent: 10},
		{MinMonths: 12, MaxMonths: intPtr(24), FeePercent: 7},
		{MinMonths: 24, MaxMonths: intPtr(36), FeePercent: 5},
		{MinMonths: 36, MaxMonths: nil, FeePercent: 3},
	}
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "tokenestate-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.App.BaseURL == "" {
		cfg.App.BaseURL = "http://localhost:5173"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "tokenestate"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.JWT.AccessTokenExpiration == 0 {
		cfg.JWT.AccessTokenExpiration = 15 * time.Minute
	}
	if cfg.JWT.RefreshTokenExpiration == 0 {
		cfg.JWT.RefreshTokenExpiration = 168 * time.Hour
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "tokenestate-backend"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 50
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 5
	}
	if cfg.Log.MaxAgeDays == 0 {
		cfg.Log.MaxAgeDays = 30
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 30 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 10 << 20
	}
	if cfg.HTTP.RateLimitRPS == 0 {
		cfg.HTTP.RateLimitRPS = 10
	}
	if cfg.HTTP.RateLimitBurst == 0 {
		cfg.HTTP.RateLimitBurst = 20
	}
	// No default for CORS origins: an empty list allows no cross-origin requests.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	}
	if cfg.HTTP.WebsocketBuffer == 0 {
		cfg.HTTP.WebsocketBuffer = 64
	}
	if cfg.HTTP.WebsocketPingTick == 0 {
		cfg.HTTP.WebsocketPingTick = 30 * time.Second
	}
	if len(cfg.Liquidity.DefaultTiers) == 0 {
		cfg.Liquidity.DefaultTiers = DefaultFeeTiers()
	}
	if cfg.Liquidity.ScheduleCacheTTL == 0 {
		cfg.Liquidity.ScheduleCacheTTL = 5 * time.Minute
	}
	if cfg.Accreditation.ValidityDays == 0 {
		cfg.Accreditation.ValidityDays = 365
	}
	if cfg.Prediction.PlatformFeePercent == 0 {
		cfg.Prediction.PlatformFeePercent = 2
	}
	if cfg.Prediction.MinStake == 0 {
		cfg.Prediction.MinStake = 1
	}
	if cfg.Referral.RewardAmount == 0 {
		cfg.Referral.RewardAmount = 50
	}
	if cfg.Insights.Endpoint == "" {
		cfg.Insights.Endpoint = "https://ai.gateway.lovable.dev/v1/chat/completions"
	}
	if cfg.Insights.Model == "" {
		cfg.Insights.Model = "google/gemini-2.5-flash"
	}
	if cfg.Insights.Timeout == 0 {
		cfg.Insights.Timeout = 30 * time.Second
	}
	if cfg.Insights.CacheTTL == 0 {
		cfg.Insights.CacheTTL = time.Hour
	}
	if cfg.Insights.MaxTokens == 0 {
		cfg.Insights.MaxTokens = 800
	}
	if cfg.Insights.Temperature == 0 {
		cfg.Insights.Temperature = 0.4
	}
	if cfg.Email.Endpoint == "" {
		cfg.Email.Endpoint = "https://api.resend.com/emails"
	}
	if cfg.Email.From == "" {
		cfg.Email.From = "TokenEstate <noreply@tokenestate.io>"
	}
	if cfg.Email.Timeout == 0 {
		cfg.Email.Timeout = 10 * time.Second
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
	if cfg.Storage.PresignTTL == 0 {
		cfg.Storage.PresignTTL = 15 * time.Minute
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "tokenestate.domain-events"
	}
	if cfg.Kafka.BatchSize == 0 {
		cfg.Kafka.BatchSize = 100
	}
	if cfg.Kafka.BatchTimeout == 0 {
		cfg.Kafka.BatchTimeout = 100 * time.Millisecond
	}
	if cfg.Kafka.WriteTimeout == 0 {
		cfg.Kafka.WriteTimeout = 10 * time.Second
	}
	if cfg.Kafka.RequiredAcks == 0 {
		cfg.Kafka.RequiredAcks = 1
	}
	if cfg.Chrome.Timeout == 0 {
		cfg.Chrome.Timeout = 30 * time.Second
	}
	if cfg.Scheduler.AccreditationExpiryCron == "" {
		cfg.Scheduler.AccreditationExpiryCron = "0 3 * * *"
	}
	if cfg.Scheduler.MarketCloseCron == "" {
		cfg.Scheduler.MarketCloseCron = "*/5 * * * *"
	}
	if cfg.Scheduler.JobTimeout == 0 {
		cfg.Scheduler.JobTimeout = 5 * time.Minute
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "tokenestate-backend"
	}
	if cfg.Telemetry.DBSlowQueryThresh == 0 {
		cfg.Telemetry.DBSlowQueryThresh = 200 * time.Millisecond
	}
	if cfg.Telemetry.ProfilingEndpoint == "" {
		cfg.Telemetry.ProfilingEndpoint = "http://localhost:4040"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if err := validateTiers(c.Liquidity.DefaultTiers); err != nil {
		return err
	}

	if c.Prediction.PlatformFeePercent < 0 || c.Prediction.PlatformFeePercent >= 100 {
		return fmt.Errorf("prediction.platform_fee_percent must be in [0, 100), got %v", c.Prediction.PlatformFeePercent)
	}
	if c.Referral.RewardAmount < 0 {
		return fmt.Errorf("referral.reward_amount cannot be negative")
	}
	if c.Insights.Enabled && c.Insights.APIKey == "" {
		return fmt.Errorf("insights.api_key is required when insights are enabled")
	}
	if c.Email.Enabled && c.Email.APIKey == "" {
		return fmt.Errorf("email.api_key is required when email is enabled")
	}
	if c.Storage.Enabled && c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required when storage is enabled")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required when kafka is enabled")
	}

	if c.App.Env == "production" {
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Swagger.Enabled && len(c.Swagger.AllowedIPs) == 0 {
			return fmt.Errorf("swagger endpoint must be disabled or IP restricted in production")
		}
		if c.Telemetry.DBLogFullSQL {
			return fmt.Errorf("telemetry.db_log_full_sql must be false in production")
		}
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}
	return nil
}

func validateTiers(tiers []FeeTierConfig) error {
	for i, t := range tiers {
		if t.MinMonths < 0 {
			return fmt.Errorf("liquidity.default_tiers[%d].min_months cannot be negative", i)
		}
		if t.MaxMonths != nil && *t.MaxMonths <= t.MinMonths {
			return fmt.Errorf("liquidity.default_tiers[%d].max_months must exceed min_months", i)
		}
		if t.FeePercent < 0 || t.FeePercent > 100 {
			return fmt.Errorf("liquidity.default_tiers[%d].fee_percent must be in [0, 100]", i)
		}
	}
	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

var watchMu sync.Mutex

// Watch re-reads the config file whenever it changes on disk and hands the
// rebuilt Config to onChange. Invalid files are reported through onError and
// the previous configuration stays in effect. Watch is a no-op when the
// configuration was not read from a file.
func (c *Config) Watch(onChange func(*Config), onError func(error)) {
	if c.v == nil || c.v.ConfigFileUsed() == "" {
		return
	}
	v := c.v
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		watchMu.Lock()
		defer watchMu.Unlock()
		next, err := build(v)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		next.v = v
		onChange(next)
	})
	v.WatchConfig()
}
