package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

const (
	DefaultServerAddr       = ":8080"
	DefaultUpstreamBaseURL  = "https://6890c3b3944bf437b5973f9c.mockapi.io"
	DefaultUpstreamTimeout  = 10 * time.Second
	DefaultImageTimeout     = 5 * time.Second
	DefaultFallbackImageURL = "https://picsum.photos/id/237/200/300"
	DefaultCacheTTL         = 300 * time.Second
	DefaultCacheSize        = 256
)

type AppConfig struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Server     ServerConfig     `yaml:"server"`
	Upstream   UpstreamConfig   `yaml:"upstream"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Cache      CacheConfig      `yaml:"cache"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// UpstreamConfig 는 원본 블로그 목 API 접속 정보다.
type UpstreamConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// EnrichmentConfig 는 포스트 가공 단계 설정이다.
type EnrichmentConfig struct {
	// FallbackImage 는 원본 이미지 검증 실패 시 대신 내려주는 이미지 URL 이다.
	FallbackImage string `yaml:"fallback_image"`

	// ImageTimeout 은 이미지 HEAD 검증 요청 하나에 허용하는 최대 시간이다.
	ImageTimeout time.Duration `yaml:"image_timeout"`

	// MaxConcurrency 는 목록 가공 시 동시에 수행할 검증 수 상한이다.
	// 0 이하면 제한 없음으로 간주한다.
	MaxConcurrency int `yaml:"max_concurrency"`
}

// CacheConfig 는 원본 레코드(RawPost) 캐시 설정이다. 가공된 포스트는 캐시하지 않는다.
type CacheConfig struct {
	Backend string        `yaml:"backend"` // memory | redis | none
	TTL     time.Duration `yaml:"ttl"`
	Size    int           `yaml:"size"`
	Redis   RedisConfig   `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

var config *AppConfig

// InitApp 은 .env 와 config.yaml 을 읽어 전역 설정을 초기화한다.
// config.yaml 이 없으면 기본값과 환경변수만으로 동작한다.
func InitApp() {
	base := GetBasePath()
	godotenv.Load(filepath.Join(base, ENV_FILE))

	c, err := loadOrDefault(filepath.Join(base, CONFIG_FILE))
	if err != nil {
		panic(err)
	}
	config = c
}

// loadOrDefault 는 path 가 없으면 Default 로 대체한다. 어느 쪽이든 Validate 를 거친다.
func loadOrDefault(path string) (*AppConfig, error) {
	c, err := Load(path)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	c = Default()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

// Default 는 기본값과 환경변수 오버라이드만 적용된 설정을 반환한다.
func Default() *AppConfig {
	var c AppConfig
	c.applyDefaults()
	c.applyEnv()
	return &c
}

// Load 는 주어진 경로의 YAML 설정 파일을 읽고 기본값, 환경변수 오버라이드, 검증을 적용한다.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c AppConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	c.applyDefaults()
	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Upstream.BaseURL == "" {
		c.Upstream.BaseURL = DefaultUpstreamBaseURL
	}
	if c.Upstream.Timeout <= 0 {
		c.Upstream.Timeout = DefaultUpstreamTimeout
	}
	if c.Enrichment.FallbackImage == "" {
		c.Enrichment.FallbackImage = DefaultFallbackImageURL
	}
	if c.Enrichment.ImageTimeout <= 0 {
		c.Enrichment.ImageTimeout = DefaultImageTimeout
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Cache.Size <= 0 {
		c.Cache.Size = DefaultCacheSize
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "blog-showcase:"
	}
}

func (c *AppConfig) applyEnv() {
	if v := os.Getenv("UPSTREAM_BASE_URL"); v != "" {
		c.Upstream.BaseURL = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
}

// Validate 는 기동 전에 잡아야 하는 설정 오류를 검사한다.
func (c *AppConfig) Validate() error {
	if !isAbsoluteURL(c.Upstream.BaseURL) {
		return fmt.Errorf("config: upstream.base_url must be an absolute URL: %q", c.Upstream.BaseURL)
	}
	if !isAbsoluteURL(c.Enrichment.FallbackImage) {
		return fmt.Errorf("config: enrichment.fallback_image must be an absolute URL: %q", c.Enrichment.FallbackImage)
	}
	switch c.Cache.Backend {
	case "memory", "none":
	case "redis":
		if c.Cache.Redis.Addr == "" {
			return errors.New("config: cache.redis.addr is required when cache.backend is redis")
		}
	default:
		return fmt.Errorf("config: unknown cache.backend %q", c.Cache.Backend)
	}
	return nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
