package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/rsc/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "rsc.yaml"

	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"

	// DefaultPostsDir is the default markdown directory.
	DefaultPostsDir = "posts"

	// DefaultCommentsFile is the default file store document.
	DefaultCommentsFile = "posts/comments.json"

	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = 10 * time.Second
)

// Store kinds.
const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreS3     = "s3"
)

// Config represents the complete rsc.yaml configuration.
type Config struct {
	// Server contains listener and endpoint settings.
	Server ServerConfig `yaml:"server"`

	// Blog contains the content settings of the blog application.
	Blog BlogConfig `yaml:"blog"`

	// Store selects and configures the comment backend.
	Store StoreConfig `yaml:"store"`

	// Log contains logging settings.
	Log LogConfig `yaml:"log"`

	// Tracing contains OpenTelemetry export settings.
	Tracing TracingConfig `yaml:"tracing"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `yaml:"addr"`

	// Metrics exposes /metrics when true.
	Metrics bool `yaml:"metrics"`

	// DevMode disables client script caching.
	DevMode bool `yaml:"devMode"`

	// ShutdownTimeout bounds graceful shutdown (e.g. "10s").
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// BlogConfig contains blog content settings.
type BlogConfig struct {
	// Title is the document title.
	Title string `yaml:"title"`

	// Author is shown in the footer.
	Author string `yaml:"author"`

	// PostsDir is the directory of *.md posts.
	PostsDir string `yaml:"postsDir"`
}

// StoreConfig selects the comment backend by Kind.
type StoreConfig struct {
	Kind  string      `yaml:"kind"`
	File  FileConfig  `yaml:"file"`
	Redis RedisConfig `yaml:"redis"`
	S3    S3Config    `yaml:"s3"`
}

// FileConfig configures the JSON file store.
type FileConfig struct {
	Path string `yaml:"path"`
}

// RedisConfig configures the Redis store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// S3Config configures the S3 store. Endpoint selects an S3-compatible
// server instead of AWS.
type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level"`

	// Format is "text" or "json".
	Format string `yaml:"format"`
}

// TracingConfig contains OTLP export settings. Tracing is off when
// Endpoint is empty.
type TracingConfig struct {
	Endpoint string `yaml:"endpoint"`
	Service  string `yaml:"service"`
	Insecure bool   `yaml:"insecure"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Blog: BlogConfig{
			Title:    "My blog",
			Author:   "Jae Doe",
			PostsDir: DefaultPostsDir,
		},
		Store: StoreConfig{
			Kind: StoreFile,
			File: FileConfig{Path: DefaultCommentsFile},
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "rsc:comments:",
			},
			S3: S3Config{
				Prefix: "comments/",
				Region: "us-east-1",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Tracing: TracingConfig{
			Service: "rsc",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for rsc.yaml in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path. Fields absent
// from the file keep their defaults. JSON files parse as well.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfig).
				WithDetail("No " + filepath.Base(path) + " found in " + filepath.Dir(path)).
				Wrap(err)
		}
		return nil, errors.New(errors.CodeConfig).Wrap(err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(errors.CodeConfig).
			WithDetail("Failed to parse " + path + ": " + err.Error())
	}

	cfg.configPath = path
	return cfg, nil
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file, or "." for a
// config that was not loaded from disk.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return "."
	}
	return filepath.Dir(c.configPath)
}

// PostsPath returns the posts directory, relative paths resolved against
// the config file's directory.
func (c *Config) PostsPath() string {
	return c.resolve(c.Blog.PostsDir)
}

// CommentsPath returns the file store path, resolved like PostsPath.
func (c *Config) CommentsPath() string {
	return c.resolve(c.Store.File.Path)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir(), p)
}

// Env variables read by ApplyEnv.
const (
	EnvAddr     = "RSC_ADDR"
	EnvLogLevel = "RSC_LOG_LEVEL"
	EnvStore    = "RSC_STORE"
	EnvRedis    = "RSC_REDIS_ADDR"
)

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvAddr); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv(EnvStore); ok && v != "" {
		c.Store.Kind = v
	}
	if v, ok := os.LookupEnv(EnvRedis); ok && v != "" {
		c.Store.Redis.Addr = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New(errors.CodeConfig).WithDetail("server.addr must not be empty")
	}
	_, port, err := net.SplitHostPort(c.Server.Addr)
	if err != nil {
		return errors.New(errors.CodeConfig).WithDetail("server.addr must be host:port").Wrap(err)
	}
	if n, err := strconv.Atoi(port); port != "" && (err != nil || n < 0 || n > 65535) {
		return errors.New(errors.CodeConfig).
			WithDetail("Port must be between 0 and 65535")
	}
	if c.Server.ShutdownTimeout < 0 {
		return errors.New(errors.CodeConfig).WithDetail("server.shutdownTimeout must not be negative")
	}

	switch c.Store.Kind {
	case StoreMemory:
	case StoreFile:
		if c.Store.File.Path == "" {
			return errors.New(errors.CodeConfig).WithDetail("store.file.path is required for the file store")
		}
	case StoreRedis:
		if c.Store.Redis.Addr == "" {
			return errors.New(errors.CodeConfig).WithDetail("store.redis.addr is required for the redis store")
		}
	case StoreS3:
		if c.Store.S3.Bucket == "" {
			return errors.New(errors.CodeConfig).WithDetail("store.s3.bucket is required for the s3 store")
		}
	default:
		return errors.New(errors.CodeConfig).
			WithDetail("store.kind must be one of file, memory, redis, s3; got " + strconv.Quote(c.Store.Kind))
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return errors.New(errors.CodeConfig).WithDetail("log.format must be text or json")
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.New(errors.CodeConfig).Wrap(err)
	}
	return data, nil
}
