// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults
const (
	DefaultPort            = 3318
	DefaultDatabaseType    = "sqlite"
	DefaultPublicURL       = "http://localhost:3001"
	DefaultRegistrationTTL = time.Hour
	DefaultVotingTTL       = 30 * time.Minute
	DefaultSMTPPort        = 587
	DefaultS3Region        = "us-east-1"
	DefaultLogLevel        = "info"
)

var databaseTypes = []string{"sqlite", "postgres", "pgx", "etcd", "memory"}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

type Config struct {
	Port            int           `yaml:"port"`
	DatabaseType    string        `yaml:"database_type"`
	DatabaseURL     string        `yaml:"database_url"`
	EtcdEndpoints   []string      `yaml:"etcd_endpoints"`
	AdminKeySalt    string        `yaml:"admin_key_salt"`
	IdentitySalt    string        `yaml:"identity_salt"`
	PublicURL       string        `yaml:"public_url"`
	RegistrationTTL time.Duration `yaml:"registration_ttl"`
	VotingTTL       time.Duration `yaml:"voting_ttl"`
	ForbidSelfVote  bool          `yaml:"forbid_self_vote"`
	LogLevel        string        `yaml:"log_level"`
	SMTP            SMTPConfig    `yaml:"smtp"`
	S3              S3Config      `yaml:"s3"`

	// PrintAdminKey makes main print the results admin key and exit
	PrintAdminKey bool `yaml:"-"`
}

func defaults() Config {
	return Config{
		Port:            DefaultPort,
		DatabaseType:    DefaultDatabaseType,
		PublicURL:       DefaultPublicURL,
		RegistrationTTL: DefaultRegistrationTTL,
		VotingTTL:       DefaultVotingTTL,
		LogLevel:        DefaultLogLevel,
		SMTP:            SMTPConfig{Port: DefaultSMTPPort},
		S3:              S3Config{Region: DefaultS3Region},
	}
}

// ParseFlags builds the configuration. Later sources override earlier ones:
// defaults, the YAML file (-c or CONFIG_FILE), environment, then flags.
func ParseFlags(args []string) (Config, error) {
	var fc Config
	var configFile, etcdEndpoints string

	fs := flag.NewFlagSet("classrep", flag.ContinueOnError)

	fs.StringVar(&configFile, "c", "", "YAML config file")

	// Network and storage (can be CLI args or env)
	fs.IntVar(&fc.Port, "p", 0, "Server port")
	fs.StringVar(&fc.DatabaseType, "t", "", "Store type (sqlite, postgres, pgx, etcd or memory)")
	fs.StringVar(&fc.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&etcdEndpoints, "etcd", "", "Comma-separated etcd endpoints")
	fs.StringVar(&fc.PublicURL, "public-url", "", "Origin used in links when the request has none")

	// Election policy
	fs.DurationVar(&fc.RegistrationTTL, "registration-ttl", 0, "Registration link lifetime")
	fs.DurationVar(&fc.VotingTTL, "voting-ttl", 0, "Voting link lifetime")
	fs.BoolVar(&fc.ForbidSelfVote, "forbid-self-vote", false, "Reject ballots that name the voter")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&fc.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")
	fs.StringVar(&fc.IdentitySalt, "identity-salt", "", "Email hashing salt (prefer env)")

	fs.StringVar(&fc.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&fc.PrintAdminKey, "print-admin-key", false, "Print the results admin key and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := defaults()

	if configFile == "" {
		configFile = os.Getenv("CONFIG_FILE")
	}
	if configFile != "" {
		if err := loadFile(configFile, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			cfg.Port = fc.Port
		case "t":
			cfg.DatabaseType = fc.DatabaseType
		case "d":
			cfg.DatabaseURL = fc.DatabaseURL
		case "etcd":
			cfg.EtcdEndpoints = splitList(etcdEndpoints)
		case "public-url":
			cfg.PublicURL = fc.PublicURL
		case "registration-ttl":
			cfg.RegistrationTTL = fc.RegistrationTTL
		case "voting-ttl":
			cfg.VotingTTL = fc.VotingTTL
		case "forbid-self-vote":
			cfg.ForbidSelfVote = fc.ForbidSelfVote
		case "admin-salt":
			cfg.AdminKeySalt = fc.AdminKeySalt
		case "identity-salt":
			cfg.IdentitySalt = fc.IdentitySalt
		case "log-level":
			cfg.LogLevel = fc.LogLevel
		case "print-admin-key":
			cfg.PrintAdminKey = fc.PrintAdminKey
		}
	})

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	envString("DATABASE_TYPE", &cfg.DatabaseType)
	envString("DATABASE_URL", &cfg.DatabaseURL)
	envString("ADMIN_KEY_SALT", &cfg.AdminKeySalt)
	envString("IDENTITY_SALT", &cfg.IdentitySalt)
	envString("PUBLIC_URL", &cfg.PublicURL)
	envString("LOG_LEVEL", &cfg.LogLevel)
	envString("SMTP_HOST", &cfg.SMTP.Host)
	envString("SMTP_USER", &cfg.SMTP.Username)
	envString("SMTP_PASS", &cfg.SMTP.Password)
	envString("SMTP_FROM", &cfg.SMTP.From)
	envString("S3_BUCKET", &cfg.S3.Bucket)
	envString("S3_REGION", &cfg.S3.Region)
	envString("S3_ENDPOINT", &cfg.S3.Endpoint)
	envString("S3_ACCESS_KEY", &cfg.S3.AccessKey)
	envString("S3_SECRET_KEY", &cfg.S3.SecretKey)

	if v := os.Getenv("ETCD_ENDPOINTS"); v != "" {
		cfg.EtcdEndpoints = splitList(v)
	}

	return errors.Join(
		envInt("PORT", &cfg.Port),
		envInt("SMTP_PORT", &cfg.SMTP.Port),
		envDuration("REGISTRATION_TTL", &cfg.RegistrationTTL),
		envDuration("VOTING_TTL", &cfg.VotingTTL),
		envBool("FORBID_SELF_VOTE", &cfg.ForbidSelfVote),
	)
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s env variable", key)
	}
	*dst = n
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s env variable", key)
	}
	*dst = d
	return nil
}

func envBool(key string, dst *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s env variable", key)
	}
	*dst = b
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	known := false
	for _, t := range databaseTypes {
		if c.DatabaseType == t {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown DATABASE_TYPE %q (want one of %s)", c.DatabaseType, strings.Join(databaseTypes, ", "))
	}

	switch c.DatabaseType {
	case "sqlite", "postgres", "pgx":
		if c.DatabaseURL == "" {
			return errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	case "etcd":
		if len(c.EtcdEndpoints) == 0 {
			return errors.New("etcd endpoints required (use -etcd or ETCD_ENDPOINTS env)")
		}
	}

	// Secrets - MUST be provided
	if c.AdminKeySalt == "" {
		return errors.New("ADMIN_KEY_SALT required")
	}

	if c.RegistrationTTL <= 0 || c.VotingTTL <= 0 {
		return errors.New("token TTLs must be positive")
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	if c.SMTP.Host != "" && c.SMTP.From == "" {
		return errors.New("SMTP_FROM required when SMTP_HOST is set")
	}

	return nil
}

// SlogLevel parses LogLevel
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}
