// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON config file and
// environment variables.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// Options holds the configuration values for the application.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string `json:"address"`

	// DataDir is the directory holding the documents.
	DataDir string `json:"data_dir"`

	// UsersFile is the YAML credential file used when DatabaseDSN is empty.
	UsersFile string `json:"users_file"`

	// DatabaseDSN selects PostgreSQL for credentials when set.
	DatabaseDSN string `json:"database_dsn"`

	// RedisURL selects Redis for sessions when set.
	RedisURL string `json:"redis_url"`

	// BcryptCost is the work factor for new password hashes.
	BcryptCost int `json:"bcrypt_cost"`

	// SessionTTL is how long an idle session is kept.
	SessionTTL Duration `json:"session_ttl"`

	// SessionCookie is the name of the session cookie.
	SessionCookie string `json:"session_cookie"`

	// LogLevel is the minimum zap level.
	LogLevel string `json:"log_level"`

	// Config is the path to the Config file.
	Config string `json:"-"`
}

// Duration is a time.Duration read from JSON as a string such as "24h".
type Duration struct {
	time.Duration
}

// UnmarshalJSON accepts either a duration string or integer nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		d.Duration = v
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("duration must be a string or integer: %w", err)
	}
	d.Duration = time.Duration(n)
	return nil
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	register(flag.CommandLine, options)
}

func register(fs *flag.FlagSet, o *Options) {
	fs.StringVar(&o.Address, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&o.DataDir, "data", "data", "documents directory")
	fs.StringVar(&o.UsersFile, "users", "users.yml", "YAML credential file")
	fs.StringVar(&o.DatabaseDSN, "d", "", "db address (credentials in postgres when set)")
	fs.StringVar(&o.RedisURL, "redis", "", "redis url (sessions in redis when set)")
	fs.IntVar(&o.BcryptCost, "bcrypt-cost", 10, "bcrypt cost for new passwords")
	fs.DurationVar(&o.SessionTTL.Duration, "session-ttl", 24*time.Hour, "idle session lifetime")
	fs.StringVar(&o.SessionCookie, "session-cookie", "docstore_session", "session cookie name")
	fs.StringVar(&o.LogLevel, "log-level", "info", "log level")
	fs.StringVar(&o.Config, "config", "config.json", "path to config file")
	fs.StringVar(&o.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()
	if err := apply(options); err != nil {
		log.Fatal(err)
	}
	return options
}

// Load is Parse over an explicit argument list.
func Load(args []string) (*Options, error) {
	o := &Options{}
	fs := flag.NewFlagSet("docstore", flag.ContinueOnError)
	register(fs, o)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := apply(o); err != nil {
		return nil, err
	}
	return o, nil
}

// apply layers the config file and then the environment over o.
func apply(o *Options) error {
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		o.Config = configPath
	}

	if o.Config != "" {
		if _, err := os.Stat(o.Config); err == nil {
			data, err := os.ReadFile(o.Config)
			if err != nil {
				return fmt.Errorf("error while reading config file: %w", err)
			}
			if err := json.Unmarshal(data, o); err != nil {
				return fmt.Errorf("error while parsing config file: %w", err)
			}
		}
	}

	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		o.Address = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		o.DataDir = v
	}
	if v := os.Getenv("USERS_FILE"); v != "" {
		o.UsersFile = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		o.DatabaseDSN = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		o.RedisURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		o.LogLevel = v
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BCRYPT_COST: %w", err)
		}
		o.BcryptCost = n
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SESSION_TTL: %w", err)
		}
		o.SessionTTL.Duration = d
	}

	return nil
}
