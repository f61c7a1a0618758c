package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Protocol kinds accepted in endpoint definitions.
const (
	ProtocolFTP  = "ftp"
	ProtocolSFTP = "sftp"
)

type Config struct {
	Listen             string     `toml:"listen"`
	ConnectTimeoutSecs int        `toml:"connect_timeout_secs"`
	ReloadCron         string     `toml:"reload_cron"`
	Endpoints          []Endpoint `toml:"endpoints"`
}

// Endpoint is one configured remote server. Host and credential fields are
// opaque to the browsing core; it only ever reads ID, Name and Protocol.
type Endpoint struct {
	ID       string `toml:"id"`
	Name     string `toml:"name"`
	Protocol string `toml:"protocol"` // ftp, sftp
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (c *Config) ConnectTimeout() time.Duration {
	if c.ConnectTimeoutSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.ConnectTimeoutSecs) * time.Second
}

func (c *Config) validate() error {
	seen := make(map[string]bool, len(c.Endpoints))
	for _, ep := range c.Endpoints {
		if ep.ID == "" {
			return fmt.Errorf("endpoint %q has no id", ep.Name)
		}
		if seen[ep.ID] {
			return fmt.Errorf("duplicate endpoint id %q", ep.ID)
		}
		seen[ep.ID] = true
		if ep.Protocol != ProtocolFTP && ep.Protocol != ProtocolSFTP {
			return fmt.Errorf("endpoint %q: unknown protocol %q", ep.ID, ep.Protocol)
		}
	}
	return nil
}

func parseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Store serves endpoint lookups from a TOML file and supports reloading the
// file in place. Lookups after a failed Reload keep serving the last good
// configuration.
type Store struct {
	path string
	mu   sync.RWMutex
	cfg  *Config
}

func LoadStore(path string) (*Store, error) {
	cfg, err := parseFile(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, cfg: cfg}, nil
}

func (s *Store) Reload() error {
	cfg, err := parseFile(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}

func (s *Store) Find(id string) (Endpoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ep := range s.cfg.Endpoints {
		if ep.ID == id {
			return ep, true
		}
	}
	return Endpoint{}, false
}

func (s *Store) All() []Endpoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Endpoint, len(s.cfg.Endpoints))
	copy(out, s.cfg.Endpoints)
	return out
}

// Settings returns the non-endpoint part of the current configuration.
func (s *Store) Settings() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg := *s.cfg
	cfg.Endpoints = nil
	return cfg
}
