package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DefaultConfigFilename = ".evalctl.yaml"

// EnvServer overrides the configured server URL.
const EnvServer = "EVALCTL_SERVER"

const DefaultServer = "http://localhost:8000"

// File is the on-disk client configuration.
type File struct {
	// Server is the HTTP base URL of the evaluator API.
	Server string `yaml:"server,omitempty"`

	// LiveProgress enables the websocket progress channel. When false the
	// local simulator drives the progress display instead.
	LiveProgress bool `yaml:"live_progress,omitempty"`

	// SimulatorInterval / SimulatorStep tune the fallback driver.
	SimulatorInterval time.Duration `yaml:"simulator_interval,omitempty"`
	SimulatorStep     float64       `yaml:"simulator_step,omitempty"`

	// SubmitTimeout is the hard deadline for the submission request.
	SubmitTimeout time.Duration `yaml:"submit_timeout,omitempty"`

	// MaxAttempts / RetryBaseDelay tune transport retries.
	MaxAttempts    int           `yaml:"max_attempts,omitempty"`
	RetryBaseDelay time.Duration `yaml:"retry_base_delay,omitempty"`
}

func DefaultPath(dir string) string {
	return filepath.Join(dir, DefaultConfigFilename)
}

func LoadFromFile(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	var cfg File
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config yaml")
	}
	return &cfg, nil
}

func LoadOptional(path string) (*File, error) {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, errors.Wrap(err, "stat config")
	}
	return LoadFromFile(path)
}

// ResolveServer picks the server URL: explicit flag value, then the
// EVALCTL_SERVER environment variable, then the config file, then the
// default.
func ResolveServer(flagValue string, cfg *File) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvServer); env != "" {
		return env
	}
	if cfg != nil && cfg.Server != "" {
		return cfg.Server
	}
	return DefaultServer
}

// ProgressURL derives the websocket progress endpoint for a session from
// the HTTP base URL: same host, protocol upgraded to ws/wss, any trailing
// /api path segment stripped, /ws/progress/{session} appended.
func ProgressURL(server, sessionID string) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", errors.Wrap(err, "parse server url")
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", errors.Errorf("unsupported server scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(strings.TrimRight(u.Path, "/"), "/api")
	u.Path = u.Path + "/ws/progress/" + sessionID
	return u.String(), nil
}
