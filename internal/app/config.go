package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"rad/internal/agent"
	"rad/internal/domain"
)

const (
	// HomeEnv overrides the default home directory.
	HomeEnv = "RAD_HOME"
	// AgentTimeoutEnv overrides the agent call timeout, e.g. "5s".
	AgentTimeoutEnv = "RAD_AGENT_TIMEOUT"
	// ConfigFile is the config file name inside the home directory.
	ConfigFile = "config.yaml"

	defaultHomeDir = ".radicle"
)

// KDFConfig holds the scrypt cost parameters used when sealing new keys.
type KDFConfig struct {
	N int `yaml:"n" mapstructure:"n"`
	R int `yaml:"r" mapstructure:"r"`
	P int `yaml:"p" mapstructure:"p"`
}

// Config holds runtime wiring options for building the app.
type Config struct {
	Home         string    `yaml:"-" mapstructure:"-"`                         // profile store root, e.g. $HOME/.radicle
	AgentSocket  string    `yaml:"agent_socket" mapstructure:"agent_socket"`   // ssh-agent socket, e.g. $SSH_AUTH_SOCK
	AgentTimeout string    `yaml:"agent_timeout" mapstructure:"agent_timeout"` // per agent call, e.g. "10s"
	KDF          KDFConfig `yaml:"kdf" mapstructure:"kdf"`
	Verbose      bool      `yaml:"verbose" mapstructure:"verbose"`
}

// flagKeys maps config keys to the CLI flags that override them.
var flagKeys = map[string]string{
	"agent_socket":  "agent-socket",
	"agent_timeout": "agent-timeout",
	"verbose":       "verbose",
}

// DefaultConfig returns the built-in configuration for home.
func DefaultConfig(home string) *Config {
	kdf := domain.RecommendedKDF()
	return &Config{
		Home:         home,
		AgentTimeout: agent.DefaultTimeout.String(),
		KDF:          KDFConfig{N: kdf.N, R: kdf.R, P: kdf.P},
	}
}

// ResolveHome picks the home directory: flag, then $RAD_HOME, then
// ~/.radicle.
func ResolveHome(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv(HomeEnv); env != "" {
		return env, nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultHomeDir), nil
}

// Load resolves the configuration for home. Later sources win: built-in
// defaults, the YAML file at path (default <home>/config.yaml), the
// environment, then any flag in flags that was set explicitly. A missing file
// is not an error.
func Load(home, path string, flags *pflag.FlagSet) (*Config, error) {
	if path == "" {
		path = filepath.Join(home, ConfigFile)
	}
	def := DefaultConfig(home)

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("agent_timeout", def.AgentTimeout)
	v.SetDefault("kdf.n", def.KDF.N)
	v.SetDefault("kdf.r", def.KDF.R)
	v.SetDefault("kdf.p", def.KDF.P)
	_ = v.BindEnv("agent_socket", agent.SocketEnv)
	_ = v.BindEnv("agent_timeout", AgentTimeoutEnv)
	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Home = home
	return cfg, nil
}

// Timeout returns the agent call timeout, falling back to the default when
// unset or malformed.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.AgentTimeout)
	if err != nil || d <= 0 {
		return agent.DefaultTimeout
	}
	return d
}

// KDFParams returns the scrypt parameters for new key files.
func (c *Config) KDFParams() domain.KDFParams {
	return domain.KDFParams{N: c.KDF.N, R: c.KDF.R, P: c.KDF.P}
}

// Validate checks that the config can be wired.
func (c *Config) Validate() error {
	if c.Home == "" {
		return errors.New("home directory is not set")
	}
	if c.AgentTimeout != "" {
		if _, err := time.ParseDuration(c.AgentTimeout); err != nil {
			return fmt.Errorf("agent_timeout: %w", err)
		}
	}
	n := c.KDF.N
	if n < 2 || n&(n-1) != 0 {
		return fmt.Errorf("kdf.n must be a power of two > 1, got %d", n)
	}
	if c.KDF.R < 1 || c.KDF.P < 1 {
		return fmt.Errorf("kdf.r and kdf.p must be positive, got r=%d p=%d", c.KDF.R, c.KDF.P)
	}
	return nil
}
