package workspacefinder

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/shipquote/internal/domain"
)

// EnvPrefix is the prefix of environment overrides (SHIPQUOTE_STORE_PATH, ...).
const EnvPrefix = "SHIPQUOTE"

// LoadConfig loads shipquote.yaml from the workspace root, applies it on top
// of defaults, then applies environment overrides. A .env file in root is
// loaded first; variables already set in the process win over it.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if err := applyYAML(&cfg, path, y); err != nil {
		return cfg, err
	}

	if err := loadDotEnv(root); err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := validate(path, cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

type yamlConfig struct {
	Shipquote struct {
		Store struct {
			Driver    string `yaml:"driver"`
			Path      string `yaml:"path"`
			OnCorrupt string `yaml:"on_corrupt"`
		} `yaml:"store"`

		OrdersDir string `yaml:"orders_dir"`

		Server struct {
			Addr string `yaml:"addr"`
		} `yaml:"server"`

		Shipping map[string]yamlRate `yaml:"shipping"`
	} `yaml:"shipquote"`
}

type yamlRate struct {
	Base       *string  `yaml:"base"`
	PerKM      *string  `yaml:"per_km"`
	IncludedKM *float64 `yaml:"included_km"`
}

// envOverrides is filled by envconfig; empty values leave the config as is.
type envOverrides struct {
	StoreDriver    string `envconfig:"STORE_DRIVER"`
	StorePath      string `envconfig:"STORE_PATH"`
	StoreOnCorrupt string `envconfig:"STORE_ON_CORRUPT"`
	OrdersDir      string `envconfig:"ORDERS_DIR"`
	ServerAddr     string `envconfig:"SERVER_ADDR"`
}

func applyYAML(cfg *domain.Config, path string, y yamlConfig) error {
	s := y.Shipquote
	if s.Store.Driver != "" {
		cfg.Store.Driver = domain.StoreDriver(strings.ToLower(s.Store.Driver))
	}
	if s.Store.Path != "" {
		cfg.Store.Path = s.Store.Path
	}
	if s.Store.OnCorrupt != "" {
		cfg.Store.OnCorrupt = domain.CorruptPolicy(strings.ToLower(s.Store.OnCorrupt))
	}
	if s.OrdersDir != "" {
		cfg.OrdersDir = s.OrdersDir
	}
	if s.Server.Addr != "" {
		cfg.Server.Addr = s.Server.Addr
	}

	for kind, r := range s.Shipping {
		field := "shipping." + kind
		o := domain.RateOverride{IncludedKM: r.IncludedKM}

		if r.Base != nil {
			a, err := parseRate(path, field+".base", *r.Base)
			if err != nil {
				return err
			}
			o.Base = &a
		}
		if r.PerKM != nil {
			a, err := parseRate(path, field+".per_km", *r.PerKM)
			if err != nil {
				return err
			}
			o.PerKM = &a
		}
		if o.IncludedKM != nil && domain.ValidateDistance(*o.IncludedKM) != nil {
			return invalidField(path, field+".included_km", "must be a finite number >= 0")
		}

		cfg.Shipping[strings.ToLower(strings.TrimSpace(kind))] = o
	}
	return nil
}

func parseRate(path, field, raw string) (domain.Amount, error) {
	a, err := domain.ParseAmount(strings.TrimSpace(raw))
	if err != nil {
		return domain.Zero, invalidField(path, field, fmt.Sprintf("not a number: %q", raw))
	}
	if a.IsNegative() {
		return domain.Zero, invalidField(path, field, "cannot be negative")
	}
	return a, nil
}

func loadDotEnv(root string) error {
	path := filepath.Join(root, ".env")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return &domain.OpError{
			Op:   "workspacefinder.dotenv",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return nil
}

func applyEnv(cfg *domain.Config) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return &domain.OpError{
			Op:   "workspacefinder.env",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}

	if env.StoreDriver != "" {
		cfg.Store.Driver = domain.StoreDriver(strings.ToLower(env.StoreDriver))
	}
	if env.StorePath != "" {
		cfg.Store.Path = env.StorePath
	}
	if env.StoreOnCorrupt != "" {
		cfg.Store.OnCorrupt = domain.CorruptPolicy(strings.ToLower(env.StoreOnCorrupt))
	}
	if env.OrdersDir != "" {
		cfg.OrdersDir = env.OrdersDir
	}
	if env.ServerAddr != "" {
		cfg.Server.Addr = env.ServerAddr
	}
	return nil
}

func validate(path string, cfg domain.Config) error {
	if !cfg.Store.Driver.Valid() {
		return invalidField(path, "store.driver", fmt.Sprintf("unsupported driver %q (want json or sqlite)", cfg.Store.Driver))
	}
	if !cfg.Store.OnCorrupt.Valid() {
		return invalidField(path, "store.on_corrupt", fmt.Sprintf("unsupported policy %q (want recover, backup or fail)", cfg.Store.OnCorrupt))
	}
	return nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "workspacefinder.loadconfig",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
