package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/abhisek/lddscreen/internal/analyzer"
	"github.com/abhisek/lddscreen/internal/customrules"
	"github.com/abhisek/lddscreen/internal/llm"
	"github.com/abhisek/lddscreen/internal/narrative"
)

// PathEnv names the variable holding the config file path.
const PathEnv = "LDD_CONFIG"

// envPrefix is shared by every variable Load reads.
const envPrefix = "LDD_"

type Config struct {
	Env string `yaml:"env" env:"LDD_ENV" env-default:"local"`

	// DBPath is the sqlite archive; empty resolves to store.DefaultDBPath.
	DBPath string `yaml:"db_path" env:"LDD_DB"`

	Report      Report                   `yaml:"report"`
	Analyzer    analyzer.Config          `yaml:"analyzer"`
	HTTPServer  HTTPServer               `yaml:"http_server"`
	LLM         llm.Config               `yaml:"llm"`
	Narrative   narrative.Config         `yaml:"narrative"`
	CustomRules []customrules.Definition `yaml:"custom_rules"`
}

type Report struct {
	// IDScheme is "clock" (LDD-<unix ms>) or "uuid".
	IDScheme      string `yaml:"id_scheme" env:"LDD_REPORT_ID_SCHEME" env-default:"clock"`
	SystemVersion string `yaml:"system_version" env:"LDD_SYSTEM_VERSION"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"LDD_HTTP_ADDRESS" env-default:"127.0.0.1:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"90s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"120s"`
}

// Load reads the YAML file at path, or at $LDD_CONFIG when path is empty,
// and then applies environment overrides and defaults. With no file at
// all only the environment is read.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(PathEnv)
	}
	dropEmptyOverrides()

	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read config from environment: %w", err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	return &cfg, nil
}

// dropEmptyOverrides unsets LDD_* variables that are set to "". cleanenv
// treats them as values, which would clear file settings and defaults.
func dropEmptyOverrides() {
	for _, kv := range os.Environ() {
		name, value, _ := strings.Cut(kv, "=")
		if value == "" && strings.HasPrefix(name, envPrefix) {
			_ = os.Unsetenv(name)
		}
	}
}
