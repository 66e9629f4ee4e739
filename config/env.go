package config

import (
	"errors"
	"io/fs"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// EnvOverrides holds the settings that may come from the process environment
type EnvOverrides struct {
	ConfigPath      string `env:"CONFIG_PATH,default=config.yaml"`
	Port            string `env:"PORT"`
	TokensFile      string `env:"COINGECKO_TOKENS_FILE"`
	APIKey          string `env:"COINGECKO_API_KEY"`
	DemoAPIKey      string `env:"COINGECKO_DEMO_API_KEY"`
	PublicURL       string `env:"COINGECKO_PUBLIC_URL"`
	ProURL          string `env:"COINGECKO_PRO_URL"`
	DefaultCurrency string `env:"DASHBOARD_DEFAULT_CURRENCY"`
}

// LoadDotEnv loads variables from the given .env files; missing files are ignored
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ReadEnv decodes EnvOverrides from the environment
func ReadEnv() (EnvOverrides, error) {
	var env EnvOverrides
	if err := envdecode.Decode(&env); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return env, err
	}
	return env, nil
}

// ApplyEnv overrides config values with the ones set in the environment
func (c *Config) ApplyEnv() error {
	env, err := ReadEnv()
	if err != nil {
		return err
	}
	c.applyOverrides(env)
	return nil
}

func (c *Config) applyOverrides(env EnvOverrides) {
	if env.Port != "" {
		c.Port = env.Port
	}
	if env.TokensFile != "" {
		c.TokensFile = env.TokensFile
	}
	if env.PublicURL != "" {
		c.OverrideCoingeckoPublicURL = env.PublicURL
	}
	if env.ProURL != "" {
		c.OverrideCoingeckoProURL = env.ProURL
	}
	if env.DefaultCurrency != "" {
		c.Dashboard.DefaultCurrency = env.DefaultCurrency
		c.Dashboard.normalize()
	}
	if env.APIKey != "" || env.DemoAPIKey != "" {
		c.APITokens = c.APITokens.Merge(&APITokens{
			Tokens:     []string{env.APIKey},
			DemoTokens: []string{env.DemoAPIKey},
		})
	}
}
