// Package config reads site configuration from the environment. A
// local .env file is honored via the godotenv autoload import in the
// command entrypoint.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is everything the server binary needs from the environment.
type Config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	ProjectsPath string `env:"PROJECTS_PATH" envDefault:"data/projects.json"`
	MetricsDB    string `env:"METRICS_DB" envDefault:"data/metrics.db"`

	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	GitHubToken string `env:"GITHUB_TOKEN"`

	SMTP SMTPConfig `envPrefix:"SMTP_"`
	// ContactAddress receives contact form submissions.
	ContactAddress string `env:"TO_EMAIL"`
}

// SMTPConfig configures the outbound mail relay for the contact form.
type SMTPConfig struct {
	Host     string `env:"HOST" envDefault:"smtp.gmail.com"`
	Port     string `env:"PORT" envDefault:"587"`
	User     string `env:"USER"`
	Password string `env:"PASS"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &cfg, nil
}
