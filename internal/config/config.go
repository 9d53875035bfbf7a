// Package config loads service settings from the environment and flags.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
)

// Server holds the settings for `healthd serve`. Every field can be given as
// a flag or through the named environment variable.
type Server struct {
	Addr             string `help:"Listen address." env:"ADDR" default:":8080"`
	DatabaseURL      string `help:"PostgreSQL connection string. Empty uses the in-memory store." env:"DATABASE_URL"`
	WebDir           string `help:"Directory served at /." env:"WEB_DIR" default:"web"`
	LogLevel         string `help:"Log level (debug, info, warn, error)." env:"LOG_LEVEL" default:"info"`
	LogFile          string `help:"Optional rotating log file." env:"LOG_FILE"`
	NotifyWebhook    string `help:"URL that receives goal and achievement events." env:"NOTIFY_WEBHOOK_URL"`
	InsightsWindow   int    `help:"Days per trend window." env:"INSIGHTS_WINDOW" default:"7"`
	DisableAuth      bool   `help:"Serve every request as a single local user. Development only." env:"DISABLE_AUTH"`
	TrustForwardAuth bool   `help:"Trust the Remote-User header from an authenticating reverse proxy." env:"TRUST_FORWARD_AUTH"`

	OIDC OIDC `embed:"" prefix:"oidc-"`
}

// OIDC holds single sign-on settings. SSO is enabled when Issuer is set.
type OIDC struct {
	Issuer       string `help:"OIDC issuer URL." env:"OIDC_ISSUER"`
	ClientID     string `help:"OIDC client id." env:"OIDC_CLIENT_ID"`
	ClientSecret string `help:"OIDC client secret." env:"OIDC_CLIENT_SECRET"`
	RedirectURL  string `help:"OIDC callback URL." env:"OIDC_REDIRECT_URL"`
}

// Enabled reports whether SSO is configured.
func (o OIDC) Enabled() bool { return o.Issuer != "" }

// Validate checks that an enabled SSO configuration is complete.
func (o OIDC) Validate() error {
	if !o.Enabled() {
		return nil
	}
	if o.ClientID == "" || o.RedirectURL == "" {
		return errors.New("oidc: client id and redirect url are required when issuer is set")
	}
	return nil
}

// SSO is a discovered OIDC provider with its OAuth2 client.
type SSO struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// Provider discovers the issuer and builds the OAuth2 client. A disabled
// configuration returns an SSO with Enabled false.
func (o OIDC) Provider(ctx context.Context) (SSO, error) {
	if !o.Enabled() {
		return SSO{}, nil
	}
	if err := o.Validate(); err != nil {
		return SSO{}, err
	}
	p, err := oidc.NewProvider(ctx, o.Issuer)
	if err != nil {
		return SSO{}, fmt.Errorf("oidc discovery: %w", err)
	}
	return SSO{
		Enabled:  true,
		Provider: p,
		OAuth2Config: oauth2.Config{
			ClientID:     o.ClientID,
			ClientSecret: o.ClientSecret,
			RedirectURL:  o.RedirectURL,
			Endpoint:     p.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

// LoadDotenv reads variables from the given files into the environment.
// Variables already set win. Missing files are ignored.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}
