package config

import (
	"fmt"
	"time"
)

// BaseConfig is the root application configuration. Values come from
// config files and environment overrides loaded by go-config.
type BaseConfig struct {
	Server      *Server      `json:"server" koanf:"server"`
	Auth        *Auth        `json:"auth" koanf:"auth"`
	Persistence *Persistence `json:"persistence" koanf:"persistence"`
	Mailer      *Mailer      `json:"mailer" koanf:"mailer"`
	Debug       bool         `json:"debug" koanf:"debug"`
}

type Server struct {
	Host string `json:"host" koanf:"host"`
	Port int    `json:"port" koanf:"port"`
}

func (s *Server) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type Auth struct {
	SigningKey      string   `json:"signing_key" koanf:"signing_key"`
	TokenExpiration int      `json:"token_expiration" koanf:"token_expiration"`
	Issuer          string   `json:"issuer" koanf:"issuer"`
	Audience        []string `json:"audience" koanf:"audience"`
	ContextKey      string   `json:"context_key" koanf:"context_key"`
	AuthScheme      string   `json:"auth_scheme" koanf:"auth_scheme"`
}

func (a *Auth) GetSigningKey() string   { return a.SigningKey }
func (a *Auth) GetTokenExpiration() int { return a.TokenExpiration }
func (a *Auth) GetIssuer() string       { return a.Issuer }
func (a *Auth) GetAudience() []string   { return a.Audience }
func (a *Auth) GetContextKey() string   { return a.ContextKey }
func (a *Auth) GetAuthScheme() string   { return a.AuthScheme }

type Persistence struct {
	Debug                 bool   `json:"debug" koanf:"debug"`
	Driver                string `json:"driver" koanf:"driver"`
	Server                string `json:"server" koanf:"server"`
	Database              string `json:"database" koanf:"database"`
	DSN                   string `json:"dsn" koanf:"dsn"`
	PingTimeoutExpression string `json:"ping_timeout" koanf:"ping_timeout"`
	OtelIdentifier        string `json:"otel_identifier" koanf:"otel_identifier"`
}

func (p *Persistence) GetDebug() bool            { return p.Debug }
func (p *Persistence) GetDriver() string         { return p.Driver }
func (p *Persistence) GetServer() string         { return p.Server }
func (p *Persistence) GetDatabase() string       { return p.Database }
func (p *Persistence) GetDSN() string            { return p.DSN }
func (p *Persistence) GetOtelIdentifier() string { return p.OtelIdentifier }

func (p *Persistence) GetPingTimeout() time.Duration {
	if p.PingTimeoutExpression == "" {
		return 5 * time.Second
	}
	dur, err := time.ParseDuration(p.PingTimeoutExpression)
	if err != nil {
		panic(
			fmt.Sprintf("unable to parse time: expr %s", p.PingTimeoutExpression),
		)
	}
	return dur
}

type Mailer struct {
	Enabled  bool   `json:"enabled" koanf:"enabled"`
	Host     string `json:"host" koanf:"host"`
	Port     int    `json:"port" koanf:"port"`
	Username string `json:"username" koanf:"username"`
	Password string `json:"password" koanf:"password"`
	From     string `json:"from" koanf:"from"`
	BaseURL  string `json:"base_url" koanf:"base_url"`
}

func (m *Mailer) GetEnabled() bool    { return m.Enabled }
func (m *Mailer) GetHost() string     { return m.Host }
func (m *Mailer) GetPort() int        { return m.Port }
func (m *Mailer) GetUsername() string { return m.Username }
func (m *Mailer) GetPassword() string { return m.Password }
func (m *Mailer) GetFrom() string     { return m.From }
func (m *Mailer) GetBaseURL() string  { return m.BaseURL }

func (m *Mailer) GetAddr() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}

func (c *BaseConfig) GetServer() *Server {
	return c.Server
}

func (c *BaseConfig) GetAuth() *Auth {
	return c.Auth
}

func (c *BaseConfig) GetPersistence() *Persistence {
	return c.Persistence
}

func (c *BaseConfig) GetMailer() *Mailer {
	return c.Mailer
}

func (c *BaseConfig) GetDebug() bool {
	return c.Debug
}

// Validate rejects configurations that cannot produce a working service.
func (c *BaseConfig) Validate() error {
	if c.Auth == nil {
		return fmt.Errorf("config: missing auth section")
	}

	if len(c.Auth.SigningKey) < 32 {
		return fmt.Errorf("config: auth signing key must be at least 32 bytes")
	}

	if c.Auth.TokenExpiration <= 0 {
		return fmt.Errorf("config: token expiration must be positive")
	}

	if c.Persistence == nil || c.Persistence.DSN == "" {
		return fmt.Errorf("config: missing persistence DSN")
	}

	if c.Server == nil || c.Server.Port == 0 {
		return fmt.Errorf("config: missing server port")
	}

	if c.Mailer != nil && c.Mailer.Enabled {
		if c.Mailer.Host == "" || c.Mailer.From == "" {
			return fmt.Errorf("config: mailer requires host and from address")
		}
	}

	return nil
}

// Default returns the baseline configuration before file and environment
// overrides are applied.
func Default() *BaseConfig {
	return &BaseConfig{
		Server: &Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Auth: &Auth{
			TokenExpiration: 1,
			Issuer:          "go-shop",
			Audience:        []string{"go-shop"},
			ContextKey:      "user",
			AuthScheme:      "Bearer",
		},
		Persistence: &Persistence{
			Driver: "sqlite",
			DSN:    "file:app.db?cache=shared&_pragma=foreign_keys(1)",
		},
		Mailer: &Mailer{
			Enabled: false,
			Port:    587,
			From:    "no-reply@example.com",
			BaseURL: "http://localhost:8080",
		},
	}
}
