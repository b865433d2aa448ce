package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "./config/local.yaml"

// Níveis usados diretamente pelas rotas; precisam existir em auth.privilege_levels.
const (
	LevelUser       = "USER"
	LevelSupervisor = "SUPERVISOR"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"prod"`
	HTTPServer `yaml:"http_server"`
	DB         DB        `yaml:"db"`
	Auth       Auth      `yaml:"auth"`
	Metrics    Metrics   `yaml:"metrics"`
	CORS       CORS      `yaml:"cors"`
	Log        Log       `yaml:"log"`
	LoginRate  RateLimit `yaml:"login_rate"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8000"`
	Timeout     time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type DB struct {
	User            string        `yaml:"user" env:"DB_USER" env-required:"true"`
	Password        string        `yaml:"password" env:"DB_PASSWORD"`
	Host            string        `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"DB_PORT" env-default:"3306"`
	Name            string        `yaml:"name" env:"DB_NAME" env-required:"true"`
	MaxOpenConns    int           `yaml:"max_open_conns" env-default:"20"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env-default:"5m"`
	InitSchema      bool          `yaml:"init_schema" env:"DB_INIT_SCHEMA" env-default:"false"`
}

// Auth substitui o SECRET_KEY global e a lista de níveis de privilégio.
type Auth struct {
	JWTSecret       string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL        time.Duration `yaml:"token_ttl" env-default:"60m"`
	CookieName      string        `yaml:"cookie_name" env-default:"access_token"`
	CookieSecure    bool          `yaml:"cookie_secure" env:"COOKIE_SECURE" env-default:"false"`
	PrivilegeLevels []string      `yaml:"privilege_levels" env-separator:"," env-default:"USER,GESTAO,PCP,SUPERVISOR,ADMIN"`
}

type Metrics struct {
	User string `yaml:"user" env:"METRICS_USER" env-default:"metrics"`
	Pass string `yaml:"pass" env:"METRICS_PASS"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env-separator:"," env-default:"http://localhost:3001,http://localhost:5173"`
}

type Log struct {
	ErrorFile string `yaml:"error_file" env-default:"errors.log"`
}

type RateLimit struct {
	Requests int           `yaml:"requests" env-default:"10"`
	Window   time.Duration `yaml:"window" env-default:"1m"`
}

// Load lê o YAML apontado por path e sobrepõe variáveis de ambiente.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: config file %s: %w", op, path, err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

func MustConfig() *Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return errors.New("auth.jwt_secret must have at least 32 characters")
	}
	if len(c.Auth.PrivilegeLevels) == 0 {
		return errors.New("auth.privilege_levels must not be empty")
	}
	seen := make(map[string]struct{}, len(c.Auth.PrivilegeLevels))
	for _, lvl := range c.Auth.PrivilegeLevels {
		if _, ok := seen[lvl]; ok {
			return fmt.Errorf("auth.privilege_levels: duplicated level %q", lvl)
		}
		seen[lvl] = struct{}{}
	}
	for _, required := range []string{LevelUser, LevelSupervisor} {
		if _, ok := seen[required]; !ok {
			return fmt.Errorf("auth.privilege_levels: missing level %q", required)
		}
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	return nil
}

// DSN monta a string de conexão do go-sql-driver/mysql.
func (h HTTPServer) WriteTimeout() time.Duration {
	return 2 * h.Timeout
}

// ExportTimeout limita a geração de planilhas e fica abaixo de WriteTimeout,
// para o handler desistir antes de o servidor cortar a escrita.
func (h HTTPServer) ExportTimeout() time.Duration {
	return h.Timeout + h.Timeout/2
}

func (d DB) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=Local&charset=utf8mb4",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Name,
	)
}
