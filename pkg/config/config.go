package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config regroupe la configuration de l'application (lecture via Viper depuis env et optionnellement fichier).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	JWT     JWTConfig
	Storage StorageConfig
	DB      DBConfig
	Finance FinanceConfig
}

// AppConfig configuration générale de l'application.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuration du serveur HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr renvoie l'adresse d'écoute (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuration des jetons JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutes
	Issuer     string
}

// StorageConfig choix du backend de persistance des dossiers.
// "memory" (défaut) : état en mémoire, durée de vie du processus.
// "postgres" : PostgreSQL via pgx (nécessite DATABASE_URL ou DB_*).
type StorageConfig struct {
	Driver string
}

// FinanceConfig règles financières.
// BalanceMode "observed" : toutes les provisions comptent dans le solde client,
// encaissées ou non (comportement historique de l'application).
// BalanceMode "strict" : seules les provisions encaissées comptent.
type FinanceConfig struct {
	BalanceMode string
}

// DBConfig configuration PostgreSQL.
// Si DatabaseURL est non vide, il est utilisé tel quel comme connection string.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString renvoie le DSN à utiliser : DATABASE_URL si défini, sinon celui construit avec DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN construit le connection string PostgreSQL avec encodage URL du mot de passe.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// Load lit la configuration depuis les variables d'environnement (et optionnellement un fichier .env).
// Les variables d'environnement sont prioritaires. Noms attendus : APP_ENV, HTTP_PORT, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Optionnel : fichier .env à la racine
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // on ignore l'erreur si le fichier n'existe pas

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "transit-secure"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "transit-secure"),
		},
		Storage: StorageConfig{
			Driver: getString(v, "STORAGE_DRIVER", "memory"),
		},
		Finance: FinanceConfig{
			BalanceMode: getString(v, "FINANCE_BALANCE_MODE", "observed"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "transit_secure"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
	}

	if cfg.Storage.Driver != "memory" && cfg.Storage.Driver != "postgres" {
		return nil, fmt.Errorf("config: STORAGE_DRIVER inconnu %q (attendu memory ou postgres)", cfg.Storage.Driver)
	}
	if cfg.Finance.BalanceMode != "observed" && cfg.Finance.BalanceMode != "strict" {
		return nil, fmt.Errorf("config: FINANCE_BALANCE_MODE inconnu %q (attendu observed ou strict)", cfg.Finance.BalanceMode)
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
