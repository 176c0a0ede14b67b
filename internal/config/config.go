package config

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "strings"

    "pricesync/internal/orderbook"
    "pricesync/internal/telemetry"
)

type Server struct {
    Port              string   `json:"port"`
    RequestTimeoutSec int      `json:"request_timeout_sec"`
    AllowedOrigins    []string `json:"allowed_origins"`
}

type Rates struct {
    BaseURL string `json:"base_url"`
}

type Coinbase struct {
    BaseURL string `json:"base_url"`
    // APIVersion is sent as CB-VERSION when set.
    APIVersion string `json:"api_version"`
}

type Upstream struct {
    // TimeoutSec bounds each provider call. 0 leaves it to the transport.
    TimeoutSec int    `json:"timeout_sec"`
    UserAgent  string `json:"user_agent"`
}

type Log struct {
    Level string `json:"level"`
    JSON  bool   `json:"json"`
}

type Config struct {
    Server    Server           `json:"server"`
    Rates     Rates            `json:"rates"`
    Coinbase  Coinbase         `json:"coinbase"`
    Upstream  Upstream         `json:"upstream"`
    Database  orderbook.Config `json:"database"`
    Log       Log              `json:"log"`
    Telemetry telemetry.Config `json:"telemetry"`
}

func Default() Config {
    return Config{
        Server:   Server{Port: "8080", RequestTimeoutSec: 30, AllowedOrigins: []string{"*"}},
        Rates:    Rates{BaseURL: "https://api.exchangerate-api.com/v4/latest"},
        Coinbase: Coinbase{BaseURL: "https://api.coinbase.com/v2"},
        Upstream: Upstream{TimeoutSec: 0, UserAgent: "pricesync/1.0"},
        Database: orderbook.Config{
            Driver:          "mysql",
            DSN:             "orderbook:orderbook@tcp(orderbookdb:3306)/orderbook?parseTime=true&loc=Local",
            SlowQueryMillis: 200,
        },
        Log:       Log{Level: "info"},
        Telemetry: telemetry.Config{Enabled: true, ServiceName: "pricesync"},
    }
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it returns defaults. Environment variables override select fields for secrecy.
func Load(path string) (Config, error) {
    cfg := Default()
    if path == "" {
        if _, err := os.Stat("config.json"); err == nil {
            path = "config.json"
        }
    }
    if path != "" {
        b, err := os.ReadFile(path)
        if err != nil && !errors.Is(err, os.ErrNotExist) {
            return cfg, fmt.Errorf("read config: %w", err)
        }
        if err == nil {
            if err := json.Unmarshal(b, &cfg); err != nil {
                return cfg, fmt.Errorf("parse config: %w", err)
            }
        }
    }
    applyEnv(&cfg)
    if err := cfg.Validate(); err != nil {
        return cfg, err
    }
    return cfg, nil
}

func (c Config) Validate() error {
    switch c.Database.Driver {
    case "mysql", "sqlite":
    default:
        return fmt.Errorf("database.driver must be mysql or sqlite, got %q", c.Database.Driver)
    }
    if strings.TrimSpace(c.Database.DSN) == "" {
        return errors.New("database.dsn is required")
    }
    if c.Rates.BaseURL == "" || c.Coinbase.BaseURL == "" {
        return errors.New("provider base urls are required")
    }
    if c.Upstream.TimeoutSec < 0 {
        return errors.New("upstream.timeout_sec must not be negative")
    }
    return nil
}

func applyEnv(cfg *Config) {
    if v := os.Getenv("PORT"); v != "" { cfg.Server.Port = v }
    if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Server.RequestTimeoutSec = x }
    }
    if v := os.Getenv("ALLOWED_ORIGINS"); v != "" { cfg.Server.AllowedOrigins = splitCSV(v) }
    if v := os.Getenv("RATES_BASE_URL"); v != "" { cfg.Rates.BaseURL = v }
    if v := os.Getenv("COINBASE_BASE_URL"); v != "" { cfg.Coinbase.BaseURL = v }
    if v := os.Getenv("COINBASE_API_VERSION"); v != "" { cfg.Coinbase.APIVersion = v }
    if v := os.Getenv("UPSTREAM_TIMEOUT_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x >= 0 { cfg.Upstream.TimeoutSec = x }
    }
    if v := os.Getenv("DB_DRIVER"); v != "" { cfg.Database.Driver = strings.ToLower(v) }
    if v := os.Getenv("DB_DSN"); v != "" { cfg.Database.DSN = v }
    if v := os.Getenv("LOG_LEVEL"); v != "" { cfg.Log.Level = v }
    if v := os.Getenv("LOG_JSON"); v != "" { cfg.Log.JSON = parseBool(v, cfg.Log.JSON) }
    if v := os.Getenv("METRICS_ENABLED"); v != "" { cfg.Telemetry.Enabled = parseBool(v, cfg.Telemetry.Enabled) }
}

func parseBool(v string, def bool) bool {
    switch strings.ToLower(v) {
    case "1", "true", "yes", "y":
        return true
    case "0", "false", "no", "n":
        return false
    }
    return def
}

func splitCSV(s string) []string {
    parts := strings.Split(s, ",")
    out := make([]string, 0, len(parts))
    for _, p := range parts {
        p = strings.TrimSpace(p)
        if p != "" { out = append(out, p) }
    }
    return out
}
