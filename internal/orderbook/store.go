package orderbook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/hashicorp/go-hclog"
	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"pricesync/internal/fault"
	"pricesync/internal/quote"
	"pricesync/internal/telemetry"
)

// maxPrice is the first value that no longer fits decimal(15,2).
var maxPrice = decimal.New(1, 13)

type Config struct {
	// Driver is "mysql" or "sqlite".
	Driver string `json:"driver"`
	DSN    string `json:"dsn"`
	// SlowQueryMillis is the threshold above which statements are logged as slow.
	SlowQueryMillis int `json:"slow_query_ms"`
}

// Store owns the assets table. Every operation runs on its own pooled
// connection, released when the operation returns.
type Store struct {
	db     *gorm.DB
	now    func() time.Time
	logger hclog.Logger
}

// StoreOption is a configuration option for the Store.
type StoreOption func(*Store)

// WithClock overrides the source of last_update timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the store logger.
func WithLogger(logger hclog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// Open connects to the configured database and creates the assets table if it
// does not exist yet.
func Open(cfg Config, logger hclog.Logger, opts ...StoreOption) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	slow := time.Duration(cfg.SlowQueryMillis) * time.Millisecond
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}
	gormLog := gormlogger.New(
		logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}),
		gormlogger.Config{
			SlowThreshold:             slow,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", cfg.Driver, err)
	}

	store, err := NewStore(db, append([]StoreOption{WithLogger(logger)}, opts...)...)
	if err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	return store, nil
}

// NewStore wraps an existing gorm handle and migrates the schema.
func NewStore(db *gorm.DB, opts ...StoreOption) (*Store, error) {
	s := &Store{db: db, now: time.Now, logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(s)
	}
	if err := db.AutoMigrate(&Asset{}); err != nil {
		return nil, fmt.Errorf("creating assets table: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// session runs fn on a dedicated connection and always hands it back to the pool.
func (s *Store) session(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Connection(fn)
}

// UpdatePrice sets the price of an existing asset. It never creates a row.
func (s *Store) UpdatePrice(ctx context.Context, symbol string, price decimal.Decimal) (Asset, error) {
	symbol = quote.Normalize(symbol)
	if symbol == "" {
		return Asset{}, fault.New(fault.InvalidArgument, "symbol is required")
	}
	price, err := normalizePrice(price)
	if err != nil {
		return Asset{}, err
	}

	var updated Asset
	err = s.session(ctx, func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			var current Asset
			if err := tx.Where("symbol = ?", symbol).Take(&current).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fault.New(fault.AssetNotFound, "asset %s does not exist", symbol)
				}
				return fault.Wrap(fault.Persistence, err, "reading asset %s", symbol)
			}

			current.Price = price
			current.LastUpdate = s.stamp(current.LastUpdate)
			res := tx.Model(&Asset{}).
				Where("symbol = ?", symbol).
				Updates(map[string]any{"price": current.Price, "last_update": current.LastUpdate})
			if res.Error != nil {
				return fault.Wrap(fault.Persistence, res.Error, "updating price of %s", symbol)
			}
			updated = current
			return nil
		})
	})
	if err != nil {
		if fault.KindOf(err) == fault.Unknown {
			err = fault.Wrap(fault.Persistence, err, "updating price of %s", symbol)
		}
		telemetry.OrderbookWrite("update_price", fault.KindOf(err).String())
		return Asset{}, err
	}

	telemetry.OrderbookWrite("update_price", "ok")
	telemetry.OrderbookPrice(symbol, updated.Price.InexactFloat64())
	s.logger.Info("asset price updated", "symbol", symbol, "price", updated.Price.StringFixed(2))

	return updated, nil
}

// Upsert inserts asset when the symbol is new, otherwise price, type, name and
// timestamp are overwritten. last_update never moves behind the stored value.
func (s *Store) Upsert(ctx context.Context, asset Asset) (Asset, error) {
	asset.Symbol = quote.Normalize(asset.Symbol)
	if asset.Symbol == "" {
		return Asset{}, fault.New(fault.InvalidArgument, "symbol is required")
	}
	price, err := normalizePrice(asset.Price)
	if err != nil {
		return Asset{}, err
	}
	asset.Price = price

	err = s.session(ctx, func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			var prev Asset
			err := tx.Select("last_update").Where("symbol = ?", asset.Symbol).Take(&prev).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			asset.LastUpdate = s.stamp(prev.LastUpdate)

			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "symbol"}},
				DoUpdates: clause.AssignmentColumns([]string{"price", "asset_type", "display_name", "last_update"}),
			}).Create(&asset).Error
		})
	})
	if err != nil {
		telemetry.OrderbookWrite("upsert", fault.Persistence.String())
		return Asset{}, fault.Wrap(fault.Persistence, err, "writing asset %s", asset.Symbol)
	}

	telemetry.OrderbookWrite("upsert", "ok")
	telemetry.OrderbookPrice(asset.Symbol, asset.Price.InexactFloat64())
	s.logger.Info("asset written", "symbol", asset.Symbol, "price", asset.Price.StringFixed(2), "name", asset.DisplayName)

	return asset, nil
}

// Get returns the asset stored under symbol.
func (s *Store) Get(ctx context.Context, symbol string) (Asset, error) {
	symbol = quote.Normalize(symbol)
	var asset Asset
	err := s.session(ctx, func(conn *gorm.DB) error {
		return conn.Where("symbol = ?", symbol).Take(&asset).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Asset{}, fault.New(fault.AssetNotFound, "asset %s does not exist", symbol)
	}
	if err != nil {
		return Asset{}, fault.Wrap(fault.Persistence, err, "reading asset %s", symbol)
	}
	return asset, nil
}

// List returns every asset ordered by symbol.
func (s *Store) List(ctx context.Context) ([]Asset, error) {
	assets := make([]Asset, 0)
	err := s.session(ctx, func(conn *gorm.DB) error {
		return conn.Order("symbol").Find(&assets).Error
	})
	if err != nil {
		return nil, fault.Wrap(fault.Persistence, err, "listing assets")
	}
	return assets, nil
}

// stamp returns the timestamp for a write, never earlier than prev.
func (s *Store) stamp(prev time.Time) time.Time {
	now := s.now()
	if now.Before(prev) {
		return prev
	}
	return now
}

func normalizePrice(price decimal.Decimal) (decimal.Decimal, error) {
	if price.IsNegative() {
		return decimal.Decimal{}, fault.New(fault.InvalidArgument, "price must not be negative, got %s", price.String())
	}
	price = price.Round(2)
	if price.GreaterThanOrEqual(maxPrice) {
		return decimal.Decimal{}, fault.New(fault.InvalidArgument, "price %s does not fit 15 digits with 2 decimals", price.String())
	}
	return price, nil
}

// ParsePrice parses a caller-supplied price string.
func ParsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fault.Wrap(fault.InvalidArgument, err, "price %q is not numeric", raw)
	}
	return normalizePrice(price)
}
