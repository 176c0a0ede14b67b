package orderbook

import (
	"time"

	"github.com/shopspring/decimal"
)

// CryptoAssetType is the asset_type of every record written by the synchronizer.
const CryptoAssetType = "Crypto Curr"

// Asset is one row of the orderbook assets table.
type Asset struct {
	Symbol      string          `gorm:"primaryKey;type:varchar(16)" json:"symbol"`
	Price       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"`
	AssetType   string          `gorm:"type:varchar(12)" json:"asset_type"`
	DisplayName string          `gorm:"type:varchar(128)" json:"display_name"`
	LastUpdate  time.Time       `gorm:"not null" json:"last_update"`
}

func (Asset) TableName() string { return "assets" }
