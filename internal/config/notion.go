package config

import "time"

type Notion struct {
	Token   string        `env:"NOTION_TOKEN,notEmpty" json:"-"`
	BaseURL string        `env:"NOTION_BASE_URL" envDefault:"https://api.notion.com/v1"`
	Timeout time.Duration `env:"NOTION_TIMEOUT" envDefault:"30s"`
	// CacheTTL of zero disables the redis response cache.
	CacheTTL time.Duration `env:"NOTION_CACHE_TTL" envDefault:"1m"`

	LotteryDatabaseID   string `env:"NOTION_LOTTERY_DB_ID" envDefault:"9e151c3d30b14d1bae8dd972d17198c1"`
	BoxConfigDatabaseID string `env:"NOTION_BOX_CONFIG_DB_ID" envDefault:"7d22b7c4a4be432a9f746af7c24e6cfb"`
	WorkshopDatabaseID  string `env:"NOTION_WORKSHOP_DB_ID" envDefault:"6bde2c7f-f62f-4c8a-ad5b-b503eb706164"`
	CommodityDatabaseID string `env:"NOTION_COMMODITY_DB_ID,notEmpty"`
}
