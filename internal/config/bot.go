package config

// Bot sends sync reports to a Telegram chat and accepts admin commands.
// Notifications are off while the token is empty; commands also need at
// least one admin id.
type Bot struct {
	Token    string  `env:"BOT_TOKEN" json:"-"`
	ChatID   int64   `env:"BOT_CHAT_ID"`
	AdminIDs []int64 `env:"BOT_ADMIN_IDS" envSeparator:","`
}

func (b Bot) Enabled() bool {
	return b.Token != "" && b.ChatID != 0
}

func (b Bot) CommandsEnabled() bool {
	return b.Token != "" && len(b.AdminIDs) > 0
}
