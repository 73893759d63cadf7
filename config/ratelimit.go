package config

type RateLimit struct {
	// 公開 API 來源限流開關
	Enabled bool `mapstructure:"ENABLED" json:"enabled" yaml:"enabled"`
	// 視窗長度（秒），預設 60
	WindowSeconds int64 `mapstructure:"WINDOW_SECONDS" json:"window_seconds" yaml:"window_seconds"`
	// 視窗內允許的請求數，預設 120
	LimitCount int `mapstructure:"LIMIT_COUNT" json:"limit_count" yaml:"limit_count"`
}
