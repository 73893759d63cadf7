package config

type Mission struct {
	// 任務重置排程所使用的時區，預設 Asia/Bangkok
	Timezone string `mapstructure:"TIMEZONE" json:"timezone" yaml:"timezone"`
	// 每日任務重置 cron spec（含秒），預設當地午夜
	DailySpec string `mapstructure:"DAILY_SPEC" json:"daily_spec" yaml:"daily_spec"`
	// 每週任務重置 cron spec（含秒），預設週一當地午夜
	WeeklySpec string `mapstructure:"WEEKLY_SPEC" json:"weekly_spec" yaml:"weekly_spec"`
}
