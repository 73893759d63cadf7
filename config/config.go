package config

type Configuration struct {
	App       App             `mapstructure:"APP" json:"app" yaml:"app"`
	Redis     Redis           `mapstructure:"REDIS" json:"redis" yaml:"redis"`
	Log       Log             `mapstructure:"LOG" json:"log" yaml:"log"`
	MongoDB   MongoDB         `mapstructure:"MONGODB" json:"mongodb" yaml:"mongodb"`
	Push      Push            `mapstructure:"PUSH" json:"push" yaml:"push"`
	Mission   Mission         `mapstructure:"MISSION" json:"mission" yaml:"mission"`
	RateLimit RateLimit       `mapstructure:"RATE_LIMIT" json:"rate_limit" yaml:"rate_limit"`
	Telemetry TelemetryConfig `mapstructure:"TELEMETRY" yaml:"telemetry"`
	Fluentd   Fluentd         `mapstructure:"FLUENTD" yaml:"fluentd"`
}
