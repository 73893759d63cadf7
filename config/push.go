package config

type Push struct {
	// 推播服務端點；留空則停用推播（仍會寫入通知紀錄）
	EndpointUrl string `mapstructure:"ENDPOINT_URL" json:"endpointUrl" yaml:"endpointUrl"`
	// 服務端 API Key
	ApiKey string `mapstructure:"API_KEY" json:"api_key" yaml:"api_key"`
	// 請求逾時（毫秒）
	Timeout int64 `mapstructure:"TIMEOUT" json:"timeout" yaml:"timeout"`
	// 派送佇列長度，滿了直接丟棄並記 log
	QueueSize int `mapstructure:"QUEUE_SIZE" json:"queue_size" yaml:"queue_size"`
}
