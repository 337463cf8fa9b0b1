package conf

import (
	"github.com/caarlos0/env/v11"
)

type Config struct {
	UdsPath                  string `env:"UDS_PATH" envDefault:"/tmp/paymux.sock"`
	ProcessorDefaultBaseUrl  string `env:"PROCESSOR_DEFAULT_BASEURL,required"`
	ProcessorFallbackBaseUrl string `env:"PROCESSOR_FALLBACK_BASEURL,required"`
	QueueBufferSize          int    `env:"QUEUE_BUFFER_SIZE" envDefault:"65536"`
	DispatchGoroutines       int    `env:"DISPATCH_GOROUTINES" envDefault:"3"`
	LogLevel                 string `env:"LOG_LEVEL" envDefault:"info"`
}

type ApiConfig struct {
	Port              int    `env:"API_PORT" envDefault:"9999"`
	ProcessorUdsPath  string `env:"PROCESSOR_UDS_PATH" envDefault:"/tmp/paymux.sock"`
	ProcessorPoolSize int    `env:"PROCESSOR_POOL_SIZE" envDefault:"10"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	cfg := new(Config)
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadApi() (*ApiConfig, error) {
	cfg := new(ApiConfig)
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
