package main

import (
	"bytes"
	"log"
	"strings"

	_ "embed"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/taldoflemis/veggie-delight/verdura"
)

//go:embed base.yaml
var baseConfig []byte

type CucinaSettings struct {
	Subject            string `mapstructure:"subject" validate:"required"`
	Queue              string `mapstructure:"queue" validate:"required"`
	PrepSecondsPerItem int    `mapstructure:"prep-seconds-per-item" validate:"required,min=1"`
}

type Settings struct {
	App           verdura.AppSettings           `mapstructure:"app" validate:"required"`
	Cucina        CucinaSettings                `mapstructure:"cucina" validate:"required"`
	Nats          verdura.NatsSettings          `mapstructure:"nats" validate:"required"`
	OpenTelemetry verdura.OpenTelemetrySettings `mapstructure:"opentelemetry" validate:"required"`
}

func LoadConfig() (*Settings, error) {
	var cfg *Settings

	viper.SetConfigType("yaml")
	err := viper.ReadConfig(bytes.NewReader(baseConfig))
	if err != nil {
		log.Println("Failed to read config from yaml")
		return nil, err
	}

	viper.SetEnvPrefix("CUCINA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
