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

type ChioscoSettings struct {
	CounterURL string `mapstructure:"counter-url" validate:"required,url"`
}

type Settings struct {
	App           verdura.AppSettings           `mapstructure:"app" validate:"required"`
	Chiosco       ChioscoSettings               `mapstructure:"chiosco" validate:"required"`
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

	viper.SetEnvPrefix("CHIOSCO")
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
