package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"gitlab.com/tierpass-exchange/ledger_api/net/kafka"
)

// Config structure
type Config struct {
	Server   ServerConfig      `mapstructure:"server"`
	Database DatabaseConfig    `mapstructure:"database"`
	Kafka    kafka.Config      `mapstructure:"kafka"`
	Oracle   OracleConfig      `mapstructure:"oracle"`
	Tiers    []TierConfig      `mapstructure:"tiers"`
	Wallets  WalletsConfig     `mapstructure:"wallets"`
	Token    TokenConfig       `mapstructure:"token"`
	Crons    map[string]string `mapstructure:"crons"`
}

type ServerConfig struct {
	Port       int    `mapstructure:"port"`
	AdminToken string `mapstructure:"admin_token"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type OracleConfig struct {
	URL string `mapstructure:"url"`
}

type TierConfig struct {
	USDPriceCents uint64 `mapstructure:"usd_price_cents"`
	MaxSupply     uint64 `mapstructure:"max_supply"`
	URI           string `mapstructure:"uri"`
}

type WalletsConfig struct {
	Partner string `mapstructure:"partner"`
	Pool    string `mapstructure:"pool"`
	Company string `mapstructure:"company"`
}

type TokenConfig struct {
	Owner              string `mapstructure:"owner"`
	InitialSupply      string `mapstructure:"initial_supply"`
	BurnRateBasisUnits uint16 `mapstructure:"burn_rate_basis_units"`
}

// OpenConfig reads the configuration file from the given path or the working
// directory
func OpenConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Str("package", "config").Str("func", "OpenConfig").
			Msg("Unable to read configuration file, using defaults")
	}
}

// LoadConfig binds the loaded settings into the Config structure
func LoadConfig(v *viper.Viper) Config {
	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatal().Err(err).Str("package", "config").Str("func", "LoadConfig").
			Msg("Unable to decode configuration")
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Token.InitialSupply == "" {
		cfg.Token.InitialSupply = "100000000000000000000000000"
	}
	return cfg
}
