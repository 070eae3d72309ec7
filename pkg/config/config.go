package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Chain   ChainConfig   `mapstructure:"chain"`
	Redis   RedisConfig   `mapstructure:"redis"`
	MQ      MQConfig      `mapstructure:"mq"`
	Sweeper SweeperConfig `mapstructure:"sweeper"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"` // empty keeps the env default
	HttpPort string `mapstructure:"http_port"`
}

type ChainConfig struct {
	RpcUrl            string        `mapstructure:"rpc_url"`
	RelayerPrivateKey string        `mapstructure:"relayer_private_key"`
	DAOAddress        string        `mapstructure:"dao_address"`
	ForwarderAddress  string        `mapstructure:"forwarder_address"`
	AutoAdvanceTime   bool          `mapstructure:"auto_advance_time"` // test networks only
	TxTimeout         time.Duration `mapstructure:"tx_timeout"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MQConfig struct {
	Type         string   `mapstructure:"type"` // "none", "redis" or "kafka"
	KafkaBrokers []string `mapstructure:"kafka_brokers"`
}

type SweeperConfig struct {
	Schedule string `mapstructure:"schedule"` // cron spec, empty disables the in-process sweep
}

var Global Config

func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindLegacyEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Warning: Config file not found, using defaults and environment variables")
		} else {
			log.Fatalf("Fatal error config file: %s \n", err)
		}
	}

	if err := viper.Unmarshal(&Global); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	log.Printf("Configuration loaded successfully. Env: %s", Global.App.Env)
}

// bindLegacyEnv keeps the variable names the web deployment already exports working.
func bindLegacyEnv() {
	_ = viper.BindEnv("chain.rpc_url", "CHAIN_RPC_URL", "RPC_URL")
	_ = viper.BindEnv("chain.relayer_private_key", "CHAIN_RELAYER_PRIVATE_KEY", "RELAYER_PRIVATE_KEY")
	_ = viper.BindEnv("chain.dao_address", "CHAIN_DAO_ADDRESS", "NEXT_PUBLIC_DAO_ADDRESS")
	_ = viper.BindEnv("chain.forwarder_address", "CHAIN_FORWARDER_ADDRESS", "NEXT_PUBLIC_FORWARDER_ADDRESS")
	_ = viper.BindEnv("chain.auto_advance_time", "CHAIN_AUTO_ADVANCE_TIME", "AUTO_ADVANCE_TIME")
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.log_level", "")
	viper.SetDefault("app.http_port", "8080")

	viper.SetDefault("chain.rpc_url", "http://127.0.0.1:8545")
	viper.SetDefault("chain.auto_advance_time", false)
	viper.SetDefault("chain.tx_timeout", 60*time.Second)

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("mq.type", "none")
	viper.SetDefault("mq.kafka_brokers", []string{"localhost:9092"})

	viper.SetDefault("sweeper.schedule", "")
}
