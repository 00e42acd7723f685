package config

import (
	"lacajita-admin/internal/utils/runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	httpPortFlag    = "port"
	developmentFlag = "development"

	mongoDBURIFlag = "mongodb-uri"

	kafkaHostFlag = "kafka-host"
	kafkaPortFlag = "kafka-port"

	redisAddrFlag    = "redis-addr"
	redisEnabledFlag = "redis-enabled"

	idpDomainFlag       = "idp-domain"
	idpClientIDFlag     = "idp-client-id"
	idpClientSecretFlag = "idp-client-secret"
	idpAudienceFlag     = "idp-audience"

	masterAccountEmailFlag = "master-account-email"
)

type Config struct {
	HTTPPort    int
	Development bool

	MongoDB MongoDBConfig
	Kafka   KafkaConfig
	Redis   RedisConfig
	IdP     IdPConfig

	// MasterAccountEmail identifies the single account that always has
	// full permissions and cannot be modified through the admin API.
	MasterAccountEmail string
}

type MongoDBConfig struct {
	URI string
}

type KafkaConfig struct {
	Host string
	Port int
}

type RedisConfig struct {
	Enabled bool
	Addr    string
}

type IdPConfig struct {
	Domain       string
	ClientID     string
	ClientSecret string
	Audience     string
}

func LoadGlobalConfig() Config {
	viper.SetDefault(httpPortFlag, 8080)
	viper.SetDefault(developmentFlag, true)
	viper.SetDefault(mongoDBURIFlag, "mongodb://localhost:27017")
	viper.SetDefault(kafkaHostFlag, "localhost")
	viper.SetDefault(kafkaPortFlag, 9092)
	viper.SetDefault(redisAddrFlag, "localhost:6379")
	viper.SetDefault(redisEnabledFlag, false)
	viper.SetDefault(idpDomainFlag, "")
	viper.SetDefault(idpClientIDFlag, "")
	viper.SetDefault(idpClientSecretFlag, "")
	viper.SetDefault(idpAudienceFlag, "")
	viper.SetDefault(masterAccountEmailFlag, "")

	pflag.Int32(httpPortFlag, viper.GetInt32(httpPortFlag), "HTTP port")
	pflag.Bool(developmentFlag, viper.GetBool(developmentFlag), "Development mode")
	pflag.String(mongoDBURIFlag, viper.GetString(mongoDBURIFlag), "MongoDB URI")
	pflag.String(kafkaHostFlag, viper.GetString(kafkaHostFlag), "Kafka host")
	pflag.Int32(kafkaPortFlag, viper.GetInt32(kafkaPortFlag), "Kafka port")
	pflag.String(redisAddrFlag, viper.GetString(redisAddrFlag), "Redis address")
	pflag.Bool(redisEnabledFlag, viper.GetBool(redisEnabledFlag), "Enable the Redis permission cache")
	pflag.String(idpDomainFlag, viper.GetString(idpDomainFlag), "Identity provider domain")
	pflag.String(idpClientIDFlag, viper.GetString(idpClientIDFlag), "Identity provider machine client id")
	pflag.String(idpClientSecretFlag, viper.GetString(idpClientSecretFlag), "Identity provider machine client secret")
	pflag.String(idpAudienceFlag, viper.GetString(idpAudienceFlag), "Identity provider API audience")
	pflag.String(masterAccountEmailFlag, viper.GetString(masterAccountEmailFlag), "Master account email")
	pflag.Parse()

	// Bind the viper flags to environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	runtime.Must(viper.BindEnv(httpPortFlag))
	runtime.Must(viper.BindEnv(developmentFlag))
	runtime.Must(viper.BindEnv(mongoDBURIFlag))
	runtime.Must(viper.BindEnv(kafkaHostFlag))
	runtime.Must(viper.BindEnv(kafkaPortFlag))
	runtime.Must(viper.BindEnv(redisAddrFlag))
	runtime.Must(viper.BindEnv(redisEnabledFlag))
	runtime.Must(viper.BindEnv(idpDomainFlag))
	runtime.Must(viper.BindEnv(idpClientIDFlag))
	runtime.Must(viper.BindEnv(idpClientSecretFlag))
	runtime.Must(viper.BindEnv(idpAudienceFlag))
	runtime.Must(viper.BindEnv(masterAccountEmailFlag))

	return Config{
		HTTPPort:    int(viper.GetInt32(httpPortFlag)),
		Development: viper.GetBool(developmentFlag),
		MongoDB: MongoDBConfig{
			URI: viper.GetString(mongoDBURIFlag),
		},
		Kafka: KafkaConfig{
			Host: viper.GetString(kafkaHostFlag),
			Port: int(viper.GetInt32(kafkaPortFlag)),
		},
		Redis: RedisConfig{
			Enabled: viper.GetBool(redisEnabledFlag),
			Addr:    viper.GetString(redisAddrFlag),
		},
		IdP: IdPConfig{
			Domain:       viper.GetString(idpDomainFlag),
			ClientID:     viper.GetString(idpClientIDFlag),
			ClientSecret: viper.GetString(idpClientSecretFlag),
			Audience:     viper.GetString(idpAudienceFlag),
		},
		MasterAccountEmail: viper.GetString(masterAccountEmailFlag),
	}
}
