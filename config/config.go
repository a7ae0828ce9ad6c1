package config

import (
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port        string   `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"corsOrigins"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration string `mapstructure:"expiration"`
}

type AWSConfig struct {
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"accessKeyID"`
	SecretAccessKey string `mapstructure:"secretAccessKey"`
	// Endpoint points at a local DynamoDB (e.g. http://localhost:8000)
	// when set; empty means the real AWS endpoint for the region.
	Endpoint string `mapstructure:"endpoint"`
}

type TablesConfig struct {
	Users    string `mapstructure:"users"`
	Trucks   string `mapstructure:"trucks"`
	Alerts   string `mapstructure:"alerts"`
	Routes   string `mapstructure:"routes"`
	Sessions string `mapstructure:"sessions"`
}

type SeedConfig struct {
	AdminUsername string `mapstructure:"adminUsername"`
	AdminPassword string `mapstructure:"adminPassword"`
}

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	AWS    AWSConfig    `mapstructure:"aws"`
	Tables TablesConfig `mapstructure:"tables"`
	Seed   SeedConfig   `mapstructure:"seed"`
}

// LoadConfig reads config.yaml from the given path and overrides values
// with environment variables. A missing file is not an error; env vars
// alone are enough to run.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	viper.BindEnv("aws.region", "AWS_REGION")
	viper.BindEnv("aws.accessKeyID", "AWS_ACCESS_KEY")
	viper.BindEnv("aws.secretAccessKey", "AWS_SECRET_KEY")
	viper.BindEnv("aws.endpoint", "DYNAMODB_ENDPOINT")
	viper.BindEnv("seed.adminUsername", "SEED_ADMIN_USERNAME")
	viper.BindEnv("seed.adminPassword", "SEED_ADMIN_PASSWORD")

	viper.SetDefault("server.port", "5000")
	viper.SetDefault("jwt.expiration", "24h")
	viper.SetDefault("aws.region", "us-east-2")
	viper.SetDefault("tables.users", "ast-users")
	viper.SetDefault("tables.trucks", "ast-trucks")
	viper.SetDefault("tables.alerts", "ast-alerts")
	viper.SetDefault("tables.routes", "ast-routes")
	viper.SetDefault("tables.sessions", "ast-sessions")

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return
}
