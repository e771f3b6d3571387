package config

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/spf13/viper"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Config is read once at startup and passed to whatever needs it.
type Config struct {
	Environment string
	Port        string
	JWTSecret   string
	LogLevel    string
	LogFile     string

	StoreDriver string

	MongoURI      string
	MongoDatabase string

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string

	CORSAllowedOrigins []string

	AWSRegion          string
	AWSBucketName      string
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	AdminUsername string
	AdminPassword string
	AdminFullName string
}

// IsProduction reports whether the service runs with ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// StorageEnabled reports whether thumbnail uploads can go to S3.
func (c *Config) StorageEnabled() bool {
	return c.AWSBucketName != ""
}

// LoadConfig loads configuration from the first readable file in files
// (.env, config.yaml, ...) and lets environment variables override it.
func LoadConfig(files ...string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "logs/app.log")
	v.SetDefault("STORE_DRIVER", DriverMongo)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "team_portal")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("ADMIN_FULL_NAME", "Administrator")

	loaded := false
	for _, f := range files {
		v.SetConfigFile(f)
		if err := v.ReadInConfig(); err != nil {
			log.Printf("Config file %s not loaded: %v", f, err)
			continue
		}
		loaded = true
		break
	}
	if !loaded && len(files) > 0 {
		log.Println("No config file found, using environment only")
	}

	cfg := &Config{
		Environment:        v.GetString("ENVIRONMENT"),
		Port:               v.GetString("PORT"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFile:            v.GetString("LOG_FILE"),
		StoreDriver:        strings.ToLower(v.GetString("STORE_DRIVER")),
		MongoURI:           v.GetString("MONGO_URI"),
		MongoDatabase:      v.GetString("MONGO_DB"),
		PostgresUser:       v.GetString("POSTGRES_USER"),
		PostgresPassword:   v.GetString("POSTGRES_PASSWORD"),
		PostgresDB:         v.GetString("POSTGRES_DB"),
		PostgresHost:       v.GetString("POSTGRES_HOST"),
		PostgresPort:       v.GetString("POSTGRES_PORT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		AWSRegion:          v.GetString("AWS_REGION"),
		AWSBucketName:      v.GetString("AWS_BUCKET_NAME"),
		AWSAccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
		AdminUsername:      v.GetString("ADMIN_USERNAME"),
		AdminPassword:      v.GetString("ADMIN_PASSWORD"),
		AdminFullName:      v.GetString("ADMIN_FULL_NAME"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET belum dikonfigurasi")
	}
	switch c.StoreDriver {
	case DriverMongo, DriverPostgres:
	default:
		return errors.New("STORE_DRIVER harus mongo atau postgres")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadAWSConfig builds the SDK config from static credentials when they are
// set, falling back to the default credential chain otherwise.
func LoadAWSConfig(ctx context.Context, cfg *Config) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
			),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, err
	}
	Log.WithField("region", awsCfg.Region).Info("AWS SDK config loaded")
	return awsCfg, nil
}
