package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// LogConfig 中 File 为空时只输出到标准输出，MaxSize 单位为 MB，MaxAge 单位为天
type LogConfig struct {
	Level      string `env:"LEVEL" envDefault:"info"`
	File       string `env:"FILE"`
	MaxSize    int    `env:"MAX_SIZE" envDefault:"50"`
	MaxBackups int    `env:"MAX_BACKUPS" envDefault:"5"`
	MaxAge     int    `env:"MAX_AGE" envDefault:"30"`
}

type CalendarConfig struct {
	ProductID string `env:"PRODUCT_ID" envDefault:"-//roster-calendar//shifts//EL"`
	UIDDomain string `env:"UID_DOMAIN" envDefault:"roster-calendar.local"`
}

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN            string `env:"DSN,required"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout   int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		MaxOpenConns   int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns   int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime    int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	Admin struct {
		Username     string `env:"USERNAME" envDefault:"admin"`
		PasswordHash string `env:"PASSWORD_HASH,required"` // bcrypt 哈希，可由 cmd/seed 生成
	} `envPrefix:"ADMIN_"`
	JWT struct {
		Expiration int    `env:"EXPIRATION" envDefault:"43200"` // 12 小时
		Secret     string `env:"SECRET,required"`
	} `envPrefix:"JWT_"`
	Session struct {
		Expiration    int   `env:"EXPIRATION" envDefault:"86400"` // 上传的值班表保留 1 天
		MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"`
	} `envPrefix:"SESSION_"`
	Email struct {
		SMTP struct {
			Username    string `env:"USERNAME,required"`
			Password    string `env:"PASSWORD,required"`
			Host        string `env:"HOST,required"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host                string `env:"HOST" envDefault:"localhost"`
		Port                int    `env:"PORT" envDefault:"6379"`
		Password            string `env:"PASSWORD"`
		ConnectTimeout      int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		OperationExpiration int    `env:"OPERATION_EXPIRATION" envDefault:"10"`
	} `envPrefix:"REDIS_"`
	Calendar CalendarConfig `envPrefix:"CALENDAR_"`
	Log      LogConfig      `envPrefix:"LOG_"`
}

// CLIConfig 是离线命令行工具需要的配置，不依赖任何外部服务
type CLIConfig struct {
	Calendar CalendarConfig `envPrefix:"CALENDAR_"`
	Log      LogConfig      `envPrefix:"LOG_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadCLIConfig() (*CLIConfig, error) {
	cfg := &CLIConfig{}
	if err := load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load(cfg any) error {
	// .env 文件是可选的，环境变量优先
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return aggErr.Errors[0]
		}
		return err
	}
	return nil
}
