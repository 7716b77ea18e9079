// Package config 提供应用程序的配置加载和管理功能
// 使用 TOML 格式的配置文件，支持多路径查找
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// MainConfig 主配置，包含应用基本信息
type MainConfig struct {
	AppName string `toml:"appName"`
	Host    string `toml:"host"` // 监听地址，如 "0.0.0.0"
	Port    int    `toml:"port"`
	Mode    string `toml:"mode"` // dev 或 release，决定日志是否输出到控制台
}

// DatabaseConfig 数据库连接配置
// Driver 支持 mysql、postgres、sqlite 三种
type DatabaseConfig struct {
	Driver       string `toml:"driver"`
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	DatabaseName string `toml:"databaseName"`
	SqlitePath   string `toml:"sqlitePath"` // 仅 sqlite 使用，如 "data/share_party.db"
}

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Password string `toml:"password"` // 无密码留空
	Db       int    `toml:"db"`
}

// AuthCodeConfig 短信验证码服务配置（阿里云 SMS）
type AuthCodeConfig struct {
	AccessKeyID     string `toml:"accessKeyID"`
	AccessKeySecret string `toml:"accessKeySecret"`
	SignName        string `toml:"signName"`
	TemplateCode    string `toml:"templateCode"`
}

// LogConfig 日志配置，使用 lumberjack 进行日志轮转
type LogConfig struct {
	LogPath    string `toml:"logPath"`
	FileName   string `toml:"fileName"`
	MaxSize    int    `toml:"maxSize"`    // 单个日志文件最大大小（MB）
	MaxBackups int    `toml:"maxBackups"` // 保留旧日志文件的最大个数
	MaxAge     int    `toml:"maxAge"`     // 保留旧日志文件的最大天数
	Level      string `toml:"level"`      // debug, info, warn, error
}

// KafkaConfig Kafka 事件投递配置
type KafkaConfig struct {
	MessageMode string        `toml:"messageMode"` // "none" 只写日志，"kafka" 投递到 Kafka
	HostPort    string        `toml:"hostPort"`
	EventTopic  string        `toml:"eventTopic"` // 拼单生命周期事件主题
	Partition   int           `toml:"partition"`
	Timeout     time.Duration `toml:"timeout"` // 秒
}

// StaticSrcConfig 上传文件存储路径配置
type StaticSrcConfig struct {
	StaticAvatarPath string `toml:"staticAvatarPath"`
	StaticPostPath   string `toml:"staticPostPath"`
	StaticChatPath   string `toml:"staticChatPath"`
	StaticReportPath string `toml:"staticReportPath"`
	MaxUploadSize    int64  `toml:"maxUploadSize"` // 字节
}

// JWTConfig JWT 认证配置
type JWTConfig struct {
	Secret             string `toml:"secret"`
	AccessTokenExpiry  int    `toml:"accessTokenExpiry"`  // 分钟
	RefreshTokenExpiry int    `toml:"refreshTokenExpiry"` // 小时
}

// SnowflakeConfig 雪花算法配置
type SnowflakeConfig struct {
	MachineID int64 `toml:"machineId"` // 0-1023，多实例部署时每台机器需唯一
}

// SecurityConfig 安全相关配置
type SecurityConfig struct {
	SSLRedirect       bool     `toml:"sslRedirect"`
	AllowedOrigins    []string `toml:"allowedOrigins"`
	ChatRatePerMinute int      `toml:"chatRatePerMinute"` // 每个用户每分钟可发送的聊天/申请次数
}

// Config 应用程序总配置，聚合所有子配置
type Config struct {
	MainConfig      `toml:"mainConfig"`
	DatabaseConfig  `toml:"databaseConfig"`
	RedisConfig     `toml:"redisConfig"`
	AuthCodeConfig  `toml:"authCodeConfig"`
	LogConfig       `toml:"logConfig"`
	KafkaConfig     `toml:"kafkaConfig"`
	StaticSrcConfig `toml:"staticSrcConfig"`
	JWTConfig       `toml:"jwtConfig"`
	SnowflakeConfig `toml:"snowflakeConfig"`
	SecurityConfig  `toml:"securityConfig"`
}

var config *Config

// LoadConfig 从多个候选路径加载配置文件
// 按顺序尝试，找到第一个可用的配置文件即停止
func LoadConfig() error {
	paths := []string{
		"configs/config_local.toml", // 本地开发配置优先
		"configs/config.toml",
		"../../configs/config_local.toml", // 从 cmd/<app> 目录运行时
		"../../configs/config.toml",
	}

	for _, path := range paths {
		if _, err := toml.DecodeFile(path, config); err == nil {
			config.applyDefaults()
			return nil
		}
	}

	config.applyDefaults()
	return fmt.Errorf("could not find configuration file in any of the search paths")
}

// GetConfig 获取全局配置实例（单例模式）
// 首次调用时会自动加载配置文件
func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig() // 找不到文件时使用默认值
	}
	return config
}

func (c *Config) applyDefaults() {
	if c.MainConfig.Mode == "" {
		c.MainConfig.Mode = "dev"
	}
	if c.DatabaseConfig.Driver == "" {
		c.DatabaseConfig.Driver = "sqlite"
	}
	if c.DatabaseConfig.SqlitePath == "" {
		c.DatabaseConfig.SqlitePath = "share_party.db"
	}
	if c.KafkaConfig.MessageMode == "" {
		c.KafkaConfig.MessageMode = "none"
	}
	if c.KafkaConfig.EventTopic == "" {
		c.KafkaConfig.EventTopic = "party_events"
	}
	if c.StaticSrcConfig.MaxUploadSize == 0 {
		c.StaticSrcConfig.MaxUploadSize = 5 << 20
	}
	if c.SecurityConfig.ChatRatePerMinute == 0 {
		c.SecurityConfig.ChatRatePerMinute = 30
	}
}
