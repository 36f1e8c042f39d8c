package conf

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// 配置加载（API密钥、仓位策略等）

type WebhookConfig struct {
	Secret string `yaml:"secret"`
}

type Okx struct {
	ApiKey    string `yaml:"apiKey"`
	SecretKey string `yaml:"secretKey"`
	Password  string `yaml:"password"`
	Simulated bool   `yaml:"simulated"`
}

type Db struct {
	DbName   string `yaml:"dbname"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// TradingConfig 仓位策略配置，进程启动时读取一次，
// 之后作为不可变配置传入仓位计算服务，算法内部不再读环境变量
type TradingConfig struct {
	// 单次买入动用可支配余额的百分比 (0~100)
	RiskPercent float64 `yaml:"risk-percent"`
	// 账户保留底仓，计算可支配余额前先扣除，低于该值直接拒绝开仓
	ReserveFloor float64 `yaml:"reserve-floor"`
	// 最小下单金额，低于该值的订单直接拒绝
	MinNotional float64 `yaml:"min-notional"`
	// 计价币种，默认 USDT
	QuoteCurrency string `yaml:"quote-currency"`
	// 信号里没有symbol时的默认交易对
	DefaultSymbol string `yaml:"default-symbol"`
	// 同方向信号的最小下单间隔，防止重复告警连续下单
	OrderInterval time.Duration `yaml:"order-interval"`
	// 只计算不下单，走内存模拟交易所
	DryRun bool `yaml:"dry-run"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	FileName   string `yaml:"file-name"`
	TimeFormat string `yaml:"time-format"`
	MaxSize    int    `yaml:"max-size"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAge     int    `yaml:"max-age"`
	Compress   bool   `yaml:"compress"`
	LocalTime  bool   `yaml:"local-time"`
	Console    bool   `yaml:"console"`
}

type Config struct {
	AppName      string `yaml:"app_name"`
	Listen       string `yaml:"listen"`
	Mode         string `yaml:"mode"`
	MaxPingCount int    `yaml:"max-ping-count"`

	Webhook WebhookConfig `yaml:"webhook"`
	Okx     `yaml:"okx"`
	Db      `yaml:"database"`
	Trading TradingConfig `yaml:"trading"`
	Log     LogConfig     `yaml:"log"`
}

var AppConfig Config

func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Read config file error %w", err)
	}
	if err := yaml.Unmarshal(data, &AppConfig); err != nil {
		return fmt.Errorf("Unmarshal config yaml error: %w", err)
	}
	AppConfig.applyDefaults()
	return nil
}

func (c *Config) applyDefaults() {
	if c.Trading.QuoteCurrency == "" {
		c.Trading.QuoteCurrency = "USDT"
	}
	if c.Trading.DefaultSymbol == "" {
		c.Trading.DefaultSymbol = "BTCUSDT"
	}
	if c.MaxPingCount == 0 {
		c.MaxPingCount = 10
	}
}
