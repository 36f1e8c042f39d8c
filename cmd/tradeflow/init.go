package main

import (
	"gorm.io/gorm"
	"tradeflow/conf"
	"tradeflow/internal/dao"
	"tradeflow/internal/engine"
	"tradeflow/internal/exchange"
	"tradeflow/internal/handler/status"
	"tradeflow/internal/handler/webhook"
	"tradeflow/internal/risk"
	"tradeflow/internal/router"
	"tradeflow/internal/signal"
	"tradeflow/internal/sizing"
	"tradeflow/pkg/logger"
)

func InitRouter(db *gorm.DB) Router {
	appCfg := conf.AppConfig

	d := dao.NewOrderDao(db)

	// dry-run时用内存模拟交易所，只计算不真实下单
	var ex exchange.Exchange
	if appCfg.Trading.DryRun {
		logger.Infof("dry-run模式，使用模拟交易所（预置演示行情: %s/%s）",
			appCfg.Trading.DefaultSymbol, appCfg.Trading.QuoteCurrency)
		ex = exchange.NewDryRunExchange(appCfg.Trading.DefaultSymbol, appCfg.Trading.QuoteCurrency)
	} else {
		ex = exchange.NewOkxExchange(appCfg.Okx.ApiKey, appCfg.Okx.SecretKey, appCfg.Okx.Password)
	}

	// 风控：同方向信号间隔防抖
	rc := risk.NewControl(d, appCfg.Trading.OrderInterval)

	// 信号归一化 + 仓位计算
	normalizer := signal.NewNormalizer(appCfg.Trading.DefaultSymbol)
	sizer := sizing.NewSizer(ex, sizing.PolicyFromConfig(appCfg.Trading))

	eng := engine.New(normalizer, sizer, ex, d, rc)

	wh := webhook.NewHandler(eng)
	sh := status.NewHandler(d)

	return router.NewApiRouter(wh, sh)
}
