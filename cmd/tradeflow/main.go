package main

import (
	"flag"
	"log"

	goex "github.com/nntaoli-project/goex/v2"
	"tradeflow/conf"
	"tradeflow/pkg/db"
	"tradeflow/pkg/logger"
)

// 启动服务（监听webhook）

/*
测试

BODY='{"action":"buy","symbol":"BTCUSDT"}'
SECRET="ab12cd34ef56abcdef1234567890abcdef1234567890abcdef1234567890"
SIGNATURE=$(echo -n $BODY | openssl dgst -sha256 -hmac $SECRET | sed 's/^.* //')

curl -X POST http://localhost:8090/webhook \
  -H "Content-Type: application/json" \
  -H "X-Signature: $SIGNATURE" \
  -d "$BODY"

纯文本告警同样支持：

BODY='BUY BTCUSDT QTY=0.5'    # QTY会被丢弃，数量由仓位计算给出
BODY='CLOSE LONG BTCUSDT'     # 平多 = 卖出
*/

func main() {
	configPath := flag.String("c", "config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置文件
	if err := conf.LoadConfig(*configPath); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(conf.AppConfig.Log)

	if conf.AppConfig.Okx.Simulated {
		// 设置为模拟环境
		goex.DefaultHttpCli.SetHeaders("x-simulated-trading", "1")
	}

	// 初始化数据库
	datasource := db.Init(db.Config{
		User:      conf.AppConfig.Username,
		Password:  conf.AppConfig.Db.Password,
		Host:      conf.AppConfig.Host,
		Port:      conf.AppConfig.Port,
		DBName:    conf.AppConfig.DbName,
		ParseTime: true,
	})

	server := NewServer(&conf.AppConfig)
	server.RegisterOnShutdown(func() {
		logger.Sync()
	})
	server.Run(InitRouter(datasource))
}
