package router

import (
	"github.com/gin-gonic/gin"
	"tradeflow/internal/handler/ping"
	"tradeflow/internal/handler/status"
	"tradeflow/internal/handler/webhook"
	"tradeflow/internal/middleware"
)

type ApiRouter struct {
	wh *webhook.Handler
	sh *status.Handler
}

func NewApiRouter(wh *webhook.Handler, sh *status.Handler) *ApiRouter {
	return &ApiRouter{wh: wh, sh: sh}
}

func (api *ApiRouter) Load(g *gin.Engine) {
	g.Use(middleware.RequestId(), middleware.Logger)

	g.GET("/ping", ping.Ping())

	// 信号入口，HMAC验签在handler内部完成
	g.POST("/webhook", api.wh.HandlerWebhook())

	base := g.Group("/api/v1")
	{
		base.GET("/status", api.sh.Status())
		base.GET("/orders/recent", api.sh.OrdersRecent())
	}
}
