package status

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"tradeflow/conf"
	"tradeflow/internal/dao"
	errs "tradeflow/pkg/errors"
	"tradeflow/pkg/errors/ecode"
	"tradeflow/pkg/response"
)

// 状态页接口：运行配置概览和最近下单记录，只读

type Handler struct {
	d *dao.OrderDao
}

func NewHandler(d *dao.OrderDao) *Handler {
	return &Handler{d: d}
}

// Status 返回当前生效的仓位策略，不含任何密钥
func (h *Handler) Status() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		cfg := conf.AppConfig
		response.JSON(ctx, nil, gin.H{
			"app_name":       cfg.AppName,
			"risk_percent":   cfg.Trading.RiskPercent,
			"reserve_floor":  cfg.Trading.ReserveFloor,
			"min_notional":   cfg.Trading.MinNotional,
			"quote_currency": cfg.Trading.QuoteCurrency,
			"default_symbol": cfg.Trading.DefaultSymbol,
			"dry_run":        cfg.Trading.DryRun,
		})
	}
}

// OrdersRecent 最近的下单记录
func (h *Handler) OrdersRecent() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

		records, err := h.d.OrderListRecent(ctx.Request.Context(), limit)
		if err != nil {
			response.JSON(ctx, errs.Wrap(err, ecode.InternalErr, "查询下单记录失败"), nil)
			return
		}
		response.JSON(ctx, nil, gin.H{"orders": records})
	}
}
