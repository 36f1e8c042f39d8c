package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"tradeflow/conf"
	"tradeflow/internal/engine"
	"tradeflow/internal/exchange"
	"tradeflow/internal/signal"
	errs "tradeflow/pkg/errors"
	"tradeflow/pkg/errors/ecode"
	"tradeflow/pkg/logger"
	"tradeflow/pkg/response"
)

// 外部告警(如TradingView) Webhook 的接收器

type Handler struct {
	engine *engine.Engine
}

func NewHandler(e *engine.Engine) *Handler {
	return &Handler{engine: e}
}

// HandlerWebhook 接收POST请求，验签后交给引擎处理
// body可能是JSON也可能是纯文本告警，原样透传给归一化
func (h *Handler) HandlerWebhook() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		// 获取签名
		signature := ctx.GetHeader("X-Signature")
		if signature == "" {
			response.RequireAuthErr(ctx, errors.New("missing signature"))
			return
		}

		body, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			response.JSON(ctx, errs.Wrap(err, ecode.RequestParamErr, "failed to read body"), nil)
			return
		}
		defer ctx.Request.Body.Close()

		// 验签
		if !verifySignature(body, signature) {
			response.RequireAuthErr(ctx, errors.New("signature mismatch"))
			return
		}

		logger.Infof("[Webhook] received signal: %s", string(body))

		result, err := h.engine.Process(ctx.Request.Context(), body)
		if err != nil {
			response.JSON(ctx, wrapProcessErr(err), nil)
			return
		}

		// 策略性拒绝也是预期内的结果，按成功渲染，结构体里带拒绝原因
		response.JSON(ctx, nil, result)
	}
}

// 按错误类别映射错误码，便于调用方区分解析失败和协作方失败
func wrapProcessErr(err error) error {
	switch {
	case errors.Is(err, signal.ErrUnparseable),
		errors.Is(err, signal.ErrMissingAction),
		errors.Is(err, signal.ErrInvalidAction):
		return errs.Wrap(err, ecode.SignalParseErr, err.Error())
	case errors.Is(err, exchange.ErrAccountQuery):
		return errs.Wrap(err, ecode.AccountQueryErr, "")
	case errors.Is(err, exchange.ErrQuoteQuery):
		return errs.Wrap(err, ecode.QuoteQueryErr, "")
	case errors.Is(err, exchange.ErrExchange):
		return errs.Wrap(err, ecode.ExchangeErr, "")
	default:
		return errs.Wrap(err, ecode.InternalErr, "")
	}
}

func verifySignature(body []byte, signatureHeader string) bool {
	secret := conf.AppConfig.Webhook.Secret

	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	expectedMAC := h.Sum(nil)
	providedMAC, err := hex.DecodeString(signatureHeader)
	if err != nil {
		return false
	}
	return hmac.Equal(providedMAC, expectedMAC)
}
