package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"tradeflow/internal/dao"
	"tradeflow/internal/exchange"
	"tradeflow/internal/model"
	"tradeflow/internal/risk"
	"tradeflow/internal/signal"
	"tradeflow/internal/sizing"
	"tradeflow/pkg/logger"
)

// 单次webhook的完整处理管线：
// 归一化 -> 风控 -> 仓位计算 -> 构造下单请求 -> 交易所下单 -> 落库
// 每个环节的失败都只影响本次请求，不影响进程

type Engine struct {
	normalizer *signal.Normalizer
	sizer      *sizing.Sizer
	ex         exchange.Exchange
	d          *dao.OrderDao
	rc         *risk.Control

	// 同一账户的信号串行处理：余额是先读后用的，
	// 两个并发信号读到同一份余额快照会导致超额下单
	mu sync.Mutex
}

func New(n *signal.Normalizer, s *sizing.Sizer, ex exchange.Exchange, d *dao.OrderDao, rc *risk.Control) *Engine {
	return &Engine{
		normalizer: n,
		sizer:      s,
		ex:         ex,
		d:          d,
		rc:         rc,
	}
}

// Process 处理一条原始信号
// 返回error时属于解析失败或协作方失败，handler按错误类别渲染；
// 策略性拒绝（底仓不足、无持仓等）通过ProcessResult.Rejected表达，不算失败
func (e *Engine) Process(ctx context.Context, raw []byte) (*model.ProcessResult, error) {
	sig, err := e.normalizer.Normalize(raw)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.rc != nil {
		if err := e.rc.Allow(ctx, sig.Symbol, sig.Action); err != nil {
			if errors.Is(err, risk.ErrTooFrequent) {
				logger.Infof("风控拒绝: %s %s 间隔内重复信号", sig.Symbol, sig.Action)
				return &model.ProcessResult{Rejected: true, Reason: model.ReasonDuplicateSignal}, nil
			}
			return nil, err
		}
	}

	decision, err := e.sizer.Size(ctx, sig)
	if err != nil {
		return nil, err
	}

	if decision.Rejected {
		logger.Infof("仓位计算拒绝: %s %s reason=%s", sig.Symbol, sig.Action, decision.Reason)
		return &model.ProcessResult{Rejected: true, Reason: decision.Reason}, nil
	}

	intent := BuildIntent(decision, sig)

	logger.Info("placing order",
		logger.Pair("symbol", intent.Symbol),
		logger.Pair("side", intent.Side),
		logger.Pair("quantity", intent.Quantity),
		logger.Pair("notional", intent.Notional),
		logger.Pair("price", intent.Price))

	resp, err := e.ex.PlaceMarketOrder(ctx, intent.Side, intent.Symbol, intent.Quantity)
	if err != nil {
		return nil, err
	}

	e.record(ctx, intent, resp.OrderId)

	return &model.ProcessResult{
		Accepted: true,
		Intent:   intent,
		OrderId:  resp.OrderId,
	}, nil
}

// BuildIntent 把通过校验的仓位决策装配成下单请求
// Notional/Price只是观测字段，交易所只拿到side/symbol/quantity
func BuildIntent(decision *model.SizingDecision, sig model.TradeSignal) *model.OrderIntent {
	return &model.OrderIntent{
		Symbol:   sig.Symbol,
		Side:     sig.Action,
		Quantity: decision.Quantity,
		Notional: decision.Notional,
		Price:    decision.Price,
	}
}

// 下单成功后落库，落库失败只记日志不影响返回
func (e *Engine) record(ctx context.Context, intent *model.OrderIntent, orderId string) {
	if e.d == nil {
		return
	}
	rec := &model.OrderRecord{
		OrderId:   orderId,
		Symbol:    intent.Symbol,
		Side:      intent.Side,
		Price:     intent.Price.String(),
		Quantity:  intent.Quantity.String(),
		Notional:  intent.Notional.String(),
		CreatedAt: time.Now(),
	}
	if err := e.d.OrderCreateNew(ctx, rec); err != nil {
		logger.Errorf("订单落库失败 order_id=%s: %v", orderId, err)
	}
}
