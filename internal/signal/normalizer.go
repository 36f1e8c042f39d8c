package signal

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"tradeflow/internal/consts"
	"tradeflow/internal/model"
	"tradeflow/pkg/utils"
)

// 信号归一化：把异构的外部告警（JSON或纯文本）解析成统一的交易指令
// 解析器按顺序依次尝试，每个解析器要么命中要么放行给下一个

var (
	// 任何解析器都未命中
	ErrUnparseable = errors.New("signal: payload unparseable")
	// JSON信号缺少action/side字段
	ErrMissingAction = errors.New("signal: missing action")
	// action不是buy/sell
	ErrInvalidAction = errors.New("signal: invalid action")
)

var (
	// BUY BTCUSDT QTY=0.5
	qtyPattern = regexp.MustCompile(`^(?i)(BUY|SELL)\s+([A-Za-z0-9/_-]+)\s+QTY=([0-9]+(?:\.[0-9]+)?)\s*$`)
	// CLOSE LONG BTCUSDT
	closePattern = regexp.MustCompile(`^(?i)CLOSE\s+(LONG|SHORT)\s+([A-Za-z0-9/_-]+)\s*$`)
)

// 单个解析器：命中时返回(signal, true, err)，未命中返回(_, false, nil)
type parserFunc func(raw []byte) (model.TradeSignal, bool, error)

type Normalizer struct {
	defaultSymbol string
	parsers       []parserFunc
}

func NewNormalizer(defaultSymbol string) *Normalizer {
	if defaultSymbol == "" {
		defaultSymbol = consts.DefaultSymbol
	}
	n := &Normalizer{defaultSymbol: utils.CompactSymbol(defaultSymbol)}
	n.parsers = []parserFunc{
		n.parseJSON,
		n.parseQtyText,
		n.parseCloseText,
	}
	return n
}

// Normalize 把原始payload解析成交易指令
// 解析失败返回ErrUnparseable/ErrMissingAction/ErrInvalidAction之一
func (n *Normalizer) Normalize(raw []byte) (model.TradeSignal, error) {
	for _, parse := range n.parsers {
		sig, matched, err := parse(raw)
		if !matched {
			continue
		}
		if err != nil {
			return model.TradeSignal{}, err
		}
		return sig, nil
	}
	return model.TradeSignal{}, ErrUnparseable
}

// JSON信号：action字段，缺失时回落到side；symbol缺失用默认交易对
func (n *Normalizer) parseJSON(raw []byte) (model.TradeSignal, bool, error) {
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "{") {
		return model.TradeSignal{}, false, nil
	}

	var req model.WebhookRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		// 看起来是JSON但解析不了，不再交给文本解析器
		return model.TradeSignal{}, true, ErrUnparseable
	}

	action := req.Action
	if action == "" {
		action = req.Side
	}
	if action == "" {
		return model.TradeSignal{}, true, ErrMissingAction
	}

	side, err := mapAction(action)
	if err != nil {
		return model.TradeSignal{}, true, err
	}

	symbol := req.Symbol
	if symbol == "" {
		symbol = n.defaultSymbol
	}

	return model.TradeSignal{Action: side, Symbol: utils.CompactSymbol(symbol)}, true, nil
}

// 文本信号：BUY/SELL <SYMBOL> QTY=<n>
// QTY被有意丢弃：数量永远由仓位计算得出，不取自信号
func (n *Normalizer) parseQtyText(raw []byte) (model.TradeSignal, bool, error) {
	m := qtyPattern.FindStringSubmatch(strings.TrimSpace(string(raw)))
	if m == nil {
		return model.TradeSignal{}, false, nil
	}

	side, err := mapAction(m[1])
	if err != nil {
		return model.TradeSignal{}, true, err
	}
	return model.TradeSignal{Action: side, Symbol: utils.CompactSymbol(m[2])}, true, nil
}

// 文本信号：CLOSE LONG/SHORT <SYMBOL>
//
// 注意这里的方向映射是刻意反转的：
//   - CLOSE LONG  -> sell（平多仓 = 卖出持有的币）
//   - CLOSE SHORT -> buy （平空仓 = 买入还币）
//
// 即信号文字和最终下单方向相反，这是设计决定，不是照抄信号字面
func (n *Normalizer) parseCloseText(raw []byte) (model.TradeSignal, bool, error) {
	m := closePattern.FindStringSubmatch(strings.TrimSpace(string(raw)))
	if m == nil {
		return model.TradeSignal{}, false, nil
	}

	var side model.OrderSide
	switch strings.ToUpper(m[1]) {
	case "LONG":
		side = model.Sell
	case "SHORT":
		side = model.Buy
	}
	return model.TradeSignal{Action: side, Symbol: utils.CompactSymbol(m[2])}, true, nil
}

// 动作字符串统一转小写后映射到两值枚举
func mapAction(action string) (model.OrderSide, error) {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "buy":
		return model.Buy, nil
	case "sell":
		return model.Sell, nil
	default:
		return "", ErrInvalidAction
	}
}
