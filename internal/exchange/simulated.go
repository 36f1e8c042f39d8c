package exchange

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"tradeflow/internal/model"
)

// 内存模拟交易所，用于dry-run模式和测试
type SimulatedExchange struct {
	mu          sync.Mutex
	balances    map[string]decimal.Decimal
	prices      map[string]decimal.Decimal
	instruments map[string]*model.Instrument
	// 所有下过的订单，测试用来断言“被拒绝的决策绝不会下单”
	placed []PlacedOrder

	// 错误注入，模拟协作方失败
	BalanceErr error
	PriceErr   error
	OrderErr   error
}

type PlacedOrder struct {
	Side     model.OrderSide
	Symbol   string
	Quantity decimal.Decimal
}

func NewSimulatedExchange() *SimulatedExchange {
	return &SimulatedExchange{
		balances:    make(map[string]decimal.Decimal),
		prices:      make(map[string]decimal.Decimal),
		instruments: make(map[string]*model.Instrument),
	}
}

// NewDryRunExchange 返回预置了演示行情的模拟交易所
// 空的模拟交易所余额为0，所有买入都会被底仓闸门拒绝，
// dry-run永远演示不出一条成功链路，所以这里预置一份行情
func NewDryRunExchange(symbol, quote string) *SimulatedExchange {
	symbol = strings.ToUpper(symbol)
	quote = strings.ToUpper(quote)
	base := strings.TrimSuffix(symbol, quote)

	s := NewSimulatedExchange()
	s.SetBalance(quote, decimal.NewFromInt(10000))
	s.SetPrice(symbol, decimal.NewFromInt(50000))
	s.SetInstrument(&model.Instrument{
		Symbol:   symbol,
		Base:     base,
		Quote:    quote,
		StepSize: "0.0001",
	})
	return s
}

// SetBalance 设置某币种的可用余额
func (s *SimulatedExchange) SetBalance(asset string, free decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[strings.ToUpper(asset)] = free
}

// SetPrice 设置交易对的最新价
func (s *SimulatedExchange) SetPrice(symbol string, price decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[strings.ToUpper(symbol)] = price
}

// SetInstrument 设置交易对元数据
func (s *SimulatedExchange) SetInstrument(inst *model.Instrument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instruments[strings.ToUpper(inst.Symbol)] = inst
}

func (s *SimulatedExchange) GetFreeBalance(ctx context.Context, asset string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.BalanceErr != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrAccountQuery, s.BalanceErr)
	}
	return s.balances[strings.ToUpper(asset)], nil
}

func (s *SimulatedExchange) GetLastPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PriceErr != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrQuoteQuery, s.PriceErr)
	}
	price, ok := s.prices[strings.ToUpper(symbol)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no price for %s", ErrQuoteQuery, symbol)
	}
	return price, nil
}

func (s *SimulatedExchange) GetInstrument(ctx context.Context, symbol string) (*model.Instrument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, ok := s.instruments[strings.ToUpper(symbol)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInstrumentNotFound, symbol)
	}
	return inst, nil
}

func (s *SimulatedExchange) PlaceMarketOrder(ctx context.Context, side model.OrderSide, symbol string, quantity decimal.Decimal) (*model.OrderResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.OrderErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchange, s.OrderErr)
	}

	s.placed = append(s.placed, PlacedOrder{Side: side, Symbol: strings.ToUpper(symbol), Quantity: quantity})

	return &model.OrderResponse{
		OrderId: uuid.NewString(),
		Status:  1,
		Message: "simulated order filled",
	}, nil
}

// PlacedOrders 返回所有已下单记录的副本
func (s *SimulatedExchange) PlacedOrders() []PlacedOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PlacedOrder, len(s.placed))
	copy(out, s.placed)
	return out
}
