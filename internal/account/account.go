package account

import (
	"context"
	"errors"
	"time"

	goexv2 "github.com/nntaoli-project/goex/v2"
	"github.com/nntaoli-project/goex/v2/model"
	"github.com/shopspring/decimal"
)

// Balance 账户某币种的余额快照
type Balance struct {
	Currency  string
	Total     decimal.Decimal
	Available decimal.Decimal
	Frozen    decimal.Decimal
}

type Service struct {
	prv goexv2.IPrvRest
}

// NewService 创建账户服务，prv是goex私有API客户端
func NewService(prv goexv2.IPrvRest) *Service {
	return &Service{prv: prv}
}

// GetBalance 查询指定币种的账户余额（可用余额）
// 每次调用都实时请求交易所，不做缓存：仓位计算依赖新鲜快照
func (s *Service) GetBalance(ctx context.Context, coin string) (balance *Balance, err error) {
	// goex私有方法没有context，临时用超时控制
	timeoutCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ch := make(chan struct {
		bal map[string]model.Account
		err error
	}, 1)

	go func() {
		bal, _, err := s.prv.GetAccount(coin)
		ch <- struct {
			bal map[string]model.Account
			err error
		}{bal, err}
	}()

	select {
	case <-timeoutCtx.Done():
		return nil, timeoutCtx.Err()
	case result := <-ch:
		if result.err != nil {
			return nil, result.err
		}
		acc, ok := result.bal[coin]
		if !ok {
			return nil, errors.New("account info not found for coin " + coin)
		}
		return &Balance{
			Currency:  acc.Coin,
			Total:     decimal.NewFromFloat(acc.Balance),
			Available: decimal.NewFromFloat(acc.AvailableBalance),
			Frozen:    decimal.NewFromFloat(acc.FrozenBalance),
		}, nil
	}
}
