package utils

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Retry 尝试执行 fn，如果失败则重试，最多 retries 次
// delay 是两次重试之间的间隔，backoff=true 表示指数退避
// ctx被取消时立即停止重试
func Retry(ctx context.Context, retries int, delay time.Duration, backoff bool, fn func() error) error {
	var err error
	for i := 0; i < retries; i++ {
		err = fn()
		if err == nil {
			return nil
		}

		if i < retries-1 { // 最后一次就不用 sleep 了
			sleep := delay
			if backoff {
				sleep = delay * time.Duration(1<<i) // 1x,2x,4x,8x...
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(sleep):
			}
		}
	}
	return fmt.Errorf("after %d attempts, last error: %w", retries, err)
}

// CompactSymbol 把各种来源的交易对写法统一成紧凑大写格式
//   - TradingView ticker:  BINANCE:BTCUSDT -> BTCUSDT
//   - OKX instId:          BTC-USDT        -> BTCUSDT
//   - 斜杠写法:             btc/usdt        -> BTCUSDT
func CompactSymbol(symbol string) string {
	s := strings.TrimSpace(symbol)
	// 去掉交易所前缀
	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "/", "")
	return strings.ToUpper(s)
}
