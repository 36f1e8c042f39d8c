package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"tradeflow/internal/model"
	"tradeflow/pkg/logger"
	"tradeflow/pkg/utils"
)

// okx的公开接口，不需要apikey
// goex没有暴露instruments返回的原始lotSz字符串，所以这里自己请求

// PublicClient 封装了与 OKX 公开 REST API 通信所需的一切
type PublicClient struct {
	httpClient *http.Client
	baseURL    string

	mu       sync.Mutex
	index    map[string]*model.Instrument // 紧凑symbol(BTCUSDT) -> 元数据
	loadedAt time.Time
	ttl      time.Duration
}

// NewPublicClient 初始化并返回一个新的 PublicClient 实例
func NewPublicClient() *PublicClient {
	return &PublicClient{
		// OKX V5 基础公共 API 地址
		baseURL: "https://www.okx.com/api/v5",
		// 使用自定义的 HTTP Client，设置合理的超时时间
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		index: make(map[string]*model.Instrument),
		// 交易对元数据变化很少，本地缓存一段时间即可
		ttl: time.Hour,
	}
}

const maxRetries = 3

// GetInstrument 根据紧凑symbol（如BTCUSDT）查交易对元数据
// 缓存过期时整体刷新一次instruments列表
func (c *PublicClient) GetInstrument(ctx context.Context, symbol string) (*model.Instrument, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if time.Since(c.loadedAt) > c.ttl || len(c.index) == 0 {
		if err := c.reload(ctx); err != nil {
			// 刷新失败但缓存里还有旧数据时继续用旧数据
			if len(c.index) == 0 {
				return nil, err
			}
			logger.Warnf("instruments刷新失败，继续使用过期缓存: %v", err)
		}
	}

	inst, ok := c.index[strings.ToUpper(symbol)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInstrumentNotFound, symbol)
	}
	return inst, nil
}

func (c *PublicClient) reload(ctx context.Context) error {
	raws, err := c.getInstrumentsWithRetry(ctx, "SPOT")
	if err != nil {
		return err
	}

	index := make(map[string]*model.Instrument, len(raws))
	for _, raw := range raws {
		if raw.State != "live" {
			continue
		}
		// BTC-USDT -> BTCUSDT，信号里的symbol都是紧凑格式
		compact := utils.CompactSymbol(raw.InstId)
		index[compact] = &model.Instrument{
			Symbol:   compact,
			Base:     raw.BaseCcy,
			Quote:    raw.QuoteCcy,
			StepSize: raw.LotSz,
		}
	}
	c.index = index
	c.loadedAt = time.Now()
	return nil
}

// getInstrumentsWithRetry 封装了 getInstruments，并添加了指数退避重试
func (c *PublicClient) getInstrumentsWithRetry(ctx context.Context, instType string) ([]InstrumentRaw, error) {
	var instruments []InstrumentRaw

	err := utils.Retry(ctx, maxRetries, 2*time.Second, true, func() error {
		var e error
		instruments, e = c.getInstruments(ctx, instType)
		if e != nil {
			logger.Warnf("获取%s交易对失败: %v", instType, e)
		}
		return e
	})
	if err != nil {
		return nil, fmt.Errorf("无法获取 %s 交易对列表: %w", instType, err)
	}

	return instruments, nil
}

// getInstruments 获取所有交易产品列表
// instType: SPOT, SWAP, FUTURES 等
func (c *PublicClient) getInstruments(ctx context.Context, instType string) ([]InstrumentRaw, error) {
	endpoint := fmt.Sprintf("/public/instruments?instType=%s", instType)

	var instruments []InstrumentRaw
	if err := c.doPublicGet(ctx, endpoint, &instruments); err != nil {
		return nil, fmt.Errorf("获取 %s 交易对失败: %w", instType, err)
	}

	return instruments, nil
}

// doPublicGet 执行通用的 GET 请求，处理 JSON 解析和错误
func (c *PublicClient) doPublicGet(ctx context.Context, endpoint string, result interface{}) error {
	url := fmt.Sprintf("%s%s", c.baseURL, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API返回非成功状态码: %d", resp.StatusCode)
	}

	// OKX API 的标准 JSON 格式：{"code":"0", "msg":"", "data":[...]}
	var apiResponse struct {
		Code string          `json:"code"`
		Msg  string          `json:"msg"`
		Data json.RawMessage `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return fmt.Errorf("解析API响应JSON失败: %w", err)
	}

	if apiResponse.Code != "0" {
		return fmt.Errorf("OKX API错误, Code: %s, Msg: %s", apiResponse.Code, apiResponse.Msg)
	}

	if err := json.Unmarshal(apiResponse.Data, result); err != nil {
		return fmt.Errorf("解析Data字段到目标结构体失败: %w", err)
	}

	return nil
}

// InstrumentRaw 对应 OKX API 返回的单个交易对信息
type InstrumentRaw struct {
	InstId   string `json:"instId"`   // 交易对 ID (如 BTC-USDT)
	InstType string `json:"instType"` // 交易对类型 (SPOT/SWAP/FUTURES)
	BaseCcy  string `json:"baseCcy"`  // 主币代码 (如 BTC)
	QuoteCcy string `json:"quoteCcy"` // 计价币代码 (如 USDT)
	State    string `json:"state"`    // 交易状态 (如 live)

	TickSz string `json:"tickSz"` // 价格步长
	MinSz  string `json:"minSz"`  // 最小下单数量
	LotSz  string `json:"lotSz"`  // 数量步长
}
