package sizing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"tradeflow/internal/consts"
	"tradeflow/internal/model"
	"tradeflow/pkg/logger"
)

// 数量量化：把计算出的原始数量对齐到交易所允许的步长网格

// StepPrecision 计算步长字符串的精度：去掉尾部0之后的小数位数
// 例如 "0.0001" -> 4，"0.0100" -> 2，"1" -> 0
// 不先去尾部0的话，"0.0100"会被错算成4位，这是步长精度最常见的坑
func StepPrecision(stepSize string) (int32, error) {
	if _, err := decimal.NewFromString(stepSize); err != nil {
		return 0, fmt.Errorf("invalid step size %q: %w", stepSize, err)
	}

	dot := strings.IndexByte(stepSize, '.')
	if dot < 0 {
		return 0, nil
	}
	frac := strings.TrimRight(stepSize[dot+1:], "0")
	return int32(len(frac)), nil
}

// Quantize 把原始数量向下对齐到约束精度
// 只截断不进位：向上取整可能超出实际可用资金
// 约束缺失或步长非法时降级到默认精度，这属于降级行为，必须告警
func Quantize(raw decimal.Decimal, c *model.LotConstraint) decimal.Decimal {
	if c == nil || c.StepSize == "" {
		logger.Warnf("缺少交易对步长元数据，降级使用默认精度%d位", consts.DefaultQtyPrecision)
		return raw.Truncate(consts.DefaultQtyPrecision)
	}

	precision, err := StepPrecision(c.StepSize)
	if err != nil {
		logger.Warnf("步长解析失败(%s %q)，降级使用默认精度%d位: %v",
			c.Symbol, c.StepSize, consts.DefaultQtyPrecision, err)
		return raw.Truncate(consts.DefaultQtyPrecision)
	}

	return raw.Truncate(precision)
}
