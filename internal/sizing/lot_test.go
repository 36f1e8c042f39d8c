package sizing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tradeflow/internal/model"
)

func TestStepPrecision(t *testing.T) {
	tests := []struct {
		stepSize string
		want     int32
	}{
		{"0.0001", 4},
		{"0.001", 3},
		{"0.00100", 3}, // 尾部0必须先去掉
		{"0.0100", 2},
		{"0.1", 1},
		{"1", 0},
		{"1.000", 0},
		{"10", 0},
	}

	for _, tt := range tests {
		got, err := StepPrecision(tt.stepSize)
		require.NoError(t, err, "stepSize=%q", tt.stepSize)
		assert.Equal(t, tt.want, got, "stepSize=%q", tt.stepSize)
	}

	_, err := StepPrecision("abc")
	assert.Error(t, err)
	_, err = StepPrecision("")
	assert.Error(t, err)
}

func TestQuantize_TruncatesDown(t *testing.T) {
	c := &model.LotConstraint{Symbol: "BTCUSDT", StepSize: "0.0001"}

	// 0.00099 截断到4位 -> 0.0009，绝不进位
	got := Quantize(decimal.RequireFromString("0.00099"), c)
	assert.True(t, got.Equal(decimal.RequireFromString("0.0009")), "got %s", got)

	got = Quantize(decimal.RequireFromString("1.23456789"), c)
	assert.True(t, got.Equal(decimal.RequireFromString("1.2345")), "got %s", got)
}

func TestQuantize_Idempotent(t *testing.T) {
	c := &model.LotConstraint{Symbol: "BTCUSDT", StepSize: "0.001"}

	for _, raw := range []string{"0.123456", "5", "0.0009", "99.999999"} {
		x := decimal.RequireFromString(raw)
		once := Quantize(x, c)
		twice := Quantize(once, c)
		assert.True(t, twice.Equal(once), "raw=%s once=%s twice=%s", raw, once, twice)
	}
}

func TestQuantize_NeverRoundsUp(t *testing.T) {
	constraints := []*model.LotConstraint{
		{Symbol: "BTCUSDT", StepSize: "0.0001"},
		{Symbol: "BTCUSDT", StepSize: "0.01"},
		{Symbol: "BTCUSDT", StepSize: "1"},
	}
	values := []string{"0.00099", "0.999999", "123.456", "0.5"}

	for _, c := range constraints {
		for _, v := range values {
			x := decimal.RequireFromString(v)
			got := Quantize(x, c)
			assert.True(t, got.LessThanOrEqual(x), "step=%s x=%s got=%s", c.StepSize, x, got)
		}
	}
}

func TestQuantize_MissingConstraintFallsBack(t *testing.T) {
	// 约束缺失时降级到默认6位精度
	got := Quantize(decimal.RequireFromString("0.123456789"), nil)
	assert.True(t, got.Equal(decimal.RequireFromString("0.123456")), "got %s", got)

	// 步长非法同样降级
	got = Quantize(decimal.RequireFromString("0.123456789"), &model.LotConstraint{Symbol: "X", StepSize: "bogus"})
	assert.True(t, got.Equal(decimal.RequireFromString("0.123456")), "got %s", got)
}
