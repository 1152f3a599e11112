package kernel_test

import (
	"testing"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("accepts_zero_and_positive", func(t *testing.T) {
		m, err := kernel.NewMoney(0)
		require.NoError(t, err)
		assert.True(t, m.IsZero())

		m, err = kernel.NewMoney(12345)
		require.NoError(t, err)
		assert.Equal(t, int64(12345), m.MinorUnits())
	})

	t.Run("rejects_negative", func(t *testing.T) {
		_, err := kernel.NewMoney(-1)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	a, _ := kernel.NewMoney(1000)
	b, _ := kernel.NewMoney(300)

	t.Run("add", func(t *testing.T) {
		assert.Equal(t, int64(1300), a.Add(b).MinorUnits())
	})

	t.Run("sub_floors_at_zero", func(t *testing.T) {
		assert.Equal(t, int64(700), a.SubFloorZero(b).MinorUnits())
		assert.Equal(t, int64(0), b.SubFloorZero(a).MinorUnits())
	})

	t.Run("add_delta_floors_at_zero", func(t *testing.T) {
		assert.Equal(t, int64(1200), a.AddDelta(200).MinorUnits())
		assert.Equal(t, int64(0), b.AddDelta(-500).MinorUnits())
	})
}

func TestMoney_PercentHalfUp(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		percent int64
		want    int64
	}{
		{"ten_percent_of_1100", 1100, 10, 110},
		{"rounds_half_up", 105, 10, 11},   // 10.5 -> 11
		{"rounds_down_below_half", 104, 10, 10}, // 10.4 -> 10
		{"fifty_percent", 1100, 50, 550},
		{"zero_percent", 1100, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := kernel.NewMoney(tt.amount)
			assert.Equal(t, tt.want, m.PercentHalfUp(tt.percent).MinorUnits())
		})
	}
}

func TestMoney_MulQuantityHalfUp(t *testing.T) {
	price, _ := kernel.NewMoney(500)

	t.Run("whole_pieces", func(t *testing.T) {
		q, _ := kernel.NewPieceQuantity(2)
		assert.Equal(t, int64(1000), price.MulQuantityHalfUp(q).MinorUnits())
	})

	t.Run("fractional_weight", func(t *testing.T) {
		q, _ := kernel.NewWeightQuantity(2500) // 2.5 kg
		assert.Equal(t, int64(1250), price.MulQuantityHalfUp(q).MinorUnits())
	})

	t.Run("rounds_half_up_on_fraction", func(t *testing.T) {
		odd, _ := kernel.NewMoney(333)
		q, _ := kernel.NewWeightQuantity(1500) // 1.5 kg -> 499.5 -> 500
		assert.Equal(t, int64(500), odd.MulQuantityHalfUp(q).MinorUnits())
	})
}

func TestRoundHalfUpDiv(t *testing.T) {
	assert.Equal(t, int64(2), kernel.RoundHalfUpDiv(15, 10))
	assert.Equal(t, int64(1), kernel.RoundHalfUpDiv(14, 10))
	assert.Equal(t, int64(-2), kernel.RoundHalfUpDiv(-15, 10))
	assert.Equal(t, int64(-1), kernel.RoundHalfUpDiv(-14, 10))
}

func TestMoney_String(t *testing.T) {
	m, _ := kernel.NewMoney(150075)
	assert.Equal(t, "1500.75", m.String())
}
