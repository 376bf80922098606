package postgres

import (
	"context"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumeric(t *testing.T) {
	n := Numeric(decimal.RequireFromString("8.50"))

	require.True(t, n.Valid)
	assert.Equal(t, big.NewInt(850), n.Int)
	assert.Equal(t, int32(-2), n.Exp)
}

func TestCopyFromSlice_RequiresTransaction(t *testing.T) {
	b := NewBatchInserter(&TxManager{})

	_, err := b.CopyFromSlice(context.Background(), "catalog_item", []string{"name"}, [][]any{{"x"}})
	assert.Error(t, err)
}
