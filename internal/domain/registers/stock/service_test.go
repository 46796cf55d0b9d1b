package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/core/types"
)

type recordingRepo struct {
	lastProductID id.ID
	lastQuantity  int64
	result        Deduction
	err           error
}

func (r *recordingRepo) Deduct(_ context.Context, productID id.ID, quantity int64) (Deduction, error) {
	r.lastProductID = productID
	r.lastQuantity = quantity
	return r.result, r.err
}

func TestTryDeductRejectsNonPositiveQuantity(t *testing.T) {
	repo := &recordingRepo{}
	ledger := NewLedger(repo)

	for _, quantity := range []int64{0, -1} {
		_, err := ledger.TryDeduct(context.Background(), id.New(), quantity)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	}
	// The repository is never reached on validation failures.
	assert.EqualValues(t, 0, repo.lastQuantity)
}

func TestTryDeductDelegates(t *testing.T) {
	productID := id.New()
	repo := &recordingRepo{result: Deduction{
		ProductID: productID,
		Name:      "Rice",
		Quantity:  2,
		UnitPrice: types.MustMoney("5.00"),
		Cost:      types.MustMoney("10.00"),
		Remaining: 8,
	}}
	ledger := NewLedger(repo)

	ded, err := ledger.TryDeduct(context.Background(), productID, 2)
	require.NoError(t, err)

	assert.Equal(t, productID, repo.lastProductID)
	assert.EqualValues(t, 2, repo.lastQuantity)
	assert.Equal(t, "Rice", ded.Name)
	assert.EqualValues(t, 8, ded.Remaining)
}

func TestTryDeductPropagatesErrors(t *testing.T) {
	repo := &recordingRepo{err: apperror.NewInsufficientStock("Rice", id.New().String(), 5, 2)}
	ledger := NewLedger(repo)

	_, err := ledger.TryDeduct(context.Background(), id.New(), 5)
	assert.True(t, apperror.IsInsufficientStock(err))
}
