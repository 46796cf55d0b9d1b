package bill

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/core/types"
	"tillpoint/internal/domain/registers/income"
	"tillpoint/internal/domain/registers/stock"
	"tillpoint/pkg/billnum"
)

// fakeStockRepo keeps in-memory stock levels and applies the same
// decrement-only-if-sufficient rule as the SQL implementation.
type fakeStockRepo struct {
	products map[id.ID]*fakeStockRow
}

type fakeStockRow struct {
	name  string
	price types.Money
	stock int64
}

func (f *fakeStockRepo) Deduct(_ context.Context, productID id.ID, quantity int64) (stock.Deduction, error) {
	row, ok := f.products[productID]
	if !ok {
		return stock.Deduction{}, apperror.NewNotFound("product", productID)
	}
	if row.stock < quantity {
		return stock.Deduction{}, apperror.NewInsufficientStock(row.name, productID.String(), quantity, row.stock)
	}
	row.stock -= quantity
	return stock.Deduction{
		ProductID: productID,
		Name:      row.name,
		Quantity:  quantity,
		UnitPrice: row.price,
		Cost:      types.MulInt(row.price, quantity),
		Remaining: row.stock,
	}, nil
}

type fakeBillRepo struct {
	created *Bill
}

func (f *fakeBillRepo) Create(_ context.Context, b *Bill) error {
	f.created = b
	return nil
}

func (f *fakeBillRepo) GetByID(_ context.Context, billID id.ID) (*Bill, error) {
	if f.created == nil || f.created.ID != billID {
		return nil, apperror.NewNotFound("bill", billID)
	}
	return f.created, nil
}

func (f *fakeBillRepo) List(context.Context) ([]*Bill, error) {
	if f.created == nil {
		return nil, nil
	}
	return []*Bill{f.created}, nil
}

type fakeIncomeRepo struct {
	increments []income.Increment
}

func (f *fakeIncomeRepo) Add(_ context.Context, inc income.Increment) error {
	f.increments = append(f.increments, inc)
	return nil
}

func (f *fakeIncomeRepo) Range(context.Context, time.Time, time.Time) ([]income.DailyRecord, error) {
	return nil, nil
}

type fakeRenderer struct {
	err error
}

func (f *fakeRenderer) Render(_ context.Context, b *Bill, _ time.Time) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("receipt:" + b.BillNumber), nil
}

// passthroughTxManager runs fn directly; rollback semantics are covered
// by the store-level implementation.
type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	service *Service
	stock   *fakeStockRepo
	bills   *fakeBillRepo
	income  *fakeIncomeRepo
}

func newFixture(renderer Renderer) *fixture {
	stockRepo := &fakeStockRepo{products: map[id.ID]*fakeStockRow{}}
	billRepo := &fakeBillRepo{}
	incomeRepo := &fakeIncomeRepo{}
	svc := NewService(
		billRepo,
		stock.NewLedger(stockRepo),
		incomeRepo,
		billnum.New(""),
		renderer,
		passthroughTxManager{},
	)
	return &fixture{service: svc, stock: stockRepo, bills: billRepo, income: incomeRepo}
}

func (f *fixture) addProduct(name string, price string, level int64) id.ID {
	productID := id.New()
	f.stock.products[productID] = &fakeStockRow{
		name:  name,
		price: types.MustMoney(price),
		stock: level,
	}
	return productID
}

func TestGenerateHappyPath(t *testing.T) {
	f := newFixture(&fakeRenderer{})
	riceID := f.addProduct("Rice", "5.00", 10)

	doc, receipt, err := f.service.Generate(context.Background(),
		[]LineRequest{{ProductID: riceID, Quantity: 3}}, income.MethodCash)
	require.NoError(t, err)

	assert.Equal(t, "15.00", doc.TotalCost.StringFixed(2))
	assert.Regexp(t, `^BILL-\d+-\d{3}$`, doc.BillNumber)
	assert.Equal(t, StatusPending, doc.Status)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "Rice", doc.Items[0].ProductName)
	assert.Equal(t, "15.00", doc.Items[0].Cost.StringFixed(2))

	// Stock went down, the bill was persisted, the ledger got one increment.
	assert.EqualValues(t, 7, f.stock.products[riceID].stock)
	require.NotNil(t, f.bills.created)
	require.Len(t, f.income.increments, 1)
	assert.Equal(t, "15.00", f.income.increments[0].Amount.StringFixed(2))
	assert.Equal(t, income.MethodCash, f.income.increments[0].PaymentMethod)
	assert.Equal(t, income.DayOf(time.Now()), f.income.increments[0].Date)

	assert.Equal(t, []byte("receipt:"+doc.BillNumber), receipt)
}

func TestGenerateMultiLineTotal(t *testing.T) {
	f := newFixture(&fakeRenderer{})
	riceID := f.addProduct("Rice", "2.50", 100)
	milkID := f.addProduct("Milk", "1.20", 50)

	doc, _, err := f.service.Generate(context.Background(), []LineRequest{
		{ProductID: riceID, Quantity: 4},
		{ProductID: milkID, Quantity: 5},
	}, income.MethodCard)
	require.NoError(t, err)

	// 4*2.50 + 5*1.20 = 16.00
	assert.Equal(t, "16.00", doc.TotalCost.StringFixed(2))
	require.Len(t, doc.Items, 2)
	assert.Equal(t, 1, doc.Items[0].LineNo)
	assert.Equal(t, 2, doc.Items[1].LineNo)
}

func TestGenerateInsufficientStock(t *testing.T) {
	f := newFixture(&fakeRenderer{})
	riceID := f.addProduct("Rice", "5.00", 2)

	_, _, err := f.service.Generate(context.Background(),
		[]LineRequest{{ProductID: riceID, Quantity: 3}}, income.MethodCash)
	require.Error(t, err)

	assert.True(t, apperror.IsInsufficientStock(err))
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, 400, appErr.HTTPStatus)
	assert.Contains(t, appErr.Message, "Rice")

	// Nothing was persisted and the failing line deducted nothing.
	assert.EqualValues(t, 2, f.stock.products[riceID].stock)
	assert.Nil(t, f.bills.created)
	assert.Empty(t, f.income.increments)
}

func TestGenerateUnknownProduct(t *testing.T) {
	f := newFixture(&fakeRenderer{})

	_, _, err := f.service.Generate(context.Background(),
		[]LineRequest{{ProductID: id.New(), Quantity: 1}}, income.MethodCash)
	require.Error(t, err)

	assert.True(t, apperror.IsNotFound(err))
	assert.Nil(t, f.bills.created)
	assert.Empty(t, f.income.increments)
}

func TestGenerateInvalidPaymentMethod(t *testing.T) {
	f := newFixture(&fakeRenderer{})
	riceID := f.addProduct("Rice", "5.00", 10)

	_, _, err := f.service.Generate(context.Background(),
		[]LineRequest{{ProductID: riceID, Quantity: 1}}, "cheque")
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	// Validation runs before any side effect.
	assert.EqualValues(t, 10, f.stock.products[riceID].stock)
}

func TestGenerateEmptyItems(t *testing.T) {
	f := newFixture(&fakeRenderer{})

	_, _, err := f.service.Generate(context.Background(), nil, income.MethodCash)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestGenerateRendererFailure(t *testing.T) {
	f := newFixture(&fakeRenderer{err: errors.New("gotenberg down")})
	riceID := f.addProduct("Rice", "5.00", 10)

	_, _, err := f.service.Generate(context.Background(),
		[]LineRequest{{ProductID: riceID, Quantity: 1}}, income.MethodCash)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodePersistence, appErr.Code)
	assert.Equal(t, 400, appErr.HTTPStatus)

	// The bill itself was committed before rendering failed.
	assert.NotNil(t, f.bills.created)
}
