package services

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"finance-tracker/internal/kvstore"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"
	"finance-tracker/internal/repositories/repository_mocks"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func newTestStore(t *testing.T) (*repositories.Store, *kvstore.MemoryStore) {
	t.Helper()
	kv := kvstore.NewMemoryStore()
	store := repositories.NewStore(kv)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	return store, kv
}

// failingKV is a memory store whose writes can be switched off
type failingKV struct {
	*kvstore.MemoryStore
	failWrites atomic.Bool
}

func newFailingKV() *failingKV {
	return &failingKV{MemoryStore: kvstore.NewMemoryStore()}
}

func (f *failingKV) Set(key, value string) error {
	if f.failWrites.Load() {
		return errors.New("disk full")
	}
	return f.MemoryStore.Set(key, value)
}

func fakeExpenseInput(category string, amount float64, date models.Date) AddTransactionInput {
	return AddTransactionInput{
		Type:        models.TransactionTypeExpense,
		Amount:      decimal.NewFromFloat(amount),
		Category:    category,
		Description: gofakeit.ProductName(),
		Date:        date,
	}
}

func fakeIncomeInput(category string, amount float64, date models.Date) AddTransactionInput {
	return AddTransactionInput{
		Type:        models.TransactionTypeIncome,
		Amount:      decimal.NewFromFloat(amount),
		Category:    category,
		Description: gofakeit.Company() + " payment",
		Date:        date,
	}
}

type TransactionServiceSuite struct {
	suite.Suite
	store    *repositories.Store
	kv       *kvstore.MemoryStore
	registry *prometheus.Registry
	metrics  *PrometheusMetrics
	clock    time.Time
	service  *transactionService
}

func TestTransactionServiceSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceSuite))
}

func (s *TransactionServiceSuite) SetupTest() {
	s.store, s.kv = newTestStore(s.T())
	s.registry = prometheus.NewRegistry()
	s.metrics = NewPrometheusMetrics(s.registry).(*PrometheusMetrics)
	s.clock = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	s.service = newTransactionService(s.store, s.metrics, func() time.Time { return s.clock })
}

func (s *TransactionServiceSuite) TestAdd_Success() {
	date := models.NewDate(2024, time.March, 14)

	txn, err := s.service.Add(fakeExpenseInput(models.CategoryFood, 42.5, date))

	s.Require().NoError(err)
	s.Equal(s.clock.UnixMilli(), txn.ID)
	s.Equal(models.TransactionTypeExpense, txn.Type)
	s.True(decimal.NewFromFloat(42.5).Equal(txn.Amount))
	s.Equal(models.CategoryFood, txn.Category)
	s.Equal(date.String(), txn.Date.String())

	stored := s.store.Transactions()
	s.Require().Len(stored, 1)
	s.Equal(txn.ID, stored[0].ID)

	raw, found, err := s.kv.Get(repositories.TransactionsKey)
	s.NoError(err)
	s.True(found)
	s.Contains(raw, `"amount":42.5`)

	s.Equal(1.0, testutil.ToFloat64(s.metrics.transactionsCreated.WithLabelValues("expense")))
}

func (s *TransactionServiceSuite) TestAdd_IDsAreUniqueAndIncreasing() {
	date := models.NewDate(2024, time.March, 1)

	var previous int64
	for i := 0; i < 5; i++ {
		txn, err := s.service.Add(fakeExpenseInput(models.CategoryShopping, 10, date))
		s.Require().NoError(err)
		s.Greater(txn.ID, previous)
		previous = txn.ID
	}

	s.clock = s.clock.Add(-time.Hour)
	txn, err := s.service.Add(fakeExpenseInput(models.CategoryShopping, 10, date))
	s.Require().NoError(err)
	s.Greater(txn.ID, previous, "a clock going backwards still yields a larger id")
}

func (s *TransactionServiceSuite) TestAdd_IDsAvoidLoadedRecords() {
	s.Require().NoError(s.kv.Set(repositories.TransactionsKey,
		`[{"id":9999999999999,"type":"income","amount":5,"category":"gift","description":"old","date":"2024-01-01"}]`))
	s.Require().NoError(s.store.Load())

	txn, err := s.service.Add(fakeIncomeInput(models.CategoryGift, 5, models.NewDate(2024, time.March, 1)))

	s.Require().NoError(err)
	s.Equal(int64(10000000000000), txn.ID)
}

func (s *TransactionServiceSuite) TestAdd_DefaultsEmptyCategory() {
	expense, err := s.service.Add(fakeExpenseInput("", 10, models.NewDate(2024, time.March, 1)))
	s.Require().NoError(err)
	s.Equal(models.CategoryOther, expense.Category)

	income, err := s.service.Add(fakeIncomeInput("  ", 10, models.NewDate(2024, time.March, 1)))
	s.Require().NoError(err)
	s.Equal(models.CategoryOtherIncome, income.Category)
}

func (s *TransactionServiceSuite) TestAdd_ToleratesUnknownCategory() {
	txn, err := s.service.Add(fakeExpenseInput("pets", 10, models.NewDate(2024, time.March, 1)))

	s.Require().NoError(err)
	s.Equal("pets", txn.Category)
}

func (s *TransactionServiceSuite) TestAdd_ValidationFailures() {
	date := models.NewDate(2024, time.March, 1)

	testCases := []struct {
		name  string
		input AddTransactionInput
		field string
	}{
		{
			name:  "zero amount",
			input: AddTransactionInput{Type: models.TransactionTypeExpense, Amount: decimal.Zero, Description: "x", Date: date},
			field: "amount",
		},
		{
			name:  "negative amount",
			input: AddTransactionInput{Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(-10), Description: "x", Date: date},
			field: "amount",
		},
		{
			name:  "empty description",
			input: AddTransactionInput{Type: models.TransactionTypeIncome, Amount: decimal.NewFromInt(10), Description: "", Date: date},
			field: "description",
		},
		{
			name:  "missing date",
			input: AddTransactionInput{Type: models.TransactionTypeIncome, Amount: decimal.NewFromInt(10), Description: "x"},
			field: "date",
		},
		{
			name:  "unknown type",
			input: AddTransactionInput{Type: "transfer", Amount: decimal.NewFromInt(10), Description: "x", Date: date},
			field: "type",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			txn, err := s.service.Add(tc.input)

			s.Nil(txn)
			s.ErrorIs(err, models.ErrValidationFailed)
			var validationErr *models.ValidationError
			s.Require().ErrorAs(err, &validationErr)
			s.Equal(tc.field, validationErr.Field)
		})
	}

	s.Empty(s.store.Transactions())
	_, found, _ := s.kv.Get(repositories.TransactionsKey)
	s.False(found, "rejected input is never persisted")
}

func (s *TransactionServiceSuite) TestAddThenQuery_ContainsExactlyOneMatch() {
	date := models.NewDate(2024, time.March, 2)
	_, err := s.service.Add(fakeIncomeInput(models.CategorySalary, 1000, date))
	s.Require().NoError(err)
	added, err := s.service.Add(fakeExpenseInput(models.CategoryFood, 300, date))
	s.Require().NoError(err)

	matches := s.service.Query(models.TransactionFilters{Type: models.TransactionTypeExpense})

	s.Require().Len(matches, 1)
	s.Equal(added.ID, matches[0].ID)
}

func (s *TransactionServiceSuite) TestQuery_DateRangeInclusive() {
	for day := 1; day <= 5; day++ {
		_, err := s.service.Add(fakeExpenseInput(models.CategoryFood, float64(day), models.NewDate(2024, time.April, day)))
		s.Require().NoError(err)
	}

	start := models.NewDate(2024, time.April, 2)
	end := models.NewDate(2024, time.April, 4)
	matches := s.service.Query(models.TransactionFilters{StartDate: &start, EndDate: &end})

	s.Require().Len(matches, 3)
	s.Equal("2024-04-02", matches[0].Date.String())
	s.Equal("2024-04-04", matches[2].Date.String())
}

func (s *TransactionServiceSuite) TestDelete_IsIdempotent() {
	txn, err := s.service.Add(fakeExpenseInput(models.CategoryFood, 12, models.NewDate(2024, time.March, 1)))
	s.Require().NoError(err)
	_, err = s.service.Add(fakeExpenseInput(models.CategoryFood, 13, models.NewDate(2024, time.March, 1)))
	s.Require().NoError(err)

	s.NoError(s.service.Delete(txn.ID))
	afterFirst := s.store.Transactions()

	s.NoError(s.service.Delete(txn.ID))
	afterSecond := s.store.Transactions()

	s.Len(afterFirst, 1)
	s.Equal(afterFirst, afterSecond)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.transactionsDeleted))
}

func (s *TransactionServiceSuite) TestDelete_UnknownIDIsNoop() {
	s.NoError(s.service.Delete(123))
	s.Empty(s.store.Transactions())
}

func (s *TransactionServiceSuite) TestClearAll() {
	_, err := s.service.Add(fakeExpenseInput(models.CategoryFood, 12, models.NewDate(2024, time.March, 1)))
	s.Require().NoError(err)

	s.NoError(s.service.ClearAll())
	s.Empty(s.store.Transactions())

	raw, _, err := s.kv.Get(repositories.TransactionsKey)
	s.NoError(err)
	s.Equal("[]", raw)
}

func (s *TransactionServiceSuite) TestClearAll_EmptyReturnsNothingToClear() {
	err := s.service.ClearAll()

	s.ErrorIs(err, ErrNothingToClear)
	s.Empty(s.store.Transactions())
	s.Equal(0.0, testutil.ToFloat64(s.metrics.transactionsCleared))
}

func (s *TransactionServiceSuite) TestMutations_KeepGaugesCurrent() {
	date := models.NewDate(2024, time.March, 1)
	_, err := s.service.Add(fakeIncomeInput(models.CategorySalary, 100, date))
	s.Require().NoError(err)
	expense, err := s.service.Add(fakeExpenseInput(models.CategoryFood, 30, date))
	s.Require().NoError(err)

	s.Equal(70.0, testutil.ToFloat64(s.metrics.balance))
	s.Equal(2.0, testutil.ToFloat64(s.metrics.transactionCount))

	s.Require().NoError(s.service.Delete(expense.ID))
	s.Equal(100.0, testutil.ToFloat64(s.metrics.balance))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.transactionCount))

	s.Require().NoError(s.service.ClearAll())
	s.Equal(0.0, testutil.ToFloat64(s.metrics.balance))
	s.Equal(0.0, testutil.ToFloat64(s.metrics.transactionCount))
}

func (s *TransactionServiceSuite) TestAdd_FailedWriteCanBeRetried() {
	kv := newFailingKV()
	store := repositories.NewStore(kv)
	s.Require().NoError(store.Load())
	service := newTransactionService(store, s.metrics, func() time.Time { return s.clock })
	input := fakeExpenseInput(models.CategoryFood, 25, models.NewDate(2024, time.March, 1))

	kv.failWrites.Store(true)
	txn, err := service.Add(input)

	s.Nil(txn)
	s.Error(err)
	s.Empty(store.Transactions(), "a failed add leaves nothing behind")
	s.Equal(1.0, testutil.ToFloat64(s.metrics.storeSaveFailures.WithLabelValues("transactions")))
	s.Equal(0.0, testutil.ToFloat64(s.metrics.transactionsCreated.WithLabelValues("expense")))

	kv.failWrites.Store(false)
	txn, err = service.Add(input)

	s.Require().NoError(err)
	stored := store.Transactions()
	s.Require().Len(stored, 1, "the retry does not duplicate the transaction")
	s.Equal(txn.ID, stored[0].ID)
}

func (s *TransactionServiceSuite) TestDeleteAndClearAll_FailedWriteKeepsTransactions() {
	kv := newFailingKV()
	store := repositories.NewStore(kv)
	s.Require().NoError(store.Load())
	service := newTransactionService(store, s.metrics, func() time.Time { return s.clock })
	txn, err := service.Add(fakeExpenseInput(models.CategoryFood, 25, models.NewDate(2024, time.March, 1)))
	s.Require().NoError(err)

	kv.failWrites.Store(true)

	s.Error(service.Delete(txn.ID))
	s.Len(store.Transactions(), 1)

	err = service.ClearAll()
	s.Error(err)
	s.NotErrorIs(err, ErrNothingToClear)
	s.Len(store.Transactions(), 1)

	raw, _, err := kv.Get(repositories.TransactionsKey)
	s.NoError(err)
	s.Contains(raw, `"amount":25`)
}

func (s *TransactionServiceSuite) TestListAndRecent_NewestFirst() {
	dates := []models.Date{
		models.NewDate(2024, time.January, 10),
		models.NewDate(2024, time.March, 5),
		models.NewDate(2024, time.February, 1),
		models.NewDate(2024, time.March, 5),
		models.NewDate(2023, time.December, 31),
		models.NewDate(2024, time.March, 20),
	}
	var ids []int64
	for _, d := range dates {
		txn, err := s.service.Add(fakeExpenseInput(models.CategoryFood, 1, d))
		s.Require().NoError(err)
		ids = append(ids, txn.ID)
	}

	list := s.service.List()
	s.Require().Len(list, 6)
	s.Equal("2024-03-20", list[0].Date.String())
	s.Equal(ids[1], list[1].ID, "same-day entries keep insertion order")
	s.Equal(ids[3], list[2].ID)
	s.Equal("2023-12-31", list[5].Date.String())

	recent := s.service.Recent(0)
	s.Len(recent, DefaultRecentTransactionsLimit)
	s.Equal(list[:5], recent)

	s.Len(s.service.Recent(2), 2)
	s.Len(s.service.Recent(50), 6)
}

type TransactionServiceStoreFailureSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	store   *repository_mocks.MockStoreInterface
	service TransactionServiceInterface
}

func TestTransactionServiceStoreFailureSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceStoreFailureSuite))
}

func (s *TransactionServiceStoreFailureSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = repository_mocks.NewMockStoreInterface(s.ctrl)
	s.service = NewTransactionService(s.store, nil)
}

func (s *TransactionServiceStoreFailureSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *TransactionServiceStoreFailureSuite) TestAdd_PersistFailurePropagates() {
	s.store.EXPECT().MutateTransactions(gomock.Any()).Return(errors.New("failed to save transactions: disk full"))

	txn, err := s.service.Add(fakeExpenseInput(models.CategoryFood, 10, models.NewDate(2024, time.March, 1)))

	s.Nil(txn)
	s.Error(err)
	s.Contains(err.Error(), "failed to add transaction")
	s.Contains(err.Error(), "disk full")
}

func (s *TransactionServiceStoreFailureSuite) TestDelete_PersistFailurePropagates() {
	s.store.EXPECT().MutateTransactions(gomock.Any()).Return(errors.New("disk full"))

	err := s.service.Delete(1)

	s.Error(err)
	s.Contains(err.Error(), "failed to delete transaction")
}

func (s *TransactionServiceStoreFailureSuite) TestClearAll_PersistFailurePropagates() {
	s.store.EXPECT().MutateTransactions(gomock.Any()).Return(errors.New("disk full"))

	err := s.service.ClearAll()

	s.Error(err)
	s.NotErrorIs(err, ErrNothingToClear)
}

func TestTransactionService_ConcurrentAddAndDashboard(t *testing.T) {
	const workers = 50

	store, _ := newTestStore(t)
	metrics := NewPrometheusMetrics(prometheus.NewRegistry())
	transactions := NewTransactionService(store, metrics)
	dashboards := NewDashboardService(store, metrics)
	date := models.NewDate(2024, time.March, 1)
	reference := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	ids := make([]int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			txn, err := transactions.Add(fakeExpenseInput(models.CategoryFood, 1, date))
			if !assert.NoError(t, err) {
				return
			}
			ids[i] = txn.ID
			assert.NotNil(t, dashboards.Dashboard(reference, 0))
		}(i)
	}
	wg.Wait()

	unique := make(map[int64]struct{}, workers)
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	require.Len(t, unique, workers, "every concurrent add gets its own id")
	require.Len(t, store.Transactions(), workers)
	assert.True(t, decimal.NewFromInt(workers).Equal(dashboards.Totals().Expenses))
}
