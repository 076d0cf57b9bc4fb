package services

import (
	"errors"
	"testing"
	"time"

	"finance-tracker/internal/kvstore"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"
	"finance-tracker/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BudgetServiceSuite struct {
	suite.Suite
	store        *repositories.Store
	kv           *kvstore.MemoryStore
	transactions TransactionServiceInterface
	service      BudgetServiceInterface
	date         models.Date
}

func TestBudgetServiceSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceSuite))
}

func (s *BudgetServiceSuite) SetupTest() {
	s.store, s.kv = newTestStore(s.T())
	s.transactions = NewTransactionService(s.store, nil)
	s.service = NewBudgetService(s.store, nil)
	s.date = models.NewDate(2024, time.May, 10)
}

func (s *BudgetServiceSuite) addExpense(category string, amount float64) {
	_, err := s.transactions.Add(fakeExpenseInput(category, amount, s.date))
	s.Require().NoError(err)
}

func (s *BudgetServiceSuite) TestUpsert_CreatesBudget() {
	budget, err := s.service.Upsert(models.CategoryFood, decimal.NewFromInt(500))

	s.Require().NoError(err)
	s.Equal(models.CategoryFood, budget.Category)
	s.True(decimal.NewFromInt(500).Equal(budget.Amount))

	raw, found, err := s.kv.Get(repositories.BudgetsKey)
	s.NoError(err)
	s.True(found)
	s.JSONEq(`[{"category":"food","amount":500}]`, raw)
}

func (s *BudgetServiceSuite) TestUpsert_ReplacesInPlace() {
	_, err := s.service.Upsert(models.CategoryFood, decimal.NewFromInt(500))
	s.Require().NoError(err)
	_, err = s.service.Upsert(models.CategoryHousing, decimal.NewFromInt(1200))
	s.Require().NoError(err)
	_, err = s.service.Upsert(models.CategoryFood, decimal.NewFromInt(650))
	s.Require().NoError(err)

	budgets := s.service.List()
	s.Require().Len(budgets, 2, "at most one budget per category")
	s.Equal(models.CategoryFood, budgets[0].Category, "order is preserved")
	s.True(decimal.NewFromInt(650).Equal(budgets[0].Amount))
	s.Equal(models.CategoryHousing, budgets[1].Category)
}

func (s *BudgetServiceSuite) TestUpsert_ValidationFailures() {
	testCases := []struct {
		name     string
		category string
		amount   decimal.Decimal
		field    string
	}{
		{"zero amount", models.CategoryFood, decimal.Zero, "amount"},
		{"negative amount", models.CategoryFood, decimal.NewFromInt(-20), "amount"},
		{"empty category", "", decimal.NewFromInt(20), "category"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			budget, err := s.service.Upsert(tc.category, tc.amount)

			s.Nil(budget)
			s.ErrorIs(err, models.ErrValidationFailed)
			var validationErr *models.ValidationError
			s.Require().ErrorAs(err, &validationErr)
			s.Equal(tc.field, validationErr.Field)
		})
	}

	s.Empty(s.service.List())
}

func (s *BudgetServiceSuite) TestUpsert_FailedWriteKeepsPreviousAmount() {
	kv := newFailingKV()
	store := repositories.NewStore(kv)
	s.Require().NoError(store.Load())
	service := NewBudgetService(store, nil)
	_, err := service.Upsert(models.CategoryFood, decimal.NewFromInt(500))
	s.Require().NoError(err)

	kv.failWrites.Store(true)
	budget, err := service.Upsert(models.CategoryFood, decimal.NewFromInt(900))

	s.Nil(budget)
	s.Error(err)
	stored, err := service.Get(models.CategoryFood)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(500).Equal(stored.Amount), "got %s", stored.Amount)
}

func (s *BudgetServiceSuite) TestDelete() {
	_, err := s.service.Upsert(models.CategoryFood, decimal.NewFromInt(500))
	s.Require().NoError(err)

	s.NoError(s.service.Delete(models.CategoryFood))
	s.Empty(s.service.List())

	s.NoError(s.service.Delete(models.CategoryFood), "deleting a missing budget is a no-op")
}

func (s *BudgetServiceSuite) TestGet() {
	_, err := s.service.Get(models.CategoryFood)
	s.ErrorIs(err, ErrBudgetNotFound)

	_, err = s.service.Upsert(models.CategoryFood, decimal.NewFromInt(500))
	s.Require().NoError(err)

	budget, err := s.service.Get(models.CategoryFood)
	s.NoError(err)
	s.True(decimal.NewFromInt(500).Equal(budget.Amount))
}

func (s *BudgetServiceSuite) TestSpentRemainingRatio_WorkedExample() {
	_, err := s.service.Upsert(models.CategoryFood, decimal.NewFromInt(500))
	s.Require().NoError(err)
	s.addExpense(models.CategoryFood, 200)
	s.addExpense(models.CategoryHousing, 900)
	_, err = s.transactions.Add(fakeIncomeInput(models.CategorySalary, 3000, s.date))
	s.Require().NoError(err)

	s.True(decimal.NewFromInt(200).Equal(s.service.Spent(models.CategoryFood)))

	remaining, err := s.service.Remaining(models.CategoryFood)
	s.NoError(err)
	s.True(decimal.NewFromInt(300).Equal(remaining))

	ratio, err := s.service.ConsumptionRatio(models.CategoryFood)
	s.NoError(err)
	s.True(decimal.RequireFromString("0.4").Equal(ratio))
}

func (s *BudgetServiceSuite) TestSpent_NoExpenses() {
	s.True(s.service.Spent(models.CategoryEntertainment).IsZero())
}

func (s *BudgetServiceSuite) TestOverspending() {
	_, err := s.service.Upsert(models.CategoryShopping, decimal.NewFromInt(100))
	s.Require().NoError(err)
	s.addExpense(models.CategoryShopping, 80)
	s.addExpense(models.CategoryShopping, 70)

	remaining, err := s.service.Remaining(models.CategoryShopping)
	s.NoError(err)
	s.True(decimal.NewFromInt(-50).Equal(remaining))

	ratio, err := s.service.ConsumptionRatio(models.CategoryShopping)
	s.NoError(err)
	s.True(decimal.NewFromInt(1).Equal(ratio), "ratio is capped at 1")

	overview := s.service.Overview()
	s.Require().Len(overview, 1)
	s.Equal(models.BudgetStatusOver, overview[0].Status)
	s.True(overview[0].IsOver())
	s.True(decimal.NewFromInt(100).Equal(overview[0].PercentUsed))
}

func (s *BudgetServiceSuite) TestConsumptionRatio_NotRounded() {
	_, err := s.service.Upsert(models.CategoryFood, decimal.NewFromInt(3))
	s.Require().NoError(err)
	s.addExpense(models.CategoryFood, 1)

	ratio, err := s.service.ConsumptionRatio(models.CategoryFood)
	s.NoError(err)
	s.True(decimal.NewFromInt(1).Div(decimal.NewFromInt(3)).Equal(ratio), "got %s", ratio)
	s.False(decimal.RequireFromString("0.3333").Equal(ratio))

	overview := s.service.Overview()
	s.Require().Len(overview, 1)
	s.True(ratio.Equal(overview[0].ConsumptionRatio))
	s.True(decimal.RequireFromString("33.3").Equal(overview[0].PercentUsed), "got %s", overview[0].PercentUsed)
}

func (s *BudgetServiceSuite) TestRemaining_NoBudget() {
	_, err := s.service.Remaining(models.CategoryGift)
	s.ErrorIs(err, ErrBudgetNotFound)

	_, err = s.service.ConsumptionRatio(models.CategoryGift)
	s.ErrorIs(err, ErrBudgetNotFound)
}

func (s *BudgetServiceSuite) TestOverview_BudgetOrderAndDetails() {
	_, err := s.service.Upsert(models.CategoryUtilities, decimal.NewFromInt(200))
	s.Require().NoError(err)
	_, err = s.service.Upsert("pets", decimal.NewFromInt(50))
	s.Require().NoError(err)
	s.addExpense(models.CategoryUtilities, 50)

	overview := s.service.Overview()

	s.Require().Len(overview, 2)
	s.Equal(models.CategoryUtilities, overview[0].Category)
	s.Equal("Utilities", overview[0].Details.Name)
	s.True(decimal.NewFromInt(150).Equal(overview[0].Remaining))
	s.True(decimal.NewFromInt(25).Equal(overview[0].PercentUsed))
	s.Equal(models.BudgetStatusUnder, overview[0].Status)

	s.Equal("pets", overview[1].Category)
	s.Equal(models.CategoryOther, overview[1].Details.Key, "unknown categories display as other")
	s.True(overview[1].ConsumptionRatio.IsZero())
}

type BudgetServiceStoreFailureSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	store   *repository_mocks.MockStoreInterface
	service BudgetServiceInterface
}

func TestBudgetServiceStoreFailureSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceStoreFailureSuite))
}

func (s *BudgetServiceStoreFailureSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = repository_mocks.NewMockStoreInterface(s.ctrl)
	s.service = NewBudgetService(s.store, nil)
}

func (s *BudgetServiceStoreFailureSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *BudgetServiceStoreFailureSuite) TestUpsert_PersistFailurePropagates() {
	s.store.EXPECT().MutateBudgets(gomock.Any()).Return(errors.New("read-only storage"))

	budget, err := s.service.Upsert(models.CategoryFood, decimal.NewFromInt(10))

	s.Nil(budget)
	s.Error(err)
	s.Contains(err.Error(), "failed to save budget")
}

func (s *BudgetServiceStoreFailureSuite) TestSpent_UsesStoreTransactions() {
	s.store.EXPECT().Transactions().Return([]models.Transaction{
		{ID: 1, Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(20), Category: models.CategoryFood},
		{ID: 2, Type: models.TransactionTypeIncome, Amount: decimal.NewFromInt(20), Category: models.CategoryFood},
		{ID: 3, Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(5), Category: models.CategoryFood},
	})

	s.True(decimal.NewFromInt(25).Equal(s.service.Spent(models.CategoryFood)))
}
