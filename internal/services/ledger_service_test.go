package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "budgethub/internal/errors"
	"budgethub/internal/models"
	"budgethub/internal/testutil"
)

func TestDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("increases_balance_and_records_entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewLedgerService(db)
		cat := testutil.CreateTestCategory(t, db, "1000")

		updated, err := svc.Deposit(ctx, DepositParams{CategoryID: cat.ID, Amount: dec("400"), Description: "  paycheck  "})
		require.NoError(t, err)
		testutil.AssertDecimal(t, "400", updated.CurrentAmount, "balance")

		var entries []models.SavingsTransaction
		require.NoError(t, db.Where("category_id = ?", cat.ID).Find(&entries).Error)
		require.Len(t, entries, 1)
		assert.Equal(t, models.SavingsTransactionDeposit, entries[0].Type)
		assert.Equal(t, models.SavingsSourceManual, entries[0].Source)
		require.NotNil(t, entries[0].Description)
		assert.Equal(t, "paycheck", *entries[0].Description)
		testutil.AssertBalanceMatchesLedger(t, db, cat.ID)
	})

	t.Run("keeps_explicit_source", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewLedgerService(db)
		cat := testutil.CreateTestCategory(t, db, "100")

		_, err := svc.Deposit(ctx, DepositParams{CategoryID: cat.ID, Amount: dec("5"), Source: models.SavingsSourceAutoSave})
		require.NoError(t, err)

		var entry models.SavingsTransaction
		require.NoError(t, db.Where("category_id = ?", cat.ID).First(&entry).Error)
		assert.Equal(t, models.SavingsSourceAutoSave, entry.Source)
		assert.Nil(t, entry.Description)
	})

	t.Run("invalid_source", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewLedgerService(db)
		cat := testutil.CreateTestCategory(t, db, "100")

		_, err := svc.Deposit(ctx, DepositParams{CategoryID: cat.ID, Amount: dec("5"), Source: "payroll"})
		testutil.AssertAppError(t, err, "INVALID_SAVINGS_SOURCE")
		assert.Zero(t, testutil.CountTransactions(t, db, cat.ID))
	})

	t.Run("invalid_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewLedgerService(db)
		cat := testutil.CreateTestCategory(t, db, "100")

		for _, amount := range []string{"0", "-10", "0.001"} {
			_, err := svc.Deposit(ctx, DepositParams{CategoryID: cat.ID, Amount: dec(amount)})
			testutil.AssertAppError(t, err, "INVALID_INPUT")
		}
		assert.Zero(t, testutil.CountTransactions(t, db, cat.ID))
	})

	t.Run("unknown_or_inactive_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewLedgerService(db)
		cat := testutil.CreateTestCategory(t, db, "100")
		testutil.DeactivateTestCategory(t, db, cat.ID)

		_, err := svc.Deposit(ctx, DepositParams{CategoryID: 9999, Amount: dec("5")})
		testutil.AssertAppError(t, err, "SAVINGS_CATEGORY_NOT_FOUND")

		_, err = svc.Deposit(ctx, DepositParams{CategoryID: cat.ID, Amount: dec("5")})
		testutil.AssertAppError(t, err, "SAVINGS_CATEGORY_NOT_FOUND")
		assert.Zero(t, testutil.CountTransactions(t, db, cat.ID))
	})
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("decreases_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewLedgerService(db)
		cat := testutil.CreateTestCategoryWithBalance(t, db, "1000", "300")

		updated, err := svc.Withdraw(ctx, WithdrawParams{CategoryID: cat.ID, Amount: dec("120.50")})
		require.NoError(t, err)
		testutil.AssertDecimal(t, "179.50", updated.CurrentAmount, "balance")
		assert.EqualValues(t, 2, testutil.CountTransactions(t, db, cat.ID))
		testutil.AssertBalanceMatchesLedger(t, db, cat.ID)
	})

	t.Run("exact_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewLedgerService(db)
		cat := testutil.CreateTestCategoryWithBalance(t, db, "1000", "300")

		updated, err := svc.Withdraw(ctx, WithdrawParams{CategoryID: cat.ID, Amount: dec("300")})
		require.NoError(t, err)
		assert.True(t, updated.CurrentAmount.IsZero())
	})

	t.Run("insufficient_funds_has_no_side_effects", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewLedgerService(db)
		cat := testutil.CreateTestCategoryWithBalance(t, db, "1000", "50")

		_, err := svc.Withdraw(ctx, WithdrawParams{CategoryID: cat.ID, Amount: dec("50.01")})
		testutil.AssertAppError(t, err, "INSUFFICIENT_FUNDS")
		assert.Equal(t, apperrors.KindInsufficientFunds, apperrors.KindOf(err))

		var reloaded models.SavingsCategory
		require.NoError(t, db.First(&reloaded, cat.ID).Error)
		testutil.AssertDecimal(t, "50", reloaded.CurrentAmount, "balance")
		assert.EqualValues(t, 1, testutil.CountTransactions(t, db, cat.ID))
	})

	t.Run("inactive_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewLedgerService(db)
		cat := testutil.CreateTestCategoryWithBalance(t, db, "1000", "50")
		testutil.DeactivateTestCategory(t, db, cat.ID)

		_, err := svc.Withdraw(ctx, WithdrawParams{CategoryID: cat.ID, Amount: dec("10")})
		testutil.AssertAppError(t, err, "SAVINGS_CATEGORY_NOT_FOUND")
	})

	t.Run("concurrent_withdrawals_never_overdraw", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewLedgerService(db)
		cat := testutil.CreateTestCategoryWithBalance(t, db, "1000", "100")

		const attempts = 8
		var wg sync.WaitGroup
		errs := make(chan error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.Withdraw(ctx, WithdrawParams{CategoryID: cat.ID, Amount: dec("30")})
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		succeeded := 0
		for err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			testutil.AssertAppError(t, err, "INSUFFICIENT_FUNDS")
		}
		assert.Equal(t, 3, succeeded)

		var reloaded models.SavingsCategory
		require.NoError(t, db.First(&reloaded, cat.ID).Error)
		testutil.AssertDecimal(t, "10", reloaded.CurrentAmount, "balance")
		testutil.AssertBalanceMatchesLedger(t, db, cat.ID)
	})
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("moves_funds", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewLedgerService(db)
		from := testutil.CreateTestCategoryWithBalance(t, db, "1000", "200")
		to := testutil.CreateTestCategoryWithBalance(t, db, "500", "50")

		updated, err := svc.Transfer(ctx, TransferParams{FromCategoryID: from.ID, ToCategoryID: to.ID, Amount: dec("75")})
		require.NoError(t, err)
		assert.Equal(t, to.ID, updated.ID)
		testutil.AssertDecimal(t, "125", updated.CurrentAmount, "destination balance")

		var source models.SavingsCategory
		require.NoError(t, db.First(&source, from.ID).Error)
		testutil.AssertDecimal(t, "125", source.CurrentAmount, "source balance")

		var out, in models.SavingsTransaction
		require.NoError(t, db.Where("category_id = ?", from.ID).Order("id DESC").First(&out).Error)
		require.NoError(t, db.Where("category_id = ?", to.ID).Order("id DESC").First(&in).Error)
		assert.Equal(t, models.SavingsTransactionWithdrawal, out.Type)
		assert.Equal(t, models.SavingsTransactionDeposit, in.Type)
		assert.Equal(t, models.SavingsSourceTransfer, out.Source)
		assert.Equal(t, models.SavingsSourceTransfer, in.Source)
		require.NotNil(t, out.Description)
		require.NotNil(t, in.Description)
		assert.Equal(t, "Transfer to "+to.Name, *out.Description)
		assert.Equal(t, "Transfer from "+from.Name, *in.Description)

		assert.EqualValues(t, 2, testutil.CountTransactions(t, db, from.ID))
		assert.EqualValues(t, 2, testutil.CountTransactions(t, db, to.ID))
		testutil.AssertBalanceMatchesLedger(t, db, from.ID)
		testutil.AssertBalanceMatchesLedger(t, db, to.ID)
	})

	t.Run("custom_description_on_both_legs", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewLedgerService(db)
		from := testutil.CreateTestCategoryWithBalance(t, db, "1000", "200")
		to := testutil.CreateTestCategory(t, db, "500")

		_, err := svc.Transfer(ctx, TransferParams{FromCategoryID: from.ID, ToCategoryID: to.ID, Amount: dec("10"), Description: "rebalance"})
		require.NoError(t, err)

		var entries []models.SavingsTransaction
		require.NoError(t, db.Where("source = ?", models.SavingsSourceTransfer).Find(&entries).Error)
		require.Len(t, entries, 2)
		for _, e := range entries {
			require.NotNil(t, e.Description)
			assert.Equal(t, "rebalance", *e.Description)
		}
	})

	t.Run("same_category_always_fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewLedgerService(db)
		cat := testutil.CreateTestCategoryWithBalance(t, db, "1000", "200")

		for _, amount := range []string{"10", "0", "5000", "-1"} {
			_, err := svc.Transfer(ctx, TransferParams{FromCategoryID: cat.ID, ToCategoryID: cat.ID, Amount: dec(amount)})
			testutil.AssertAppError(t, err, "SAME_CATEGORY_TRANSFER")
		}

		var reloaded models.SavingsCategory
		require.NoError(t, db.First(&reloaded, cat.ID).Error)
		testutil.AssertDecimal(t, "200", reloaded.CurrentAmount, "balance")
		assert.EqualValues(t, 1, testutil.CountTransactions(t, db, cat.ID))
	})

	t.Run("insufficient_funds_rolls_back", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewLedgerService(db)
		from := testutil.CreateTestCategoryWithBalance(t, db, "1000", "20")
		to := testutil.CreateTestCategory(t, db, "500")

		_, err := svc.Transfer(ctx, TransferParams{FromCategoryID: from.ID, ToCategoryID: to.ID, Amount: dec("25")})
		testutil.AssertAppError(t, err, "INSUFFICIENT_FUNDS")

		assert.EqualValues(t, 1, testutil.CountTransactions(t, db, from.ID))
		assert.Zero(t, testutil.CountTransactions(t, db, to.ID))
		testutil.AssertBalanceMatchesLedger(t, db, from.ID)
		testutil.AssertBalanceMatchesLedger(t, db, to.ID)
	})

	t.Run("missing_destination_rolls_back", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewLedgerService(db)
		from := testutil.CreateTestCategoryWithBalance(t, db, "1000", "100")

		_, err := svc.Transfer(ctx, TransferParams{FromCategoryID: from.ID, ToCategoryID: 9999, Amount: dec("25")})
		testutil.AssertAppError(t, err, "SAVINGS_CATEGORY_NOT_FOUND")

		var reloaded models.SavingsCategory
		require.NoError(t, db.First(&reloaded, from.ID).Error)
		testutil.AssertDecimal(t, "100", reloaded.CurrentAmount, "balance")
	})

	t.Run("opposing_transfers_conserve_total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewLedgerService(db)
		a := testutil.CreateTestCategoryWithBalance(t, db, "1000", "500")
		b := testutil.CreateTestCategoryWithBalance(t, db, "1000", "500")

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, _ = svc.Transfer(ctx, TransferParams{FromCategoryID: a.ID, ToCategoryID: b.ID, Amount: dec("40")})
			}()
			go func() {
				defer wg.Done()
				_, _ = svc.Transfer(ctx, TransferParams{FromCategoryID: b.ID, ToCategoryID: a.ID, Amount: dec("15")})
			}()
		}
		wg.Wait()

		var categories []models.SavingsCategory
		require.NoError(t, db.Find(&categories).Error)
		total := dec("0")
		for _, c := range categories {
			assert.False(t, c.CurrentAmount.IsNegative(), "category %d went negative", c.ID)
			total = total.Add(c.CurrentAmount)
		}
		testutil.AssertDecimal(t, "1000", total, "total across categories")
		testutil.AssertBalanceMatchesLedger(t, db, a.ID)
		testutil.AssertBalanceMatchesLedger(t, db, b.ID)
	})
}

func TestLedger_LaptopScenario(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	categories := NewSavingsCategoryService(db)
	ledger := NewLedgerService(db)

	laptop, err := categories.CreateCategory(ctx, CreateCategoryParams{Name: "Laptop", TargetAmount: dec("1000")})
	require.NoError(t, err)

	updated, err := ledger.Deposit(ctx, DepositParams{CategoryID: laptop.ID, Amount: dec("400")})
	require.NoError(t, err)
	testutil.AssertDecimal(t, "400", updated.CurrentAmount, "balance")
	assert.InDelta(t, 40.0, updated.Progress(), 0.0001)

	// Deposits have no ceiling.
	updated, err = ledger.Deposit(ctx, DepositParams{CategoryID: laptop.ID, Amount: dec("700")})
	require.NoError(t, err)
	testutil.AssertDecimal(t, "1100", updated.CurrentAmount, "balance")

	updated, err = ledger.Withdraw(ctx, WithdrawParams{CategoryID: laptop.ID, Amount: dec("1100")})
	require.NoError(t, err)
	assert.True(t, updated.CurrentAmount.IsZero())

	_, err = ledger.Withdraw(ctx, WithdrawParams{CategoryID: laptop.ID, Amount: dec("1")})
	testutil.AssertAppError(t, err, "INSUFFICIENT_FUNDS")

	current, err := categories.GetCategoryByID(ctx, laptop.ID)
	require.NoError(t, err)
	assert.True(t, current.CurrentAmount.IsZero())
	assert.EqualValues(t, 3, testutil.CountTransactions(t, db, laptop.ID))
	testutil.AssertBalanceMatchesLedger(t, db, laptop.ID)
}

func TestLedger_FractionalAmounts(t *testing.T) {
	ctx := context.Background()

	t.Run("withdraw_exact_total_of_fractional_deposits", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewLedgerService(db)
		cat := testutil.CreateTestCategory(t, db, "10")

		for _, amount := range []string{"0.7", "0.1"} {
			_, err := svc.Deposit(ctx, DepositParams{CategoryID: cat.ID, Amount: dec(amount)})
			require.NoError(t, err)
		}
		stored := testutil.ReloadCategory(t, db, cat.ID)
		testutil.AssertDecimal(t, "0.8", stored.CurrentAmount, "balance after deposits")

		updated, err := svc.Withdraw(ctx, WithdrawParams{CategoryID: cat.ID, Amount: dec("0.8")})
		require.NoError(t, err)
		assert.True(t, updated.CurrentAmount.IsZero(), "expected zero balance, got %s", updated.CurrentAmount)
		testutil.AssertBalanceMatchesLedger(t, db, cat.ID)
	})

	t.Run("no_residue_after_round_trip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewLedgerService(db)
		cat := testutil.CreateTestCategory(t, db, "10")

		for _, amount := range []string{"0.1", "0.2"} {
			_, err := svc.Deposit(ctx, DepositParams{CategoryID: cat.ID, Amount: dec(amount)})
			require.NoError(t, err)
		}
		updated, err := svc.Withdraw(ctx, WithdrawParams{CategoryID: cat.ID, Amount: dec("0.3")})
		require.NoError(t, err)
		assert.True(t, updated.CurrentAmount.IsZero(), "expected zero balance, got %s", updated.CurrentAmount)

		summary, err := NewSavingsCategoryService(db).GetSummary(ctx)
		require.NoError(t, err)
		assert.True(t, summary.TotalSaved.IsZero(), "expected zero saved, got %s", summary.TotalSaved)
		assert.Zero(t, summary.AvgProgress)
	})

	t.Run("transfer_fractional_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewLedgerService(db)
		from := testutil.CreateTestCategory(t, db, "10")
		to := testutil.CreateTestCategory(t, db, "10")

		for _, amount := range []string{"0.1", "0.2", "0.33"} {
			_, err := svc.Deposit(ctx, DepositParams{CategoryID: from.ID, Amount: dec(amount)})
			require.NoError(t, err)
		}

		updated, err := svc.Transfer(ctx, TransferParams{FromCategoryID: from.ID, ToCategoryID: to.ID, Amount: dec("0.63")})
		require.NoError(t, err)
		testutil.AssertDecimal(t, "0.63", updated.CurrentAmount, "destination balance")
		assert.True(t, testutil.ReloadCategory(t, db, from.ID).CurrentAmount.IsZero())
		testutil.AssertBalanceMatchesLedger(t, db, from.ID)
		testutil.AssertBalanceMatchesLedger(t, db, to.ID)
	})

	t.Run("summary_totals_are_rounded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewLedgerService(db)
		a := testutil.CreateTestCategory(t, db, "10")
		b := testutil.CreateTestCategory(t, db, "10")

		_, err := svc.Deposit(ctx, DepositParams{CategoryID: a.ID, Amount: dec("0.1")})
		require.NoError(t, err)
		_, err = svc.Deposit(ctx, DepositParams{CategoryID: b.ID, Amount: dec("0.2")})
		require.NoError(t, err)

		summary, err := NewSavingsCategoryService(db).GetSummary(ctx)
		require.NoError(t, err)
		testutil.AssertDecimal(t, "0.3", summary.TotalSaved, "total saved")
		testutil.AssertDecimal(t, "20", summary.TotalTarget, "total target")
	})
}
