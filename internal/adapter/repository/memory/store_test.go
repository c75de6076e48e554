package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/bank-ledger-service/internal/domain"
)

func seedAccount(t *testing.T, store *Store, number string, balance int64) {
	t.Helper()

	_, err := store.Create(context.Background(), domain.Account{
		CustomerID:    "customer-1",
		AccountNumber: number,
		Balance:       decimal.NewFromInt(balance),
		Status:        domain.AccountStatusActive,
	})
	require.NoError(t, err)
}

func TestCreateRejectsDuplicateAccountNumber(t *testing.T) {
	store := NewStore()
	seedAccount(t, store, "1000000001", 100)

	_, err := store.Create(context.Background(), domain.Account{
		CustomerID:    "customer-2",
		AccountNumber: "1000000001",
	})
	require.ErrorIs(t, err, domain.ErrDuplicateRecord)
}

func TestGetByAccountNumberMissing(t *testing.T) {
	store := NewStore()

	_, err := store.GetByAccountNumber(context.Background(), "0000000000")
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestUpdateStatus(t *testing.T) {
	store := NewStore()
	seedAccount(t, store, "1000000001", 100)
	ctx := context.Background()

	require.NoError(t, store.UpdateStatus(ctx, "1000000001", domain.AccountStatusInactive))

	account, err := store.GetByAccountNumber(ctx, "1000000001")
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusInactive, account.Status)
}

func TestAtomicUpdateUnknownAccount(t *testing.T) {
	store := NewStore()

	_, err := store.AtomicUpdate(context.Background(), []string{"0000000000"}, func(accounts map[string]*domain.Account) (*domain.Transaction, error) {
		t.Fatal("apply must not run for unknown accounts")
		return nil, nil
	})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAtomicUpdateApplyErrorLeavesStateUntouched(t *testing.T) {
	store := NewStore()
	seedAccount(t, store, "1000000001", 100)
	ctx := context.Background()

	_, err := store.AtomicUpdate(ctx, []string{"1000000001"}, func(accounts map[string]*domain.Account) (*domain.Transaction, error) {
		accounts["1000000001"].Balance = decimal.Zero
		return nil, domain.ErrInsufficientBalance
	})
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	account, err := store.GetByAccountNumber(ctx, "1000000001")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(100)))

	page, err := store.ListAll(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.TotalElements)
}

func TestAtomicUpdateNilRecordAborts(t *testing.T) {
	store := NewStore()
	seedAccount(t, store, "1000000001", 100)
	ctx := context.Background()

	_, err := store.AtomicUpdate(ctx, []string{"1000000001"}, func(accounts map[string]*domain.Account) (*domain.Transaction, error) {
		accounts["1000000001"].Balance = decimal.Zero
		return nil, nil
	})
	require.ErrorIs(t, err, domain.ErrTransactionAborted)

	account, err := store.GetByAccountNumber(ctx, "1000000001")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(100)))

	page, err := store.ListAll(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.TotalElements)
}

func TestUpdateStatusNotLostDuringAtomicUpdate(t *testing.T) {
	store := NewStore()
	seedAccount(t, store, "1000000001", 100)
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	commitDone := make(chan error, 1)

	go func() {
		_, err := store.AtomicUpdate(ctx, []string{"1000000001"}, func(accounts map[string]*domain.Account) (*domain.Transaction, error) {
			close(entered)
			<-release
			accounts["1000000001"].Balance = accounts["1000000001"].Balance.Add(decimal.NewFromInt(1))
			return &domain.Transaction{
				Type:                domain.TransactionTypeCredit,
				Amount:              decimal.NewFromInt(1),
				SenderAccountNumber: "1000000001",
			}, nil
		})
		commitDone <- err
	}()

	<-entered

	// The deactivation must wait for the in-flight commit, never be
	// overwritten by it.
	statusDone := make(chan error, 1)
	go func() {
		statusDone <- store.UpdateStatus(ctx, "1000000001", domain.AccountStatusInactive)
	}()

	close(release)
	require.NoError(t, <-commitDone)
	require.NoError(t, <-statusDone)

	account, err := store.GetByAccountNumber(ctx, "1000000001")
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusInactive, account.Status)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(101)))
}

func TestAtomicUpdateAssignsMonotonicIDs(t *testing.T) {
	store := NewStore()
	seedAccount(t, store, "1000000001", 100)
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		record, err := store.AtomicUpdate(ctx, []string{"1000000001"}, func(accounts map[string]*domain.Account) (*domain.Transaction, error) {
			accounts["1000000001"].Balance = accounts["1000000001"].Balance.Add(decimal.NewFromInt(1))
			return &domain.Transaction{
				Type:                domain.TransactionTypeCredit,
				Amount:              decimal.NewFromInt(1),
				SenderAccountNumber: "1000000001",
			}, nil
		})
		require.NoError(t, err)
		assert.Greater(t, record.ID, last)
		assert.False(t, record.Date.IsZero())
		last = record.ID
	}
}

func TestAtomicUpdateConcurrentOpposingTransfers(t *testing.T) {
	store := NewStore()
	seedAccount(t, store, "1000000001", 1000)
	seedAccount(t, store, "1000000002", 1000)
	ctx := context.Background()

	transfer := func(from, to string) {
		_, _ = store.AtomicUpdate(ctx, []string{from, to}, func(accounts map[string]*domain.Account) (*domain.Transaction, error) {
			amount := decimal.NewFromInt(1)
			if accounts[from].Balance.LessThan(amount) {
				return nil, domain.ErrInsufficientBalance
			}
			accounts[from].Balance = accounts[from].Balance.Sub(amount)
			accounts[to].Balance = accounts[to].Balance.Add(amount)
			receiver := to
			return &domain.Transaction{
				Type:                  domain.TransactionTypeTransfer,
				Amount:                amount,
				SenderAccountNumber:   from,
				ReceiverAccountNumber: &receiver,
			}, nil
		})
	}

	const rounds = 200
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			transfer("1000000001", "1000000002")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			transfer("1000000002", "1000000001")
		}
	}()
	wg.Wait()

	first, err := store.GetByAccountNumber(ctx, "1000000001")
	require.NoError(t, err)
	second, err := store.GetByAccountNumber(ctx, "1000000002")
	require.NoError(t, err)

	total := first.Balance.Add(second.Balance)
	assert.True(t, total.Equal(decimal.NewFromInt(2000)), "funds must be conserved, got %s", total)

	page, err := store.ListAll(ctx, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2*rounds), page.TotalElements)
}

func TestListByCustomerFiltersAndPaginates(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_, err := store.Create(ctx, domain.Account{CustomerID: "customer-1", AccountNumber: "1000000001", Balance: decimal.NewFromInt(100), Status: domain.AccountStatusActive})
	require.NoError(t, err)
	_, err = store.Create(ctx, domain.Account{CustomerID: "customer-2", AccountNumber: "1000000002", Balance: decimal.NewFromInt(100), Status: domain.AccountStatusActive})
	require.NoError(t, err)

	credit := func(number string) {
		_, err := store.AtomicUpdate(ctx, []string{number}, func(accounts map[string]*domain.Account) (*domain.Transaction, error) {
			accounts[number].Balance = accounts[number].Balance.Add(decimal.NewFromInt(1))
			return &domain.Transaction{
				Type:                domain.TransactionTypeCredit,
				Amount:              decimal.NewFromInt(1),
				SenderAccountNumber: number,
			}, nil
		})
		require.NoError(t, err)
	}

	for i := 0; i < 3; i++ {
		credit("1000000001")
	}
	credit("1000000002")

	page, err := store.ListByCustomer(ctx, "customer-1", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Content, 2)
	assert.False(t, page.Last)

	rest, err := store.ListByCustomer(ctx, "customer-1", 1, 2)
	require.NoError(t, err)
	assert.Len(t, rest.Content, 1)
	assert.True(t, rest.Last)
}
