package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/bank-ledger-service/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger-service/internal/adapter/repository/memory"
	"github.com/api-sage/bank-ledger-service/internal/domain"
	"github.com/api-sage/bank-ledger-service/internal/usecase/services"
)

type adminFixture struct {
	store     *memory.Store
	customers *memory.CustomerRepository
	banks     *memory.BankRepository
	notifier  *stubNotifier
	admin     *services.AdminService
	customer  *services.CustomerService
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()

	store := memory.NewStore()
	customers := memory.NewCustomerRepository()
	banks := memory.NewBankRepository()
	notifier := &stubNotifier{}

	return &adminFixture{
		store:     store,
		customers: customers,
		banks:     banks,
		notifier:  notifier,
		admin:     services.NewAdminService(store, store, customers, banks, notifier),
		customer:  services.NewCustomerService(customers),
	}
}

func TestAddCustomerSetsInitialPassword(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	response, err := f.admin.AddCustomer(ctx, models.CreateCustomerRequest{
		FirstName:   "Ada",
		LastName:    "Obi",
		Email:       "ada.obi@example.com",
		DateOfBirth: "1992-03-07",
	})
	require.NoError(t, err)
	require.True(t, response.Success)
	require.NotNil(t, response.Data)

	// First name lowercased plus the day of birth.
	login, err := f.customer.ValidateLogin(ctx, "ada.obi@example.com", "ada@07")
	require.NoError(t, err)
	assert.True(t, login.Success)
}

func TestAddCustomerRejectsDuplicateEmail(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	req := models.CreateCustomerRequest{
		FirstName:   "Ada",
		LastName:    "Obi",
		Email:       "ada.obi@example.com",
		DateOfBirth: "1992-03-07",
	}
	_, err := f.admin.AddCustomer(ctx, req)
	require.NoError(t, err)

	_, err = f.admin.AddCustomer(ctx, req)
	require.ErrorIs(t, err, domain.ErrDuplicateRecord)
}

func TestAddAccountOpensActiveZeroBalanceAccount(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	customerResp, err := f.admin.AddCustomer(ctx, models.CreateCustomerRequest{
		FirstName:   "Ada",
		LastName:    "Obi",
		Email:       "ada.obi@example.com",
		DateOfBirth: "1992-03-07",
	})
	require.NoError(t, err)

	bankResp, err := f.admin.AddBank(ctx, models.AddBankRequest{
		BankName: "First Apex Bank",
		BankCode: "100234",
	})
	require.NoError(t, err)
	require.NotNil(t, bankResp.Data)

	response, err := f.admin.AddAccount(ctx, models.CreateAccountRequest{
		CustomerID: customerResp.Data.ID,
		BankID:     bankResp.Data.ID,
	})
	require.NoError(t, err)
	require.True(t, response.Success)
	require.NotNil(t, response.Data)

	assert.Len(t, response.Data.AccountNumber, 10)
	assert.True(t, response.Data.Balance.Equal(decimal.Zero))
	assert.Equal(t, string(domain.AccountStatusActive), response.Data.Status)

	stored, err := f.store.GetByAccountNumber(ctx, response.Data.AccountNumber)
	require.NoError(t, err)
	assert.Equal(t, customerResp.Data.ID, stored.CustomerID)
}

func TestAddAccountUnknownCustomer(t *testing.T) {
	f := newAdminFixture(t)

	_, err := f.admin.AddAccount(context.Background(), models.CreateAccountRequest{
		CustomerID: "missing",
		BankID:     "also-missing",
	})
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestDeactivateCustomerFlipsAllAccounts(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	customerResp, err := f.admin.AddCustomer(ctx, models.CreateCustomerRequest{
		FirstName:   "Ada",
		LastName:    "Obi",
		Email:       "ada.obi@example.com",
		DateOfBirth: "1992-03-07",
	})
	require.NoError(t, err)

	bankResp, err := f.admin.AddBank(ctx, models.AddBankRequest{
		BankName: "First Apex Bank",
		BankCode: "100234",
	})
	require.NoError(t, err)

	accountReq := models.CreateAccountRequest{
		CustomerID: customerResp.Data.ID,
		BankID:     bankResp.Data.ID,
	}
	first, err := f.admin.AddAccount(ctx, accountReq)
	require.NoError(t, err)
	second, err := f.admin.AddAccount(ctx, accountReq)
	require.NoError(t, err)

	response, err := f.admin.DeactivateCustomer(ctx, customerResp.Data.ID)
	require.NoError(t, err)
	assert.True(t, response.Success)

	for _, number := range []string{first.Data.AccountNumber, second.Data.AccountNumber} {
		account, err := f.store.GetByAccountNumber(ctx, number)
		require.NoError(t, err)
		assert.Equal(t, domain.AccountStatusInactive, account.Status)
	}
}

func TestDeactivateCustomerWithoutAccounts(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	customerResp, err := f.admin.AddCustomer(ctx, models.CreateCustomerRequest{
		FirstName:   "Ada",
		LastName:    "Obi",
		Email:       "ada.obi@example.com",
		DateOfBirth: "1992-03-07",
	})
	require.NoError(t, err)

	response, err := f.admin.DeactivateCustomer(ctx, customerResp.Data.ID)
	require.Error(t, err)
	assert.Equal(t, "No accounts found for the customer", response.Message)
}

func TestAddBankValidatesCode(t *testing.T) {
	f := newAdminFixture(t)

	_, err := f.admin.AddBank(context.Background(), models.AddBankRequest{
		BankName: "First Apex Bank",
		BankCode: "12AB",
	})
	require.Error(t, err)
}

func TestListBanksReturnsAll(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	_, err := f.admin.AddBank(ctx, models.AddBankRequest{BankName: "First Apex Bank", BankCode: "100234"})
	require.NoError(t, err)
	_, err = f.admin.AddBank(ctx, models.AddBankRequest{BankName: "Union Crest Bank", BankCode: "100567"})
	require.NoError(t, err)

	response, err := f.admin.ListBanks(ctx)
	require.NoError(t, err)
	require.NotNil(t, response.Data)
	assert.Len(t, *response.Data, 2)
}

func TestViewAllTransactionsSeesEveryCustomer(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	owner, err := f.customers.Create(ctx, domain.Customer{FirstName: "Ada", LastName: "Obi", Email: "ada@example.com"})
	require.NoError(t, err)
	other, err := f.customers.Create(ctx, domain.Customer{FirstName: "Bayo", LastName: "Ade", Email: "bayo@example.com"})
	require.NoError(t, err)

	_, err = f.store.Create(ctx, domain.Account{CustomerID: owner.ID, AccountNumber: "1000000001", Balance: decimal.NewFromInt(100), Status: domain.AccountStatusActive})
	require.NoError(t, err)
	_, err = f.store.Create(ctx, domain.Account{CustomerID: other.ID, AccountNumber: "1000000002", Balance: decimal.NewFromInt(100), Status: domain.AccountStatusActive})
	require.NoError(t, err)

	ledger := services.NewLedgerService(f.store, f.store, f.customers, f.notifier, nil)
	for _, c := range []struct {
		customerID string
		account    string
	}{
		{owner.ID, "1000000001"},
		{other.ID, "1000000002"},
	} {
		_, err = ledger.PerformTransaction(ctx, c.customerID, models.TransactionRequest{
			TransactionType:     "DEBIT",
			Amount:              decimal.NewFromInt(5),
			SenderAccountNumber: c.account,
		})
		require.NoError(t, err)
	}

	response, err := f.admin.ViewAllTransactions(ctx, 0, 10)
	require.NoError(t, err)
	require.NotNil(t, response.Data)
	assert.Equal(t, int64(2), response.Data.TotalElements)
}
