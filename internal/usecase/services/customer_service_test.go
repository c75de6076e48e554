package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/api-sage/bank-ledger-service/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger-service/internal/adapter/repository/memory"
	"github.com/api-sage/bank-ledger-service/internal/domain"
	"github.com/api-sage/bank-ledger-service/internal/usecase/services"
)

func seedCustomer(t *testing.T, repo *memory.CustomerRepository, password string) domain.Customer {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	customer, err := repo.Create(context.Background(), domain.Customer{
		FirstName:    "Ada",
		LastName:     "Obi",
		Email:        "ada.obi@example.com",
		PasswordHash: string(hashed),
	})
	require.NoError(t, err)
	return customer
}

func TestValidateLoginSuccess(t *testing.T) {
	repo := memory.NewCustomerRepository()
	customer := seedCustomer(t, repo, "ada@12pass")
	svc := services.NewCustomerService(repo)

	response, err := svc.ValidateLogin(context.Background(), customer.Email, "ada@12pass")
	require.NoError(t, err)
	require.True(t, response.Success)
	require.NotNil(t, response.Data)
	assert.Equal(t, customer.ID, response.Data.ID)
}

func TestValidateLoginWrongPassword(t *testing.T) {
	repo := memory.NewCustomerRepository()
	customer := seedCustomer(t, repo, "ada@12pass")
	svc := services.NewCustomerService(repo)

	response, err := svc.ValidateLogin(context.Background(), customer.Email, "wrong")
	require.Error(t, err)
	assert.False(t, response.Success)
}

func TestValidateLoginUnknownCustomer(t *testing.T) {
	repo := memory.NewCustomerRepository()
	svc := services.NewCustomerService(repo)

	_, err := svc.ValidateLogin(context.Background(), "nobody@example.com", "whatever")
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestUpdateProfileRotatesPassword(t *testing.T) {
	repo := memory.NewCustomerRepository()
	customer := seedCustomer(t, repo, "ada@12pass")
	svc := services.NewCustomerService(repo)
	ctx := context.Background()

	req := models.UpdateProfileRequest{
		FirstName:       "Ada",
		LastName:        "Obi-Smith",
		Email:           "ada.obi@example.com",
		CurrentPassword: "ada@12pass",
		NewPassword:     "rotated-secret",
	}
	response, err := svc.UpdateProfile(ctx, customer.ID, req)
	require.NoError(t, err)
	require.True(t, response.Success)
	require.NotNil(t, response.Data)
	assert.Equal(t, "Obi-Smith", response.Data.LastName)

	_, err = svc.ValidateLogin(ctx, customer.Email, "ada@12pass")
	require.Error(t, err)

	loginResponse, err := svc.ValidateLogin(ctx, customer.Email, "rotated-secret")
	require.NoError(t, err)
	assert.True(t, loginResponse.Success)
}

func TestUpdateProfileRejectsWrongCurrentPassword(t *testing.T) {
	repo := memory.NewCustomerRepository()
	customer := seedCustomer(t, repo, "ada@12pass")
	svc := services.NewCustomerService(repo)

	req := models.UpdateProfileRequest{
		FirstName:       "Ada",
		LastName:        "Obi",
		Email:           "ada.obi@example.com",
		CurrentPassword: "not-the-password",
		NewPassword:     "rotated-secret",
	}
	_, err := svc.UpdateProfile(context.Background(), customer.ID, req)
	require.Error(t, err)

	_, err = svc.ValidateLogin(context.Background(), customer.Email, "ada@12pass")
	require.NoError(t, err)
}

func TestUpdateProfileRejectsShortNewPassword(t *testing.T) {
	repo := memory.NewCustomerRepository()
	customer := seedCustomer(t, repo, "ada@12pass")
	svc := services.NewCustomerService(repo)

	req := models.UpdateProfileRequest{
		FirstName:       "Ada",
		LastName:        "Obi",
		Email:           "ada.obi@example.com",
		CurrentPassword: "ada@12pass",
		NewPassword:     "short",
	}
	_, err := svc.UpdateProfile(context.Background(), customer.ID, req)
	require.Error(t, err)
}
