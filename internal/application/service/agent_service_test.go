package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prince-yadav810/taponce-api/internal/domain/entity"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	"github.com/prince-yadav810/taponce-api/pkg/apperror"
)

type agentFixture struct {
	svc         *AgentService
	agentRepo   *fakeAgentRepo
	expenseRepo *fakeExpenseRepo
	agent       *entity.Agent
}

func newAgentFixture(t *testing.T, balance int64) *agentFixture {
	t.Helper()

	expenseRepo := newFakeExpenseRepo()
	agentRepo := newFakeAgentRepo(expenseRepo)
	agent := &entity.Agent{
		Name:             "Suresh",
		Phone:            "9000000000",
		ReferralCode:     "SURESH10",
		UPIID:            "suresh@upi",
		AvailableBalance: balance,
		TotalEarnings:    balance,
		Status:           enum.AgentStatusActive,
	}
	require.NoError(t, agentRepo.Create(context.Background(), agent))

	return &agentFixture{
		svc:         NewAgentService(agentRepo, &fakePayoutRepo{agentRepo: agentRepo}),
		agentRepo:   agentRepo,
		expenseRepo: expenseRepo,
		agent:       agent,
	}
}

func TestPayoutDecrementsBalanceAndRecordsExpense(t *testing.T) {
	f := newAgentFixture(t, 550000) // 5500 rupees

	payout, err := f.svc.Payout(context.Background(), &PayoutInput{
		AgentID:     f.agent.ID,
		Amount:      2000,
		Method:      enum.PayoutMethodUPI,
		ProcessedBy: uuid.New(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(200000), payout.Amount)
	assert.Equal(t, enum.PayoutMethodUPI, payout.Method)
	assert.False(t, payout.ProcessedAt.IsZero())

	a, _ := f.agentRepo.GetByID(context.Background(), f.agent.ID)
	assert.Equal(t, int64(350000), a.AvailableBalance)

	total, count := f.expenseRepo.categoryTotal(enum.ExpenseCategoryAgentCommission)
	assert.Equal(t, int64(200000), total)
	assert.Equal(t, int64(1), count)
}

func TestPayoutInsufficientBalanceLeavesBalanceUnchanged(t *testing.T) {
	f := newAgentFixture(t, 550000)

	_, err := f.svc.Payout(context.Background(), &PayoutInput{
		AgentID:     f.agent.ID,
		Amount:      6000,
		Method:      enum.PayoutMethodUPI,
		ProcessedBy: uuid.New(),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientBalance))
	assert.Contains(t, err.Error(), "5500.00")

	a, _ := f.agentRepo.GetByID(context.Background(), f.agent.ID)
	assert.Equal(t, int64(550000), a.AvailableBalance)

	_, count := f.expenseRepo.categoryTotal(enum.ExpenseCategoryAgentCommission)
	assert.Equal(t, int64(0), count)
}

func TestPayoutValidation(t *testing.T) {
	f := newAgentFixture(t, 550000)

	_, err := f.svc.Payout(context.Background(), &PayoutInput{
		AgentID: f.agent.ID,
		Amount:  0,
		Method:  enum.PayoutMethodUPI,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = f.svc.Payout(context.Background(), &PayoutInput{
		AgentID: f.agent.ID,
		Amount:  -50,
		Method:  enum.PayoutMethodUPI,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = f.svc.Payout(context.Background(), &PayoutInput{
		AgentID: f.agent.ID,
		Amount:  100,
		Method:  enum.PayoutMethod("cheque"),
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestPayoutUnknownAgent(t *testing.T) {
	f := newAgentFixture(t, 550000)

	_, err := f.svc.Payout(context.Background(), &PayoutInput{
		AgentID: uuid.New(),
		Amount:  100,
		Method:  enum.PayoutMethodBank,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestUpdateAgentPartialFields(t *testing.T) {
	f := newAgentFixture(t, 0)

	status := "inactive"
	city := "Mumbai"
	updated, err := f.svc.UpdateAgent(context.Background(), f.agent.ID, &UpdateAgentInput{
		Status: &status,
		City:   &city,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.AgentStatusInactive, updated.Status)
	assert.Equal(t, "Mumbai", updated.City)
	// Untouched fields survive.
	assert.Equal(t, "suresh@upi", updated.UPIID)
}

func TestUpdateAgentInvalidStatus(t *testing.T) {
	f := newAgentFixture(t, 0)

	status := "retired"
	_, err := f.svc.UpdateAgent(context.Background(), f.agent.ID, &UpdateAgentInput{Status: &status})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestCreateAgentDuplicateReferralCode(t *testing.T) {
	f := newAgentFixture(t, 0)

	_, err := f.svc.CreateAgent(context.Background(), &CreateAgentInput{
		Name:         "Another",
		Phone:        "9111111111",
		ReferralCode: "SURESH10",
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 409, appErr.Code)
}
