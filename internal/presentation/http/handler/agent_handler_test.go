package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prince-yadav810/taponce-api/internal/application/service"
	"github.com/prince-yadav810/taponce-api/internal/domain/entity"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	domainRepo "github.com/prince-yadav810/taponce-api/internal/domain/repository"
	"github.com/prince-yadav810/taponce-api/internal/presentation/http/middleware"
	"github.com/prince-yadav810/taponce-api/pkg/pagination"
	"github.com/prince-yadav810/taponce-api/pkg/utils"
)

type stubAgentRepo struct {
	agents  map[uuid.UUID]*entity.Agent
	payouts []*entity.Payout
}

func newStubAgentRepo() *stubAgentRepo {
	return &stubAgentRepo{agents: make(map[uuid.UUID]*entity.Agent)}
}

func (r *stubAgentRepo) Create(ctx context.Context, agent *entity.Agent) error {
	if agent.ID == uuid.Nil {
		agent.ID = uuid.New()
	}
	r.agents[agent.ID] = agent
	return nil
}

func (r *stubAgentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Agent, error) {
	agent, ok := r.agents[id]
	if !ok {
		return nil, nil
	}
	copied := *agent
	return &copied, nil
}

func (r *stubAgentRepo) GetByReferralCode(ctx context.Context, code string) (*entity.Agent, error) {
	for _, agent := range r.agents {
		if agent.ReferralCode == code {
			copied := *agent
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *stubAgentRepo) Update(ctx context.Context, agent *entity.Agent) error {
	r.agents[agent.ID] = agent
	return nil
}

func (r *stubAgentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.agents, id)
	return nil
}

func (r *stubAgentRepo) List(ctx context.Context, params *domainRepo.AgentFilterParams) ([]entity.Agent, int64, error) {
	var agents []entity.Agent
	for _, agent := range r.agents {
		agents = append(agents, *agent)
	}
	return agents, int64(len(agents)), nil
}

func (r *stubAgentRepo) ListWithBalance(ctx context.Context) ([]entity.Agent, error) {
	var agents []entity.Agent
	for _, agent := range r.agents {
		if agent.AvailableBalance > 0 {
			agents = append(agents, *agent)
		}
	}
	return agents, nil
}

func (r *stubAgentRepo) DebitBalance(ctx context.Context, payout *entity.Payout) (bool, error) {
	agent, ok := r.agents[payout.AgentID]
	if !ok {
		return false, nil
	}
	if agent.AvailableBalance < payout.Amount {
		return false, nil
	}
	agent.AvailableBalance -= payout.Amount
	r.payouts = append(r.payouts, payout)
	return true, nil
}

func (r *stubAgentRepo) CreditBalance(ctx context.Context, id uuid.UUID, amount int64) error {
	if agent, ok := r.agents[id]; ok {
		agent.AvailableBalance += amount
		agent.TotalEarnings += amount
	}
	return nil
}

type stubPayoutRepo struct {
	agentRepo *stubAgentRepo
}

func (r *stubPayoutRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payout, error) {
	return nil, nil
}

func (r *stubPayoutRepo) ListByAgent(ctx context.Context, agentID uuid.UUID, params *pagination.PaginationParams) ([]entity.Payout, int64, error) {
	var payouts []entity.Payout
	for _, p := range r.agentRepo.payouts {
		if p.AgentID == agentID {
			payouts = append(payouts, *p)
		}
	}
	return payouts, int64(len(payouts)), nil
}

func (r *stubPayoutRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Payout, int64, error) {
	var payouts []entity.Payout
	for _, p := range r.agentRepo.payouts {
		payouts = append(payouts, *p)
	}
	return payouts, int64(len(payouts)), nil
}

type stubIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func (r *stubIdempotencyRepo) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	return r.keys[key], nil
}

func (r *stubIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.keys[ikey.Key] = ikey
	return nil
}

func (r *stubIdempotencyRepo) DeleteExpired(ctx context.Context) error {
	return nil
}

type adminFixture struct {
	router      *gin.Engine
	agentRepo   *stubAgentRepo
	agent       *entity.Agent
	adminToken  string
	viewerToken string
}

func newAdminFixture(t *testing.T, balance int64) *adminFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	agentRepo := newStubAgentRepo()
	agent := &entity.Agent{
		Name:             "Suresh",
		Phone:            "9000000000",
		ReferralCode:     "SURESH10",
		AvailableBalance: balance,
		Status:           enum.AgentStatusActive,
	}
	require.NoError(t, agentRepo.Create(context.Background(), agent))

	agentService := service.NewAgentService(agentRepo, &stubPayoutRepo{agentRepo: agentRepo})
	agentHandler := NewAgentHandler(agentService)

	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	adminToken, err := jwtManager.GenerateAccessToken(uuid.New(), "admin@taponce.in", entity.RoleAdmin)
	require.NoError(t, err)
	viewerToken, err := jwtManager.GenerateAccessToken(uuid.New(), "viewer@taponce.in", entity.RoleViewer)
	require.NoError(t, err)

	idempotencyRepo := &stubIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}

	router := gin.New()
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(jwtManager))
	admin.Use(middleware.RequireRole(entity.RoleAdmin))
	admin.PATCH("/agents/:id", agentHandler.Update)
	admin.POST("/payouts", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: idempotencyRepo,
	}), agentHandler.Payout)

	return &adminFixture{
		router:      router,
		agentRepo:   agentRepo,
		agent:       agent,
		adminToken:  adminToken,
		viewerToken: viewerToken,
	}
}

func (f *adminFixture) do(method, path, token, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = bytes.NewBufferString("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestUpdateAgentStatusEndpoint(t *testing.T) {
	f := newAdminFixture(t, 0)

	body := `{"status":"inactive"}`
	w := f.do("PATCH", "/admin/agents/"+f.agent.ID.String(), f.adminToken, body, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Agent   struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"agent"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, f.agent.ID.String(), resp.Agent.ID)
	assert.Equal(t, "inactive", resp.Agent.Status)
}

func TestUpdateAgentAppliesFrontendFieldNames(t *testing.T) {
	f := newAdminFixture(t, 0)

	body := `{"baseCommission":250,"upiId":"suresh@newupi","bankIfsc":"HDFC0001234","bankHolderName":"Suresh Kumar"}`
	w := f.do("PATCH", "/admin/agents/"+f.agent.ID.String(), f.adminToken, body, nil)

	require.Equal(t, http.StatusOK, w.Code)

	stored := f.agentRepo.agents[f.agent.ID]
	assert.Equal(t, int64(25000), stored.BaseCommission)
	assert.Equal(t, "suresh@newupi", stored.UPIID)
	assert.Equal(t, "HDFC0001234", stored.BankIFSC)
	assert.Equal(t, "Suresh Kumar", stored.BankHolderName)
}

func TestUpdateAgentInvalidStatusEndpoint(t *testing.T) {
	f := newAdminFixture(t, 0)

	w := f.do("PATCH", "/admin/agents/"+f.agent.ID.String(), f.adminToken, `{"status":"retired"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAgentRequiresAuth(t *testing.T) {
	f := newAdminFixture(t, 0)

	w := f.do("PATCH", "/admin/agents/"+f.agent.ID.String(), "", `{"status":"inactive"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateAgentRequiresAdminRole(t *testing.T) {
	f := newAdminFixture(t, 0)

	w := f.do("PATCH", "/admin/agents/"+f.agent.ID.String(), f.viewerToken, `{"status":"inactive"}`, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateAgentUnknownID(t *testing.T) {
	f := newAdminFixture(t, 0)

	w := f.do("PATCH", "/admin/agents/"+uuid.NewString(), f.adminToken, `{"status":"inactive"}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPayoutEndpoint(t *testing.T) {
	f := newAdminFixture(t, 550000) // 5500 rupees

	body := fmt.Sprintf(`{"agentId":%q,"amount":2000,"method":"upi","notes":"August settlement"}`, f.agent.ID)
	w := f.do("POST", "/admin/payouts", f.adminToken, body, map[string]string{
		"Idempotency-Key": uuid.NewString(),
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Payout  struct {
			AgentID     string  `json:"agentId"`
			Amount      float64 `json:"amount"`
			Method      string  `json:"method"`
			ProcessedAt *string `json:"processedAt"`
		} `json:"payout"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, f.agent.ID.String(), resp.Payout.AgentID)
	assert.Equal(t, 2000.0, resp.Payout.Amount)
	assert.Equal(t, "upi", resp.Payout.Method)
	assert.NotNil(t, resp.Payout.ProcessedAt)

	stored := f.agentRepo.agents[f.agent.ID]
	assert.Equal(t, int64(350000), stored.AvailableBalance)
}

func TestPayoutEndpointReplaysIdempotencyKey(t *testing.T) {
	f := newAdminFixture(t, 550000)

	key := uuid.NewString()
	body := fmt.Sprintf(`{"agentId":%q,"amount":1000,"method":"upi"}`, f.agent.ID)
	headers := map[string]string{"Idempotency-Key": key}

	first := f.do("POST", "/admin/payouts", f.adminToken, body, headers)
	require.Equal(t, http.StatusOK, first.Code)

	second := f.do("POST", "/admin/payouts", f.adminToken, body, headers)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))

	// Money moved once.
	stored := f.agentRepo.agents[f.agent.ID]
	assert.Equal(t, int64(450000), stored.AvailableBalance)
}

func TestPayoutEndpointRequiresIdempotencyKey(t *testing.T) {
	f := newAdminFixture(t, 550000)

	body := fmt.Sprintf(`{"agentId":%q,"amount":1000,"method":"upi"}`, f.agent.ID)
	w := f.do("POST", "/admin/payouts", f.adminToken, body, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayoutEndpointValidation(t *testing.T) {
	f := newAdminFixture(t, 550000)
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}

	// Missing agentId fails binding
	w := f.do("POST", "/admin/payouts", f.adminToken, `{"amount":100,"method":"upi"}`, headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Non-positive amount
	headers["Idempotency-Key"] = uuid.NewString()
	body := fmt.Sprintf(`{"agentId":%q,"amount":-50,"method":"upi"}`, f.agent.ID)
	w = f.do("POST", "/admin/payouts", f.adminToken, body, headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayoutEndpointUnknownAgent(t *testing.T) {
	f := newAdminFixture(t, 550000)

	body := fmt.Sprintf(`{"agentId":%q,"amount":100,"method":"bank"}`, uuid.NewString())
	w := f.do("POST", "/admin/payouts", f.adminToken, body, map[string]string{
		"Idempotency-Key": uuid.NewString(),
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPayoutEndpointInsufficientBalance(t *testing.T) {
	f := newAdminFixture(t, 550000)

	body := fmt.Sprintf(`{"agentId":%q,"amount":6000,"method":"upi"}`, f.agent.ID)
	w := f.do("POST", "/admin/payouts", f.adminToken, body, map[string]string{
		"Idempotency-Key": uuid.NewString(),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "5500.00")

	stored := f.agentRepo.agents[f.agent.ID]
	assert.Equal(t, int64(550000), stored.AvailableBalance)
}
