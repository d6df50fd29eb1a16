package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/domain/entity"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	domainRepo "github.com/prince-yadav810/taponce-api/internal/domain/repository"
	"gorm.io/gorm"
)

type agentRepository struct {
	db *gorm.DB
}

// NewAgentRepository creates a new agent repository
func NewAgentRepository(db *gorm.DB) domainRepo.AgentRepository {
	return &agentRepository{db: db}
}

func (r *agentRepository) Create(ctx context.Context, agent *entity.Agent) error {
	return r.db.WithContext(ctx).Create(agent).Error
}

func (r *agentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Agent, error) {
	var agent entity.Agent
	err := r.db.WithContext(ctx).First(&agent, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &agent, err
}

func (r *agentRepository) GetByReferralCode(ctx context.Context, code string) (*entity.Agent, error) {
	var agent entity.Agent
	err := r.db.WithContext(ctx).First(&agent, "referral_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &agent, err
}

func (r *agentRepository) Update(ctx context.Context, agent *entity.Agent) error {
	return r.db.WithContext(ctx).Save(agent).Error
}

func (r *agentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Agent{}, "id = ?", id).Error
}

func (r *agentRepository) List(ctx context.Context, params *domainRepo.AgentFilterParams) ([]entity.Agent, int64, error) {
	var agents []entity.Agent
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Agent{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR referral_code ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.City != "" {
		query = query.Where("city ILIKE ?", params.City)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&agents).Error

	return agents, total, err
}

func (r *agentRepository) ListWithBalance(ctx context.Context) ([]entity.Agent, error) {
	var agents []entity.Agent
	err := r.db.WithContext(ctx).
		Where("available_balance > 0").
		Order("available_balance DESC").
		Find(&agents).Error
	return agents, err
}

// DebitBalance decrements the agent's balance with a conditional update so
// two concurrent payouts can never overdraw. The payout audit row and the
// matching agent_commission expense are written in the same transaction;
// if the balance no longer covers the amount at write time the transaction
// rolls back and (false, nil) is returned.
func (r *agentRepository) DebitBalance(ctx context.Context, payout *entity.Payout) (bool, error) {
	insufficient := errors.New("insufficient balance")

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Agent{}).
			Where("id = ? AND available_balance >= ?", payout.AgentID, payout.Amount).
			Update("available_balance", gorm.Expr("available_balance - ?", payout.Amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return insufficient
		}

		if err := tx.Create(payout).Error; err != nil {
			return err
		}

		expense := &entity.Expense{
			Category:    enum.ExpenseCategoryAgentCommission,
			Amount:      payout.Amount,
			Description: "Commission payout to agent " + payout.AgentID.String(),
			Date:        payout.ProcessedAt,
		}
		return tx.Create(expense).Error
	})

	if errors.Is(err, insufficient) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *agentRepository) CreditBalance(ctx context.Context, id uuid.UUID, amount int64) error {
	return r.db.WithContext(ctx).Model(&entity.Agent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"available_balance": gorm.Expr("available_balance + ?", amount),
			"total_earnings":    gorm.Expr("total_earnings + ?", amount),
			"total_sales":       gorm.Expr("total_sales + 1"),
		}).Error
}
