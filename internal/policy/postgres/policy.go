package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/onboarding-management/internal/policy"
)

type PolicyRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *PolicyRepository {
	return &PolicyRepository{db: db}
}

func (r *PolicyRepository) GetAll() ([]policy.Policy, error) {
	var policies []policy.Policy
	err := r.db.Order("created_at DESC").Find(&policies).Error
	return policies, err
}

func (r *PolicyRepository) GetActiveWithAcceptance(userID int64) ([]policy.PolicyWithAcceptance, error) {
	var rows []policy.PolicyWithAcceptance
	err := r.db.
		Table("policies p").
		Select(`p.*,
			a.id IS NOT NULL AS accepted,
			a.accepted_at`).
		Joins(`LEFT JOIN (
			SELECT policy_id, MAX(accepted_at) AS accepted_at, MAX(id) AS id
			FROM user_policy_acceptances
			WHERE user_id = ?
			GROUP BY policy_id
		) a ON a.policy_id = p.id`, userID).
		Where("p.is_active = true").
		Order("p.created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *PolicyRepository) GetByID(id int64) (*policy.Policy, error) {
	var p policy.Policy
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PolicyRepository) Create(p *policy.Policy) error {
	return r.db.Create(p).Error
}

func (r *PolicyRepository) Update(p *policy.Policy) error {
	return r.db.Save(p).Error
}

func (r *PolicyRepository) Delete(id int64) error {
	return r.db.Delete(&policy.Policy{}, id).Error
}

func (r *PolicyRepository) AppendAcceptance(a *policy.Acceptance) error {
	return r.db.Create(a).Error
}

func (r *PolicyRepository) GetAcceptances(policyID int64) ([]policy.Acceptance, error) {
	var acceptances []policy.Acceptance
	err := r.db.
		Where("policy_id = ?", policyID).
		Order("accepted_at DESC").
		Find(&acceptances).Error
	return acceptances, err
}
