package mapper

import (
	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/model"

	"gorm.io/datatypes"
)

type PolicyConfigMapper struct{}

func NewPolicyConfigMapper() *PolicyConfigMapper {
	return &PolicyConfigMapper{}
}

func (m *PolicyConfigMapper) ToEntity(c *model.PolicyConfig) *entity.PolicyConfig {
	if c == nil {
		return nil
	}
	fees := make(map[entity.CredentialTier]float64, len(c.CancellationFees))
	for tier, v := range c.CancellationFees {
		// JSONMap stores numbers as float64
		if fee, ok := v.(float64); ok {
			fees[entity.CredentialTier(tier)] = fee
		}
	}
	return &entity.PolicyConfig{
		Id:               c.Id,
		LicensedRateCap:  c.LicensedRateCap,
		AssistantRateCap: c.AssistantRateCap,
		CancellationFees: fees,
		UpdatedBy:        c.UpdatedBy,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func (m *PolicyConfigMapper) ToModel(c *entity.PolicyConfig) *model.PolicyConfig {
	if c == nil {
		return nil
	}
	fees := datatypes.JSONMap{}
	for tier, fee := range c.CancellationFees {
		fees[string(tier)] = fee
	}
	return &model.PolicyConfig{
		Id:               c.Id,
		LicensedRateCap:  c.LicensedRateCap,
		AssistantRateCap: c.AssistantRateCap,
		CancellationFees: fees,
		UpdatedBy:        c.UpdatedBy,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
