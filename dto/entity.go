package dto

import (
	"github.com/t3rryhuang/Sentiment-Insight/models"
)

// EntityDTO is the transport shape of a tracked entity for suggestion lists.
type EntityDTO struct {
	SetID      uint   `json:"setID"`
	EntityType string `json:"entityType"`
	Name       string `json:"name"`
}

func NewEntityDTO(e models.TrackedEntity) EntityDTO {
	return EntityDTO{
		SetID:      e.SetID,
		EntityType: e.EntityType,
		Name:       e.Name,
	}
}
