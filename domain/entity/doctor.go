package entity

import (
	"time"
)

type Doctor struct {
	ID        string    `json:"id"`
	CRMNumber string    `json:"crmNumber"`
	CRMState  string    `json:"crmState"`
	Specialty *string   `json:"specialty"`
	Bio       *string   `json:"bio"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
