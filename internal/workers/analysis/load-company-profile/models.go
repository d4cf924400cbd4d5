// internal/workers/analysis/load-company-profile/models.go
package loadcompanyprofile

import "finanzbot/internal/models"

type Input struct {
	CompanyID string `json:"companyId"`
}

type Output struct {
	CompanyID string              `json:"companyId"`
	Profile   models.ProfileInput `json:"profile"`
}
