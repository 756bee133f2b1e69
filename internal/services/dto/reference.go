package dto

type SearchCompaniesQuery struct {
	Q     string `form:"q" validate:"max=100"`
	Limit int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

type CreateCompanyRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}
