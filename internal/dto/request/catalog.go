package request

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
	Slug string `json:"slug" validate:"required,min=2,max=100"`
}

type CreateServiceRequest struct {
	CategoryID  string  `json:"category_id" validate:"required,uuid4"`
	Title       string  `json:"title" validate:"required,min=3,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	City        string  `json:"city" validate:"required,min=2,max=100"`
	PostalCode  string  `json:"postal_code" validate:"required,min=4,max=10"`
}

type UpdateServiceRequest struct {
	CategoryID  *string  `json:"category_id,omitempty" validate:"omitempty,uuid4"`
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	City        *string  `json:"city,omitempty" validate:"omitempty,min=2,max=100"`
	PostalCode  *string  `json:"postal_code,omitempty" validate:"omitempty,min=4,max=10"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

type SearchServicesRequest struct {
	CategoryID string `json:"category_id" validate:"omitempty,uuid4"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Query      string `json:"q"`
}
