package response

import (
	"time"

	"github.com/hsiereveld/careservices-sub000/internal/data/entity"
)

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ServiceResponse struct {
	ID           string    `json:"id"`
	ProID        string    `json:"pro_id"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Price        float64   `json:"price"`
	City         string    `json:"city"`
	PostalCode   string    `json:"postal_code"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Helper converters
func CategoryToResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:   category.ID.String(),
		Name: category.Name,
		Slug: category.Slug,
	}
}

func ServiceToResponse(service *entity.Service, categoryName string) ServiceResponse {
	return ServiceResponse{
		ID:           service.ID.String(),
		ProID:        service.ProID.String(),
		CategoryID:   service.CategoryID.String(),
		CategoryName: categoryName,
		Title:        service.Title,
		Description:  service.Description,
		Price:        service.Price,
		City:         service.City,
		PostalCode:   service.PostalCode,
		IsActive:     service.IsActive,
		CreatedAt:    service.CreatedAt,
	}
}
