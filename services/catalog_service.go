package services

import (
	"backend/repository"
)

type CatalogService struct {
	Repo *repository.CatalogRepository
}

func NewCatalogService(repo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{Repo: repo}
}

type MenuItemView struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	IsAvailable bool    `json:"is_available"`
}

type CategoryGroup struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Items       []MenuItemView `json:"items"`
}

// Grouped returns the catalog snapshot: available items grouped under
// their categories, categories with nothing available omitted.
func (s *CatalogService) Grouped() ([]CategoryGroup, error) {
	cats, err := s.Repo.Categories()
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.AvailableItems()
	if err != nil {
		return nil, err
	}

	byCategory := make(map[uint][]MenuItemView)
	for _, it := range items {
		byCategory[it.CategoryID] = append(byCategory[it.CategoryID], MenuItemView{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Price:       it.Price,
			Image:       it.Image,
			IsAvailable: it.IsAvailable,
		})
	}

	out := make([]CategoryGroup, 0, len(cats))
	for _, c := range cats {
		group := byCategory[c.ID]
		if len(group) == 0 {
			continue
		}
		out = append(out, CategoryGroup{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Items:       group,
		})
	}
	return out, nil
}
