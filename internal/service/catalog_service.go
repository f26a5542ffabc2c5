package service

import (
	"errors"
	"fmt"
	"strings"

	"mealpick/internal/models"
	"mealpick/internal/notify"
	"mealpick/internal/repository"
	"mealpick/internal/validation"
)

var (
	ErrFoodItemNotFound = errors.New("food item not found")
	ErrInvalidCategory  = errors.New("invalid food category")
)

// CatalogService handles business logic for a family's food catalog
type CatalogService struct {
	foodRepo *repository.FoodItemRepository
	hub      *notify.Hub
}

// NewCatalogService creates a new catalog service
func NewCatalogService(foodRepo *repository.FoodItemRepository, hub *notify.Hub) *CatalogService {
	return &CatalogService{
		foodRepo: foodRepo,
		hub:      hub,
	}
}

// ListFoodItems returns a family's active catalog, optionally filtered to a
// single category. Soft-deleted items never appear.
func (s *CatalogService) ListFoodItems(familyID int64, category *models.Category) ([]models.FoodItem, error) {
	if category != nil && !category.IsValid() {
		return nil, ErrInvalidCategory
	}

	items, err := s.foodRepo.GetActiveFoodItems(familyID)
	if err != nil {
		return nil, err
	}
	return models.FilterByCategory(items, category), nil
}

// GetFoodItem returns an active food item belonging to the family, or
// ErrFoodItemNotFound. Items in other families and soft-deleted items are
// reported exactly like missing ones.
func (s *CatalogService) GetFoodItem(familyID, foodID int64) (*models.FoodItem, error) {
	food, err := s.foodRepo.GetFoodItemByID(foodID)
	if err != nil {
		return nil, err
	}
	if food == nil || food.FamilyID != familyID || !food.IsActive {
		return nil, ErrFoodItemNotFound
	}
	return food, nil
}

// AddFoodItem adds an active item to the family's catalog
func (s *CatalogService) AddFoodItem(familyID int64, name, emoji string, category models.Category) (*models.FoodItem, error) {
	if err := validation.ValidateName("name", name); err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}

	food, err := s.foodRepo.CreateFoodItem(familyID, strings.TrimSpace(name), emoji, category)
	if err != nil {
		return nil, err
	}

	s.hub.Publish("food_items", familyID)
	return food, nil
}

// UpdateFoodItem applies a partial update to an active item in the family's
// catalog.
func (s *CatalogService) UpdateFoodItem(familyID, foodID int64, update models.FoodItemUpdate) (*models.FoodItem, error) {
	if _, err := s.GetFoodItem(familyID, foodID); err != nil {
		return nil, err
	}
	if update.Name != nil {
		if err := validation.ValidateName("name", *update.Name); err != nil {
			return nil, err
		}
		trimmed := strings.TrimSpace(*update.Name)
		update.Name = &trimmed
	}
	if update.Category != nil && !update.Category.IsValid() {
		return nil, ErrInvalidCategory
	}

	if err := s.foodRepo.UpdateFoodItem(foodID, update); err != nil {
		return nil, fmt.Errorf("failed to update food item: %w", err)
	}

	s.hub.Publish("food_items", familyID)
	return s.GetFoodItem(familyID, foodID)
}

// RemoveFoodItem soft-deletes an item. It disappears from pick screens
// immediately, while choices already referencing it keep resolving.
func (s *CatalogService) RemoveFoodItem(familyID, foodID int64) error {
	if _, err := s.GetFoodItem(familyID, foodID); err != nil {
		return err
	}

	if err := s.foodRepo.DeactivateFoodItem(foodID); err != nil {
		return err
	}

	s.hub.Publish("food_items", familyID)
	return nil
}
