package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"mealpick/internal/database"
	"mealpick/internal/models"
)

// FoodItemRepository handles database operations for the food catalog
type FoodItemRepository struct {
	db *database.DB
}

// NewFoodItemRepository creates a new food item repository
func NewFoodItemRepository(db *database.DB) *FoodItemRepository {
	return &FoodItemRepository{db: db}
}

// CreateFoodItem adds an active food item to a family's catalog
func (r *FoodItemRepository) CreateFoodItem(familyID int64, name, emoji string, category models.Category) (*models.FoodItem, error) {
	query := `
		INSERT INTO food_items (family_id, name, emoji, category, is_active)
		VALUES (?, ?, ?, ?, ?)
	`
	active := r.db.Dialect.BoolValue(true)
	foodID, err := r.db.ExecReturningID(query, familyID, name, emoji, string(category), active)
	if err != nil {
		return nil, fmt.Errorf("failed to create food item: %w", err)
	}

	return &models.FoodItem{
		ID:        foodID,
		FamilyID:  familyID,
		Name:      name,
		Emoji:     emoji,
		Category:  category,
		IsActive:  true,
		CreatedAt: time.Now(),
	}, nil
}

// GetFoodItemByID retrieves a food item by ID, active or not, or nil when
// none exists.
func (r *FoodItemRepository) GetFoodItemByID(foodID int64) (*models.FoodItem, error) {
	query := `
		SELECT id, family_id, name, emoji, category, is_active, created_at
		FROM food_items
		WHERE id = ?
	`
	food := &models.FoodItem{}
	err := r.db.QueryRow(query, foodID).Scan(
		&food.ID,
		&food.FamilyID,
		&food.Name,
		&food.Emoji,
		&food.Category,
		&food.IsActive,
		&food.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get food item: %w", err)
	}

	return food, nil
}

// GetActiveFoodItems retrieves a family's active catalog, grouped by category
// and alphabetical within each.
func (r *FoodItemRepository) GetActiveFoodItems(familyID int64) ([]models.FoodItem, error) {
	query := `
		SELECT id, family_id, name, emoji, category, is_active, created_at
		FROM food_items
		WHERE family_id = ? AND is_active = ?
		ORDER BY category, name
	`
	rows, err := r.db.Query(query, familyID, r.db.Dialect.BoolValue(true))
	if err != nil {
		return nil, fmt.Errorf("failed to get food items: %w", err)
	}
	defer rows.Close()

	items := []models.FoodItem{}
	for rows.Next() {
		var food models.FoodItem
		err := rows.Scan(
			&food.ID,
			&food.FamilyID,
			&food.Name,
			&food.Emoji,
			&food.Category,
			&food.IsActive,
			&food.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food item: %w", err)
		}
		items = append(items, food)
	}

	return items, rows.Err()
}

// UpdateFoodItem applies the non-nil fields of update to a food item
func (r *FoodItemRepository) UpdateFoodItem(foodID int64, update models.FoodItemUpdate) error {
	food, err := r.GetFoodItemByID(foodID)
	if err != nil {
		return err
	}
	if food == nil {
		return fmt.Errorf("food item not found")
	}

	if update.Name != nil {
		food.Name = *update.Name
	}
	if update.Emoji != nil {
		food.Emoji = *update.Emoji
	}
	if update.Category != nil {
		food.Category = *update.Category
	}

	query := "UPDATE food_items SET name = ?, emoji = ?, category = ? WHERE id = ?"
	_, err = r.db.Exec(query, food.Name, food.Emoji, string(food.Category), foodID)
	if err != nil {
		return fmt.Errorf("failed to update food item: %w", err)
	}
	return nil
}

// DeactivateFoodItem soft-deletes a food item. The row stays so past choices
// that reference it keep resolving.
func (r *FoodItemRepository) DeactivateFoodItem(foodID int64) error {
	query := "UPDATE food_items SET is_active = ? WHERE id = ?"
	_, err := r.db.Exec(query, r.db.Dialect.BoolValue(false), foodID)
	if err != nil {
		return fmt.Errorf("failed to deactivate food item: %w", err)
	}
	return nil
}

// CountByIDsInFamily returns how many of the given food item IDs exist in the
// family's catalog. Duplicate IDs are counted once.
func (r *FoodItemRepository) CountByIDsInFamily(familyID int64, foodItemIDs []int64) (int, error) {
	if len(foodItemIDs) == 0 {
		return 0, nil
	}

	seen := make(map[int64]struct{}, len(foodItemIDs))
	args := []any{familyID}
	placeholders := make([]string, 0, len(foodItemIDs))
	for _, id := range foodItemIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}

	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM food_items WHERE family_id = ? AND id IN (%s)",
		strings.Join(placeholders, ", "),
	)

	var count int
	if err := r.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count food items: %w", err)
	}
	return count, nil
}
