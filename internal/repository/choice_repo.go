package repository

import (
	"database/sql"
	"fmt"
	"time"

	"mealpick/internal/database"
	"mealpick/internal/models"
)

// DailyChoiceRepository handles database operations for daily meal choices
type DailyChoiceRepository struct {
	db *database.DB
}

// NewDailyChoiceRepository creates a new daily choice repository
func NewDailyChoiceRepository(db *database.DB) *DailyChoiceRepository {
	return &DailyChoiceRepository{db: db}
}

// GetChoiceForDate retrieves a child's choice row for a date, or nil when the
// child has not submitted yet.
func (r *DailyChoiceRepository) GetChoiceForDate(childID int64, choiceDate string) (*models.DailyChoice, error) {
	query := `
		SELECT id, family_id, child_id, choice_date, is_completed, created_at
		FROM daily_choices
		WHERE child_id = ? AND choice_date = ?
	`
	choice := &models.DailyChoice{}
	err := r.db.QueryRow(query, childID, choiceDate).Scan(
		&choice.ID,
		&choice.FamilyID,
		&choice.ChildID,
		&choice.ChoiceDate,
		&choice.IsCompleted,
		&choice.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily choice: %w", err)
	}

	return choice, nil
}

// ReplaceChoice replaces a child's choice for a date with a fresh completed
// row holding the given food items, in one transaction. Resubmitting the same
// day discards the earlier row entirely; an empty item list is a valid
// submission (the child chose nothing).
func (r *DailyChoiceRepository) ReplaceChoice(familyID, childID int64, choiceDate string, foodItemIDs []int64) (*models.DailyChoice, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	deleteItems := `
		DELETE FROM daily_choice_items
		WHERE daily_choice_id IN (
			SELECT id FROM daily_choices WHERE child_id = ? AND choice_date = ?
		)
	`
	if _, err := tx.Exec(deleteItems, childID, choiceDate); err != nil {
		return nil, fmt.Errorf("failed to clear choice items: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM daily_choices WHERE child_id = ? AND choice_date = ?", childID, choiceDate); err != nil {
		return nil, fmt.Errorf("failed to clear choice: %w", err)
	}

	insertChoice := `
		INSERT INTO daily_choices (family_id, child_id, choice_date, is_completed)
		VALUES (?, ?, ?, ?)
	`
	choiceID, err := tx.ExecReturningID(insertChoice, familyID, childID, choiceDate, tx.GetDialect().BoolValue(true))
	if err != nil {
		return nil, fmt.Errorf("failed to insert choice: %w", err)
	}

	for _, foodID := range foodItemIDs {
		insertItem := "INSERT INTO daily_choice_items (daily_choice_id, food_item_id) VALUES (?, ?)"
		if _, err := tx.Exec(insertItem, choiceID, foodID); err != nil {
			return nil, fmt.Errorf("failed to insert choice item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit choice: %w", err)
	}

	return &models.DailyChoice{
		ID:          choiceID,
		FamilyID:    familyID,
		ChildID:     childID,
		ChoiceDate:  choiceDate,
		IsCompleted: true,
		CreatedAt:   time.Now(),
	}, nil
}

// GetItemsForChoice retrieves a choice's items with their food rows resolved,
// in insertion order.
func (r *DailyChoiceRepository) GetItemsForChoice(choiceID int64) ([]models.ChoiceItemWithFood, error) {
	query := `
		SELECT i.id, i.daily_choice_id, i.food_item_id,
		       f.id, f.family_id, f.name, f.emoji, f.category, f.is_active, f.created_at
		FROM daily_choice_items i
		JOIN food_items f ON f.id = i.food_item_id
		WHERE i.daily_choice_id = ?
		ORDER BY i.id
	`
	rows, err := r.db.Query(query, choiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get choice items: %w", err)
	}
	defer rows.Close()

	return scanChoiceItems(rows)
}

// GetFamilyChoicesForDate retrieves every choice submitted by a family's
// children on a date, items included, keyed by child ID.
func (r *DailyChoiceRepository) GetFamilyChoicesForDate(familyID int64, choiceDate string) (map[int64]*models.DailyChoiceWithItems, error) {
	choiceQuery := `
		SELECT id, family_id, child_id, choice_date, is_completed, created_at
		FROM daily_choices
		WHERE family_id = ? AND choice_date = ?
	`
	rows, err := r.db.Query(choiceQuery, familyID, choiceDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get family choices: %w", err)
	}
	defer rows.Close()

	byChild := map[int64]*models.DailyChoiceWithItems{}
	byChoiceID := map[int64]*models.DailyChoiceWithItems{}
	for rows.Next() {
		var choice models.DailyChoice
		err := rows.Scan(
			&choice.ID,
			&choice.FamilyID,
			&choice.ChildID,
			&choice.ChoiceDate,
			&choice.IsCompleted,
			&choice.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan choice: %w", err)
		}
		withItems := &models.DailyChoiceWithItems{
			DailyChoice: choice,
			Items:       []models.ChoiceItemWithFood{},
		}
		byChild[choice.ChildID] = withItems
		byChoiceID[choice.ID] = withItems
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(byChoiceID) == 0 {
		return byChild, nil
	}

	itemQuery := `
		SELECT i.id, i.daily_choice_id, i.food_item_id,
		       f.id, f.family_id, f.name, f.emoji, f.category, f.is_active, f.created_at
		FROM daily_choice_items i
		JOIN food_items f ON f.id = i.food_item_id
		JOIN daily_choices dc ON dc.id = i.daily_choice_id
		WHERE dc.family_id = ? AND dc.choice_date = ?
		ORDER BY i.id
	`
	itemRows, err := r.db.Query(itemQuery, familyID, choiceDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get family choice items: %w", err)
	}
	defer itemRows.Close()

	items, err := scanChoiceItems(itemRows)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if choice, ok := byChoiceID[item.DailyChoiceID]; ok {
			choice.Items = append(choice.Items, item)
		}
	}

	return byChild, nil
}

func scanChoiceItems(rows *sql.Rows) ([]models.ChoiceItemWithFood, error) {
	items := []models.ChoiceItemWithFood{}
	for rows.Next() {
		var item models.ChoiceItemWithFood
		err := rows.Scan(
			&item.ID,
			&item.DailyChoiceID,
			&item.FoodItemID,
			&item.Food.ID,
			&item.Food.FamilyID,
			&item.Food.Name,
			&item.Food.Emoji,
			&item.Food.Category,
			&item.Food.IsActive,
			&item.Food.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan choice item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
