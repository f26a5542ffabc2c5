package repository

import (
	"database/sql"
	"fmt"
	"time"

	"mealpick/internal/database"
	"mealpick/internal/models"
)

// ChildRepository handles database operations for children
type ChildRepository struct {
	db *database.DB
}

// NewChildRepository creates a new child repository
func NewChildRepository(db *database.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

// CreateChild adds a child to a family at the given roster position
func (r *ChildRepository) CreateChild(familyID int64, name, avatarEmoji, color string, displayOrder int) (*models.Child, error) {
	query := `
		INSERT INTO children (family_id, name, avatar_emoji, color, display_order)
		VALUES (?, ?, ?, ?, ?)
	`
	childID, err := r.db.ExecReturningID(query, familyID, name, avatarEmoji, color, displayOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to create child: %w", err)
	}

	return &models.Child{
		ID:           childID,
		FamilyID:     familyID,
		Name:         name,
		AvatarEmoji:  avatarEmoji,
		Color:        color,
		DisplayOrder: displayOrder,
		CreatedAt:    time.Now(),
	}, nil
}

// GetChildByID retrieves a child by ID, or nil when none exists
func (r *ChildRepository) GetChildByID(childID int64) (*models.Child, error) {
	query := `
		SELECT id, family_id, name, avatar_emoji, color, display_order, created_at
		FROM children
		WHERE id = ?
	`
	child := &models.Child{}
	err := r.db.QueryRow(query, childID).Scan(
		&child.ID,
		&child.FamilyID,
		&child.Name,
		&child.AvatarEmoji,
		&child.Color,
		&child.DisplayOrder,
		&child.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}

	return child, nil
}

// GetFamilyChildren retrieves a family's children in roster order
func (r *ChildRepository) GetFamilyChildren(familyID int64) ([]models.Child, error) {
	query := `
		SELECT id, family_id, name, avatar_emoji, color, display_order, created_at
		FROM children
		WHERE family_id = ?
		ORDER BY display_order, id
	`
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get children: %w", err)
	}
	defer rows.Close()

	children := []models.Child{}
	for rows.Next() {
		var child models.Child
		err := rows.Scan(
			&child.ID,
			&child.FamilyID,
			&child.Name,
			&child.AvatarEmoji,
			&child.Color,
			&child.DisplayOrder,
			&child.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		children = append(children, child)
	}

	return children, rows.Err()
}

// CountByFamily returns how many children a family has
func (r *ChildRepository) CountByFamily(familyID int64) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM children WHERE family_id = ?", familyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count children: %w", err)
	}
	return count, nil
}

// UpdateChild applies the non-nil fields of update to a child
func (r *ChildRepository) UpdateChild(childID int64, update models.ChildUpdate) error {
	child, err := r.GetChildByID(childID)
	if err != nil {
		return err
	}
	if child == nil {
		return fmt.Errorf("child not found")
	}

	if update.Name != nil {
		child.Name = *update.Name
	}
	if update.AvatarEmoji != nil {
		child.AvatarEmoji = *update.AvatarEmoji
	}
	if update.Color != nil {
		child.Color = *update.Color
	}

	query := "UPDATE children SET name = ?, avatar_emoji = ?, color = ? WHERE id = ?"
	_, err = r.db.Exec(query, child.Name, child.AvatarEmoji, child.Color, childID)
	if err != nil {
		return fmt.Errorf("failed to update child: %w", err)
	}
	return nil
}

// DeleteChild removes a child. Daily choices cascade at the database level.
func (r *ChildRepository) DeleteChild(childID int64) error {
	_, err := r.db.Exec("DELETE FROM children WHERE id = ?", childID)
	if err != nil {
		return fmt.Errorf("failed to delete child: %w", err)
	}
	return nil
}
