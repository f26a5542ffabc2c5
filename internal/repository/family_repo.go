package repository

import (
	"database/sql"
	"fmt"
	"time"

	"mealpick/internal/database"
	"mealpick/internal/models"
)

// FamilyRepository handles database operations for families
type FamilyRepository struct {
	db *database.DB
}

// NewFamilyRepository creates a new family repository
func NewFamilyRepository(db *database.DB) *FamilyRepository {
	return &FamilyRepository{db: db}
}

// CreateFamily creates the family owned by ownerID. The owner_id column is
// unique, so a second family for the same account fails at the database.
func (r *FamilyRepository) CreateFamily(name string, ownerID int64) (*models.Family, error) {
	query := "INSERT INTO families (name, owner_id) VALUES (?, ?)"
	familyID, err := r.db.ExecReturningID(query, name, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to create family: %w", err)
	}

	return &models.Family{
		ID:        familyID,
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
	}, nil
}

// GetFamilyByOwner retrieves the single family owned by a user, or nil when
// the account has no family yet.
func (r *FamilyRepository) GetFamilyByOwner(ownerID int64) (*models.Family, error) {
	query := "SELECT id, name, owner_id, created_at FROM families WHERE owner_id = ?"
	return r.scanFamily(r.db.QueryRow(query, ownerID))
}

// GetFamilyByID retrieves a family by ID, or nil when none exists
func (r *FamilyRepository) GetFamilyByID(familyID int64) (*models.Family, error) {
	query := "SELECT id, name, owner_id, created_at FROM families WHERE id = ?"
	return r.scanFamily(r.db.QueryRow(query, familyID))
}

func (r *FamilyRepository) scanFamily(row *sql.Row) (*models.Family, error) {
	family := &models.Family{}
	err := row.Scan(
		&family.ID,
		&family.Name,
		&family.OwnerID,
		&family.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}

	return family, nil
}
