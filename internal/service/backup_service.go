package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"mealpick/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version    string             `json:"version"`
	ExportedAt time.Time          `json:"exported_at"`
	Users      []UserBackup       `json:"users"`
	Families   []FamilyBackup     `json:"families"`
	Children   []ChildBackup      `json:"children"`
	FoodItems  []FoodItemBackup   `json:"food_items"`
	Choices    []ChoiceBackup     `json:"daily_choices"`
	Items      []ChoiceItemBackup `json:"daily_choice_items"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	Name          string    `json:"name"`
	OAuthProvider string    `json:"oauth_provider"`
	OAuthSubject  string    `json:"oauth_subject"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FamilyBackup represents a family record for backup
type FamilyBackup struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ChildBackup represents a child record for backup
type ChildBackup struct {
	ID           int64     `json:"id"`
	FamilyID     int64     `json:"family_id"`
	Name         string    `json:"name"`
	AvatarEmoji  string    `json:"avatar_emoji"`
	Color        string    `json:"color"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// FoodItemBackup represents a food item record for backup
type FoodItemBackup struct {
	ID        int64     `json:"id"`
	FamilyID  int64     `json:"family_id"`
	Name      string    `json:"name"`
	Emoji     string    `json:"emoji"`
	Category  string    `json:"category"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ChoiceBackup represents a daily choice record for backup
type ChoiceBackup struct {
	ID          int64     `json:"id"`
	FamilyID    int64     `json:"family_id"`
	ChildID     int64     `json:"child_id"`
	ChoiceDate  string    `json:"choice_date"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChoiceItemBackup represents a daily choice item record for backup
type ChoiceItemBackup struct {
	ID            int64 `json:"id"`
	DailyChoiceID int64 `json:"daily_choice_id"`
	FoodItemID    int64 `json:"food_item_id"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file. Sessions are
// deliberately excluded; a restore starts everyone logged out.
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter exports the database to an io.Writer
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportFamilies(backup); err != nil {
		return fmt.Errorf("failed to export families: %w", err)
	}
	if err := s.exportChildren(backup); err != nil {
		return fmt.Errorf("failed to export children: %w", err)
	}
	if err := s.exportFoodItems(backup); err != nil {
		return fmt.Errorf("failed to export food items: %w", err)
	}
	if err := s.exportChoices(backup); err != nil {
		return fmt.Errorf("failed to export choices: %w", err)
	}
	if err := s.exportChoiceItems(backup); err != nil {
		return fmt.Errorf("failed to export choice items: %w", err)
	}

	log.Printf("Exported: %d users, %d families, %d children, %d food items, %d choices, %d choice items",
		len(backup.Users), len(backup.Families), len(backup.Children),
		len(backup.FoodItems), len(backup.Choices), len(backup.Items))

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(backup)
}

// Import restores a database from a backup file. Tables are imported in
// dependency order into an empty database; importing over existing data
// fails on the first ID collision.
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup reader
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	if err := s.importUsers(backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importFamilies(backup.Families); err != nil {
		return fmt.Errorf("failed to import families: %w", err)
	}
	if err := s.importChildren(backup.Children); err != nil {
		return fmt.Errorf("failed to import children: %w", err)
	}
	if err := s.importFoodItems(backup.FoodItems); err != nil {
		return fmt.Errorf("failed to import food items: %w", err)
	}
	if err := s.importChoices(backup.Choices); err != nil {
		return fmt.Errorf("failed to import choices: %w", err)
	}
	if err := s.importChoiceItems(backup.Items); err != nil {
		return fmt.Errorf("failed to import choice items: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	query := "SELECT id, email, password_hash, name, oauth_provider, oauth_subject, created_at, updated_at FROM users ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.OAuthProvider, &u.OAuthSubject, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportFamilies(backup *BackupData) error {
	query := "SELECT id, name, owner_id, created_at FROM families ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var f FamilyBackup
		if err := rows.Scan(&f.ID, &f.Name, &f.OwnerID, &f.CreatedAt); err != nil {
			return err
		}
		backup.Families = append(backup.Families, f)
	}
	return rows.Err()
}

func (s *BackupService) exportChildren(backup *BackupData) error {
	query := "SELECT id, family_id, name, avatar_emoji, color, display_order, created_at FROM children ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c ChildBackup
		if err := rows.Scan(&c.ID, &c.FamilyID, &c.Name, &c.AvatarEmoji, &c.Color, &c.DisplayOrder, &c.CreatedAt); err != nil {
			return err
		}
		backup.Children = append(backup.Children, c)
	}
	return rows.Err()
}

func (s *BackupService) exportFoodItems(backup *BackupData) error {
	query := "SELECT id, family_id, name, emoji, category, is_active, created_at FROM food_items ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var f FoodItemBackup
		if err := rows.Scan(&f.ID, &f.FamilyID, &f.Name, &f.Emoji, &f.Category, &f.IsActive, &f.CreatedAt); err != nil {
			return err
		}
		backup.FoodItems = append(backup.FoodItems, f)
	}
	return rows.Err()
}

func (s *BackupService) exportChoices(backup *BackupData) error {
	query := "SELECT id, family_id, child_id, choice_date, is_completed, created_at FROM daily_choices ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c ChoiceBackup
		if err := rows.Scan(&c.ID, &c.FamilyID, &c.ChildID, &c.ChoiceDate, &c.IsCompleted, &c.CreatedAt); err != nil {
			return err
		}
		backup.Choices = append(backup.Choices, c)
	}
	return rows.Err()
}

func (s *BackupService) exportChoiceItems(backup *BackupData) error {
	query := "SELECT id, daily_choice_id, food_item_id FROM daily_choice_items ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var i ChoiceItemBackup
		if err := rows.Scan(&i.ID, &i.DailyChoiceID, &i.FoodItemID); err != nil {
			return err
		}
		backup.Items = append(backup.Items, i)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []UserBackup) error {
	log.Printf("Importing %d users...", len(users))
	for _, u := range users {
		query := "INSERT INTO users (id, email, password_hash, name, oauth_provider, oauth_subject, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, u.ID, u.Email, u.PasswordHash, u.Name, u.OAuthProvider, u.OAuthSubject, u.CreatedAt, u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importFamilies(families []FamilyBackup) error {
	log.Printf("Importing %d families...", len(families))
	for _, f := range families {
		query := "INSERT INTO families (id, name, owner_id, created_at) VALUES (?, ?, ?, ?)"
		_, err := s.db.Exec(query, f.ID, f.Name, f.OwnerID, f.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import family %d: %w", f.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importChildren(children []ChildBackup) error {
	log.Printf("Importing %d children...", len(children))
	for _, c := range children {
		query := "INSERT INTO children (id, family_id, name, avatar_emoji, color, display_order, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, c.ID, c.FamilyID, c.Name, c.AvatarEmoji, c.Color, c.DisplayOrder, c.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import child %d: %w", c.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importFoodItems(items []FoodItemBackup) error {
	log.Printf("Importing %d food items...", len(items))
	for _, f := range items {
		query := "INSERT INTO food_items (id, family_id, name, emoji, category, is_active, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, f.ID, f.FamilyID, f.Name, f.Emoji, f.Category, s.db.Dialect.BoolValue(f.IsActive), f.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import food item %d: %w", f.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importChoices(choices []ChoiceBackup) error {
	log.Printf("Importing %d choices...", len(choices))
	for _, c := range choices {
		query := "INSERT INTO daily_choices (id, family_id, child_id, choice_date, is_completed, created_at) VALUES (?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, c.ID, c.FamilyID, c.ChildID, c.ChoiceDate, s.db.Dialect.BoolValue(c.IsCompleted), c.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import choice %d: %w", c.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importChoiceItems(items []ChoiceItemBackup) error {
	log.Printf("Importing %d choice items...", len(items))
	for _, i := range items {
		query := "INSERT INTO daily_choice_items (id, daily_choice_id, food_item_id) VALUES (?, ?, ?)"
		_, err := s.db.Exec(query, i.ID, i.DailyChoiceID, i.FoodItemID)
		if err != nil {
			return fmt.Errorf("failed to import choice item %d: %w", i.ID, err)
		}
	}
	return nil
}
