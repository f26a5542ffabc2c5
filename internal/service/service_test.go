package service

import (
	"path/filepath"
	"testing"
	"time"

	"mealpick/internal/database"
	"mealpick/internal/notify"
	"mealpick/internal/repository"
)

// testEnv bundles a fresh sqlite-backed service stack for one test
type testEnv struct {
	db         *database.DB
	hub        *notify.Hub
	userRepo   *repository.UserRepository
	familyRepo *repository.FamilyRepository
	childRepo  *repository.ChildRepository
	foodRepo   *repository.FoodItemRepository
	choiceRepo *repository.DailyChoiceRepository

	auth    *AuthService
	roster  *RosterService
	catalog *CatalogService
	choices *ChoiceService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	env := &testEnv{
		db:         db,
		hub:        notify.NewHub(),
		userRepo:   repository.NewUserRepository(db),
		familyRepo: repository.NewFamilyRepository(db),
		childRepo:  repository.NewChildRepository(db),
		foodRepo:   repository.NewFoodItemRepository(db),
		choiceRepo: repository.NewDailyChoiceRepository(db),
	}
	env.auth = NewAuthService(env.userRepo, env.familyRepo, time.Hour)
	env.roster = NewRosterService(env.childRepo, env.hub)
	env.catalog = NewCatalogService(env.foodRepo, env.hub)
	env.choices = NewChoiceService(env.childRepo, env.foodRepo, env.choiceRepo, env.hub)

	return env
}

// createFamily registers an account and returns its family ID
func (env *testEnv) createFamily(t *testing.T, email string) int64 {
	t.Helper()
	user, err := env.userRepo.CreateUser(email, "x", "Test Parent")
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	family, err := env.familyRepo.CreateFamily("Test Family", user.ID)
	if err != nil {
		t.Fatalf("failed to create family: %v", err)
	}
	return family.ID
}
