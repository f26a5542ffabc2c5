package service

import (
	"errors"
	"testing"

	"mealpick/internal/models"
)

func TestListFoodItemsGroupsByCategory(t *testing.T) {
	env := setupTestEnv(t)
	familyID := env.createFamily(t, "parent@example.com")

	env.catalog.AddFoodItem(familyID, "Water", "💧", models.CategoryDrink)
	env.catalog.AddFoodItem(familyID, "Apple", "🍎", models.CategoryProduce)
	env.catalog.AddFoodItem(familyID, "Juice", "🧃", models.CategoryDrink)

	items, err := env.catalog.ListFoodItems(familyID, nil)
	if err != nil {
		t.Fatalf("ListFoodItems failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}

	// category then name: drink/Juice, drink/Water, produce/Apple
	wantOrder := []string{"Juice", "Water", "Apple"}
	for i, want := range wantOrder {
		if items[i].Name != want {
			t.Errorf("position %d = %q, want %q", i, items[i].Name, want)
		}
	}
}

func TestListFoodItemsCategoryFilter(t *testing.T) {
	env := setupTestEnv(t)
	familyID := env.createFamily(t, "parent@example.com")

	env.catalog.AddFoodItem(familyID, "Apple", "🍎", models.CategoryProduce)
	env.catalog.AddFoodItem(familyID, "Juice", "🧃", models.CategoryDrink)

	drink := models.CategoryDrink
	items, err := env.catalog.ListFoodItems(familyID, &drink)
	if err != nil {
		t.Fatalf("ListFoodItems failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Juice" {
		t.Errorf("filtered items = %+v, want only Juice", items)
	}

	bad := models.Category("dessert")
	if _, err := env.catalog.ListFoodItems(familyID, &bad); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("invalid category: err = %v, want ErrInvalidCategory", err)
	}
}

func TestAddFoodItemValidation(t *testing.T) {
	env := setupTestEnv(t)
	familyID := env.createFamily(t, "parent@example.com")

	if _, err := env.catalog.AddFoodItem(familyID, "Cake", "🍰", "dessert"); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("unknown category: err = %v, want ErrInvalidCategory", err)
	}
	if _, err := env.catalog.AddFoodItem(familyID, "  ", "", models.CategoryMain); err == nil {
		t.Error("blank name should be rejected")
	}
}

func TestUpdateFoodItemPartial(t *testing.T) {
	env := setupTestEnv(t)
	familyID := env.createFamily(t, "parent@example.com")
	food, _ := env.catalog.AddFoodItem(familyID, "Apple", "🍎", models.CategoryProduce)

	newName := "Green Apple"
	updated, err := env.catalog.UpdateFoodItem(familyID, food.ID, models.FoodItemUpdate{Name: &newName})
	if err != nil {
		t.Fatalf("UpdateFoodItem failed: %v", err)
	}
	if updated.Name != "Green Apple" {
		t.Errorf("name = %q, want Green Apple", updated.Name)
	}
	if updated.Emoji != "🍎" || updated.Category != models.CategoryProduce {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestRemovedFoodItemBehavesLikeMissing(t *testing.T) {
	env := setupTestEnv(t)
	familyID := env.createFamily(t, "parent@example.com")
	food, _ := env.catalog.AddFoodItem(familyID, "Apple", "🍎", models.CategoryProduce)

	if err := env.catalog.RemoveFoodItem(familyID, food.ID); err != nil {
		t.Fatalf("RemoveFoodItem failed: %v", err)
	}

	if _, err := env.catalog.GetFoodItem(familyID, food.ID); !errors.Is(err, ErrFoodItemNotFound) {
		t.Errorf("GetFoodItem after removal: err = %v, want ErrFoodItemNotFound", err)
	}
	if _, err := env.catalog.UpdateFoodItem(familyID, food.ID, models.FoodItemUpdate{}); !errors.Is(err, ErrFoodItemNotFound) {
		t.Errorf("UpdateFoodItem after removal: err = %v, want ErrFoodItemNotFound", err)
	}
}

func TestFoodTenantIsolation(t *testing.T) {
	env := setupTestEnv(t)
	familyA := env.createFamily(t, "a@example.com")
	familyB := env.createFamily(t, "b@example.com")
	foodB, _ := env.catalog.AddFoodItem(familyB, "Soup", "🍲", models.CategoryMain)

	if _, err := env.catalog.GetFoodItem(familyA, foodB.ID); !errors.Is(err, ErrFoodItemNotFound) {
		t.Errorf("GetFoodItem across families: err = %v, want ErrFoodItemNotFound", err)
	}

	itemsA, err := env.catalog.ListFoodItems(familyA, nil)
	if err != nil {
		t.Fatalf("ListFoodItems failed: %v", err)
	}
	if len(itemsA) != 0 {
		t.Errorf("family A sees %d foreign items", len(itemsA))
	}
}
