package service

import (
	"errors"
	"testing"

	"mealpick/internal/models"
	"mealpick/internal/validation"
)

func TestAddChildAssignsDisplayOrder(t *testing.T) {
	env := setupTestEnv(t)
	familyID := env.createFamily(t, "parent@example.com")

	names := []string{"Ada", "Ben", "Cleo"}
	for i, name := range names {
		child, err := env.roster.AddChild(familyID, name, "", "")
		if err != nil {
			t.Fatalf("AddChild(%s) failed: %v", name, err)
		}
		if child.DisplayOrder != i {
			t.Errorf("%s display order = %d, want %d", name, child.DisplayOrder, i)
		}
	}
}

func TestRemoveChildLeavesOrderGap(t *testing.T) {
	env := setupTestEnv(t)
	familyID := env.createFamily(t, "parent@example.com")

	env.roster.AddChild(familyID, "Ada", "", "")
	ben, _ := env.roster.AddChild(familyID, "Ben", "", "")
	env.roster.AddChild(familyID, "Cleo", "", "")

	if err := env.roster.RemoveChild(familyID, ben.ID); err != nil {
		t.Fatalf("RemoveChild failed: %v", err)
	}

	children, err := env.roster.ListChildren(familyID)
	if err != nil {
		t.Fatalf("ListChildren failed: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("children = %d, want 2", len(children))
	}
	// Survivors keep their positions; no renumbering
	if children[0].Name != "Ada" || children[0].DisplayOrder != 0 {
		t.Errorf("first = %s/%d, want Ada/0", children[0].Name, children[0].DisplayOrder)
	}
	if children[1].Name != "Cleo" || children[1].DisplayOrder != 2 {
		t.Errorf("second = %s/%d, want Cleo/2", children[1].Name, children[1].DisplayOrder)
	}

	// The next child fills in at the roster size
	dan, err := env.roster.AddChild(familyID, "Dan", "", "")
	if err != nil {
		t.Fatalf("AddChild failed: %v", err)
	}
	if dan.DisplayOrder != 2 {
		t.Errorf("Dan display order = %d, want 2", dan.DisplayOrder)
	}
}

func TestRemoveChildCascadesChoices(t *testing.T) {
	env := setupTestEnv(t)
	familyID := env.createFamily(t, "parent@example.com")
	child, _ := env.roster.AddChild(familyID, "Ada", "", "")

	today := env.choices.Today()
	if _, err := env.choices.Submit(familyID, child.ID, today, nil); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if err := env.roster.RemoveChild(familyID, child.ID); err != nil {
		t.Fatalf("RemoveChild failed: %v", err)
	}

	var count int
	err := env.db.QueryRow("SELECT COUNT(*) FROM daily_choices WHERE child_id = ?", child.ID).Scan(&count)
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 0 {
		t.Errorf("orphaned choices = %d, want 0", count)
	}
}

func TestUpdateChildPartial(t *testing.T) {
	env := setupTestEnv(t)
	familyID := env.createFamily(t, "parent@example.com")
	child, _ := env.roster.AddChild(familyID, "Ada", "🦊", "#ff9900")

	newEmoji := "🐸"
	updated, err := env.roster.UpdateChild(familyID, child.ID, models.ChildUpdate{AvatarEmoji: &newEmoji})
	if err != nil {
		t.Fatalf("UpdateChild failed: %v", err)
	}
	if updated.AvatarEmoji != "🐸" {
		t.Errorf("emoji = %q, want 🐸", updated.AvatarEmoji)
	}
	if updated.Name != "Ada" || updated.Color != "#ff9900" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestAddChildRejectsBlankName(t *testing.T) {
	env := setupTestEnv(t)
	familyID := env.createFamily(t, "parent@example.com")

	_, err := env.roster.AddChild(familyID, "   ", "", "")
	var validationErr validation.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestChildTenantIsolation(t *testing.T) {
	env := setupTestEnv(t)
	familyA := env.createFamily(t, "a@example.com")
	familyB := env.createFamily(t, "b@example.com")
	childB, _ := env.roster.AddChild(familyB, "Hal", "", "")

	if _, err := env.roster.GetChild(familyA, childB.ID); !errors.Is(err, ErrChildNotFound) {
		t.Errorf("GetChild across families: err = %v, want ErrChildNotFound", err)
	}
	if err := env.roster.RemoveChild(familyA, childB.ID); !errors.Is(err, ErrChildNotFound) {
		t.Errorf("RemoveChild across families: err = %v, want ErrChildNotFound", err)
	}
}
