package service

import (
	"time"

	"mealpick/internal/models"
	"mealpick/internal/notify"
	"mealpick/internal/repository"
)

// ChoiceService handles the daily meal selection flow: children submit what
// they want to eat today, and the parent dashboard reads every child's
// progress for the same day.
type ChoiceService struct {
	childRepo  *repository.ChildRepository
	foodRepo   *repository.FoodItemRepository
	choiceRepo *repository.DailyChoiceRepository
	hub        *notify.Hub

	// now is swappable so tests can pin the date boundary
	now func() time.Time
}

// NewChoiceService creates a new choice service
func NewChoiceService(childRepo *repository.ChildRepository, foodRepo *repository.FoodItemRepository, choiceRepo *repository.DailyChoiceRepository, hub *notify.Hub) *ChoiceService {
	return &ChoiceService{
		childRepo:  childRepo,
		foodRepo:   foodRepo,
		choiceRepo: choiceRepo,
		hub:        hub,
		now:        time.Now,
	}
}

// Today returns the current date key in the server's local timezone. Every
// read and write in a request uses one Today value, so a request never
// straddles midnight.
func (s *ChoiceService) Today() string {
	return s.now().Format(models.DateKeyFormat)
}

// GetDashboard assembles the day's family overview: every child in roster
// order, each paired with their choice for the date or nil if they have not
// chosen. The result is a pure projection of roster and choice state; reading
// it changes nothing.
func (s *ChoiceService) GetDashboard(familyID int64, choiceDate string) ([]models.ChildWithChoice, error) {
	children, err := s.childRepo.GetFamilyChildren(familyID)
	if err != nil {
		return nil, err
	}

	choices, err := s.choiceRepo.GetFamilyChoicesForDate(familyID, choiceDate)
	if err != nil {
		return nil, err
	}

	dashboard := make([]models.ChildWithChoice, 0, len(children))
	for _, child := range children {
		dashboard = append(dashboard, models.ChildWithChoice{
			Child:  child,
			Choice: choices[child.ID],
		})
	}

	return dashboard, nil
}

// GetChoice returns a child's choice for the date with items resolved, or
// nil when the child has not chosen.
func (s *ChoiceService) GetChoice(familyID, childID int64, choiceDate string) (*models.DailyChoiceWithItems, error) {
	child, err := s.childRepo.GetChildByID(childID)
	if err != nil {
		return nil, err
	}
	if child == nil || child.FamilyID != familyID {
		return nil, ErrChildNotFound
	}

	choice, err := s.choiceRepo.GetChoiceForDate(childID, choiceDate)
	if err != nil {
		return nil, err
	}
	if choice == nil {
		return nil, nil
	}

	items, err := s.choiceRepo.GetItemsForChoice(choice.ID)
	if err != nil {
		return nil, err
	}

	return &models.DailyChoiceWithItems{
		DailyChoice: *choice,
		Items:       items,
	}, nil
}

// Submit records a child's completed selection for the date, replacing any
// earlier submission for the same day wholesale. An empty selection is valid
// and still marks the day completed. Every food item must belong to the
// child's family; soft-deleted items are accepted so an in-flight pick
// survives a concurrent catalog edit.
func (s *ChoiceService) Submit(familyID, childID int64, choiceDate string, foodItemIDs []int64) (*models.DailyChoiceWithItems, error) {
	child, err := s.childRepo.GetChildByID(childID)
	if err != nil {
		return nil, err
	}
	if child == nil || child.FamilyID != familyID {
		return nil, ErrChildNotFound
	}

	if len(foodItemIDs) > 0 {
		unique := map[int64]struct{}{}
		for _, id := range foodItemIDs {
			unique[id] = struct{}{}
		}
		count, err := s.foodRepo.CountByIDsInFamily(familyID, foodItemIDs)
		if err != nil {
			return nil, err
		}
		if count != len(unique) {
			return nil, ErrFoodItemNotFound
		}
	}

	choice, err := s.choiceRepo.ReplaceChoice(familyID, childID, choiceDate, foodItemIDs)
	if err != nil {
		return nil, err
	}

	items, err := s.choiceRepo.GetItemsForChoice(choice.ID)
	if err != nil {
		return nil, err
	}

	s.hub.Publish("daily_choices", familyID)
	s.hub.Publish("daily_choice_items", familyID)

	return &models.DailyChoiceWithItems{
		DailyChoice: *choice,
		Items:       items,
	}, nil
}
