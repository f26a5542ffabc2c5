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

var ErrChildNotFound = errors.New("child not found")

// RosterService handles business logic for a family's children
type RosterService struct {
	childRepo *repository.ChildRepository
	hub       *notify.Hub
}

// NewRosterService creates a new roster service
func NewRosterService(childRepo *repository.ChildRepository, hub *notify.Hub) *RosterService {
	return &RosterService{
		childRepo: childRepo,
		hub:       hub,
	}
}

// ListChildren returns a family's children in roster order
func (s *RosterService) ListChildren(familyID int64) ([]models.Child, error) {
	return s.childRepo.GetFamilyChildren(familyID)
}

// GetChild returns a child belonging to the family, or ErrChildNotFound.
// A child in another family is reported exactly like a missing one.
func (s *RosterService) GetChild(familyID, childID int64) (*models.Child, error) {
	child, err := s.childRepo.GetChildByID(childID)
	if err != nil {
		return nil, err
	}
	if child == nil || child.FamilyID != familyID {
		return nil, ErrChildNotFound
	}
	return child, nil
}

// AddChild appends a child to the roster. The display order is the roster
// size at creation time, so positions reflect insertion order and deletions
// leave gaps.
func (s *RosterService) AddChild(familyID int64, name, avatarEmoji, color string) (*models.Child, error) {
	if err := validation.ValidateName("name", name); err != nil {
		return nil, err
	}

	count, err := s.childRepo.CountByFamily(familyID)
	if err != nil {
		return nil, err
	}

	child, err := s.childRepo.CreateChild(familyID, strings.TrimSpace(name), avatarEmoji, color, count)
	if err != nil {
		return nil, err
	}

	s.hub.Publish("children", familyID)
	return child, nil
}

// UpdateChild applies a partial update to a child in the family
func (s *RosterService) UpdateChild(familyID, childID int64, update models.ChildUpdate) (*models.Child, error) {
	if _, err := s.GetChild(familyID, childID); err != nil {
		return nil, err
	}
	if update.Name != nil {
		if err := validation.ValidateName("name", *update.Name); err != nil {
			return nil, err
		}
		trimmed := strings.TrimSpace(*update.Name)
		update.Name = &trimmed
	}

	if err := s.childRepo.UpdateChild(childID, update); err != nil {
		return nil, fmt.Errorf("failed to update child: %w", err)
	}

	s.hub.Publish("children", familyID)
	return s.GetChild(familyID, childID)
}

// RemoveChild deletes a child and, via the database cascade, the child's
// choice history. Remaining children keep their display orders.
func (s *RosterService) RemoveChild(familyID, childID int64) error {
	if _, err := s.GetChild(familyID, childID); err != nil {
		return err
	}

	if err := s.childRepo.DeleteChild(childID); err != nil {
		return err
	}

	s.hub.Publish("children", familyID)
	s.hub.Publish("daily_choices", familyID)
	return nil
}
