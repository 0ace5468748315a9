package service

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/apperr"
	"github.com/warwickallen/allen-app-challenge-2026/internal/auth"
	"github.com/warwickallen/allen-app-challenge-2026/internal/operator/actions"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/participant"
)

// ParticipantInput is a new participant as entered by an operator.
type ParticipantInput struct {
	Name     string
	Email    string
	Role     access.Role
	Password string
}

// ParticipantService manages participant accounts.
type ParticipantService struct {
	storage   *storage.Storage
	processor ActionProcessor
}

// NewParticipantService creates a new ParticipantService.
func NewParticipantService(store *storage.Storage, processor ActionProcessor) *ParticipantService {
	return &ParticipantService{storage: store, processor: processor}
}

// ListParticipants returns every participant ordered by name.
func (s *ParticipantService) ListParticipants(ctx context.Context) ([]Participant, error) {
	rows, err := s.storage.Participants.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	result := make([]Participant, len(rows))
	for i, row := range rows {
		result[i] = participantFromStorage(row)
	}
	return result, nil
}

// CreateParticipant validates the input, hashes the password and stores the participant.
func (s *ParticipantService) CreateParticipant(ctx context.Context, input ParticipantInput) (*Participant, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Validation("participant name is required")
	}
	if utf8.RuneCountInString(name) > maxParticipantNameLength {
		return nil, apperr.Validation("participant name must be %d characters or less", maxParticipantNameLength)
	}

	addr, err := mail.ParseAddress(strings.TrimSpace(input.Email))
	if err != nil {
		return nil, apperr.Validation("email is not a valid address")
	}
	email := strings.ToLower(addr.Address)

	if utf8.RuneCountInString(input.Password) < minPasswordLength {
		return nil, apperr.Validation("password must be at least %d characters", minPasswordLength)
	}
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	action := &actions.CreateParticipant{Create: participant.ParticipantCreate{
		Name:         name,
		Email:        email,
		Role:         input.Role,
		PasswordHash: hash,
	}}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}

	result := participantFromStorage(action.Result)
	return &result, nil
}
