package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/warwickallen/allen-app-challenge-2026/internal/apperr"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/participant"
)

type CreateParticipant struct {
	Create participant.ParticipantCreate

	Result *participant.Participant
}

func (c *CreateParticipant) Name() string { return "create_participant" }

func (c *CreateParticipant) Perform(ctx context.Context, writer *storage.Writer) error {
	_, err := writer.Participants.FindByEmail(ctx, c.Create.Email)
	var notFound *apperr.NotFoundError
	switch {
	case err == nil:
		return apperr.Validation("a participant with email %s already exists", c.Create.Email)
	case !errors.As(err, &notFound):
		return fmt.Errorf("find participant: %w", err)
	}

	created, err := writer.Participants.Insert(ctx, &c.Create)
	if err != nil {
		return fmt.Errorf("insert participant: %w", err)
	}
	c.Result = created
	return nil
}
