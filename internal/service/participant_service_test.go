package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/apperr"
	"github.com/warwickallen/allen-app-challenge-2026/internal/operator/actions"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/participant"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/storagemock"
)

func TestListParticipants(t *testing.T) {
	mocks := storagemock.New(t)
	svc := NewParticipantService(mocks.Storage(), &fakeProcessor{})
	mocks.Participants.On("List", mock.Anything, mock.Anything).Return([]*participant.Participant{
		{Name: "Ada", Email: "ada@example.com", PasswordHash: "secret"},
	}, nil)

	got, err := svc.ListParticipants(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ada@example.com", got[0].Email)
}

func TestCreateParticipant_HashesAndNormalises(t *testing.T) {
	mocks := storagemock.New(t)
	processor := &fakeProcessor{respond: func(a actions.IAction) {
		c := a.(*actions.CreateParticipant)
		c.Result = &participant.Participant{Name: c.Create.Name, Email: c.Create.Email, Role: c.Create.Role}
	}}
	svc := NewParticipantService(mocks.Storage(), processor)

	got, err := svc.CreateParticipant(context.Background(), ParticipantInput{
		Name:     " Ada Lovelace ",
		Email:    "Ada <ADA@Example.com>",
		Role:     access.RoleAdmin,
		Password: "correct horse",
	})

	require.NoError(t, err)
	create := processor.processed[0].(*actions.CreateParticipant).Create
	assert.Equal(t, "Ada Lovelace", create.Name)
	assert.Equal(t, "ada@example.com", create.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(create.PasswordHash), []byte("correct horse")))
	assert.Equal(t, access.RoleAdmin, got.Role)
}

func TestCreateParticipant_ValidationErrors(t *testing.T) {
	cases := map[string]ParticipantInput{
		"blank name":     {Name: " ", Email: "a@example.com", Password: "long enough"},
		"bad email":      {Name: "Ada", Email: "not-an-email", Password: "long enough"},
		"short password": {Name: "Ada", Email: "a@example.com", Password: "short"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			processor := &fakeProcessor{}
			svc := NewParticipantService(storagemock.New(t).Storage(), processor)

			_, err := svc.CreateParticipant(context.Background(), input)

			var validation *apperr.ValidationError
			assert.ErrorAs(t, err, &validation)
			assert.Empty(t, processor.processed)
		})
	}
}
