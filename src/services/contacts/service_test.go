package contacts

import (
	"context"
	"errors"
	"testing"

	"nextglide-backend/src/models"
	"nextglide-backend/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type stubNotifier struct {
	queued  []string
	sent    []string
	custom  []string
	sendErr error
}

func (n *stubNotifier) NotifyWelcome(_ context.Context, c *models.Contact) {
	n.queued = append(n.queued, c.Email)
}

func (n *stubNotifier) SendWelcome(_ context.Context, c *models.Contact) error {
	n.sent = append(n.sent, c.Email)
	return n.sendErr
}

func (n *stubNotifier) SendCustom(_ context.Context, to, _, _ string) error {
	n.custom = append(n.custom, to)
	return n.sendErr
}

func validContact() models.Contact {
	return models.Contact{Name: " A ", Email: "a@b.com", Subject: "S", Message: "M"}
}

func TestCreate(t *testing.T) {
	notifier := &stubNotifier{sendErr: errors.New("never awaited")}
	svc := NewService(NewMemoryStore(), notifier, zap.NewNop())

	c, err := svc.Create(context.Background(), validContact())
	require.NoError(t, err)
	assert.Equal(t, "A", c.Name)
	assert.False(t, c.ID.IsZero())
	assert.Equal(t, []string{"a@b.com"}, notifier.queued)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
}

func TestCreateValidation(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*models.Contact)
		want   string
	}{
		{name: "no name", mutate: func(c *models.Contact) { c.Name = "  " }, want: "name is required"},
		{name: "bad email", mutate: func(c *models.Contact) { c.Email = "nope" }, want: "email must be a valid email address"},
		{name: "no subject", mutate: func(c *models.Contact) { c.Subject = "" }, want: "subject is required"},
		{name: "no message", mutate: func(c *models.Contact) { c.Message = "" }, want: "message is required"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := NewMemoryStore()
			svc := NewService(store, &stubNotifier{}, zap.NewNop())
			c := validContact()
			tc.mutate(&c)

			_, err := svc.Create(context.Background(), c)
			require.Error(t, err)
			assert.Equal(t, 400, utils.StatusOf(err))
			assert.Equal(t, tc.want, err.Error())
			n, _ := store.Count(context.Background())
			assert.Zero(t, n)
		})
	}
}

func TestResendWelcome(t *testing.T) {
	notifier := &stubNotifier{}
	svc := NewService(NewMemoryStore(), notifier, zap.NewNop())
	c, err := svc.Create(context.Background(), validContact())
	require.NoError(t, err)

	require.NoError(t, svc.ResendWelcome(context.Background(), c.ID))
	assert.Equal(t, []string{"a@b.com"}, notifier.sent)

	notifier.sendErr = errors.New("smtp down")
	assert.Equal(t, 500, utils.StatusOf(svc.ResendWelcome(context.Background(), c.ID)))
	assert.Equal(t, 404, utils.StatusOf(svc.ResendWelcome(context.Background(), primitive.NewObjectID())))
}

func TestSendCustom(t *testing.T) {
	notifier := &stubNotifier{}
	svc := NewService(NewMemoryStore(), notifier, zap.NewNop())

	err := svc.SendCustom(context.Background(), models.CustomEmailRequest{ToEmail: "x@y.io", Subject: "Hi", Message: "Line"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x@y.io"}, notifier.custom)

	err = svc.SendCustom(context.Background(), models.CustomEmailRequest{ToEmail: "x@y.io"})
	assert.Equal(t, "subject is required", err.Error())
}

func TestDelete(t *testing.T) {
	svc := NewService(NewMemoryStore(), &stubNotifier{}, zap.NewNop())
	c, err := svc.Create(context.Background(), validContact())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), c.ID))
	assert.Equal(t, 404, utils.StatusOf(svc.Delete(context.Background(), c.ID)))
}
