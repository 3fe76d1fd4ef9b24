package jobs

import (
	"context"
	"testing"

	"nextglide-backend/src/models"
	"nextglide-backend/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestService() (*Service, *MemoryFormStore) {
	forms := NewMemoryFormStore()
	return NewService(NewMemoryStore(), forms, zap.NewNop()), forms
}

func strPtr(s string) *string { return &s }

func TestCreateAndList(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, models.Job{Title: "  "})
	assert.Equal(t, "title is required", err.Error())

	job, err := svc.Create(ctx, models.Job{Title: "Go Engineer", Location: "Remote"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, job.ID, list[0].ID)

	title, err := svc.Title(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go Engineer", title)

	title, err = svc.Title(ctx, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, title)
}

func TestUpdatePartial(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	job, err := svc.Create(ctx, models.Job{Title: "Go Engineer", Location: "Remote", Department: "Platform"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, job.ID, models.JobPatch{Location: strPtr("Berlin")})
	require.NoError(t, err)
	assert.Equal(t, "Go Engineer", updated.Title)
	assert.Equal(t, "Berlin", updated.Location)
	assert.Equal(t, "Platform", updated.Department)

	_, err = svc.Update(ctx, job.ID, models.JobPatch{Title: strPtr("")})
	assert.Equal(t, 400, utils.StatusOf(err))

	_, err = svc.Update(ctx, primitive.NewObjectID(), models.JobPatch{Location: strPtr("x")})
	assert.Equal(t, 404, utils.StatusOf(err))
	assert.Equal(t, "Job not found", err.Error())

	_, err = svc.Update(ctx, primitive.NewObjectID(), models.JobPatch{})
	assert.Equal(t, 404, utils.StatusOf(err))
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService()
	job, err := svc.Create(context.Background(), models.Job{Title: "QA"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), job.ID))
	assert.Equal(t, 404, utils.StatusOf(svc.Delete(context.Background(), job.ID)))
}

func TestFormUpsert(t *testing.T) {
	svc, forms := newTestService()
	ctx := context.Background()
	jobID := primitive.NewObjectID()

	empty, err := svc.GetForm(ctx, jobID)
	require.NoError(t, err)
	assert.NotNil(t, empty.Fields)
	assert.Empty(t, empty.Fields)

	first, err := svc.SaveForm(ctx, models.JobFormRequest{
		JobID:  jobID.Hex(),
		Fields: []models.JobFormField{{ID: "f1", Label: "Email", Type: "email", Required: true}},
	})
	require.NoError(t, err)

	second, err := svc.SaveForm(ctx, models.JobFormRequest{
		JobID:  jobID.Hex(),
		Fields: []models.JobFormField{{ID: "f1", Label: "Email"}, {ID: "f2", Label: "Name"}},
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, forms.Len())

	got, err := svc.GetForm(ctx, jobID)
	require.NoError(t, err)
	assert.Len(t, got.Fields, 2)
}

func TestSaveFormValidation(t *testing.T) {
	svc, _ := newTestService()
	testCases := []struct {
		name string
		req  models.JobFormRequest
		want string
	}{
		{name: "missing job", req: models.JobFormRequest{}, want: "jobId is required"},
		{name: "bad job id", req: models.JobFormRequest{JobID: "nope"}, want: "Invalid job ID"},
		{name: "blank label", req: models.JobFormRequest{JobID: primitive.NewObjectID().Hex(), Fields: []models.JobFormField{{ID: "x"}}}, want: "field label is required"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SaveForm(context.Background(), tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.want, err.Error())
		})
	}
}
