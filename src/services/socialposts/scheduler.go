package socialposts

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const TypePublishPost = "post:publish"

type PublishPayload struct {
	PostID string `json:"post_id"`
}

func NewPublishTask(postID string) (*asynq.Task, error) {
	payload, err := json.Marshal(PublishPayload{PostID: postID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePublishPost, payload), nil
}

func publishTaskID(id primitive.ObjectID) string {
	return "publish-post-" + id.Hex()
}

// Scheduler arranges for a Scheduled post to be published when due.
type Scheduler interface {
	SchedulePublish(ctx context.Context, id primitive.ObjectID, at time.Time) error
	CancelPublish(ctx context.Context, id primitive.ObjectID) error
}

// AsynqScheduler keeps one ProcessAt task per post, keyed by post id.
type AsynqScheduler struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	log       *zap.Logger
}

func NewAsynqScheduler(client *asynq.Client, inspector *asynq.Inspector, log *zap.Logger) *AsynqScheduler {
	return &AsynqScheduler{client: client, inspector: inspector, log: log}
}

func (s *AsynqScheduler) SchedulePublish(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	if err := s.CancelPublish(ctx, id); err != nil {
		return err
	}
	task, err := NewPublishTask(id.Hex())
	if err != nil {
		return err
	}
	taskID := publishTaskID(id)
	if _, err := s.client.EnqueueContext(ctx, task, asynq.ProcessAt(at), asynq.TaskID(taskID)); err != nil {
		return err
	}
	s.log.Info("post publish scheduled", zap.String("task_id", taskID), zap.Time("run_at", at))
	return nil
}

func (s *AsynqScheduler) CancelPublish(_ context.Context, id primitive.ObjectID) error {
	err := s.inspector.DeleteTask("default", publishTaskID(id))
	if err != nil && !errors.Is(err, asynq.ErrTaskNotFound) && !errors.Is(err, asynq.ErrQueueNotFound) {
		return err
	}
	return nil
}

type noopScheduler struct{}

func (noopScheduler) SchedulePublish(context.Context, primitive.ObjectID, time.Time) error {
	return nil
}

func (noopScheduler) CancelPublish(context.Context, primitive.ObjectID) error { return nil }
