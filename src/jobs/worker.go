package jobs

import (
	"context"

	"nextglide-backend/src/services/notify"
	"nextglide-backend/src/services/socialposts"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Handlers are the task handlers the worker serves.
type Handlers struct {
	SendMail    asynq.HandlerFunc
	PublishPost asynq.HandlerFunc
}

// NewServeMux registers every task type with its handler.
func NewServeMux(h Handlers, log *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Use(logging(log))
	mux.HandleFunc(notify.TypeSendMail, h.SendMail)
	mux.HandleFunc(socialposts.TypePublishPost, h.PublishPost)
	return mux
}

func logging(log *zap.Logger) asynq.MiddlewareFunc {
	return func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
			err := next.ProcessTask(ctx, t)
			if err != nil {
				log.Error("task failed", zap.String("type", t.Type()), zap.Error(err))
				return err
			}
			log.Debug("task done", zap.String("type", t.Type()))
			return nil
		})
	}
}
