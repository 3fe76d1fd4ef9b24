package database

import (
	"github.com/hibiken/asynq"
)

// NewAsynqClient returns nil when Redis is not configured, in which case
// background work runs in-process.
func NewAsynqClient(addr, password string, db int) *asynq.Client {
	if addr == "" {
		return nil
	}
	return asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password, DB: db})
}

// NewAsynqServer builds the worker server sharing the client's Redis.
func NewAsynqServer(addr, password string, db int) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{Addr: addr, Password: password, DB: db},
		asynq.Config{
			Concurrency: 5,
			Queues:      map[string]int{"default": 1},
		},
	)
}

// NewAsynqInspector is used to cancel scheduled tasks by id.
func NewAsynqInspector(addr, password string, db int) *asynq.Inspector {
	if addr == "" {
		return nil
	}
	return asynq.NewInspector(asynq.RedisClientOpt{Addr: addr, Password: password, DB: db})
}
