package services

import "github.com/hibiken/asynq"

// TaskEnqueuer is the slice of asynq.Client the handlers need.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
