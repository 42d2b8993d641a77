package queue

import (
	"context"
	"encoding/json"

	"studio-api/core/constants"
	"studio-api/core/logger"

	"github.com/hibiken/asynq"
)

// Client enqueues background tasks. A nil Client drops tasks with a
// warning, which keeps the request path alive when redis is down.
type Client struct {
	client *asynq.Client
}

func NewClient(addr, password string, db int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (c *Client) Enqueue(ctx context.Context, taskType string, payload any) error {
	if c == nil {
		logger.Warn("Queue:Enqueue:NoClient", "task", taskType)
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	info, err := c.client.EnqueueContext(ctx, asynq.NewTask(taskType, raw), asynq.Queue(constants.QueueDefault))
	if err != nil {
		return err
	}
	logger.Debug("Queue:Enqueue:Success", "task", taskType, "id", info.ID)
	return nil
}

func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// Worker consumes background tasks. Handlers are registered by the
// modules that own them before Start.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewWorker(addr, password string, db int) *Worker {
	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: addr, Password: password, DB: db},
		asynq.Config{
			Concurrency: 5,
			Queues:      map[string]int{constants.QueueDefault: 1},
		},
	)
	return &Worker{server: server, mux: asynq.NewServeMux()}
}

func (w *Worker) Handle(taskType string, handler asynq.HandlerFunc) {
	w.mux.HandleFunc(taskType, handler)
}

func (w *Worker) Start() error {
	return w.server.Start(w.mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}
