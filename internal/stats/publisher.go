package stats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/Arquisoft/wichat-en2b-sub000/internal/models"
)

// TaskSessionFinished is consumed by the statistics service workers.
const TaskSessionFinished = "stats:session_finished"

// FinishedSession is the result record handed to the statistics service once
// a game ends.
type FinishedSession struct {
	SessionID string          `json:"sessionId"`
	Code      string          `json:"code"`
	HostID    string          `json:"hostId"`
	QuizName  string          `json:"quizName"`
	Category  string          `json:"category,omitempty"`
	Players   []models.Player `json:"players"`
	StartedAt *time.Time      `json:"startedAt,omitempty"`
	EndedAt   *time.Time      `json:"endedAt,omitempty"`
}

// Publisher hands finished-game results to the statistics service.
type Publisher interface {
	SessionFinished(ctx context.Context, result FinishedSession) error
}

// AsynqPublisher enqueues results on the shared task queue.
type AsynqPublisher struct {
	client *asynq.Client
	log    *logrus.Entry
}

func NewAsynqPublisher(redisAddr string) *AsynqPublisher {
	return &AsynqPublisher{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}),
		log:    logrus.WithField("component", "stats"),
	}
}

func (p *AsynqPublisher) SessionFinished(ctx context.Context, result FinishedSession) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TaskSessionFinished, payload)
	info, err := p.client.EnqueueContext(ctx, task, asynq.Queue("stats"), asynq.MaxRetry(5))
	if err != nil {
		return err
	}
	p.log.WithFields(logrus.Fields{
		"code":    result.Code,
		"task_id": info.ID,
	}).Info("session results enqueued")
	return nil
}

func (p *AsynqPublisher) Close() error {
	return p.client.Close()
}

// NopPublisher drops results; used when no queue is configured.
type NopPublisher struct{}

func (NopPublisher) SessionFinished(context.Context, FinishedSession) error { return nil }
