package operator

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/warwickallen/allen-app-challenge-2026/internal/metrics"
	"github.com/warwickallen/allen-app-challenge-2026/internal/operator/actions"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage"
)

// WriteOpener begins the database transaction an action runs in.
type WriteOpener interface {
	Write(ctx context.Context) (*storage.Writer, error)
}

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage WriteOpener
	queue   chan ActionItem
	logger  *logrus.Logger
}

func NewOperator(s WriteOpener, queue chan ActionItem, logger *logrus.Logger) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
		logger:  logger,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		metrics.SetQueueDepth(len(o.queue))
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	start := time.Now()
	err := o.perform(item)
	metrics.RecordAction(item.action.Name(), time.Since(start), err)
	if err != nil {
		o.logger.WithError(err).WithField("action", item.action.Name()).Debug("Operator.processItem.rolled back")
	}
	item.response <- ActionItemResponse{err: err}
}

func (o *Operator) perform(item ActionItem) error {
	// A caller that already gave up gets nothing written on its behalf.
	if err := item.ctx.Err(); err != nil {
		return err
	}

	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		return err
	}

	err = item.action.Perform(item.ctx, writer)
	if err != nil {
		if rbErr := writer.Rollback(context.Background()); rbErr != nil {
			o.logger.WithError(rbErr).WithField("action", item.action.Name()).Error("Operator.processItem.rollback")
		}
		return err
	}

	return writer.Commit(item.ctx)
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
