package amqprepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/corray333/backend-labs/payreport/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/payreport/internal/service/models/report"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 3

type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RowMessage is the body of one published report row.
// Position is the row's index in the report, so consumers can restore its order.
type RowMessage struct {
	Position int `json:"position"`
	Total    int `json:"total"`
	report.Row
}

// ExportRabbitMQRepository publishes report rows as JSON messages, one per row.
type ExportRabbitMQRepository struct {
	publisher   publisher
	queueName   string
	concurrency int
}

// NewExportRabbitMQRepository declares the durable queue rows are published to.
func NewExportRabbitMQRepository(
	client *rabbitmq.Client,
	queueName string,
	concurrency int,
) (*ExportRabbitMQRepository, error) {
	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    queueName,
		Durable: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	return newExportRepository(client.Channel(), queue.Name, concurrency), nil
}

func newExportRepository(pub publisher, queueName string, concurrency int) *ExportRabbitMQRepository {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &ExportRabbitMQRepository{
		publisher:   pub,
		queueName:   queueName,
		concurrency: concurrency,
	}
}

// PublishRows publishes every row, stopping at the first failure.
// Delivery order on the queue is not guaranteed; each message carries its position.
func (r *ExportRabbitMQRepository) PublishRows(ctx context.Context, rows []report.Row) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, row := range rows {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			body, err := json.Marshal(RowMessage{Position: i, Total: len(rows), Row: row})
			if err != nil {
				return fmt.Errorf("failed to marshal report row: %w", err)
			}

			return r.publisher.Publish(
				"",
				r.queueName,
				false,
				false,
				amqp.Publishing{
					ContentType:  "application/json",
					DeliveryMode: amqp.Persistent,
					Body:         body,
				},
			)
		})
	}

	return g.Wait()
}
