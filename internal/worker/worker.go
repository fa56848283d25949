// Package worker consumes analysis requests from an AMQP queue and publishes
// the results to an exchange.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/jonathan/ats-analyzer/internal/analysis"
	"github.com/jonathan/ats-analyzer/internal/ingestion"
	"github.com/jonathan/ats-analyzer/internal/logger"
	"github.com/jonathan/ats-analyzer/internal/types"
)

const maxLoggedError = 200

// ErrDeliveriesClosed is returned by Run when the broker closes the delivery channel.
var ErrDeliveriesClosed = errors.New("amqp delivery channel closed")

// Channel is the subset of *amqp.Channel the worker uses.
type Channel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Loader resolves a source reference to plain text.
type Loader func(ctx context.Context, source string) (string, error)

// Config holds worker configuration.
type Config struct {
	Queue    string
	Exchange string
	Prefetch int
	Logger   *zap.Logger
	// Loader defaults to RemoteLoader with zero ingestion options.
	Loader Loader
}

// Worker runs the engine for each queued message.
type Worker struct {
	ch     Channel
	cfg    Config
	log    *zap.Logger
	load   Loader
	now    func() time.Time
	nextID func() string
}

// New creates a worker that consumes from cfg.Queue on ch.
func New(ch Channel, cfg Config) *Worker {
	if cfg.Prefetch <= 0 {
		cfg.Prefetch = 1
	}
	load := cfg.Loader
	if load == nil {
		load = RemoteLoader(ingestion.Options{Logger: cfg.Logger})
	}

	return &Worker{
		ch:     ch,
		cfg:    cfg,
		log:    logger.Component(cfg.Logger, "worker"),
		load:   load,
		now:    time.Now,
		nextID: uuid.NewString,
	}
}

// Connect dials the broker and opens a channel. Closing the connection also
// closes the channel.
func Connect(url string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to AMQP broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to open AMQP channel: %w", err)
	}
	return conn, ch, nil
}

// RemoteLoader ingests http(s) and s3:// sources. Local paths are refused so
// that queue producers cannot read the worker's filesystem, and http(s) sources
// must resolve to public addresses. Without opts.HTTPClient, PublicHTTPClient
// is used. The headless browser is never used since its navigation cannot be
// held to public addresses.
func RemoteLoader(opts ingestion.Options) Loader {
	if opts.HTTPClient == nil {
		opts.HTTPClient = PublicHTTPClient(0)
	}
	opts.UseBrowser = false

	return func(ctx context.Context, source string) (string, error) {
		if !isRemote(source) {
			return "", fmt.Errorf("%w: %q is not an http(s) or s3 source", ingestion.ErrInvalidSource, source)
		}
		if err := checkHost(source); err != nil {
			return "", err
		}
		text, _, err := ingestion.Load(ctx, source, opts)
		return text, err
	}
}

func isRemote(source string) bool {
	source = strings.ToLower(strings.TrimSpace(source))
	for _, prefix := range []string{"http://", "https://", "s3://"} {
		if strings.HasPrefix(source, prefix) {
			return true
		}
	}
	return false
}

// Setup declares the durable queue and topic exchange and applies the prefetch limit.
func (w *Worker) Setup() error {
	if err := w.ch.ExchangeDeclare(w.cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %q: %w", w.cfg.Exchange, err)
	}
	if _, err := w.ch.QueueDeclare(w.cfg.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %q: %w", w.cfg.Queue, err)
	}
	if err := w.ch.Qos(w.cfg.Prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set prefetch: %w", err)
	}
	return nil
}

// Run consumes messages until ctx is cancelled (returning nil) or the broker
// closes the delivery channel (returning ErrDeliveriesClosed).
func (w *Worker) Run(ctx context.Context) error {
	if err := w.Setup(); err != nil {
		return err
	}

	deliveries, err := w.ch.Consume(w.cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume from %q: %w", w.cfg.Queue, err)
	}

	w.log.Info("worker started",
		zap.String("queue", w.cfg.Queue),
		zap.String("exchange", w.cfg.Exchange),
		zap.Int("prefetch", w.cfg.Prefetch),
	)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("worker stopping")
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return ErrDeliveriesClosed
			}
			w.handle(ctx, d)
		}
	}
}

// handle processes one delivery, publishes the reply and acknowledges it.
// Deliveries are never requeued.
func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	reply := w.process(ctx, d)
	log := w.log.With(zap.String("analysis_id", reply.ID))

	if err := w.publish(reply, d.CorrelationId); err != nil {
		log.Error("failed to publish reply", zap.Error(err))
		if nackErr := d.Nack(false, false); nackErr != nil {
			log.Error("failed to nack delivery", zap.Error(nackErr))
		}
		return
	}

	if err := d.Ack(false); err != nil {
		log.Error("failed to ack delivery", zap.Error(err))
		return
	}

	if reply.Error != "" {
		log.Warn("analysis failed", zap.String("error", logger.TruncateForLog(reply.Error, maxLoggedError)))
		return
	}
	log.Info("analysis complete", logger.ResultFields(reply.Result)...)
}

// process turns a delivery into a reply. Failures become error replies.
func (w *Worker) process(ctx context.Context, d amqp.Delivery) Reply {
	reply := Reply{GeneratedAt: w.now().UTC().Format(time.RFC3339)}

	var msg Message
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		reply.ID = w.fallbackID(d)
		reply.Error = "invalid message: " + err.Error()
		return reply
	}

	reply.ID = strings.TrimSpace(msg.ID)
	if reply.ID == "" {
		reply.ID = w.fallbackID(d)
	} else if !validID(reply.ID) {
		reply.ID = w.fallbackID(d)
		reply.Error = fmt.Sprintf("invalid message: id must be 1 to %d printable ASCII characters without spaces, '.', '*' or '#'", maxIDLength)
		return reply
	}

	req, err := w.resolve(ctx, msg)
	if err != nil {
		reply.Error = err.Error()
		return reply
	}

	reply.Result = analysis.Analyze(req.Resume, req.JobDescription)
	return reply
}

// resolve fills in the texts of msg, ingesting sources where the text is empty.
func (w *Worker) resolve(ctx context.Context, msg Message) (types.AnalyzeRequest, error) {
	req := types.AnalyzeRequest{Resume: msg.Resume, JobDescription: msg.JobDescription}

	if strings.TrimSpace(req.Resume) == "" && msg.ResumeSource != "" {
		text, err := w.load(ctx, msg.ResumeSource)
		if err != nil {
			return req, fmt.Errorf("failed to load resume: %w", err)
		}
		req.Resume = text
	}
	if strings.TrimSpace(req.JobDescription) == "" && msg.JobSource != "" {
		text, err := w.load(ctx, msg.JobSource)
		if err != nil {
			return req, fmt.Errorf("failed to load job description: %w", err)
		}
		req.JobDescription = text
	}

	if err := req.Validate(); err != nil {
		return req, fmt.Errorf("invalid message: %w", err)
	}
	return req, nil
}

func (w *Worker) fallbackID(d amqp.Delivery) string {
	if id := strings.TrimSpace(d.MessageId); validID(id) {
		return id
	}
	return w.nextID()
}

func (w *Worker) publish(reply Reply, correlationID string) error {
	body, err := json.Marshal(reply)
	if err != nil {
		return fmt.Errorf("failed to marshal reply: %w", err)
	}

	return w.ch.Publish(
		w.cfg.Exchange,
		RoutingKey(reply.ID),
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     reply.ID,
			CorrelationId: correlationID,
			Timestamp:     w.now(),
			Body:          body,
		},
	)
}
