package main

import (
	"context"
	"time"

	"github.com/turtacn/ShipCert-Intelligence/internal/application/survey"
	"github.com/turtacn/ShipCert-Intelligence/internal/config"
	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/database/postgres"
	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/database/redis"
	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ShipCert-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/ShipCert-Intelligence/pkg/errors"
	"github.com/turtacn/ShipCert-Intelligence/pkg/types/common"
)

// surveyConfig maps the survey section of the file onto the service config.
func surveyConfig(c config.SurveyConfig) survey.Config {
	return survey.Config{
		DockingIntervalMonths:   c.DockingIntervalMonths,
		DueSoonDays:             c.DueSoonDays,
		EquipmentFallbackMonths: c.EquipmentFallbackMonths,
		ScanWorkers:             c.ScanWorkers,
		CacheTTL:                c.CacheTTL,
		EquipmentIntervals:      c.EquipmentIntervals,
	}
}

// Adapters for HealthHandler.  Redis and Kafka degrade the service rather
// than take it down: scans still work without the cache or the event bus.
func healthCheckers(conn *postgres.Connection, rdb *redis.Client) []handlers.HealthChecker {
	checkers := []handlers.HealthChecker{
		handlers.HealthCheckFunc{ComponentName: "postgres", Fn: conn.HealthCheck},
	}
	if rdb != nil {
		checkers = append(checkers, handlers.HealthCheckFunc{ComponentName: "redis", Fn: rdb.Ping, Optional: true})
	}
	return checkers
}

// ---------------------------------------------------------------------------
// Event publishing
// ---------------------------------------------------------------------------

type eventWriter interface {
	PublishEvent(ctx context.Context, eventID, eventType, key string, occurredAt time.Time, payload interface{}) error
}

type publishRecorder interface {
	RecordEventPublished(eventType string, err error)
}

// kafkaPublisher implements survey.EventPublisher over the event producer.
type kafkaPublisher struct {
	producer eventWriter
	metrics  publishRecorder
}

func (p *kafkaPublisher) PublishSurveyEvent(ctx context.Context, evt *survey.SurveyEvent) error {
	err := p.producer.PublishEvent(ctx, evt.ID, evt.Type, evt.Key(), evt.OccurredAt, evt)
	p.metrics.RecordEventPublished(evt.Type, err)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSurveyEventPublishFail, "publish "+evt.Type).
			WithDetail("event_id=" + evt.ID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Document-change consumption
// ---------------------------------------------------------------------------

type changeApplier interface {
	ApplyChange(ctx context.Context, ch survey.DocumentChange) error
}

type changeRecorder interface {
	RecordChangeConsumed(kind string, err error)
}

// changeHandler turns document-change envelopes into recalculations.  Bad
// input and unknown ids are logged and acknowledged; retrying cannot fix them.
func changeHandler(svc changeApplier, metrics changeRecorder, logger logging.Logger) common.MessageHandler {
	return func(ctx context.Context, msg *common.Message) error {
		env, err := kafka.MessageToEventEnvelope(msg)
		if err != nil {
			metrics.RecordChangeConsumed("invalid", err)
			logger.Warn("dropping undecodable document change",
				logging.String("topic", msg.Topic),
				logging.Int64("offset", msg.Offset),
				logging.Err(err))
			return nil
		}
		var ch survey.DocumentChange
		if err := env.DecodePayload(&ch); err != nil {
			metrics.RecordChangeConsumed("invalid", err)
			logger.Warn("dropping document change with bad payload",
				logging.String("event_id", env.EventID),
				logging.Err(err))
			return nil
		}

		err = svc.ApplyChange(ctx, ch)
		metrics.RecordChangeConsumed(string(ch.Kind), err)
		if err == nil {
			return nil
		}
		if permanentChangeFailure(err) {
			logger.Warn("document change not applicable",
				logging.String("event_id", env.EventID),
				logging.String("kind", string(ch.Kind)),
				logging.Err(err))
			return nil
		}
		return err
	}
}

// permanentChangeFailure reports errors that redelivery cannot fix: the
// document is gone, the change is malformed or the stored data is corrupt.
func permanentChangeFailure(err error) bool {
	return errors.IsNotFound(err) ||
		errors.IsCode(err, errors.CodeInvalidParam) ||
		errors.IsCode(err, errors.ErrCodeDateParseFailed) ||
		errors.IsCode(err, errors.ErrCodeIntervalTableInvalid)
}

// ---------------------------------------------------------------------------
// Pool stats
// ---------------------------------------------------------------------------

type poolRecorder interface {
	RecordDBPool(open, inUse int)
}

// reportPoolStats samples the connection pool until ctx is done.
func reportPoolStats(ctx context.Context, conn *postgres.Connection, rec poolRecorder, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		st := conn.Stats()
		rec.RecordDBPool(st.OpenConnections, st.InUse)
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

//Personal.AI order the ending
