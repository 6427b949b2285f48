// Event worker: consumes domain events from NATS and projects them into
// the audit trail so admin users see one activity feed across services.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"teletherapy-be/internal/config"
	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/pkg/logger"
	"teletherapy-be/internal/repository/unitofwork"
	"teletherapy-be/pkg/database"
	"teletherapy-be/pkg/events"
	pktNats "teletherapy-be/pkg/nats"

	"github.com/google/uuid"
)

func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer sysLogger.Sync()

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)

	subscriber, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Panicf("Unable to connect to NATS: %v", err)
	}
	defer subscriber.Close()

	projector := &auditProjector{uowFactory: uowFactory, logger: sysLogger}
	if err := subscriber.Subscribe("events.>", "audit-projector", projector.Handle); err != nil {
		log.Panicf("Unable to subscribe to events: %v", err)
	}

	sysLogger.Info("Worker", "Audit projector running", nil)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}

type auditProjector struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

// Handle records one event as an audit row. Errors propagate so the
// message is redelivered.
func (p *auditProjector) Handle(ctx context.Context, event events.Event) error {
	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	entry := &entity.AuditLog{
		Id:         uuid.New(),
		ActionKind: strings.ToLower(event.EventType()),
		Details:    event.Payload(),
		CreatedAt:  event.Timestamp(),
	}

	uow := p.uowFactory.NewUnitOfWork(opCtx)
	if err := uow.AuditRepository().Create(opCtx, entry); err != nil {
		p.logger.Error("Worker", "Failed to record event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
		return err
	}
	return nil
}
