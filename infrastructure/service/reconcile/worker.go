package reconcile

import (
	"context"
	"time"

	"github.com/verdemed/verdemed/application/port/outbound"
	"github.com/verdemed/verdemed/infrastructure/service/logger"
)

const batchSize = 100

// Worker periodically sweeps for rows a crashed registration left behind.
// Profiles whose identity is gone are unreachable and get deleted; patient
// profiles missing their patient row are only reported, deleting those would
// discard data an operator may still want.
type Worker struct {
	reconciliation outbound.ReconciliationRepository
	profiles       outbound.ProfileRepository
	logger         logger.Logger
	interval       time.Duration
}

func NewWorker(reconciliation outbound.ReconciliationRepository, profiles outbound.ProfileRepository, log logger.Logger, interval time.Duration) *Worker {
	return &Worker{
		reconciliation: reconciliation,
		profiles:       profiles,
		logger:         log,
		interval:       interval,
	}
}

// Run blocks until ctx is canceled, sweeping once per interval.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep runs a single reconciliation pass.
func (w *Worker) Sweep(ctx context.Context) {
	orphaned, err := w.reconciliation.ProfileIDsMissingIdentity(ctx, batchSize)
	if err != nil {
		w.logger.Error(ctx, "failed to scan for profiles without identity", err, nil)
	}

	for _, id := range orphaned {
		if err := w.profiles.Delete(ctx, id); err != nil {
			w.logger.Error(ctx, "failed to delete orphaned profile", err, map[string]interface{}{
				"profileId": id,
			})
			continue
		}
		w.logger.Info(ctx, "deleted orphaned profile without identity", map[string]interface{}{
			"profileId": id,
		})
	}

	incomplete, err := w.reconciliation.ProfileIDsMissingRoleRecord(ctx, batchSize)
	if err != nil {
		w.logger.Error(ctx, "failed to scan for profiles without role record", err, nil)
		return
	}

	if len(incomplete) > 0 {
		w.logger.Warn(ctx, "found patient profiles without patient record", map[string]interface{}{
			"count":      len(incomplete),
			"profileIds": incomplete,
		})
	}
}
