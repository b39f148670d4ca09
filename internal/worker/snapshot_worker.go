package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/adornodavid/aybcosteo-sub000/internal/service"
)

// SnapshotJob asks the pool to snapshot every active listing of one platillo
// as of Fecha (YYYY-MM-DD; empty = today).
type SnapshotJob struct {
	PlatilloID string `json:"platillo_id"`
	Fecha      string `json:"fecha,omitempty"`
}

// SnapshotWorker materializes daily snapshot rows off the request path. The
// snapshot writer is idempotent per day, so a redelivered job is harmless.
type SnapshotWorker struct {
	historico service.HistoricoService
}

func NewSnapshotWorker(historico service.HistoricoService) *SnapshotWorker {
	return &SnapshotWorker{historico: historico}
}

func (w *SnapshotWorker) Process(ctx context.Context, payload json.RawMessage) error {
	var job SnapshotJob
	if err := json.Unmarshal(payload, &job); err != nil {
		return err
	}
	platilloID, err := uuid.Parse(job.PlatilloID)
	if err != nil {
		return err
	}

	fecha := time.Now()
	if job.Fecha != "" {
		if parsed, err := time.Parse("2006-01-02", job.Fecha); err == nil {
			fecha = parsed
		}
	}

	if err := w.historico.SnapshotPlatillo(ctx, platilloID, fecha); err != nil {
		return err
	}
	log.Debug().
		Str("platillo_id", job.PlatilloID).
		Str("fecha", fecha.Format("2006-01-02")).
		Msg("snapshot worker: platillo snapshotted")
	return nil
}
