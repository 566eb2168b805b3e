package repositories

import (
	"context"

	"github.com/asterwei416/cybercat/internal/domain/entities"
)

// ScanRepository archives scan records. Liveness is the session's
// concern; the archive only answers lookups by id.
type ScanRepository interface {
	Save(ctx context.Context, record *entities.ScanRecord) error
	FindByID(ctx context.Context, id entities.ScanID) (*entities.ScanRecord, error)
}
