package repositories

import (
	"context"
	"fmt"
	"sync"

	"github.com/asterwei416/cybercat/internal/domain/entities"
	domainrepos "github.com/asterwei416/cybercat/internal/domain/repositories"
)

// MemoryScanRepository keeps scan records in process memory. Nothing is
// persisted to disk; a restart forgets every scan.
type MemoryScanRepository struct {
	scans map[entities.ScanID]*entities.ScanRecord
	mu    sync.RWMutex
}

func NewMemoryScanRepository() domainrepos.ScanRepository {
	return &MemoryScanRepository{
		scans: make(map[entities.ScanID]*entities.ScanRecord),
	}
}

func (r *MemoryScanRepository) Save(ctx context.Context, record *entities.ScanRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scans[record.ID()] = record
	return nil
}

func (r *MemoryScanRepository) FindByID(ctx context.Context, id entities.ScanID) (*entities.ScanRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.scans[id]
	if !exists {
		return nil, fmt.Errorf("scan not found: %s", id)
	}

	return record, nil
}
