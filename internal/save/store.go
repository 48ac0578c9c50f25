// Package save persists the economy ledger between sessions.
package save

import (
	"context"
	"fmt"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/osse101/PetalGarden_Go/internal/economy"
	"github.com/osse101/PetalGarden_Go/internal/logger"
)

// ObjectStore is the subset of *gdata.Manager the ledger needs
type ObjectStore interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

// OpenStore opens the per-user data directory for appName
func OpenStore(appName string) (ObjectStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf(ErrFmtOpenStore, appName, err)
	}
	return m, nil
}

// ledgerFile is the on-disk document
type ledgerFile struct {
	Version int              `yaml:"version"`
	SavedAt time.Time        `yaml:"savedAt"`
	Ledger  economy.Snapshot `yaml:"ledger"`
}

// Store reads and writes the ledger. A Store without an ObjectStore runs in
// degraded mode: loads return an empty ledger and saves fail with ErrNoStore.
type Store struct {
	objects ObjectStore
}

// NewStore wraps objects, which may be nil
func NewStore(objects ObjectStore) *Store {
	return &Store{objects: objects}
}

// SaveLedger writes snap, stamped with savedAt
func (s *Store) SaveLedger(ctx context.Context, snap economy.Snapshot, savedAt time.Time) error {
	if s.objects == nil {
		return ErrNoStore
	}

	data, err := yaml.Marshal(ledgerFile{Version: LedgerFormatVersion, SavedAt: savedAt.UTC(), Ledger: snap})
	if err != nil {
		return fmt.Errorf(ErrFmtMarshal, err)
	}
	if err := s.objects.SaveObjectProp(ledgerObject, ledgerProperty, data); err != nil {
		return fmt.Errorf(ErrFmtWrite, err)
	}

	logger.FromContext(ctx).Debug(LogMsgLedgerSaved, LogFieldCoins, snap.Coins, LogFieldPetalTypes, len(snap.Petals))
	return nil
}

// LoadLedger returns the saved ledger, or an empty one when nothing was saved
func (s *Store) LoadLedger(ctx context.Context) (economy.Snapshot, error) {
	log := logger.FromContext(ctx)
	if s.objects == nil {
		log.Warn(LogMsgDegradedMode)
		return economy.Snapshot{}, nil
	}
	if !s.objects.ObjectPropExists(ledgerObject, ledgerProperty) {
		log.Info(LogMsgNoSavedLedger)
		return economy.Snapshot{}, nil
	}

	data, err := s.objects.LoadObjectProp(ledgerObject, ledgerProperty)
	if err != nil {
		return economy.Snapshot{}, fmt.Errorf(ErrFmtRead, err)
	}

	var file ledgerFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return economy.Snapshot{}, fmt.Errorf(ErrFmtUnmarshal, err)
	}
	if file.Version != LedgerFormatVersion {
		log.Warn(LogMsgVersionMismatch, LogFieldVersion, file.Version)
	}

	log.Info(LogMsgLedgerLoaded, LogFieldCoins, file.Ledger.Coins, LogFieldPetalTypes, len(file.Ledger.Petals))
	return file.Ledger, nil
}

// RestoreInto loads the saved ledger and restores it into econ
func (s *Store) RestoreInto(ctx context.Context, econ economy.Service) error {
	snap, err := s.LoadLedger(ctx)
	if err != nil {
		return err
	}
	if err := econ.Restore(ctx, snap); err != nil {
		return fmt.Errorf(ErrFmtInvalidSaved, err)
	}
	return nil
}
