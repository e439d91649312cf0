// Package dataset loads the catalog of open-data CSV sources and keeps
// their normalized records available for the API and the dashboard.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"lebstories.aub.edu.lb/internal/logging"
	"lebstories.aub.edu.lb/internal/models"
	"lebstories.aub.edu.lb/vizdb"
)

// ErrDataUnavailable marks a dataset whose source is missing, unreadable, or
// contains no usable rows.
var ErrDataUnavailable = errors.New("dataset unavailable")

// Dataset load statuses, also persisted in the dataset_loads table.
const (
	StatusReady       = "ready"
	StatusUnavailable = "unavailable"
)

// Snapshot is the manager's view of one dataset's last load.
type Snapshot struct {
	Config        DatasetConfig
	Status        string
	Err           error
	RecordCount   int
	SkippedRows   int
	LastRefreshed time.Time
}

// Manager manages the dashboard datasets and provides methods to access them
type Manager struct {
	config       Config
	catalog      Catalog
	VizDB        *vizdb.Client
	logger       *slog.Logger
	mu           sync.RWMutex
	snapshots    map[string]*Snapshot
	startedAt    time.Time
	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// InitManager loads the catalog, opens the database, and loads every dataset.
// A dataset that fails to load is marked unavailable; only catalog or
// database failures abort initialization.
func InitManager(config Config, logger *slog.Logger) (*Manager, error) {
	catalog, err := LoadCatalog(config.CatalogPath)
	if err != nil {
		return nil, err
	}

	client, err := vizdb.NewClient(vizdb.NewConfig(config.DataPath, config.Env, config.Verbose))
	if err != nil {
		return nil, fmt.Errorf("error building dataset database: %w", err)
	}

	manager := &Manager{
		config:       config,
		catalog:      catalog,
		VizDB:        client,
		logger:       logger,
		snapshots:    make(map[string]*Snapshot, len(catalog.Datasets)),
		startedAt:    time.Now(),
		shutdownChan: make(chan struct{}),
	}

	g, ctx := errgroup.WithContext(context.Background())
	for _, cfg := range catalog.Datasets {
		g.Go(func() error {
			manager.loadDataset(ctx, cfg)
			return nil
		})
	}
	_ = g.Wait() // individual load failures are recorded per dataset

	if config.RefreshInterval > 0 && manager.hasRemoteSources() {
		manager.wg.Add(1)
		go manager.refreshPeriodically()
	}

	return manager, nil
}

// Shutdown gracefully shuts down the manager and its background goroutines
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		close(manager.shutdownChan)
		manager.wg.Wait()
		logging.SafeCloseWithLogging(manager.VizDB, manager.logger, "vizdb_close")
	})
}

// loadDataset fetches, parses, and stores one dataset, then records the
// outcome in both the snapshot map and the dataset_loads table.
func (manager *Manager) loadDataset(ctx context.Context, cfg DatasetConfig) {
	start := time.Now()

	records, skipped, err := manager.fetchAndStore(ctx, cfg)
	if err != nil {
		manager.markUnavailable(ctx, cfg, err)
		return
	}

	manager.setSnapshot(&Snapshot{
		Config:        cfg,
		Status:        StatusReady,
		RecordCount:   records,
		SkippedRows:   skipped,
		LastRefreshed: time.Now(),
	})

	if err := manager.VizDB.RecordLoad(ctx, vizdb.DatasetLoad{
		DatasetID:   cfg.ID,
		Source:      cfg.Source,
		Status:      StatusReady,
		RecordCount: records,
		SkippedRows: skipped,
		LoadedAt:    time.Now().UTC(),
	}); err != nil {
		logging.LogError(manager.logger, "failed to record dataset load", err,
			slog.String("dataset", cfg.ID))
	}

	if skipped > 0 {
		manager.logger.Warn("skipped malformed rows",
			"dataset", cfg.ID,
			"skipped", skipped)
	}

	logging.LogOperation(manager.logger, "dataset_loaded",
		slog.String("dataset", cfg.ID),
		slog.Int("records", records),
		slog.Int("skipped", skipped),
		slog.Duration("duration", time.Since(start)))
}

// fetchAndStore returns the stored record count and the number of skipped
// rows. A dataset that yields zero usable rows is treated as unavailable.
func (manager *Manager) fetchAndStore(ctx context.Context, cfg DatasetConfig) (int, int, error) {
	b, err := rawData(cfg.Source, IsLocalSource(cfg.Source))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	tbl, err := parseTable(b)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	switch cfg.Kind {
	case KindAnnual:
		payments, skipped, err := parseAnnualSeries(tbl, cfg)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}
		if len(payments) == 0 {
			return 0, skipped, fmt.Errorf("%w: no usable rows", ErrDataUnavailable)
		}
		if err := manager.VizDB.ReplaceDebtService(ctx, payments); err != nil {
			return 0, 0, err
		}
		return len(payments), skipped, nil
	case KindMonthly:
		months, skipped, err := parseMonthlyCounts(tbl, cfg)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}
		if len(months) == 0 {
			return 0, skipped, fmt.Errorf("%w: no usable rows", ErrDataUnavailable)
		}
		if err := manager.VizDB.ReplaceHepatitisCases(ctx, months); err != nil {
			return 0, 0, err
		}
		return len(months), skipped, nil
	default:
		return 0, 0, fmt.Errorf("unknown dataset kind %q", cfg.Kind)
	}
}

func (manager *Manager) markUnavailable(ctx context.Context, cfg DatasetConfig, cause error) {
	manager.setSnapshot(&Snapshot{
		Config:        cfg,
		Status:        StatusUnavailable,
		Err:           cause,
		LastRefreshed: time.Now(),
	})

	if err := manager.VizDB.RecordLoad(ctx, vizdb.DatasetLoad{
		DatasetID: cfg.ID,
		Source:    cfg.Source,
		Status:    StatusUnavailable,
		LoadedAt:  time.Now().UTC(),
	}); err != nil {
		logging.LogError(manager.logger, "failed to record dataset load", err,
			slog.String("dataset", cfg.ID))
	}

	logging.LogError(manager.logger, "failed to load dataset", cause,
		slog.String("dataset", cfg.ID),
		slog.String("source", cfg.Source))
}

func (manager *Manager) setSnapshot(snapshot *Snapshot) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	// A failed refresh must not clobber data that is already being served.
	if previous, ok := manager.snapshots[snapshot.Config.ID]; ok &&
		previous.Status == StatusReady && snapshot.Status == StatusUnavailable {
		return
	}
	manager.snapshots[snapshot.Config.ID] = snapshot
}

// refreshPeriodically re-fetches remote sources on the configured interval.
// Local files are loaded once at startup and never refreshed.
func (manager *Manager) refreshPeriodically() {
	defer manager.wg.Done()

	ticker := time.NewTicker(manager.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, cfg := range manager.catalog.Datasets {
				if IsLocalSource(cfg.Source) {
					continue
				}
				ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
				manager.loadDataset(ctx, cfg)
				cancel()
			}
		case <-manager.shutdownChan:
			manager.logger.Info("shutting down dataset refresh")
			return
		}
	}
}

func (manager *Manager) hasRemoteSources() bool {
	for _, cfg := range manager.catalog.Datasets {
		if !IsLocalSource(cfg.Source) {
			return true
		}
	}
	return false
}

// Datasets returns the catalog entries in declaration order.
func (manager *Manager) Datasets() []DatasetConfig {
	return manager.catalog.Datasets
}

// Lookup finds a catalog entry by dataset id.
func (manager *Manager) Lookup(id string) (DatasetConfig, bool) {
	for _, cfg := range manager.catalog.Datasets {
		if cfg.ID == id {
			return cfg, true
		}
	}
	return DatasetConfig{}, false
}

// SnapshotFor returns the last load snapshot for the given dataset id.
func (manager *Manager) SnapshotFor(id string) (Snapshot, bool) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	snapshot, ok := manager.snapshots[id]
	if !ok {
		return Snapshot{}, false
	}
	return *snapshot, true
}

// Summaries returns one DatasetSummary per catalog entry, in catalog order.
func (manager *Manager) Summaries() []models.DatasetSummary {
	summaries := make([]models.DatasetSummary, 0, len(manager.catalog.Datasets))
	for _, cfg := range manager.catalog.Datasets {
		summary := models.DatasetSummary{
			ID:     cfg.ID,
			Title:  cfg.Title,
			Source: cfg.Source,
			Status: StatusUnavailable,
		}
		if snapshot, ok := manager.SnapshotFor(cfg.ID); ok {
			summary.Status = snapshot.Status
			summary.RecordCount = snapshot.RecordCount
			summary.SkippedRows = snapshot.SkippedRows
			summary.LastRefreshed = snapshot.LastRefreshed.UnixMilli()
			if snapshot.Err != nil {
				summary.Error = snapshot.Err.Error()
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// Uptime reports how long the manager has been running.
func (manager *Manager) Uptime() time.Duration {
	return time.Since(manager.startedAt)
}
