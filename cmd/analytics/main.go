package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/authlens/change-analytics/internal/demo"
	"github.com/authlens/change-analytics/internal/domain/change"
	"github.com/authlens/change-analytics/internal/infrastructure/config"
	"github.com/authlens/change-analytics/internal/service/analytics"
	"github.com/authlens/change-analytics/internal/service/export"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to configuration file")
		outDir     = flag.String("out", ".", "Directory for exported CSV files")
		days       = flag.Int("days", 0, "Days of history to analyze (0 uses the configured default)")
		seed       = flag.Int("seed", 1, "Seed for the generated dataset")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	rangeDays := *days
	if rangeDays <= 0 {
		rangeDays = cfg.Analytics.DefaultRangeDays
	}

	now := time.Now().UTC()
	opts := demo.DefaultOptions(now)
	opts.Seed = int64(*seed)
	snapshot := demo.GenerateSnapshot(opts)
	if err := snapshot.Validate(); err != nil {
		logger.Fatal("generated snapshot failed validation", zap.Error(err))
	}

	dateRange := change.LastNDays(now, rangeDays)
	svc := analytics.NewService(logger)

	result, err := svc.Query(&analytics.QueryRequest{
		Snapshot: snapshot,
		Criteria: analytics.Criteria{DateRange: &dateRange},
	})
	if err != nil {
		logger.Fatal("analytics query failed", zap.Error(err))
	}

	digest := analytics.Digest(snapshot.Events, dateRange)
	logger.Info("analyzed change history",
		zap.Int("days", rangeDays),
		zap.Int("rows", len(result.Rows)),
		zap.Int("buckets", len(result.DayBuckets)),
		zap.Int("added", digest.AddedTotal),
		zap.Int("removed", digest.RemovedTotal),
	)

	for _, summary := range result.DataSourceSummaries {
		logger.Info("data source activity",
			zap.String("source", summary.DataSource),
			zap.String("icon", cfg.DisplayFor(summary.DataSource).Icon),
			zap.Int("total", summary.Total),
			zap.Int("percentage", summary.Percentage),
		)
	}

	changesDoc := export.ChangeEventsCSV(result.Rows, snapshot.Authorizations, change.SubjectPermission, export.Options{
		IncludeAdded:   true,
		IncludeRemoved: true,
		DateRange:      &dateRange,
		Now:            now,
	})
	authsDoc := export.AuthorizationsCSV(snapshot.Authorizations, now)

	for _, doc := range []export.Document{changesDoc, authsDoc} {
		path := filepath.Join(*outDir, doc.Filename)
		if err := os.WriteFile(path, []byte(doc.Text), 0o644); err != nil {
			logger.Fatal("failed to write export", zap.String("path", path), zap.Error(err))
		}
		logger.Info("wrote export", zap.String("path", path))
	}
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
