package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/config"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/engine"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/policy"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/service"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/soxcheck/soxcheck.db"
	}

	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadPolicy loads the validation policy and approval matrix from the
// configuration file.
func loadPolicy() (policy.Config, *policy.ApprovalMatrix, error) {
	cfg := policy.FromViper(viper.GetViper())
	if err := cfg.Validate(); err != nil {
		return policy.Config{}, nil, err
	}

	matrix, err := policy.MatrixFromViper(viper.GetViper())
	if err != nil {
		return policy.Config{}, nil, err
	}

	return cfg, matrix, nil
}

// resolveBatch loads either the batch named by id or the most recent run.
func resolveBatch(ctx context.Context, store service.Storage, id string) (*model.ValidatedBatch, error) {
	if id != "" {
		return store.GetBatch(ctx, id)
	}
	return store.GetLatestBatch(ctx)
}

// buildPredicate assembles the report filter from flag values.
func buildPredicate(memoID, status, risk string) (engine.Predicate, error) {
	predicate := engine.Predicate{MemoID: memoID}

	if status != "" {
		parsed, ok := model.ParseSOXStatus(status)
		if !ok {
			return engine.Predicate{}, fmt.Errorf("invalid status %q (use compliant or violation)", status)
		}
		predicate.SOXStatus = &parsed
	}

	if risk != "" {
		parsed, ok := model.ParseRiskLevel(risk)
		if !ok {
			return engine.Predicate{}, fmt.Errorf("invalid risk level %q (use low, medium, or high)", risk)
		}
		predicate.RiskLevel = &parsed
	}

	return predicate, nil
}
