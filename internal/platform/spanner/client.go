// Package spanner provides Cloud Spanner client initialization.
package spanner

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// Config holds Spanner connection configuration.
type Config struct {
	ProjectID  string
	InstanceID string
	DatabaseID string

	// MinSessions and MaxSessions bound the session pool. Zero values keep
	// the client library defaults.
	MinSessions uint64
	MaxSessions uint64
}

// DSN returns the Spanner database connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("projects/%s/instances/%s/databases/%s",
		c.ProjectID, c.InstanceID, c.DatabaseID)
}

// NewClient creates a new Spanner client from config.
// The caller is responsible for closing the client when done.
func NewClient(ctx context.Context, cfg Config) (*spanner.Client, error) {
	clientCfg := spanner.ClientConfig{}
	if cfg.MinSessions > 0 {
		clientCfg.SessionPoolConfig.MinOpened = cfg.MinSessions
	}
	if cfg.MaxSessions > 0 {
		clientCfg.SessionPoolConfig.MaxOpened = cfg.MaxSessions
	}

	client, err := spanner.NewClientWithConfig(ctx, cfg.DSN(), clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create spanner client: %w", err)
	}
	return client, nil
}
