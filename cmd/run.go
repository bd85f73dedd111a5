package cmd

import (
	"context"
	"fmt"

	"craftwarden/core/catalog"
	"craftwarden/core/config"
	"craftwarden/core/database"
	"craftwarden/core/engine"
	"craftwarden/core/logger"
	"craftwarden/core/network/bridge"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runLearn bool

// runCmd executes a single full reconciliation cycle and exits. Useful
// for cron-style setups and for testing a configuration without
// starting the daemon.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one full reconciliation cycle and exit",
	Long: `Runs a single full cycle: match the catalog against the network
inventory, dispatch crafting jobs for missing quantities, persist any
catalog changes, then exit.

Dispatched jobs keep running on the network; a later cycle (or the
daemon) picks up their completion.`,
	RunE: runOnce,
}

func init() {
	runCmd.Flags().BoolVar(&runLearn, "learn", false, "Add catalog entries for craftable items seen in inventory")
	RootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to catalog database: %w", err)
	}
	store, err := catalog.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to prepare catalog store: %w", err)
	}
	cat, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	client, err := bridge.New(cfg.Bridge)
	if err != nil {
		return fmt.Errorf("failed to create bridge client: %w", err)
	}

	eng := engine.New(l, cat, engine.Backend{
		Inventory: client,
		Pool:      client,
		Patterns:  client,
		Submitter: client,
	}, cfg.Warden)

	if err := eng.RunFull(ctx, runLearn); err != nil {
		return err
	}
	if eng.Dirty() {
		if err := store.Save(cat); err != nil {
			return fmt.Errorf("failed to persist catalog: %w", err)
		}
		eng.ClearDirty()
	}

	snap := eng.Snapshot()
	l.Info("Cycle finished",
		zap.Duration("elapsed", snap.Status.CycleDuration),
		zap.Int("recipes", len(snap.Recipes)),
		zap.Int("errors", snap.Status.Errors),
		zap.Int("crafting", snap.Status.Crafting),
		zap.Int("queued", snap.Status.Queued))
	return nil
}
