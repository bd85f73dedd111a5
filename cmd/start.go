package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"craftwarden/core/catalog"
	"craftwarden/core/config"
	"craftwarden/core/database"
	"craftwarden/core/engine"
	"craftwarden/core/loader"
	"craftwarden/core/logger"
	"craftwarden/core/middleware/auth"
	"craftwarden/core/middleware/rayid"
	"craftwarden/core/network/bridge"
	"craftwarden/core/storage"

	"craftwarden/feature/backup"
	"craftwarden/feature/status"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the craftwarden daemon",
	Long: `Starts the reconciliation scheduler and the HTTP status API.
The daemon runs until interrupted or until a cycle hits a fatal
backend error.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database and load the catalog
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to catalog database", zap.Error(err))
		}
		store, err := catalog.NewStore(db)
		if err != nil {
			logg.Fatal("Failed to prepare catalog store", zap.Error(err))
		}
		if err := database.VerifyTable(db, "recipes", catalog.RequiredColumns); err != nil {
			logg.Fatal("Catalog schema verification failed", zap.Error(err))
		}
		cat, err := store.Load()
		if err != nil {
			logg.Fatal("Failed to load catalog", zap.Error(err))
		}
		logg.Info("Catalog loaded", zap.Int("recipes", cat.Len()))

		// 4. Connect to the bridge
		client, err := bridge.New(cfg.Bridge)
		if err != nil {
			logg.Fatal("Failed to create bridge client", zap.Error(err))
		}
		backendIfaces := engine.Backend{
			Inventory: client,
			Pool:      client,
			Patterns:  client,
			Submitter: client,
		}

		// 5. Engine and scheduler
		eng := engine.New(logg, cat, backendIfaces, cfg.Warden)
		sched := engine.NewScheduler(eng, store, logg, cfg.Warden)

		// 6. Optional catalog backups
		var backupFeature *backup.Feature
		if cfg.Storage.Enabled {
			storageClient, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			backupFeature = backup.NewFeature(storageClient, cfg.Storage, logg)
			svc := backupFeature.Service()
			sched.OnPersist(func(ctx context.Context, records []catalog.RecipeRecord) {
				// A failed backup must not take down the scheduler.
				if err := svc.Backup(ctx, records); err != nil {
					logg.Error("Catalog backup failed", zap.Error(err))
				}
			})
		}

		// 7. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// Middleware: ray id first so everything downstream can trace.
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})
		app.Use(auth.New(cfg.Server.ApiKey))

		// 8. Load Features
		mgr := loader.NewManager()
		mgr.Register(status.NewFeature(eng, sched, logg))
		if backupFeature != nil {
			mgr.Register(backupFeature)
		}
		if err := mgr.LoadAll(app, logg); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Start scheduler and server
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		schedDone := make(chan error, 1)
		go func() {
			schedDone <- sched.Run(ctx)
		}()

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Run until a signal or a fatal scheduler error
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		select {
		case <-sig:
			logg.Info("Shutting down...")
			cancel()
			<-schedDone
			_ = app.Shutdown()
		case err := <-schedDone:
			_ = app.Shutdown()
			if err != nil {
				logg.Fatal("Scheduler aborted", zap.Error(err))
			}
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
