package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"craftwarden/core/catalog"
	"craftwarden/core/config"
	"craftwarden/core/database"
	"craftwarden/core/item"
	"craftwarden/core/logger"
	"craftwarden/core/storage"
	"craftwarden/feature/backup"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for recipes set
	recipeDamage        int
	recipeIdentityLabel string
	recipeLabel         string
	recipeWanted        int
)

// recipesCmd is the parent command for offline catalog edits. The
// daemon must not be running against the same database while these run;
// use the HTTP API for live edits.
var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Inspect and edit the recipe catalog",
}

var recipesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog entries",
	RunE:  runRecipesList,
}

var recipesSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Create or update a catalog entry",
	Long: `Create or update a catalog entry.

Examples:
  # Keep 256 torches stocked
  recipes set minecraft:torch --wanted 256

  # Distinguish items by display label (e.g. enchanted books)
  recipes set minecraft:enchanted_book --identity-label "Mending I" --wanted 4`,
	Args: cobra.ExactArgs(1),
	RunE: runRecipesSet,
}

var recipesRemoveCmd = &cobra.Command{
	Use:   "remove <key>",
	Short: "Remove a catalog entry by key (e.g. minecraft:torch:0)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecipesRemove,
}

var recipesRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace the catalog with the most recent backup",
	RunE:  runRecipesRestore,
}

func init() {
	recipesSetCmd.Flags().IntVar(&recipeDamage, "damage", 0, "Item damage value")
	recipesSetCmd.Flags().StringVar(&recipeIdentityLabel, "identity-label", "", "Label used to tell apart items sharing name and damage")
	recipesSetCmd.Flags().StringVar(&recipeLabel, "label", "", "Display name (defaults to the item name)")
	recipesSetCmd.Flags().IntVar(&recipeWanted, "wanted", 0, "Desired stored quantity")

	recipesCmd.AddCommand(recipesListCmd)
	recipesCmd.AddCommand(recipesSetCmd)
	recipesCmd.AddCommand(recipesRemoveCmd)
	recipesCmd.AddCommand(recipesRestoreCmd)
	RootCmd.AddCommand(recipesCmd)
}

// openStore loads config and opens the catalog store for offline edits.
func openStore() (*config.Config, *catalog.Store, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to catalog database: %w", err)
	}
	store, err := catalog.NewStore(db)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to prepare catalog store: %w", err)
	}
	return cfg, store, nil
}

func runRecipesList(cmd *cobra.Command, args []string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}
	cat, err := store.Load()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tLABEL\tWANTED")
	for _, r := range cat.Recipes() {
		fmt.Fprintf(w, "%s\t%s\t%d\n", r.Key(), r.Label, r.Wanted)
	}
	return w.Flush()
}

func runRecipesSet(cmd *cobra.Command, args []string) error {
	if recipeWanted < 0 {
		return fmt.Errorf("wanted must not be negative")
	}

	_, store, err := openStore()
	if err != nil {
		return err
	}
	cat, err := store.Load()
	if err != nil {
		return err
	}

	id := item.Identity{Name: args[0], Damage: recipeDamage, Label: recipeIdentityLabel}
	if existing := cat.Find(id.Key()); existing != nil {
		existing.Wanted = recipeWanted
		if recipeLabel != "" {
			existing.Label = recipeLabel
		}
	} else {
		label := recipeLabel
		if label == "" {
			label = args[0]
		}
		cat.Add(&catalog.Recipe{Identity: id, Label: label, Wanted: recipeWanted})
	}

	if err := store.Save(cat); err != nil {
		return err
	}
	fmt.Printf("%s: wanted %d\n", id.Key(), recipeWanted)
	return nil
}

func runRecipesRemove(cmd *cobra.Command, args []string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}
	cat, err := store.Load()
	if err != nil {
		return err
	}

	if err := cat.Remove(args[0]); err != nil {
		return err
	}
	if err := store.Save(cat); err != nil {
		return err
	}
	fmt.Printf("%s: removed\n", args[0])
	return nil
}

func runRecipesRestore(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, store, err := openStore()
	if err != nil {
		return err
	}
	if !cfg.Storage.Enabled {
		return fmt.Errorf("storage is not enabled; nothing to restore from")
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	svc := backup.NewService(client, cfg.Storage.Bucket, cfg.Storage.Keep, l)
	records, err := svc.Restore(ctx)
	if err != nil {
		return err
	}

	cat := catalog.New()
	for _, rec := range records {
		cat.Add(&catalog.Recipe{
			Identity: item.Identity{Name: rec.Name, Damage: rec.Damage, Label: rec.IdentityLabel},
			Label:    rec.Label,
			Wanted:   rec.Wanted,
		})
	}
	if err := store.Save(cat); err != nil {
		return err
	}

	l.Info("Catalog restored from backup", zap.Int("recipes", cat.Len()))
	return nil
}
