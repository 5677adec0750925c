package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rice-crc/daastapi/internal/config"
	"github.com/rice-crc/daastapi/internal/infra/database"
	"github.com/rice-crc/daastapi/internal/infra/gateway"
	"github.com/rice-crc/daastapi/internal/infra/repository"
	"github.com/rice-crc/daastapi/internal/service"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "daastctl",
		Short: "Operational commands for the document catalog",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the configuration file")

	root.AddCommand(newImportCmd())
	root.AddCommand(newSeedCmd())
	root.AddCommand(newGenerateManifestsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newImportCmd() *cobra.Command {
	var (
		voyagesURL      string
		voyagesKey      string
		zoteroURL       string
		zoteroKey       string
		zoteroGroupName string
		zoteroUserID    string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Fetch data from the external APIs and consolidate it into local documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(configPath)
			if err != nil {
				return err
			}

			// Flags override the configuration file.
			if voyagesURL != "" {
				conf.Importer.VoyagesURL = voyagesURL
			}
			if voyagesKey != "" {
				conf.Importer.VoyagesKey = voyagesKey
			}
			if zoteroURL != "" {
				conf.Importer.ZoteroURL = zoteroURL
			}
			if zoteroKey != "" {
				conf.Importer.ZoteroKey = zoteroKey
			}
			if zoteroGroupName != "" {
				conf.Importer.ZoteroGroupName = zoteroGroupName
			}
			if zoteroUserID != "" {
				conf.Importer.ZoteroUserID = zoteroUserID
			}

			db, err := database.NewPostgres(conf.Server.PostgresDsn)
			if err != nil {
				return err
			}
			if err := database.MigratePostgres(db); err != nil {
				return err
			}

			var signal *service.SignalService
			if conf.Server.RedisAddr != "" {
				signal = service.NewSignalService(database.NewRedis(
					conf.Server.RedisAddr, conf.Server.RedisPassword, conf.Server.RedisDB))
			}

			importer := service.NewImporter(
				conf.Importer,
				gateway.NewZoteroClient(conf.Importer.ZoteroURL, conf.Importer.ZoteroKey, conf.Importer.ZoteroUserID),
				gateway.NewVoyagesClient(conf.Importer.VoyagesURL, conf.Importer.VoyagesKey),
				repository.NewDocumentRepository(db),
				signal,
			)
			return importer.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&voyagesURL, "voyages-url", "", "Voyages API base URL")
	cmd.Flags().StringVar(&voyagesKey, "voyages-key", "", "Voyages API token")
	cmd.Flags().StringVar(&zoteroURL, "zotero-url", "", "Zotero API base URL")
	cmd.Flags().StringVar(&zoteroKey, "zotero-key", "", "Zotero API key")
	cmd.Flags().StringVar(&zoteroGroupName, "zotero-groupname", "", "Zotero group holding the document library")
	cmd.Flags().StringVar(&zoteroUserID, "zotero-userid", "", "Zotero user id owning the group")

	return cmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-entity-types",
		Short: "Insert the entity types used by this project",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(configPath)
			if err != nil {
				return err
			}
			db, err := database.NewPostgres(conf.Server.PostgresDsn)
			if err != nil {
				return err
			}
			if err := database.MigratePostgres(db); err != nil {
				return err
			}
			return database.SeedEntityTypes(db)
		},
	}
}

func newGenerateManifestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate-manifests <outDir> [status...]",
		Short: "Generate IIIF manifest files for revisions marked for publication",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// TODO:
			// 1. Query the revisions that match the status filter.
			// 2. Enumerate files at the output directory, to determine which
			//    of the manifests, if any, is no longer wanted.
			// 3. Compute hashes of the manifests and use them to set an etag
			//    on the Document.
			return fmt.Errorf("generate-manifests is not implemented yet")
		},
	}
}
