package main

import (
	"fmt"
	"os"

	"audiorr/internal/cfg"
	"audiorr/internal/database/db"
	"audiorr/internal/domain/setup"
	"audiorr/internal/repo"
	"audiorr/internal/utils/logging"
)

// initializeApplication sets up the application for the current run.
func initializeApplication() (store *repo.Store, database *db.Database, err error) {

	// Setup files/dirs
	if err := setup.InitCfgFilesDirs(); err != nil {
		fmt.Printf("Audiorr exiting: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nMain Audiorr file/dir locations:\n\nDatabase: %s\nLog file: %s\n\n",
		setup.DBFilePath, setup.LogFilePath)

	// Setup Audiorr logging
	if err := logging.SetupLogging(setup.CfgDir); err != nil {
		fmt.Printf("\n\nNotice: Log file was not created\nReason: %s\n\n", err)
	}

	// Database & stores
	database, err = db.InitDB(setup.DBFilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	store = repo.InitStores(database.DB)

	// Commands & flags
	if err := cfg.InitCommands(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize commands: %w", err)
	}

	return store, database, nil
}
