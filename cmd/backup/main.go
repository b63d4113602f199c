package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"hueareyou/internal/config"
	"hueareyou/internal/database"
	"hueareyou/internal/service"
)

func main() {
	// Define subcommands
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)

	// Export flags
	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")

	// Import flags
	importInput := importCmd.String("input", "", "Input file path (required)")
	importClear := importCmd.Bool("clear", false, "Clear existing data before import (WARNING: destructive)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(ctx, cfg.MigrationsPath); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	backupService := service.NewBackupService(db, logger)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		err = handleExport(ctx, backupService, *exportOutput, logger)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		err = handleImport(ctx, backupService, *importInput, *importClear, logger)

	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Fatal("backup failed", zap.Error(err))
	}
}

func handleExport(ctx context.Context, backupService *service.BackupService, outputPath string, logger *zap.Logger) error {
	// Generate default filename if not provided
	if outputPath == "" {
		outputPath = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := backupService.Export(ctx, outputPath); err != nil {
		return err
	}

	if info, err := os.Stat(outputPath); err == nil {
		logger.Info("export complete", zap.String("path", outputPath), zap.Int64("bytes", info.Size()))
	}
	return nil
}

func handleImport(ctx context.Context, backupService *service.BackupService, inputPath string, clearData bool, logger *zap.Logger) error {
	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file: %w", err)
	}

	if clearData {
		fmt.Print("WARNING: This will delete all existing data. Type 'yes' to confirm: ")
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(answer) != "yes" {
			logger.Info("import cancelled")
			return nil
		}
		if err := backupService.Clear(ctx); err != nil {
			return err
		}
	}

	return backupService.Import(ctx, inputPath)
}

func printUsage() {
	fmt.Println("Hue Are You Database Backup Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  backup export [options]    Export users and records to a JSON file")
	fmt.Println("  backup import [options]    Import users and records from a JSON file")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println("  -clear            Clear existing data before import (WARNING: destructive)")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DB_TYPE          Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./hueareyou.db)")
	fmt.Println("  DATABASE_URL     Connection string for postgres or mysql")
}
