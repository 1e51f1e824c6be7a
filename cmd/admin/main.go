package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"centavo/internal/domain/backup"
	"centavo/internal/domain/payment"
	"centavo/internal/domain/pin"
	"centavo/internal/infrastructure/postgres"
	"centavo/internal/shared/config"
)

const usage = `Centavo Admin CLI - Management commands for the Centavo API

Usage:
  admin <command> [options]

Commands:
  materialize   Run due-occurrence materialization now
  export        Write a backup document to a JSON file
  import        Restore a backup document from a JSON file
  set-pin       Set the app lock PIN

Examples:
  # Realize all due recurring occurrences
  admin materialize

  # Export everything to a file
  admin export --file=backup.json

  # Restore from a file
  admin import --file=backup.json

  # Set the app lock PIN
  admin set-pin --pin=1234
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	godotenv.Load()

	command := os.Args[1]

	switch command {
	case "materialize":
		runMaterialize(os.Args[2:])
	case "export":
		runExport(os.Args[2:])
	case "import":
		runImport(os.Args[2:])
	case "set-pin":
		runSetPin(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}

func connect() (*postgres.DB, context.Context, context.CancelFunc) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	return db, ctx, cancel
}

func runMaterialize(args []string) {
	fs := flag.NewFlagSet("materialize", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	db, ctx, cancel := connect()
	defer cancel()
	defer db.Close()

	materializer := payment.NewMaterializer(
		postgres.NewPaymentRepository(db),
		postgres.NewRuleRepository(db),
		postgres.NewTransactionRepository(db),
		time.Now,
	)

	startTime := time.Now()
	result, err := materializer.Run(ctx)
	if err != nil {
		log.Fatalf("Materialization failed: %v", err)
	}

	fmt.Printf("\n=== Materialization ===\n")
	fmt.Printf("  Payments checked:     %d\n", result.PaymentsChecked)
	fmt.Printf("  Occurrences due:      %d\n", result.OccurrencesDue)
	fmt.Printf("  Transactions created: %d\n", result.TransactionsCreated)
	for _, e := range result.Errors {
		fmt.Printf("    - %s\n", e)
	}

	log.Printf("Materialization completed in %v", time.Since(startTime))
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	file := fs.String("file", "centavo-backup.json", "Output file path")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	db, ctx, cancel := connect()
	defer cancel()
	defer db.Close()

	svc := newBackupService(db)

	doc, err := svc.Export(ctx)
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode backup: %v", err)
	}
	if err := os.WriteFile(*file, data, 0o600); err != nil {
		log.Fatalf("Failed to write %s: %v", *file, err)
	}

	log.Printf("Backup written to %s (payments=%d transactions=%d)", *file, len(doc.Payments), len(doc.Transactions))
}

func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "Backup file to restore")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *file == "" {
		fmt.Println("Error: must specify --file")
		os.Exit(1)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *file, err)
	}

	var doc backup.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Fatalf("Failed to parse backup: %v", err)
	}

	db, ctx, cancel := connect()
	defer cancel()
	defer db.Close()

	svc := newBackupService(db)

	result, err := svc.Import(ctx, &doc)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	fmt.Printf("\n=== Restore ===\n")
	fmt.Printf("  Payments:     %d\n", result.Payments)
	fmt.Printf("  Rules:        %d\n", result.Rules)
	fmt.Printf("  Transactions: %d\n", result.Transactions)
}

func runSetPin(args []string) {
	fs := flag.NewFlagSet("set-pin", flag.ExitOnError)
	pinValue := fs.String("pin", "", "New PIN (4 to 8 digits)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *pinValue == "" {
		fmt.Println("Error: must specify --pin")
		os.Exit(1)
	}

	db, ctx, cancel := connect()
	defer cancel()
	defer db.Close()

	svc := pin.NewService(postgres.NewPinRepository(db), time.Now)
	if err := svc.SetPIN(ctx, *pinValue); err != nil {
		log.Fatalf("Failed to set PIN: %v", err)
	}

	log.Println("PIN updated")
}

func newBackupService(db *postgres.DB) *backup.Service {
	return backup.NewService(
		postgres.NewPaymentRepository(db),
		postgres.NewRuleRepository(db),
		postgres.NewTransactionRepository(db),
		postgres.NewSettingsRepository(db),
		time.Now,
	)
}
