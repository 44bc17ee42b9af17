package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	assetPostgres "github.com/Boateng555/assettrack-harren/internal/asset/postgres"
	"github.com/Boateng555/assettrack-harren/internal/core/events"
	"github.com/Boateng555/assettrack-harren/internal/directory"
	"github.com/Boateng555/assettrack-harren/internal/dirsync"
	employeePostgres "github.com/Boateng555/assettrack-harren/internal/employee/postgres"
	"github.com/Boateng555/assettrack-harren/pkg/logger"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	syncEmployeesOnly   bool
	syncDevicesOnly     bool
	syncAssignmentsOnly bool
	syncCleanupOnly     bool
	syncSummaryOnly     bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the registry against the corporate directory",
	Long: `Pull identities and managed devices from the directory service and
reconcile the local employee and asset registry against them. Without
flags a full run executes all passes in order.`,
	Run: func(cmd *cobra.Command, args []string) {
		runSyncCommand()
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncEmployeesOnly, "employees-only", false, "Only reconcile employees and their devices")
	syncCmd.Flags().BoolVar(&syncDevicesOnly, "devices-only", false, "Only reconcile the standalone device inventory")
	syncCmd.Flags().BoolVar(&syncAssignmentsOnly, "assignments-only", false, "Only repair assignment links")
	syncCmd.Flags().BoolVar(&syncCleanupOnly, "cleanup-only", false, "Only release assets from departed employees")
	syncCmd.Flags().BoolVar(&syncSummaryOnly, "summary", false, "Print registry/directory counts and exit")
}

func runSyncCommand() {
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	if !cfg.Directory.HasCredentials() {
		fmt.Fprintln(os.Stderr, "directory credentials are not configured")
		os.Exit(1)
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		log.Fatalf("failed to init db: %v", err)
	}
	defer db.Close()

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init orm: %v", err)
	}

	dirClient := directory.NewClient(directory.Config{
		TenantID:       cfg.Directory.TenantID,
		ClientID:       cfg.Directory.ClientID,
		ClientSecret:   cfg.Directory.ClientSecret,
		BaseURL:        cfg.Directory.BaseURL,
		LoginURL:       cfg.Directory.LoginURL,
		RequestTimeout: cfg.Directory.RequestTimeout,
		PageSize:       cfg.Directory.PageSize,
	}, lg)

	service := dirsync.NewService(
		dirClient,
		employeePostgres.NewEmployeeRepository(gormDB),
		assetPostgres.NewAssetRepository(gormDB),
		events.NewEventBus(lg),
		cfg.Sync.CompanyDomain,
		lg,
	)

	ctx := context.Background()
	if cfg.Sync.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Sync.RunTimeout)
		defer cancel()
	}

	if syncSummaryOnly {
		summary, err := service.Summary(ctx)
		if err != nil {
			log.Fatalf("summary failed: %v", err)
		}
		printSummary(summary)
		return
	}

	var report *dirsync.Report
	switch {
	case syncEmployeesOnly:
		report, err = service.SyncEmployees(ctx)
	case syncDevicesOnly:
		report, err = service.SyncDevices(ctx)
	case syncAssignmentsOnly:
		report, err = service.SyncAssignments(ctx)
	case syncCleanupOnly:
		report, err = service.CleanupOrphans(ctx)
	default:
		report, err = service.FullSync(ctx)
	}

	if report != nil {
		printReport(report)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "sync aborted: %v\n", err)
		os.Exit(1)
	}
	if report != nil && len(report.Errors) > 0 {
		os.Exit(2)
	}
}

func printReport(r *dirsync.Report) {
	fmt.Println("Reconciliation report")
	fmt.Printf("  started:  %s\n", r.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  finished: %s\n", r.FinishedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  employees:   %d created, %d updated, %d disabled, %d deleted\n",
		r.EmployeesCreated, r.EmployeesUpdated, r.EmployeesDisabled, r.EmployeesDeleted)
	fmt.Printf("  user devices:       %d synced, %d assigned\n", r.UserDevicesSynced, r.UserDevicesAssigned)
	fmt.Printf("  standalone devices: %d synced, %d updated\n", r.StandaloneDevicesSynced, r.StandaloneDevicesUpdated)
	fmt.Printf("  assignments repaired: %d\n", r.AssignmentsUpdated)
	fmt.Printf("  assets released:      %d\n", r.AssetsCleanedUp)
	for _, listing := range r.TruncatedListings {
		fmt.Printf("  WARNING: listing truncated: %s\n", listing)
	}
	if len(r.Errors) > 0 {
		fmt.Printf("  errors: %d\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("    [%s] %s %s: %s\n", e.Kind, e.Entity, e.Ref, e.Message)
		}
	}
}

func printSummary(s *dirsync.Summary) {
	fmt.Println("Registry summary")
	if s.RemoteIdentities >= 0 {
		fmt.Printf("  directory identities: %d\n", s.RemoteIdentities)
	} else {
		fmt.Println("  directory identities: unavailable")
	}
	fmt.Printf("  employees: %d total, %d synced, %d active, %d inactive, %d deleted\n",
		s.LocalEmployees, s.SyncedEmployees, s.ActiveEmployees, s.InactiveEmployees, s.DeletedEmployees)
	fmt.Printf("  assets:    %d total, %d assigned, %d available\n",
		s.TotalAssets, s.AssignedAssets, s.AvailableAssets)
}
