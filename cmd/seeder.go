package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlxDB.Close()

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			if err := db.Exec("DELETE FROM assets").Error; err != nil {
				log.Fatalf("failed to clear assets: %v", err)
			}
			if err := db.Exec("DELETE FROM employees").Error; err != nil {
				log.Fatalf("failed to clear employees: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		employees := []struct {
			Name       string
			Email      string
			Department string
			Office     string
		}{
			{"Anna Petersen", "anna.petersen@harren-group.com", "Fleet Management", "hamburg"},
			{"Jonas Weber", "jonas.weber@harren-group.com", "IT", "bernem"},
			{"Maria Silva", "maria.silva@contractor.example", "External", "other"},
		}

		employeeIDs := make(map[string]string, len(employees))
		for _, e := range employees {
			var exists int
			row := db.Raw("SELECT 1 FROM employees WHERE email = ?", e.Email).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("employee %s already exists; skipping\n", e.Email)
				continue
			}

			id := uuid.New().String()
			employeeIDs[e.Email] = id
			if err := db.Exec(
				"INSERT INTO employees (id, name, email, department, status, office_location, created_at, updated_at) VALUES (?, ?, ?, ?, 'active', ?, now(), now())",
				id, e.Name, e.Email, e.Department, e.Office,
			).Error; err != nil {
				log.Fatalf("failed to insert employee %s: %v", e.Email, err)
			}
			fmt.Println("Seeded employee:", e.Email)
		}

		purchase := time.Now().AddDate(-1, 0, 0).Format("2006-01-02")
		assets := []struct {
			Name       string
			Type       string
			Serial     string
			OwnerEmail string
		}{
			{"Anna's Laptop", "laptop", "SEED-LT-0001", "anna.petersen@harren-group.com"},
			{"Jonas' Laptop", "laptop", "SEED-LT-0002", "jonas.weber@harren-group.com"},
			{"Spare Monitor", "monitor", "SEED-MN-0001", ""},
		}

		for _, a := range assets {
			var exists int
			row := db.Raw("SELECT 1 FROM assets WHERE serial_number = ?", a.Serial).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("asset %s already exists; skipping\n", a.Serial)
				continue
			}

			status := "available"
			var ownerID interface{}
			if a.OwnerEmail != "" {
				if id, ok := employeeIDs[a.OwnerEmail]; ok {
					status = "assigned"
					ownerID = id
				}
			}

			if err := db.Exec(
				"INSERT INTO assets (id, name, asset_type, serial_number, status, assigned_to_id, purchase_date, office_location, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, 'bernem', now(), now())",
				uuid.New().String(), a.Name, a.Type, a.Serial, status, ownerID, purchase,
			).Error; err != nil {
				log.Fatalf("failed to insert asset %s: %v", a.Serial, err)
			}
			fmt.Println("Seeded asset:", a.Serial)
		}

		fmt.Println("Seeding complete")
	},
}
