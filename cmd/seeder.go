package cmd

import (
	"fmt"
	"log"

	"github.com/frahmantamala/onboarding-management/internal/catalog"
	"github.com/frahmantamala/onboarding-management/internal/permission"
	permissionRepo "github.com/frahmantamala/onboarding-management/internal/permission/postgres"
	"github.com/frahmantamala/onboarding-management/pkg/logger"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with baseline data",
	Long:  `Seed system catalogs, the default permission matrix and an initial HR admin account.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := initGorm(sqlxDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"role_permissions", "system_roles", "system_departments", "system_job_titles"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared catalog and permission tables")
		}

		type seedEntry struct {
			Code   string
			Label  string
			System bool
		}

		catalogs := map[catalog.Kind][]seedEntry{
			catalog.KindRole: {
				{permission.RoleHR, "Human Resources", true},
				{permission.RoleManager, "Manager", true},
				{permission.RoleEmployee, "Employee", true},
				{permission.RoleIT, "IT Support", true},
				{permission.RoleFinance, "Finance", true},
				{permission.RoleFacilities, "Facilities", true},
			},
			catalog.KindDepartment: {
				{"ENGINEERING", "Engineering", false},
				{"PEOPLE", "People Operations", true},
				{"SALES", "Sales", false},
				{"FINANCE", "Finance", false},
				{"OPERATIONS", "Operations", false},
			},
			catalog.KindJobTitle: {
				{"SOFTWARE_ENGINEER", "Software Engineer", false},
				{"HR_GENERALIST", "HR Generalist", true},
				{"ACCOUNT_EXECUTIVE", "Account Executive", false},
				{"OFFICE_MANAGER", "Office Manager", false},
			},
		}

		for kind, entries := range catalogs {
			table := kind.TableName()
			for _, e := range entries {
				var exists int
				if err := db.Raw("SELECT 1 FROM "+table+" WHERE code = ?", e.Code).Row().Scan(&exists); err == nil {
					continue
				}
				if err := db.Exec(
					"INSERT INTO "+table+" (code, label, is_active, is_system, created_at, updated_at) VALUES (?, ?, true, ?, now(), now())",
					e.Code, e.Label, e.System).Error; err != nil {
					log.Fatalf("failed to seed %s %s: %v", table, e.Code, err)
				}
			}
			fmt.Printf("Seeded %s\n", table)
		}

		permissionSvc := permission.NewService(permissionRepo.NewPermissionRepository(db), logger.LoggerWrapper())
		if err := permissionSvc.Seed(); err != nil {
			log.Fatalf("failed to seed permission matrix: %v", err)
		}
		fmt.Println("Seeded default permission matrix")

		adminEmail := "hr@onboarding.local"
		var exists int
		if err := db.Raw("SELECT 1 FROM users WHERE email = ?", adminEmail).Row().Scan(&exists); err == nil {
			fmt.Println("HR admin already exists:", adminEmail)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}
		if err := db.Exec(
			"INSERT INTO users (email, name, password_hash, role, department, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, true, now(), now())",
			adminEmail, "HR Admin", string(hash), permission.RoleHR, "PEOPLE").Error; err != nil {
			log.Fatalf("failed to insert HR admin: %v", err)
		}
		fmt.Println("Seeded HR admin user:", adminEmail)
	},
}
