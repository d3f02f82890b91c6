package main

import (
	"fmt"
	"os"

	"office-records-backend/config"
	"office-records-backend/internal/database"
	"office-records-backend/internal/model"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	rootCmd = &cobra.Command{
		Use:   "seeder",
		Short: "Database migration and seeding for the office records backend",
	}
	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update all tables",
		RunE:  runMigrate,
	}
	allCmd = &cobra.Command{
		Use:   "all",
		Short: "Seed departments, one account per role and a sample file",
		RunE:  runSeedAll,
	}
	adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Create a single admin account, or reset its password",
		RunE:  runSeedAdmin,
	}

	adminName     string
	adminUsername string
	adminEmail    string
	adminPassword string
	adminRole     string
)

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(adminCmd)

	adminCmd.Flags().StringVar(&adminUsername, "username", "", "login name (required)")
	adminCmd.Flags().StringVar(&adminPassword, "password", "", "plain password, stored bcrypt-hashed (required)")
	adminCmd.Flags().StringVar(&adminRole, "role", string(model.RoleSuperAdmin), "one of: Super Admin, Boss, Registry, Human Resource, HOD, Employee")
	adminCmd.Flags().StringVar(&adminName, "name", "", "display name, defaults to the username")
	adminCmd.Flags().StringVar(&adminEmail, "email", "", "email, defaults to <username>@office.local")
	_ = adminCmd.MarkFlagRequired("username")
	_ = adminCmd.MarkFlagRequired("password")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// connect loads the environment and opens the database. ConnectDB migrates
// the schema as part of opening it.
func connect() (*gorm.DB, *zap.Logger, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env not found, using system environment variables.")
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := config.NewLogger(cfg.AppEnv)
	if err != nil {
		return nil, nil, err
	}
	db, err := config.ConnectDB(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return db, logger, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	_, logger, err := connect()
	if err != nil {
		return err
	}
	logger.Info("migration completed")
	return nil
}

func runSeedAll(cmd *cobra.Command, args []string) error {
	db, logger, err := connect()
	if err != nil {
		return err
	}
	if err := database.SeedAll(db, logger); err != nil {
		return err
	}
	fmt.Printf("Seeding done. Every seeded account uses password %q.\n", database.DefaultSeedPassword)
	return nil
}

func runSeedAdmin(cmd *cobra.Command, args []string) error {
	role, err := model.ParseRole(adminRole)
	if err != nil {
		return err
	}
	if adminName == "" {
		adminName = adminUsername
	}
	if adminEmail == "" {
		adminEmail = adminUsername + "@office.local"
	}

	db, logger, err := connect()
	if err != nil {
		return err
	}
	admin, err := database.SeedAdmin(db, adminName, adminUsername, adminEmail, adminPassword, role)
	if err != nil {
		return err
	}
	logger.Info("admin seeded", zap.Uint("id", admin.ID), zap.String("username", admin.Username), zap.String("role", string(admin.Role)))
	return nil
}
