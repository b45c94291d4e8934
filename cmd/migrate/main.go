package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/gyansetu/gyansetu-backend/internal/config"
	"github.com/gyansetu/gyansetu-backend/internal/migration"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	env := config.AppEnv()

	configPath := flag.String("config", config.ConfigPath(env), "config file path")
	seed := flag.Bool("seed", false, "create the initial superadmin (ADMIN_EMAIL / ADMIN_PASSWORD) on an empty database")
	verify := flag.Bool("verify", false, "print row counts per table after migrating")
	verbose := flag.Bool("verbose", false, "verbose SQL logging")
	flag.Parse()

	if files := config.LoadDotEnv(env); len(files) == 0 {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logLevel := gormlogger.Warn
	if *verbose {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying DB: %v", err)
	}
	defer sqlDB.Close()

	start := time.Now()
	log.Println("[migrate] Running schema migration")
	if err := migration.Run(db); err != nil {
		log.Printf("[migrate] FAILED: %v", err)
		os.Exit(1)
	}
	log.Printf("[migrate] Schema up to date in %v", time.Since(start))

	if *seed {
		err := migration.Seed(db, migration.SeedOptions{
			AdminEmail:    os.Getenv("ADMIN_EMAIL"),
			AdminPassword: os.Getenv("ADMIN_PASSWORD"),
			AdminName:     os.Getenv("ADMIN_NAME"),
		})
		if err != nil {
			log.Printf("[seed] FAILED: %v", err)
			os.Exit(1)
		}
		log.Println("[seed] Done")
	}

	if *verify {
		runVerify(db)
	}
}

func runVerify(db *gorm.DB) {
	for _, model := range migration.Models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			log.Printf("[verify] %T: %v", model, err)
			continue
		}
		var count int64
		if err := db.Model(model).Count(&count).Error; err != nil {
			log.Printf("[verify] %-22s error: %v", stmt.Schema.Table, err)
			continue
		}
		log.Printf("[verify] %-22s %d rows", stmt.Schema.Table, count)
	}
}
