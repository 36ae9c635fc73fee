package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/signa-learn/signa_api/model"
	"github.com/signa-learn/signa_api/seed/seeders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, content, quests, badges, words")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	db, err := gorm.Open(postgres.Open(databaseDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Section{},
		&model.Course{},
		&model.Quest{},
		&model.Badge{},
		&model.Word{},
	); err != nil {
		log.Fatalf("Failed to migrate catalog tables: %v", err)
	}

	mainSeeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all":
		log.Println("Running complete catalog seeding...")
		if err := mainSeeder.SeedAll(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	case "content":
		if err := mainSeeder.SeedContentOnly(); err != nil {
			log.Fatalf("Failed to seed sections and courses: %v", err)
		}
	case "quests":
		if err := mainSeeder.SeedQuestsOnly(); err != nil {
			log.Fatalf("Failed to seed quests: %v", err)
		}
	case "badges":
		if err := mainSeeder.SeedBadgesOnly(); err != nil {
			log.Fatalf("Failed to seed badges: %v", err)
		}
	case "words":
		if err := mainSeeder.SeedWordsOnly(); err != nil {
			log.Fatalf("Failed to seed words: %v", err)
		}
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'content', 'quests', 'badges', or 'words'", *seedType)
	}

	log.Println("Seeding finished")
}

func databaseDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "postgres"),
		envOr("DB_PASSWORD", "postgres"),
		envOr("DB_NAME", "signa_api"),
		envOr("DB_PORT", "5432"),
		envOr("DB_SSLMODE", "disable"),
	)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func showHelp() {
	fmt.Println("Signa catalog seeder")
	fmt.Println()
	fmt.Println("Usage: seed [-type all|content|quests|badges|words]")
	fmt.Println()
	fmt.Println("Connects with DATABASE_URL or the DB_* environment variables.")
}
