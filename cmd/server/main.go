package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "wholenow/internal/adapters/email"
	web "wholenow/internal/adapters/http"
	"wholenow/internal/adapters/http/perf"
	"wholenow/internal/adapters/storage"
	accountStore "wholenow/internal/adapters/storage/account"
	trackerStore "wholenow/internal/adapters/storage/day90"
	"wholenow/internal/adapters/storage/document"
	learnStore "wholenow/internal/adapters/storage/learnprogress"
	lifeStore "wholenow/internal/adapters/storage/lifecalendar"
	profileStore "wholenow/internal/adapters/storage/profile"
	"wholenow/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := "wholenow.db"
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	// Run database migrations
	if err := storage.MigrateDB(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	log.Println("Database initialized successfully!")

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	// One generic document store backs all four per-user namespaces
	docs := document.NewSQLiteStore(timedDB)
	acctStore := accountStore.NewSQLiteStore(timedDB)
	profStore := profileStore.NewDocStore(docs)
	stores := &web.Stores{
		AccountStore: acctStore,
		ProfileStore: profStore,
		TrackerStore: trackerStore.NewDocStore(docs),
		LearnStore:   learnStore.NewDocStore(docs),
		LifeStore:    lifeStore.NewDocStore(docs),
	}

	// Configure email sender before seeding so the welcome mail can go out
	resendKey := os.Getenv("WHOLENOW_RESEND_KEY")
	emailFrom := envOrDefault("WHOLENOW_RESEND_FROM", "WholeNow <noreply@wholenow.app>")
	var sender emailPkg.Sender
	if resendKey != "" {
		sender = emailPkg.NewResendSender(resendKey, emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if os.Getenv("WHOLENOW_ENV") == "production" {
			log.Println("WARNING: WHOLENOW_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set WHOLENOW_RESEND_KEY for real delivery)")
		}
	}
	web.SetEmailSender(sender, emailFrom)

	// Seed default admin account if no accounts exist
	adminEmail := envOrDefault("WHOLENOW_ADMIN_EMAIL", "admin@wholenow.local")
	adminPassword := envOrDefault("WHOLENOW_ADMIN_PASSWORD", "change me before launch")
	seedDeps := orchestrators.CreateAccountDeps{AccountStore: acctStore, ProfileStore: profStore}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, adminEmail, adminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Create HTTP handler with middleware (pass collector for timing + /perf)
	mux := web.NewMux("static", stores, collector)

	// Start server
	addr := envOrDefault("WHOLENOW_ADDR", ":8080")
	log.Printf("WholeNow %s starting on %s (env=%s, schema=%d)", version, addr,
		envOrDefault("WHOLENOW_ENV", "development"), storage.LatestSchemaVersion())

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
