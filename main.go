package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"familjebudget/backend/database"
	"familjebudget/backend/handlers"
	"familjebudget/backend/middleware"
	"familjebudget/backend/migrations"
	"familjebudget/backend/security"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	noExit := flag.Bool("no-exit", false, "Don't exit after database reset")
	resetDB := flag.Bool("reset-db", false, "Force reset the database")
	flag.Parse()

	// A missing .env is fine in production; variables come from the platform there.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	isResetDB := os.Getenv("RESET_DB") == "true" || *resetDB
	isPRDeployment := os.Getenv("PR_DEPLOYMENT") == "true"
	isDevelopment := os.Getenv("APP_ENV") != "production" &&
		os.Getenv("ENVIRONMENT") != "production" &&
		os.Getenv("ENV") != "production"

	if isResetDB {
		log.Println("Running in database reset mode")
	}
	if isPRDeployment {
		log.Println("Running in PR deployment mode")
	}
	if isDevelopment {
		log.Println("Running in development environment")
	}

	encryptionKey := os.Getenv("ENCRYPTION_KEY")
	if encryptionKey == "" {
		log.Println("Warning: ENCRYPTION_KEY not set, using a default key. This is NOT secure for production!")
		encryptionKey = "default-key-for-development-only"
	}
	security.InitializeEncryption(encryptionKey)

	if err := database.InitDB(); err != nil {
		log.Fatal(err)
	}

	log.Println("Running migrations...")
	if err := migrations.RunMigrations(database.DB); err != nil {
		log.Printf("Warning: Failed to run migrations: %v", err)
	}

	if isResetDB && !*noExit {
		log.Println("Database reset completed successfully. Exiting.")
		return
	}

	log.Println("Initializing Firebase Admin SDK...")
	if err := middleware.InitializeFirebase(); err != nil {
		log.Printf("Warning: Failed to initialize Firebase: %v", err)
		log.Println("Auth token verification will be disabled!")
	}

	r := mux.NewRouter()
	r.Use(middleware.EnableCORS)

	// Register routes both bare and under /api so the dev proxy and the
	// deployed frontend hit the same handlers.
	registerRoutes(r)
	apiRouter := r.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter)

	// Serve the built frontend.
	fs := http.FileServer(http.Dir("./dist"))
	r.PathPrefix("/assets/").Handler(http.StripPrefix("", fs))
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/assets/") {
			log.Printf("Serving index.html for path: %s", r.URL.Path)
		}
		http.ServeFile(w, r, "./dist/index.html")
	}).Methods("GET")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	log.Printf("Starting server on port %s...", port)
	log.Fatal(srv.ListenAndServe())
}

// registerRoutes sets up all API routes
func registerRoutes(r *mux.Router) {
	// Public routes (no auth required)
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")

	protectedRouter := r.PathPrefix("").Subrouter()
	protectedRouter.Use(middleware.AuthMiddleware)

	// Auth and per-user database configuration
	protectedRouter.HandleFunc("/auth/user", handlers.GetAuthUser).Methods("GET", "POST")
	protectedRouter.HandleFunc("/auth/database-status", handlers.DatabaseStatus).Methods("GET")
	protectedRouter.HandleFunc("/auth/configure-database", handlers.ConfigureDatabase).Methods("POST")

	// Account types
	protectedRouter.HandleFunc("/account-types", handlers.GetAccountTypes).Methods("GET")
	protectedRouter.HandleFunc("/account-types", handlers.AddAccountType).Methods("POST")
	protectedRouter.HandleFunc("/account-types/{id}", handlers.UpdateAccountType).Methods("PATCH")
	protectedRouter.HandleFunc("/account-types/{id}", handlers.DeleteAccountType).Methods("DELETE")

	// Accounts
	protectedRouter.HandleFunc("/accounts", handlers.GetAccounts).Methods("GET")
	protectedRouter.HandleFunc("/accounts", handlers.AddAccount).Methods("POST")
	protectedRouter.HandleFunc("/accounts/{id}", handlers.UpdateAccount).Methods("PATCH")
	protectedRouter.HandleFunc("/accounts/{id}", handlers.DeleteAccount).Methods("DELETE")

	// Banks and their CSV mappings
	protectedRouter.HandleFunc("/banks", handlers.GetBanks).Methods("GET")
	protectedRouter.HandleFunc("/banks", handlers.AddBank).Methods("POST")
	protectedRouter.HandleFunc("/banks/{id}", handlers.DeleteBank).Methods("DELETE")
	protectedRouter.HandleFunc("/bank-csv-mappings", handlers.GetBankCsvMappings).Methods("GET")
	protectedRouter.HandleFunc("/bank-csv-mappings", handlers.AddBankCsvMapping).Methods("POST")
	protectedRouter.HandleFunc("/bank-csv-mappings/bank/{bankId}", handlers.GetBankCsvMappingsByBank).Methods("GET")
	protectedRouter.HandleFunc("/bank-csv-mappings/{id}", handlers.UpdateBankCsvMapping).Methods("PATCH")
	protectedRouter.HandleFunc("/bank-csv-mappings/{id}", handlers.DeleteBankCsvMapping).Methods("DELETE")

	// App categories (huvudkategorier and underkategorier)
	protectedRouter.HandleFunc("/categories", handlers.GetCategories).Methods("GET")
	protectedRouter.HandleFunc("/categories", handlers.AddCategory).Methods("POST")
	protectedRouter.HandleFunc("/categories/{id}", handlers.UpdateCategory).Methods("PUT")
	protectedRouter.HandleFunc("/categories/{id}", handlers.DeleteCategory).Methods("DELETE")

	// Category rules
	protectedRouter.HandleFunc("/category-rules", handlers.GetCategoryRules).Methods("GET")
	protectedRouter.HandleFunc("/category-rules", handlers.AddCategoryRule).Methods("POST")
	protectedRouter.HandleFunc("/category-rules/{id}", handlers.GetCategoryRule).Methods("GET")
	protectedRouter.HandleFunc("/category-rules/{id}", handlers.UpdateCategoryRule).Methods("PATCH")
	protectedRouter.HandleFunc("/category-rules/{id}", handlers.DeleteCategoryRule).Methods("DELETE")

	// Transactions
	protectedRouter.HandleFunc("/transactions", handlers.GetTransactions).Methods("GET")
	protectedRouter.HandleFunc("/transactions", handlers.AddTransaction).Methods("POST")
	protectedRouter.HandleFunc("/transactions/{id}", handlers.UpdateTransaction).Methods("PATCH")
	protectedRouter.HandleFunc("/transactions/{id}", handlers.DeleteTransaction).Methods("DELETE")

	// Statement import
	protectedRouter.HandleFunc("/import/preview", handlers.PreviewImport).Methods("POST")
	protectedRouter.HandleFunc("/import/commit", handlers.CommitImport).Methods("POST")

	// Monthly budgets and balances
	protectedRouter.HandleFunc("/monthly-budgets", handlers.GetMonthlyBudgets).Methods("GET")
	protectedRouter.HandleFunc("/monthly-budgets", handlers.SaveMonthlyBudget).Methods("POST")
	protectedRouter.HandleFunc("/monthly-account-balances", handlers.GetMonthlyAccountBalances).Methods("GET")
	protectedRouter.HandleFunc("/monthly-account-balances", handlers.SaveMonthlyAccountBalance).Methods("POST")
	protectedRouter.HandleFunc("/monthly-account-balances/{monthKey}/{accountId}/faktiskt-kontosaldo", handlers.UpdateFaktisktKontosaldo).Methods("PUT")

	// Planned transfers
	protectedRouter.HandleFunc("/planned-transfers", handlers.GetPlannedTransfers).Methods("GET")
	protectedRouter.HandleFunc("/planned-transfers", handlers.AddPlannedTransfer).Methods("POST")
	protectedRouter.HandleFunc("/planned-transfers/{id}", handlers.UpdatePlannedTransfer).Methods("PATCH")
	protectedRouter.HandleFunc("/planned-transfers/{id}", handlers.DeletePlannedTransfer).Methods("DELETE")

	// Family members and income sources
	protectedRouter.HandleFunc("/family-members", handlers.GetFamilyMembers).Methods("GET")
	protectedRouter.HandleFunc("/family-members", handlers.AddFamilyMember).Methods("POST")
	protectedRouter.HandleFunc("/family-members/{id}", handlers.UpdateFamilyMember).Methods("PATCH")
	protectedRouter.HandleFunc("/family-members/{id}", handlers.DeleteFamilyMember).Methods("DELETE")
	protectedRouter.HandleFunc("/inkomstkallor", handlers.GetInkomstkallor).Methods("GET")
	protectedRouter.HandleFunc("/inkomstkallor", handlers.AddInkomstkalla).Methods("POST")
	protectedRouter.HandleFunc("/inkomstkallor/{id}", handlers.UpdateInkomstkalla).Methods("PATCH")
	protectedRouter.HandleFunc("/inkomstkallor/{id}", handlers.DeleteInkomstkalla).Methods("DELETE")
	protectedRouter.HandleFunc("/inkomstkallor-medlem", handlers.GetInkomstkallaMedlemmar).Methods("GET")
	protectedRouter.HandleFunc("/inkomstkallor-medlem", handlers.AddInkomstkallaMedlem).Methods("POST")
	protectedRouter.HandleFunc("/inkomstkallor-medlem/{id}", handlers.UpdateInkomstkallaMedlem).Methods("PATCH")
	protectedRouter.HandleFunc("/inkomstkallor-medlem/{id}", handlers.DeleteInkomstkallaMedlem).Methods("DELETE")

	// User settings
	protectedRouter.HandleFunc("/user-settings", handlers.GetUserSettings).Methods("GET")
	protectedRouter.HandleFunc("/user-settings/{key}", handlers.GetUserSetting).Methods("GET")
	protectedRouter.HandleFunc("/user-settings/{key}", handlers.PutUserSetting).Methods("PUT")
	protectedRouter.HandleFunc("/user-settings/{key}", handlers.DeleteUserSetting).Methods("DELETE")
}
