package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/commerceblock/mainstay-api/internal/api"
	"github.com/commerceblock/mainstay-api/internal/attest"
	"github.com/commerceblock/mainstay-api/internal/config"
	"github.com/commerceblock/mainstay-api/internal/database"
	"github.com/commerceblock/mainstay-api/internal/logger"
	"github.com/commerceblock/mainstay-api/internal/mailer"
)

var rootCmd = &cobra.Command{
	Use:   "mainstay-api",
	Short: "Mainstay attestation service API",
	Long:  `Backend API for the Mainstay proof-of-existence attestation service.`,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initDBCmd)
}

func initConfig() {
	// A local .env may carry secrets (smtp password, jwt secret) that
	// should not live in config.json.
	_ = godotenv.Load()

	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	if err := logger.Init(viper.GetString("log_file")); err != nil {
		log.Printf("Error opening log file, logging to stderr: %v", err)
	}
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		db, err := database.Open(viper.GetString("db_path"))
		if err != nil {
			log.Fatalf("Error opening database: %v", err)
		}
		repos := database.NewRepositories(db)

		server := api.NewAPI(
			attest.NewAuthGate(repos.ClientDetails),
			attest.NewSignatureVerifier(),
			attest.NewCommitmentStore(repos.ClientCommitments),
			attest.NewIdentifierClassifier(repos.MerkleProofs, repos.AttestationInfos, repos.ClientDetails),
			attest.NewListingService(repos.Attestations, repos.MerkleCommitments, repos.AttestationInfos),
			attest.NewSignupService(repos.ClientSignups, mailer.NewFromConfig()),
			repos.ClientDetails,
		)

		logger.Info("Mainstay API initialized successfully")
		if err := server.Serve(); err != nil {
			logger.Error("server stopped:", err)
			log.Fatalf("Server stopped: %v", err)
		}
	},
}

var initDBCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Create or migrate the database schema",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := database.Open(viper.GetString("db_path")); err != nil {
			log.Fatalf("Error initializing database: %v", err)
		}
		fmt.Println("Database schema is up to date")
	},
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
