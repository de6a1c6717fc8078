package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// LoadConfig loads the configuration and sets default values for
// development/production
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath(".") // Path to look for the config file in

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create a default one
			return createDefaultConfig()
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	// Ensure we have sensible defaults in case they are not in the config file
	setDefaults()

	return nil
}

// setDefaults sets default configuration values based on the environment
func setDefaults() {
	// Check the current environment (default is development)
	env := viper.GetString("ENV")
	if env == "" {
		env = "development"
		viper.Set("ENV", env)
	}

	// Set defaults for development and production environments
	if env == "development" {
		viper.SetDefault("allowed_origin", "*")
		viper.SetDefault("db_path", "./dev_mainstay.db")
		viper.SetDefault("log_file", "./mainstay-api.log")
	} else if env == "production" {
		viper.SetDefault("allowed_origin", "https://mainstay.xyz")
		viper.SetDefault("db_path", "/var/lib/mainstay-api/mainstay.db")
		viper.SetDefault("log_file", "/var/log/mainstay-api.log")
	}

	// Common defaults for both environments
	viper.SetDefault("api_port", 8000)
	viper.SetDefault("use_https", false)
	viper.SetDefault("cert_file", "server.crt")
	viper.SetDefault("key_file", "server.key")

	// Outbound signup notifications
	viper.SetDefault("smtp_host", "localhost")
	viper.SetDefault("smtp_port", 587)
	viper.SetDefault("smtp_user", "")
	viper.SetDefault("smtp_password", "")
	viper.SetDefault("smtp_from_name", "Mainstay")
	viper.SetDefault("smtp_from_address", "noreply@mainstay.xyz")
	viper.SetDefault("signup_admin_email", "")

	// Admin surface
	viper.SetDefault("admin_user", "admin")
	viper.SetDefault("admin_password_hash", "")
	viper.SetDefault("jwt_secret", "")
}

// createDefaultConfig creates a new configuration file if it doesn't exist
func createDefaultConfig() error {
	setDefaults()

	// Write the default configuration to a file
	err := viper.SafeWriteConfig()
	if err != nil {
		if os.IsExist(err) {
			// If the config already exists, attempt to overwrite it
			err = viper.WriteConfig()
			if err != nil {
				return fmt.Errorf("error writing config file: %w", err)
			}
		} else {
			return fmt.Errorf("error creating config file: %w", err)
		}
	}

	fmt.Println("Created default configuration file")
	return nil
}
