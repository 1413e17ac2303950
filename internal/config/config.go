// Package config provides typed access to environment configuration through
// Viper, with the defaults for both external feeds baked in.
package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/pricedeck/pricedeck/internal/sources/openrouter"
	"github.com/pricedeck/pricedeck/internal/sources/rates"
)

// Environment variable names.
const (
	// EnvStoreURL is the store base URL.
	EnvStoreURL = "SUPABASE_URL"
	// EnvStoreServiceKey is the store service credential.
	EnvStoreServiceKey = "SUPABASE_SERVICE_ROLE_KEY"
	// EnvCatalogURL overrides the catalog feed endpoint.
	EnvCatalogURL = "OPENROUTER_API_URL"
	// EnvRatesURL overrides the currency feed endpoint.
	EnvRatesURL = "EXCHANGE_RATE_API_URL"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	// Check OS env directly first
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// StoreURL returns the store base URL. Empty when unconfigured; the store
// client treats that as a fatal configuration error.
func StoreURL() string {
	return GetString(EnvStoreURL)
}

// StoreServiceKey returns the store service credential.
func StoreServiceKey() string {
	return GetString(EnvStoreServiceKey)
}

// CatalogURL returns the catalog feed endpoint, defaulted when unset.
func CatalogURL() string {
	if v := GetString(EnvCatalogURL); v != "" {
		return v
	}
	return openrouter.DefaultAPIURL
}

// RatesURL returns the currency feed endpoint, defaulted when unset.
func RatesURL() string {
	if v := GetString(EnvRatesURL); v != "" {
		return v
	}
	return rates.DefaultAPIURL
}
