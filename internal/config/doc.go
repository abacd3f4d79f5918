// Package config loads, merges and validates storefront configuration.
//
// Sources are applied in this order, later ones overriding non-zero fields:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Remaining zero fields take package defaults. [GetStructuredConfig] serves
// the API server and [GetClientConfig] the terminal client.
package config
