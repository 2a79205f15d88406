// Package cliconfig loads ledgerctl's config.toml and merges it with flag
// and environment overrides.
package cliconfig

// FileConfig represents the raw config.toml file contents.
// All fields are pointers to distinguish "not set" from "set to zero/false".
type FileConfig struct {
	// Global settings
	NoColor *bool `toml:"no_color"`
	Verbose *bool `toml:"verbose"`

	// Node connection
	ChainID      *string `toml:"chain_id"`
	RESTEndpoint *string `toml:"rest_endpoint"`
	GRPCEndpoint *string `toml:"grpc_endpoint"`
	GRPCSecure   *bool   `toml:"grpc_secure"`

	// Chain parameters
	AddressPrefix *string `toml:"address_prefix"`
	Denom         *string `toml:"denom"`
	GasLimit      *uint64 `toml:"gas_limit"`

	// Funding
	FaucetURL *string `toml:"faucet_url"`

	// Signing
	KeyFile *string `toml:"key_file"`
}

// IsEmpty returns true if no configuration values are set.
func (f *FileConfig) IsEmpty() bool {
	return f.NoColor == nil &&
		f.Verbose == nil &&
		f.ChainID == nil &&
		f.RESTEndpoint == nil &&
		f.GRPCEndpoint == nil &&
		f.GRPCSecure == nil &&
		f.AddressPrefix == nil &&
		f.Denom == nil &&
		f.GasLimit == nil &&
		f.FaucetURL == nil &&
		f.KeyFile == nil
}
