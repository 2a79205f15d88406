package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"cosmossdk.io/log"
	"github.com/pelletier/go-toml/v2"
)

// Loader is responsible for loading and merging configuration files.
type Loader struct {
	homeDir    string
	configPath string // Explicit --config path
	logger     log.Logger
}

// NewLoader creates a Loader. configPath may be empty, in which case the
// conventional locations are searched.
func NewLoader(homeDir, configPath string, logger log.Logger) *Loader {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Loader{
		homeDir:    homeDir,
		configPath: configPath,
		logger:     logger,
	}
}

// Load parses config files and merges them in priority order:
// explicit path > ./config.toml > <home>/config.toml.
// All found files are merged, with higher priority values overwriting lower
// ones. Returns the merged FileConfig and the highest-priority file path.
// No config file anywhere is not an error; the merged config is just empty.
func (l *Loader) Load() (*FileConfig, string, error) {
	var configFiles []string

	// Home directory (lowest priority)
	homePath := filepath.Join(l.homeDir, "config.toml")
	if _, err := os.Stat(homePath); err == nil {
		configFiles = append(configFiles, homePath)
	}

	// Current directory
	if _, err := os.Stat("./config.toml"); err == nil {
		if absPath, _ := filepath.Abs("./config.toml"); absPath != homePath {
			configFiles = append(configFiles, "./config.toml")
		}
	}

	// Explicit path (highest priority); unlike the search locations it must
	// exist when given.
	if l.configPath != "" {
		if _, err := os.Stat(l.configPath); err != nil {
			return nil, "", fmt.Errorf("config file not found: %s", l.configPath)
		}
		absPath, _ := filepath.Abs(l.configPath)
		isDuplicate := false
		for _, cf := range configFiles {
			if abs, _ := filepath.Abs(cf); abs == absPath {
				isDuplicate = true
				break
			}
		}
		if !isDuplicate {
			configFiles = append(configFiles, l.configPath)
		}
	}

	if len(configFiles) == 0 {
		return &FileConfig{}, "", nil
	}

	var merged FileConfig
	var primaryFile string
	for _, configFile := range configFiles {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}

		var cfg FileConfig
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, "", fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}

		merge(&merged, &cfg)
		primaryFile = configFile

		l.warnUnknownKeys(data)
		l.logger.Debug("loaded config file", "path", configFile)
	}

	if err := validate(&merged); err != nil {
		return nil, "", fmt.Errorf("config validation failed: %w", err)
	}

	return &merged, primaryFile, nil
}

// merge merges src into dst. Non-nil values in src overwrite dst.
func merge(dst, src *FileConfig) {
	if src.NoColor != nil {
		dst.NoColor = src.NoColor
	}
	if src.Verbose != nil {
		dst.Verbose = src.Verbose
	}
	if src.ChainID != nil {
		dst.ChainID = src.ChainID
	}
	if src.RESTEndpoint != nil {
		dst.RESTEndpoint = src.RESTEndpoint
	}
	if src.GRPCEndpoint != nil {
		dst.GRPCEndpoint = src.GRPCEndpoint
	}
	if src.GRPCSecure != nil {
		dst.GRPCSecure = src.GRPCSecure
	}
	if src.AddressPrefix != nil {
		dst.AddressPrefix = src.AddressPrefix
	}
	if src.Denom != nil {
		dst.Denom = src.Denom
	}
	if src.GasLimit != nil {
		dst.GasLimit = src.GasLimit
	}
	if src.FaucetURL != nil {
		dst.FaucetURL = src.FaucetURL
	}
	if src.KeyFile != nil {
		dst.KeyFile = src.KeyFile
	}
}

// validate rejects file configs that could never produce a working client.
// Endpoint presence is not checked here; flags may still supply one.
func validate(cfg *FileConfig) error {
	if cfg.RESTEndpoint != nil && *cfg.RESTEndpoint != "" &&
		cfg.GRPCEndpoint != nil && *cfg.GRPCEndpoint != "" {
		return fmt.Errorf("only one of rest_endpoint and grpc_endpoint may be set")
	}
	if cfg.GasLimit != nil && *cfg.GasLimit == 0 {
		return fmt.Errorf("gas_limit must be positive")
	}
	return nil
}

// warnUnknownKeys checks for unknown keys in the config file and logs warnings.
func (l *Loader) warnUnknownKeys(data []byte) {
	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return // Ignore errors here - main parsing will catch them
	}

	knownKeys := map[string]bool{
		"no_color":       true,
		"verbose":        true,
		"chain_id":       true,
		"rest_endpoint":  true,
		"grpc_endpoint":  true,
		"grpc_secure":    true,
		"address_prefix": true,
		"denom":          true,
		"gas_limit":      true,
		"faucet_url":     true,
		"key_file":       true,
	}

	for key := range raw {
		if !knownKeys[key] {
			l.logger.Warn("unknown config key", "key", key)
		}
	}
}
