package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"cosmossdk.io/log"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/altuslabsxyz/cosmos-ledger/internal/cliconfig"
	"github.com/altuslabsxyz/cosmos-ledger/pkg/ledger"
)

// Global configuration variables
var (
	homeDir       string
	configPath    string // Path to config.toml file (--config flag)
	verbose       bool
	noColor       bool
	chainID       string
	restEndpoint  string
	grpcEndpoint  string
	grpcSecure    bool
	addressPrefix string
	denom         string
	faucetURL     string
	keyFile       string
	gasLimit      uint64

	// loadedFileConfig holds the parsed config.toml values (nil if no config file)
	loadedFileConfig *cliconfig.FileConfig

	logger log.Logger = log.NewNopLogger()
)

// DefaultHomeDir returns the default home directory for ledgerctl data.
func DefaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ledgerctl"
	}
	return filepath.Join(home, ".ledgerctl")
}

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "CLI client for deploying and invoking contracts on Cosmos SDK chains",
		Long: `ledgerctl drives the full transaction lifecycle against a Cosmos SDK node:
build, sign, broadcast and confirm, with retry handling at every stage.

Examples:
  # Check the node is reachable and serves the expected chain
  ledgerctl status --chain-id testchain-1 --rest http://localhost:1317

  # Deploy a contract and instantiate it
  ledgerctl deploy ./counter.wasm --key-file ./deployer.key
  ledgerctl instantiate 42 '{"count":0}' --label counter --key-file ./deployer.key

  # Execute and query
  ledgerctl execute wasm1... '{"increment":{}}' --key-file ./deployer.key
  ledgerctl query wasm1... '{"get_count":{}}'

  # Transfer funds
  ledgerctl send wasm1... 1000stake --key-file ./sender.key`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load config file
			loader := cliconfig.NewLoader(homeDir, configPath, logger)
			fileCfg, configFilePath, err := loader.Load()
			if err != nil {
				return err
			}
			loadedFileConfig = fileCfg

			// Apply config file values to global flags (if not explicitly set)
			// Priority: default < config.toml < env < flag
			applyString(cmd, "chain-id", &chainID, fileCfg.ChainID)
			applyString(cmd, "rest", &restEndpoint, fileCfg.RESTEndpoint)
			applyString(cmd, "grpc", &grpcEndpoint, fileCfg.GRPCEndpoint)
			applyBool(cmd, "grpc-secure", &grpcSecure, fileCfg.GRPCSecure)
			applyString(cmd, "prefix", &addressPrefix, fileCfg.AddressPrefix)
			applyString(cmd, "denom", &denom, fileCfg.Denom)
			applyString(cmd, "faucet", &faucetURL, fileCfg.FaucetURL)
			applyString(cmd, "key-file", &keyFile, fileCfg.KeyFile)
			applyBool(cmd, "verbose", &verbose, fileCfg.Verbose)
			applyBool(cmd, "no-color", &noColor, fileCfg.NoColor)
			if !cmd.Flags().Changed("gas-limit") && fileCfg.GasLimit != nil {
				gasLimit = *fileCfg.GasLimit
			}

			// Environment variables override config.toml (but not explicit flags)
			if envHome := os.Getenv("LEDGERCTL_HOME"); envHome != "" && !cmd.Flags().Changed("home") {
				homeDir = envHome
			}
			if os.Getenv("NO_COLOR") != "" && !cmd.Flags().Changed("no-color") {
				noColor = true
			}

			color.NoColor = noColor

			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			logger = log.NewLogger(os.Stderr, log.LevelOption(level))

			if configFilePath != "" && verbose {
				logger.Debug("using config file", "path", configFilePath)
			}
			return nil
		},
	}

	// Global flags available on all commands
	cmd.PersistentFlags().StringVarP(&homeDir, "home", "H", DefaultHomeDir(),
		"Base directory for ledgerctl data")
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config.toml file")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")
	cmd.PersistentFlags().StringVar(&chainID, "chain-id", "",
		"Chain id the node must advertise")
	cmd.PersistentFlags().StringVar(&restEndpoint, "rest", "",
		"REST (LCD) endpoint, e.g. http://localhost:1317")
	cmd.PersistentFlags().StringVar(&grpcEndpoint, "grpc", "",
		"gRPC endpoint, e.g. localhost:9090")
	cmd.PersistentFlags().BoolVar(&grpcSecure, "grpc-secure", false,
		"Use TLS on the gRPC connection")
	cmd.PersistentFlags().StringVar(&addressPrefix, "prefix", "",
		"Bech32 address prefix of the chain")
	cmd.PersistentFlags().StringVar(&denom, "denom", "stake",
		"Native staking denom")
	cmd.PersistentFlags().StringVar(&faucetURL, "faucet", "",
		"Testnet faucet base URL")
	cmd.PersistentFlags().StringVar(&keyFile, "key-file", "",
		"File holding the hex-encoded signing key")
	cmd.PersistentFlags().Uint64Var(&gasLimit, "gas-limit", 0,
		"Gas limit per transaction (0 uses the client default)")

	cmd.AddCommand(
		NewStatusCmd(),
		NewBalanceCmd(),
		NewBalancesCmd(),
		NewSendCmd(),
		NewDeployCmd(),
		NewInstantiateCmd(),
		NewExecuteCmd(),
		NewQueryCmd(),
		NewEnsureFundsCmd(),
		NewVersionCmd(),
	)

	return cmd
}

func applyString(cmd *cobra.Command, flag string, dst *string, src *string) {
	if !cmd.Flags().Changed(flag) && src != nil {
		*dst = *src
	}
}

func applyBool(cmd *cobra.Command, flag string, dst *bool, src *bool) {
	if !cmd.Flags().Changed(flag) && src != nil {
		*dst = *src
	}
}

// newLedgerClient builds a ledger client from the resolved global flags.
func newLedgerClient() (*ledger.Client, error) {
	return ledger.New(ledger.Config{
		ChainID:       chainID,
		RESTEndpoint:  restEndpoint,
		GRPCEndpoint:  grpcEndpoint,
		GRPCSecure:    grpcSecure,
		AddressPrefix: addressPrefix,
		FaucetURL:     faucetURL,
	}, logger)
}

// loadSigningKey reads the hex-encoded key from --key-file, or prompts for it
// without echo when no file is configured.
func loadSigningKey() (*ledger.Key, error) {
	prefix := addressPrefix
	if prefix == "" {
		prefix = "cosmos"
	}

	if keyFile != "" {
		data, err := os.ReadFile(keyFile)
		if err != nil {
			return nil, fmt.Errorf("reading key file: %w", err)
		}
		return ledger.NewKeyFromHex(string(data), prefix)
	}

	fmt.Print("Enter signing key (hex): ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return nil, fmt.Errorf("failed to read key input: %w", err)
	}
	value := strings.TrimSpace(string(raw))
	if value == "" {
		return nil, fmt.Errorf("signing key cannot be empty")
	}
	return ledger.NewKeyFromHex(value, prefix)
}

// callOpts converts the global gas-limit flag into per-call options.
func callOpts() []ledger.CallOption {
	if gasLimit > 0 {
		return []ledger.CallOption{ledger.WithGasLimit(gasLimit)}
	}
	return nil
}
