package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

// Flag values, bound by cmd. Zero values mean the flag was not given.
var (
	ConfigFile        string
	Network           string
	NodeURL           string
	ArtifactPath      string
	ContractAddress   string
	GasLimit          uint64
	DontWaitToBeMined bool
	Keystore          string
	Listen            string
	LogLevel          string
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Ledger LedgerConfig `yaml:"ledger"`
	Signer SignerConfig `yaml:"signer"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Listen          string          `yaml:"listen"`
	Prefix          string          `yaml:"prefix"`
	CORSOrigins     []string        `yaml:"corsOrigins"`
	RateLimit       RateLimitConfig `yaml:"rateLimit"`
	ShutdownTimeout time.Duration   `yaml:"shutdownTimeout"`
}

// RateLimitConfig is a per client token bucket. A zero RPS disables it.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type LedgerConfig struct {
	Network             string        `yaml:"network"`
	NodeURL             string        `yaml:"nodeURL"`
	Artifact            string        `yaml:"artifact"`
	ContractAddress     string        `yaml:"contractAddress"`
	GasLimit            uint64        `yaml:"gasLimit"`
	CallTimeout         time.Duration `yaml:"callTimeout"`
	WaitReceipt         bool          `yaml:"waitReceipt"`
	ReceiptTimeout      time.Duration `yaml:"receiptTimeout"`
	ReceiptPollInterval time.Duration `yaml:"receiptPollInterval"`
}

// SignerConfig selects a local signing key. With neither key set, writes
// are signed by the node's own accounts.
type SignerConfig struct {
	PrivateKey string `yaml:"privateKey"`
	Keystore   string `yaml:"keystore"`
	Password   string `yaml:"password"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Listen:          ":5000",
			Prefix:          "/api",
			CORSOrigins:     []string{"*"},
			ShutdownTimeout: 10 * time.Second,
		},
		Ledger: LedgerConfig{
			Network:             "ganache",
			GasLimit:            3000000,
			CallTimeout:         30 * time.Second,
			WaitReceipt:         true,
			ReceiptTimeout:      2 * time.Minute,
			ReceiptPollInterval: 500 * time.Millisecond,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// DefaultPaths are tried in order when no config file is given.
var DefaultPaths = []string{"electiongw.yaml", "configs/electiongw.yaml"}

// Load layers defaults, the config file, the environment and the flag
// globals, in that order. An explicit path must exist; the default paths
// are optional.
func Load(path string) (Config, error) {
	cfg := Default()

	candidates := DefaultPaths
	if path != "" {
		candidates = []string{path}
	}
	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if err != nil {
			if path != "" {
				return cfg, fmt.Errorf("couldn't read config %s: %w", p, err)
			}
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("couldn't parse config %s: %w", p, err)
		}
		break
	}

	if err := ApplyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	ApplyFlags(&cfg)
	return cfg, cfg.Validate()
}

func env(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

func ApplyEnvOverrides(cfg *Config) error {
	if port := env("PORT"); port != "" {
		cfg.Server.Listen = ":" + port
	}
	if v := env("ELECTIONGW_LISTEN"); v != "" {
		cfg.Server.Listen = v
	}
	if v := env("ELECTIONGW_NODE_URL"); v != "" {
		cfg.Ledger.NodeURL = v
	}
	if v := env("ELECTIONGW_CONTRACT_ADDRESS"); v != "" {
		cfg.Ledger.ContractAddress = v
	}
	if v := env("ELECTIONGW_RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("ELECTIONGW_RATE_LIMIT_RPS: %w", err)
		}
		cfg.Server.RateLimit.RPS = rps
	}
	if v := env("ELECTIONGW_RATE_LIMIT_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ELECTIONGW_RATE_LIMIT_BURST: %w", err)
		}
		cfg.Server.RateLimit.Burst = burst
	}
	if v := env("ELECTIONGW_PRIVATE_KEY"); v != "" {
		cfg.Signer.PrivateKey = v
	}
	if v := os.Getenv("ELECTIONGW_KEYSTORE_PASSWORD"); v != "" {
		cfg.Signer.Password = v
	}
	if v := env("ELECTIONGW_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

func ApplyFlags(cfg *Config) {
	if Network != "" {
		cfg.Ledger.Network = Network
	}
	if NodeURL != "" {
		cfg.Ledger.NodeURL = NodeURL
	}
	if ArtifactPath != "" {
		cfg.Ledger.Artifact = ArtifactPath
	}
	if ContractAddress != "" {
		cfg.Ledger.ContractAddress = ContractAddress
	}
	if GasLimit != 0 {
		cfg.Ledger.GasLimit = GasLimit
	}
	if DontWaitToBeMined {
		cfg.Ledger.WaitReceipt = false
	}
	if Keystore != "" {
		cfg.Signer.Keystore = Keystore
	}
	if Listen != "" {
		cfg.Server.Listen = Listen
	}
	if LogLevel != "" {
		cfg.Log.Level = LogLevel
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Server.Listen == "" {
		errs = append(errs, errors.New("server.listen is empty"))
	}
	if c.Server.Prefix != "" && !strings.HasPrefix(c.Server.Prefix, "/") {
		errs = append(errs, fmt.Errorf("server.prefix %q must start with /", c.Server.Prefix))
	}
	if c.Server.RateLimit.RPS < 0 || c.Server.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("server.rateLimit must not be negative"))
	}
	if c.Ledger.GasLimit == 0 {
		errs = append(errs, errors.New("ledger.gasLimit must be positive"))
	}
	if c.Ledger.ContractAddress != "" && !common.IsHexAddress(c.Ledger.ContractAddress) {
		errs = append(errs, fmt.Errorf("ledger.contractAddress %q is not an address", c.Ledger.ContractAddress))
	}
	if c.Signer.PrivateKey != "" && c.Signer.Keystore != "" {
		errs = append(errs, errors.New("signer.privateKey and signer.keystore are exclusive"))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be json or console", c.Log.Format))
	}
	return errors.Join(errs...)
}
