package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/tranvictor/electiongw/artifact"
	"github.com/tranvictor/electiongw/config"
	"github.com/tranvictor/electiongw/election"
	"github.com/tranvictor/electiongw/ledger"
	"github.com/tranvictor/electiongw/logger"
	"github.com/tranvictor/electiongw/networks"
	"github.com/tranvictor/electiongw/util/account"
	"github.com/tranvictor/electiongw/util/broadcaster"
	"github.com/tranvictor/electiongw/util/reader"
)

// app is everything a command needs to talk to the contract.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	network networks.Network
	reader  *reader.OneNodeReader
	binding *ledger.Binding
	service *election.Service
}

func (a *app) Close() {
	a.reader.Close()
	_ = a.logger.Sync()
}

// networkLabel names the network the binding resolved, e.g. "ganache (5777)".
func (a *app) networkLabel(ctx context.Context) (string, error) {
	c, err := a.binding.Ensure(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s (%s)", networks.Label(c.NetworkID.Uint64()), c.NetworkID), nil
}

func loadConfig() (config.Config, error) {
	return config.Load(config.ConfigFile)
}

func loadSigner(cfg config.SignerConfig) (*account.Account, error) {
	switch {
	case cfg.PrivateKey != "":
		return account.NewPrivateKeyAccount(cfg.PrivateKey)
	case cfg.Keystore != "":
		password := cfg.Password
		if password == "" {
			var err error
			password, err = appUI.AskPassword(fmt.Sprintf("Password of %s", cfg.Keystore))
			if err != nil {
				return nil, err
			}
		}
		return account.NewKeystoreAccount(cfg.Keystore, password)
	}
	return nil, nil
}

// buildApp wires config into a ready to use election service. Nothing
// talks to the node until the first contract call. observer may be nil.
func buildApp(cfg config.Config, observer ledger.Observer) (*app, error) {
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	network, err := networks.GetNetwork(cfg.Ledger.Network)
	if err != nil {
		return nil, err
	}
	nodeURL := cfg.Ledger.NodeURL
	if nodeURL == "" {
		if nodeURL, err = networks.NodeURL(network); err != nil {
			return nil, err
		}
	}

	art := artifact.Default()
	if cfg.Ledger.Artifact != "" {
		if art, err = artifact.Load(cfg.Ledger.Artifact); err != nil {
			return nil, err
		}
	}

	signer, err := loadSigner(cfg.Signer)
	if err != nil {
		return nil, fmt.Errorf("couldn't load signer: %w", err)
	}

	node := reader.NewOneNodeReader(network.GetName(), nodeURL, cfg.Ledger.CallTimeout)
	dial := func(ctx context.Context) (ledger.Backend, error) {
		client, err := node.Client(ctx)
		if err != nil {
			return nil, err
		}
		if signer == nil {
			return node, nil
		}
		b := broadcaster.NewBroadcaster(map[string]*rpc.Client{node.NodeName(): client})
		return ledger.NewKeyedBackend(node, signer, b), nil
	}

	opts := []ledger.Option{ledger.WithLogger(log)}
	if cfg.Ledger.ContractAddress != "" {
		opts = append(opts, ledger.WithAddress(common.HexToAddress(cfg.Ledger.ContractAddress)))
	}
	if cfg.Ledger.WaitReceipt {
		poll := cfg.Ledger.ReceiptPollInterval
		if poll <= 0 {
			poll = network.GetBlockTime()
		}
		opts = append(opts, ledger.WithReceiptWait(poll, cfg.Ledger.ReceiptTimeout))
	}
	if observer != nil {
		opts = append(opts, ledger.WithObserver(observer))
	}
	binding := ledger.NewBinding(dial, art, opts...)

	log.Info("ledger configured",
		zap.String("network", network.GetName()),
		zap.String("node", nodeURL),
		zap.String("contract", art.ContractName),
		zap.Bool("local_signer", signer != nil),
	)
	return &app{
		cfg:     cfg,
		logger:  log,
		network: network,
		reader:  node,
		binding: binding,
		service: election.NewService(binding,
			election.WithGasLimit(cfg.Ledger.GasLimit),
			election.WithLogger(log),
		),
	}, nil
}

// setup loads config and builds the app for one shot CLI commands, which
// log to the console only at warn and above unless asked otherwise.
func setup() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if config.LogLevel == "" && os.Getenv("ELECTIONGW_LOG_LEVEL") == "" {
		cfg.Log.Level = "warn"
	}
	cfg.Log.Format = "console"
	return buildApp(cfg, nil)
}

// deploymentHint tells operators how to point the gateway at a contract when
// neither the config nor the artifact knows where it lives.
const deploymentHint = "set ledger.contractAddress (--contract or ELECTIONGW_CONTRACT_ADDRESS) or load a migrated artifact with --artifact"

// explain prints a failure the way the HTTP API would describe it plus the
// underlying cause.
func explain(err error) {
	var e *election.Error
	if errors.As(err, &e) {
		appUI.Error("%s", e.Message)
		for _, d := range e.Details {
			appUI.Indent().Error("%s", d)
		}
		if e.Err != nil {
			appUI.Indent().Error("cause: %s", e.Err)
		}
	} else {
		appUI.Error("%s", err)
	}
	if errors.Is(err, ledger.ErrNoDeployment) {
		appUI.Indent().Warn("Hint: %s.", deploymentHint)
	}
}
