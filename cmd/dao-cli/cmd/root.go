package cmd

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/richardcmg7/dao-voting-platform/pkg/config"
	"github.com/richardcmg7/dao-voting-platform/pkg/logger"
)

var (
	apiURL    string
	rpcURL    string
	daoAddr   string
	fwdAddr   string
	keyHex    string
	keyEnvVar = "DAO_PRIVATE_KEY"
)

// rootCmd 代表基础命令，没有子命令时直接调用
var rootCmd = &cobra.Command{
	Use:   "dao-cli",
	Short: "DAO 治理命令行工具",
	Long: `Command line client for the DAO voting platform.
Votes are signed locally and relayed gaslessly; proposals are executed through the server API.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Init()
		logger.Init(config.Global.App.Env, config.Global.App.LogLevel)

		chain := config.Global.Chain
		if rpcURL == "" {
			rpcURL = chain.RpcUrl
		}
		if daoAddr == "" {
			daoAddr = chain.DAOAddress
		}
		if fwdAddr == "" {
			fwdAddr = chain.ForwarderAddress
		}
	},
}

// Execute 将所有子命令添加到根命令并设置标志
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:8080", "dao-server base URL")
	rootCmd.PersistentFlags().StringVar(&rpcURL, "rpc-url", "", "ledger RPC endpoint (default chain.rpc_url)")
	rootCmd.PersistentFlags().StringVar(&daoAddr, "dao", "", "DAO contract address (default chain.dao_address)")
	rootCmd.PersistentFlags().StringVar(&fwdAddr, "forwarder", "", "forwarder contract address (default chain.forwarder_address)")
}

// addKeyFlag is shared by the commands that sign locally.
func addKeyFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&keyHex, "key", "", "hex private key (default $"+keyEnvVar+", else prompt)")
}

// privateKey resolves the signing key from the flag, the environment, or an echo-free prompt.
func privateKey() (string, error) {
	if keyHex != "" {
		return keyHex, nil
	}
	if v := os.Getenv(keyEnvVar); v != "" {
		return v, nil
	}
	fmt.Print("请输入私钥 (hex): ")
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read private key: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// chainIDFunc adapts a ledger session's lazy chain id lookup to metatx.ChainIDReader.
type chainIDFunc func(ctx context.Context) (*big.Int, error)

func (f chainIDFunc) ChainID(ctx context.Context) (*big.Int, error) { return f(ctx) }

func fail(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
	os.Exit(1)
}
