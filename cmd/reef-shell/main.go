package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/reefdb/reefdb-go/pkg/client"
	"github.com/reefdb/reefdb-go/pkg/utils"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "REEF_SHELL_CONFIG_FILE_PATH"
	ENV_SECRET           = "REEF_SECRET"
)

var (
	endpointFlag string
	secretFlag   string
	timeoutFlag  time.Duration
)

type shellConfig struct {
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	Client client.Config `json:"client" yaml:"client"`
}

var conf shellConfig

var rootCmd = &cobra.Command{
	Use:   "reef-shell",
	Short: "ReefDB query shell",
	Long:  "Send wire-format queries to a ReefDB endpoint and inspect the decoded responses.",
}

func init() {
	loadConfig()

	rootCmd.PersistentFlags().StringVar(&endpointFlag, "endpoint", conf.Client.Endpoint, "database endpoint URL")
	rootCmd.PersistentFlags().StringVar(&secretFlag, "secret", "", "access secret (overrides config and env)")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", conf.Client.Timeout, "request timeout")

	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(replCmd)
}

func loadConfig() {
	configPath := os.Getenv(ENV_CONFIG_FILE_PATH)
	if configPath != "" {
		yamlFile, err := os.ReadFile(configPath)
		if err != nil {
			panic(err)
		}
		if err := yaml.UnmarshalStrict(yamlFile, &conf); err != nil {
			panic(err)
		}
	}
	utils.InitLogger(conf.Logging)

	if secret := os.Getenv(ENV_SECRET); secret != "" {
		conf.Client.Secret = secret
	}
}

func newClient() *client.Client {
	cfg := conf.Client
	if endpointFlag != "" {
		cfg.Endpoint = endpointFlag
	}
	if secretFlag != "" {
		cfg.Secret = secretFlag
	}
	if timeoutFlag > 0 {
		cfg.Timeout = timeoutFlag
	}
	return client.NewClient(cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
