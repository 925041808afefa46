package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	"github.com/reefdb/reefdb-go/pkg/utils"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_EMULATOR_API_KEY       = "EMULATOR_API_KEY"
	ENV_SESSION_TOKEN_SIGN_KEY = "SESSION_TOKEN_SIGN_KEY"
)

type emulatorConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`
	} `json:"gin_config" yaml:"gin_config"`

	ApiKeys []string `json:"api_keys" yaml:"api_keys"`

	SessionTokens struct {
		SignKey   string        `json:"sign_key" yaml:"sign_key"`
		ExpiresIn time.Duration `json:"expires_in" yaml:"expires_in"`
	} `json:"session_tokens" yaml:"session_tokens"`
}

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	utils.InitLogger(conf.Logging)

	// Override secrets from environment variables
	if apiKey := os.Getenv(ENV_EMULATOR_API_KEY); apiKey != "" {
		conf.ApiKeys = append(conf.ApiKeys, apiKey)
	}
	if signKey := os.Getenv(ENV_SESSION_TOKEN_SIGN_KEY); signKey != "" {
		conf.SessionTokens.SignKey = signKey
	}
	if conf.SessionTokens.ExpiresIn <= 0 {
		conf.SessionTokens.ExpiresIn = time.Hour
	}

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
}
