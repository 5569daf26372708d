package configuration

import (
	stderrors "errors"
	"io/fs"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"cfngen/errors"
	"cfngen/logger"
	"cfngen/output"
)

const (
	packageName = "configuration"

	// DefaultEnvFile is read when no other env file is given
	DefaultEnvFile = ".env"
)

const (
	keyInstances    = "INSTANCES"
	keyInstanceType = "INSTANCE_TYPE"
	keyAllowSSHFrom = "ALLOW_SSH_FROM"
	keyOutputPath   = "OUTPUT_PATH"
	keyOutputFormat = "OUTPUT_FORMAT"
	keyParamsFile   = "PARAMS_FILE"
	keyVerifyImage  = "VERIFY_IMAGE"
	keyLogLevel     = "LOG_LEVEL"
	keyAWSRegion    = "AWS_REGION"
	keyAccessKeyID  = "AWS_ACCESS_KEY_ID"
	keySecretKey    = "AWS_SECRET_ACCESS_KEY"
	keyEndpointURL  = "AWS_ENDPOINT_URL"
)

// flagKeys maps command-line flag names onto configuration keys
var flagKeys = map[string]string{
	"instances":      keyInstances,
	"instance-type":  keyInstanceType,
	"allow-ssh-from": keyAllowSSHFrom,
	"output":         keyOutputPath,
	"format":         keyOutputFormat,
	"params-file":    keyParamsFile,
	"verify-image":   keyVerifyImage,
	"log-level":      keyLogLevel,
}

// Config holds the application configuration
type Config struct {
	Instances    int
	InstanceType string
	AllowSSHFrom string
	OutputPath   string
	OutputFormat output.Format
	ParamsFile   string
	VerifyImage  bool
	LogLevel     string
	AWSRegion    string
	AcessKeyID   string
	AccessSecret string
	EndpointURL  string
}

// Initialize loads the configuration. Sources, from highest precedence:
// flags that were set, environment, params file, env file, defaults.
func Initialize(envFile string, flags *pflag.FlagSet) (*Config, error) {
	log := zap.L().With(
		zap.String("package", packageName),
		zap.String("function", "Initialize"),
	)

	v := viper.New()

	// Set default values
	v.SetDefault(keyInstances, 1)
	v.SetDefault(keyInstanceType, "t2.micro")
	v.SetDefault(keyAllowSSHFrom, "")
	v.SetDefault(keyOutputPath, "")
	v.SetDefault(keyOutputFormat, string(output.FormatJSON))
	v.SetDefault(keyParamsFile, "")
	v.SetDefault(keyVerifyImage, false)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyAWSRegion, "us-east-1")

	// Configure Viper to read from environment
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, errors.New(errors.ErrConfigParse, "error binding flag",
					map[string]interface{}{
						"flag": name,
					}, err)
			}
		}
	}

	// Read from .env file
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) && !stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.New(errors.ErrConfigParse, "error reading config file",
				map[string]interface{}{
					"config_file": envFile,
				}, err)
		}
		log.Debug("No env file found, using environment variables and defaults",
			zap.String("operation", "config_loading"),
			zap.String("config_file", envFile),
		)
	}

	// Merge the params file above the env file
	if paramsPath := v.GetString(keyParamsFile); paramsPath != "" {
		params, err := LoadParamsFile(paramsPath)
		if err != nil {
			return nil, err
		}
		if err := v.MergeConfigMap(params.Values()); err != nil {
			return nil, errors.New(errors.ErrParamsFile, "error merging params file",
				map[string]interface{}{
					"path": paramsPath,
				}, err)
		}
		log.Info("Params file loaded",
			zap.String("path", paramsPath),
			zap.String("operation", "config_loading"),
		)
	}

	// Validate instance count. A negative count yields no instances.
	instances, err := cast.ToIntE(v.Get(keyInstances))
	if err != nil {
		return nil, errors.New(errors.ErrConfigInvalid, "invalid INSTANCES",
			map[string]interface{}{
				"config_key": keyInstances,
				"value":      v.Get(keyInstances),
			}, err)
	}
	log.Debug("Instance count configured",
		zap.Int("instances", instances),
		zap.String("operation", "config_validation"),
	)

	verifyImage, err := cast.ToBoolE(v.Get(keyVerifyImage))
	if err != nil {
		return nil, errors.New(errors.ErrConfigInvalid, "invalid VERIFY_IMAGE",
			map[string]interface{}{
				"config_key": keyVerifyImage,
				"value":      v.Get(keyVerifyImage),
			}, err)
	}

	format, err := output.ParseFormat(v.GetString(keyOutputFormat))
	if err != nil {
		return nil, errors.New(errors.ErrConfigInvalid, "invalid OUTPUT_FORMAT",
			map[string]interface{}{
				"config_key": keyOutputFormat,
				"value":      v.GetString(keyOutputFormat),
			}, err)
	}

	outputPath := v.GetString(keyOutputPath)
	if outputPath == "" {
		outputPath = output.DefaultPath(format)
	}
	log.Debug("Output configured",
		zap.String("path", outputPath),
		zap.String("format", string(format)),
		zap.String("operation", "config_validation"),
	)

	logLevel := v.GetString(keyLogLevel)
	if _, err := logger.ParseLevel(logLevel); err != nil {
		return nil, errors.New(errors.ErrConfigInvalid, "invalid LOG_LEVEL",
			map[string]interface{}{
				"config_key": keyLogLevel,
				"value":      logLevel,
			}, err)
	}

	config := &Config{
		Instances:    instances,
		InstanceType: v.GetString(keyInstanceType),
		AllowSSHFrom: v.GetString(keyAllowSSHFrom),
		OutputPath:   outputPath,
		OutputFormat: format,
		ParamsFile:   v.GetString(keyParamsFile),
		VerifyImage:  verifyImage,
		LogLevel:     logLevel,
		AWSRegion:    v.GetString(keyAWSRegion),
		AcessKeyID:   v.GetString(keyAccessKeyID),
		AccessSecret: v.GetString(keySecretKey),
		EndpointURL:  v.GetString(keyEndpointURL),
	}

	log.Debug("Configuration loaded successfully",
		zap.String("operation", "config_complete"),
	)
	return config, nil
}
