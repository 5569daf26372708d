package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cfngen/awsd"
	"cfngen/configuration"
	"cfngen/errors"
	"cfngen/generator"
	"cfngen/logger"
	"cfngen/output"
)

const (
	packageName = "main"
)

func main() {
	// Initialize logger
	if err := logger.Initialize("info"); err != nil {
		panic(errors.New(errors.ErrConfigParse, "Failed to initialize logger",
			map[string]interface{}{
				"operation": "logger_init",
			}, err))
	}
	defer logger.Sync()

	logger.Info("Application starting",
		zap.String("package", packageName),
		zap.String("operation", "startup"),
	)

	if err := newRootCmd().Execute(); err != nil {
		logger.Sync()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	rootCmd := &cobra.Command{
		Use:   "cfngen",
		Short: "Generate a CloudFormation template declaring EC2 instances behind an SSH security group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flag parsing succeeded, from here on failures are not usage errors
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true

			err := run(cmd.Context(), envFile, cmd)
			if err != nil {
				zap.L().Error("Template generation failed",
					zap.String("package", packageName),
					zap.String("operation", "generate"),
					zap.Error(err),
				)
			}
			return err
		},
	}

	rootCmd.Flags().StringVar(&envFile, "env-file", configuration.DefaultEnvFile, "Env file with configuration defaults")
	configuration.RegisterFlags(rootCmd.Flags())
	return rootCmd
}

func run(ctx context.Context, envFile string, cmd *cobra.Command) error {
	config, err := configuration.Initialize(envFile, cmd.Flags())
	if err != nil {
		return err
	}

	if config.LogLevel != "info" {
		if err := logger.Initialize(config.LogLevel); err != nil {
			return errors.New(errors.ErrConfigInvalid, "Failed to reinitialize logger",
				map[string]interface{}{
					"log_level": config.LogLevel,
				}, err)
		}
	}

	log := zap.L().With(zap.String("package", packageName))
	log.Info("Configuration loaded successfully",
		zap.String("operation", "config_load"),
		zap.Int("instances", config.Instances),
		zap.String("instance_type", config.InstanceType),
		zap.String("output_path", config.OutputPath),
		zap.String("output_format", string(config.OutputFormat)),
	)

	// The AWS client is only needed to verify the image
	var verifier generator.ImageVerifier
	if config.VerifyImage {
		awsClient, err := awsd.NewEC2Client(ctx, config)
		if err != nil {
			return err
		}
		verifier = awsClient
		log.Info("AWS client created successfully",
			zap.String("operation", "aws_client_creation"),
		)
	}

	service := generator.NewService(verifier, output.NewFileWriter(zap.L()), zap.L())
	if _, err := service.Generate(ctx, config); err != nil {
		return err
	}

	log.Info("Template generated",
		zap.String("operation", "generate"),
		zap.String("path", config.OutputPath),
	)
	return nil
}
