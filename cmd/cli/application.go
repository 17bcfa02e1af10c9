package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/repoinsight/internal/backend"
	"github.com/temirov/repoinsight/internal/commits"
	"github.com/temirov/repoinsight/internal/dependencies"
	"github.com/temirov/repoinsight/internal/docstrings"
	"github.com/temirov/repoinsight/internal/docsite"
	"github.com/temirov/repoinsight/internal/output"
	"github.com/temirov/repoinsight/internal/ui"
	"github.com/temirov/repoinsight/internal/utils"
	"github.com/temirov/repoinsight/internal/utils/flags"
	pathutils "github.com/temirov/repoinsight/internal/utils/path"
)

const (
	applicationNameConstant                    = "repoinsight"
	applicationShortDescriptionConstant        = "Command-line client for the repository analysis backend"
	applicationLongDescriptionConstant         = "repoinsight submits GitHub and GitLab repository URLs to the repository analysis backend and renders commit history, dependencies, docstring generation results, and documentation builds."
	configFileFlagNameConstant                 = "config"
	configFileFlagUsageConstant                = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                   = "log-level"
	logLevelFlagUsageConstant                  = "Override the configured log level."
	logFormatFlagNameConstant                  = "log-format"
	logFormatFlagUsageConstant                 = "Override the configured log format."
	environmentFileFlagNameConstant            = "env-file"
	environmentFileFlagUsageConstant           = "Dotenv file loaded before environment overrides; missing files are ignored."
	outputFormatFlagNameConstant               = "output-format"
	outputFormatFlagUsageConstant              = "Override the configured result format."
	colorFlagNameConstant                      = "color"
	colorFlagUsageConstant                     = "Override the configured color mode for text results."
	backendURLFlagNameConstant                 = "backend-url"
	backendURLFlagUsageConstant                = "Override the configured backend base URL."
	defaultBackendBaseURLConstant              = "http://127.0.0.1:8000"
	defaultEndpointPrefixConstant              = "repoanalyze"
	defaultEnvironmentFileConstant             = ".env"
	commonConfigurationKeyConstant             = "common"
	commonLogLevelConfigKeyConstant            = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant           = commonConfigurationKeyConstant + ".log_format"
	backendConfigurationKeyConstant            = "backend"
	backendBaseURLConfigKeyConstant            = backendConfigurationKeyConstant + ".base_url"
	backendEndpointPrefixConfigKeyConstant     = backendConfigurationKeyConstant + ".endpoint_prefix"
	backendTimeoutConfigKeyConstant            = backendConfigurationKeyConstant + ".timeout"
	outputConfigurationKeyConstant             = "output"
	outputFormatConfigKeyConstant              = outputConfigurationKeyConstant + ".format"
	outputColorConfigKeyConstant               = outputConfigurationKeyConstant + ".color"
	environmentPrefixConstant                  = "REPOINSIGHT"
	configurationNameConstant                  = "config"
	configurationTypeConstant                  = "yaml"
	configurationInitializedMessageConstant    = "configuration initialized"
	configurationLogLevelFieldConstant         = "log_level"
	configurationLogFormatFieldConstant        = "log_format"
	configurationFileFieldConstant             = "config_file"
	configurationEnvironmentFilesFieldConstant = "environment_files"
	configurationBackendURLFieldConstant       = "backend_url"
	configurationLoadErrorTemplateConstant     = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant        = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant            = "unable to flush logger: %w"
	outputConfigurationErrorTemplateConstant   = "invalid output configuration: %w"
	backendClientErrorTemplateConstant         = "unable to create backend client: %w"
	rootCommandInfoMessageConstant             = "repoinsight CLI executed"
	rootCommandDebugMessageConstant            = "repoinsight CLI diagnostics"
	logFieldCommandNameConstant                = "command_name"
	logFieldArgumentCountConstant              = "argument_count"
	logFieldArgumentsConstant                  = "arguments"
	loggerNotInitializedMessageConstant        = "logger not initialized"
	defaultConfigurationSearchPathConstant     = "."
	userConfigurationDirectoryConstant         = ".repoinsight"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common  ApplicationCommonConfiguration  `mapstructure:"common"`
	Backend ApplicationBackendConfiguration `mapstructure:"backend"`
	Output  ApplicationOutputConfiguration  `mapstructure:"output"`
	Tools   ApplicationToolsConfiguration   `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationBackendConfiguration describes how to reach the repository analysis backend.
type ApplicationBackendConfiguration struct {
	BaseURL        string        `mapstructure:"base_url"`
	EndpointPrefix string        `mapstructure:"endpoint_prefix"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// ApplicationOutputConfiguration controls how command results are rendered.
type ApplicationOutputConfiguration struct {
	Format string `mapstructure:"format"`
	Color  string `mapstructure:"color"`
}

// ApplicationToolsConfiguration holds configuration for CLI subcommands.
type ApplicationToolsConfiguration struct {
	Docstrings docstrings.Configuration `mapstructure:"docstrings"`
	Docs       docsite.Configuration    `mapstructure:"docs"`
}

// Application wires the Cobra root command, configuration loader, structured logger, and backend client.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	environmentFilePath    string
	outputFormatFlagValue  string
	colorFlagValue         string
	backendURLFlagValue    string
	outputFormat           output.Format
	colorMode              ui.ColorMode
	commandContextAccessor utils.CommandContextAccessor
	homeExpander           *pathutils.HomeExpander
	httpClient             backend.HTTPClient
	backendClientOnce      sync.Once
	backendClient          *backend.Client
	backendClientError     error
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	homeExpander := pathutils.NewHomeExpander()
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant, homeExpander.Expand(filepath.Join("~", userConfigurationDirectoryConstant))},
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		outputFormat:           output.FormatText,
		colorMode:              ui.ColorModeAuto,
		commandContextAccessor: utils.NewCommandContextAccessor(),
		homeExpander:           homeExpander,
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	persistentFlags := cobraCommand.PersistentFlags()
	persistentFlags.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	persistentFlags.StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	flags.AddChoiceFlag(persistentFlags, &application.logFormatFlagValue, logFormatFlagNameConstant, string(utils.LogFormatStructured), []string{string(utils.LogFormatStructured), string(utils.LogFormatConsole)}, logFormatFlagUsageConstant)
	persistentFlags.StringVar(&application.environmentFilePath, environmentFileFlagNameConstant, defaultEnvironmentFileConstant, environmentFileFlagUsageConstant)
	flags.AddChoiceFlag(persistentFlags, &application.outputFormatFlagValue, outputFormatFlagNameConstant, string(output.FormatText), output.SupportedFormats(), outputFormatFlagUsageConstant)
	flags.AddChoiceFlag(persistentFlags, &application.colorFlagValue, colorFlagNameConstant, string(ui.ColorModeAuto), []string{string(ui.ColorModeAuto), string(ui.ColorModeAlways), string(ui.ColorModeNever)}, colorFlagUsageConstant)
	persistentFlags.StringVar(&application.backendURLFlagValue, backendURLFlagNameConstant, "", backendURLFlagUsageConstant)

	commitsBuilder := commits.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		FetcherResolver: func(*zap.Logger) (commits.HistoryFetcher, error) {
			return application.resolveBackendClient()
		},
		RendererProvider: application.newRenderer,
	}
	commitsCommand, commitsBuildError := commitsBuilder.Build()
	if commitsBuildError == nil {
		cobraCommand.AddCommand(commitsCommand)
	}

	dependenciesBuilder := dependencies.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		FetcherResolver: func(*zap.Logger) (dependencies.Fetcher, error) {
			return application.resolveBackendClient()
		},
		RendererProvider: application.newRenderer,
	}
	dependenciesCommand, dependenciesBuildError := dependenciesBuilder.Build()
	if dependenciesBuildError == nil {
		cobraCommand.AddCommand(dependenciesCommand)
	}

	docstringsBuilder := docstrings.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConfigurationProvider: func() docstrings.Configuration {
			return application.configuration.Tools.Docstrings
		},
		BackendResolver: func(*zap.Logger) (docstrings.Backend, error) {
			return application.resolveBackendClient()
		},
		RendererProvider: application.newRenderer,
		HomeExpander:     homeExpander,
	}
	docstringsCommand, docstringsBuildError := docstringsBuilder.Build()
	if docstringsBuildError == nil {
		cobraCommand.AddCommand(docstringsCommand)
	}

	documentationBuilder := docsite.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConfigurationProvider: func() docsite.Configuration {
			return application.configuration.Tools.Docs
		},
		BackendResolver: func(*zap.Logger) (docsite.Backend, error) {
			return application.resolveBackendClient()
		},
		RendererProvider: application.newRenderer,
		HomeExpander:     homeExpander,
	}
	documentationCommand, documentationBuildError := documentationBuilder.Build()
	if documentationBuildError == nil {
		cobraCommand.AddCommand(documentationCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy with the given arguments and ensures logger flushing.
// Toggle flags written as "--flag value" are normalized before parsing.
func (application *Application) Execute(arguments []string) error {
	normalizedArguments := flags.NormalizeToggleArguments(arguments)
	if normalizedArguments == nil {
		normalizedArguments = []string{}
	}
	application.rootCommand.SetArgs(normalizedArguments)
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute(arguments []string) error {
	return NewApplication().Execute(arguments)
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:        string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant:       string(utils.LogFormatStructured),
		backendBaseURLConfigKeyConstant:        defaultBackendBaseURLConstant,
		backendEndpointPrefixConfigKeyConstant: defaultEndpointPrefixConstant,
		backendTimeoutConfigKeyConstant:        time.Duration(0),
		outputFormatConfigKeyConstant:          string(output.FormatText),
		outputColorConfigKeyConstant:           string(ui.ColorModeAuto),
	}

	application.configurationLoader.SetEnvironmentFiles(application.environmentFilePath)
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}
	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}
	if application.persistentFlagChanged(command, outputFormatFlagNameConstant) {
		application.configuration.Output.Format = application.outputFormatFlagValue
	}
	if application.persistentFlagChanged(command, colorFlagNameConstant) {
		application.configuration.Output.Color = application.colorFlagValue
	}
	if application.persistentFlagChanged(command, backendURLFlagNameConstant) {
		application.configuration.Backend.BaseURL = application.backendURLFlagValue
	}

	outputFormat, formatError := output.ParseFormat(application.configuration.Output.Format)
	if formatError != nil {
		return fmt.Errorf(outputConfigurationErrorTemplateConstant, formatError)
	}
	colorMode, colorError := ui.ParseColorMode(application.configuration.Output.Color)
	if colorError != nil {
		return fmt.Errorf(outputConfigurationErrorTemplateConstant, colorError)
	}
	application.outputFormat = outputFormat
	application.colorMode = colorMode

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
		zap.Strings(configurationEnvironmentFilesFieldConstant, application.configurationMetadata.EnvironmentFilesUsed),
		zap.String(configurationBackendURLFieldConstant, application.configuration.Backend.BaseURL),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		updatedContext = application.commandContextAccessor.WithSessionIdentifier(updatedContext)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

// resolveBackendClient builds the backend client on first use so commands that fail validation never need one.
func (application *Application) resolveBackendClient() (*backend.Client, error) {
	application.backendClientOnce.Do(func() {
		httpClient := application.httpClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: application.configuration.Backend.Timeout}
		}

		var observer backend.RequestEventObserver
		if application.humanReadableLoggingEnabled() {
			observer = ui.NewConsoleRequestEventLogger(application.logger)
		}

		client, clientError := backend.NewClient(application.logger, httpClient, backend.ServiceConfiguration{
			BaseURL:                   application.configuration.Backend.BaseURL,
			EndpointPrefix:            application.configuration.Backend.EndpointPrefix,
			SessionIdentifierProvider: application.commandContextAccessor.SessionIdentifier,
		}, observer)
		if clientError != nil {
			application.backendClientError = fmt.Errorf(backendClientErrorTemplateConstant, clientError)
			return
		}
		application.backendClient = client
	})
	return application.backendClient, application.backendClientError
}

func (application *Application) newRenderer(writer io.Writer) *output.Renderer {
	return output.NewRenderer(writer, application.outputFormat, ui.NewPalette(writer, application.colorMode))
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	return command.Help()
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	case errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
