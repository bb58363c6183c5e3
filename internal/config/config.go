package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// CLIOptions holds command-line arguments and overrides
type CLIOptions struct {
	InputPath   string // first positional argument: GPX export to read
	OutputPath  string // second positional argument: HTML file to write
	HomeCountry string // -home-country: country whose states get their own section
	Fragment    bool   // -fragment: write the report without html/head/body tags
	ShowHelp    bool   // -help: show usage
	ShowVersion bool   // -version: show version
}

// HasPaths reports whether both positional arguments were given.
func (o *CLIOptions) HasPaths() bool {
	return o.InputPath != "" && o.OutputPath != ""
}

// ParseCLI parses the process arguments and returns CLIOptions.
// Exits on malformed flags, like the flag package does.
func ParseCLI() *CLIOptions {
	opts, err := ParseArgs(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}
	return opts
}

// usage holds the flag set the last parse ran with, for PrintUsage.
var usage func()

// ParseArgs parses args (without the program name). Usage and flag errors
// are written to out.
func ParseArgs(program string, args []string, out io.Writer) (*CLIOptions, error) {
	opts := &CLIOptions{}

	fs := flag.NewFlagSet(program, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&opts.HomeCountry, "home-country", "", "Country whose states get their own section (overrides HOME_COUNTRY)")
	fs.BoolVar(&opts.Fragment, "fragment", false, "Write an embeddable fragment without html/head/body tags")
	fs.BoolVar(&opts.ShowHelp, "help", false, "Show usage information")
	fs.BoolVar(&opts.ShowVersion, "version", false, "Show version information")

	// Custom usage message
	fs.Usage = func() {
		_, _ = fmt.Fprintf(out, "GC Logs Analyzer - Statistics of your geocache finds as HTML\n\n")
		_, _ = fmt.Fprintf(out, "Usage: %s [options] <GPX-file> <HTML-file>\n\n", program)
		_, _ = fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(out, "\nExamples:\n")
		_, _ = fmt.Fprintf(out, "  %s MyFinds.gpx report.html\n", program)
		_, _ = fmt.Fprintf(out, "  %s -fragment -home-country Austria MyFinds.gpx blog/finds.html\n", program)
		_, _ = fmt.Fprintf(out, "\nEnvironment variables can be set in .env file or exported directly.\n")
		_, _ = fmt.Fprintf(out, "CLI arguments override environment variables.\n")
	}
	usage = fs.Usage

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		opts.InputPath = fs.Arg(0)
	}
	if fs.NArg() > 1 {
		opts.OutputPath = fs.Arg(1)
	}

	return opts, nil
}

// PrintUsage prints the command-line usage information
func PrintUsage() {
	if usage == nil {
		_, _ = ParseArgs(filepath.Base(os.Args[0]), nil, os.Stderr)
	}
	usage()
}

// Config holds all application configuration
type Config struct {
	// Input and output
	InputPath       string `validate:"required"`
	OutputPath      string `validate:"required"`
	MaxInputSizeMB  int    `validate:"min=1,max=1024"`
	HTMLPageWrapper bool   // false writes a fragment for embedding

	// Analyses
	HomeCountry         string `validate:"required"`
	AnniversaryInterval int    `validate:"min=1"`
	MinOwnerFounds      int    `validate:"min=1"`

	// Telegram (optional, enabled by TELEGRAM_BOT_TOKEN)
	TelegramBotToken  string
	TelegramChannelID int64 `validate:"required_with=TelegramBotToken"`

	// Application
	LogLevel string
	LogDir   string `validate:"required"`
}

// Load loads configuration from .env file and environment variables
// Priority: .env file > OS environment variables
// For CLI arguments, use LoadWithCLI instead
func Load() (*Config, error) {
	return LoadWithCLI(nil)
}

// LoadWithCLI loads configuration with CLI argument overrides
// Priority: CLI args > .env file > OS environment variables
func LoadWithCLI(cli *CLIOptions) (*Config, error) {
	// Set up viper first to read OS environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Load .env file to override OS environment variables
	// godotenv.Load() sets OS env vars from .env, which viper will then read
	_ = godotenv.Load()

	// Set defaults
	setDefaults()

	config := &Config{
		MaxInputSizeMB:  viper.GetInt("MAX_INPUT_SIZE_MB"),
		HTMLPageWrapper: viper.GetBool("HTML_PAGE_WRAPPER"),

		HomeCountry:         viper.GetString("HOME_COUNTRY"),
		AnniversaryInterval: viper.GetInt("ANNIVERSARY_INTERVAL"),
		MinOwnerFounds:      viper.GetInt("MIN_OWNER_FOUNDS"),

		TelegramBotToken:  viper.GetString("TELEGRAM_BOT_TOKEN"),
		TelegramChannelID: viper.GetInt64("TELEGRAM_CHANNEL_ID"),

		LogLevel: viper.GetString("LOG_LEVEL"),
		LogDir:   viper.GetString("LOG_DIR"),
	}

	// Apply CLI overrides (highest priority)
	if cli != nil {
		config.InputPath = cli.InputPath
		config.OutputPath = cli.OutputPath
		if cli.HomeCountry != "" {
			config.HomeCountry = cli.HomeCountry
		}
		if cli.Fragment {
			config.HTMLPageWrapper = false
		}
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("MAX_INPUT_SIZE_MB", 256)
	viper.SetDefault("HTML_PAGE_WRAPPER", true)
	viper.SetDefault("HOME_COUNTRY", "Germany")
	viper.SetDefault("ANNIVERSARY_INTERVAL", 100)
	viper.SetDefault("MIN_OWNER_FOUNDS", 5)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_DIR", "./logs")
}

var (
	telegramTokenRegex = regexp.MustCompile(`^\d+:[A-Za-z0-9_-]+$`)

	validate = validator.New()

	// fieldMessages maps a failed struct tag to the message users see
	fieldMessages = map[string]string{
		"InputPath":           "input GPX file is required",
		"OutputPath":          "output HTML file is required",
		"MaxInputSizeMB":      "MAX_INPUT_SIZE_MB must be between 1 and 1024",
		"HomeCountry":         "HOME_COUNTRY cannot be empty",
		"AnniversaryInterval": "ANNIVERSARY_INTERVAL must be at least 1",
		"MinOwnerFounds":      "MIN_OWNER_FOUNDS must be at least 1",
		"TelegramChannelID":   "TELEGRAM_CHANNEL_ID is required when TELEGRAM_BOT_TOKEN is set",
		"LogDir":              "LOG_DIR cannot be empty",
	}
)

// Validate validates the configuration
func (c *Config) Validate() error {
	// Field rules from the struct tags
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			if msg, ok := fieldMessages[fieldErrs[0].Field()]; ok {
				return errors.New(msg)
			}
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if filepath.Clean(c.InputPath) == filepath.Clean(c.OutputPath) {
		return fmt.Errorf("output file must differ from input file")
	}
	if strings.TrimSpace(c.HomeCountry) == "" {
		return errors.New(fieldMessages["HomeCountry"])
	}

	// Validate Telegram settings only when enabled
	if err := c.validateTelegram(); err != nil {
		return err
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	return nil
}

// validateTelegram validates notifier settings when a bot token is set
func (c *Config) validateTelegram() error {
	if c.TelegramBotToken == "" {
		return nil
	}

	if !telegramTokenRegex.MatchString(c.TelegramBotToken) {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN has invalid format (expected: 'number:token')")
	}

	if c.TelegramChannelID > -100 {
		return fmt.Errorf("TELEGRAM_CHANNEL_ID must be a supergroup/channel ID (starts with -100)")
	}

	return nil
}

// NotificationsEnabled returns true if a Telegram bot token is configured
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramBotToken != ""
}
