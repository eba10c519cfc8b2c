package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/jimezsa/jobhunt/internal/api"
	"github.com/jimezsa/jobhunt/internal/cmd"
	"github.com/jimezsa/jobhunt/internal/config"
	"github.com/jimezsa/jobhunt/internal/network"
	"github.com/jimezsa/jobhunt/internal/session"
	"github.com/jimezsa/jobhunt/internal/store"
	"github.com/jimezsa/jobhunt/internal/ui"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

const proxyBanDuration = 10 * time.Minute

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, err)
	}

	cli := cmd.NewCLI()
	applyEnvDefaults(cli)
	versionString := buildVersion()

	parser, err := kong.New(cli,
		kong.Name("jobhunt"),
		kong.Description("Certified job listings from the terminal."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": versionString},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		fallbackUI := ui.New(os.Stdout, os.Stderr, ui.NormalizeColorMode(os.Getenv("JOBHUNT_COLOR")), false, ui.ThemeLight)
		fallbackUI.Errorf("%v", err)
		os.Exit(1)
	}

	level := zerolog.InfoLevel
	if cli.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	runCtx, err := newContext(cli, logger, versionString)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := kctx.Run(runCtx); err != nil {
		runCtx.UI.Errorf("%v", err)
		os.Exit(1)
	}
}

func newContext(cli *cmd.CLI, logger zerolog.Logger, versionString string) (*cmd.Context, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	configDir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}
	statePath, err := config.StatePath()
	if err != nil {
		return nil, err
	}

	bootCtx := context.Background()
	st, err := store.Open(bootCtx, statePath, cfg.StoreURL)
	if err != nil {
		return nil, fmt.Errorf("open state: %w", err)
	}
	sess, err := session.Open(bootCtx, st)
	if err != nil {
		return nil, err
	}

	theme, err := cmd.LoadTheme(bootCtx, st)
	if err != nil {
		logger.Debug().Err(err).Msg("theme unavailable")
	}
	colorMode := ui.NormalizeColorMode(cli.Color)
	disableColor := cli.JSON || cli.Plain
	userInterface := ui.New(os.Stdout, os.Stderr, colorMode, disableColor, theme)

	proxies, err := config.LoadProxies(cli.ProxyList)
	if err != nil {
		return nil, err
	}
	rotator, err := network.NewRotator(proxies, proxyBanDuration)
	if err != nil {
		return nil, err
	}
	netClient, err := network.NewClient(network.Options{
		Rotator: rotator,
		Timeout: cfg.Timeout(),
	})
	if err != nil {
		return nil, err
	}

	return &cmd.Context{
		Out:        os.Stdout,
		Err:        os.Stderr,
		UI:         userInterface,
		Config:     cfg,
		ConfigDir:  configDir,
		Logger:     logger,
		Verbose:    cli.Verbose,
		JSONOutput: cli.JSON,
		PlainText:  cli.Plain,
		Version:    versionString,
		ColorMode:  colorMode,
		Proxies:    proxies,
		Store:      st,
		Session:    sess,
		API:        api.New(netClient, cfg.APIURL, sess, logger),
	}, nil
}

func buildVersion() string {
	if commit == "" && date == "" {
		return version
	}
	if commit == "" {
		return fmt.Sprintf("%s (%s)", version, date)
	}
	if date == "" {
		return fmt.Sprintf("%s (%s)", version, commit)
	}
	return fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

func applyEnvDefaults(cli *cmd.CLI) {
	if envBool("JOBHUNT_JSON") {
		cli.JSON = true
	}
	if envBool("JOBHUNT_VERBOSE") {
		cli.Verbose = true
	}
	if value := os.Getenv("JOBHUNT_COLOR"); value != "" {
		cli.Color = value
	}
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
