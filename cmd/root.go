package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/utils"
	"github.com/sudoplatform-labs/sudo-di-agent-console/cmds"
)

const envPrefix = "ACLI"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: utils.Version,
	Use:     "di-agent-console",
	Short:   "Console for operating a cloud DI agent",
	Long: `
Console for operating a cloud decentralized-identity agent over its
admin API: connections, credential issuance, proof presentation.
	`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cmds.ParseLoggingArgs(rootFlags.logging)
		handleViperFlags(cmd)
		applySettings()
	},
}

// Execute root
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// errors are printed by cobra already
		os.Exit(1)
	}
}

// RootFlags are the common flags
type RootFlags struct {
	cfgFile      string
	dryRun       bool
	logging      string
	url          string
	apiKey       string
	timeout      time.Duration
	pollInterval time.Duration
	pollTicks    int
}

var rootFlags = RootFlags{}

var rootEnvs = map[string]string{
	"config":        "CONFIG",
	"logging":       "LOGGING",
	"dry-run":       "DRY_RUN",
	"url":           "URL",
	"api-key":       "API_KEY",
	"timeout":       "TIMEOUT",
	"poll-interval": "POLL_INTERVAL",
	"poll-ticks":    "POLL_TICKS",
}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootFlags.cfgFile, "config", "",
		flagInfo("configuration file", "", rootEnvs["config"]))
	flags.StringVar(&rootFlags.logging, "logging", "-logtostderr=true -v=0",
		flagInfo("logging startup arguments", "", rootEnvs["logging"]))
	flags.BoolVarP(&rootFlags.dryRun, "dry-run", "n", false,
		flagInfo("perform a trial run with no changes made", "", rootEnvs["dry-run"]))
	flags.StringVar(&rootFlags.url, "url", "http://localhost:8021",
		flagInfo("agent admin API URL", "", rootEnvs["url"]))
	flags.StringVar(&rootFlags.apiKey, "api-key", "",
		flagInfo("agent admin API key", "", rootEnvs["api-key"]))
	flags.DurationVar(&rootFlags.timeout, "timeout", utils.HTTPReqTimeout,
		flagInfo("admin API request timeout", "", rootEnvs["timeout"]))
	flags.DurationVar(&rootFlags.pollInterval, "poll-interval", 2*time.Second,
		flagInfo("refresh scheduler tick period", "", rootEnvs["poll-interval"]))
	flags.IntVar(&rootFlags.pollTicks, "poll-ticks", 30,
		flagInfo("ticks per refresh countdown", "", rootEnvs["poll-ticks"]))

	try.To(viper.BindPFlag("logging", flags.Lookup("logging")))
	try.To(viper.BindPFlag("dry-run", flags.Lookup("dry-run")))
	try.To(viper.BindPFlag("url", flags.Lookup("url")))
	try.To(viper.BindPFlag("api-key", flags.Lookup("api-key")))
	try.To(viper.BindPFlag("timeout", flags.Lookup("timeout")))
	try.To(viper.BindPFlag("poll-interval", flags.Lookup("poll-interval")))
	try.To(viper.BindPFlag("poll-ticks", flags.Lookup("poll-ticks")))

	try.To(BindEnvs(rootEnvs, ""))
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	replacer := strings.NewReplacer("-", "_")
	viper.SetEnvKeyReplacer(replacer)
	readConfigFile()
	readBoundRootFlags()
}

func readBoundRootFlags() {
	rootFlags.logging = viper.GetString("logging")
	rootFlags.dryRun = viper.GetBool("dry-run")
	rootFlags.url = viper.GetString("url")
	rootFlags.apiKey = viper.GetString("api-key")
	if d := viper.GetDuration("timeout"); d > 0 {
		rootFlags.timeout = d
	}
	if d := viper.GetDuration("poll-interval"); d > 0 {
		rootFlags.pollInterval = d
	}
	if n := viper.GetInt("poll-ticks"); n > 0 {
		rootFlags.pollTicks = n
	}
}

func readConfigFile() {
	cfgEnv := os.Getenv(getEnvName("", "config"))
	if rootFlags.cfgFile != "" || cfgEnv != "" {
		printInfo := true
		if rootFlags.cfgFile == "" {
			rootFlags.cfgFile = cfgEnv
			printInfo = false
		}
		viper.SetConfigFile(rootFlags.cfgFile)
		// If a config file is found, read it in.
		if err := viper.ReadInConfig(); err == nil && printInfo {
			fmt.Println("Using config file:", viper.ConfigFileUsed())
		}
	}
}

func applySettings() {
	utils.Settings.SetGatewayURL(rootFlags.url)
	utils.Settings.SetAPIKey(rootFlags.apiKey)
	utils.Settings.SetTimeout(rootFlags.timeout)
	utils.Settings.SetPollInterval(rootFlags.pollInterval)
	utils.Settings.SetPollTicks(rootFlags.pollTicks)
}

// baseCmd builds the shared command part from the settings hub, which
// PersistentPreRun fills from the bound root flags.
func baseCmd() cmds.Cmd {
	return cmds.Cmd{
		GatewayURL: utils.Settings.GatewayURL(),
		APIKey:     utils.Settings.APIKey(),
	}
}

// BindEnvs calls viper.BindEnv with envMap and cmdName which can be
// empty if flag is general.
func BindEnvs(envMap map[string]string, cmdName string) (err error) {
	defer err2.Handle(&err)
	for flagKey, envName := range envMap {
		finalEnvName := getEnvName(cmdName, envName)
		try.To(viper.BindEnv(flagKey, finalEnvName))
	}
	return nil
}

func flagInfo(info, cmdPrefix, envName string) string {
	return info + ", " + getEnvName(cmdPrefix, envName)
}

func getEnvName(cmdName, envName string) string {
	if cmdName == "" {
		return envPrefix + "_" + strings.ToUpper(envName)
	}
	return envPrefix + "_" + strings.ToUpper(cmdName) + "_" + envName
}

func handleViperFlags(cmd *cobra.Command) {
	setRequiredStringFlags(cmd)
	if cmd.HasParent() {
		handleViperFlags(cmd.Parent())
	}
}

func setRequiredStringFlags(cmd *cobra.Command) {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	try.To(viper.BindPFlags(cmd.LocalFlags()))
	if cmd.PreRunE != nil {
		try.To(cmd.PreRunE(cmd, nil))
	}
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if viper.GetString(f.Name) != "" {
			try.To(cmd.LocalFlags().Set(f.Name, viper.GetString(f.Name)))
		}
	})
}

// SubCmdNeeded prints the help and error messages because the cmd is
// abstract.
func SubCmdNeeded(cmd *cobra.Command) {
	fmt.Println("Subcommand needed!")
	_ = cmd.Help()
	os.Exit(1)
}

// execute runs one console command: validate always, exec unless this
// is a dry run.
func execute(cmd *cobra.Command, c cmds.Command) (err error) {
	defer err2.Handle(&err)

	try.To(c.Validate())
	if !rootFlags.dryRun {
		cmd.SilenceUsage = true
		_ = try.To1(c.Exec(os.Stdout))
	}
	return nil
}
