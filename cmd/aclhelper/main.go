package main

import (
	"fmt"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"strconv"
	"syscall"

	aclhelper "github.com/maxb-odessa/aclhelper"
	"github.com/spf13/cobra"
)

const features = "sqlite3 pgsql geoip2 ssl resolve dresolve regex pcre syslog"

func main() {
	var configFile string
	var testConfig bool
	var showVersion bool

	cmd := &cobra.Command{
		Use:          "aclhelper",
		Short:        "External ACL helper for a caching HTTP proxy",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Printf("aclhelper (features: %s)\n", features)
				return nil
			}
			return run(configFile, testConfig)
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "./acl-helper.conf", "configuration file")
	cmd.Flags().BoolVarP(&testConfig, "test", "t", false, "validate configuration and exit")
	cmd.Flags().BoolVarP(&showVersion, "version", "v", false, "show version and enabled features")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(configFile string, testConfig bool) error {
	execPath, execErr := discoverExecPath()

	cfg, err := LoadConfig(configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	configureLogging(cfg)

	if cfg.PIDFile != "" {
		if err := writePIDFile(cfg.PIDFile); err != nil {
			aclhelper.Log.WithError(err).Error("pid file error")
			os.Exit(3)
		}
		defer os.Remove(cfg.PIDFile)
	}

	if cfg.Group != "" {
		if err := dropGroup(cfg.Group); err != nil {
			aclhelper.Log.WithError(err).Error("failed to drop group privileges")
			os.Exit(4)
		}
	}
	if cfg.User != "" {
		if err := dropUser(cfg.User); err != nil {
			aclhelper.Log.WithError(err).Error("failed to drop user privileges")
			os.Exit(3)
		}
	}

	resolver := aclhelper.NewResolver(cfg.ResolveServer, cfg.ResolveTTL, cfg.ResolveNegTTL)

	var locator *aclhelper.GeoIPLocator
	if cfg.GeoIPDBFile != "" {
		locator, err = aclhelper.OpenGeoIPLocator(cfg.GeoIPDBFile)
		if err != nil {
			aclhelper.Log.WithError(err).Error("geoip2 init failed")
			os.Exit(13)
		}
	}

	driverCfg := aclhelper.DriverConfig{
		SSLCAFile:     cfg.SSLCAFile,
		SSLTimeout:    cfg.SSLTimeout,
		SSLVerifyTTL:  cfg.SSLVerifyTTL,
		GeoIPDBFile:   cfg.GeoIPDBFile,
		ResolveServer: cfg.ResolveServer,
		ResolveTTL:    cfg.ResolveTTL,
		ResolveNegTTL: cfg.ResolveNegTTL,
	}

	comps, err := buildComponents(cfg, driverCfg, resolver, locator)
	if err != nil {
		aclhelper.Log.WithError(err).Error("checker init failed")
		os.Exit(14)
	}

	if testConfig {
		return nil
	}

	if execErr == nil {
		registerHangupHandler(execPath)
	} else {
		aclhelper.Log.Warn("could not determine executable path, reconfiguration via SIGHUP is disabled")
	}
	registerTerminationHandlers()

	if err := runLoop(os.Stdin, os.Stdout, comps.chain, cfg.Concurrency); err != nil {
		aclhelper.Log.WithError(err).Error("request loop failed")
		os.Exit(99)
	}
	return nil
}

func configureLogging(cfg *Config) {
	aclhelper.SetDebugLevel(cfg.Debug)
	if cfg.Debug <= 0 {
		return
	}
	switch cfg.LogKind {
	case "syslog":
		hook, err := aclhelper.NewSyslogHook("", "", cfg.LogIdent, cfg.LogTarget)
		if err != nil {
			aclhelper.Log.WithError(err).Warn("failed to initialize syslog, logging to stderr")
			return
		}
		aclhelper.Log.AddHook(hook)
	case "file":
		f, err := os.OpenFile(cfg.LogTarget, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			aclhelper.Log.WithError(err).Warn("failed to open log file, logging to stderr")
			return
		}
		aclhelper.Log.SetOutput(f)
	}
}

// writePIDFile refuses to start if another live process already
// owns path, and otherwise overwrites it with the current pid.
func writePIDFile(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	var existing int
	fmt.Fscanf(f, "%d", &existing)
	if existing > 0 {
		if proc, err := os.FindProcess(existing); err == nil {
			if proc.Signal(syscall.Signal(0)) == nil {
				return fmt.Errorf("another instance is already running with pid %d", existing)
			}
		}
	}

	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.Seek(0, 0); err != nil {
		return err
	}
	_, err = fmt.Fprintf(f, "%d\n", os.Getpid())
	return err
}

func dropGroup(name string) error {
	g, err := user.LookupGroup(name)
	if err != nil {
		return err
	}
	gid, err := strconv.Atoi(g.Gid)
	if err != nil {
		return err
	}
	return syscall.Setgid(gid)
}

func dropUser(name string) error {
	u, err := user.Lookup(name)
	if err != nil {
		return err
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return err
	}
	return syscall.Setuid(uid)
}

// discoverExecPath finds the running binary's path so a SIGHUP can
// re-exec it. os.Executable already covers the reference
// implementation's /proc/self/exe and auxiliary-vector lookups on
// Linux; argv[0] is the last-resort fallback.
func discoverExecPath() (string, error) {
	if path, err := os.Executable(); err == nil {
		return path, nil
	}
	if len(os.Args) > 0 {
		if abs, err := filepath.Abs(os.Args[0]); err == nil {
			return abs, nil
		}
	}
	return "", fmt.Errorf("could not determine executable path")
}

func registerHangupHandler(execPath string) {
	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			aclhelper.Log.Info("received SIGHUP, re-executing")
			if err := syscall.Exec(execPath, os.Args, os.Environ()); err != nil {
				aclhelper.Log.WithError(err).Error("re-exec failed")
			}
		}
	}()
}

func registerTerminationHandlers() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGABRT)
	go func() {
		sig := <-sigs
		aclhelper.Log.WithField("signal", sig).Info("exiting on signal")
		os.Exit(int(sig.(syscall.Signal)))
	}()
}
