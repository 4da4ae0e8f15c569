package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
)

type configuration struct {
	global   *GlobalConfiguration
	timeSync *TimeSyncConfiguration
	anchor   *AnchorConfiguration
	http     *HttpConfiguration
}

var (
	instance                *configuration
	once                    sync.Once
	configSearchDirectories []string
	hasGlobalDebugEnabled   bool
	isBackgroundForced      bool
)

const (
	CfgFileName = "config.yaml"
	PathLocal   = "."
	PathGlobal  = "/etc/shortcal"
)

func init() {
	configSearchDirectories = append(configSearchDirectories, PathLocal)

	userHome, err := os.UserHomeDir()

	if err == nil {
		userHome = fmt.Sprintf("%s%c%s", userHome, os.PathSeparator, ".shortcal")
		configSearchDirectories = append(configSearchDirectories, userHome)
	}

	configSearchDirectories = append(configSearchDirectories, PathGlobal)
}

// RegisterFlags binds the command line flags and parses them. It has to be
// called from main before the configuration is accessed.
func RegisterFlags() {
	flag.BoolVar(&hasGlobalDebugEnabled, "debug", false, "Enable debug log; overwrites any configuration file loglevel")
	flag.BoolVar(&isBackgroundForced, "background", false, "Do not read keyboard input, even if a terminal is attached")
	flag.Parse()

	if hasGlobalDebugEnabled {
		log.SetLevel(log.DebugLevel)
		log.Debug("Debug log level enabled")
	}
}

func HasGlobalDebugEnabled() bool {
	return hasGlobalDebugEnabled
}

func IsRunningInBackgroundForced() bool {
	return isBackgroundForced
}

func GetInstance() *configuration {
	once.Do(func() {
		instance = NewConfigurationInstance(loadConfig())
	})
	return instance
}

// NewConfigurationInstance builds a configuration from an already parsed
// YAML document.
func NewConfigurationInstance(cfg Raw) *configuration {
	return &configuration{
		global:   parseGlobal(cfg),
		timeSync: parseTimeSync(cfg.Sub("time_sync")),
		anchor:   parseAnchor(cfg.Sub("anchor")),
		http:     parseHttp(cfg.Sub("http")),
	}
}

func (c *configuration) Global() *GlobalConfiguration {
	return c.global
}

func (c *configuration) TimeSync() *TimeSyncConfiguration {
	return c.timeSync
}

// Anchor returns nil if no anchor store has been configured.
func (c *configuration) Anchor() *AnchorConfiguration {
	return c.anchor
}

func (c *configuration) Http() *HttpConfiguration {
	return c.http
}

func loadConfig() Raw {
	var file *os.File = nil
	var err error = nil

	for _, directory := range configSearchDirectories {
		var possibleConfigPath = filepath.Join(directory, CfgFileName)
		log.Debugf("Checking for configuration file at %s", possibleConfigPath)

		file, err = os.Open(possibleConfigPath)

		if err == nil {
			log.Infof("Found configuration file at location %s", possibleConfigPath)
			break
		}
	}

	if file == nil {
		log.Fatal("Could not find any configuration file")
	}

	defer file.Close()

	cfg, err := Parse(file)
	if err != nil {
		log.Fatalf("Failed to parse configuration file: %s", err)
	}

	return cfg
}
