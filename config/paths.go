package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
)

var (
	configDir      = "timebox"
	configFileName = "config.yml"
	stateFileName  = "timebox.json"
	dbFileName     = "timebox.db"
	logFileName    = "timebox.log"

	configFilePath string
	dataDirPath    string
	logFilePath    string
)

// DataDir is the directory holding the persisted store state.
func DataDir() string {
	return dataDirPath
}

func LogFilePath() string {
	return logFilePath
}

func ConfigFilePath() string {
	return configFilePath
}

// InitializePaths resolves the XDG locations for the config file, the data
// directory, and the log file. TIMEBOX_ENV suffixes the file names so test
// runs never touch real data.
func InitializePaths() {
	env := strings.TrimSpace(os.Getenv("TIMEBOX_ENV"))
	if env != "" {
		configFileName = fmt.Sprintf("config_%s.yml", env)
		stateFileName = fmt.Sprintf("timebox_%s.json", env)
		dbFileName = fmt.Sprintf("timebox_%s.db", env)
		logFileName = fmt.Sprintf("timebox_%s.log", env)
	}

	var err error

	configFilePath, err = xdg.ConfigFile(
		filepath.Join(configDir, configFileName),
	)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dataFile, err := xdg.DataFile(filepath.Join(configDir, stateFileName))
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dataDirPath = filepath.Dir(dataFile)

	logFilePath, err = xdg.StateFile(filepath.Join(configDir, logFileName))
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
