package common

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/brandboost-ai/brandboost/common/logger"
)

var (
	Port         = flag.Int("port", 3000, "the listening port")
	PrintVersion = flag.Bool("version", false, "print version and exit")
	PrintHelp    = flag.Bool("help", false, "print help and exit")
	LogDir       = flag.String("log-dir", "", "specify the log directory")
)

func printHelp() {
	fmt.Println("BrandBoost " + Version + " - turn a logo and a description into marketing assets.")
	fmt.Println("Usage: brandboost [--port <port>] [--log-dir <log directory>] [--version] [--help]")
}

// Init parses flags and resolves the log directory. Called from main, not
// from package init, so test binaries keep their own flags.
func Init() {
	flag.Parse()

	if *PrintVersion {
		fmt.Println(Version)
		os.Exit(0)
	}

	if *PrintHelp {
		printHelp()
		os.Exit(0)
	}

	if os.Getenv("SESSION_SECRET") == "random_string" {
		logger.SysError("SESSION_SECRET is set to an example value, please change it to a random string.")
	}

	// Priority: command line flag > environment variable > default.
	logDir := *LogDir
	if logDir == "" {
		logDir = os.Getenv("LOG_DIR")
	}
	if logDir == "" {
		logDir = "./logs"
	}

	if logDir != "" {
		var err error
		logDir, err = filepath.Abs(logDir)
		if err != nil {
			log.Fatal(err)
		}
		if _, err := os.Stat(logDir); os.IsNotExist(err) {
			err = os.Mkdir(logDir, 0777)
			if err != nil {
				log.Fatal(err)
			}
		}
		logger.LogDir = logDir
	}
}
