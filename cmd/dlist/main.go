package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/vskvj3/dlist/internal/core"
	"github.com/vskvj3/dlist/internal/datastructures"
	"github.com/vskvj3/dlist/internal/utils"
)

func main() {
	configPath := flag.String("config", utils.DefaultConfigPath(), "Path of the YAML configuration file")
	scriptPath := flag.String("script", "", "YAML script to run (defaults to the built-in demo)")
	formatPtr := flag.String("format", "", "Trace output format: text or msgpack")
	outPtr := flag.String("out", "", "Write the trace to this file instead of stdout")
	debugPtr := flag.Bool("debug", false, "Print debug logs to the console")
	interactivePtr := flag.Bool("i", false, "Read commands from stdin instead of running a script")
	flag.Parse()

	// Load configurations
	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading configuration: "+err.Error())
		os.Exit(1)
	}
	if *formatPtr != "" {
		config.OutputFormat = *formatPtr
	}
	if *outPtr != "" {
		config.OutputFile = *outPtr
	}
	if *debugPtr {
		config.Debug = true
	}

	logger := utils.NewLogger(config.LogFile, config.Debug)
	logger.Info("Loaded configurations from " + *configPath)

	db := core.NewDatabase()
	if config.TraceEvents {
		db.Observe(func(key string, kind datastructures.Event, size int) {
			logger.Debug(fmt.Sprintf("%s: %s, size %d", key, kind, size))
		})
	}
	handler := core.NewCommandHandler(db)

	if *interactivePtr {
		repl(handler, os.Stdin, os.Stdout)
		return
	}

	script := core.DemoScript()
	if *scriptPath != "" {
		script, err = core.LoadScript(*scriptPath)
		if err != nil {
			logger.Error("Error loading script: " + err.Error())
			os.Exit(1)
		}
	}
	logger.Info("Running script " + script.Name)

	trace, err := script.Run(handler)
	if err != nil {
		logger.Error("Script failed: " + err.Error())
		os.Exit(1)
	}

	if err := writeTrace(trace, config); err != nil {
		logger.Error("Error writing trace: " + err.Error())
		os.Exit(1)
	}
}

// createFile opens the text trace output
var createFile = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// writeTrace writes the trace to stdout or to the configured file
func writeTrace(trace *core.Trace, config *utils.Config) error {
	switch config.OutputFormat {
	case utils.FormatMsgpack:
		if config.OutputFile == "" {
			return fmt.Errorf("msgpack output requires an output file")
		}
		data, err := core.EncodeTrace(trace)
		if err != nil {
			return err
		}
		return os.WriteFile(config.OutputFile, data, 0644)

	case utils.FormatText, "":
		if config.OutputFile == "" {
			return trace.WriteText(os.Stdout)
		}
		file, err := createFile(config.OutputFile)
		if err != nil {
			return err
		}
		if err := trace.WriteText(file); err != nil {
			file.Close()
			return err
		}
		return file.Close()

	default:
		return fmt.Errorf("unknown output format: %s", config.OutputFormat)
	}
}
