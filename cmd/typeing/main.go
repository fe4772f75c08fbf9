package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/monsterooo/typeing/audio"
	"github.com/monsterooo/typeing/config"
	"github.com/monsterooo/typeing/engine"
	"github.com/monsterooo/typeing/terminal"
	"github.com/monsterooo/typeing/textgen"
)

func main() {
	// The terminal must come back in a usable state even on a crash
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mtypeing crashed: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "typeing: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		debugFlag  bool
		flags      config.Config
	)

	cmd := &cobra.Command{
		Use:   "typeing",
		Short: "A typing speed tester for the terminal",
		Long: `typeing shows a block of words, scores your keystrokes as you
type them, and reports words per minute and accuracy at the end.

Ctrl-R deals new words mid-test, Escape or Ctrl-C quits.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logFile := setupLogging(debugFlag)
			if logFile != nil {
				defer logFile.Close()
			}

			cfg, err := loadConfig(cmd, configPath, flags)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	def := config.Default()
	cmd.Flags().StringVar(&configPath, "config", "",
		"config file (default is the user config dir)")
	cmd.Flags().IntVarP(&flags.NumWords, "num-words", "n", def.NumWords,
		"number of words per test")
	cmd.Flags().StringVarP(&flags.Wordlist, "wordlist", "w", def.Wordlist,
		"built-in word list ("+strings.Join(textgen.BuiltinNames(), ", ")+") or \"os\"")
	cmd.Flags().StringVarP(&flags.WordlistFile, "wordlist-file", "f", "",
		"newline-separated word file, overrides --wordlist")
	cmd.Flags().BoolVar(&flags.Sound, "sound", false,
		"play mistake and completion sounds")
	cmd.Flags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log to "+logDir+"/"+logFileName)
	return cmd
}

// loadConfig layers explicitly passed flags over the config file over
// the defaults.
func loadConfig(cmd *cobra.Command, path string, flags config.Config) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}

	if cmd.Flags().Changed("num-words") {
		cfg.NumWords = flags.NumWords
	}
	if cmd.Flags().Changed("wordlist") {
		cfg.Wordlist = flags.Wordlist
	}
	if cmd.Flags().Changed("wordlist-file") {
		cfg.WordlistFile = flags.WordlistFile
	}
	if cmd.Flags().Changed("sound") {
		cfg.Sound = flags.Sound
	}
	return cfg, cfg.Validate()
}

func newSelector(cfg config.Config) (textgen.WordSelector, error) {
	switch {
	case cfg.WordlistFile != "":
		return textgen.FromFile(cfg.WordlistFile)
	case cfg.Wordlist == "os":
		return textgen.FromFile(textgen.OSWordlistPath)
	default:
		return textgen.Builtin(cfg.Wordlist)
	}
}

func run(cfg config.Config) error {
	sel, err := newSelector(cfg)
	if err != nil {
		return err
	}

	surface := terminal.NewSurface()
	if err := surface.Init(); err != nil {
		return err
	}
	defer surface.Close()

	e := engine.New(surface, sel, cfg)
	if cfg.Sound {
		player := audio.NewPlayer()
		if err := player.Init(); err != nil {
			// No audio device is not worth refusing to run over
			fmt.Fprintf(os.Stderr, "typeing: audio unavailable: %v\n", err)
		} else {
			e.SetSound(player)
			defer player.Close()
		}
	}

	return e.Run()
}
