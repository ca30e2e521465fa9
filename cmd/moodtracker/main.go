package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/vbagdi/Mood-Tracker-291/internal/app"
	"github.com/vbagdi/Mood-Tracker-291/internal/config"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a TrackerApp. The caller must defer
// app.Close().
func newApp(cmd *cobra.Command) (*app.TrackerApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewTrackerApp(cmd.Context(), cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// readPassphrase prompts on stderr and reads a passphrase without echo.
func readPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(pass), nil
}

var rootCmd = &cobra.Command{
	Use:   "moodtracker",
	Short: "Daily mood and health record tracker",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		deviceID := uuid.New().String()
		cfg := config.NewConfig(deviceID, defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Device ID: %s\n", deviceID)
		fmt.Printf("Base Dir:  %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Device ID: %s\n", cfg.DeviceID)
		fmt.Printf("Base Dir:  %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:   %s\n", cfg.LogDir)
		fmt.Printf("Remote:    %s\n", cfg.Remote.Type)
		fmt.Printf("Metrics:   %s\n", cfg.Metrics.Type)
		fmt.Printf("Capture:   %02d:%02d (%ds window)\n",
			cfg.Capture.TriggerHour, cfg.Capture.TriggerMinute, cfg.Capture.WindowSeconds)
		return nil
	},
}

// keys command
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage encryption keys",
}

var keysInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate encryption key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		pass, err := readPassphrase("Passphrase for new private key: ")
		if err != nil {
			return err
		}
		confirm, err := readPassphrase("Confirm passphrase: ")
		if err != nil {
			return err
		}
		if pass != confirm {
			return fmt.Errorf("passphrases do not match")
		}

		if err := a.SetupKeys(pass); err != nil {
			return fmt.Errorf("generating keys: %w", err)
		}

		fmt.Println("Encryption keys generated.")
		return nil
	},
}

// name command
var nameCmd = &cobra.Command{
	Use:   "name NAME",
	Short: "Set the display name stamped on records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.SetName(args[0]); err != nil {
			return fmt.Errorf("setting name: %w", err)
		}

		fmt.Printf("Name set to %s\n", args[0])
		return nil
	},
}

// mood command
var moodCmd = &cobra.Command{
	Use:   "mood RATING",
	Short: "Record the current mood (1-5)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mood, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("mood must be a number between 1 and 5")
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.SetMood(mood); err != nil {
			return fmt.Errorf("recording mood: %w", err)
		}

		fmt.Printf("Mood recorded: %d\n", mood)
		return nil
	},
}

// sleep command
var sleepCmd = &cobra.Command{
	Use:   "sleep HOURS",
	Short: "Record today's sleep manually",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hours, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("sleep hours must be a number")
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.SetSleep(hours); err != nil {
			return fmt.Errorf("recording sleep: %w", err)
		}

		fmt.Printf("Sleep recorded: %.1f hour(s). It will be used by today's capture.\n", hours)
		return nil
	},
}

// save command
var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Capture a record immediately",
	RunE: func(cmd *cobra.Command, args []string) error {
		mood, _ := cmd.Flags().GetInt("mood")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		record, err := a.SaveNow(cmd.Context(), mood)
		if err != nil {
			return fmt.Errorf("capture failed: %w", err)
		}

		fmt.Printf("Captured record %s (mood %d, %.1fh sleep)\n",
			record.ID, record.Mood, record.SleepHours)
		return nil
	},
}

// tick command
var tickCmd = &cobra.Command{
	Use:   "tick",
	Short: "Run one automatic-capture check",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		record, err := a.Tick(cmd.Context())
		if err != nil {
			return fmt.Errorf("automatic capture failed: %w", err)
		}

		if record == nil {
			fmt.Println("No capture due.")
			return nil
		}
		fmt.Printf("Captured record %s\n", record.ID)
		return nil
	},
}

// watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run automatic-capture checks until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Println("Watching for the capture window. Ctrl-C to stop.")
		if err := a.Watch(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View locally stored records",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		records, err := a.History()
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println("No records stored.")
			return nil
		}

		for _, r := range records {
			sleep := fmt.Sprintf("%.1fh", r.SleepHours)
			if r.ManualSleepEntry {
				sleep += "*"
			}
			fmt.Printf("%s  mood:%d  steps:%d  %.2fkm  sleep:%s  floors:%d  %s\n",
				r.Date.Format("2006-01-02"),
				r.Mood,
				r.Steps,
				r.DistanceKM,
				sleep,
				r.FlightsClimbed,
				r.OwnerName,
			)
		}
		return nil
	},
}

// refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Replace local records with the remote collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.EncryptionConfigured() {
			pass, err := readPassphrase("Passphrase: ")
			if err != nil {
				return err
			}
			if err := a.Unlock(pass); err != nil {
				return err
			}
		}

		count, err := a.Refresh(cmd.Context())
		if err != nil {
			return fmt.Errorf("refresh failed: %w", err)
		}

		fmt.Printf("Pulled %d record(s)\n", count)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	keysCmd.AddCommand(keysInitCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(nameCmd)
	rootCmd.AddCommand(moodCmd)
	rootCmd.AddCommand(sleepCmd)
	rootCmd.AddCommand(saveCmd)
	saveCmd.Flags().IntP("mood", "m", 0, "Mood rating for this capture (1-5)")
	rootCmd.AddCommand(tickCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(refreshCmd)
}
