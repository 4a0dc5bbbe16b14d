package cli

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/yieldpath/pkg/errors"
)

// Config holds solve defaults read from the config file. Zero values
// leave the built-in defaults in place.
//
//	start = "AA"
//	budget = 30
//	pair_budget = 26
//	workers = 8
//	no_cache = false
type Config struct {
	Start      string `toml:"start"`
	Budget     int    `toml:"budget"`
	PairBudget int    `toml:"pair_budget"`
	Agents     int    `toml:"agents"`
	Workers    int    `toml:"workers"`
	Balance    int    `toml:"balance"`
	NoCache    bool   `toml:"no_cache"`
}

// loadConfig reads the config file at path. An empty path means the
// default location, where a missing file is not an error.
func loadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		if stderrors.Is(err, fs.ErrNotExist) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config file %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if err := errors.ValidateBudget("budget", c.Budget); err != nil {
		return err
	}
	if err := errors.ValidateBudget("pair_budget", c.PairBudget); err != nil {
		return err
	}
	if err := errors.ValidateWorkers(c.Workers); err != nil {
		return err
	}
	if c.Start != "" {
		if err := errors.ValidateLocationID(c.Start); err != nil {
			return err
		}
	}
	if c.Agents < 0 || c.Agents > 2 {
		return errors.New(errors.ErrCodeInvalidOptions, "agents must be 1 or 2 (got %d)", c.Agents)
	}
	if c.Balance < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "balance cannot be negative (got %d)", c.Balance)
	}
	return nil
}

// apply copies config values into opts for every flag the user did not set.
func (c Config) apply(changed func(name string) bool, opts *solveOpts) {
	setString := func(flag string, dst *string, v string) {
		if v != "" && !changed(flag) {
			*dst = v
		}
	}
	setInt := func(flag string, dst *int, v int) {
		if v != 0 && !changed(flag) {
			*dst = v
		}
	}
	setString("start", &opts.start, c.Start)
	setInt("budget", &opts.budget, c.Budget)
	setInt("pair-budget", &opts.pairBudget, c.PairBudget)
	setInt("agents", &opts.agents, c.Agents)
	setInt("workers", &opts.workers, c.Workers)
	setInt("balance", &opts.balance, c.Balance)
	if c.NoCache && !changed("no-cache") {
		opts.noCache = true
	}
}

// writeDefaultConfig creates a commented config file at the default
// location unless one already exists. It returns the path.
func writeDefaultConfig() (string, bool, error) {
	dir, err := configDir()
	if err != nil {
		return "", false, err
	}
	path := filepath.Join(dir, configFile)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, err
	}
	return path, true, os.WriteFile(path, []byte(defaultConfig), 0o644)
}

const defaultConfig = `# yieldpath configuration. Command-line flags override these values.

# start = "AA"
# budget = 30
# pair_budget = 26
# agents = 1
# workers = 0     # 0 uses every CPU
# balance = 0     # 0 evaluates every partition
# no_cache = false
`

// configCommand creates the config management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a commented config file to the default location",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := writeDefaultConfig()
			if err != nil {
				return err
			}
			if !created {
				printInfo("Config already exists")
				printFile(path)
				return nil
			}
			printSuccess("Created config")
			printFile(path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				dir, err := configDir()
				if err != nil {
					return err
				}
				path = filepath.Join(dir, configFile)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	return cmd
}
