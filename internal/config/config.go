// Package config resolves run configuration from flags, environment
// variables, and an optional YAML config file.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/tidygate/internal/errors"
)

// DefaultFailMessage is shown on diff-gate failure unless overridden
const DefaultFailMessage = "Generated or formatted files are out of date."

// DefaultFile is the config file consulted when --config is not given
const DefaultFile = "tidygate.yaml"

// Config is the fully resolved run configuration
type Config struct {
	Commands           []string
	FailMessage        string
	FailOnCommandError bool
	FailOnDiff         bool
}

// Inputs carries raw values gathered by the CLI layer. The *Set fields
// record whether the flag was given explicitly, so defaults do not shadow
// lower-precedence sources.
type Inputs struct {
	Run    string
	RunSet bool

	FailMessage    string
	FailMessageSet bool

	FailOnCommandError    bool
	FailOnCommandErrorSet bool

	FailOnDiff    bool
	FailOnDiffSet bool

	// ConfigFile overrides the default config file location
	ConfigFile string
}

// fileConfig mirrors the YAML config file
type fileConfig struct {
	Run                commandList `yaml:"run"`
	FailMessage        *string     `yaml:"fail-message"`
	FailOnCommandError *bool       `yaml:"fail-on-command-error"`
	FailOnDiff         *bool       `yaml:"fail-on-diff"`
}

// commandList accepts either a multi-line string or a YAML sequence
type commandList []string

// UnmarshalYAML implements yaml.Unmarshaler
func (c *commandList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*c = SplitCommands(s)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*c = items
		return nil
	default:
		return fmt.Errorf("run must be a string or a list of strings")
	}
}

// SplitCommands splits a newline-separated multi-line string into commands,
// dropping blank lines. Duplicates are kept; they run independently.
func SplitCommands(s string) []string {
	var commands []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		commands = append(commands, line)
	}
	return commands
}

// ParseBool parses the boolean forms accepted in env vars and config inputs
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, errors.New(errors.ErrCodeConfigBadBool, fmt.Sprintf("invalid boolean value %q", s))
	}
}

// Resolve merges the configuration sources. Precedence, highest first:
// explicit flag, environment (TIDYGATE_* then INPUT_*), config file,
// built-in default.
func Resolve(in Inputs, getenv func(string) string) (*Config, error) {
	file, err := loadFile(in.ConfigFile)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		FailMessage: DefaultFailMessage,
		FailOnDiff:  true,
	}

	// run
	switch {
	case in.RunSet:
		cfg.Commands = SplitCommands(in.Run)
	case envValue(getenv, "RUN") != "":
		cfg.Commands = SplitCommands(envValue(getenv, "RUN"))
	case file != nil && file.Run != nil:
		cfg.Commands = file.Run
	}
	if len(cfg.Commands) == 0 {
		return nil, errors.NewNoCommandsError()
	}

	// fail-message
	switch {
	case in.FailMessageSet:
		cfg.FailMessage = in.FailMessage
	case envValue(getenv, "FAIL_MESSAGE") != "":
		cfg.FailMessage = envValue(getenv, "FAIL_MESSAGE")
	case file != nil && file.FailMessage != nil:
		cfg.FailMessage = *file.FailMessage
	}

	// fail-on-command-error
	switch {
	case in.FailOnCommandErrorSet:
		cfg.FailOnCommandError = in.FailOnCommandError
	case envValue(getenv, "FAIL_ON_COMMAND_ERROR") != "":
		v, err := ParseBool(envValue(getenv, "FAIL_ON_COMMAND_ERROR"))
		if err != nil {
			return nil, err
		}
		cfg.FailOnCommandError = v
	case file != nil && file.FailOnCommandError != nil:
		cfg.FailOnCommandError = *file.FailOnCommandError
	}

	// fail-on-diff
	switch {
	case in.FailOnDiffSet:
		cfg.FailOnDiff = in.FailOnDiff
	case envValue(getenv, "FAIL_ON_DIFF") != "":
		v, err := ParseBool(envValue(getenv, "FAIL_ON_DIFF"))
		if err != nil {
			return nil, err
		}
		cfg.FailOnDiff = v
	case file != nil && file.FailOnDiff != nil:
		cfg.FailOnDiff = *file.FailOnDiff
	}

	return cfg, nil
}

// envValue looks up a setting under the TIDYGATE_ prefix, then the INPUT_
// prefix GitHub Actions uses for action inputs (with dashes, not
// underscores).
func envValue(getenv func(string) string, name string) string {
	if v := getenv("TIDYGATE_" + name); v != "" {
		return v
	}
	return getenv("INPUT_" + strings.ReplaceAll(name, "_", "-"))
}

// loadFile reads the config file. A missing default file is fine; a missing
// explicit file is an error.
func loadFile(path string) (*fileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeConfigFileInvalid, "read config file "+path, err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigFileInvalid, "parse config file "+path, err)
	}
	return &file, nil
}
