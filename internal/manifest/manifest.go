// Package manifest writes a per-run audit record for downstream tooling.
package manifest

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/felixgeelhaar/tidygate/internal/errors"
	"github.com/felixgeelhaar/tidygate/internal/gate"
	"github.com/felixgeelhaar/tidygate/internal/runner"
	"github.com/felixgeelhaar/tidygate/internal/version"
)

// CommandRecord is the audit entry for one executed command. Output is not
// stored verbatim; digests keep the manifest small while still letting
// downstream tooling detect output changes between runs.
type CommandRecord struct {
	Command      string `json:"command"`
	OK           bool   `json:"ok"`
	ExitCode     *int   `json:"exit_code,omitempty"`
	Signal       string `json:"signal,omitempty"`
	Message      string `json:"message,omitempty"`
	StdoutDigest string `json:"stdout_digest"`
	StderrDigest string `json:"stderr_digest"`
}

// RunManifest is the audit record for one run
type RunManifest struct {
	RunID        string          `json:"run_id"`
	Timestamp    time.Time       `json:"timestamp"`
	Version      string          `json:"version"`
	Commands     []CommandRecord `json:"commands"`
	HasDiff      bool            `json:"has_diff"`
	ChangedFiles []string        `json:"changed_files,omitempty"`
}

// Create builds a manifest from the run's results and diff state
func Create(results []runner.Result, state gate.DiffState) *RunManifest {
	records := make([]CommandRecord, 0, len(results))
	for _, result := range results {
		records = append(records, CommandRecord{
			Command:      result.Command,
			OK:           result.OK,
			ExitCode:     result.ExitCode,
			Signal:       result.Signal,
			Message:      result.Message,
			StdoutDigest: digest(result.Stdout),
			StderrDigest: digest(result.Stderr),
		})
	}

	return &RunManifest{
		RunID:        uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Version:      version.GetInfo().Short(),
		Commands:     records,
		HasDiff:      state.HasDiff,
		ChangedFiles: state.Files,
	}
}

// Save writes the manifest to dir and returns the file path
func Save(m *RunManifest, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", errors.Wrap(errors.ErrCodeManifestWrite, "create manifest directory", err)
	}

	filename := fmt.Sprintf("%s_%s.json", m.Timestamp.Format("20060102_150405"), m.RunID)
	path := filepath.Join(dir, filename)

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeManifestWrite, "marshal manifest", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", errors.Wrap(errors.ErrCodeManifestWrite, "write manifest", err)
	}

	return path, nil
}

// digest returns the hex BLAKE3 digest of s
func digest(s string) string {
	sum := blake3.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
