package reconciler

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nmsops/ticket-reconciler/internal/config"
	"github.com/nmsops/ticket-reconciler/internal/domain/reconcile"
	"github.com/nmsops/ticket-reconciler/internal/version"
	"github.com/nmsops/ticket-reconciler/pkg/checksum"
)

// ManifestFile describes one file that took part in the run.
type ManifestFile struct {
	// Role is the file's part in the run: daily, history, output, workbook.
	Role string `yaml:"role"`
	// Checksum is the hex xxHash64 digest of the file contents.
	Checksum string `yaml:"checksum_xxh64"`
}

// Manifest is the YAML record of a completed reconciliation run. It ties
// the output back to the exact inputs it was produced from.
type Manifest struct {
	// Tool identifies the producing binary.
	Tool string `yaml:"tool"`
	// Version is the build version of the tool.
	Version string `yaml:"version"`
	// GeneratedAt is when the manifest was written.
	GeneratedAt time.Time `yaml:"generated_at"`
	// Files maps each participating file path to its role and checksum.
	Files map[string]ManifestFile `yaml:"files"`
	// Statuses holds the per-status ticket counts of the run.
	Statuses map[string]int `yaml:"statuses"`
	// TotalTickets is the number of daily tickets processed.
	TotalTickets int `yaml:"total_tickets"`
}

// writeManifest records the run's files, checksums and totals. It runs
// after the sinks so output checksums cover the final artifacts.
func writeManifest(opts *Options, summary reconcile.Summary) error {
	manifest := Manifest{
		Tool:        "ticket-reconciler",
		Version:     version.Short(),
		GeneratedAt: time.Now().UTC(),
		Files:       make(map[string]ManifestFile, 4),
		Statuses: map[string]int{
			string(reconcile.StatusValid):    summary.Valid,
			string(reconcile.StatusInvalid):  summary.Invalid,
			string(reconcile.StatusNotInNMS): summary.NotInNMS,
		},
		TotalTickets: summary.Total,
	}

	files := map[string]string{
		"daily":   opts.DailyPath,
		"history": opts.HistoryPath,
		"output":  opts.OutputPath,
	}
	if opts.WorkbookPath != "" {
		files["workbook"] = opts.WorkbookPath
	}

	for role, path := range files {
		digest, err := checksum.File(path)
		if err != nil {
			return err
		}

		manifest.Files[path] = ManifestFile{
			Role:     role,
			Checksum: digest,
		}
	}

	contents, err := yaml.Marshal(&manifest)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(opts.ManifestPath), contents, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write manifest file: %w", err)
	}

	return nil
}
