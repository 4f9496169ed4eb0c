package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/unbox/pkg/archive"
	"github.com/arthur-debert/unbox/pkg/config"
	"github.com/arthur-debert/unbox/pkg/fetch"
	"github.com/arthur-debert/unbox/pkg/filesystem"
	"github.com/arthur-debert/unbox/pkg/logging"
	"github.com/arthur-debert/unbox/pkg/manifest"
	"github.com/arthur-debert/unbox/pkg/paths"
	"github.com/arthur-debert/unbox/pkg/shell"
	"github.com/arthur-debert/unbox/pkg/state"
	"github.com/arthur-debert/unbox/pkg/types"
)

var applyCmd = &cobra.Command{
	Use:   "apply <manifest>",
	Short: "Reconcile the extraction states declared in a manifest",
	Long: `Apply reads a YAML manifest of extraction states and reconciles each one:
archives are downloaded to the cache only when missing, extracted only when
the target (or its if_missing marker) does not exist, and the cache file is
cleaned up after a successful extraction unless keep is set.

States are applied in sorted-name order. A failed state does not stop the
remaining states; the command exits nonzero if any state failed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStates(cmd, args[0], dryRun)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <manifest>",
	Short: "Preview what apply would change, without mutating anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStates(cmd, args[0], true)
	},
}

func runStates(cmd *cobra.Command, manifestPath string, preview bool) error {
	logger := logging.GetLogger("cli.apply")

	p := paths.New()
	cfg, err := config.Load(p)
	if err != nil {
		return err
	}

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}

	cacheRoot := cfg.CacheRoot
	if cacheRoot == "" {
		cacheRoot = p.ArchiveCacheDir()
	}

	opts := state.Options{
		CacheRoot:   cacheRoot,
		Preview:     preview,
		Environment: cfg.Environment,
	}
	deps := state.Deps{
		FS:        filesystem.NewOS(),
		Fetcher:   fetch.New(),
		Extractor: archive.NewExtractor(),
		Runner:    shell.NewRunner(),
	}

	var failed, changed int
	for _, named := range m.Requests(cfg.Keep) {
		logger.Info().Str("state", named.Name).Msg("reconciling")
		result := state.Extracted(cmd.Context(), named.Request, opts, deps)

		cmd.Println(renderResult(named.Name, result))
		switch result.Outcome {
		case types.OutcomeFailed:
			failed++
		case types.OutcomeChanged:
			changed++
		}
	}

	cmd.Println(renderSummary(len(m), changed, failed))
	if failed > 0 {
		return fmt.Errorf("%d of %d states failed", failed, len(m))
	}
	return nil
}
