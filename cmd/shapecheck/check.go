package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/typeguard"
	"github.com/wippyai/typeguard/errors"
	"github.com/wippyai/typeguard/schema"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		schemaPath string
		watch      bool
	)
	cmd := &cobra.Command{
		Use:   "check --schema FILE DOCUMENT...",
		Short: "Validate documents against a schema",
		Long: `Validates each JSON or YAML document against the schema and reports the
first mismatch per document. Exits non-zero when any document does not conform.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if watch {
				return a.watch(ctx, schemaPath, args)
			}
			return a.check(ctx, schemaPath, args)
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema file (YAML)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-check when the schema or a document changes")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

// checkResult is the outcome for one document.
type checkResult struct {
	path string
	err  error
}

// check loads the schema, validates every document and prints one line per
// document.
func (a *app) check(ctx context.Context, schemaPath string, docs []string) error {
	d, err := schema.Load(schemaPath)
	if err != nil {
		return err
	}
	results, err := checkFiles(ctx, d, docs, a.cfg.Parallelism, a.log)
	if err != nil {
		return err
	}
	return a.printResults(results)
}

// checkFiles validates the documents concurrently, at most limit at a time.
// Results keep the order of paths.
func checkFiles(ctx context.Context, d typeguard.Descriptor, paths []string, limit int, log *zap.Logger) ([]checkResult, error) {
	results := make([]checkResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			results[i] = checkResult{path: path, err: checkFile(d, path)}
			log.Debug("checked document",
				zap.String("path", path),
				zap.Bool("valid", results[i].err == nil),
				zap.Duration("took", time.Since(start)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkFile(d typeguard.Descriptor, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.PhaseValidate, errors.KindParse, err, "read document")
	}
	return schema.Validate(d, data)
}

func (a *app) printResults(results []checkResult) error {
	failed := 0
	for _, r := range results {
		if r.err == nil {
			fmt.Fprintf(a.out, "%s %s\n", a.styles.ok.Render("ok  "), r.path)
			continue
		}
		failed++
		fmt.Fprintf(a.out, "%s %s: %v\n", a.styles.fail.Render("FAIL"), r.path, r.err)
	}
	if failed > 0 {
		return errors.New(errors.PhaseValidate, errors.KindInvalidValue).
			Detail("%d of %d documents do not conform", failed, len(results)).
			Build()
	}
	return nil
}
