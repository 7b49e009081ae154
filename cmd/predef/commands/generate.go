package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teranos/predef/config"
	"github.com/teranos/predef/decl"
	"github.com/teranos/predef/errors"
	"github.com/teranos/predef/gen"
	"github.com/teranos/predef/host"
	"github.com/teranos/predef/logger"
	"github.com/teranos/predef/object"
	"github.com/teranos/predef/object/goscope"
	"github.com/teranos/predef/progress"
	"github.com/teranos/predef/writer"
)

var (
	generateOutput       string
	generateGoPackages   []string
	generateWatch        bool
	generateJSONProgress bool
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate [namespace...]",
	Short: "Generate Python stub files for scripting namespaces",
	Long: `Generate .pypredef completion stubs from live scripting namespaces.

Namespaces come from the process-wide host registry and from Go packages
loaded with --go-package. Without arguments the namespaces configured in
predef.toml are generated; arguments restrict the run to the named ones.

A failing namespace does not abort the run: the remaining namespaces are
still generated and the failures are reported together at the end.

Examples:
  predef generate                      # Everything from predef.toml
  predef generate gimp gimpenums       # Just these two namespaces
  predef generate -p ./ats/... -o out  # Load Go packages, write to out/
  predef generate --watch              # Regenerate when predef.toml changes`,
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().StringVarP(&generateOutput, "output", "o", "",
		"Output directory (default: output.dir from predef.toml)")
	GenerateCmd.Flags().StringSliceVarP(&generateGoPackages, "go-package", "p", nil,
		"Go package pattern to expose as a namespace (repeatable)")
	GenerateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false,
		"Watch the config file and regenerate on change")
	GenerateCmd.Flags().BoolVar(&generateJSONProgress, "json-progress", false,
		"Emit progress as JSON events on stdout")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	verbosity, _ := cmd.Flags().GetCount("verbose")

	if err := generateAll(cfg, args, verbosity); err != nil {
		if !generateWatch {
			return err
		}
		// Watch mode reports the failed run and waits for the next config
		// change instead of exiting.
		logger.Errorw("Generation failed", logger.FieldError, err)
	}
	if !generateWatch {
		return nil
	}
	return watchConfig(args, verbosity)
}

// generateAll runs one full generation pass over the resolved namespaces.
func generateAll(cfg *config.Config, args []string, verbosity int) error {
	runID := uuid.New().String()
	log := logger.ChildLogger(logger.ComponentLogger("generate"), logger.FieldRunID, runID)

	outputDir := generateOutput
	if outputDir == "" {
		outputDir = cfg.Output.Dir
	}

	var emitter progress.Emitter = progress.NewCLIEmitter(verbosity)
	if generateJSONProgress {
		emitter = progress.NewJSONEmitter(os.Stdout)
	}

	var failures error

	names := args
	if len(names) == 0 {
		resolved, err := cfg.ResolveNames()
		if err != nil {
			return err
		}
		names = resolved
	}

	var namespaces []object.Namespace
	for _, name := range names {
		ns, err := host.Lookup(name)
		if err != nil {
			emitter.EmitError(name, err)
			failures = errors.CombineErrors(failures, err)
			continue
		}
		namespaces = append(namespaces, ns)
	}

	patterns := append([]string{}, cfg.Go.Packages...)
	patterns = append(patterns, generateGoPackages...)
	if len(patterns) > 0 {
		loaded, err := goscope.LoadAll(patterns...)
		if err != nil {
			return errors.Wrap(err, "loading Go packages")
		}
		for _, ns := range loaded {
			log.Debugw("Loaded Go package as namespace", logger.FieldNamespace, ns.Name())
			namespaces = append(namespaces, ns)
		}
	}

	if len(namespaces) == 0 {
		if failures != nil {
			return failures
		}
		return errors.New("no namespaces to generate: pass names, set namespaces.names in predef.toml, or use --go-package")
	}

	pipeline := gen.NewPipeline(log)
	globs, err := cfg.StripGlobs()
	if err != nil {
		return err
	}
	for _, ns := range namespaces {
		for _, g := range globs {
			if g.Match(ns.Name()) {
				pipeline.RegisterNamespacePasses(ns.Name(), gen.StripClassDocs)
				break
			}
		}
	}

	w := writer.New(outputDir)
	tracker := progress.NewTracker(len(namespaces))
	written := 0

	for _, ns := range namespaces {
		if logger.ShouldOutput(verbosity, logger.OutputProgress) {
			emitter.EmitStage("generate", ns.Name())
		}

		path, err := generateOne(ns, pipeline, w, log, verbosity)
		if err != nil {
			emitter.EmitError(ns.Name(), err)
			failures = errors.CombineErrors(failures, errors.Wrapf(err, "namespace %s", ns.Name()))
			continue
		}

		written++
		if err := tracker.Advance(1); err != nil {
			return err
		}
		emitter.EmitAdvance(tracker, path)
	}

	emitter.EmitComplete(map[string]interface{}{
		"run_id":     runID,
		"namespaces": len(namespaces),
		"written":    written,
		"output_dir": outputDir,
	})
	return failures
}

// generateOne turns a single namespace into a written stub file and
// returns the output path. Namespaces that build their own declaration
// tree bypass the walking pipeline.
func generateOne(ns object.Namespace, pipeline *gen.Pipeline, w *writer.Writer, log *zap.SugaredLogger, verbosity int) (string, error) {
	var (
		module *decl.Module
		err    error
	)
	if g, ok := ns.(gen.Generator); ok {
		module, err = g.Generate(log)
	} else {
		module, err = pipeline.Generate(ns)
	}
	if err != nil {
		return "", err
	}

	text := decl.Serialize(module)
	if logger.ShouldOutput(verbosity, logger.OutputTreeDump) {
		fmt.Println(text)
	}
	return w.Write(ns.Name(), text)
}

// watchConfig blocks regenerating on config changes until interrupted.
func watchConfig(args []string, verbosity int) error {
	path := config.FilePath()
	if path == "" {
		return errors.New("--watch requires a config file (predef.toml)")
	}

	watcher, err := config.NewWatcher(path)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	watcher.OnReload(func(next *config.Config) error {
		return generateAll(next, args, verbosity)
	})
	watcher.Start()
	logger.Infow("Watching config for changes", logger.FieldPath, path)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down")
	return nil
}
