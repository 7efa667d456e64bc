package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"karst/internal/ast"
	"karst/internal/diag"
	"karst/internal/hints"
	"karst/internal/lexer"
	"karst/internal/parser"
	"karst/internal/sema"
	"karst/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.ka|directory>",
	Short: "Validate statement attributes in karst source files",
	Long:  `Check @fallthrough and @loop attributes in a karst source file or all *.ka files within a directory`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Bool("no-warnings", false, "suppress warnings in output")
	checkCmd.Flags().Bool("dedup", false, "suppress repeated identical diagnostics")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().String("export", "", "write validated attribute records to the given file")
}

type checkOptions struct {
	maxDiagnostics int
	noWarnings     bool
	dedup          bool
	withNotes      bool
}

// fileResult carries one file's analysis output. Every worker owns a private
// FileSet, so spans resolve against the result they belong to.
type fileResult struct {
	path    string
	fs      *source.FileSet
	bag     *diag.Bag
	payload hints.FilePayload
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	configureColor(colorMode)

	opts := checkOptions{}
	opts.maxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	opts.noWarnings, err = cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	opts.dedup, err = cmd.Flags().GetBool("dedup")
	if err != nil {
		return fmt.Errorf("failed to get dedup flag: %w", err)
	}
	opts.withNotes, err = cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	exportPath, err := cmd.Flags().GetString("export")
	if err != nil {
		return fmt.Errorf("failed to get export flag: %w", err)
	}

	// Manifest settings fill in whatever the command line left untouched.
	if manifest, ok := loadManifest(args[0]); ok {
		applyManifest(cmd, manifest, &opts)
	}

	paths, err := collectSourceFiles(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .ka files found under %s", args[0])
	}

	results := make([]fileResult, len(paths))
	var g errgroup.Group
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	g.SetLimit(jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			res, err := checkFile(path, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	hasErrors := false
	for _, res := range results {
		printDiagnostics(cmd.OutOrStdout(), res, opts)
		if res.bag.HasErrors() {
			hasErrors = true
		}
	}

	if exportPath != "" {
		if err := writeExport(exportPath, results); err != nil {
			return err
		}
	}

	if hasErrors {
		os.Exit(1)
	}
	return nil
}

// checkFile runs the lex/parse/sema pipeline for one file.
func checkFile(path string, opts checkOptions) (fileResult, error) {
	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		return fileResult{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	bag := diag.NewBag(opts.maxDiagnostics)
	var reporter diag.Reporter = &diag.BagReporter{Bag: bag}
	if opts.dedup {
		reporter = diag.NewDedupReporter(reporter)
	}

	builder := ast.NewBuilder(ast.Hints{}, nil)
	lx := lexer.New(fileSet.Get(fileID), lexer.Options{Reporter: reporter})
	parsed := parser.ParseFile(lx, builder, parser.Options{Reporter: reporter})
	checked := sema.Check(builder, parsed.Stmts, sema.Options{Reporter: reporter})

	bag.Sort()
	return fileResult{
		path:    path,
		fs:      fileSet,
		bag:     bag,
		payload: hints.Collect(fileSet, builder, path, checked.Stmts),
	}, nil
}

// collectSourceFiles expands a path argument into a sorted list of .ka files.
func collectSourceFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".ka") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(paths)
	return paths, nil
}

// writeExport serializes all collected attribute records in file path order.
func writeExport(path string, results []fileResult) error {
	payload := hints.Payload{Files: make([]hints.FilePayload, 0, len(results))}
	for _, res := range results {
		payload.Files = append(payload.Files, res.payload)
	}
	data, err := payload.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
