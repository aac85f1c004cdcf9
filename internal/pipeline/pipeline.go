// Package pipeline runs the dataset analysis end to end: load, clean,
// analyze and report, behind one error boundary.
package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/KaramelBytes/irislab/internal/analysis"
	"github.com/KaramelBytes/irislab/internal/config"
	"github.com/KaramelBytes/irislab/internal/dataset"
	"github.com/KaramelBytes/irislab/internal/report"
	"github.com/KaramelBytes/irislab/internal/utils"
	"github.com/apex/log"
	"github.com/google/uuid"
)

// ErrorPrefix opens the single line reported when a run fails.
const ErrorPrefix = "ERROR: An exception occurred during processing: "

// SpeciesNote explains how the label is stored in the cleaned CSV.
const SpeciesNote = "species is kept as its text label; no numeric species_id column is added to the statistics, correlations or cleaned CSV."

const isoLayout = "2006-01-02T15:04:05.000000"

// Options controls one run. Relative PlotsDir and TranscriptFile resolve
// against OutputDir.
type Options struct {
	DatasetName    string
	InputPath      string // empty means the bundled dataset
	OutputDir      string
	PlotsDir       string
	TranscriptFile string
	Derive         bool
	Bins           int
	ChartWidth     int
	ChartHeight    int
	ChartDPI       float64
	Debug          bool
}

// FromConfig builds run options from the effective configuration.
func FromConfig(c *config.Global) Options {
	return Options{
		DatasetName:    c.DatasetName,
		OutputDir:      c.OutputDir,
		PlotsDir:       c.PlotsDir,
		TranscriptFile: c.TranscriptFile,
		Derive:         c.DeriveFeatures,
		Bins:           c.HistogramBins,
		ChartWidth:     c.ChartWidth,
		ChartHeight:    c.ChartHeight,
		ChartDPI:       c.ChartDPI,
	}
}

func (o Options) withDefaults() Options {
	d := config.Default()
	if o.DatasetName == "" {
		o.DatasetName = d.DatasetName
	}
	if o.OutputDir == "" {
		o.OutputDir = d.OutputDir
	}
	if o.PlotsDir == "" {
		o.PlotsDir = d.PlotsDir
	}
	if o.TranscriptFile == "" {
		o.TranscriptFile = d.TranscriptFile
	}
	if o.Bins <= 0 {
		o.Bins = d.HistogramBins
	}
	if o.ChartWidth <= 0 {
		o.ChartWidth = d.ChartWidth
	}
	if o.ChartHeight <= 0 {
		o.ChartHeight = d.ChartHeight
	}
	if o.ChartDPI <= 0 {
		o.ChartDPI = d.ChartDPI
	}
	return o
}

func (o Options) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(o.OutputDir, p)
}

// Summary is the outcome of a run. Err is the error caught by the boundary,
// nil on success.
type Summary struct {
	RunID      string
	Transcript string
	CleanCSV   string
	Plots      []string
	Findings   []string
	Err        error
}

// Run executes the pipeline, mirroring its report to console and to the
// transcript file. It never returns an error: failures are reported once with
// ErrorPrefix and kept in Summary.Err.
func Run(opts Options, console io.Writer) *Summary {
	opts = opts.withDefaults()
	sum := &Summary{
		RunID:      uuid.NewString(),
		Transcript: opts.resolve(opts.TranscriptFile),
	}
	cleanPath := opts.resolve(opts.DatasetName + "_clean.csv")
	plotsDir := opts.resolve(opts.PlotsDir)

	if err := utils.EnsureDir(opts.OutputDir); err != nil {
		sum.Err = fmt.Errorf("create output dir: %w", err)
		fmt.Fprintf(console, "%s%v\n", ErrorPrefix, sum.Err)
		return sum
	}
	tr, err := report.OpenTranscript(sum.Transcript, console)
	if err != nil {
		sum.Err = err
		fmt.Fprintf(console, "%s%v\n", ErrorPrefix, err)
		return sum
	}

	start := time.Now()
	r := &runner{
		opts:  opts,
		w:     tr,
		log:   newLogger(tr, start, opts.Debug),
		sum:   sum,
		clean: cleanPath,
		plots: plotsDir,
		start: start,
	}
	r.scoped(tr, console)

	fmt.Fprintf(console, "\nExecution finished. Terminal output was saved to: %s\n", sum.Transcript)
	fmt.Fprintln(console, "Generated files:")
	fmt.Fprintf(console, " - %s\n", cleanPath)
	files, _ := utils.ListFiles(plotsDir)
	for _, f := range files {
		fmt.Fprintf(console, " - %s\n", f)
	}
	fmt.Fprintln(console, "\nNotes:")
	fmt.Fprintf(console, " - The line chart uses a cumulative mean across samples as a 'trend' proxy (%s has no time column).\n", title(opts.DatasetName))
	fmt.Fprintf(console, " - %s\n", SpeciesNote)
	return sum
}

type runner struct {
	opts  Options
	w     io.Writer
	log   *log.Logger
	sum   *Summary
	clean string
	plots string
	start time.Time
}

// scoped runs the pipeline with the transcript attached and closes it on
// every exit path, a panic in the error report included.
func (r *runner) scoped(tr *report.Transcript, console io.Writer) {
	defer func() {
		if err := tr.Close(); err != nil && r.sum.Err == nil {
			r.sum.Err = err
			fmt.Fprintf(console, "%s%v\n", ErrorPrefix, err)
		}
	}()
	if err := r.guarded(); err != nil {
		r.sum.Err = err
		fmt.Fprintf(r.w, "\n%s%v\n", ErrorPrefix, err)
	}
}

// guarded runs every stage and converts a panic into an error.
func (r *runner) guarded() (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return r.run()
}

func (r *runner) run() error {
	fmt.Fprintf(r.w, "%s analysis started at %s\n", title(r.opts.DatasetName), r.start.Format(isoLayout))
	fmt.Fprintf(r.w, "Run ID: %s\n\n", r.sum.RunID)

	tbl, err := r.load()
	if err != nil {
		return err
	}
	if r.opts.Derive {
		dataset.DeriveFeatures(tbl)
	}
	r.log.WithFields(log.Fields{"records": tbl.Len(), "columns": len(tbl.Columns) + 1}).Debug("dataset loaded")

	if err := r.exploreAndClean(tbl); err != nil {
		return err
	}
	if err := r.writeClean(tbl); err != nil {
		return err
	}
	g, c, err := r.analyze(tbl)
	if err != nil {
		return err
	}
	if err := r.render(tbl); err != nil {
		return err
	}

	findings, err := analysis.Findings(g, c)
	if err != nil {
		return err
	}
	r.sum.Findings = findings
	fmt.Fprintln(r.w, "\n=== Findings / Observations ===")
	for _, f := range findings {
		fmt.Fprintf(r.w, " - %s\n", f)
	}

	r.log.WithFields(log.Fields{"clean_csv": r.sum.CleanCSV, "plots": len(r.sum.Plots)}).Info("artifacts written")
	end := time.Now()
	fmt.Fprintf(r.w, "\nCompleted at %s (duration: %s)\n", end.Format(isoLayout), end.Sub(r.start))
	return nil
}

func (r *runner) load() (*dataset.Table, error) {
	if r.opts.InputPath == "" {
		return dataset.LoadBundled(r.opts.DatasetName)
	}
	f, err := os.Open(r.opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	r.log.WithField("path", r.opts.InputPath).Debug("reading substitute dataset")
	return dataset.LoadCSV(f, r.opts.DatasetName)
}

func (r *runner) exploreAndClean(tbl *dataset.Table) error {
	fmt.Fprintln(r.w, "=== Data Head (first 5 rows) ===")
	analysis.WriteHead(r.w, tbl, 5)
	fmt.Fprintln(r.w, "\n=== Data Info ===")
	analysis.WriteInfo(r.w, tbl)
	fmt.Fprintln(r.w, "\n=== Missing Values per Column ===")
	analysis.WriteMissing(r.w, tbl)

	rep, err := dataset.Clean(tbl)
	if err != nil {
		return err
	}
	if rep.MissingTotal == 0 {
		fmt.Fprintln(r.w, "\nNo missing values found. No imputation needed.")
		return nil
	}
	fmt.Fprintf(r.w, "\nFound %d missing values. Applying median imputation for numeric columns.\n", rep.MissingTotal)
	for _, imp := range rep.Imputations {
		fmt.Fprintf(r.w, " - Filled missing in '%s' with median %s\n", imp.Column, dataset.FormatFloat(imp.Median))
	}
	return nil
}

func (r *runner) writeClean(tbl *dataset.Table) error {
	var buf bytes.Buffer
	if err := dataset.WriteCSV(&buf, tbl); err != nil {
		return err
	}
	if err := utils.SafeWriteFile(r.clean, buf.Bytes()); err != nil {
		return fmt.Errorf("save cleaned dataset: %w", err)
	}
	r.sum.CleanCSV = r.clean
	r.log.WithField("path", r.clean).Debug("cleaned dataset written")
	fmt.Fprintf(r.w, "\nCleaned dataset saved to: %s\n", r.clean)
	return nil
}

func (r *runner) analyze(tbl *dataset.Table) (*analysis.GroupTable, *analysis.CorrMatrix, error) {
	fmt.Fprintln(r.w, "\n=== Descriptive Statistics (numeric) ===")
	analysis.WriteDescribe(r.w, analysis.Describe(tbl))

	g, err := analysis.GroupMeans(tbl)
	if err != nil {
		return nil, nil, err
	}
	fmt.Fprintln(r.w, "\n=== Grouped Means by Species ===")
	analysis.WriteGroup(r.w, g)

	area, ok, err := analysis.AreaStats(tbl)
	if err != nil {
		return nil, nil, err
	}
	if ok {
		fmt.Fprintln(r.w, "\n=== Petal Area stats by Species ===")
		analysis.WriteGroup(r.w, area)
	}

	c := analysis.Correlate(tbl)
	fmt.Fprintln(r.w, "\n=== Correlation matrix (numeric) ===")
	analysis.WriteCorr(r.w, c)
	return g, c, nil
}

func (r *runner) render(tbl *dataset.Table) error {
	ch := &report.Charts{
		Dir:    r.plots,
		Width:  r.opts.ChartWidth,
		Height: r.opts.ChartHeight,
		DPI:    r.opts.ChartDPI,
		Bins:   r.opts.Bins,
	}
	steps := []func(*dataset.Table) (string, error){
		ch.LineCumulativeMean,
		ch.BarMeanByGroup,
		ch.Histogram,
		ch.Scatter,
	}
	for _, step := range steps {
		p, err := step(tbl)
		if err != nil {
			return err
		}
		r.sum.Plots = append(r.sum.Plots, p)
		r.log.WithField("path", p).Debug("chart written")
	}
	fmt.Fprintln(r.w, "\nPlots saved to:")
	for _, p := range r.sum.Plots {
		fmt.Fprintf(r.w, " - %s\n", p)
	}
	return nil
}

func title(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
