// Package runner drives a parsed scenario through its full lifecycle
// (spec §4.5): context setup, per-step dispatch with hooks, artifact
// capture, error containment, and result aggregation. Grounded on
// SessionManager's Start/CreateSession/ForkSession sequencing for the
// "set up environment, then iterate" shape, generalized from a
// long-lived session registry into a single run-to-completion value.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/flowcap/flowcap/internal/artifact"
	"github.com/flowcap/flowcap/internal/driver"
	"github.com/flowcap/flowcap/internal/errs"
	"github.com/flowcap/flowcap/internal/logging"
	"github.com/flowcap/flowcap/internal/reporter"
	"github.com/flowcap/flowcap/internal/scenario"
	"github.com/flowcap/flowcap/internal/stepregistry"
)

// Runner executes one scenario at a time against a fresh browser context.
// A Runner is not reused across concurrent Run calls; RunAll creates one
// per job instead (spec §5: "parallel scenarios have disjoint
// resources").
type Runner struct {
	opts     Options
	registry *stepregistry.Registry
}

// New creates a Runner. A nil registry uses stepregistry.Global().
func New(opts Options, registry *stepregistry.Registry) *Runner {
	if registry == nil {
		registry = stepregistry.Global()
	}
	return &Runner{opts: opts, registry: registry}
}

// Run executes sc to completion, honoring the lifecycle order from spec
// §4.5: load & validate → create run directory → open browser context →
// start trace → per-step loop → stop trace → finalize artifacts → return
// ScenarioResult. The caller's ctx bounds the whole run in addition to the
// scenario timeout configured in Options.
func (r *Runner) Run(ctx context.Context, sc *scenario.Scenario) (*scenario.ScenarioResult, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	if r.opts.ScenarioTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.ScenarioTimeout)
		defer cancel()
	}

	startedAt := time.Now()

	mgr, err := artifact.New(r.opts.ArtifactRoot, startedAt)
	if err != nil {
		return nil, err
	}

	logger, err := logging.Open(mgr.RunnerLogPath(), mgr.ConsoleLogPath(), logging.Options{
		DebugMode:  r.opts.Logging.DebugMode,
		JSONFormat: r.opts.Logging.JSONFormat,
		Categories: toLoggingCategories(r.opts.Logging.Categories),
	})
	if err != nil {
		return nil, fmt.Errorf("runner: open log: %w", err)
	}
	defer logger.Close()

	logger.Info(logging.CategoryRunner, "starting run %q -> %s", sc.Title, mgr.Dir())

	browser, err := driver.New(ctx, driver.Config{
		Bin: r.opts.Bin, DebuggerURL: r.opts.DebuggerURL, Headless: r.opts.Headless,
		ExtraFlags: r.opts.ExtraFlags, Viewport: r.opts.Viewport,
		TimezoneID: r.opts.TimezoneID, Locale: r.opts.Locale, ExtraHeaders: r.opts.ExtraHeaders,
	})
	if err != nil {
		return nil, err
	}
	defer browser.Close()

	page, err := browser.NewPage(ctx)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if r.opts.InitialStorageState != "" {
		if err := page.SetStorageState(ctx, r.opts.InitialStorageState); err != nil {
			return nil, err
		}
	}

	adapter := newPageAdapter(page)

	if err := page.StartTrace(); err != nil {
		logger.Warn(logging.CategoryRunner, "could not start trace: %v", err)
	}

	stepTimeout := r.opts.StepTimeout
	if stepTimeout <= 0 {
		stepTimeout = 10 * time.Second
	}

	vars := scenario.NewVarEnv(sc.Vars)
	secretVars := secretVarNames(sc)

	ec := &stepregistry.ExecContext{
		Page: adapter, Vars: vars, Healing: sc.Healing, Logger: logger,
		StepTimeout: func() float64 { return stepTimeout.Seconds() },
		OnScreenshot: func(label string) (string, error) {
			return captureScreenshot(ctx, mgr, page, sc, -1, "adhoc", label)
		},
	}

	results, runErr := r.runSteps(ctx, ec, adapter, page, mgr, sc, logger)

	if err := page.StopTrace(); err != nil {
		logger.Warn(logging.CategoryRunner, "could not stop trace: %v", err)
	}

	status := scenario.ScenarioPassed
	for _, sr := range results {
		if sr.Status == scenario.StepFailed {
			status = scenario.ScenarioFailed
			break
		}
	}
	if runErr != nil {
		status = scenario.ScenarioFailed
	}

	if err := finalizeArtifacts(mgr, sc, r.opts, vars, secretVars, status); err != nil {
		logger.Warn(logging.CategoryRunner, "artifact finalization: %v", err)
	}

	result := &scenario.ScenarioResult{
		Title: sc.Title, Status: status, Steps: results,
		StartedAt: startedAt, Duration: time.Since(startedAt), RunDir: mgr.Dir(),
	}

	if err := reporter.Render(mgr, result); err != nil {
		logger.Warn(logging.CategoryRunner, "report rendering: %v", err)
	}

	logger.Info(logging.CategoryRunner, "run finished: %s (%s)", status, result.Duration)
	return result, nil
}

// runSteps executes the flattened step list under the per-step loop
// (spec §4.5): beforeEachStep hooks → before screenshot → dispatch →
// after screenshot → afterEachStep hooks. A hook failure aborts without
// running the remaining hooks; a step-body error terminates the run.
func (r *Runner) runSteps(ctx context.Context, ec *stepregistry.ExecContext, adapter *pageAdapter, page *driver.Page, mgr *artifact.Manager, sc *scenario.Scenario, logger *logging.Logger) ([]scenario.StepResult, error) {
	flat := scenario.Flatten(sc.Steps)
	results := make([]scenario.StepResult, 0, len(flat))

	screenshotMode := sc.Artifacts.Screenshots.Mode
	ext := screenshotExt(sc.Artifacts.Screenshots.Format)

	for i, fs := range flat {
		select {
		case <-ctx.Done():
			results = append(results, scenario.StepResult{
				Index: i, Name: fs.Step.Name, Type: fs.Step.Type, Section: fs.Section,
				Status: scenario.StepFailed, Error: (&Cancelled{Step: fs.Step.Name}).Error(),
			})
			return results, ctx.Err()
		default:
		}

		if err := r.runHookList(ctx, ec, sc.Hooks.BeforeEachStep); err != nil {
			results = append(results, scenario.StepResult{
				Index: i, Name: fs.Step.Name, Type: fs.Step.Type, Section: fs.Section,
				Status: scenario.StepFailed, Error: "beforeEachStep: " + err.Error(),
			})
			return results, err
		}

		var before string
		if screenshotMode == scenario.ScreenshotBeforeEach || screenshotMode == scenario.ScreenshotBeforeAndAfter {
			before, _ = captureScreenshot(ctx, mgr, page, sc, i+1, "before", fs.Step.Name, ext)
		}

		started := time.Now()
		logger.Info(logging.CategoryRunner, "step %d %q (%s)", i, fs.Step.Name, fs.Step.Type)
		err := r.dispatch(ec, fs.Step)
		duration := time.Since(started)

		sr := scenario.StepResult{
			Index: i, Name: fs.Step.Name, Type: fs.Step.Type, Section: fs.Section,
			Duration: duration, ScreenshotBefore: before,
			Diagnostic: diagnosticNote(adapter.takeDiagnostic()),
		}

		if err != nil {
			sr.Status = scenario.StepFailed
			sr.Error = err.Error()
			if ea, ok := err.(errs.ExpectedActual); ok {
				sr.Expected, sr.Actual = ea.ExpectedActual()
			}
			results = append(results, sr)
			logger.Error(logging.CategoryRunner, "step %d %q failed: %v", i, fs.Step.Name, err)
			return results, err
		}

		if screenshotMode == scenario.ScreenshotBeforeAndAfter {
			sr.ScreenshotAfter, _ = captureScreenshot(ctx, mgr, page, sc, i+1, "after", fs.Step.Name, ext)
		}

		sr.Status = scenario.StepPassed
		results = append(results, sr)

		if err := r.runHookList(ctx, ec, sc.Hooks.AfterEachStep); err != nil {
			return results, err
		}
	}

	return results, nil
}

func (r *Runner) runHookList(ctx context.Context, ec *stepregistry.ExecContext, hooks []scenario.Step) error {
	for _, h := range hooks {
		if err := r.dispatch(ec, h); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) dispatch(ec *stepregistry.ExecContext, step scenario.Step) error {
	h, ok := r.registry.Get(step.Type)
	if !ok {
		return &UnknownStep{Type: step.Type}
	}
	return h.Execute(ec, step)
}

func screenshotExt(f scenario.ScreenshotFormat) string {
	if f == scenario.FormatJPEG {
		return "jpg"
	}
	return "png"
}

func captureScreenshot(ctx context.Context, mgr *artifact.Manager, page *driver.Page, sc *scenario.Scenario, index int, phase, name string, ext ...string) (string, error) {
	e := "png"
	if len(ext) > 0 {
		e = ext[0]
	} else {
		e = screenshotExt(sc.Artifacts.Screenshots.Format)
	}
	data, err := page.Screenshot(ctx, false)
	if err != nil {
		return "", err
	}
	path := mgr.ScreenshotPath(index, phase, name, e)
	if err := writeFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

func secretVarNames(sc *scenario.Scenario) map[string]bool {
	secrets := make(map[string]bool)
	var probe struct {
		As string `yaml:"as"`
	}
	for _, fs := range scenario.Flatten(sc.Steps) {
		if !fs.Step.Secret || fs.Step.Payload == nil {
			continue
		}
		if err := fs.Step.Payload.Decode(&probe); err == nil && probe.As != "" {
			secrets[probe.As] = true
		}
	}
	return secrets
}

func toLoggingCategories(m map[string]bool) map[logging.Category]bool {
	if m == nil {
		return nil
	}
	out := make(map[logging.Category]bool, len(m))
	for k, v := range m {
		out[logging.Category(k)] = v
	}
	return out
}
