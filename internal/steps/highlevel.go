package steps

import (
	"fmt"
	"strings"
	"time"

	"github.com/flowcap/flowcap/internal/errs"
	"github.com/flowcap/flowcap/internal/logging"
	"github.com/flowcap/flowcap/internal/scenario"
	"github.com/flowcap/flowcap/internal/stepregistry"
)

// High-level handlers encapsulate a multi-step dance that would be
// unstable if a scenario author had to express it as a sequence of
// primitive steps (spec §4.4).

// overlayOptionPayload is selectOverlayOption's parameter shape;
// selectWijmoCombo decodes wijmoComboPayload instead and fixes the list to
// Wijmo's popup convention (wijmoListboxCSS).
type overlayOptionPayload struct {
	Open       scenario.By `yaml:"open"`
	List       scenario.By `yaml:"list"`
	OptionText string      `yaml:"optionText"`
}

type selectOverlayOptionHandler struct{}

func (selectOverlayOptionHandler) Schema() interface{} { return &overlayOptionPayload{} }
func (selectOverlayOptionHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p overlayOptionPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	optionText, err := ec.Vars.Substitute(p.OptionText, step.Name)
	if err != nil {
		return err
	}
	return selectFromOverlay(ec, p.Open, p.List, optionText)
}

// wijmoListboxCSS is the DOM convention Wijmo renders a ComboBox's popup
// under: a `.wj-listbox` detached from the trigger's own subtree, with one
// `.wj-listbox-item` per option.
const wijmoListboxCSS = ".wj-listbox"

type wijmoComboPayload struct {
	Root       scenario.By `yaml:"root"`
	OptionText string      `yaml:"optionText"`
}

type selectWijmoComboHandler struct{}

func (selectWijmoComboHandler) Schema() interface{} { return &wijmoComboPayload{} }
func (selectWijmoComboHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p wijmoComboPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	optionText, err := ec.Vars.Substitute(p.OptionText, step.Name)
	if err != nil {
		return err
	}
	list := scenario.By{Kind: scenario.ByCSS, CSS: wijmoListboxCSS}
	return selectFromOverlay(ec, p.Root, list, optionText)
}

// selectFromOverlay clicks the trigger, waits for the option list to become
// visible, and clicks the last visible descendant of the list whose trimmed
// text equals optionText. The match is not strict: several matching
// descendants are not reported as ambiguous.
func selectFromOverlay(ec *stepregistry.ExecContext, open, list scenario.By, optionText string) error {
	trigger, err := (target{By: open}).resolve(ec)
	if err != nil {
		return err
	}
	if err := trigger.Click(ec); err != nil {
		return err
	}

	listEl, err := (target{By: list}).resolve(ec)
	if err != nil {
		return err
	}

	candidates, err := listEl.QueryAll(ec, "*")
	if err != nil {
		return err
	}
	var match stepregistry.Element
	for _, c := range candidates {
		text, err := c.Text(ec)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) != optionText {
			continue
		}
		visible, _ := c.Visible(ec)
		if !visible {
			continue
		}
		match = c // keep the last matching visible node: leaf text wins over its ancestors
	}
	if match == nil {
		return &assertionFailure{message: fmt.Sprintf("selectOverlayOption: no option with text %q in %s", optionText, list)}
	}
	return match.Click(ec)
}

// gridRowKey identifies a row by an equality test on one of its columns.
type gridRowKey struct {
	Column string `yaml:"column"`
	Equals string `yaml:"equals"`
}

type gridCellPayload struct {
	Grid   scenario.By `yaml:"grid"`
	RowKey gridRowKey  `yaml:"rowKey"`
	Column string      `yaml:"column"`
}

type clickWijmoGridCellHandler struct{}

func (clickWijmoGridCellHandler) Schema() interface{} { return &gridCellPayload{} }

// maxGridScrollAttempts bounds the scroll-and-retry loop a virtualized grid
// needs: the target row may not be materialized in the DOM until scrolled
// into its render window (spec §4.4, E6).
const maxGridScrollAttempts = 30

// gridScrollStepPx approximates one viewport page of a Wijmo FlexGrid's
// default row height; exact enough to make steady forward progress without
// needing to read the grid's actual row height.
const gridScrollStepPx = 400

func (clickWijmoGridCellHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p gridCellPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}

	grid, err := (target{By: p.Grid}).resolve(ec)
	if err != nil {
		return err
	}

	keyColIndex, err := gridColumnIndex(ec, grid, p.RowKey.Column)
	if err != nil {
		return err
	}
	targetColIndex, err := gridColumnIndex(ec, grid, p.Column)
	if err != nil {
		return err
	}

	for attempt := 0; attempt <= maxGridScrollAttempts; attempt++ {
		keyCells, err := grid.QueryAll(ec, fmt.Sprintf(`[aria-colindex=%q]`, keyColIndex))
		if err != nil {
			return err
		}
		for _, cell := range keyCells {
			text, err := cell.Text(ec)
			if err != nil || text != p.RowKey.Equals {
				continue
			}
			rowIndex, ok, err := cell.Attr(ec, "aria-rowindex")
			if err != nil || !ok {
				continue
			}
			targetCells, err := grid.QueryAll(ec, fmt.Sprintf(`[aria-rowindex=%q][aria-colindex=%q]`, rowIndex, targetColIndex))
			if err != nil || len(targetCells) == 0 {
				continue
			}
			return targetCells[0].Click(ec)
		}

		if attempt == maxGridScrollAttempts {
			break
		}
		if err := grid.ScrollBy(ec, gridScrollStepPx); err != nil {
			return err
		}
		if ec.Logger != nil {
			ec.Logger.Info(logging.CategoryRunner, "clickWijmoGridCell: row %s=%s not yet rendered, scrolled grid (attempt %d)",
				p.RowKey.Column, p.RowKey.Equals, attempt+1)
		}
	}

	return &gridCellNotFound{rowKey: p.RowKey, column: p.Column}
}

// gridColumnIndex reads the 1-based aria-colindex of the column header
// whose text equals column, the ARIA grid convention Wijmo's FlexGrid
// renders for accessibility and the only stable way to map a column name
// to a cell position in a virtualized grid.
func gridColumnIndex(ec *stepregistry.ExecContext, grid stepregistry.Element, column string) (string, error) {
	headers, err := grid.QueryAll(ec, `[role="columnheader"]`)
	if err != nil {
		return "", err
	}
	for _, h := range headers {
		text, err := h.Text(ec)
		if err != nil || text != column {
			continue
		}
		idx, ok, err := h.Attr(ec, "aria-colindex")
		if err == nil && ok {
			return idx, nil
		}
	}
	return "", fmt.Errorf("steps: clickWijmoGridCell: no column header found for %q", column)
}

type gridCellNotFound struct {
	rowKey gridRowKey
	column string
}

func (e *gridCellNotFound) Error() string {
	return fmt.Sprintf("clickWijmoGridCell: row where %s=%s not found after scrolling (column %s)", e.rowKey.Column, e.rowKey.Equals, e.column)
}
func (e *gridCellNotFound) Kind() errs.Kind { return errs.KindNoMatch }

// dateTokens maps the scenario-facing date-format tokens onto Go's
// reference-time layout, the only stdlib-native way to reformat a date;
// kept deliberately small (the set setDatePicker's format strings use).
var dateTokens = strings.NewReplacer(
	"YYYY", "2006", "MM", "01", "DD", "02",
	"HH", "15", "mm", "04", "ss", "05",
)

type datePickerPayload struct {
	target `yaml:",inline"`
	Date   string `yaml:"date"`
	Format string `yaml:"format"`
}

type setDatePickerHandler struct{}

func (setDatePickerHandler) Schema() interface{} { return &datePickerPayload{} }
func (setDatePickerHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p datePickerPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	date, err := ec.Vars.Substitute(p.Date, step.Name)
	if err != nil {
		return err
	}
	value := date
	if p.Format != "" {
		value = reformatDate(date, p.Format)
	}
	el, err := p.resolve(ec)
	if err != nil {
		return err
	}
	return el.Fill(ec, value)
}

// reformatDate re-renders an ISO (YYYY-MM-DD) date string into format,
// falling back to the original value if either layout fails to parse or
// render — a malformed format string shouldn't abort a run over a cosmetic
// mismatch the site itself will usually reject visibly.
func reformatDate(isoDate, format string) string {
	goLayout := dateTokens.Replace(format)
	t, err := parseISODate(isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format(goLayout)
}

func parseISODate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

type uploadFilePayload struct {
	target   `yaml:",inline"`
	FilePath string `yaml:"filePath"`
}

type uploadFileHandler struct{}

func (uploadFileHandler) Schema() interface{} { return &uploadFilePayload{} }
func (uploadFileHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p uploadFilePayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	path, err := ec.Vars.Substitute(p.FilePath, step.Name)
	if err != nil {
		return err
	}
	el, err := p.resolve(ec)
	if err != nil {
		return err
	}
	return el.UploadFile(ec, path)
}

// toastCSS is the set of selectors a toast/snackbar notification typically
// renders under; ARIA live-region roles first, then a common class name
// fallback.
const toastCSS = `[role="status"], [role="alert"], .toast`

type waitForToastPayload struct {
	Text    string  `yaml:"text"`
	Timeout float64 `yaml:"timeout"`
}

type waitForToastHandler struct{}

func (waitForToastHandler) Schema() interface{} { return &waitForToastPayload{} }
func (waitForToastHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p waitForToastPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	text, err := ec.Vars.Substitute(p.Text, step.Name)
	if err != nil {
		return err
	}
	timeout := p.Timeout
	if timeout <= 0 && ec.StepTimeout != nil {
		timeout = ec.StepTimeout()
	}
	by := scenario.By{Kind: scenario.ByCSS, CSS: toastCSS, Text: text}
	_, err = ec.Page.Resolve(ec, by, stepregistry.ResolveOptions{
		Strict: false, TimeoutSeconds: timeout, Healing: ec.Healing,
	})
	return err
}

type assertNoConsoleErrorHandler struct{}

func (assertNoConsoleErrorHandler) Schema() interface{} { return &struct{}{} }
func (assertNoConsoleErrorHandler) Execute(ec *stepregistry.ExecContext, _ scenario.Step) error {
	errsSeen := ec.Page.ConsoleErrors()
	if len(errsSeen) == 0 {
		return nil
	}
	return &assertionFailure{message: fmt.Sprintf("assertNoConsoleError: %d console error(s): %s", len(errsSeen), strings.Join(errsSeen, "; "))}
}

type apiMockPayload struct {
	URL    string `yaml:"url"`
	Method string `yaml:"method"`
	Status int    `yaml:"status"`
	Body   string `yaml:"response"`
}

type apiMockHandler struct{}

func (apiMockHandler) Schema() interface{} { return &apiMockPayload{} }
func (apiMockHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p apiMockPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	status := p.Status
	if status == 0 {
		status = 200
	}
	return ec.Page.Mock(ec, p.URL, status, p.Body)
}

// routeStubPayload is a simplified alias of apiMock: the scenario format
// has no way to embed an arbitrary Go handler function, so a "handler" is
// expressed the same way a mocked response is, a fixed status and body.
type routeStubPayload struct {
	URL    string `yaml:"url"`
	Status int    `yaml:"status"`
	Body   string `yaml:"handler"`
}

type routeStubHandler struct{}

func (routeStubHandler) Schema() interface{} { return &routeStubPayload{} }
func (routeStubHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p routeStubPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	status := p.Status
	if status == 0 {
		status = 200
	}
	return ec.Page.Mock(ec, p.URL, status, p.Body)
}
