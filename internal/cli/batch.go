package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// maxLineBytes bounds a single batch line; operands can be long.
const maxLineBytes = 16 << 20

// ReadBatch reads one expression per line. Blank lines and lines starting
// with '#' are skipped; line numbers refer to the input.
func ReadBatch(r io.Reader) ([]orchestration.BatchLine, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var lines []orchestration.BatchLine
	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, orchestration.BatchLine{Line: n, Expression: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading batch input at line %d: %w", n+1, err)
	}
	return lines, nil
}

// FormatBatchLine renders one batch outcome on a single line: the value,
// "value remainder" for divmod, or the error.
func FormatBatchLine(item orchestration.BatchItem, verbose bool) string {
	res, mismatch, err := item.Outcome()
	switch {
	case err != nil:
		return fmt.Sprintf("error: %v", err)
	case mismatch:
		return "error: width mismatch"
	}
	value, _ := FormatValue(res.Result.Value, verbose)
	if res.Result.Remainder != "" {
		rem, _ := FormatValue(res.Result.Remainder, verbose)
		value += " " + rem
	}
	return value
}

// DisplayBatchResults prints one line per batch item followed by a
// summary. In quiet mode only the bare values (or errors) are printed.
func DisplayBatchResults(items []orchestration.BatchItem, opts orchestration.PresentationOptions, out io.Writer) orchestration.BatchSummary {
	for _, item := range items {
		if opts.Quiet {
			res, mismatch, err := item.Outcome()
			if err != nil || mismatch {
				fmt.Fprintln(out, FormatBatchLine(item, true))
				continue
			}
			DisplayQuietResult(out, res.Result)
			continue
		}

		line := FormatBatchLine(item, opts.Verbose)
		color := ui.ColorGreen()
		if strings.HasPrefix(line, "error:") {
			color = ui.ColorRed()
		}
		fmt.Fprintf(out, "%s%4d%s  %s => %s%s%s\n",
			ui.ColorGrey(), item.Line, ui.ColorReset(), item.Expression, color, line, ui.ColorReset())
	}

	s := orchestration.SummarizeBatch(items)
	if !opts.Quiet {
		fmt.Fprintf(out, "\n%s\n", ui.Header("Batch Summary"))
		fmt.Fprintf(out, "Succeeded: %s%s%s  Failed: %s%s%s  Mismatched: %s%s%s\n",
			ui.ColorGreen(), format.FormatCount(s.Succeeded), ui.ColorReset(),
			ui.ColorRed(), format.FormatCount(s.Failed), ui.ColorReset(),
			ui.ColorYellow(), format.FormatCount(s.Mismatched), ui.ColorReset())
	}
	return s
}

// WriteBatchToFile saves the batch outcomes to path as tab-separated
// lines: line number, expression, then the plain value or the error.
func WriteBatchToFile(items []orchestration.BatchItem, path string) error {
	if path == "" {
		return nil
	}
	file, err := createOutputFile(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "# bigcalc batch results\n")
	for _, item := range items {
		value := FormatBatchLine(item, true)
		if res, mismatch, err := item.Outcome(); err == nil && !mismatch {
			value = FormatQuietResult(res.Result)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", item.Line, item.Expression, value)
	}
	return w.Flush()
}
