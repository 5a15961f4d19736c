package scaffold

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"

	"github.com/bcgov/nr-repository-composer/internal/output"
)

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func (w *Writer) logDiff(path string, before, after []byte) {
	diff, err := DiffYAML(before, after, output.IsTTY())
	if err != nil {
		w.log.Debug("cannot diff file", "path", w.rel(path), "err", err)
		return
	}
	if diff == "" {
		return
	}
	w.log.Debug("file changed", "path", w.rel(path))
	w.log.Debug("\n" + output.IndentDiff(diff, "    "))
}

// DiffYAML returns a human readable, structure-aware diff of two YAML
// documents, or "" when they are semantically equal.
func DiffYAML(before, after []byte, useColor bool) (string, error) {
	if len(before) == 0 && len(after) == 0 {
		return "", nil
	}

	from, err := parseYAMLInput("before", before)
	if err != nil {
		return "", fmt.Errorf("parsing previous YAML: %w", err)
	}
	to, err := parseYAMLInput("after", after)
	if err != nil {
		return "", fmt.Errorf("parsing new YAML: %w", err)
	}

	report, err := dyff.CompareInputFiles(from, to)
	if err != nil {
		return "", fmt.Errorf("comparing YAML: %w", err)
	}
	if len(report.Diffs) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	human := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}
	if err := human.WriteReport(&buf); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{Location: name}, nil
	}
	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}
	return ytbx.InputFile{Location: name, Documents: docs}, nil
}
