// Package ingestion prepares job descriptions for the recommender, either
// from local text or from a scraped job posting URL.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	innerSpace  = regexp.MustCompile(`[ \t]+`)
	blankLines  = regexp.MustCompile(`\n{3,}`)
	lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// CleanText normalizes line endings and whitespace while keeping the line
// structure (headings, bullets, indentation) of a job description.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(lineEndings.Replace(content), "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses runs of spaces inside a line, keeping its leading indentation.
func cleanLine(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.TrimSpace(trimmed) == "" {
		return ""
	}
	indent := len(line) - len(trimmed)
	content := innerSpace.ReplaceAllString(strings.TrimSpace(trimmed), " ")
	return strings.Repeat(" ", indent) + content
}

// ReadQueryFile reads a job description from a .txt, .pdf or .docx file and
// cleans it. Files with any other extension are read as plain text.
func ReadQueryFile(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	var (
		content string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		content, err = readPDFText(path)
	case ".docx":
		content, err = readDocxText(path)
	default:
		var data []byte
		data, err = os.ReadFile(path)
		content = string(data)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return CleanText(content), nil
}
