package validator

import (
	"fmt"
	"time"

	"github.com/gnzdotmx/workflowlint/internal/utils"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Report is the YAML summary of a validation run
type Report struct {
	ID        string       `yaml:"id"`
	Dir       string       `yaml:"dir"`
	StartTime time.Time    `yaml:"startTime"`
	EndTime   time.Time    `yaml:"endTime"`
	Total     int          `yaml:"total"`
	Passed    int          `yaml:"passed"`
	Failed    int          `yaml:"failed"`
	Files     []FileReport `yaml:"files"`
}

// FileReport is the per-file entry of a Report
type FileReport struct {
	File   string `yaml:"file"`
	Status Status `yaml:"status"`
	Error  string `yaml:"error,omitempty"`
}

// NewReport builds a report from a run summary
func NewReport(summary *Summary) *Report {
	report := &Report{
		ID:        uuid.New().String(),
		Dir:       summary.Dir,
		StartTime: summary.StartTime,
		EndTime:   summary.EndTime,
		Total:     len(summary.Results),
		Passed:    summary.Passed(),
		Failed:    summary.Failed(),
		Files:     make([]FileReport, 0, len(summary.Results)),
	}

	for _, r := range summary.Results {
		entry := FileReport{File: r.File, Status: r.Status()}
		if r.Err != nil {
			entry.Error = r.Err.Error()
		}
		report.Files = append(report.Files, entry)
	}

	return report
}

// SaveReport writes the run summary as YAML to outputPath
func SaveReport(summary *Summary, outputPath string) error {
	data, err := yaml.Marshal(NewReport(summary))
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := utils.WriteTextFile(outputPath, data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	utils.LogVerbose("Report written to %s", outputPath)
	return nil
}
