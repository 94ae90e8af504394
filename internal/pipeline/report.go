package pipeline

import (
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/appshelf/appshelf/pkg/errors"
)

// ReportFileName is written next to the workbook after each run.
const ReportFileName = "run_report.yaml"

// Failure records one source lookup that could not serve an entry. The entry
// itself may still have been written from the other source.
type Failure struct {
	Source string `yaml:"source"`
	ID     string `yaml:"id"`
	Error  string `yaml:"error"`
}

// Report summarizes one pipeline run.
type Report struct {
	Started  time.Time `yaml:"started"`
	Finished time.Time `yaml:"finished"`

	Total   int `yaml:"total"`
	Written int `yaml:"written"`
	Skipped int `yaml:"skipped"`

	Failures []Failure `yaml:"failures,omitempty"`
}

// Save persists the report as YAML, replacing any previous run's report.
func (r *Report) Save(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
