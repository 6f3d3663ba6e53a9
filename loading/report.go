package loading

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type Entry struct {
	Item   string `yaml:"item"`
	Status Status `yaml:"status"`
	Kind   Kind   `yaml:"kind,omitempty"`
	Error  string `yaml:"error,omitempty"`
}

type Report struct {
	Run     string  `yaml:"run"`
	Policy  Policy  `yaml:"policy"`
	Aborted bool    `yaml:"aborted"`
	Entries []Entry `yaml:"entries"`
}

// Failures returns the entries that did not load.
func (r Report) Failures() []Entry {
	var failed []Entry
	for _, entry := range r.Entries {
		if entry.Status != StatusLoaded {
			failed = append(failed, entry)
		}
	}
	return failed
}

func (r Report) WriteYAML(w io.Writer) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func ReadYAML(r io.Reader) (Report, error) {
	var report Report
	if err := yaml.NewDecoder(r).Decode(&report); err != nil {
		return Report{}, fmt.Errorf("failed to decode report: %w", err)
	}
	return report, nil
}
