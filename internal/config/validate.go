package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateInputs(); err != nil {
		return err
	}
	if err := c.validateSentinels(); err != nil {
		return err
	}
	if err := c.validateOutputs(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateInputs() error {
	inputs := []struct {
		field string
		value string
	}{
		{"inputs.benchmarks", c.Inputs.Benchmarks},
		{"inputs.thresholdless", c.Inputs.Thresholdless},
		{"inputs.registry", c.Inputs.Registry},
		{"inputs.pollutant_synonyms", c.Inputs.PollutantSynonyms},
		{"inputs.benchmark_synonyms", c.Inputs.BenchmarkSynonyms},
	}
	for _, input := range inputs {
		if input.value == "" {
			return fmt.Errorf("%s must be set", input.field)
		}
	}
	return nil
}

func (c *Config) validateSentinels() error {
	// Equal sentinels would silently merge the two filter conditions; the
	// registry and benchmark sources are documented to use different markers.
	if c.Sentinels.RegistryMissingCAS == c.Sentinels.BenchmarkMissingCAS {
		return errors.New("sentinels.registry_missing_cas and sentinels.benchmark_missing_cas must differ")
	}
	return nil
}

func (c *Config) validateOutputs() error {
	if c.Outputs.ExactMatches == c.Outputs.SynonymCandidates {
		return errors.New("outputs.exact_matches and outputs.synonym_candidates must name different files")
	}
	if c.Report.Enabled {
		if c.Report.FileName == c.Outputs.ExactMatches || c.Report.FileName == c.Outputs.SynonymCandidates {
			return errors.New("report.file_name must differ from the result file names")
		}
	}
	return nil
}
