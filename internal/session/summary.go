package session

import (
	"audiorr/internal/models"
	fsWrite "audiorr/internal/utils/fs/write"
)

// Summarize aggregates a session's results into a run-level summary.
//
// Pure aggregation: for every session, TotalAttempted == Succeeded + Failed.
func Summarize(s *models.Session) *models.RunSummary {
	sum := &models.RunSummary{
		SessionID:  s.ID,
		SessionDir: s.Dir,
		SourceURL:  s.SourceURL,
		Kind:       s.Kind,
		Failures:   make(map[string]string),
	}

	for _, r := range s.Results {
		sum.TotalAttempted++
		if r.Success {
			sum.Succeeded++
			if r.OutputPath != "" {
				sum.OutputFiles = append(sum.OutputFiles, r.OutputPath)
			}
		} else {
			sum.Failed++
			sum.Failures[r.URL] = r.Err
		}
	}

	return sum
}

// WriteSummary writes the run summary into the session root as
// 'download_results.json'. The session's result list is considered frozen
// once this has been called.
func WriteSummary(s *models.Session, sum *models.RunSummary) error {
	return fsWrite.WriteJSONFile(s.ResultsPath(), sum)
}
