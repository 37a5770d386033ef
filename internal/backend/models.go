package backend

import "fmt"

// StressLevel is the backend's coarse three-bucket classification derived
// from the continuous stress score.
type StressLevel string

const (
	StressLow    StressLevel = "low"
	StressMedium StressLevel = "medium"
	StressHigh   StressLevel = "high"
)

func (s StressLevel) Valid() bool {
	switch s {
	case StressLow, StressMedium, StressHigh:
		return true
	}
	return false
}

// AnalyzeRequest is the body of POST /predict.
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// AnalyzeResponse mirrors the backend's whole-text prediction. It is held
// as-is in UI state and replaced wholesale on the next submission.
type AnalyzeResponse struct {
	PrimaryEmotion    string             `json:"primary_emotion"`
	StressLevel       StressLevel        `json:"stress_level"`
	StressScore       float64            `json:"stress_score"`
	Scores            map[string]float64 `json:"scores"`
	CopingStrategy    string             `json:"coping_strategy"`
	SentenceBreakdown []SentenceResult   `json:"sentence_breakdown"`
}

// SentenceResult is one entry of the per-sentence breakdown. Rendered as
// received, never post-processed.
type SentenceResult struct {
	Sentence    string             `json:"sentence"`
	Emotion     string             `json:"emotion"`
	StressLevel StressLevel        `json:"stress_level"`
	StressScore float64            `json:"stress_score"`
	Scores      map[string]float64 `json:"scores"`
}

// CopingRequest is the body of POST /coping, derived from the journal text
// and the two scalar fields of the analyze result.
type CopingRequest struct {
	Journal        string      `json:"journal"`
	PrimaryEmotion string      `json:"primary_emotion"`
	StressLevel    StressLevel `json:"stress_level"`
}

type CopingResponse struct {
	CopingText string `json:"coping_text"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// Validate checks the response shape at the client boundary so malformed
// backend output fails loudly instead of propagating as zero values.
func (r *AnalyzeResponse) Validate() error {
	if r.PrimaryEmotion == "" {
		return fmt.Errorf("%w: missing primary_emotion", ErrInvalidResponse)
	}
	if !r.StressLevel.Valid() {
		return fmt.Errorf("%w: unknown stress_level %q", ErrInvalidResponse, r.StressLevel)
	}
	if len(r.Scores) == 0 {
		return fmt.Errorf("%w: missing scores", ErrInvalidResponse)
	}
	for i, s := range r.SentenceBreakdown {
		if s.Sentence == "" {
			return fmt.Errorf("%w: sentence_breakdown[%d] has empty sentence", ErrInvalidResponse, i)
		}
		if !s.StressLevel.Valid() {
			return fmt.Errorf("%w: sentence_breakdown[%d] has unknown stress_level %q", ErrInvalidResponse, i, s.StressLevel)
		}
	}
	return nil
}

func (r *CopingResponse) Validate() error {
	if r.CopingText == "" {
		return fmt.Errorf("%w: missing coping_text", ErrInvalidResponse)
	}
	return nil
}
