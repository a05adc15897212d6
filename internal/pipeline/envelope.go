package pipeline

import (
	"encoding/json"

	"github.com/panbanda/waypoint/internal/report"
)

// StatusFailed is the status carried by every failure payload.
const StatusFailed = "failed"

// Envelope is the successful result of an analyze request.
type Envelope struct {
	Phase                 string   `json:"phase" toon:"phase"`
	ProjectPath           string   `json:"projectPath" toon:"projectPath"`
	RepositoryRoot        string   `json:"repositoryRoot,omitempty" toon:"repositoryRoot,omitempty"`
	ProvidedPath          string   `json:"providedPath,omitempty" toon:"providedPath,omitempty"`
	Findings              string   `json:"findings" toon:"findings"`
	NextPhaseNeeded       bool     `json:"nextPhaseNeeded" toon:"nextPhaseNeeded"`
	AnalysisHistoryLength int      `json:"analysisHistoryLength" toon:"analysisHistoryLength"`
	SuggestedNextPhase    string   `json:"suggestedNextPhase,omitempty" toon:"suggestedNextPhase,omitempty"`
	CompletedPhases       []string `json:"completedPhases,omitempty" toon:"completedPhases,omitempty"`

	// Signals is the structured summary behind Findings. It is not part
	// of the wire format.
	Signals report.Signals `json:"-" toon:"-"`
}

// Failure is the payload returned in place of an Envelope.
type Failure struct {
	Error  string `json:"error" toon:"error"`
	Status string `json:"status" toon:"status"`
}

// Response is either an Envelope or a Failure.
type Response struct {
	Envelope *Envelope
	Failure  *Failure
	IsError  bool
}

// Payload returns the value to serialize.
func (r Response) Payload() any {
	if r.IsError {
		return r.Failure
	}
	return r.Envelope
}

// JSON renders the payload with two-space indentation.
func (r Response) JSON() ([]byte, error) {
	return json.MarshalIndent(r.Payload(), "", "  ")
}
