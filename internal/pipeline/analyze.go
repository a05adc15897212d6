package pipeline

import (
	"context"
	"fmt"
)

// Analyze runs req and converts every error, including a panic, into a
// failure response.
func (s *Session) Analyze(ctx context.Context, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("analysis panicked", "path", req.ProjectPath, "panic", fmt.Sprint(r))
			resp = failed(fmt.Errorf("internal error: %v", r))
		}
	}()

	env, err := s.Run(ctx, req)
	if err != nil {
		s.logger.Warn("analysis failed", "path", req.ProjectPath, "phase", req.Phase, "error", err)
		return failed(err)
	}
	return Response{Envelope: env}
}

func failed(err error) Response {
	return Response{
		Failure: &Failure{Error: err.Error(), Status: StatusFailed},
		IsError: true,
	}
}
