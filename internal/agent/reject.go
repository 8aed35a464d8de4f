package agent

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// maxLoggedResponse bounds how much of a rejected response ends up in logs.
const maxLoggedResponse = 2048

// rejectResponse logs a contract failure and evicts the cached reply so the
// same prompt is sent to the backend again next time.
func rejectResponse(ctx context.Context, generator Generator, prompt, raw string, err error) {
	logged := raw
	if len(logged) > maxLoggedResponse {
		logged = logged[:maxLoggedResponse]
	}
	ctxzap.Warn(ctx, "generated response rejected by contract",
		zap.Error(err),
		zap.String("raw_response", logged),
	)
	generator.Forget(ctx, prompt)
}
