package restyutil

import (
	"context"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

type contextKey string

const messageIdContextKey contextKey = "restyutil.instrument.message_id"

var idcounter uint64

// InstrumentClient logs every request/response pair on the client at
// debug level, tagging both sides with a shared message id so slow or
// failing portal calls can be matched up in the log.
func InstrumentClient(client *resty.Client) {
	client.OnBeforeRequest(onBeforeRequest)
	client.OnAfterResponse(onAfterResponse)
	client.OnError(onError)
}

func onBeforeRequest(cli *resty.Client, req *resty.Request) error {
	ctx := req.Context()
	if !slog.Default().Enabled(ctx, slog.LevelDebug) {
		return nil
	}
	messageId := strconv.FormatUint(atomic.AddUint64(&idcounter, 1), 10)
	slog.DebugContext(
		ctx, "start request",
		"method", req.Method,
		"url", req.URL,
		"message_id", messageId,
	)
	req.SetContext(context.WithValue(ctx, messageIdContextKey, messageId))
	return nil
}

func onAfterResponse(cli *resty.Client, res *resty.Response) error {
	ctx := res.Request.Context()
	if !slog.Default().Enabled(ctx, slog.LevelDebug) {
		return nil
	}
	messageId, _ := ctx.Value(messageIdContextKey).(string)
	slog.DebugContext(
		ctx, "finish request",
		"status", res.StatusCode(),
		"duration", res.Time(),
		"message_id", messageId,
	)
	return nil
}

func onError(req *resty.Request, err error) {
	messageId, _ := req.Context().Value(messageIdContextKey).(string)
	slog.ErrorContext(
		req.Context(), "request failed",
		"method", req.Method,
		"url", req.URL,
		"err", err,
		"message_id", messageId,
	)
}
