package nlp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinegraph/cinegraph/pkg/types"
)

func TestDecodeArguments(t *testing.T) {
	t.Run("valid JSON object", func(t *testing.T) {
		args := decodeArguments(`{"query": "Who directed Inception?", "limit": 5}`)
		assert.Equal(t, "Who directed Inception?", args["query"])
		assert.Equal(t, float64(5), args["limit"])
	})

	t.Run("malformed JSON is repaired", func(t *testing.T) {
		// trailing comma and single quotes, typical of weaker providers
		args := decodeArguments(`{'expression': '2 + 2',}`)
		assert.Equal(t, "2 + 2", args["expression"])
	})

	t.Run("empty payload yields empty map", func(t *testing.T) {
		args := decodeArguments("")
		require.NotNil(t, args)
		assert.Empty(t, args)
	})

	t.Run("unrecoverable payload yields empty map", func(t *testing.T) {
		args := decodeArguments("not json at all [[[")
		require.NotNil(t, args)
	})
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(errors.New("HTTP 503 service unavailable")))
	assert.True(t, isRetryableError(errors.New("rate limit exceeded")))
	assert.True(t, isRetryableError(NewRateLimitError()))
	assert.True(t, isRetryableError(errors.New("request timeout")))
	assert.False(t, isRetryableError(errors.New("invalid api key")))
	assert.False(t, isRetryableError(nil))
}

// flakyClient fails a fixed number of times before succeeding.
type flakyClient struct {
	failures int
	calls    int
	err      error
}

func (f *flakyClient) Chat(ctx context.Context, messages []types.Message) (*types.Response, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return &types.Response{Content: "ok"}, nil
}

func (f *flakyClient) ChatWithTools(ctx context.Context, messages []types.Message, tools []types.ToolDefinition) (*types.Response, error) {
	return f.Chat(ctx, messages)
}

func (f *flakyClient) Close() error { return nil }

func TestRetryClientRecoversFromTransientFailure(t *testing.T) {
	inner := &flakyClient{failures: 2, err: errors.New("503 service unavailable")}
	client := NewRetryClient(inner, &RetryConfig{
		MaxRetries:        3,
		InitialDelay:      time.Millisecond,
		MaxDelay:          5 * time.Millisecond,
		BackoffMultiplier: 2.0,
	})

	resp, err := client.Chat(context.Background(), []types.Message{types.NewUserMessage("hi")})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryClientFailsFastOnNonRetryableError(t *testing.T) {
	inner := &flakyClient{failures: 10, err: errors.New("invalid api key")}
	client := NewRetryClient(inner, &RetryConfig{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
	})

	_, err := client.Chat(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, 1, inner.calls, "non-retryable errors should not be retried")
}

func TestRetryClientExhaustsRetries(t *testing.T) {
	inner := &flakyClient{failures: 10, err: errors.New("429 too many requests")}
	client := NewRetryClient(inner, &RetryConfig{
		MaxRetries:        2,
		InitialDelay:      time.Millisecond,
		MaxDelay:          2 * time.Millisecond,
		BackoffMultiplier: 2.0,
	})

	_, err := client.Chat(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 2 retries")
	assert.Equal(t, 3, inner.calls)
}

func TestValidateBaseURL(t *testing.T) {
	assert.NoError(t, validateBaseURL("http://localhost:11434"))
	assert.NoError(t, validateBaseURL("https://api.example.com/v1"))
	assert.Error(t, validateBaseURL(""))
	assert.Error(t, validateBaseURL("localhost:11434"))
	assert.Error(t, validateBaseURL("ftp://example.com"))
}
