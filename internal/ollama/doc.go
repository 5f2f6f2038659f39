// Package ollama is a minimal client for a locally running Ollama service.
//
// Two endpoints are used: /api/generate for a single non-streaming
// completion and /api/tags for the list of installed models. The client
// performs exactly one HTTP round trip per call. There is no client-side
// timeout and no retry; cancellation comes from the caller's context.
//
// Failures are reported as typed errors so callers can tell an unreachable
// service ([ServiceUnavailableError]) from an HTTP failure ([ServiceError])
// and from a body that does not have the expected shape
// ([MalformedResponseError]).
package ollama
