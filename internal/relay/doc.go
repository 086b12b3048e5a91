// Package relay provides an HTTP client for a media relay instance.
//
// # Overview
//
// This package defines the API client for submitting source URLs to a media
// relay instance and interpreting its tagged responses. It handles HTTP
// communication, JSON serialization, and type-safe representation of the
// response union and instance metadata.
//
// # Architecture
//
// The package is split into three files:
//
//   - client.go: HTTP client, request construction and response interpretation
//   - types.go: Data structures mirroring the relay API schema
//   - errors.go: Typed errors callers can branch on with errors.As
//
// # Client Usage
//
// Create a client with the instance base URL and optional credential:
//
//	client, err := relay.New("https://api.example.com",
//		relay.WithAPIKey("secret"))
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	resp, payload, err := client.Fetch(ctx, relay.Request{
//		URL:          "https://example.com/watch?v=abc",
//		DownloadMode: relay.DownloadModeAudio,
//	})
//	if err != nil {
//		log.Printf("fetch failed: %v", err)
//	}
//
// # API Endpoints
//
// The client supports three operations:
//
//   - POST /: Submit a processing request, returns the tagged response union
//   - GET /: Instance metadata (version, services, git provenance); never
//     authenticated
//   - GET <tunnel url>: Raw binary payload for a tunnel resource
//
// Fetch combines the first and third: when the response variant is tunnel or
// redirect it downloads the carried URL immediately, otherwise it returns
// after a single round-trip.
//
// # Response Interpretation
//
// POST / answers with a closed union discriminated by the "status" field:
// tunnel, redirect, local-processing, picker, or error. The interpretation
// contract is strict and intentionally asymmetric:
//
//   - A body that fails to decode on a non-2xx status reports the HTTP
//     status (the more actionable diagnostic); on a 2xx the decode failure
//     itself is reported.
//   - A decoded error variant always fails the call, even on a 200.
//   - A decoded non-error variant on a non-2xx status is still rejected;
//     the payload is not trusted over the transport signal in that branch.
//
// # Error Handling
//
// The client distinguishes between several error types:
//
//   - *HTTPStatusError: 4xx/5xx HTTP status with no trustworthy payload
//   - *RequestError: the instance returned an error variant; carries the
//     machine-readable code and optional context
//   - Decode errors: malformed JSON on an otherwise successful exchange
//   - Network errors: connection refused, timeout, DNS failure
//
// All errors are wrapped with an operation prefix using fmt.Errorf, so a
// failure during processing reads differently from one during a tunnel
// download:
//
//   - "process request: api error error.api.content.too.long"
//   - "download tunnel: unexpected http status 404"
//   - "fetch instance info: execute request: dial tcp: connection refused"
//
// # Timeouts and Retries
//
// No timeout or retry is applied internally. Some sources legitimately take
// minutes to process and the instance can stall on certain variants, so the
// caller owns cancellation: pass a bounded ctx, or inject an *http.Client
// with a Timeout via WithHTTPClient.
//
// # Thread Safety
//
// The Client struct is immutable after New and safe for concurrent use. The
// underlying http.Client handles connection pooling internally.
package relay
