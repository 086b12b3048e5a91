package relay

import (
	"encoding/json"
	"fmt"
)

// HTTPStatusError reports a non-success HTTP status where no trustworthy
// API payload was available.
type HTTPStatusError struct {
	Code int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected http status %d", e.Code)
}

// RequestError reports an error variant returned by the instance. It takes
// precedence over the HTTP status: the instance may answer 200 and still
// signal failure through the payload.
type RequestError struct {
	Code    string
	Context *ErrorContext
}

func (e *RequestError) Error() string {
	if e.Context == nil {
		return fmt.Sprintf("api error %s", e.Code)
	}
	ctx, err := json.Marshal(e.Context)
	if err != nil {
		return fmt.Sprintf("api error %s", e.Code)
	}
	return fmt.Sprintf("api error %s: %s", e.Code, ctx)
}
