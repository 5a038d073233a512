package replicate

import "errors"

var (
	// ErrMissingAPIToken indicates the client was constructed without a credential.
	ErrMissingAPIToken = errors.New("replicate API token is required")

	// ErrInvalidConfig indicates the configuration is incomplete.
	ErrInvalidConfig = errors.New("invalid replicate configuration")

	// ErrRequestFailed indicates a transport-level failure talking to the API.
	ErrRequestFailed = errors.New("replicate request failed")

	// ErrInvalidResponse indicates the API returned a payload that is not
	// valid JSON or does not match the expected shape.
	ErrInvalidResponse = errors.New("replicate returned an invalid response")

	// ErrCreateFailed indicates the create call was rejected by the provider.
	ErrCreateFailed = errors.New("replicate prediction creation failed")

	// ErrPredictionFailed indicates the job reached the failed state.
	ErrPredictionFailed = errors.New("replicate prediction failed")

	// ErrWaitTimeout indicates the poll budget was exhausted before the job
	// reached a terminal state.
	ErrWaitTimeout = errors.New("timed out waiting for prediction")

	// ErrEmptyOutput indicates a succeeded job carried no output.
	ErrEmptyOutput = errors.New("prediction produced no output")
)
