// Package visualizer turns a source snippet into a visualization document.
//
// A Service classifies the code, builds the generation prompt, calls the
// configured llm.Generator and parses the response, retrying the whole
// request with jittered exponential backoff when the model fails or its
// output cannot be recovered. When the parsed trace looks unfinished a single
// continuation request asks for more frames. Once every attempt is spent the
// caller receives a one-frame fallback document instead of an error; only
// invalid input and caller cancellation surface as errors.
package visualizer
