// Command algoviz turns short programs into step-by-step visualization traces
// using an LLM.
//
// It can run as an HTTP API for the web front end (serve) or work directly on
// files: visualize one program, batch a directory of programs, inspect the
// classification or the exact prompt, check model connectivity, and maintain
// the response cache.
package main
