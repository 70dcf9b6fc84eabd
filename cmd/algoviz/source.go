package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"algoviz/internal/config"
	"algoviz/internal/visualizer"
)

// inputSuffix names the optional sidecar holding a program's input data.
const inputSuffix = ".input"

// readSource loads program text from path, or stdin when path is "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("source file is required")
	}
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return "", fmt.Errorf("read source %q: %w", path, err)
	}
	return string(data), nil
}

// buildRequest assembles a request from a source file and the input flags.
// An explicit --input wins over a sidecar file.
func buildRequest(cmd *cobra.Command, path, input, outputFile string) (visualizer.Request, error) {
	code, err := readSource(cmd, path)
	if err != nil {
		return visualizer.Request{}, err
	}
	req := visualizer.Request{Code: code, InputData: input}
	if req.InputData == "" && path != "-" {
		req.InputData = readSidecar(path)
	}
	if outputFile != "" {
		data, err := os.ReadFile(outputFile)
		if err != nil {
			return visualizer.Request{}, fmt.Errorf("read execution output: %w", err)
		}
		req.ExecutionOutput = string(data)
	}
	return req, nil
}

func readSidecar(path string) string {
	candidates := []string{path + inputSuffix, strings.TrimSuffix(path, filepath.Ext(path)) + inputSuffix}
	for _, candidate := range candidates {
		if data, err := os.ReadFile(candidate); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return ""
}
