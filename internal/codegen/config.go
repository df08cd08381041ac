package codegen

import (
	"fmt"
	"go/token"
	"io"
	"path/filepath"
)

// DefaultPackage is the package name used when Config.Package is empty.
const DefaultPackage = "events"

// Config holds the configuration for the generator.
type Config struct {
	// SchemaFiles are the record schemas (*.avsc) to generate types for.
	SchemaFiles []string
	// Output is the Go file written by Generate.
	Output string
	// Package is the Go package name of the generated file.
	Package string
	// Log receives progress lines when set.
	Log io.Writer
}

// Validate checks the configuration and fills defaults.
func (c *Config) Validate() error {
	if len(c.SchemaFiles) == 0 {
		return fmt.Errorf("at least one schema file is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output file is required")
	}
	if c.Package == "" {
		c.Package = DefaultPackage
	}
	if !token.IsIdentifier(c.Package) {
		return fmt.Errorf("invalid package name %q", c.Package)
	}
	return nil
}

// AbsolutePaths converts relative paths to absolute paths.
func (c *Config) AbsolutePaths() error {
	for i, path := range c.SchemaFiles {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve schema file %s: %w", path, err)
		}
		c.SchemaFiles[i] = abs
	}
	abs, err := filepath.Abs(c.Output)
	if err != nil {
		return fmt.Errorf("failed to resolve output file: %w", err)
	}
	c.Output = abs
	return nil
}
