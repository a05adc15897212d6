package mcpserver

import (
	"encoding/json"

	"github.com/panbanda/waypoint/internal/logging"
)

const manifestSchema = "https://static.modelcontextprotocol.io/schemas/2025-10-17/server.schema.json"

// Manifest is the registry description of the server (server.json).
type Manifest struct {
	Schema      string      `json:"$schema"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Version     string      `json:"version"`
	Repository  *Repository `json:"repository,omitempty"`
	Packages    []Package   `json:"packages,omitempty"`
}

// Repository contains source repository information.
type Repository struct {
	URL    string `json:"url"`
	Source string `json:"source"`
}

// Package describes how to install and run the server.
type Package struct {
	RegistryType         string        `json:"registryType"`
	Identifier           string        `json:"identifier"`
	PackageArguments     []Argument    `json:"packageArguments,omitempty"`
	EnvironmentVariables []EnvVariable `json:"environmentVariables,omitempty"`
	Transport            Transport     `json:"transport"`
}

// Argument represents a command-line argument.
type Argument struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

// EnvVariable documents an environment variable the server reads.
type EnvVariable struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsRequired  bool   `json:"isRequired"`
}

// Transport describes the communication method.
type Transport struct {
	Type string `json:"type"`
}

// NewManifest describes the given release of the server.
func NewManifest(version string) Manifest {
	if version == "" {
		version = "0.0.0"
	}
	return Manifest{
		Schema:      manifestSchema,
		Name:        "io.github.panbanda/waypoint",
		Description: "Phased onboarding reports for unfamiliar codebases: documents, layout, dependencies and architecture",
		Version:     version,
		Repository: &Repository{
			URL:    "https://github.com/panbanda/waypoint",
			Source: "github",
		},
		Packages: []Package{{
			RegistryType:     "oci",
			Identifier:       "ghcr.io/panbanda/waypoint:" + version,
			PackageArguments: []Argument{{Type: "positional", Value: "mcp"}},
			EnvironmentVariables: []EnvVariable{{
				Name:        logging.QuietEnv,
				Description: "Set to true to log warnings only.",
			}},
			Transport: Transport{Type: "stdio"},
		}},
	}
}

// GenerateManifest returns the indented server.json for version.
func GenerateManifest(version string) ([]byte, error) {
	return json.MarshalIndent(NewManifest(version), "", "  ")
}
