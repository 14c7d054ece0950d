package layer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

const (
	manifestFileFormatVersion = "1.0.0"
	// DisableEnvironment turns the layer off when set, whatever its value.
	DisableEnvironment = "DISABLE_XR_APILAYER_HEADTURN_AMPLIFY"
)

// Manifest is the JSON file the loader discovers the layer from.
type Manifest struct {
	FileFormatVersion string        `json:"file_format_version"`
	APILayer          ManifestLayer `json:"api_layer"`
}

// ManifestLayer is the api_layer object of a Manifest.
type ManifestLayer struct {
	Name                  string            `json:"name"`
	LibraryPath           string            `json:"library_path"`
	APIVersion            string            `json:"api_version"`
	ImplementationVersion string            `json:"implementation_version"`
	Description           string            `json:"description"`
	Functions             map[string]string `json:"functions,omitempty"`
	DisableEnvironment    string            `json:"disable_environment"`
}

// NewManifest describes the layer built as the shared library at libraryPath.
func NewManifest(libraryPath, implementationVersion string) Manifest {
	return Manifest{
		FileFormatVersion: manifestFileFormatVersion,
		APILayer: ManifestLayer{
			Name:                  Name,
			LibraryPath:           libraryPath,
			APIVersion:            fmt.Sprintf("%d.%d", CurrentAPIVersion.Major(), CurrentAPIVersion.Minor()),
			ImplementationVersion: implementationVersion,
			Description:           "Amplifies the yaw of the head orientation submitted to the compositor",
			Functions: map[string]string{
				"xrNegotiateLoaderApiLayerInterface": "xrNegotiateLoaderApiLayerInterface",
			},
			DisableEnvironment: DisableEnvironment,
		},
	}
}

// Write encodes the manifest as indented JSON.
func (m Manifest) Write(wrt io.Writer) error {
	enc := json.NewEncoder(wrt)
	enc.SetIndent("", "    ")

	err := enc.Encode(m)
	if err != nil {
		return errors.Wrap(err, "unable to encode manifest")
	}

	return nil
}
