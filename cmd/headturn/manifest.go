package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/headturn/pkg/layer"
)

func newManifestCmd() *cobra.Command {
	var (
		libraryPath string
		version     string
		out         string
	)

	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Write the OpenXR API layer manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var wrt io.Writer = cmd.OutOrStdout()

			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return errors.Wrap(err, "unable to create manifest file")
				}
				defer f.Close()

				wrt = f
			}

			return layer.NewManifest(libraryPath, version).Write(wrt)
		},
	}

	cmd.Flags().StringVar(&libraryPath, "library-path", "./libheadturn.so", "path of the layer library, relative to the manifest")
	cmd.Flags().StringVar(&version, "implementation-version", "1", "implementation version of the layer")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the manifest to this file instead of stdout")

	return cmd
}
