package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/waktusolat/solat-api/internal/config"
	"github.com/waktusolat/solat-api/internal/geo"
	"github.com/waktusolat/solat-api/internal/storage"
)

var boundariesCmd = &cobra.Command{
	Use:   "boundaries",
	Short: "Validate and publish district boundary files",
}

var boundariesCheckCmd = &cobra.Command{
	Use:   "check <file.geojson>",
	Short: "Decode a boundary file and report its districts",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoundariesCheck,
}

var boundariesUploadCmd = &cobra.Command{
	Use:   "upload <file.geojson>",
	Short: "Validate a boundary file and store it where the server loads it from",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoundariesUpload,
}

func init() {
	boundariesCmd.AddCommand(boundariesCheckCmd, boundariesUploadCmd)
}

func checkBoundaryFile(path string) (int, map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, err
	}
	defer f.Close()

	districts, err := geo.DecodeGeoJSON(f)
	if err != nil {
		return 0, nil, err
	}
	zones := make(map[string]bool)
	for _, d := range districts {
		zones[d.Zone] = true
	}
	return len(districts), zones, nil
}

func runBoundariesCheck(cmd *cobra.Command, args []string) error {
	n, zones, err := checkBoundaryFile(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d districts across %d zones\n", n, len(zones))
	return nil
}

func runBoundariesUpload(cmd *cobra.Command, args []string) error {
	if _, _, err := checkBoundaryFile(args[0]); err != nil {
		return fmt.Errorf("refusing to upload: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var st storage.Storage = storage.NewLocalStorage(cfg.BoundarySource)
	if cfg.UseSpaces {
		st, err = storage.NewSpacesStorage(cfg.SpacesEndpoint, cfg.SpacesRegion, cfg.SpacesBucket, cfg.SpacesPrefix, cfg.SpacesAccessKey, cfg.SpacesSecretKey)
		if err != nil {
			return err
		}
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	name := cfg.BoundaryFile
	if name == "" {
		name = filepath.Base(args[0])
	}
	location, err := st.Save(cmd.Context(), name, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "uploaded to %s\n", location)
	return nil
}
