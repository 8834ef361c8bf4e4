package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/surfseg/version"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "surfseg",
	Short: "Segment triangle meshes and color them by inter-segment proximity",
	Long: `surfseg splits a triangle mesh into connected segments (triangles that share
or nearly share a vertex) and colors every point by the distance from its segment
to the closest point of any other segment: far points are red, close points blue.

Input is either a text file with nine comma-separated coordinates per line or an
STL file. Output is written as PLY, legacy VTK or JSON.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
