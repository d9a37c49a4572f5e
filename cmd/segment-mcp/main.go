package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/segment-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const usage = `segment-tools-mcp - MCP server for image region segmentation

Usage: segment-tools-mcp [options]

Options:
  --version, -v    Print version information
  --defaults       Print the segmentation defaults in effect and exit
  --help, -h       Print this help message

Environment variables:
  SEGMENT_MCP_LOG_LEVEL=debug          Enable debug logging
  SEGMENT_MCP_THRESHOLD=15             Flood fill color tolerance
  SEGMENT_MCP_METRIC=channel           Color comparison: channel or lab
  SEGMENT_MCP_BLUR_RADIUS=5            Border smoothing radius (0 disables)
  SEGMENT_MCP_BLUR_PASSES=1            Border smoothing passes
  SEGMENT_MCP_TOLERANCE=1              Contour simplification tolerance
  SEGMENT_MCP_MIN_SIMPLIFY_COUNT=30    Smallest contour that is simplified

Tool calls that omit these arguments use the values above.
This server communicates via MCP protocol over stdin/stdout.`

func main() {
	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	params, err := loadParams(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("segment-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--defaults":
			fmt.Println(describeParams(params))
			return
		case "--help", "-h", "help":
			fmt.Println(usage)
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown option %q\n\n%s\n", os.Args[1], usage)
			os.Exit(2)
		}
	}

	if os.Getenv("SEGMENT_MCP_LOG_LEVEL") == "debug" {
		log.Printf("Segment MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Segmentation defaults: %s", describeParams(params))
	}

	srv := server.NewWithDefaults(params)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
