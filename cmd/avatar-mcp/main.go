package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/avatar-compositor-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const logLevelEnv = "AVATAR_MCP_LOG_LEVEL"

func main() {
	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv(logLevelEnv) == "debug"

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("avatar-compositor-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		case "combine":
			if err := runCombine(os.Args[2:], os.Stdout, debug); err != nil {
				log.Fatalf("combine: %v", err)
			}
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
			printUsage()
			os.Exit(2)
		}
	}

	if debug {
		log.Printf("Avatar Compositor MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New(server.WithVersion(Version), server.WithDebug(debug))
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printUsage() {
	fmt.Println("avatar-compositor-mcp - MCP server that places circular avatars on backgrounds")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  avatar-compositor-mcp               Serve MCP over stdin/stdout")
	fmt.Println("  avatar-compositor-mcp combine ...   Composite once and write the result")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Run 'avatar-compositor-mcp combine -h' for the combine flags.")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=debug    Enable debug logging\n", logLevelEnv)
}
