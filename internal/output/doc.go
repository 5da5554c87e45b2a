// Package output renders the progress lines of a check run.
//
// Two implementations share the Output interface:
//
//   - StreamingOutput: writes each line to an io.Writer as it happens (the CLI)
//   - BufferedOutput: collects lines for later retrieval (the MCP tools)
//
// Usage Example:
//
//	out := output.NewStreamingOutput(os.Stdout).WithColor(output.ColorEnabled(os.Stdout, false))
//	out.Section("🏷️", "Checking labels...")
//	out.Success("Label for %s found and associated correctly.", "speedRange")
//
// StreamingOutput colors its lines with fatih/color when enabled; BufferedOutput
// never colors. All implementations are safe for concurrent use.
package output
