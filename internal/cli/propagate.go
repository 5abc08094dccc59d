package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newPropagateCmd() *cobra.Command {
	var (
		tleFile     string
		name        string
		line1       string
		line2       string
		targetTime  string
		startTime   string
		stopTime    string
		stepSeconds int
	)

	cmd := &cobra.Command{
		Use:   "propagate",
		Short: "Propagate a TLE over a time window",
		Long: `Propagate a two-line element set with SGP4.

The element set is given either inline (--line1/--line2) or from a file
(--tle-file, name line optional). The window is either a single instant
(--at) or a range (--start/--stop, stepped every --step seconds).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tleFile != "" {
				var err error
				name, line1, line2, err = readTLEFile(tleFile)
				if err != nil {
					return err
				}
			}
			if line1 == "" || line2 == "" {
				return fmt.Errorf("--line1 and --line2 (or --tle-file) are required")
			}

			payload := map[string]any{
				"tle": map[string]string{
					"name":  name,
					"line1": line1,
					"line2": line2,
				},
			}
			if targetTime != "" {
				payload["target_time"] = targetTime
			} else {
				payload["start_time"] = startTime
				payload["stop_time"] = stopTime
				if stepSeconds > 0 {
					payload["step_seconds"] = stepSeconds
				}
			}

			var result PropagationResult
			if err := client.Post("/fdsaas/api/orb_propagation_tle", payload, true, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&tleFile, "tle-file", "", "File containing the element set")
	cmd.Flags().StringVar(&name, "name", "", "Satellite name")
	cmd.Flags().StringVar(&line1, "line1", "", "TLE line 1")
	cmd.Flags().StringVar(&line2, "line2", "", "TLE line 2")
	cmd.Flags().StringVar(&targetTime, "at", "", "Single propagation instant (RFC3339)")
	cmd.Flags().StringVar(&startTime, "start", "", "Window start (RFC3339)")
	cmd.Flags().StringVar(&stopTime, "stop", "", "Window stop (RFC3339)")
	cmd.Flags().IntVar(&stepSeconds, "step", 0, "Ephemeris step in seconds (default 60)")

	return cmd
}

// readTLEFile reads a two- or three-line element set file
func readTLEFile(path string) (name, line1, line2 string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", "", err
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	switch len(lines) {
	case 2:
		return "", lines[0], lines[1], nil
	case 3:
		return strings.TrimSpace(lines[0]), lines[1], lines[2], nil
	default:
		return "", "", "", fmt.Errorf("%s: expected 2 or 3 lines, got %d", path, len(lines))
	}
}
