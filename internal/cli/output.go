package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case RegisterResult:
		o.printRegisterResult(v)
	case AuthResult:
		o.printAuthResult(v)
	case PropagationResult:
		o.printPropagationResult(v)
	case StatusResult:
		o.printStatusResult(v)
	case VersionResult:
		o.printVersionResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// RegisterResult response type (matches API)
type RegisterResult struct {
	UserID string `json:"user_id"`
}

// AuthResult response type
type AuthResult struct {
	UserID   string `json:"user_id"`
	JWTToken string `json:"jwt_token"`
}

// StateVector response type
type StateVector struct {
	Time     string     `json:"time"`
	Position [3]float64 `json:"position"`
	Velocity [3]float64 `json:"velocity"`
}

// PropagationResult response type
type PropagationResult struct {
	Name      string        `json:"name,omitempty"`
	Ephemeris []StateVector `json:"ephemeris"`
}

// StatusResult response type
type StatusResult struct {
	Status string `json:"status"`
}

// VersionResult response type
type VersionResult struct {
	Version string `json:"version"`
}

func (o *Output) printRegisterResult(r RegisterResult) {
	fmt.Printf("Registered: %s\n", r.UserID)
}

func (o *Output) printAuthResult(a AuthResult) {
	fmt.Printf("User: %s\n", a.UserID)
	fmt.Printf("Token: %s\n", a.JWTToken)
}

func (o *Output) printPropagationResult(p PropagationResult) {
	if p.Name != "" {
		fmt.Printf("Satellite: %s\n", p.Name)
	}
	fmt.Printf("Ephemeris (%d points):\n", len(p.Ephemeris))
	for _, sv := range p.Ephemeris {
		fmt.Printf("  %s  pos [%.3f %.3f %.3f] km  vel [%.6f %.6f %.6f] km/s\n",
			sv.Time,
			sv.Position[0], sv.Position[1], sv.Position[2],
			sv.Velocity[0], sv.Velocity[1], sv.Velocity[2])
	}
}

func (o *Output) printStatusResult(s StatusResult) {
	fmt.Printf("Status: %s\n", s.Status)
}

func (o *Output) printVersionResult(v VersionResult) {
	fmt.Printf("Version: %s\n", v.Version)
}
