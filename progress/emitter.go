package progress

import (
	"encoding/json"
	"io"
	"time"

	"github.com/pterm/pterm"
)

var (
	_ Emitter = (*CLIEmitter)(nil)
	_ Emitter = (*JSONEmitter)(nil)
)

// CLIEmitter prints progress to the terminal using pterm.
type CLIEmitter struct {
	verbosity int
}

// NewCLIEmitter creates a CLI progress emitter. Verbosity widens the
// completion summary.
func NewCLIEmitter(verbosity int) *CLIEmitter {
	return &CLIEmitter{verbosity: verbosity}
}

func (e *CLIEmitter) EmitStage(stage, message string) {
	pterm.Printf("%s: %s\n", pterm.LightCyan(stage), message)
}

func (e *CLIEmitter) EmitAdvance(tracker *Tracker, item string) {
	pterm.Printf("%s %s (%d/%d)\n",
		pterm.Green("✓"), item, tracker.Finished(), tracker.Total())
}

func (e *CLIEmitter) EmitComplete(summary map[string]interface{}) {
	pterm.Success.Println("Generation complete")
	if e.verbosity >= 1 {
		for key, value := range summary {
			pterm.Printf("  %s: %v\n", key, value)
		}
	}
}

func (e *CLIEmitter) EmitError(stage string, err error) {
	pterm.Error.Printf("Error in %s: %v\n", stage, err)
}

// Event is one structured progress record emitted by JSONEmitter.
type Event struct {
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// JSONEmitter writes structured progress events, one JSON object per
// line, for consumption by editors and build tooling.
type JSONEmitter struct {
	encoder *json.Encoder
}

func NewJSONEmitter(w io.Writer) *JSONEmitter {
	return &JSONEmitter{encoder: json.NewEncoder(w)}
}

func (e *JSONEmitter) EmitStage(stage, message string) {
	e.emit("stage", map[string]interface{}{
		"stage":   stage,
		"message": message,
	})
}

func (e *JSONEmitter) EmitAdvance(tracker *Tracker, item string) {
	e.emit("advance", map[string]interface{}{
		"item":     item,
		"finished": tracker.Finished(),
		"total":    tracker.Total(),
	})
}

func (e *JSONEmitter) EmitComplete(summary map[string]interface{}) {
	e.emit("complete", summary)
}

func (e *JSONEmitter) EmitError(stage string, err error) {
	e.emit("error", map[string]interface{}{
		"stage": stage,
		"error": err.Error(),
	})
}

func (e *JSONEmitter) emit(eventType string, data map[string]interface{}) {
	e.encoder.Encode(Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	})
}
