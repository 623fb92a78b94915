package fractalview

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a control script.
type scriptStep struct {
	Action string   `json:"action"`
	Keys   []string `json:"keys,omitempty"`
	Ticks  int      `json:"ticks,omitempty"`
	Label  string   `json:"label,omitempty"`

	controls Controls
}

// controlScript is the top-level JSON structure.
type controlScript struct {
	Steps []scriptStep `json:"steps"`
}

// ControlScript replays flight controls tick by tick, for demos and
// automated captures. Poll has the signature FlightSimulator.Advance expects.
//
// Actions:
//
//	hold        hold Keys for Ticks ticks
//	wait        release everything for Ticks ticks
//	pause       send one pause edge
//	screenshot  queue Label for the caller to capture; takes no tick
type ControlScript struct {
	steps     []scriptStep
	cursor    int
	remaining int
	current   Controls
	shots     []string
}

// LoadControlScript parses a JSON control script.
func LoadControlScript(jsonData []byte) (*ControlScript, error) {
	var script controlScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse control script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse control script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "hold":
			c, err := parseKeys(st.Keys)
			if err != nil {
				return nil, fmt.Errorf("parse control script: step %d: %w", i, err)
			}
			st.controls = c
		case "wait", "pause", "screenshot":
		default:
			return nil, fmt.Errorf("parse control script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ControlScript{steps: script.Steps}, nil
}

func parseKeys(keys []string) (Controls, error) {
	var c Controls
	for _, k := range keys {
		switch k {
		case "w", "up":
			c.Up = true
		case "a", "left":
			c.Left = true
		case "s", "down":
			c.Down = true
		case "d", "right":
			c.Right = true
		case "accelerate":
			c.Accelerate = true
		case "decelerate":
			c.Decelerate = true
		case "zoom_in":
			c.ZoomIn = true
		case "zoom_out":
			c.ZoomOut = true
		default:
			return Controls{}, fmt.Errorf("unknown key %q", k)
		}
	}
	return c, nil
}

// Poll returns the controls for the next tick. Once the script is exhausted
// it returns zero controls.
func (s *ControlScript) Poll() Controls {
	for s.remaining == 0 {
		if s.cursor >= len(s.steps) {
			return Controls{}
		}
		st := s.steps[s.cursor]
		s.cursor++
		switch st.Action {
		case "screenshot":
			s.shots = append(s.shots, st.Label)
		case "hold":
			s.current = st.controls
			s.remaining = max(st.Ticks, 1)
		case "wait":
			s.current = Controls{}
			s.remaining = max(st.Ticks, 1)
		case "pause":
			s.current = Controls{PauseToggle: true}
			s.remaining = 1
		}
	}
	s.remaining--
	return s.current
}

// TakeScreenshots returns and clears the labels queued by screenshot steps
// reached so far.
func (s *ControlScript) TakeScreenshots() []string {
	shots := s.shots
	s.shots = nil
	return shots
}

// Done reports whether every step has been executed.
func (s *ControlScript) Done() bool {
	return s.cursor >= len(s.steps) && s.remaining == 0
}
