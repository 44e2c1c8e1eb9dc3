package replay

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/game"
)

// jsonReplay is the portable replay file format. Field names are the
// compatibility surface: other tools reading exported replays key on
// them, so they never follow internal renames.
type jsonReplay struct {
	Version        int         `json:"version"`
	StartTimestamp string      `json:"startTimestamp"`
	BoardWidth     int         `json:"boardWidth"`
	BoardHeight    int         `json:"boardHeight"`
	FirstShape     string      `json:"firstShape"`
	SecondShape    string      `json:"secondShape"`
	FinalScore     int         `json:"finalScore"`
	FinalLevel     int         `json:"finalLevel"`
	FinalLines     int         `json:"finalLines"`
	DurationMs     int64       `json:"durationMs"`
	Events         []jsonEvent `json:"events"`
}

// jsonEvent is one log entry. Input is set for PlayerInput events,
// Shape for PieceSpawn events.
type jsonEvent struct {
	Kind  string `json:"kind"`
	Input string `json:"input,omitempty"`
	Shape string `json:"shape,omitempty"`
	Frame uint64 `json:"frame"`
}

// EncodeJSON serializes a replay into the portable JSON format.
func EncodeJSON(data Data) ([]byte, error) {
	m := data.Meta
	out := jsonReplay{
		Version:        m.Version,
		StartTimestamp: m.StartedAt.UTC().Format(time.RFC3339Nano),
		BoardWidth:     m.BoardWidth,
		BoardHeight:    m.BoardHeight,
		FirstShape:     m.FirstShape.String(),
		SecondShape:    m.SecondShape.String(),
		FinalScore:     m.FinalScore,
		FinalLevel:     m.FinalLevel,
		FinalLines:     m.FinalLines,
		DurationMs:     m.Duration.Milliseconds(),
		Events:         make([]jsonEvent, len(data.Events)),
	}

	for i, ev := range data.Events {
		je := jsonEvent{Kind: ev.Kind.String(), Frame: ev.Frame}
		switch ev.Kind {
		case KindPlayerInput:
			je.Input = ev.Input.String()
		case KindPieceSpawn:
			je.Shape = ev.Shape.String()
		default:
			return nil, fmt.Errorf("replay: unknown event kind %d at index %d", ev.Kind, i)
		}
		out.Events[i] = je
	}

	return json.MarshalIndent(out, "", "  ")
}

// DecodeJSON parses the portable JSON format back into a replay.
// Unknown event kinds and unparseable command or shape names are
// decode failures.
func DecodeJSON(raw []byte) (Data, error) {
	var in jsonReplay
	if err := json.Unmarshal(raw, &in); err != nil {
		return Data{}, fmt.Errorf("replay: invalid JSON: %w", err)
	}

	startedAt, err := time.Parse(time.RFC3339Nano, in.StartTimestamp)
	if err != nil {
		return Data{}, fmt.Errorf("replay: invalid start timestamp: %w", err)
	}
	first, err := game.ParseShape(in.FirstShape)
	if err != nil {
		return Data{}, fmt.Errorf("replay: first shape: %w", err)
	}
	second, err := game.ParseShape(in.SecondShape)
	if err != nil {
		return Data{}, fmt.Errorf("replay: second shape: %w", err)
	}

	data := Data{
		Meta: Metadata{
			Version:     in.Version,
			StartedAt:   startedAt,
			BoardWidth:  in.BoardWidth,
			BoardHeight: in.BoardHeight,
			FirstShape:  first,
			SecondShape: second,
			FinalScore:  in.FinalScore,
			FinalLevel:  in.FinalLevel,
			FinalLines:  in.FinalLines,
			Duration:    time.Duration(in.DurationMs) * time.Millisecond,
		},
	}

	for i, je := range in.Events {
		ev := Event{Frame: je.Frame}
		switch je.Kind {
		case "PlayerInput":
			ev.Kind = KindPlayerInput
			cmd, err := core.ParseCommand(je.Input)
			if err != nil {
				return Data{}, fmt.Errorf("replay: event %d: %w", i, err)
			}
			ev.Input = cmd
		case "PieceSpawn":
			ev.Kind = KindPieceSpawn
			sh, err := game.ParseShape(je.Shape)
			if err != nil {
				return Data{}, fmt.Errorf("replay: event %d: %w", i, err)
			}
			ev.Shape = sh
		default:
			return Data{}, fmt.Errorf("replay: event %d: unknown kind %q", i, je.Kind)
		}
		data.Events = append(data.Events, ev)
	}

	return data, nil
}
