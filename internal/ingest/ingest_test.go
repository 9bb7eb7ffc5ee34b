package ingest

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Faultbox/printsim/internal/config"
	"github.com/Faultbox/printsim/internal/robot"
	"github.com/Faultbox/printsim/internal/simlog"
	"github.com/Faultbox/printsim/pkg/gradient"
)

func machine(n int, x, y, z, r float64) simlog.Machine {
	return simlog.Machine{N: n, V: []float64{x, y, z}, R: r}
}

// twoActorLog has two actors and three frames, each printing one 2-point polyline.
func twoActorLog() *simlog.Document {
	doc := &simlog.Document{
		Init: &simlog.Init{Machines: []simlog.Machine{
			machine(0, 0, 0, 0, 0),
			machine(1, 100, 0, 0, 0),
		}},
	}
	for i := 1; i <= 3; i++ {
		z := float64(i * 10)
		doc.Frames = append(doc.Frames, simlog.Frame{
			Machines: []simlog.Machine{
				machine(0, 0, 0, z, 0.1),
				machine(1, 100, 0, z, 0.2),
			},
			Printeds: [][][]float64{{{0, 0, z}, {10, 0, z}}},
		})
	}
	return doc
}

func TestIngestTwoActors(t *testing.T) {
	res, err := Ingest(twoActorLog(), DefaultOptions())
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	if res.FrameCount != 3 {
		t.Errorf("FrameCount = %d, want 3", res.FrameCount)
	}
	if res.Actors() != 2 {
		t.Errorf("Actors = %d, want 2", res.Actors())
	}
	if res.Paths.Len() != 4 {
		t.Errorf("path set length = %d, want 4", res.Paths.Len())
	}
	for n, track := range res.Tracks {
		if track.Len() != 4 {
			t.Errorf("actor %d has %d keyframes, want 4", n, track.Len())
		}
	}
	if res.ModelHeight != 3 {
		t.Errorf("ModelHeight = %v, want 3", res.ModelHeight)
	}
}

func TestIngestKeyframeTransform(t *testing.T) {
	res, err := Ingest(twoActorLog(), DefaultOptions())
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	want := []robot.Keyframe{
		{X: -10, Y: 0, Z: 0, Rotation: 0},
		{X: -10, Y: 1, Z: 0, Rotation: 0.2},
		{X: -10, Y: 2, Z: 0, Rotation: 0.2},
		{X: -10, Y: 3, Z: 0, Rotation: 0.2},
	}
	if diff := cmp.Diff(want, res.Tracks[1].Keyframes()); diff != "" {
		t.Errorf("actor 1 keyframes mismatch (-want +got):\n%s", diff)
	}
}

func TestIngestCalibration(t *testing.T) {
	opts := Options{Start: 0x000000, End: 0xffffff, Headroom: 2, Clamp: true}
	res, err := Ingest(twoActorLog(), opts)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	want := gradient.Calibration{Min: 0, Max: 6, Start: 0x000000, End: 0xffffff, Clamp: true}
	if res.Calibration != want {
		t.Errorf("Calibration = %+v, want %+v", res.Calibration, want)
	}

	// Frame 3 prints at height 3, half of the value range.
	line := res.Paths.At(3).Polylines()[0]
	if line.Color != 0x7f7f7f {
		t.Errorf("frame 3 color = %#06x, want 0x7f7f7f", line.Color)
	}
}

func TestIngestModelHeightIgnoresInit(t *testing.T) {
	doc := &simlog.Document{
		Init:   &simlog.Init{Machines: []simlog.Machine{machine(0, 0, 0, 500, 0)}},
		Frames: []simlog.Frame{{Machines: []simlog.Machine{machine(0, 0, 0, -20, 0)}}},
	}
	res, err := Ingest(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if res.ModelHeight != 0 {
		t.Errorf("ModelHeight = %v, want 0", res.ModelHeight)
	}
}

func TestIngestErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  *simlog.Document
		want error
	}{
		{
			name: "nil document",
			doc:  nil,
			want: ErrMissingDocument,
		},
		{
			name: "missing init",
			doc:  &simlog.Document{Frames: []simlog.Frame{}},
			want: ErrMissingInitOrFrames,
		},
		{
			name: "missing init machines",
			doc:  &simlog.Document{Init: &simlog.Init{}, Frames: []simlog.Frame{}},
			want: ErrMissingInitOrFrames,
		},
		{
			name: "missing frames",
			doc:  &simlog.Document{Init: &simlog.Init{Machines: []simlog.Machine{machine(0, 0, 0, 0, 0)}}},
			want: ErrMissingInitOrFrames,
		},
		{
			name: "init index out of range",
			doc: &simlog.Document{
				Init:   &simlog.Init{Machines: []simlog.Machine{machine(0, 0, 0, 0, 0), machine(2, 0, 0, 0, 0)}},
				Frames: []simlog.Frame{},
			},
			want: ErrActorIndexOutOfRange,
		},
		{
			name: "frame index out of range",
			doc: &simlog.Document{
				Init:   &simlog.Init{Machines: []simlog.Machine{machine(0, 0, 0, 0, 0)}},
				Frames: []simlog.Frame{{Machines: []simlog.Machine{machine(1, 0, 0, 0, 0)}}},
			},
			want: ErrActorIndexOutOfRange,
		},
		{
			name: "negative index",
			doc: &simlog.Document{
				Init:   &simlog.Init{Machines: []simlog.Machine{machine(-1, 0, 0, 0, 0)}},
				Frames: []simlog.Frame{},
			},
			want: ErrActorIndexOutOfRange,
		},
		{
			name: "short machine vector",
			doc: &simlog.Document{
				Init:   &simlog.Init{Machines: []simlog.Machine{{N: 0, V: []float64{1, 2}}}},
				Frames: []simlog.Frame{},
			},
			want: ErrMalformedVector,
		},
		{
			name: "short printed point",
			doc: &simlog.Document{
				Init: &simlog.Init{Machines: []simlog.Machine{machine(0, 0, 0, 0, 0)}},
				Frames: []simlog.Frame{{
					Machines: []simlog.Machine{machine(0, 0, 0, 0, 0)},
					Printeds: [][][]float64{{{0, 0, 0}, {1}}},
				}},
			},
			want: ErrMalformedVector,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Ingest(tt.doc, DefaultOptions())
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if res != nil {
				t.Error("failed ingest should not return a result")
			}
		})
	}
}

func TestIngestEmptyFrames(t *testing.T) {
	doc := &simlog.Document{
		Init:   &simlog.Init{Machines: []simlog.Machine{machine(0, 0, 0, 0, 0)}},
		Frames: []simlog.Frame{},
	}
	res, err := Ingest(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if res.FrameCount != 0 || res.Paths.Len() != 1 || res.Tracks[0].Len() != 1 {
		t.Errorf("unexpected result: frames=%d groups=%d keys=%d",
			res.FrameCount, res.Paths.Len(), res.Tracks[0].Len())
	}
}

func TestIngestDecodedDocument(t *testing.T) {
	doc, err := simlog.Unmarshal([]byte(`{
		"init": {"machines": [{"n": 0, "v": [0, 0, 0], "r": 0}, {"n": 1, "v": [10, 0, 0], "r": 0}]},
		"frames": [
			{"machines": [{"n": 0, "v": [0, 0, 5], "r": 0}, {"n": 1, "v": [10, 0, 5], "r": 0}],
			 "printeds": [[[0, 0, 5], [5, 0, 5]]]}
		]
	}`))
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	res, err := Ingest(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if res.Actors() != 2 || res.FrameCount != 1 || res.Paths.Polylines() != 1 {
		t.Errorf("unexpected result: actors=%d frames=%d polylines=%d",
			res.Actors(), res.FrameCount, res.Paths.Polylines())
	}
}

func TestOptionsFromConfig(t *testing.T) {
	got := OptionsFromConfig(config.Default().Colors)
	if diff := cmp.Diff(DefaultOptions(), got); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}
