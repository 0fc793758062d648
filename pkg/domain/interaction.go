package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// Known content type machine names.
const (
	MachineGoToScene = "H5P.GoToScene"
	MachineAudio     = "H5P.Audio"
)

// InteractionKind is the classified capability of an interaction.
type InteractionKind string

const (
	KindGoToScene InteractionKind = "go_to_scene"
	KindAudio     InteractionKind = "audio"
	KindGeneric   InteractionKind = "generic"
	KindMalformed InteractionKind = "malformed"
)

// Interaction is a hotspot after classification.
// Target is only meaningful for KindGoToScene.
type Interaction struct {
	Index    int             `json:"index"`
	Kind     InteractionKind `json:"kind"`
	Target   SceneID         `json:"target,omitempty"`
	Library  Library         `json:"library"`
	Label    string          `json:"label,omitempty"`
	Title    string          `json:"title,omitempty"`
	Position string          `json:"position,omitempty"`
	Params   map[string]any  `json:"params,omitempty"`
}

// Library is a parsed content type identifier.
type Library struct {
	MachineName  string `json:"machine_name"`
	MajorVersion int    `json:"major_version"`
	MinorVersion int    `json:"minor_version"`
}

func (l Library) String() string {
	if l.MachineName == "" {
		return ""
	}
	return fmt.Sprintf("%s %d.%d", l.MachineName, l.MajorVersion, l.MinorVersion)
}

var libraryPattern = regexp.MustCompile(`^(.+)\s(\d+)\.(\d+)$`)

// ParseLibrary splits "H5P.GoToScene 1.0" into its machine name and version.
func ParseLibrary(s string) (Library, error) {
	m := libraryPattern.FindStringSubmatch(s)
	if m == nil {
		return Library{}, fmt.Errorf("%w: library %q", ErrMalformedAction, s)
	}
	major, err := strconv.Atoi(m[2])
	if err != nil {
		return Library{}, fmt.Errorf("%w: major version %q", ErrMalformedAction, m[2])
	}
	minor, err := strconv.Atoi(m[3])
	if err != nil {
		return Library{}, fmt.Errorf("%w: minor version %q", ErrMalformedAction, m[3])
	}
	return Library{MachineName: m[1], MajorVersion: major, MinorVersion: minor}, nil
}
