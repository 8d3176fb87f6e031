package burst

import (
	"path/filepath"
	"strings"
)

// Frame is one member of a burst, resolved to its source file.
type Frame struct {
	Name string
	Path string
}

// Burst is an ordered run of frames shot with identical settings and within
// the gap threshold of one another, ascending by capture time.
type Burst struct {
	Frames []Frame
}

// Len returns the number of frames in the burst.
func (b Burst) Len() int { return len(b.Frames) }

// Paths returns the frame file paths in burst order.
func (b Burst) Paths() []string {
	paths := make([]string, len(b.Frames))
	for i, frame := range b.Frames {
		paths[i] = frame.Path
	}
	return paths
}

// Name derives the burst's display and output name from its first and last
// frame stems, e.g. "IMG_0012-IMG_0015".
func (b Burst) Name() string {
	if len(b.Frames) == 0 {
		return ""
	}
	return b.Frames[0].Name + "-" + b.Frames[len(b.Frames)-1].Name
}

// FrameFromPath builds a Frame for the given source path, deriving the name
// from the file stem.
func FrameFromPath(path string) Frame {
	base := filepath.Base(path)
	return Frame{
		Name: strings.TrimSuffix(base, filepath.Ext(base)),
		Path: path,
	}
}
