package ffmpeg

// VideoInfo contains metadata about a video file. Duration is in seconds.
type VideoInfo struct {
	FilePath   string
	Duration   float64
	Width      int
	Height     int
	FPS        float64
	VideoCodec string
}

// Progress represents ffmpeg progress data
type Progress struct {
	Frame   int
	FPS     float64
	Bitrate string
	Time    string
	Speed   string
}

// ProgressFunc is a callback for progress updates during ffmpeg operations.
type ProgressFunc func(*Progress)

// RunOptions configures ffmpeg execution
type RunOptions struct {
	Args            []string
	ProgressHandler ProgressFunc
	LogHandler      func(line string)
}

// Default encoding settings
const (
	DefaultCRF        = 20
	DefaultPreset     = "medium"
	DefaultVideoCodec = "libx264"
	DefaultPixFmt     = "yuv420p"
)

// FrameOptions configures single-frame extraction at a source timestamp.
type FrameOptions struct {
	Input     string
	Timestamp float64 // seconds into the source
	Output    string
	Filter    string // optional -vf chain, usually a scale or scale+pad
}

// SequenceOptions configures encoding a numbered image sequence into a video.
type SequenceOptions struct {
	Pattern      string // image2 pattern, e.g. scratch/frame_%06d.png
	Output       string
	FPS          float64
	CRF          int
	MaxRateKbps  int // bitrate ceiling; 0 disables the cap
	Preset       string
	PixelFormat  string
	FastStart    bool
	ProgressFunc ProgressFunc
}
