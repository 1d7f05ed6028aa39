package viewstate

import "farmconnect/internal/models"

const (
	progressStep    = 10
	progressCeiling = 90
)

// Detection is the state of the disease detection screen.
type Detection struct {
	File      *models.UploadedFile
	Analyzing bool
	Progress  int
	Result    *models.Diagnosis
}

// DetectionEvent is an input the detection screen reacts to.
type DetectionEvent interface{ detectionEvent() }

// FileSelected picks a new image and clears any previous result.
type FileSelected struct{ File models.UploadedFile }

// AnalysisStarted begins analysing the selected file.
type AnalysisStarted struct{}

// ProgressTicked advances the progress bar while analysing.
type ProgressTicked struct{}

// AnalysisCompleted stores the diagnosis.
type AnalysisCompleted struct{ Result models.Diagnosis }

// AnalysisCancelled aborts a running analysis. A finished analysis keeps its
// result.
type AnalysisCancelled struct{}

func (FileSelected) detectionEvent()      {}
func (AnalysisStarted) detectionEvent()   {}
func (ProgressTicked) detectionEvent()    {}
func (AnalysisCompleted) detectionEvent() {}
func (AnalysisCancelled) detectionEvent() {}

// ReduceDetection applies e to s.
func ReduceDetection(s Detection, e DetectionEvent) Detection {
	switch ev := e.(type) {
	case FileSelected:
		f := ev.File
		s.File = &f
		s.Result = nil
	case AnalysisStarted:
		if s.File == nil || s.Analyzing {
			return s
		}
		s.Analyzing = true
		s.Progress = 0
		s.Result = nil
	case ProgressTicked:
		if !s.Analyzing {
			return s
		}
		s.Progress = min(s.Progress+progressStep, progressCeiling)
	case AnalysisCompleted:
		if !s.Analyzing {
			return s
		}
		r := ev.Result
		s.Analyzing = false
		s.Progress = 100
		s.Result = &r
	case AnalysisCancelled:
		if !s.Analyzing {
			return s
		}
		s.Analyzing = false
		s.Progress = 0
	}
	return s
}
