package models

// UploadedFile describes an image handed to the disease detector. Only the
// metadata is kept.
type UploadedFile struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// Diagnosis is the result of a leaf image analysis.
type Diagnosis struct {
	Disease     string   `json:"disease"`
	Confidence  int      `json:"confidence"`
	Severity    string   `json:"severity"`
	Tone        string   `json:"tone"`
	Description string   `json:"description"`
	Treatments  []string `json:"treatments"`
	Prevention  []string `json:"prevention"`
}
