package api

//Source identifies which path produced a reply
type Source string

//Sources
const (
	SourceLive       Source = "live"
	SourceLocalSmart Source = "local_smart"
	SourceLocalLite  Source = "local_lite"
)

//Meta describes how a Result was produced.
//FallbackReason is empty unless the live service was attempted and could not be used.
type Meta struct {
	Source         Source `json:"source"`
	Streamed       bool   `json:"streamed"`
	QualityMode    bool   `json:"qualityMode"`
	FallbackReason string `json:"fallbackReason"`
}

//Result is the single output of a transport invocation
type Result struct {
	Reply string `json:"reply"`
	Meta  Meta   `json:"meta"`
}
