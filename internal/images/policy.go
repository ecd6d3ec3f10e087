// Package images normalizes uploaded profile photos into durable URLs.
package images

import "strings"

// Fixed normalization policy. Callers only choose whether to remove the background.
const (
	Width      = 300
	Height     = 300
	FocusFace  = "face"
	Zoom       = "0.75"
	Folder     = "user-resumes"
	FileName   = "resume.png"
	bgRemoveOp = "e-bgremove"
)

// Directive returns the transformation string applied to every upload,
// e.g. "w-300,h-300,fo-face,z-0.75,e-bgremove".
func Directive(removeBackground bool) string {
	parts := []string{"w-300", "h-300", "fo-" + FocusFace, "z-" + Zoom}
	if removeBackground {
		parts = append(parts, bgRemoveOp)
	}
	return strings.Join(parts, ",")
}
