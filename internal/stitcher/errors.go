package stitcher

import "fmt"

type StitchError struct {
	Kind    string
	Message string
}

func (e StitchError) Error() string {
	return fmt.Sprintf("stitch error (%v): %v", e.Kind, e.Message)
}
