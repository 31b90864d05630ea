package ui

import "ffconvert/ffmpeg"

const successMessage = "Conversion completed."

// maxNameLen is the longest file name shown without truncation
const maxNameLen = 31

// failureMessage returns the text shown to the user for a failed conversion
func failureMessage(reason ffmpeg.Reason) string {
	switch reason {
	case ffmpeg.ToolMissing:
		return "Please set the path to ffmpeg first. Go to Edit > Set FFmpeg Tool to set it up."
	case ffmpeg.InputMissing:
		return "Please select a video file first."
	case ffmpeg.FormatMissing:
		return "Please select an output format."
	case ffmpeg.OutputAlreadyExists:
		return "Output already exists."
	case ffmpeg.ProcessFailed:
		return "Conversion failed. FFmpeg could not be run."
	case ffmpeg.OutputNotProduced:
		return "Conversion failed. Output file not found."
	default:
		return "Conversion failed."
	}
}

// truncateName shortens long file names for the label next to the picker
func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) <= maxNameLen {
		return name
	}
	return string(runes[:maxNameLen-3]) + "..."
}
