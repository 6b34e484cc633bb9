package fcp

import "fmt"

// Element ids share one numeric space and source files another. Title cards
// own their file, so their file and master clip ids carry a "title" infix to
// stay clear of source file numbers.

func clipItemID(id int) string {
	return fmt.Sprintf("clipitem-%d", id)
}

// audioClipItemID names channel 1 after the video clip and suffixes the rest.
func audioClipItemID(id, track int) string {
	if track <= 1 {
		return fmt.Sprintf("audio-clipitem-%d", id)
	}
	return fmt.Sprintf("audio-clipitem-%d-%d", id, track)
}

func fileID(id int) string {
	return fmt.Sprintf("file-%d", id)
}

func masterClipID(id int) string {
	return fmt.Sprintf("masterclip-%d", id)
}

func titleFileID(id int) string {
	return fmt.Sprintf("file-title-%d", id)
}

func titleMasterClipID(id int) string {
	return fmt.Sprintf("masterclip-title-%d", id)
}
