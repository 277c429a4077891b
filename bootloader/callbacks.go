package bootloader

import "time"

// Operation phases reported through Progress.
const (
	PhaseReading   = "reading"
	PhaseWriting   = "writing"
	PhaseErasing   = "erasing"
	PhaseVerifying = "verifying"
	PhaseComplete  = "complete"
)

// Progress contains information about the transfer progress.
// Passed to ProgressCallback once per page and once on completion.
type Progress struct {
	// Phase describes the current operation phase:
	//   "reading"   - Reading pages from the device
	//   "writing"   - Writing pages to the device
	//   "erasing"   - Writing erased pages to the device
	//   "verifying" - Reading pages back after a write
	//   "complete"  - Operation completed successfully
	Phase string

	// CurrentPage is the number of pages transferred so far
	CurrentPage int

	// TotalPages is the total number of pages in the window
	TotalPages int

	// Address is the address of the page just transferred
	Address uint32

	// Percentage is the completion percentage (0.0 to 100.0)
	Percentage float64

	// BytesTransferred is the total number of memory bytes moved so far
	BytesTransferred int

	// ElapsedTime is the time elapsed since the operation started
	ElapsedTime time.Duration
}

// ProgressCallback is called after every page to report progress.
// Implementations should return quickly, the next exchange waits for it.
//
// Example:
//
//	prog := bootloader.New(port,
//	    bootloader.WithProgressCallback(func(p bootloader.Progress) {
//	        fmt.Printf("[%s] %.1f%% - Page %d/%d\n",
//	            p.Phase, p.Percentage, p.CurrentPage, p.TotalPages)
//	    }),
//	)
type ProgressCallback func(Progress)
