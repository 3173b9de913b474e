package practice

import prac "github.com/abhisek/mathtutor/internal/practice"

// gradedMsg carries the result of an asynchronous grade.
type gradedMsg struct {
	Graded prac.Graded
	Err    error // persistence failure; Graded is still valid
}
