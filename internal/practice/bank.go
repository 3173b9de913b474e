// Package practice drives a practice run: it picks questions from a bank at
// the learner's tier, grades answers and records progression.
package practice

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// Question is one entry of a question bank file.
type Question struct {
	Question  string `json:"question" validate:"required"`
	Answer    string `json:"answer" validate:"required"`
	Subtopic  string `json:"subtopic,omitempty"`
	Topic     string `json:"topic,omitempty"`
	Operation string `json:"operation,omitempty"`
	Tier      int    `json:"tier" validate:"min=1,max=7"`
}

// Bank is an ordered set of questions.
type Bank []Question

type bankFile struct {
	Questions Bank `validate:"required,min=1,dive"`
}

// ParseBank decodes and validates a JSON array of questions.
func ParseBank(data []byte) (Bank, error) {
	var f bankFile
	if err := json.Unmarshal(data, &f.Questions); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if err := validator.New().Struct(&f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return nil, fmt.Errorf("invalid question bank: %s failed %q", fe.Namespace(), fe.Tag())
		}
		return nil, fmt.Errorf("invalid question bank: %w", err)
	}
	return f.Questions, nil
}

// LoadBank reads a question bank file.
func LoadBank(path string) (Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	return ParseBank(data)
}

// ForOperation returns the questions tagged with op. Untagged questions
// belong to every operation.
func (b Bank) ForOperation(op string) Bank {
	var out Bank
	for _, q := range b {
		if q.Operation == "" || q.Operation == op {
			out = append(out, q)
		}
	}
	return out
}
