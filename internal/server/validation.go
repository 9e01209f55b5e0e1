package server

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	maxSpeechLength    = 280
	maxReasoningSteps  = 16
	maxReasoningLength = 280
)

var validatorOnce sync.Once

func registerValidators() {
	validatorOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = engine.RegisterValidation("speech", func(fl validator.FieldLevel) bool {
			_, err := validateSpeech(fl.Field().String())
			return err == nil
		})
	})
}

func validateSpeech(text string) (string, error) {
	trimmed := normalizeText(text)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) > maxSpeechLength {
		return "", fmt.Errorf("speech must be %d characters or fewer", maxSpeechLength)
	}
	if !isPrintableText(trimmed) {
		return "", errors.New("speech contains unsupported characters")
	}
	return trimmed, nil
}

func validateReasoning(steps []string) ([]string, error) {
	if len(steps) > maxReasoningSteps {
		return nil, fmt.Errorf("at most %d reasoning steps", maxReasoningSteps)
	}
	out := make([]string, 0, len(steps))
	for _, step := range steps {
		trimmed := normalizeText(step)
		if trimmed == "" {
			continue
		}
		if len(trimmed) > maxReasoningLength {
			return nil, fmt.Errorf("reasoning steps must be %d characters or fewer", maxReasoningLength)
		}
		out = append(out, trimmed)
	}
	return out, nil
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}

// isPrintableText runs on normalized input, so all whitespace has
// already collapsed to single spaces.
func isPrintableText(text string) bool {
	for _, r := range text {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
