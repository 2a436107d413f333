//go:build integration || unit || test

package controllerdoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import "errors"

// StubPrompter answers prompts from queues and records the labels it was asked.
type StubPrompter struct {
	Answers    []string
	Selections []string
	Err        error

	Labels   []string
	Defaults []string
	Options  [][]string
}

func (s *StubPrompter) Text(label, defaultValue string, validate func(string) error) (string, error) {
	s.Labels = append(s.Labels, label)
	s.Defaults = append(s.Defaults, defaultValue)
	if s.Err != nil {
		return "", s.Err
	}
	if len(s.Answers) == 0 {
		return "", errors.New("no answer queued for " + label)
	}

	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	if answer == "" {
		answer = defaultValue
	}
	if validate != nil {
		if err := validate(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

func (s *StubPrompter) Select(label string, items []string) (string, error) {
	s.Labels = append(s.Labels, label)
	s.Options = append(s.Options, items)
	if s.Err != nil {
		return "", s.Err
	}
	if len(s.Selections) == 0 {
		return "", errors.New("no selection queued for " + label)
	}

	selection := s.Selections[0]
	s.Selections = s.Selections[1:]
	return selection, nil
}

// SpyProgress counts how often the indicator was started and stopped.
type SpyProgress struct {
	Starts int
	Stops  int
}

func (s *SpyProgress) Start() { s.Starts++ }
func (s *SpyProgress) Stop()  { s.Stops++ }
