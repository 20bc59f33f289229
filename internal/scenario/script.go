// Package scenario replays scripted portal sessions. A script mounts
// targets, attaches and detaches injectors and asserts on what each target
// renders after every step.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidScript wraps every static problem found by Validate.
	ErrInvalidScript = errors.New("scenario: invalid script")
	// ErrExpectationFailed is returned by Run when any expect step failed.
	ErrExpectationFailed = errors.New("scenario: expectation failed")
)

// Op names a script step.
type Op string

const (
	OpMountTarget   Op = "mount-target"
	OpUnmountTarget Op = "unmount-target"
	OpAttach        Op = "attach"
	OpDetach        Op = "detach"
	OpUpdate        Op = "update"
	OpExpect        Op = "expect"
)

// Script is a parsed scenario file.
type Script struct {
	Name string `yaml:"name"`
	// Channels restricts the portal to these names. Empty means open.
	Channels []string `yaml:"channels"`
	Steps    []Step   `yaml:"steps"`
}

// Step is one scripted operation.
type Step struct {
	Op Op `yaml:"op"`

	// ID names the target (mount/unmount) or injector (attach/detach/update).
	ID      string  `yaml:"id,omitempty"`
	Channel string  `yaml:"channel,omitempty"`
	Content *string `yaml:"content,omitempty"`

	// Target options, read by mount-target when the target is first created.
	Fallback string `yaml:"fallback,omitempty"`
	Wrap     int    `yaml:"wrap,omitempty"`

	// Expect assertions.
	Target   string  `yaml:"target,omitempty"`
	Contains string  `yaml:"contains,omitempty"`
	Equals   *string `yaml:"equals,omitempty"`
	Empty    *bool   `yaml:"empty,omitempty"`
	Absent   *bool   `yaml:"absent,omitempty"`
}

// Load reads and validates the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a script. Unknown keys are rejected.
func Parse(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the script statically: every step is well formed, ids are
// declared before use and channel names fit the portal.
func (s *Script) Validate() error {
	var errs []error
	fail := func(i int, format string, args ...any) {
		errs = append(errs, fmt.Errorf("step %d: "+format, append([]any{i + 1}, args...)...))
	}

	if len(s.Steps) == 0 {
		errs = append(errs, errors.New("no steps"))
	}

	seen := map[string]bool{}
	for i, name := range s.Channels {
		if name == "" {
			errs = append(errs, fmt.Errorf("channels[%d]: name is required", i))
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("channels[%d]: duplicate channel %q", i, name))
		}
		seen[name] = true
	}

	checkChannel := func(i int, channel string) {
		if len(s.Channels) == 0 {
			return
		}
		if channel == "" {
			fail(i, "channel is required when channels are listed")
			return
		}
		if !slices.Contains(s.Channels, channel) {
			fail(i, "unknown channel %q", channel)
		}
	}

	targets := map[string]bool{}
	injectors := map[string]bool{}

	for i, step := range s.Steps {
		switch step.Op {
		case OpMountTarget:
			if step.ID == "" {
				fail(i, "%s needs an id", step.Op)
				continue
			}
			if injectors[step.ID] {
				fail(i, "id %q already names an injector", step.ID)
			}
			if !targets[step.ID] {
				checkChannel(i, step.Channel)
			}
			if step.Wrap < 0 {
				fail(i, "wrap must not be negative")
			}
			targets[step.ID] = true

		case OpUnmountTarget:
			if step.ID == "" {
				fail(i, "%s needs an id", step.Op)
			} else if !targets[step.ID] {
				fail(i, "target %q was never mounted", step.ID)
			}

		case OpAttach:
			if step.ID == "" {
				fail(i, "%s needs an id", step.Op)
				continue
			}
			if targets[step.ID] {
				fail(i, "id %q already names a target", step.ID)
			}
			if !injectors[step.ID] || step.Channel != "" {
				checkChannel(i, step.Channel)
			}
			injectors[step.ID] = true

		case OpDetach:
			if step.ID == "" {
				fail(i, "%s needs an id", step.Op)
			} else if !injectors[step.ID] {
				fail(i, "injector %q was never attached", step.ID)
			}

		case OpUpdate:
			if step.ID == "" {
				fail(i, "%s needs an id", step.Op)
				continue
			}
			if !injectors[step.ID] {
				fail(i, "injector %q was never attached", step.ID)
			}
			if step.Channel == "" && step.Content == nil {
				fail(i, "update needs a channel or content")
			}
			if step.Channel != "" {
				checkChannel(i, step.Channel)
			}

		case OpExpect:
			if step.Target == "" {
				fail(i, "expect needs a target")
			} else if !targets[step.Target] {
				fail(i, "target %q was never mounted", step.Target)
			}
			if step.Contains == "" && step.Equals == nil && step.Empty == nil && step.Absent == nil {
				fail(i, "expect needs contains, equals, empty or absent")
			}

		case "":
			fail(i, "op is required")
		default:
			fail(i, "unknown op %q", step.Op)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidScript, errors.Join(errs...))
	}
	return nil
}
