// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"errors"
	"fmt"

	"github.com/reefstack/podstore/digest"
	"gopkg.in/yaml.v3"
)

// RetryPolicyKind discriminates the retry policy variants.
type RetryPolicyKind string

const (
	// RetryNone disables retries.
	RetryNone RetryPolicyKind = "no_retry"
	// RetryTimeWindow allows up to MaxRetries attempts within
	// WindowSeconds of the first failure.
	RetryTimeWindow RetryPolicyKind = "retry_time_window"
)

// RetryPolicy describes how a job's *executor* may retry it. It is
// data only; store operations themselves are never retried.
type RetryPolicy struct {
	Kind          RetryPolicyKind
	MaxRetries    int
	WindowSeconds int64
}

// NoRetry returns the policy that disables retries.
func NoRetry() RetryPolicy {
	return RetryPolicy{Kind: RetryNone}
}

// RetryWithinWindow returns a time-window retry policy.
func RetryWithinWindow(maxRetries int, windowSeconds int64) RetryPolicy {
	return RetryPolicy{Kind: RetryTimeWindow, MaxRetries: maxRetries, WindowSeconds: windowSeconds}
}

type retryWindowSpec struct {
	MaxRetries    int   `yaml:"max_retries"`
	WindowSeconds int64 `yaml:"window_seconds"`
}

// MarshalYAML encodes the policy as the scalar `no_retry` or as a
// single-key mapping `retry_time_window: {max_retries, window_seconds}`.
func (p RetryPolicy) MarshalYAML() (any, error) {
	switch p.Kind {
	case RetryTimeWindow:
		return struct {
			Window retryWindowSpec `yaml:"retry_time_window"`
		}{Window: retryWindowSpec{MaxRetries: p.MaxRetries, WindowSeconds: p.WindowSeconds}}, nil
	case RetryNone, "":
		return string(RetryNone), nil
	default:
		return nil, fmt.Errorf("%w: unknown retry policy %q", ErrSerialize, p.Kind)
	}
}

// UnmarshalYAML accepts both encodings produced by MarshalYAML.
func (p *RetryPolicy) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value != string(RetryNone) {
			return fmt.Errorf("%w: unknown retry policy %q", ErrDecode, node.Value)
		}

		*p = NoRetry()

		return nil
	case yaml.MappingNode:
		var wrapper struct {
			Window *retryWindowSpec `yaml:"retry_time_window"`
		}

		if err := node.Decode(&wrapper); err != nil {
			return fmt.Errorf("%w: retry policy: %v", ErrDecode, err)
		}

		if wrapper.Window == nil {
			return fmt.Errorf("%w: retry policy mapping missing %q", ErrDecode, RetryTimeWindow)
		}

		*p = RetryWithinWindow(wrapper.Window.MaxRetries, wrapper.Window.WindowSeconds)

		return nil
	default:
		return fmt.Errorf("%w: retry policy must be a scalar or mapping", ErrDecode)
	}
}

// InputKind discriminates file and directory inputs.
type InputKind string

const (
	InputFile      InputKind = "file"
	InputDirectory InputKind = "directory"
)

// InputData references a job input inside a file store, together with
// the content checksum frozen when the input was registered. The
// stored checksum is a fingerprint captured at registration time; it
// is not re-verified on load.
type InputData struct {
	Kind InputKind `yaml:"kind"`
	Path string    `yaml:"path"`
	// StoreName selects a named file store; empty means the job's own.
	StoreName string `yaml:"store_name"`
	Checksum  string `yaml:"checksum"`
}

// OutputData names where a job's outputs land inside a file store.
type OutputData struct {
	Path      string `yaml:"path"`
	StoreName string `yaml:"store_name"`
}

// PodJob is one execution of a Pod with concrete inputs, outputs and
// resource limits. The embedded Pod is referenced by hash in the
// canonical encoding; the struct field is a convenience populated on
// load and is never serialized.
type PodJob struct {
	Annotation *Annotation `yaml:"-"`
	Hash       string      `yaml:"-"`
	Pod        *Pod        `yaml:"-"`

	PodHash            string               `yaml:"pod_hash"`
	InputStoreMapping  map[string]InputData `yaml:"input_store_mapping"`
	OutputStoreMapping OutputData           `yaml:"output_store_mapping"`
	CPULimit           float64              `yaml:"cpu_limit"`
	MemLimit           uint64               `yaml:"mem_limit"`
	RetryPolicy        RetryPolicy          `yaml:"retry_policy"`
}

// PodJobConfig carries the inputs to NewPodJob.
type PodJobConfig struct {
	Annotation         *Annotation
	Pod                *Pod
	InputStoreMapping  map[string]InputData
	OutputStoreMapping OutputData
	CPULimit           float64
	MemLimit           uint64
	RetryPolicy        RetryPolicy
}

// NewPodJob constructs a PodJob bound to cfg.Pod and computes its hash.
func NewPodJob(cfg PodJobConfig) (*PodJob, error) {
	if cfg.Pod == nil {
		return nil, errors.New("pod job requires a pod")
	}

	if cfg.Pod.Hash == "" {
		return nil, errors.New("pod job requires a pod with a computed hash")
	}

	if cfg.Annotation != nil {
		if err := cfg.Annotation.Validate(); err != nil {
			return nil, err
		}
	}

	if cfg.RetryPolicy.Kind == "" {
		cfg.RetryPolicy = NoRetry()
	}

	job := &PodJob{
		Annotation:         cfg.Annotation,
		Pod:                cfg.Pod,
		PodHash:            cfg.Pod.Hash,
		InputStoreMapping:  cfg.InputStoreMapping,
		OutputStoreMapping: cfg.OutputStoreMapping,
		CPULimit:           cfg.CPULimit,
		MemLimit:           cfg.MemLimit,
		RetryPolicy:        cfg.RetryPolicy,
	}

	canonical, err := job.Canonical()
	if err != nil {
		return nil, err
	}

	job.Hash = digest.FromBytes(canonical)

	return job, nil
}

// Kind returns the pod job type tag.
func (j *PodJob) Kind() Kind { return KindPodJob }

// GetHash returns the record hash.
func (j *PodJob) GetHash() string { return j.Hash }

// GetAnnotation returns the record annotation, possibly nil.
func (j *PodJob) GetAnnotation() *Annotation { return j.Annotation }

// Canonical returns the job's canonical encoding.
func (j *PodJob) Canonical() ([]byte, error) {
	return EncodeCanonical(KindPodJob, j)
}
