// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"github.com/reefstack/podstore/digest"
)

// GPUVendor identifies a GPU manufacturer.
type GPUVendor string

const (
	GPUVendorNVIDIA GPUVendor = "nvidia"
	GPUVendorAMD    GPUVendor = "amd"
)

// GPUModel names a specific GPU card.
type GPUModel struct {
	Vendor GPUVendor `yaml:"vendor"`
	Name   string    `yaml:"name"`
}

// GPURequirement describes the GPU a pod needs to run.
type GPURequirement struct {
	Model GPUModel `yaml:"model"`
	// RecommendedMemory is the manufacturer recommended memory in bytes.
	RecommendedMemory uint64 `yaml:"recommended_memory"`
	// Count is the number of cards required.
	Count uint16 `yaml:"count"`
}

// StreamInfo maps a named file stream to a path and a match pattern
// describing the file(s) that carry the stream's data.
type StreamInfo struct {
	Path         string `yaml:"path"`
	MatchPattern string `yaml:"match_pattern"`
}

// Pod is a reusable, containerized computational unit. Its hash is a
// pure function of every field except Annotation and Hash themselves.
type Pod struct {
	// Annotation is metadata that doesn't affect reproducibility.
	Annotation *Annotation `yaml:"-"`
	// Hash is the record's content-derived identity.
	Hash string `yaml:"-"`

	SourceCommitURL string                `yaml:"source_commit_url"`
	Image           string                `yaml:"image"`
	Command         string                `yaml:"command"`
	InputStreamMap  map[string]StreamInfo `yaml:"input_stream_map"`
	OutputDir       string                `yaml:"output_dir"`
	OutputStreamMap map[string]StreamInfo `yaml:"output_stream_map"`
	// RecommendedCPUs is a fractional core count (0.25 = 250 millicores).
	RecommendedCPUs   float64         `yaml:"recommended_cpus"`
	RecommendedMemory uint64          `yaml:"recommended_memory"`
	RequiredGPU       *GPURequirement `yaml:"required_gpu"`
}

// PodConfig carries the inputs to NewPod.
type PodConfig struct {
	Annotation        *Annotation
	SourceCommitURL   string
	Image             string
	Command           string
	InputStreamMap    map[string]StreamInfo
	OutputDir         string
	OutputStreamMap   map[string]StreamInfo
	RecommendedCPUs   float64
	RecommendedMemory uint64
	RequiredGPU       *GPURequirement
}

// NewPod constructs a Pod and computes its hash from the canonical
// encoding. The hash is never user-supplied.
func NewPod(cfg PodConfig) (*Pod, error) {
	if cfg.Annotation != nil {
		if err := cfg.Annotation.Validate(); err != nil {
			return nil, err
		}
	}

	pod := &Pod{
		Annotation:        cfg.Annotation,
		SourceCommitURL:   cfg.SourceCommitURL,
		Image:             cfg.Image,
		Command:           cfg.Command,
		InputStreamMap:    cfg.InputStreamMap,
		OutputDir:         cfg.OutputDir,
		OutputStreamMap:   cfg.OutputStreamMap,
		RecommendedCPUs:   cfg.RecommendedCPUs,
		RecommendedMemory: cfg.RecommendedMemory,
		RequiredGPU:       cfg.RequiredGPU,
	}

	canonical, err := pod.Canonical()
	if err != nil {
		return nil, err
	}

	pod.Hash = digest.FromBytes(canonical)

	return pod, nil
}

// Kind returns the pod type tag.
func (p *Pod) Kind() Kind { return KindPod }

// GetHash returns the record hash.
func (p *Pod) GetHash() string { return p.Hash }

// GetAnnotation returns the record annotation, possibly nil.
func (p *Pod) GetAnnotation() *Annotation { return p.Annotation }

// Canonical returns the pod's canonical encoding.
func (p *Pod) Canonical() ([]byte, error) {
	return EncodeCanonical(KindPod, p)
}
