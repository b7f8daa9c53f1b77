// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared fixtures for store backend tests:
// an in-memory store and record builders with stable, known hashes.
package testutil

import (
	"testing"

	"github.com/reefstack/podstore/model"
	"github.com/reefstack/podstore/store/localfs"
	"github.com/reefstack/podstore/store/localfs/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// NewTestStore returns a store over an in-memory filesystem, rooted at
// a fixed directory.
func NewTestStore(t *testing.T) *localfs.LocalStore {
	t.Helper()

	s, err := localfs.NewWithFs(config.Config{Dir: "/store"}, afero.NewMemMapFs())
	require.NoError(t, err)

	return s
}

// StylePod builds the style transfer pod used across the test suite.
// Its canonical encoding, and therefore its hash, must never change.
func StylePod(t *testing.T, annotation *model.Annotation) *model.Pod {
	t.Helper()

	pod, err := model.NewPod(model.PodConfig{
		Annotation:      annotation,
		SourceCommitURL: "https://github.com/zenml-io/zenml/tree/0.67.0",
		Image:           "zenmldocker/zenml-server:0.67.0",
		Command:         "tail -f /dev/null",
		InputStreamMap: map[string]model.StreamInfo{
			"painting": {Path: "/input/painting.png", MatchPattern: "/input/painting.png"},
			"image":    {Path: "/input/image.png", MatchPattern: "/input/image.png"},
		},
		OutputDir: "/output",
		OutputStreamMap: map[string]model.StreamInfo{
			"styled": {Path: "./styled.png", MatchPattern: "./styled.png"},
		},
		RecommendedCPUs:   0.25,
		RecommendedMemory: 2 * 1024 * 1024 * 1024,
	})
	require.NoError(t, err)

	return pod
}

// StyleAnnotation returns the annotation the style pod usually carries.
func StyleAnnotation() *model.Annotation {
	return &model.Annotation{
		Name:        "style-transfer",
		Version:     "0.67.0",
		Description: "Neural style transfer of an image with a painting",
	}
}

// StyleJob builds a job running the style pod with fixed limits, so the
// job hash is stable too.
func StyleJob(t *testing.T, pod *model.Pod, annotation *model.Annotation) *model.PodJob {
	t.Helper()

	job, err := model.NewPodJob(model.PodJobConfig{
		Annotation: annotation,
		Pod:        pod,
		InputStoreMapping: map[string]model.InputData{
			"image": {Kind: model.InputFile, Path: "image.png"},
			"style": {Kind: model.InputFile, Path: "style.png"},
		},
		OutputStoreMapping: model.OutputData{Path: "stylized_image"},
		CPULimit:           1.5,
		MemLimit:           4 * 1024 * 1024 * 1024,
		RetryPolicy:        model.NoRetry(),
	})
	require.NoError(t, err)

	return job
}
