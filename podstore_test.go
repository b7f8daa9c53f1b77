// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package podstore_test

import (
	"path"
	"testing"

	"github.com/reefstack/podstore"
	"github.com/reefstack/podstore/model"
	"github.com/reefstack/podstore/store"
	"github.com/reefstack/podstore/store/localfs"
	"github.com/reefstack/podstore/store/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndVerifyInput(t *testing.T) {
	ctx := t.Context()
	s := testutil.NewTestStore(t)

	input, err := podstore.RegisterInput(ctx, s, model.InputFile, "inputs/image.png", []byte("image bytes"))
	require.NoError(t, err)

	assert.Equal(t, model.InputFile, input.Kind)
	assert.Equal(t, "inputs/image.png", input.Path)
	assert.Len(t, input.Checksum, 64)

	// Unchanged content verifies against the frozen checksum.
	require.NoError(t, podstore.VerifyInput(ctx, s, input))

	// A stale checksum is detected.
	tampered := input
	tampered.Checksum = "0000000000000000000000000000000000000000000000000000000000000000"
	assert.Error(t, podstore.VerifyInput(ctx, s, tampered))
}

func TestRegisterInputChecksumsStoredContent(t *testing.T) {
	ctx := t.Context()
	s := testutil.NewTestStore(t)

	input, err := podstore.RegisterInput(ctx, s, model.InputFile, "inputs/image.png", []byte("image bytes"))
	require.NoError(t, err)

	// The frozen checksum covers the file as stored under the bulk
	// subtree, not some sibling path.
	sum, err := s.Checksum(ctx, path.Join(localfs.FileStoreDirName, "inputs/image.png"))
	require.NoError(t, err)
	assert.Equal(t, sum, input.Checksum)
}

func TestRegisterInputRefusesDuplicate(t *testing.T) {
	ctx := t.Context()
	s := testutil.NewTestStore(t)

	_, err := podstore.RegisterInput(ctx, s, model.InputFile, "inputs/image.png", []byte("first"))
	require.NoError(t, err)

	_, err = podstore.RegisterInput(ctx, s, model.InputFile, "inputs/image.png", []byte("second"))
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestRegisteredInputFlowsIntoJob(t *testing.T) {
	ctx := t.Context()
	s := testutil.NewTestStore(t)

	image, err := podstore.RegisterInput(ctx, s, model.InputFile, "inputs/image.png", []byte("image"))
	require.NoError(t, err)

	style, err := podstore.RegisterInput(ctx, s, model.InputFile, "inputs/style.png", []byte("style"))
	require.NoError(t, err)

	pod := testutil.StylePod(t, testutil.StyleAnnotation())

	job, err := podstore.CreatePodJob(model.PodJobConfig{
		Annotation:         &model.Annotation{Name: "style-run", Version: "1.0.0"},
		Pod:                pod,
		InputStoreMapping:  map[string]model.InputData{"image": image, "style": style},
		OutputStoreMapping: model.OutputData{Path: "outputs/styled.png"},
		CPULimit:           1.5,
		MemLimit:           4 * 1024 * 1024 * 1024,
	})
	require.NoError(t, err)
	require.NoError(t, s.SavePodJob(ctx, job))

	loaded, err := s.LoadPodJob(ctx, store.ByAnnotation("style-run", "1.0.0"))
	require.NoError(t, err)

	// Checksums frozen at registration survive the store round trip.
	assert.Equal(t, image.Checksum, loaded.InputStoreMapping["image"].Checksum)
	require.NoError(t, podstore.VerifyInput(ctx, s, loaded.InputStoreMapping["image"]))
}
