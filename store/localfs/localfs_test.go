// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package localfs_test

import (
	"path/filepath"
	"testing"

	"github.com/reefstack/podstore/model"
	"github.com/reefstack/podstore/store"
	"github.com/reefstack/podstore/store/localfs"
	"github.com/reefstack/podstore/store/localfs/config"
	"github.com/reefstack/podstore/store/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresDir(t *testing.T) {
	_, err := localfs.NewWithFs(config.Config{}, afero.NewMemMapFs())
	require.Error(t, err)
}

func TestPodLifecycle(t *testing.T) {
	ctx := t.Context()
	s := testutil.NewTestStore(t)

	pod := testutil.StylePod(t, testutil.StyleAnnotation())
	require.NoError(t, s.SavePod(ctx, pod))

	t.Run("load by hash", func(t *testing.T) {
		loaded, err := s.LoadPod(ctx, store.ByHash(pod.Hash))
		require.NoError(t, err)

		assert.Equal(t, pod.Hash, loaded.Hash)
		assert.Equal(t, pod.Image, loaded.Image)
		assert.Nil(t, loaded.Annotation)
	})

	t.Run("load by annotation", func(t *testing.T) {
		loaded, err := s.LoadPod(ctx, store.ByAnnotation("style-transfer", "0.67.0"))
		require.NoError(t, err)

		assert.Equal(t, pod.Hash, loaded.Hash)
		require.NotNil(t, loaded.Annotation)
		assert.Equal(t, *pod.Annotation, *loaded.Annotation)
	})

	t.Run("list", func(t *testing.T) {
		infos, err := s.ListPods(ctx)
		require.NoError(t, err)

		require.Len(t, infos, 1)
		assert.Equal(t, store.ModelInfo{
			Name:    "style-transfer",
			Version: "0.67.0",
			Hash:    pod.Hash,
		}, infos[0])
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.DeletePod(ctx, store.ByAnnotation("style-transfer", "0.67.0")))

		_, err := s.LoadPod(ctx, store.ByHash(pod.Hash))
		assert.ErrorIs(t, err, store.ErrNotFound)

		infos, err := s.ListPods(ctx)
		require.NoError(t, err)
		assert.Empty(t, infos)
	})
}

func TestLoadMissingPod(t *testing.T) {
	ctx := t.Context()
	s := testutil.NewTestStore(t)

	_, err := s.LoadPod(ctx, store.ByHash("deadbeef"))
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.LoadPod(ctx, store.ByAnnotation("nope", "1.0.0"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDuplicateAnnotationRejected(t *testing.T) {
	ctx := t.Context()
	s := testutil.NewTestStore(t)

	pod := testutil.StylePod(t, testutil.StyleAnnotation())
	require.NoError(t, s.SavePod(ctx, pod))

	err := s.SavePod(ctx, pod)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestAnnotationAliasing(t *testing.T) {
	ctx := t.Context()
	s := testutil.NewTestStore(t)

	// Same payload saved twice under different annotations: one hash
	// directory, two markers, and a silently skipped spec rewrite.
	first := testutil.StylePod(t, testutil.StyleAnnotation())
	require.NoError(t, s.SavePod(ctx, first))

	alias := testutil.StylePod(t, &model.Annotation{Name: "style-transfer-alias", Version: "1.0.0"})
	require.Equal(t, first.Hash, alias.Hash)
	require.NoError(t, s.SavePod(ctx, alias))

	infos, err := s.ListPods(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, first.Hash, infos[0].Hash)
	assert.Equal(t, first.Hash, infos[1].Hash)

	t.Run("delete one annotation keeps the record", func(t *testing.T) {
		require.NoError(t, s.DeleteAnnotation(ctx, model.KindPod, "style-transfer-alias", "1.0.0"))

		_, err := s.LoadPod(ctx, store.ByAnnotation("style-transfer-alias", "1.0.0"))
		assert.ErrorIs(t, err, store.ErrNotFound)

		loaded, err := s.LoadPod(ctx, store.ByAnnotation("style-transfer", "0.67.0"))
		require.NoError(t, err)
		assert.Equal(t, first.Hash, loaded.Hash)
	})

	t.Run("last annotation is protected", func(t *testing.T) {
		err := s.DeleteAnnotation(ctx, model.KindPod, "style-transfer", "0.67.0")
		assert.ErrorIs(t, err, store.ErrDeletingLastAnnotation)
	})

	t.Run("delete by alias removes every annotation", func(t *testing.T) {
		extra := testutil.StylePod(t, &model.Annotation{Name: "style-extra", Version: "2.0.0"})
		require.NoError(t, s.SavePod(ctx, extra))

		require.NoError(t, s.DeletePod(ctx, store.ByAnnotation("style-extra", "2.0.0")))

		_, err := s.LoadPod(ctx, store.ByAnnotation("style-transfer", "0.67.0"))
		assert.ErrorIs(t, err, store.ErrNotFound)

		infos, err := s.ListPods(ctx)
		require.NoError(t, err)
		assert.Empty(t, infos)
	})
}

func TestLookupRejectsGlobMetacharacters(t *testing.T) {
	ctx := t.Context()
	s := testutil.NewTestStore(t)

	pod := testutil.StylePod(t, testutil.StyleAnnotation())
	require.NoError(t, s.SavePod(ctx, pod))

	// Wildcards in a lookup key must not resolve to a stored record.
	_, err := s.LoadPod(ctx, store.ByAnnotation("*", "*"))
	assert.ErrorIs(t, err, model.ErrInvalidAnnotation)

	_, err = s.LoadPod(ctx, store.ByAnnotation("style-*", "0.67.0"))
	assert.ErrorIs(t, err, model.ErrInvalidAnnotation)

	_, err = s.LoadPod(ctx, store.ByAnnotation("style-transfer", "*"))
	assert.ErrorIs(t, err, model.ErrInvalidAnnotation)

	err = s.DeletePod(ctx, store.ByAnnotation("*", "*"))
	assert.ErrorIs(t, err, model.ErrInvalidAnnotation)

	err = s.DeleteAnnotation(ctx, model.KindPod, "*", "*")
	assert.ErrorIs(t, err, model.ErrInvalidAnnotation)

	// The record itself is untouched and still loadable by exact key.
	loaded, err := s.LoadPod(ctx, store.ByAnnotation("style-transfer", "0.67.0"))
	require.NoError(t, err)
	assert.Equal(t, pod.Hash, loaded.Hash)
}

func TestAnnotationlessPodListedByHash(t *testing.T) {
	ctx := t.Context()
	s := testutil.NewTestStore(t)

	pod := testutil.StylePod(t, nil)
	require.NoError(t, s.SavePod(ctx, pod))

	infos, err := s.ListPods(ctx)
	require.NoError(t, err)

	require.Len(t, infos, 1)
	assert.Empty(t, infos[0].Name)
	assert.Empty(t, infos[0].Version)
	assert.Equal(t, pod.Hash, infos[0].Hash)
}

func TestPodJobLifecycle(t *testing.T) {
	ctx := t.Context()
	s := testutil.NewTestStore(t)

	pod := testutil.StylePod(t, testutil.StyleAnnotation())
	job := testutil.StyleJob(t, pod, &model.Annotation{Name: "style-run", Version: "1.0.0"})

	// The pod was never saved; the job save must cascade it.
	require.NoError(t, s.SavePodJob(ctx, job))

	t.Run("cascade saved the pod", func(t *testing.T) {
		loaded, err := s.LoadPod(ctx, store.ByHash(pod.Hash))
		require.NoError(t, err)
		assert.Equal(t, pod.Hash, loaded.Hash)
	})

	t.Run("load restores the pod reference", func(t *testing.T) {
		loaded, err := s.LoadPodJob(ctx, store.ByAnnotation("style-run", "1.0.0"))
		require.NoError(t, err)

		assert.Equal(t, job.Hash, loaded.Hash)
		assert.Equal(t, pod.Hash, loaded.PodHash)
		require.NotNil(t, loaded.Pod)
		assert.Equal(t, pod.Hash, loaded.Pod.Hash)
		assert.Equal(t, pod.Image, loaded.Pod.Image)
	})

	t.Run("jobs and pods list separately", func(t *testing.T) {
		jobs, err := s.ListPodJobs(ctx)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, job.Hash, jobs[0].Hash)

		pods, err := s.ListPods(ctx)
		require.NoError(t, err)
		require.Len(t, pods, 1)
	})

	t.Run("deleting the job keeps the pod", func(t *testing.T) {
		require.NoError(t, s.DeletePodJob(ctx, store.ByHash(job.Hash)))

		_, err := s.LoadPodJob(ctx, store.ByHash(job.Hash))
		assert.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.LoadPod(ctx, store.ByHash(pod.Hash))
		require.NoError(t, err)
	})
}

func TestLoadJobWithDanglingPodReference(t *testing.T) {
	ctx := t.Context()
	s := testutil.NewTestStore(t)

	pod := testutil.StylePod(t, testutil.StyleAnnotation())
	job := testutil.StyleJob(t, pod, &model.Annotation{Name: "style-run", Version: "1.0.0"})

	require.NoError(t, s.SavePodJob(ctx, job))
	require.NoError(t, s.DeletePod(ctx, store.ByHash(pod.Hash)))

	// Deletes never cascade, so the job now points at a missing pod.
	_, err := s.LoadPodJob(ctx, store.ByHash(job.Hash))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListManyRecords(t *testing.T) {
	ctx := t.Context()
	s := testutil.NewTestStore(t)

	pod := testutil.StylePod(t, testutil.StyleAnnotation())
	require.NoError(t, s.SavePod(ctx, pod))

	for _, version := range []string{"1.0.0", "1.1.0", "2.0.0"} {
		alias := testutil.StylePod(t, &model.Annotation{Name: "style-alias", Version: version})
		require.NoError(t, s.SavePod(ctx, alias))
	}

	job := testutil.StyleJob(t, pod, &model.Annotation{Name: "style-run", Version: "1.0.0"})
	require.NoError(t, s.SavePodJob(ctx, job))

	pods, err := s.ListPods(ctx)
	require.NoError(t, err)
	assert.Len(t, pods, 4)

	// Entries come back ordered by name, then version.
	assert.Equal(t, "style-alias", pods[0].Name)
	assert.Equal(t, "1.0.0", pods[0].Version)
	assert.Equal(t, "style-transfer", pods[3].Name)

	jobs, err := s.ListPodJobs(ctx)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestDiskLayout(t *testing.T) {
	ctx := t.Context()
	fsys := afero.NewMemMapFs()

	s, err := localfs.NewWithFs(config.Config{Dir: "/store"}, fsys)
	require.NoError(t, err)

	pod := testutil.StylePod(t, testutil.StyleAnnotation())
	require.NoError(t, s.SavePod(ctx, pod))

	spec := "/store/pod/" + pod.Hash + "/spec.yaml"
	marker := "/store/pod/" + pod.Hash + "/annotation/style-transfer-0.67.0.yaml"

	for _, path := range []string{spec, marker} {
		exists, err := afero.Exists(fsys, path)
		require.NoError(t, err)
		assert.True(t, exists, path)
	}

	// The spec file holds exactly the canonical bytes the hash covers.
	content, err := afero.ReadFile(fsys, spec)
	require.NoError(t, err)

	canonical, err := pod.Canonical()
	require.NoError(t, err)
	assert.Equal(t, canonical, content)
}

// Same lifecycle against a real directory, since glob behavior is the
// one place where MemMapFs and the OS can drift.
func TestPodLifecycleOnOsFilesystem(t *testing.T) {
	ctx := t.Context()

	s, err := localfs.NewWithFs(
		config.Config{Dir: filepath.Join(t.TempDir(), "store")}, afero.NewOsFs())
	require.NoError(t, err)

	pod := testutil.StylePod(t, testutil.StyleAnnotation())
	require.NoError(t, s.SavePod(ctx, pod))

	loaded, err := s.LoadPod(ctx, store.ByAnnotation("style-transfer", "0.67.0"))
	require.NoError(t, err)
	assert.Equal(t, pod.Hash, loaded.Hash)

	infos, err := s.ListPods(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)

	err = s.DeleteAnnotation(ctx, model.KindPod, "style-transfer", "0.67.0")
	assert.ErrorIs(t, err, store.ErrDeletingLastAnnotation)

	require.NoError(t, s.DeletePod(ctx, store.ByHash(pod.Hash)))
}

func TestWipe(t *testing.T) {
	ctx := t.Context()
	s := testutil.NewTestStore(t)

	require.NoError(t, s.SavePod(ctx, testutil.StylePod(t, testutil.StyleAnnotation())))
	require.NoError(t, s.Wipe(ctx))

	infos, err := s.ListPods(ctx)
	require.NoError(t, err)
	assert.Empty(t, infos)
}
