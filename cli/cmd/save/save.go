// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package save

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reefstack/podstore/cli/presenter"
	ctxUtils "github.com/reefstack/podstore/cli/util/context"
	"github.com/reefstack/podstore/model"
	"github.com/reefstack/podstore/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var Command = &cobra.Command{
	Use:   "save",
	Short: "Save a record into the store",
	Long: `This command builds a record from a definition file, computes its
content hash and persists it under an annotation.

Usage examples:

1. Save a pod definition:

	podstore save pod pod.yaml --name style-transfer --version 0.67.0

2. Save a job running a stored pod:

	podstore save job job.yaml --name style-run --version 1.0.0

3. Save a pointer to another store:

	podstore save pointer "LocalStore::/data/backup" --name backup --version 1.0.0
`,
}

var podCommand = &cobra.Command{
	Use:   "pod <file>",
	Short: "Save a pod definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPod(cmd, args[0])
	},
}

var jobCommand = &cobra.Command{
	Use:   "job <file>",
	Short: "Save a pod job definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runJob(cmd, args[0])
	},
}

var pointerCommand = &cobra.Command{
	Use:   "pointer <uri>",
	Short: "Save a store pointer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPointer(cmd, args[0])
	},
}

func annotationFromFlags() (*model.Annotation, error) {
	if opts.Name == "" && opts.Version == "" {
		return nil, nil //nolint:nilnil
	}

	annotation := &model.Annotation{
		Name:        opts.Name,
		Version:     opts.Version,
		Description: opts.Description,
	}

	if err := annotation.Validate(); err != nil {
		return nil, err
	}

	return annotation, nil
}

func readDefinition(path string, out any) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read definition file: %w", err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse definition file: %w", err)
	}

	return nil
}

func runPod(cmd *cobra.Command, path string) error {
	s, ok := ctxUtils.GetStoreFromContext(cmd.Context())
	if !ok {
		return errors.New("failed to get store from context")
	}

	annotation, err := annotationFromFlags()
	if err != nil {
		return err
	}

	var def model.Pod
	if err := readDefinition(path, &def); err != nil {
		return err
	}

	pod, err := model.NewPod(model.PodConfig{
		Annotation:        annotation,
		SourceCommitURL:   def.SourceCommitURL,
		Image:             def.Image,
		Command:           def.Command,
		InputStreamMap:    def.InputStreamMap,
		OutputDir:         def.OutputDir,
		OutputStreamMap:   def.OutputStreamMap,
		RecommendedCPUs:   def.RecommendedCPUs,
		RecommendedMemory: def.RecommendedMemory,
		RequiredGPU:       def.RequiredGPU,
	})
	if err != nil {
		return err
	}

	if err := s.SavePod(cmd.Context(), pod); err != nil {
		return err
	}

	presenter.Println(cmd, pod.Hash)

	return nil
}

func runJob(cmd *cobra.Command, path string) error {
	s, ok := ctxUtils.GetStoreFromContext(cmd.Context())
	if !ok {
		return errors.New("failed to get store from context")
	}

	annotation, err := annotationFromFlags()
	if err != nil {
		return err
	}

	var def model.PodJob
	if err := readDefinition(path, &def); err != nil {
		return err
	}

	if def.PodHash == "" {
		return errors.New("job definition must reference a pod by pod_hash")
	}

	pod, err := s.LoadPod(cmd.Context(), store.ByHash(def.PodHash))
	if err != nil {
		return fmt.Errorf("failed to load referenced pod: %w", err)
	}

	job, err := model.NewPodJob(model.PodJobConfig{
		Annotation:         annotation,
		Pod:                pod,
		InputStoreMapping:  def.InputStoreMapping,
		OutputStoreMapping: def.OutputStoreMapping,
		CPULimit:           def.CPULimit,
		MemLimit:           def.MemLimit,
		RetryPolicy:        def.RetryPolicy,
	})
	if err != nil {
		return err
	}

	if err := s.SavePodJob(cmd.Context(), job); err != nil {
		return err
	}

	presenter.Println(cmd, job.Hash)

	return nil
}

func runPointer(cmd *cobra.Command, uri string) error {
	s, ok := ctxUtils.GetStoreFromContext(cmd.Context())
	if !ok {
		return errors.New("failed to get store from context")
	}

	annotation, err := annotationFromFlags()
	if err != nil {
		return err
	}

	ptr, err := model.NewStorePointer(annotation, uri)
	if err != nil {
		return err
	}

	if err := s.SaveStorePointer(cmd.Context(), ptr); err != nil {
		return err
	}

	presenter.Println(cmd, ptr.Hash)

	return nil
}
