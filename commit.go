package yololbl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// errImageNotFound is returned by stageCopy if the image to copy does not exist.
var errImageNotFound = errors.New("image file not found")

// artifact is an output file written to a hidden staging path first and renamed into place on
// commit.
type artifact struct {
	staged string
	final  string
	backup string // The file previously at final, moved aside while committing.
}

// fileCommit writes the label file and the image copy of one annotation so that either both or
// neither end up in the target directory. Files replaced by a commit are restored if it fails.
type fileCommit struct {
	artifacts []artifact
	committed []artifact
}

// stagingPath returns a hidden, unique path in the directory of final.
func stagingPath(final string) string {
	dir, name := filepath.Split(final)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.staged", name, uuid.NewString()))
}

// backupPath returns a hidden, unique path for the file being replaced at final.
func backupPath(final string) string {
	dir, name := filepath.Split(final)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.backup", name, uuid.NewString()))
}

// stageData stages data for final.
func (c *fileCommit) stageData(final string, data []byte) error {
	a := artifact{staged: stagingPath(final), final: final}
	if err := os.WriteFile(a.staged, data, 0644); err != nil {
		_ = os.Remove(a.staged)
		return fmt.Errorf("cannot write file %q: %w", final, err)
	}
	c.artifacts = append(c.artifacts, a)
	return nil
}

// stageCopy stages a copy of src for final.
func (c *fileCommit) stageCopy(final, src string) error {
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", errImageNotFound, src)
		}
		return fmt.Errorf("cannot access %q: %w", src, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", errImageNotFound, src)
	}

	a := artifact{staged: stagingPath(final), final: final}
	if err := copyFile(a.staged, src); err != nil {
		_ = os.Remove(a.staged)
		return fmt.Errorf("cannot copy %q: %w", src, err)
	}
	c.artifacts = append(c.artifacts, a)
	return nil
}

// install moves an existing regular file at a.final aside and renames the staged file into place.
// On failure the moved file is put back.
func install(a *artifact) error {
	if info, err := os.Lstat(a.final); err == nil && info.Mode().IsRegular() {
		backup := backupPath(a.final)
		if err := os.Rename(a.final, backup); err != nil {
			return err
		}
		a.backup = backup
	}
	if err := os.Rename(a.staged, a.final); err != nil {
		if a.backup != "" {
			if rerr := os.Rename(a.backup, a.final); rerr != nil {
				Logf("Failed to restore %q: %v", a.final, rerr)
			}
			a.backup = ""
		}
		return err
	}
	return nil
}

// commit renames all staged artifacts into place. If a rename fails, the artifacts committed so far
// are removed again, the files they replaced are restored and the remaining staged files are
// deleted.
func (c *fileCommit) commit() error {
	for i := range c.artifacts {
		a := c.artifacts[i]
		if err := install(&a); err != nil {
			c.artifacts = c.artifacts[i:]
			c.rollback()
			return fmt.Errorf("cannot move %q into place: %w", a.final, err)
		}
		c.committed = append(c.committed, a)
	}
	for _, a := range c.committed {
		if a.backup == "" {
			continue
		}
		if err := os.Remove(a.backup); err != nil && !os.IsNotExist(err) {
			Logf("Failed to remove backup %q: %v", a.backup, err)
		}
	}
	c.artifacts = nil
	c.committed = nil
	return nil
}

// rollback removes all staged and committed artifacts and restores the files the committed ones
// replaced.
func (c *fileCommit) rollback() {
	for _, a := range c.artifacts {
		if err := os.Remove(a.staged); err != nil && !os.IsNotExist(err) {
			Logf("Failed to remove staged file %q: %v", a.staged, err)
		}
	}
	for _, a := range c.committed {
		if a.backup != "" {
			if err := os.Rename(a.backup, a.final); err != nil {
				Logf("Failed to restore %q: %v", a.final, err)
			}
			continue
		}
		if err := os.Remove(a.final); err != nil && !os.IsNotExist(err) {
			Logf("Failed to roll back %q: %v", a.final, err)
		}
	}
	c.artifacts = nil
	c.committed = nil
}
