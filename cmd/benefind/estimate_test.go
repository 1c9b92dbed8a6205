package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateCommand_MissingStateFlag(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "estimate", "--size", "2")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "required")
}

func TestEstimateCommand_UnknownState(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "estimate", "--state", "ZZ", "--size", "2")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "invalid state")
}

func TestEstimateCommand_JSONOutput(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "estimate",
		"--state", "TX", "--size", "3", "--income", "1500", "--json")
	output, err := cmd.CombinedOutput()

	assert.NoError(t, err)
	assert.Contains(t, string(output), `"eligible"`)
	assert.Contains(t, string(output), `"gross_test"`)
}

func TestEstimateCommand_BadMode(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "estimate",
		"--state", "TX", "--size", "2", "--mode", "rough")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "unknown estimator mode")
}
