package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/creature-poser/internal/config"
)

func TestTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, cmdTree(&buf, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 45)
	assert.Equal(t, "spider (44 components)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  0 head"))
	assert.Contains(t, lines[44], "needle")
}

func TestTreeLinkage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, cmdTree(&buf, []string{"-model", "linkage"}))
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 5)
}

func TestKeys(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, cmdKeys(&buf))
	assert.Contains(t, buf.String(), "open-mouth")
	assert.Contains(t, buf.String(), "stop-walk")
}

func TestPose(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, cmdPose(&buf, []string{"open-mouth"}))
	assert.Contains(t, buf.String(), "2 joints moved")

	assert.Error(t, cmdPose(&buf, []string{"dance"}))
	assert.Error(t, cmdPose(&buf, nil))
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, cmdDump(&buf, []string{"12"}))
	assert.Contains(t, buf.String(), `"body"`)

	assert.Error(t, cmdDump(&buf, []string{"99"}))
}

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, cmdRun(&buf, []string{"m", "0", "2", "Up"}))

	var out struct {
		State struct {
			Mode string `json:"mode"`
			Set  []int  `json:"set"`
		} `json:"state"`
		Active []struct {
			Name   string     `json:"name"`
			Angles [3]float32 `json:"angles"`
		} `json:"active"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "multi", out.State.Mode)
	assert.Equal(t, []int{0, 2}, out.State.Set)
	require.Len(t, out.Active, 2)
	assert.Equal(t, float32(2.5), out.Active[0].Angles[0])

	assert.Error(t, cmdRun(&buf, []string{"ctrl+z"}))
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poser.yaml")
	var buf bytes.Buffer
	require.NoError(t, cmdInit(&buf, []string{"-model", "linkage", "-o", path}))
	assert.Equal(t, "wrote "+path+"\n", buf.String())

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "linkage", cfg.Model.Name)

	assert.Error(t, cmdInit(&buf, []string{"-model", "octopus", "-o", path}))
}
