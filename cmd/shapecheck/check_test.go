package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wippyai/typeguard"
	"github.com/wippyai/typeguard/schema"
)

const userSchema = `
name: string
age: integer?
tags: {$arrayOf: string}
`

func TestCheckFiles(t *testing.T) {
	dir := t.TempDir()
	d, err := schema.NewCompiler(typeguard.NewRegistry()).Compile([]byte(userSchema))
	require.NoError(t, err)

	paths := []string{
		writeFile(t, dir, "a.json", `{"name": "a", "tags": []}`),
		writeFile(t, dir, "b.yaml", "name: b\nage: 3\ntags: [x, y]\n"),
		writeFile(t, dir, "c.json", `{"name": "c", "age": 1.5, "tags": []}`),
		filepath.Join(dir, "missing.json"),
	}

	results, err := checkFiles(context.Background(), d, paths, 2, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, results, len(paths))

	for i, r := range results {
		assert.Equal(t, paths[i], r.path, "results keep input order")
	}
	assert.NoError(t, results[0].err)
	assert.NoError(t, results[1].err)
	assert.ErrorContains(t, results[2].err, "age")
	assert.Error(t, results[3].err)
}

func TestCheckFiles_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := checkFiles(ctx, typeguard.Any, []string{"a", "b"}, 1, zap.NewNop())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckCommand(t *testing.T) {
	t.Cleanup(typeguard.Reset)
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "user.yaml", userSchema)
	good := writeFile(t, dir, "good.json", `{"name": "a", "tags": ["x"]}`)
	bad := writeFile(t, dir, "bad.json", `{"name": "a", "tags": [1]}`)

	out, _, err := execute(t, "check", "--color", "never", "--schema", schemaPath, good)
	require.NoError(t, err)
	assert.Contains(t, out, "ok   "+good)

	out, _, err = execute(t, "check", "--color", "never", "-s", schemaPath, good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 documents do not conform")
	assert.Contains(t, out, "FAIL "+bad+": ")
	assert.Contains(t, out, "tags.[0]")
}

func TestCheckCommand_Usage(t *testing.T) {
	_, _, err := execute(t, "check", "doc.json")
	assert.ErrorContains(t, err, "schema")

	_, _, err = execute(t, "check", "--schema", "x.yaml")
	assert.Error(t, err)

	_, _, err = execute(t, "--log-level", "loud", "check", "-s", "x.yaml", "doc.json")
	assert.Error(t, err)
}
