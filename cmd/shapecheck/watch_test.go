package main

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/wippyai/typeguard"
)

func TestWatch_RechecksOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)
	t.Cleanup(typeguard.Reset)

	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "user.yaml", userSchema)
	doc := writeFile(t, dir, "doc.json", `{"name": "a", "tags": []}`)

	var out syncBuffer
	a := testApp(&out)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.watch(ctx, schemaPath, []string{doc}) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "watching for changes")
	}, 5*time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), "ok   "+doc)

	require.NoError(t, os.WriteFile(doc, []byte(`{"name": 7, "tags": []}`), 0o644))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "FAIL "+doc)
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatch_BadSchemaKeepsWatching(t *testing.T) {
	defer goleak.VerifyNone(t)
	t.Cleanup(typeguard.Reset)

	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "user.yaml", "name: nope\n")
	doc := writeFile(t, dir, "doc.json", `{"name": "a"}`)

	var out syncBuffer
	a := testApp(&out)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.watch(ctx, schemaPath, []string{doc}) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "unknown type name")
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(schemaPath, []byte("name: string\n"), 0o644))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "ok   "+doc)
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestWatch_MissingDirectory(t *testing.T) {
	var out syncBuffer
	a := testApp(&out)
	err := a.watch(context.Background(), "/no/such/dir/schema.yaml", nil)
	assert.Error(t, err)
}
