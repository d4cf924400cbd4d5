package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanzbot/pkg/registry"
)

func useRegistry(t *testing.T) string {
	t.Helper()
	prev := registryPath
	registryPath = filepath.Join(t.TempDir(), "activity-registry.json")
	t.Cleanup(func() { registryPath = prev })
	return registryPath
}

func composeReply() *registry.Activity {
	return &registry.Activity{
		ID:                   "compose-reply",
		DisplayName:          "Compose Reply",
		Category:             "chat",
		TaskType:             "compose-reply",
		ImplementationStatus: registry.StatusPlanned,
		Timeout:              "5s",
	}
}

func TestAddAndUpdateActivity(t *testing.T) {
	path := useRegistry(t)

	require.NoError(t, addActivity(&registry.Activity{
		ID:                   "classify-message",
		DisplayName:          "Classify Message",
		Category:             "chat",
		TaskType:             "classify-message",
		ImplementationStatus: registry.StatusPlanned,
		Timeout:              "2s",
	}))
	require.NoError(t, updateActivity("classify-message", "status", registry.StatusCompleted))

	reg, err := registry.Load(path)
	require.NoError(t, err)
	assert.True(t, reg.Deployable("classify-message"))
	assert.NotEmpty(t, reg.LastUpdated)
}

func TestAddActivity_RejectsDuplicate(t *testing.T) {
	useRegistry(t)
	a := composeReply()
	require.NoError(t, addActivity(a))
	assert.ErrorContains(t, addActivity(a), "already exists")
}

func TestUpdateActivity_InvalidValuesAreNotSaved(t *testing.T) {
	path := useRegistry(t)
	require.NoError(t, addActivity(composeReply()))

	assert.Error(t, updateActivity("compose-reply", "timeout", "soon"))
	assert.Error(t, updateActivity("compose-reply", "retries", "many"))
	assert.ErrorContains(t, updateActivity("compose-reply", "owner", "x"), "unknown field")
	assert.ErrorContains(t, updateActivity("missing", "status", "completed"), "not found")

	reg, err := registry.Load(path)
	require.NoError(t, err)
	a, ok := reg.Find("compose-reply")
	require.True(t, ok)
	assert.Equal(t, "5s", a.Timeout)
}

func TestValidateRegistry_ShippedFiles(t *testing.T) {
	prev := registryPath
	registryPath = filepath.Join("..", "..", "..", "configs", "activity-registry.json")
	t.Cleanup(func() { registryPath = prev })

	assert.NoError(t, validateRegistry(""))
}
