package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"kickstarter-campaigns/internal/database"
	"kickstarter-campaigns/internal/database/databasetest"
	"kickstarter-campaigns/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSeedBundledData(t *testing.T) {
	log = zaptest.NewLogger(t)
	db := databasetest.Open(t)

	require.NoError(t, seed(context.Background(), db, ""))

	want, err := database.DevSeed()
	require.NoError(t, err)
	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(len(want)), count)
}

func TestSeedFromFile(t *testing.T) {
	log = zaptest.NewLogger(t)
	db := databasetest.Open(t)
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"category":"Art","category_link":"http://art","campaigns":[{"name":"Murals","creator":"Rosa","location":"Denver"}]}]`), 0o600))

	require.NoError(t, seed(context.Background(), db, path))

	var campaigns []models.Campaign
	require.NoError(t, db.Find(&campaigns).Error)
	require.Len(t, campaigns, 1)
	assert.Equal(t, "Murals", campaigns[0].Name)

	assert.Error(t, seed(context.Background(), db, filepath.Join(t.TempDir(), "nope.json")))
}

func TestCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["seed"])
	assert.NotNil(t, seedCmd.Flags().Lookup("file"))
}
