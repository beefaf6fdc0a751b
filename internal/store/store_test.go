package store_test

import (
	"context"
	"testing"

	"kickstarter-campaigns/internal/database/databasetest"
	"kickstarter-campaigns/internal/sections"
	"kickstarter-campaigns/internal/store"
	"kickstarter-campaigns/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *store.Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.New(databasetest.Open(s.T()))
}

func (s *StoreSuite) insertCategory(name string) *models.Category {
	cat := &models.Category{Category: name, CategoryLink: "http://" + name}
	_, err := s.store.Insert(s.ctx, cat)
	s.Require().NoError(err)
	return cat
}

func (s *StoreSuite) TestListEmpty() {
	rows, err := s.store.List(s.ctx, sections.Campaigns)
	s.Require().NoError(err)
	campaigns, ok := rows.(*[]models.Campaign)
	s.Require().True(ok)
	s.NotNil(*campaigns)
	s.Empty(*campaigns)
}

func (s *StoreSuite) TestInsertAndList() {
	art := s.insertCategory("Art")
	music := s.insertCategory("Music")
	s.NotZero(art.ID)
	s.Greater(music.ID, art.ID)
	s.False(art.CreatedAt.IsZero())

	rows, err := s.store.List(s.ctx, sections.Categories)
	s.Require().NoError(err)
	cats := *rows.(*[]models.Category)
	s.Require().Len(cats, 2)
	s.Equal("Art", cats[0].Category)
	s.Equal("Music", cats[1].Category)
}

func (s *StoreSuite) TestFind() {
	art := s.insertCategory("Art")

	row, err := s.store.Find(s.ctx, sections.Categories, art.ID)
	s.Require().NoError(err)
	got := row.(*models.Category)
	s.Equal(art.ID, got.ID)
	s.Equal("http://Art", got.CategoryLink)

	_, err = s.store.Find(s.ctx, sections.Categories, 9999)
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *StoreSuite) TestCategoryExists() {
	art := s.insertCategory("Art")

	ok, err := s.store.CategoryExists(s.ctx, art.ID)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.store.CategoryExists(s.ctx, art.ID+1)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *StoreSuite) TestInsertCampaignWithoutCategory() {
	_, err := s.store.Insert(s.ctx, &models.Campaign{Name: "Orphan", CategoryID: 42})
	s.ErrorIs(err, store.ErrMissingCategory)

	rows, err := s.store.List(s.ctx, sections.Campaigns)
	s.Require().NoError(err)
	s.Empty(*rows.(*[]models.Campaign))
}

func (s *StoreSuite) TestDelete() {
	art := s.insertCategory("Art")
	campaign := &models.Campaign{Name: "Murals", Creator: "Rosa", Location: "Denver, CO", CategoryID: art.ID}
	id, err := s.store.Insert(s.ctx, campaign)
	s.Require().NoError(err)
	s.Equal(campaign.ID, id)

	affected, err := s.store.Delete(s.ctx, sections.Campaigns, id)
	s.Require().NoError(err)
	s.Equal(int64(1), affected)

	_, err = s.store.Find(s.ctx, sections.Campaigns, id)
	s.ErrorIs(err, store.ErrNotFound)

	affected, err = s.store.Delete(s.ctx, sections.Campaigns, id)
	s.Require().NoError(err)
	s.Zero(affected)
}

func TestCancelledContext(t *testing.T) {
	s := store.New(databasetest.Open(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.List(ctx, sections.Categories)
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}
