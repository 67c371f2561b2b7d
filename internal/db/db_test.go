package db

import (
	"testing"

	"blogicum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectRejectsUnknownScheme(t *testing.T) {
	_, err := Connect("mysql://localhost/blogicum", false)
	assert.Error(t, err)
}

func TestSeedIsIdempotent(t *testing.T) {
	conn, err := Connect("sqlite://:memory:", false)
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))

	require.NoError(t, Seed(conn))
	require.NoError(t, Seed(conn))

	var categories, locations int64
	conn.Model(&models.Category{}).Count(&categories)
	conn.Model(&models.Location{}).Count(&locations)
	assert.Equal(t, int64(3), categories)
	assert.Equal(t, int64(2), locations)
}

func TestDeletingPostCascadesToComments(t *testing.T) {
	conn, err := Connect("sqlite://:memory:", false)
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))

	user := models.User{Username: "author", Password: "x"}
	require.NoError(t, conn.Create(&user).Error)
	post := models.Post{Title: "t", Text: "b", AuthorID: user.ID, IsPublished: true}
	require.NoError(t, conn.Create(&post).Error)
	require.NoError(t, conn.Create(&models.Comment{Text: "c", PostID: post.ID, AuthorID: user.ID}).Error)

	require.NoError(t, conn.Delete(&models.Post{}, post.ID).Error)

	var comments int64
	conn.Model(&models.Comment{}).Count(&comments)
	assert.Zero(t, comments)
}
