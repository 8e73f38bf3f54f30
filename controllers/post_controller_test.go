package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/true-social/api-go/models"
)

func TestCreatePost(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	alice := seedUser(t, db, "alice")

	w := doJSON(t, r, "POST", "/api/posts", map[string]string{
		"postText":     "hello world",
		"postCategory": "general",
	}, alice.ID)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Post created successfully", body["message"])

	post := body["post"].(map[string]interface{})
	assert.Equal(t, "hello world", post["text"])
	assert.Equal(t, "general", post["category"])
	assert.Equal(t, "alice", post["username"])
	assert.Equal(t, float64(0), post["likesCount"])
	assert.Equal(t, float64(0), post["commentsCount"])
}

func TestCreatePostValidation(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	alice := seedUser(t, db, "alice")

	w := doJSON(t, r, "POST", "/api/posts", map[string]string{
		"postText":     "   ",
		"postCategory": "gossip",
	}, alice.ID)

	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := decodeBody(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "Post text can't be an empty string.", fields["postText"])
	assert.Contains(t, fields["postCategory"], "Post category must be one of")

	var count int64
	db.Model(&models.Post{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreatePostTooLong(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	alice := seedUser(t, db, "alice")

	w := doJSON(t, r, "POST", "/api/posts", map[string]string{
		"postText":     strings.Repeat("a", 501),
		"postCategory": "general",
	}, alice.ID)

	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := decodeBody(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "Post text exceeds 500 characters limit", fields["postText"])
}

func TestGetPostNotFound(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	alice := seedUser(t, db, "alice")

	w := doJSON(t, r, "GET", "/api/posts/999", nil, alice.ID)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post does not exist.", decodeBody(t, w)["error"])
}

func TestUpdatePostOwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "original text", time.Now())

	w := doJSON(t, r, "PUT", fmt.Sprintf("/api/posts/%d", post.ID), map[string]string{
		"postText": "hijacked",
	}, bob.ID)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You're not allowed to perform this operation.", decodeBody(t, w)["error"])

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, "original text", stored.Text)

	w = doJSON(t, r, "PUT", fmt.Sprintf("/api/posts/%d", post.ID), map[string]string{
		"postText": "edited text",
	}, alice.ID)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Post updated successfully", decodeBody(t, w)["message"])

	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, "edited text", stored.Text)
}

func TestDeletePostCleansUpLikesAndBookmarks(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "to be deleted", time.Now())

	require.NoError(t, db.Create(&models.Like{PostID: post.ID, UserID: bob.ID}).Error)
	require.NoError(t, db.Create(&models.Bookmark{PostID: post.ID, UserID: bob.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{PostID: post.ID, UserID: bob.ID, Text: "nice"}).Error)

	w := doJSON(t, r, "DELETE", fmt.Sprintf("/api/posts/%d", post.ID), nil, bob.ID)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, "DELETE", fmt.Sprintf("/api/posts/%d", post.ID), nil, alice.ID)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Post deleted successfully.", decodeBody(t, w)["message"])

	var posts, likes, bookmarks, comments int64
	db.Model(&models.Post{}).Count(&posts)
	db.Model(&models.Like{}).Count(&likes)
	db.Model(&models.Bookmark{}).Count(&bookmarks)
	db.Model(&models.Comment{}).Count(&comments)
	assert.Zero(t, posts)
	assert.Zero(t, likes)
	assert.Zero(t, bookmarks)
	// Comments survive their post.
	assert.Equal(t, int64(1), comments)
}

func TestGetUserPosts(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	w := doJSON(t, r, "GET", fmt.Sprintf("/api/users/%d/posts", bob.ID), nil, alice.ID)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Nothing posted yet.", decodeBody(t, w)["error"])

	base := time.Now().Add(-time.Hour)
	seedPost(t, db, bob.ID, "first", base)
	seedPost(t, db, bob.ID, "second", base.Add(time.Minute))
	seedPost(t, db, alice.ID, "someone else's", base.Add(2*time.Minute))

	w = doJSON(t, r, "GET", fmt.Sprintf("/api/users/%d/posts", bob.ID), nil, alice.ID)
	require.Equal(t, http.StatusOK, w.Code)
	posts := decodeBody(t, w)["posts"].([]interface{})
	require.Len(t, posts, 2)
	assert.Equal(t, "second", posts[0].(map[string]interface{})["text"])
	assert.Equal(t, "first", posts[1].(map[string]interface{})["text"])
}
