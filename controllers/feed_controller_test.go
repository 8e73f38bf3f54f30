package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/true-social/api-go/models"
)

func TestFeedIncludesBothDirections(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")
	dave := seedUser(t, db, "dave")

	// alice follows bob; carol follows alice; dave is unrelated.
	require.NoError(t, db.Create(&models.Follow{FollowerUserID: alice.ID, FollowingUserID: bob.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerUserID: carol.ID, FollowingUserID: alice.ID}).Error)

	base := time.Now().Add(-time.Hour)
	seedPost(t, db, bob.ID, "from bob", base)
	seedPost(t, db, carol.ID, "from carol", base.Add(time.Minute))
	seedPost(t, db, dave.ID, "from dave", base.Add(2*time.Minute))
	seedPost(t, db, alice.ID, "from alice", base.Add(3*time.Minute))

	w := doJSON(t, r, "GET", "/api/feed", nil, alice.ID)
	require.Equal(t, http.StatusOK, w.Code)
	posts := decodeBody(t, w)["posts"].([]interface{})
	require.Len(t, posts, 2)
	assert.Equal(t, "from carol", posts[0].(map[string]interface{})["text"])
	assert.Equal(t, "from bob", posts[1].(map[string]interface{})["text"])
}

func TestFeedEmpty(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	alice := seedUser(t, db, "alice")

	w := doJSON(t, r, "GET", "/api/feed", nil, alice.ID)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Nothing in your feed.", body["message"])
	assert.Empty(t, body["posts"])
}

func TestListPostsPagination(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	alice := seedUser(t, db, "alice")

	base := time.Now().Add(-24 * time.Hour)
	for i := 1; i <= 25; i++ {
		seedPost(t, db, alice.ID, fmt.Sprintf("post-%d", i), base.Add(time.Duration(i)*time.Minute))
	}

	w := doJSON(t, r, "GET", "/api/posts?page=2&limit=10", nil, alice.ID)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	assert.Equal(t, float64(2), body["currentPage"])
	assert.Equal(t, float64(3), body["totalPages"])
	assert.Equal(t, float64(25), body["totalPosts"])

	posts := body["posts"].([]interface{})
	require.Len(t, posts, 10)
	// Newest first, so page 2 starts at the 15th post and walks down.
	assert.Equal(t, "post-15", posts[0].(map[string]interface{})["text"])
	assert.Equal(t, "post-6", posts[9].(map[string]interface{})["text"])
}

func TestListPostsEmpty(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	alice := seedUser(t, db, "alice")

	w := doJSON(t, r, "GET", "/api/posts", nil, alice.ID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No posts found.", decodeBody(t, w)["message"])
}

func TestListPostsRejectsBadPage(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	alice := seedUser(t, db, "alice")

	w := doJSON(t, r, "GET", "/api/posts?page=0", nil, alice.ID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookmarkFlow(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, bob.ID, "worth keeping", time.Now())

	for i := 0; i < 2; i++ {
		w := doJSON(t, r, "POST", fmt.Sprintf("/api/bookmarks/%d", post.ID), nil, alice.ID)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Added to bookmarked posts.", body["message"])
		assert.Equal(t, []uint{post.ID}, idList(t, body["user"].(map[string]interface{})["bookmarkedPosts"]))
	}

	var count int64
	db.Model(&models.Bookmark{}).Count(&count)
	assert.Equal(t, int64(1), count)

	w := doJSON(t, r, "GET", "/api/bookmarks", nil, alice.ID)
	require.Equal(t, http.StatusOK, w.Code)
	posts := decodeBody(t, w)["posts"].([]interface{})
	require.Len(t, posts, 1)
	assert.Equal(t, "worth keeping", posts[0].(map[string]interface{})["text"])

	w = doJSON(t, r, "DELETE", fmt.Sprintf("/api/bookmarks/%d", post.ID), nil, alice.ID)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Deleted from bookmarked posts.", body["message"])
	assert.Empty(t, idList(t, body["user"].(map[string]interface{})["bookmarkedPosts"]))

	w = doJSON(t, r, "GET", "/api/bookmarks", nil, alice.ID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No posts bookmarked", decodeBody(t, w)["message"])
}

func TestBookmarkMissingPost(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	alice := seedUser(t, db, "alice")

	w := doJSON(t, r, "POST", "/api/bookmarks/999", nil, alice.ID)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post does not exist.", decodeBody(t, w)["error"])
}
