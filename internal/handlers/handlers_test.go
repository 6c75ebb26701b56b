package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/mmoutenot/latitune/internal/config"
	"github.com/mmoutenot/latitune/internal/handlers"
	"github.com/mmoutenot/latitune/internal/models"
	"github.com/mmoutenot/latitune/internal/services"
	"github.com/mmoutenot/latitune/internal/types"
	"github.com/mmoutenot/latitune/tests/helpers"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(&models.User{}, &models.Song{}, &models.SongProvider{},
		&models.Blip{}, &models.Comment{}, &models.Favorite{})
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// setupTestApp wires the full route table against an in-memory database
func setupTestApp(t *testing.T, cfg *config.Config, matcher services.TrackMatcher) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	handlers.Register(app, db, cfg, matcher)
	return app, db
}

// formRequest builds a urlencoded request the way the API clients send them
func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// userForm returns a complete registration form
func userForm(rdioKey, email string) url.Values {
	form := url.Values{}
	form.Set("first_name", "ben")
	form.Set("last_name", "weitzman")
	form.Set("email", email)
	form.Set("rdio_key", rdioKey)
	form.Set("url", "http://example.com/ben")
	form.Set("icon", "http://example.com/ben.png")
	return form
}

// TestUserRoundTrip tests registering a user and fetching it back
func TestUserRoundTrip(t *testing.T) {
	app, _ := setupTestApp(t, &config.Config{}, nil)

	resp, err := app.Test(formRequest("PUT", "/api/user", userForm("rdio-ben", "benweitzman@gmail.com")))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	env := helpers.ParseEnvelope(t, resp)
	helpers.AssertEnvelopeStatus(t, env, types.StatusOK)
	if len(env.Objects) != 1 {
		t.Fatalf("Expected 1 object, got %d", len(env.Objects))
	}
	created := env.Objects[0]
	if created["name"] != "ben weitzman" {
		t.Errorf("Expected name 'ben weitzman', got %v", created["name"])
	}
	if created["email"] != "benweitzman@gmail.com" {
		t.Errorf("Expected the email in the response, got %v", created["email"])
	}
	if _, ok := created["password"]; ok {
		t.Error("Expected no password field in the response")
	}

	// Fetch it back through the identity key
	resp, err = app.Test(httptest.NewRequest("GET", "/api/user?rdio_key=rdio-ben", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	env = helpers.ParseEnvelope(t, resp)
	helpers.AssertEnvelopeStatus(t, env, types.StatusOK)
	if len(env.Objects) != 1 || env.Objects[0]["id"] != created["id"] {
		t.Errorf("Expected the created user back, got %v", env.Objects)
	}
}

// TestCreateUserConflicts tests the uniqueness statuses
func TestCreateUserConflicts(t *testing.T) {
	app, _ := setupTestApp(t, &config.Config{}, nil)

	if _, err := app.Test(formRequest("PUT", "/api/user", userForm("rdio-ben", "benweitzman@gmail.com"))); err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	// Same rdio_key
	resp, err := app.Test(formRequest("PUT", "/api/user", userForm("rdio-ben", "other@example.com")))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)
	helpers.AssertEnvelopeStatus(t, helpers.ParseEnvelope(t, resp), types.StatusUserExists)

	// Same email
	resp, err = app.Test(formRequest("PUT", "/api/user", userForm("rdio-other", "benweitzman@gmail.com")))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertEnvelopeStatus(t, helpers.ParseEnvelope(t, resp), types.StatusEmailExists)
}

// TestCreateUserMissingField tests the required-field gate
func TestCreateUserMissingField(t *testing.T) {
	app, _ := setupTestApp(t, &config.Config{}, nil)

	form := userForm("rdio-ben", "benweitzman@gmail.com")
	form.Del("icon")

	resp, err := app.Test(formRequest("PUT", "/api/user", form))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)
	helpers.AssertEnvelopeStatus(t, helpers.ParseEnvelope(t, resp), types.StatusMissingParameters)
}

// TestGetUserUnknownKey tests the authentication failure path
func TestGetUserUnknownKey(t *testing.T) {
	app, _ := setupTestApp(t, &config.Config{}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/user?rdio_key=rdio-nobody", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)
	helpers.AssertEnvelopeStatus(t, helpers.ParseEnvelope(t, resp), types.StatusInvalidAuth)
}

// stubMatcher returns a fixed match without any network round trip
type stubMatcher struct {
	match *services.TrackMatch
	err   error
}

func (s *stubMatcher) Match(ctx context.Context, artist, title, echonestID string) (*services.TrackMatch, error) {
	return s.match, s.err
}

// songForm returns a complete song form
func songForm(artist, title string) url.Values {
	form := url.Values{}
	form.Set("artist", artist)
	form.Set("title", title)
	form.Set("album", "Visions")
	form.Set("echonest_id", "SOXZYYG127F3E1B7A2")
	return form
}

// TestCreateSong tests song creation with a metadata match
func TestCreateSong(t *testing.T) {
	matcher := &stubMatcher{match: &services.TrackMatch{
		EchonestID: "SOXZYYG127F3E1B7A2",
		Links: []models.SongProvider{
			{Provider: "Spotify", ProviderKey: "3L7BcXHCG8uT92viO6Tikl"},
		},
		Raw: []byte(`{"response":{"status":{"code":0}}}`),
	}}
	app, _ := setupTestApp(t, &config.Config{}, matcher)

	resp, err := app.Test(formRequest("PUT", "/api/song", songForm("Grimes", "Oblivion")))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	env := helpers.ParseEnvelope(t, resp)
	helpers.AssertEnvelopeStatus(t, env, types.StatusOK)
	if len(env.Objects) != 1 {
		t.Fatalf("Expected 1 object, got %d", len(env.Objects))
	}

	providers, ok := env.Objects[0]["providers"].([]interface{})
	if !ok || len(providers) != 1 {
		t.Fatalf("Expected 1 provider link, got %v", env.Objects[0]["providers"])
	}

	// Creating the same song again returns the existing record
	resp, err = app.Test(formRequest("PUT", "/api/song", songForm("Grimes", "Oblivion")))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	again := helpers.ParseEnvelope(t, resp)
	helpers.AssertEnvelopeStatus(t, again, types.StatusOK)
	if again.Objects[0]["id"] != env.Objects[0]["id"] {
		t.Errorf("Expected song %v, got %v", env.Objects[0]["id"], again.Objects[0]["id"])
	}
}

// TestCreateSongLookupFailure tests that a failing metadata service never
// aborts song creation
func TestCreateSongLookupFailure(t *testing.T) {
	matcher := &stubMatcher{err: fmt.Errorf("service unavailable")}
	app, db := setupTestApp(t, &config.Config{}, matcher)

	resp, err := app.Test(formRequest("PUT", "/api/song", songForm("Grimes", "Oblivion")))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	env := helpers.ParseEnvelope(t, resp)
	helpers.AssertEnvelopeStatus(t, env, types.StatusOK)

	// The song exists, just without provider links
	var count int64
	db.Model(&models.Song{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 song row, got %d", count)
	}
	providers, ok := env.Objects[0]["providers"].([]interface{})
	if !ok || len(providers) != 0 {
		t.Errorf("Expected no provider links, got %v", env.Objects[0]["providers"])
	}
}

// blipFixtures registers a user and song directly and returns them
func blipFixtures(t *testing.T, db *gorm.DB) (*models.User, *models.Song) {
	t.Helper()
	user := helpers.CreateTestUser(t, db, "ben", "weitzman")
	song := helpers.CreateTestSong(t, db, "Grimes", "Oblivion")
	return user, song
}

// blipForm returns a complete blip form
func blipForm(songID uint64, rdioKey string, latitude, longitude float64) url.Values {
	form := url.Values{}
	form.Set("song_id", fmt.Sprintf("%d", songID))
	form.Set("rdio_key", rdioKey)
	form.Set("latitude", fmt.Sprintf("%f", latitude))
	form.Set("longitude", fmt.Sprintf("%f", longitude))
	return form
}

// TestCreateBlip tests dropping a song through the API
func TestCreateBlip(t *testing.T) {
	app, db := setupTestApp(t, &config.Config{}, nil)
	user, song := blipFixtures(t, db)

	resp, err := app.Test(formRequest("PUT", "/api/blip", blipForm(song.ID, user.RdioKey, 40.7128, -74.0060)))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	env := helpers.ParseEnvelope(t, resp)
	helpers.AssertEnvelopeStatus(t, env, types.StatusOK)
	if len(env.Objects) != 1 {
		t.Fatalf("Expected 1 object, got %d", len(env.Objects))
	}

	// The song comes back embedded, not as a bare id
	embedded, ok := env.Objects[0]["song"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected an embedded song, got %v", env.Objects[0]["song"])
	}
	if embedded["artist"] != "Grimes" {
		t.Errorf("Expected embedded artist Grimes, got %v", embedded["artist"])
	}
	if env.Objects[0]["timestamp"] == nil {
		t.Error("Expected a creation timestamp")
	}
}

// TestCreateBlipMissingSong tests the referential guard through the API
func TestCreateBlipMissingSong(t *testing.T) {
	app, db := setupTestApp(t, &config.Config{}, nil)
	user := helpers.CreateTestUser(t, db, "ben", "weitzman")

	resp, err := app.Test(formRequest("PUT", "/api/blip", blipForm(999, user.RdioKey, 40.7128, -74.0060)))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)
	helpers.AssertEnvelopeStatus(t, helpers.ParseEnvelope(t, resp), types.StatusSongDoesNotExist)

	// No partial row
	var count int64
	db.Model(&models.Blip{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no blip rows, got %d", count)
	}
}

// TestGetBlips tests the three read modes of GET /api/blip
func TestGetBlips(t *testing.T) {
	app, db := setupTestApp(t, &config.Config{}, nil)
	user, song := blipFixtures(t, db)

	la := helpers.CreateTestBlip(t, db, song, user, 34.0522, -118.2437)
	midtown := helpers.CreateTestBlip(t, db, song, user, 40.7484, -73.9857)

	// Everything, insertion order
	resp, err := app.Test(httptest.NewRequest("GET", "/api/blip", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	env := helpers.ParseEnvelope(t, resp)
	helpers.AssertEnvelopeStatus(t, env, types.StatusOK)
	if len(env.Objects) != 2 {
		t.Fatalf("Expected 2 blips, got %d", len(env.Objects))
	}
	if env.Objects[0]["id"] != float64(la.ID) {
		t.Errorf("Expected blip %d first, got %v", la.ID, env.Objects[0]["id"])
	}

	// Single blip by id
	resp, err = app.Test(httptest.NewRequest("GET", fmt.Sprintf("/api/blip?id=%d", midtown.ID), nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	env = helpers.ParseEnvelope(t, resp)
	helpers.AssertEnvelopeStatus(t, env, types.StatusOK)
	if len(env.Objects) != 1 || env.Objects[0]["id"] != float64(midtown.ID) {
		t.Errorf("Expected blip %d, got %v", midtown.ID, env.Objects)
	}

	// Nearest to lower Manhattan: midtown before LA despite insertion order
	resp, err = app.Test(httptest.NewRequest("GET", "/api/blip?latitude=40.7128&longitude=-74.0060", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	env = helpers.ParseEnvelope(t, resp)
	helpers.AssertEnvelopeStatus(t, env, types.StatusOK)
	if len(env.Objects) != 2 {
		t.Fatalf("Expected 2 blips, got %d", len(env.Objects))
	}
	if env.Objects[0]["id"] != float64(midtown.ID) || env.Objects[1]["id"] != float64(la.ID) {
		t.Errorf("Expected order [%d %d], got [%v %v]",
			midtown.ID, la.ID, env.Objects[0]["id"], env.Objects[1]["id"])
	}
}

// TestGetBlipNotFound tests the missing-blip status
func TestGetBlipNotFound(t *testing.T) {
	app, _ := setupTestApp(t, &config.Config{}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/blip?id=999", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)
	helpers.AssertEnvelopeStatus(t, helpers.ParseEnvelope(t, resp), types.StatusBlipDoesNotExist)
}

// TestCommentEndpoints tests creating and listing comments through the API
func TestCommentEndpoints(t *testing.T) {
	app, db := setupTestApp(t, &config.Config{}, nil)
	user, song := blipFixtures(t, db)
	blip := helpers.CreateTestBlip(t, db, song, user, 40.7128, -74.0060)

	form := url.Values{}
	form.Set("blip_id", fmt.Sprintf("%d", blip.ID))
	form.Set("comment", "heard this here first")
	form.Set("rdio_key", user.RdioKey)

	resp, err := app.Test(formRequest("PUT", "/api/blip/comment", form))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	env := helpers.ParseEnvelope(t, resp)
	helpers.AssertEnvelopeStatus(t, env, types.StatusOK)
	if env.Objects[0]["comment"] != "heard this here first" {
		t.Errorf("Unexpected comment body: %v", env.Objects[0]["comment"])
	}

	form.Set("comment", "still good")
	if _, err := app.Test(formRequest("PUT", "/api/blip/comment", form)); err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	// Listing is newest first
	resp, err = app.Test(httptest.NewRequest("GET", fmt.Sprintf("/api/blip/comment?blip_id=%d", blip.ID), nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	env = helpers.ParseEnvelope(t, resp)
	helpers.AssertEnvelopeStatus(t, env, types.StatusOK)
	if len(env.Objects) != 2 {
		t.Fatalf("Expected 2 comments, got %d", len(env.Objects))
	}
	if env.Objects[0]["comment"] != "still good" {
		t.Errorf("Expected the newest comment first, got %v", env.Objects[0]["comment"])
	}

	// Neither id nor blip_id
	resp, err = app.Test(httptest.NewRequest("GET", "/api/blip/comment", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertEnvelopeStatus(t, helpers.ParseEnvelope(t, resp), types.StatusMissingParameters)
}

// TestCommentMissingBlip tests commenting on an absent blip
func TestCommentMissingBlip(t *testing.T) {
	app, db := setupTestApp(t, &config.Config{}, nil)
	user := helpers.CreateTestUser(t, db, "ben", "weitzman")

	form := url.Values{}
	form.Set("blip_id", "999")
	form.Set("comment", "into the void")
	form.Set("rdio_key", user.RdioKey)

	resp, err := app.Test(formRequest("PUT", "/api/blip/comment", form))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertEnvelopeStatus(t, helpers.ParseEnvelope(t, resp), types.StatusBlipDoesNotExist)
}

// TestFavoriteEndpoints tests the favorite lifecycle through the API
func TestFavoriteEndpoints(t *testing.T) {
	app, db := setupTestApp(t, &config.Config{}, nil)
	user, song := blipFixtures(t, db)
	blip := helpers.CreateTestBlip(t, db, song, user, 40.7128, -74.0060)

	form := url.Values{}
	form.Set("blip_id", fmt.Sprintf("%d", blip.ID))
	form.Set("rdio_key", user.RdioKey)

	// Create, then create again: idempotent
	resp, err := app.Test(formRequest("PUT", "/api/blip/favorite", form))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	env := helpers.ParseEnvelope(t, resp)
	helpers.AssertEnvelopeStatus(t, env, types.StatusOK)

	resp, err = app.Test(formRequest("PUT", "/api/blip/favorite", form))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	again := helpers.ParseEnvelope(t, resp)
	helpers.AssertEnvelopeStatus(t, again, types.StatusOK)
	if again.Objects[0]["id"] != env.Objects[0]["id"] {
		t.Errorf("Expected the same favorite back, got %v and %v",
			env.Objects[0]["id"], again.Objects[0]["id"])
	}

	// Who favorited this blip
	resp, err = app.Test(httptest.NewRequest("GET", fmt.Sprintf("/api/blip/favorite?blip_id=%d", blip.ID), nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	env = helpers.ParseEnvelope(t, resp)
	helpers.AssertEnvelopeStatus(t, env, types.StatusOK)
	if len(env.Objects) != 1 || env.Objects[0]["rdio_key"] != user.RdioKey {
		t.Errorf("Expected the favoriting user, got %v", env.Objects)
	}

	// What this user favorited
	resp, err = app.Test(httptest.NewRequest("GET", "/api/blip/favorite?rdio_key="+user.RdioKey, nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	env = helpers.ParseEnvelope(t, resp)
	helpers.AssertEnvelopeStatus(t, env, types.StatusOK)
	if len(env.Objects) != 1 || env.Objects[0]["id"] != float64(blip.ID) {
		t.Errorf("Expected the favorited blip, got %v", env.Objects)
	}

	// Delete, then delete again: one-shot
	resp, err = app.Test(formRequest("DELETE", "/api/blip/favorite", form))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertEnvelopeStatus(t, helpers.ParseEnvelope(t, resp), types.StatusOK)

	resp, err = app.Test(formRequest("DELETE", "/api/blip/favorite", form))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertEnvelopeStatus(t, helpers.ParseEnvelope(t, resp), types.StatusFavoriteDoesNotExist)
}

// TestGetFavoritesMissingParameters tests the no-selector case
func TestGetFavoritesMissingParameters(t *testing.T) {
	app, _ := setupTestApp(t, &config.Config{}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/blip/favorite", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertEnvelopeStatus(t, helpers.ParseEnvelope(t, resp), types.StatusMissingParameters)
}

// TestTabulaRasa tests the developer-mode wipe and its production gate
func TestTabulaRasa(t *testing.T) {
	// Developer mode: wipes and recreates storage
	app, db := setupTestApp(t, &config.Config{Local: true}, nil)
	helpers.CreateTestUser(t, db, "ben", "weitzman")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/tabularasa", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)
	helpers.AssertEnvelopeStatus(t, helpers.ParseEnvelope(t, resp), types.StatusOK)

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected an empty users table, got %d rows", count)
	}

	// Production: the route does not exist
	app, _ = setupTestApp(t, &config.Config{Local: false}, nil)
	resp, err = app.Test(httptest.NewRequest("GET", "/api/tabularasa", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 404)
}
